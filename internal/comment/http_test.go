package comment_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"lsu-service/internal/auth"
	"lsu-service/internal/comment"
	"lsu-service/internal/student"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	generated *comment.Comment
	err       error
}

func (s *stubService) Generate(ctx context.Context, authorID int, req comment.GenerateRequest) (*comment.Comment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.generated, nil
}

func (s *stubService) ListByStudent(ctx context.Context, teacherID, studentID int) ([]comment.Comment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []comment.Comment{*s.generated}, nil
}

func (s *stubService) UpdateContent(ctx context.Context, teacherID, commentID int, content string) (*comment.Comment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.generated, nil
}

func newRouter(svc comment.Service) chi.Router {
	handler := comment.NewHandler(svc, discardLogger())
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func authedRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx := context.WithValue(req.Context(), auth.UserIDKey, 1)
	ctx = context.WithValue(ctx, auth.RoleKey, auth.RoleTeacher)
	return req.WithContext(ctx)
}

func TestGenerateCommentEndpoint(t *testing.T) {
	payload, _ := json.Marshal(map[string]interface{}{
		"studentId": 7,
		"kind":      "bulletin",
		"period":    "P1",
	})

	t.Run("Created", func(t *testing.T) {
		svc := &stubService{generated: &comment.Comment{ID: 1, StudentID: 7, Content: "Bravo Emma."}}
		router := newRouter(svc)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(http.MethodPost, "/generator/comments", payload))

		require.Equal(t, http.StatusCreated, rec.Code)

		var got comment.Comment
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "Bravo Emma.", got.Content)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		router := newRouter(&stubService{})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/generator/comments", bytes.NewReader(payload))
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("InvalidKind", func(t *testing.T) {
		router := newRouter(&stubService{})
		bad, _ := json.Marshal(map[string]interface{}{
			"studentId": 7,
			"kind":      "poème",
			"period":    "P1",
		})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(http.MethodPost, "/generator/comments", bad))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("StudentNotFound", func(t *testing.T) {
		router := newRouter(&stubService{err: student.ErrStudentNotFound})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(http.MethodPost, "/generator/comments", payload))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("NotOwner", func(t *testing.T) {
		router := newRouter(&stubService{err: comment.ErrNotClassOwner})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(http.MethodPost, "/generator/comments", payload))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("GenerationFailure", func(t *testing.T) {
		router := newRouter(&stubService{err: &comment.GenerationError{Err: errors.New("provider down")}})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(http.MethodPost, "/generator/comments", payload))

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("StorageFailure", func(t *testing.T) {
		router := newRouter(&stubService{err: &comment.StorageError{Err: errors.New("db down")}})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(http.MethodPost, "/generator/comments", payload))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "could not be saved")
	})
}

func TestUpdateCommentEndpoint(t *testing.T) {
	t.Run("Updated", func(t *testing.T) {
		svc := &stubService{generated: &comment.Comment{ID: 12, Content: "Texte retouché.", Edited: true}}
		router := newRouter(svc)

		body, _ := json.Marshal(map[string]string{"content": "Texte retouché."})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(http.MethodPut, "/comments/12", body))

		require.Equal(t, http.StatusOK, rec.Code)

		var got comment.Comment
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.True(t, got.Edited)
	})

	t.Run("EmptyContent", func(t *testing.T) {
		router := newRouter(&stubService{})

		body, _ := json.Marshal(map[string]string{"content": ""})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(http.MethodPut, "/comments/12", body))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		router := newRouter(&stubService{err: comment.ErrCommentNotFound})

		body, _ := json.Marshal(map[string]string{"content": "x"})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, authedRequest(http.MethodPut, "/comments/999", body))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
