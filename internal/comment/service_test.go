package comment_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"lsu-service/internal/comment"
	"lsu-service/internal/evaluation"
	"lsu-service/internal/student"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStudents struct {
	pupil *student.Student
	err   error
}

func (m *mockStudents) GetByID(ctx context.Context, id int) (*student.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.pupil, nil
}

type mockEvaluations struct {
	evals []evaluation.Evaluation
	err   error
}

func (m *mockEvaluations) ListByStudentPeriod(ctx context.Context, studentID int, period string) ([]evaluation.Evaluation, error) {
	return m.evals, m.err
}

type mockComments struct {
	inserted  []*comment.Comment
	insertErr error
	byID      *comment.Comment
	getErr    error
	updated   *comment.Comment
}

func (m *mockComments) Insert(ctx context.Context, c *comment.Comment) (*comment.Comment, error) {
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	stored := *c
	stored.ID = len(m.inserted) + 1
	m.inserted = append(m.inserted, &stored)
	return &stored, nil
}

func (m *mockComments) GetByID(ctx context.Context, id int) (*comment.Comment, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.byID, nil
}

func (m *mockComments) ListByStudent(ctx context.Context, studentID int) ([]comment.Comment, error) {
	out := make([]comment.Comment, 0, len(m.inserted))
	for _, c := range m.inserted {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockComments) UpdateContent(ctx context.Context, id int, content string) (*comment.Comment, error) {
	updated := *m.byID
	updated.Content = content
	updated.Edited = true
	m.updated = &updated
	return &updated, nil
}

type mockGenerator struct {
	calls   int
	prompts []string
	text    string
	err     error
}

func (m *mockGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.calls++
	m.prompts = append(m.prompts, userPrompt)
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

func (m *mockGenerator) Name() string { return "test-model" }

type mockProducer struct {
	events []interface{}
	err    error
}

func (m *mockProducer) SendMessage(ctx context.Context, value interface{}) error {
	m.events = append(m.events, value)
	return m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestService_Generate(t *testing.T) {
	req := comment.GenerateRequest{
		StudentID:    7,
		Kind:         "bulletin",
		Period:       "P1",
		Observations: "Participe bien à l'oral",
	}

	t.Run("Success", func(t *testing.T) {
		students := &mockStudents{pupil: testPupil()}
		evals := &mockEvaluations{evals: testEvaluations()}
		store := &mockComments{}
		gen := &mockGenerator{text: "Emma progresse très bien ce trimestre."}
		prod := &mockProducer{}

		svc := comment.NewService(students, evals, store, gen, prod, nil, discardLogger())

		created, err := svc.Generate(context.Background(), 1, req)
		require.NoError(t, err)

		assert.Equal(t, "Emma progresse très bien ce trimestre.", created.Content)
		assert.Equal(t, 7, created.StudentID)
		assert.Equal(t, 1, created.AuthorID)
		assert.Equal(t, comment.KindBulletin, created.Kind)
		assert.Equal(t, "P1", created.Period)
		assert.Equal(t, "2024-2025", created.SchoolYear)
		assert.Equal(t, "test-model", created.ModelVersion)
		assert.False(t, created.Edited)

		// The stored prompt is exactly what the generator received.
		require.Len(t, gen.prompts, 1)
		assert.Equal(t, gen.prompts[0], created.PromptUsed)
		expected := comment.BuildPrompt(testPupil(), testEvaluations(), comment.KindBulletin, req.Observations, "P1")
		assert.Equal(t, expected, gen.prompts[0])

		require.Len(t, prod.events, 1)
		event, ok := prod.events[0].(comment.GeneratedEvent)
		require.True(t, ok)
		assert.Equal(t, created.ID, event.CommentID)
		assert.Equal(t, 7, event.StudentID)
	})

	t.Run("EachCallCreatesNewRecord", func(t *testing.T) {
		students := &mockStudents{pupil: testPupil()}
		store := &mockComments{}
		gen := &mockGenerator{text: "Un commentaire."}

		svc := comment.NewService(students, &mockEvaluations{}, store, gen, nil, nil, discardLogger())

		first, err := svc.Generate(context.Background(), 1, req)
		require.NoError(t, err)
		second, err := svc.Generate(context.Background(), 1, req)
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		assert.Len(t, store.inserted, 2)
		assert.Equal(t, 2, gen.calls)
	})

	t.Run("NotClassOwner", func(t *testing.T) {
		students := &mockStudents{pupil: testPupil()}
		store := &mockComments{}
		gen := &mockGenerator{text: "ignored"}

		svc := comment.NewService(students, &mockEvaluations{}, store, gen, nil, nil, discardLogger())

		_, err := svc.Generate(context.Background(), 99, req)
		require.ErrorIs(t, err, comment.ErrNotClassOwner)

		// The ownership gate runs before any provider call.
		assert.Zero(t, gen.calls)
		assert.Empty(t, store.inserted)
	})

	t.Run("StudentNotFound", func(t *testing.T) {
		students := &mockStudents{err: student.ErrStudentNotFound}
		gen := &mockGenerator{}

		svc := comment.NewService(students, &mockEvaluations{}, &mockComments{}, gen, nil, nil, discardLogger())

		_, err := svc.Generate(context.Background(), 1, req)
		require.ErrorIs(t, err, student.ErrStudentNotFound)
		assert.Zero(t, gen.calls)
	})

	t.Run("GenerationFailure", func(t *testing.T) {
		students := &mockStudents{pupil: testPupil()}
		store := &mockComments{}
		gen := &mockGenerator{err: errors.New("rate limited")}

		svc := comment.NewService(students, &mockEvaluations{}, store, gen, nil, nil, discardLogger())

		_, err := svc.Generate(context.Background(), 1, req)

		var genErr *comment.GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Empty(t, store.inserted)
	})

	t.Run("StorageFailure", func(t *testing.T) {
		students := &mockStudents{pupil: testPupil()}
		store := &mockComments{insertErr: errors.New("connection reset")}
		gen := &mockGenerator{text: "Un commentaire qui coûte cher."}
		prod := &mockProducer{}

		svc := comment.NewService(students, &mockEvaluations{}, store, gen, prod, nil, discardLogger())

		_, err := svc.Generate(context.Background(), 1, req)

		var storeErr *comment.StorageError
		require.ErrorAs(t, err, &storeErr)
		assert.Empty(t, prod.events)
	})

	t.Run("ProducerFailureIsNotFatal", func(t *testing.T) {
		students := &mockStudents{pupil: testPupil()}
		store := &mockComments{}
		gen := &mockGenerator{text: "Un commentaire."}
		prod := &mockProducer{err: errors.New("broker down")}

		svc := comment.NewService(students, &mockEvaluations{}, store, gen, prod, nil, discardLogger())

		created, err := svc.Generate(context.Background(), 1, req)
		require.NoError(t, err)
		assert.NotNil(t, created)
		assert.Len(t, store.inserted, 1)
	})
}

func TestService_UpdateContent(t *testing.T) {
	existing := &comment.Comment{
		ID:           12,
		StudentID:    7,
		AuthorID:     1,
		Kind:         comment.KindBulletin,
		Content:      "Texte généré.",
		ModelVersion: "test-model",
		PromptUsed:   "le prompt d'origine",
	}

	t.Run("OwnerCanEdit", func(t *testing.T) {
		students := &mockStudents{pupil: testPupil()}
		store := &mockComments{byID: existing}

		svc := comment.NewService(students, &mockEvaluations{}, store, &mockGenerator{}, nil, nil, discardLogger())

		updated, err := svc.UpdateContent(context.Background(), 1, 12, "Texte retouché.")
		require.NoError(t, err)

		assert.Equal(t, "Texte retouché.", updated.Content)
		assert.True(t, updated.Edited)
		assert.Equal(t, "le prompt d'origine", updated.PromptUsed)
		assert.Equal(t, "test-model", updated.ModelVersion)
	})

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		students := &mockStudents{pupil: testPupil()}
		store := &mockComments{byID: existing}

		svc := comment.NewService(students, &mockEvaluations{}, store, &mockGenerator{}, nil, nil, discardLogger())

		_, err := svc.UpdateContent(context.Background(), 99, 12, "Texte retouché.")
		require.ErrorIs(t, err, comment.ErrNotClassOwner)
		assert.Nil(t, store.updated)
	})

	t.Run("CommentNotFound", func(t *testing.T) {
		store := &mockComments{getErr: comment.ErrCommentNotFound}

		svc := comment.NewService(&mockStudents{pupil: testPupil()}, &mockEvaluations{}, store, &mockGenerator{}, nil, nil, discardLogger())

		_, err := svc.UpdateContent(context.Background(), 1, 999, "x")
		require.ErrorIs(t, err, comment.ErrCommentNotFound)
	})
}
