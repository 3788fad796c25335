package comment

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"lsu-service/internal/auth"
	"lsu-service/internal/httputil"
	"lsu-service/internal/student"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  Service
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/generator/comments", h.GenerateComment)
	router.Get("/students/{id}/comments", h.ListComments)
	router.Put("/comments/{id}", h.UpdateComment)
}

func (h *Handler) GenerateComment(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := auth.GetUserID(r.Context())
	if !ok {
		httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.InfoContext(r.Context(), "generating comment",
		"student_id", req.StudentID, "kind", req.Kind, "period", req.Period)

	created, err := h.service.Generate(r.Context(), teacherID, req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := auth.GetUserID(r.Context())
	if !ok {
		httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	studentID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid student ID")
		return
	}

	comments, err := h.service.ListByStudent(r.Context(), teacherID, studentID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, comments)
}

func (h *Handler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := auth.GetUserID(r.Context())
	if !ok {
		httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid comment ID")
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.service.UpdateContent(r.Context(), teacherID, id, req.Content)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	var genErr *GenerationError
	var storeErr *StorageError

	switch {
	case errors.Is(err, ErrCommentNotFound), errors.Is(err, student.ErrStudentNotFound):
		httputil.RespondWithError(w, http.StatusNotFound, "not found")
	case errors.Is(err, ErrNotClassOwner):
		httputil.RespondWithError(w, http.StatusForbidden, "access denied")
	case errors.As(err, &genErr):
		h.logger.Error("generation failed", "error", err)
		httputil.RespondWithError(w, http.StatusBadGateway, "comment generation failed")
	case errors.As(err, &storeErr):
		h.logger.Error("generated comment not stored", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "comment generated but could not be saved")
	default:
		h.logger.Error("internal error", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
