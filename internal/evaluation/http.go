package evaluation

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"lsu-service/internal/auth"
	"lsu-service/internal/httputil"
	"lsu-service/internal/metrics"
	"lsu-service/internal/student"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  Service
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewHandler(service Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
		metrics:  m,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/evaluations", h.RecordEvaluation)
	router.Get("/students/{id}/evaluations", h.ListForStudent)
}

func (h *Handler) RecordEvaluation(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := auth.GetUserID(r.Context())
	if !ok {
		httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateEvaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.InfoContext(r.Context(), "recording evaluation",
		"student_id", req.StudentID, "subject_id", req.SubjectID, "period", req.Period)

	created, err := h.service.RecordEvaluation(r.Context(), teacherID, req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.metrics.RecordEvaluationRecorded(r.Context())

	httputil.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *Handler) ListForStudent(w http.ResponseWriter, r *http.Request) {
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

	evaluations, err := h.service.ListForStudent(r.Context(), teacherID, studentID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, evaluations)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, student.ErrStudentNotFound):
		httputil.RespondWithError(w, http.StatusNotFound, "student not found")
	case errors.Is(err, student.ErrNotClassOwner):
		httputil.RespondWithError(w, http.StatusForbidden, "access denied")
	case errors.Is(err, ErrInvalidInput):
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("internal error", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
