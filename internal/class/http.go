package class

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"lsu-service/internal/auth"
	"lsu-service/internal/httputil"
	"lsu-service/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const maxPhotoSize = 16 << 20 // 16MB, same limit as the photo upload form

type Handler struct {
	service    Service
	validate   *validator.Validate
	logger     *slog.Logger
	metrics    *metrics.Metrics
	uploadsDir string
}

func NewHandler(service Service, logger *slog.Logger, m *metrics.Metrics, uploadsDir string) *Handler {
	return &Handler{
		service:    service,
		validate:   validator.New(),
		logger:     logger,
		metrics:    m,
		uploadsDir: uploadsDir,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/classes", h.CreateClass)
	router.Get("/classes", h.ListClasses)
	router.Get("/classes/{id}", h.GetClass)
	router.Post("/classes/{id}/photo", h.UploadPhoto)
}

func (h *Handler) CreateClass(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := auth.GetUserID(r.Context())
	if !ok {
		httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateClassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.InfoContext(r.Context(), "creating class", "name", req.Name, "school_year", req.SchoolYear)
	created, err := h.service.CreateClass(r.Context(), teacherID, req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.metrics.RecordClassCreated(r.Context())

	httputil.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *Handler) ListClasses(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := auth.GetUserID(r.Context())
	if !ok {
		httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	classes, err := h.service.ListClasses(r.Context(), teacherID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, classes)
}

func (h *Handler) GetClass(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := auth.GetUserID(r.Context())
	if !ok {
		httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid class ID")
		return
	}

	class, err := h.service.GetClass(r.Context(), teacherID, id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, class)
}

// UploadPhoto stores a class photo on disk and records its path
func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := auth.GetUserID(r.Context())
	if !ok {
		httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid class ID")
		return
	}

	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	photosDir := filepath.Join(h.uploadsDir, "photos")
	if err := os.MkdirAll(photosDir, 0o755); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to create uploads dir", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "failed to store photo")
		return
	}

	filename := fmt.Sprintf("classe_%d_%s", id, filepath.Base(header.Filename))
	dstPath := filepath.Join(photosDir, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to create photo file", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "failed to store photo")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write photo file", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "failed to store photo")
		return
	}

	relPath := filepath.ToSlash(filepath.Join("uploads", "photos", filename))
	if err := h.service.AttachPhoto(r.Context(), teacherID, id, relPath); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "class photo uploaded", "class_id", id, "path", relPath)
	httputil.RespondWithJSON(w, http.StatusOK, map[string]string{"photoPath": relPath})
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrClassNotFound):
		httputil.RespondWithError(w, http.StatusNotFound, "class not found")
	case errors.Is(err, ErrNotOwner):
		httputil.RespondWithError(w, http.StatusForbidden, "access denied")
	case errors.Is(err, ErrClassExists):
		httputil.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidInput):
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("internal error", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
