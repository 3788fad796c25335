package settings

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"lsu-service/internal/auth"
	"lsu-service/internal/httputil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	repo     Repository
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandler(repo Repository, logger *slog.Logger) *Handler {
	return &Handler{
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/settings", h.ListParameters)
	router.Get("/settings/{key}", h.GetParameter)
	router.Put("/settings/{key}", h.UpdateParameter)
}

func (h *Handler) GetParameter(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	param, err := h.repo.GetByKey(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.handleRepoError(w, err)
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, param)
}

func (h *Handler) ListParameters(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	params, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list parameters", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, params)
}

func (h *Handler) UpdateParameter(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	key := chi.URLParam(r, "key")

	var req UpdateValueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := h.repo.GetByKey(r.Context(), key)
	if err != nil {
		h.handleRepoError(w, err)
		return
	}
	if err := existing.ValidateValue(req.Value); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.repo.UpdateValue(r.Context(), key, req.Value)
	if err != nil {
		h.handleRepoError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "parameter updated", "key", key)

	httputil.RespondWithJSON(w, http.StatusOK, updated)
}

// requireAdmin writes the error response itself and reports whether the
// caller may proceed.
func (h *Handler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	role, ok := auth.GetRole(r.Context())
	if !ok {
		httputil.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	if role != auth.RoleAdmin {
		httputil.RespondWithError(w, http.StatusForbidden, "admin access required")
		return false
	}
	return true
}

func (h *Handler) handleRepoError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrParameterNotFound) {
		httputil.RespondWithError(w, http.StatusNotFound, "parameter not found")
		return
	}
	h.logger.Error("internal error", "error", err)
	httputil.RespondWithError(w, http.StatusInternalServerError, "internal server error")
}
