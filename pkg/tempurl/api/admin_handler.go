package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/tendant/simple-tempurl/pkg/tempurl/admin"
)

// AdminHandler exposes cache administration endpoints
type AdminHandler struct {
	service admin.Service
}

func NewAdminHandler(service admin.Service) *AdminHandler {
	return &AdminHandler{service: service}
}

// Routes returns the router for admin endpoints
func (h *AdminHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/cache/stats", h.CacheStats)
	r.Get("/cache/entries", h.ListEntries)
	r.Delete("/cache/entries/{object_id}", h.InvalidateEntry)
	r.Delete("/cache/entries", h.InvalidateAll)
	return r
}

// CacheStats returns aggregated cache counters
func (h *AdminHandler) CacheStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.CacheStatistics(r.Context())
	if err != nil {
		slog.Error("Failed to collect cache statistics", "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal_error", "Failed to collect cache statistics")
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, stats)
}

// ListEntries returns the resident cache entries
func (h *AdminHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ListCachedURLs(r.Context())
	if err != nil {
		slog.Error("Failed to list cache entries", "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal_error", "Failed to list cache entries")
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, entries)
}

// InvalidateEntry drops the cached URL for one object
func (h *AdminHandler) InvalidateEntry(w http.ResponseWriter, r *http.Request) {
	objectID, err := uuid.Parse(chi.URLParam(r, "object_id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_object_id", "Invalid object ID")
		return
	}

	result, err := h.service.InvalidateURL(r.Context(), objectID)
	if err != nil {
		slog.Error("Failed to invalidate cache entry", "object_id", objectID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal_error", "Failed to invalidate cache entry")
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, result)
}

// InvalidateAll drops every cached URL
func (h *AdminHandler) InvalidateAll(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.InvalidateAll(r.Context())
	if err != nil {
		slog.Error("Failed to invalidate cache", "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal_error", "Failed to invalidate cache")
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, result)
}
