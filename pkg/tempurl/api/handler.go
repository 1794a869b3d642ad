package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/tendant/simple-tempurl/pkg/tempurl"
	"github.com/tendant/simple-tempurl/pkg/tempurl/signer"
)

// TempURLHandler handles signed-URL issuance endpoints
type TempURLHandler struct {
	service tempurl.Service
}

func NewTempURLHandler(service tempurl.Service) *TempURLHandler {
	return &TempURLHandler{service: service}
}

// Routes returns the router for object endpoints
func (h *TempURLHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{object_id}/tempurl", h.IssueTempURL)
	r.Get("/{object_id}", h.GetObject)
	return r
}

// TempURLResponse represents an issued signed URL
type TempURLResponse struct {
	ObjectID  string    `json:"object_id"`
	URL       string    `json:"url"`
	Container string    `json:"container"`
	ExpiresAt time.Time `json:"expires_at"`
	FromCache bool      `json:"from_cache"`
}

// IssueTempURL issues a signed download URL for an object
func (h *TempURLHandler) IssueTempURL(w http.ResponseWriter, r *http.Request) {
	objectID, err := uuid.Parse(chi.URLParam(r, "object_id"))
	if err != nil {
		slog.Error("Invalid object ID", "object_id", chi.URLParam(r, "object_id"), "error", err)
		writeError(w, r, http.StatusBadRequest, "invalid_object_id", "Invalid object ID")
		return
	}

	issued, err := h.service.IssueDownloadURL(r.Context(), tempurl.IssueURLRequest{ObjectID: objectID})
	if err != nil {
		h.renderIssueError(w, r, objectID, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, TempURLResponse{
		ObjectID:  issued.ObjectID.String(),
		URL:       issued.URL,
		Container: issued.Container,
		ExpiresAt: issued.ExpiresAt,
		FromCache: issued.FromCache,
	})
}

// GetObject returns the catalog entry for an object
func (h *TempURLHandler) GetObject(w http.ResponseWriter, r *http.Request) {
	objectID, err := uuid.Parse(chi.URLParam(r, "object_id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_object_id", "Invalid object ID")
		return
	}

	info, err := h.service.GetObjectInfo(r.Context(), objectID)
	if err != nil {
		if errors.Is(err, tempurl.ErrObjectNotFound) {
			writeError(w, r, http.StatusNotFound, "object_not_found", "Object not found")
			return
		}
		slog.Error("Failed to get object", "object_id", objectID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal_error", "Failed to get object")
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, info)
}

func (h *TempURLHandler) renderIssueError(w http.ResponseWriter, r *http.Request, objectID uuid.UUID, err error) {
	switch {
	case errors.Is(err, tempurl.ErrObjectNotFound), errors.Is(err, tempurl.ErrObjectNotAvailable):
		writeError(w, r, http.StatusNotFound, "object_not_found", "Object not found")
	case errors.Is(err, tempurl.ErrObjectUnacceptable):
		writeError(w, r, http.StatusBadRequest, "object_unacceptable", "Object does not have a valid object ID")
	case errors.Is(err, tempurl.ErrMissingCredential):
		slog.Error("Missing storage credential", "object_id", objectID, "error", err)
		writeError(w, r, http.StatusServiceUnavailable, "missing_credential", "Storage credentials are not available")
	case errors.Is(err, tempurl.ErrInvalidConfiguration):
		slog.Error("Invalid signing configuration", "error", err)
		writeError(w, r, http.StatusInternalServerError, "invalid_configuration", "Signed URL configuration is invalid")
	default:
		slog.Error("Failed to issue signed URL", "object_id", objectID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal_error", "Failed to issue signed URL")
	}
}

// VerifyHandler validates signed URLs, as an operator aid
type VerifyHandler struct {
	signer *signer.Signer
	key    string
}

func NewVerifyHandler(s *signer.Signer, key string) *VerifyHandler {
	return &VerifyHandler{signer: s, key: key}
}

// VerifyRequest represents the request to verify a signed URL
type VerifyRequest struct {
	URL    string `json:"url"`
	Method string `json:"method,omitempty"`
}

// VerifyResponse reports the validation outcome
type VerifyResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// Verify checks the signature and expiry of a signed URL
func (h *VerifyHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if req.URL == "" {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "url is required")
		return
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	resp := VerifyResponse{Valid: true}
	if err := h.signer.ValidateURL(method, req.URL, h.key); err != nil {
		if !signer.IsAuthError(err) {
			writeError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		resp.Valid = false
		resp.Reason = err.Error()
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

// errorResponse is the wire shape of all API errors
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: errorBody{Code: code, Message: message}})
}
