package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"legalcheck/internal/documents/service"
	em "legalcheck/internal/eligibility/models"
	id "legalcheck/pkg/domain"
	dErrors "legalcheck/pkg/domain-errors"
	"legalcheck/pkg/platform/httputil"
	"legalcheck/pkg/requestcontext"
)

// multipartOverhead leaves room for form boundaries and small fields.
const multipartOverhead = 1 << 20

type Service interface {
	Upload(ctx context.Context, owner id.UserID, personID id.PersonID, cmd service.UploadCommand) (em.EvidenceDocument, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the upload route; it requires authentication.
func (h *Handler) Register(r chi.Router) {
	r.Post("/persons/{personId}/documents", h.HandleUpload)
}

// HandleUpload accepts multipart field "file" with query parameter "type".
// Optional form fields: issued_at (YYYY-MM-DD) and notes.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	userID, err := httputil.RequireUserID(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	personID, err := id.ParsePersonID(chi.URLParam(r, "personId"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid person id"))
		return
	}
	docType, err := em.ParseEvidenceType(r.URL.Query().Get("type"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	cmd, err := readUpload(w, r)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid upload", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	cmd.Type = docType

	doc, err := h.service.Upload(ctx, userID, personID, cmd)
	if err != nil {
		h.logger.ErrorContext(ctx, "document upload failed", "error", err, "request_id", requestID, "person_id", personID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, doc)
}

func readUpload(w http.ResponseWriter, r *http.Request) (service.UploadCommand, error) {
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxSizeBytes+multipartOverhead)
	if err := r.ParseMultipartForm(service.MaxSizeBytes + multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return service.UploadCommand{}, dErrors.New(dErrors.CodeBadRequest, "document too large")
		}
		return service.UploadCommand{}, dErrors.New(dErrors.CodeBadRequest, "invalid multipart form")
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return service.UploadCommand{}, dErrors.New(dErrors.CodeBadRequest, "missing 'file' field in multipart form")
	}
	defer file.Close()

	// One byte past the limit is enough for the service to reject it.
	content, err := io.ReadAll(io.LimitReader(file, service.MaxSizeBytes+1))
	if err != nil {
		return service.UploadCommand{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "failed to read upload")
	}

	cmd := service.UploadCommand{
		FileName: header.Filename,
		Content:  content,
		Notes:    r.FormValue("notes"),
	}
	if raw := r.FormValue("issued_at"); raw != "" {
		issued, err := em.ParseDate(raw)
		if err != nil {
			return service.UploadCommand{}, err
		}
		cmd.IssuedAt = &issued
	}
	return cmd, nil
}
