package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	em "legalcheck/internal/eligibility/models"
	"legalcheck/internal/person/models"
	"legalcheck/internal/person/service"
	id "legalcheck/pkg/domain"
	dErrors "legalcheck/pkg/domain-errors"
	"legalcheck/pkg/platform/httputil"
	"legalcheck/pkg/requestcontext"
)

// Service is the person use-case surface the handler needs.
type Service interface {
	Create(ctx context.Context, owner id.UserID, cmd service.CreateCommand) (*models.Person, error)
	Get(ctx context.Context, owner id.UserID, personID id.PersonID) (*models.Person, error)
	ListMine(ctx context.Context, owner id.UserID) ([]*models.Person, error)
	AddResidencePeriod(ctx context.Context, owner id.UserID, personID id.PersonID, period em.ResidencePeriod) (*models.Person, error)
	AddPermit(ctx context.Context, owner id.UserID, personID id.PersonID, permit em.ResidencePermit) (*models.Person, error)
	AddEducation(ctx context.Context, owner id.UserID, personID id.PersonID, record em.EducationRecord) (*models.Person, error)
	AddEmployment(ctx context.Context, owner id.UserID, personID id.PersonID, record em.EmploymentRecord) (*models.Person, error)
	AddEducationCase(ctx context.Context, owner id.UserID, personID id.PersonID, c em.EducationCase) (*models.Person, error)
	AddEmploymentCase(ctx context.Context, owner id.UserID, personID id.PersonID, c em.EmploymentCase) (*models.Person, error)
	UpdateFacts(ctx context.Context, owner id.UserID, personID id.PersonID, update models.FactsUpdate) (*models.Person, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the person routes. The router must already require
// authentication.
func (h *Handler) Register(r chi.Router) {
	r.Post("/persons", h.HandleCreate)
	r.Get("/persons", h.HandleList)
	r.Get("/persons/{personId}", h.HandleGet)
	r.Patch("/persons/{personId}/facts", h.HandleUpdateFacts)
	r.Post("/persons/{personId}/residence", appendRecord(h, "add residence period", Service.AddResidencePeriod))
	r.Post("/persons/{personId}/permits", appendRecord(h, "add permit", Service.AddPermit))
	r.Post("/persons/{personId}/education", appendRecord(h, "add education record", Service.AddEducation))
	r.Post("/persons/{personId}/employment", appendRecord(h, "add employment record", Service.AddEmployment))
	r.Post("/persons/{personId}/education-cases", appendRecord(h, "add education case", Service.AddEducationCase))
	r.Post("/persons/{personId}/employment-cases", appendRecord(h, "add employment case", Service.AddEmploymentCase))
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	userID, err := httputil.RequireUserID(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[CreatePersonRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	p, err := h.service.Create(ctx, userID, service.CreateCommand{
		Name:            req.Name,
		NationalityISO2: req.Nationality,
		BirthDate:       req.BirthDate,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "create person failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := httputil.RequireUserID(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	list, err := h.service.ListMine(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list persons failed", "error", err, "request_id", requestcontext.RequestID(ctx))
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPersonListResponse(list))
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, personID, ok := h.callerAndPerson(w, r)
	if !ok {
		return
	}
	p, err := h.service.Get(ctx, userID, personID)
	if err != nil {
		h.logger.WarnContext(ctx, "get person failed", "error", err, "request_id", requestcontext.RequestID(ctx), "person_id", personID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) HandleUpdateFacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	userID, personID, ok := h.callerAndPerson(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdateFactsRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	p, err := h.service.UpdateFacts(ctx, userID, personID, req.toUpdate())
	if err != nil {
		h.logger.ErrorContext(ctx, "update facts failed", "error", err, "request_id", requestID, "person_id", personID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

// appendRecord builds a handler that decodes one record of type T and
// appends it through add.
func appendRecord[T any](h *Handler, op string, add func(Service, context.Context, id.UserID, id.PersonID, T) (*models.Person, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := requestcontext.RequestID(ctx)
		userID, personID, ok := h.callerAndPerson(w, r)
		if !ok {
			return
		}
		record, ok := httputil.DecodeJSON[T](w, r, h.logger, ctx, requestID)
		if !ok {
			return
		}
		p, err := add(h.service, ctx, userID, personID, *record)
		if err != nil {
			h.logger.ErrorContext(ctx, op+" failed", "error", err, "request_id", requestID, "person_id", personID)
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusCreated, p)
	}
}

func (h *Handler) callerAndPerson(w http.ResponseWriter, r *http.Request) (id.UserID, id.PersonID, bool) {
	userID, err := httputil.RequireUserID(r.Context(), h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return id.UserID{}, id.PersonID{}, false
	}
	personID, err := id.ParsePersonID(chi.URLParam(r, "personId"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid person id"))
		return id.UserID{}, id.PersonID{}, false
	}
	return userID, personID, true
}
