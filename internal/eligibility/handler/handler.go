package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"legalcheck/internal/eligibility/laws"
	"legalcheck/internal/eligibility/models"
	"legalcheck/internal/eligibility/service"
	id "legalcheck/pkg/domain"
	dErrors "legalcheck/pkg/domain-errors"
	"legalcheck/pkg/platform/httputil"
	"legalcheck/pkg/requestcontext"
)

// Service defines the interface for eligibility operations.
type Service interface {
	Laws() []laws.Law
	Law(lawID string) (laws.Law, error)
	Rules(lawID string) ([]service.RuleInfo, error)
	Evaluate(ctx context.Context, owner id.UserID, personID id.PersonID, lawID string, asOf time.Time, ruleIDs ...string) (service.Report, error)
	EvaluateSnapshot(ctx context.Context, lawID string, snap *models.Snapshot, ruleIDs ...string) (service.Report, error)
	EvaluateAll(ctx context.Context, owner id.UserID, personID id.PersonID, asOf time.Time) ([]service.Report, error)
}

// Handler handles law catalogue and evaluation endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the read-only catalogue routes.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/laws", h.HandleListLaws)
	r.Get("/laws/{lawId}", h.HandleGetLaw)
	r.Get("/laws/{lawId}/rules", h.HandleListRules)
}

// Register mounts the evaluation routes, which require authentication.
func (h *Handler) Register(r chi.Router) {
	r.Post("/persons/{personId}/evaluate", h.HandleEvaluate)
	r.Post("/persons/{personId}/evaluate-all", h.HandleEvaluateAll)
	r.Post("/laws/{lawId}/evaluate", h.HandleEvaluateSnapshot)
}

func (h *Handler) HandleListLaws(w http.ResponseWriter, _ *http.Request) {
	list := h.service.Laws()
	if list == nil {
		list = []laws.Law{}
	}
	httputil.WriteJSON(w, http.StatusOK, LawListResponse{Laws: list})
}

func (h *Handler) HandleGetLaw(w http.ResponseWriter, r *http.Request) {
	law, err := h.service.Law(chi.URLParam(r, "lawId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, law)
}

func (h *Handler) HandleListRules(w http.ResponseWriter, r *http.Request) {
	lawID := chi.URLParam(r, "lawId")
	list, err := h.service.Rules(lawID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, RuleListResponse{LawID: lawID, Rules: nonNil(list)})
}

func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	userID, personID, ok := h.callerAndPerson(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[EvaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	report, err := h.service.Evaluate(ctx, userID, personID, req.LawID, asOfTime(req.AsOf), req.RuleIDs...)
	if err != nil {
		h.logger.ErrorContext(ctx, "evaluation failed",
			"error", err,
			"request_id", requestID,
			"person_id", personID,
			"law_id", req.LawID,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, NewEvaluationResponse(report))
}

func (h *Handler) HandleEvaluateAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	userID, personID, ok := h.callerAndPerson(w, r)
	if !ok {
		return
	}
	var req EvaluateAllRequest
	if r.ContentLength != 0 {
		decoded, ok := httputil.DecodeJSON[EvaluateAllRequest](w, r, h.logger, ctx, requestID)
		if !ok {
			return
		}
		req = *decoded
	}

	reports, err := h.service.EvaluateAll(ctx, userID, personID, asOfTime(req.AsOf))
	if err != nil {
		h.logger.ErrorContext(ctx, "evaluate all failed", "error", err, "request_id", requestID, "person_id", personID)
		httputil.WriteError(w, err)
		return
	}
	resp := EvaluateAllResponse{Evaluations: make([]EvaluationResponse, len(reports))}
	for i, report := range reports {
		resp.Evaluations[i] = NewEvaluationResponse(report)
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleEvaluateSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	if _, err := httputil.RequireUserID(ctx, h.logger); err != nil {
		httputil.WriteError(w, err)
		return
	}
	lawID := chi.URLParam(r, "lawId")
	req, ok := httputil.DecodeAndPrepare[SnapshotEvaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if req.AsOf != nil {
		req.Context.AsOf = req.AsOf.Time()
	}

	report, err := h.service.EvaluateSnapshot(ctx, lawID, req.Context, req.RuleIDs...)
	if err != nil {
		h.logger.WarnContext(ctx, "ad-hoc evaluation failed", "error", err, "request_id", requestID, "law_id", lawID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, NewEvaluationResponse(report))
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
