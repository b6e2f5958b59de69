package handler

import (
	"time"

	"legalcheck/internal/eligibility/laws"
	"legalcheck/internal/eligibility/models"
	"legalcheck/internal/eligibility/service"
)

const (
	statusSatisfied    = "satisfied"
	statusNotSatisfied = "not_satisfied"
)

type EvaluationResponse struct {
	LawID       string            `json:"law_id"`
	State       string            `json:"state"`
	BlockedBy   *string           `json:"blocked_by,omitempty"`
	EvaluatedAt time.Time         `json:"evaluated_at"`
	AsOf        models.Date       `json:"as_of"`
	Satisfied   bool              `json:"is_satisfied"`
	Results     []RuleResultEntry `json:"results"`
}

type RuleResultEntry struct {
	RuleID      string             `json:"rule_id"`
	Title       string             `json:"title"`
	Status      string             `json:"status"`
	IsSatisfied bool               `json:"is_satisfied"`
	Reasons     []string           `json:"reasons"`
	Citations   []models.Reference `json:"citations"`
}

type EvaluateAllResponse struct {
	Evaluations []EvaluationResponse `json:"evaluations"`
}

type LawListResponse struct {
	Laws []laws.Law `json:"laws"`
}

type RuleListResponse struct {
	LawID string             `json:"law_id"`
	Rules []service.RuleInfo `json:"rules"`
}

// NewEvaluationResponse is the wire form of a report, shared with the CLI.
func NewEvaluationResponse(r service.Report) EvaluationResponse {
	resp := EvaluationResponse{
		LawID:       r.LawID,
		State:       string(r.State),
		EvaluatedAt: r.EvaluatedAt,
		AsOf:        models.DateOf(r.AsOf),
		Satisfied:   r.Satisfied(),
		Results:     make([]RuleResultEntry, len(r.Results)),
	}
	if r.BlockedBy != nil {
		blockedBy := r.BlockedBy.ID()
		resp.BlockedBy = &blockedBy
	}
	for i, res := range r.Results {
		status := statusNotSatisfied
		if res.Satisfied {
			status = statusSatisfied
		}
		resp.Results[i] = RuleResultEntry{
			RuleID:      res.RuleID,
			Title:       res.Title,
			Status:      status,
			IsSatisfied: res.Satisfied,
			Reasons:     nonNil(res.Reasons),
			Citations:   nonNil(res.Citations),
		}
	}
	return resp
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
