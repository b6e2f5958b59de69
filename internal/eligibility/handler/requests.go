package handler

import (
	"strings"
	"time"

	"legalcheck/internal/eligibility/models"
	dErrors "legalcheck/pkg/domain-errors"
	pstrings "legalcheck/pkg/platform/strings"
	"legalcheck/pkg/validation"
)

// EvaluateRequest is the body of POST /persons/{personId}/evaluate and
// evaluate-all. LawID is ignored by evaluate-all.
type EvaluateRequest struct {
	LawID   string       `json:"law_id" validate:"required"`
	AsOf    *models.Date `json:"as_of,omitempty"`
	RuleIDs []string     `json:"rule_ids,omitempty" validate:"max=100"`
}

func (r *EvaluateRequest) Normalize() {
	r.LawID = strings.TrimSpace(r.LawID)
	r.RuleIDs = normalizeRuleIDs(r.RuleIDs)
}

func (r *EvaluateRequest) Validate() error {
	return validation.Validate(r)
}

// EvaluateAllRequest only carries the as-of date.
type EvaluateAllRequest struct {
	AsOf *models.Date `json:"as_of,omitempty"`
}

// SnapshotEvaluateRequest is an ad-hoc evaluation against caller-supplied
// facts. AsOf, when given, overrides the context's own date.
type SnapshotEvaluateRequest struct {
	Context *models.Snapshot `json:"context"`
	AsOf    *models.Date     `json:"as_of,omitempty"`
	RuleIDs []string         `json:"rule_ids,omitempty" validate:"max=100"`
}

func (r *SnapshotEvaluateRequest) Normalize() {
	r.RuleIDs = normalizeRuleIDs(r.RuleIDs)
}

func (r *SnapshotEvaluateRequest) Validate() error {
	if r.Context == nil {
		return dErrors.New(dErrors.CodeValidation, "context is required")
	}
	return validation.Validate(r)
}

func normalizeRuleIDs(ids []string) []string {
	out := pstrings.DedupeAndTrim(ids)
	if len(out) == 0 {
		return nil
	}
	return out
}

func asOfTime(d *models.Date) time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.Time()
}
