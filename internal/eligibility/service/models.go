package service

import (
	"time"

	"legalcheck/internal/eligibility/engine"
	"legalcheck/internal/eligibility/laws"
	"legalcheck/internal/eligibility/models"
)

// Report is one law's evaluation as handed to transports.
type Report struct {
	LawID       string
	State       engine.State
	BlockedBy   *models.Reference
	EvaluatedAt time.Time
	AsOf        time.Time
	Results     []RuleReport
}

// Satisfied is true when the law completed and every rule passed.
func (r Report) Satisfied() bool {
	if r.State != engine.StateCompleted {
		return false
	}
	for _, res := range r.Results {
		if !res.Satisfied {
			return false
		}
	}
	return true
}

type RuleReport struct {
	RuleID    string
	Title     string
	Rule      models.Reference
	Satisfied bool
	Reasons   []string
	Citations []models.Reference
}

// RuleInfo describes one configured rule of a law.
type RuleInfo struct {
	RuleID   string           `json:"rule_id"`
	Title    string           `json:"title"`
	Rule     models.Reference `json:"reference"`
	Blocking bool             `json:"blocking"`
}

func newReport(ev engine.Evaluation, cat *laws.Catalogue, asOf, now time.Time) Report {
	out := Report{
		LawID:       ev.LawID,
		State:       ev.State,
		BlockedBy:   ev.BlockedBy,
		EvaluatedAt: now,
		AsOf:        asOf,
		Results:     make([]RuleReport, len(ev.Results)),
	}
	for i, o := range ev.Results {
		out.Results[i] = RuleReport{
			RuleID:    o.Rule.ID(),
			Title:     cat.Title(o.Rule),
			Rule:      o.Rule,
			Satisfied: o.Result.Satisfied,
			Reasons:   append([]string(nil), o.Result.Reasons...),
			Citations: append([]models.Reference(nil), o.Result.Citations...),
		}
	}
	return out
}
