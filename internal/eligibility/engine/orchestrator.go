package engine

import (
	"fmt"

	"legalcheck/internal/eligibility/models"
	dErrors "legalcheck/pkg/domain-errors"
)

// Orchestrator holds the configured rule sets by law. It is built once and
// read-only afterwards, so concurrent Evaluate calls are safe.
type Orchestrator struct {
	sets  map[string]RuleSet
	order []string
}

// NewOrchestrator rejects duplicate or empty law IDs and rule sets whose
// rules collide on ID. Blocking references are checked per evaluation.
func NewOrchestrator(sets ...RuleSet) (*Orchestrator, error) {
	o := &Orchestrator{sets: make(map[string]RuleSet, len(sets))}
	for _, set := range sets {
		if set.LawID == "" {
			return nil, dErrors.New(dErrors.CodeInvalidRuleSet, "rule set without law id")
		}
		if _, dup := o.sets[set.LawID]; dup {
			return nil, dErrors.New(dErrors.CodeInvalidRuleSet, fmt.Sprintf("law %s configured twice", set.LawID))
		}
		if err := set.uniqueIDs(); err != nil {
			return nil, err
		}
		o.sets[set.LawID] = set
		o.order = append(o.order, set.LawID)
	}
	return o, nil
}

// Laws returns the configured law IDs in configuration order.
func (o *Orchestrator) Laws() []string {
	return append([]string(nil), o.order...)
}

// RuleSet returns the configuration of lawID.
func (o *Orchestrator) RuleSet(lawID string) (RuleSet, error) {
	set, ok := o.sets[lawID]
	if !ok {
		return RuleSet{}, notFound(ErrUnknownLaw, "law %s is not configured", lawID)
	}
	return set, nil
}

// Evaluate runs lawID's rules, optionally narrowed to ruleIDs. The full
// configuration is validated before narrowing so that a broken blocking set
// is reported even when the selection would drop it.
func (o *Orchestrator) Evaluate(lawID string, snap *models.Snapshot, ruleIDs ...string) (Evaluation, error) {
	set, err := o.RuleSet(lawID)
	if err != nil {
		return Evaluation{}, err
	}
	if err := set.validate(); err != nil {
		return Evaluation{}, err
	}
	set, err = set.Select(ruleIDs)
	if err != nil {
		return Evaluation{}, err
	}
	return Run(set, snap)
}
