package engine

import (
	"fmt"

	"legalcheck/internal/eligibility/models"
	"legalcheck/internal/eligibility/rules"
	dErrors "legalcheck/pkg/domain-errors"
)

// RuleSet is the configuration for one law: rules in evaluation order and
// the references whose failure stops evaluation.
type RuleSet struct {
	LawID    string
	Rules    []rules.Rule
	Blocking []models.Reference
}

// IsBlocking reports whether ref is a gatekeeper in this set.
func (rs RuleSet) IsBlocking(ref models.Reference) bool {
	_, ok := rs.blockingSet()[ref]
	return ok
}

// Rule looks a rule up by its ID.
func (rs RuleSet) Rule(ruleID string) (rules.Rule, bool) {
	for _, r := range rs.Rules {
		if r.Reference().ID() == ruleID {
			return r, true
		}
	}
	return nil, false
}

// Select narrows the set to ruleIDs, keeping configured order. The
// blocking set shrinks to the selected gatekeepers. An empty selection
// returns the set unchanged.
func (rs RuleSet) Select(ruleIDs []string) (RuleSet, error) {
	if len(ruleIDs) == 0 {
		return rs, nil
	}
	wanted := make(map[string]struct{}, len(ruleIDs))
	for _, ruleID := range ruleIDs {
		if _, ok := rs.Rule(ruleID); !ok {
			return RuleSet{}, notFound(ErrUnknownRule, "rule %s is not configured for law %s", ruleID, rs.LawID)
		}
		wanted[ruleID] = struct{}{}
	}

	out := RuleSet{LawID: rs.LawID}
	selected := map[models.Reference]struct{}{}
	for _, r := range rs.Rules {
		if _, ok := wanted[r.Reference().ID()]; ok {
			out.Rules = append(out.Rules, r)
			selected[r.Reference()] = struct{}{}
		}
	}
	for _, b := range rs.Blocking {
		if _, ok := selected[b]; ok {
			out.Blocking = append(out.Blocking, b)
		}
	}
	return out, nil
}

func (rs RuleSet) validate() error {
	configured := make(map[models.Reference]struct{}, len(rs.Rules))
	for _, r := range rs.Rules {
		configured[r.Reference()] = struct{}{}
	}
	for _, b := range rs.Blocking {
		if _, ok := configured[b]; !ok {
			return notFound(ErrBlockingRuleNotConfigured, "blocking rule %s is not part of law %s", b, rs.LawID)
		}
	}
	return nil
}

// uniqueIDs rejects two rules that map to one ID, which would make
// selection by ID ambiguous.
func (rs RuleSet) uniqueIDs() error {
	ids := make(map[string]models.Reference, len(rs.Rules))
	for _, r := range rs.Rules {
		ref := r.Reference()
		if prev, dup := ids[ref.ID()]; dup {
			return dErrors.New(dErrors.CodeInvalidRuleSet,
				fmt.Sprintf("rules %s and %s of law %s share the id %s", prev, ref, rs.LawID, ref.ID()))
		}
		ids[ref.ID()] = ref
	}
	return nil
}

func (rs RuleSet) blockingSet() map[models.Reference]struct{} {
	set := make(map[models.Reference]struct{}, len(rs.Blocking))
	for _, b := range rs.Blocking {
		set[b] = struct{}{}
	}
	return set
}
