// Package rules defines the two rule shapes the engine understands: a leaf
// predicate and an AND composite.
package rules

import "legalcheck/internal/eligibility/models"

// Rule is a pure, total check of one statutory unit. Evaluate must not
// panic on missing data; it reports the gap as an unsatisfied result.
type Rule interface {
	Reference() models.Reference
	Evaluate(snap *models.Snapshot) models.Result
}

// Predicate computes a leaf rule's result.
type Predicate func(snap *models.Snapshot) models.Result

// Leaf binds a predicate to the reference that identifies it.
type Leaf struct {
	ref  models.Reference
	pred Predicate
}

// NewLeaf panics on a nil predicate: rules are assembled at start-up and a
// missing predicate is a programming error.
func NewLeaf(ref models.Reference, pred Predicate) *Leaf {
	if pred == nil {
		panic("rules: nil predicate for " + ref.String())
	}
	return &Leaf{ref: ref, pred: pred}
}

func (l *Leaf) Reference() models.Reference {
	return l.ref
}

func (l *Leaf) Evaluate(snap *models.Snapshot) models.Result {
	return l.pred(snap)
}

// And is satisfied when every child is. All children are always evaluated
// so a failing result explains every unmet condition, not only the first.
type And struct {
	ref      models.Reference
	children []Rule
}

func NewAnd(ref models.Reference, children ...Rule) *And {
	return &And{ref: ref, children: append([]Rule(nil), children...)}
}

func (a *And) Reference() models.Reference {
	return a.ref
}

// Children returns the children in evaluation order.
func (a *And) Children() []Rule {
	return append([]Rule(nil), a.children...)
}

// Evaluate combines child results.
//
// On failure the result carries the failing children's reasons (in order,
// deduplicated) and citations, plus the composite's own reference. On
// success it carries the union over all children. No children means
// satisfied with nothing to report.
func (a *And) Evaluate(snap *models.Snapshot) models.Result {
	var (
		allReasons, failedReasons     []string
		allCitations, failedCitations []models.Reference
		failed                        bool
	)
	for _, child := range a.children {
		r := child.Evaluate(snap)
		allReasons = append(allReasons, r.Reasons...)
		allCitations = append(allCitations, r.Citations...)
		if !r.Satisfied {
			failed = true
			failedReasons = append(failedReasons, r.Reasons...)
			failedCitations = append(failedCitations, r.Citations...)
		}
	}
	if failed {
		return models.NewResult(false, failedReasons, append(failedCitations, a.ref))
	}
	return models.NewResult(true, allReasons, allCitations)
}

// Walk visits rule and, for composites, every descendant depth-first.
func Walk(rule Rule, visit func(Rule)) {
	visit(rule)
	if and, ok := rule.(*And); ok {
		for _, child := range and.children {
			Walk(child, visit)
		}
	}
}
