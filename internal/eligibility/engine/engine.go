// Package engine runs an ordered rule list against a snapshot and stops
// early when a gatekeeper rule fails. It knows nothing about individual laws.
package engine

import (
	"errors"
	"fmt"

	"legalcheck/internal/eligibility/models"
	"legalcheck/internal/eligibility/rules"
	dErrors "legalcheck/pkg/domain-errors"
)

// Configuration errors. They reach callers wrapped in a CodeNotFound
// domain error; match them with errors.Is.
var (
	ErrUnknownLaw                = errors.New("unknown law")
	ErrBlockingRuleNotConfigured = errors.New("blocking rule not configured")
	ErrUnknownRule               = errors.New("unknown rule")
)

// State of a single evaluation run.
type State string

const (
	StateRunning   State = "running"
	StateBlocked   State = "blocked"
	StateCompleted State = "completed"
)

// IsTerminal reports whether no further rules will be evaluated.
func (s State) IsTerminal() bool {
	return s == StateBlocked || s == StateCompleted
}

// RuleOutcome pairs a rule identity with the result it produced.
type RuleOutcome struct {
	Rule   models.Reference
	Result models.Result
}

// Evaluation is the output of one run. Results are in rule order; when
// blocked, the last result is the gatekeeper's failure.
type Evaluation struct {
	LawID     string
	State     State
	Results   []RuleOutcome
	BlockedBy *models.Reference
}

// Satisfied reports whether the run completed with every rule satisfied.
func (e Evaluation) Satisfied() bool {
	if e.State != StateCompleted {
		return false
	}
	for _, o := range e.Results {
		if !o.Result.Satisfied {
			return false
		}
	}
	return true
}

// Failures counts unsatisfied results.
func (e Evaluation) Failures() int {
	n := 0
	for _, o := range e.Results {
		if !o.Result.Satisfied {
			n++
		}
	}
	return n
}

// run tracks the state machine Running -> {Blocked, Completed}.
type run struct {
	state    State
	blocking map[models.Reference]struct{}
	eval     Evaluation
}

func (r *run) step(rule rules.Rule, snap *models.Snapshot) {
	if r.state.IsTerminal() {
		return
	}
	res := rule.Evaluate(snap)
	ref := rule.Reference()
	r.eval.Results = append(r.eval.Results, RuleOutcome{Rule: ref, Result: res})
	if _, gate := r.blocking[ref]; gate && !res.Satisfied {
		r.state = StateBlocked
		r.eval.BlockedBy = &ref
	}
}

// Run evaluates set against snap. It returns a CodeNotFound error when a
// blocking reference matches none of the set's rules.
func Run(set RuleSet, snap *models.Snapshot) (Evaluation, error) {
	if err := set.validate(); err != nil {
		return Evaluation{}, err
	}
	r := &run{
		state:    StateRunning,
		blocking: set.blockingSet(),
		eval:     Evaluation{LawID: set.LawID, Results: make([]RuleOutcome, 0, len(set.Rules))},
	}
	for _, rule := range set.Rules {
		r.step(rule, snap)
		if r.state.IsTerminal() {
			break
		}
	}
	if r.state == StateRunning {
		r.state = StateCompleted
	}
	r.eval.State = r.state
	return r.eval, nil
}

func notFound(sentinel error, format string, args ...any) error {
	return dErrors.Wrap(sentinel, dErrors.CodeNotFound, fmt.Sprintf(format, args...))
}
