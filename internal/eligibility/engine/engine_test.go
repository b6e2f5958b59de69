package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"legalcheck/internal/eligibility/models"
	"legalcheck/internal/eligibility/rules"
	id "legalcheck/pkg/domain"
	dErrors "legalcheck/pkg/domain-errors"
)

type EngineSuite struct {
	suite.Suite
	snap *models.Snapshot
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.snap = models.NewSnapshot(id.NewPersonID(), time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
}

func leaf(provision string, ok bool) rules.Rule {
	ref := models.Ref("AufenthG", provision, "Check")
	return rules.NewLeaf(ref, func(*models.Snapshot) models.Result {
		if ok {
			return models.Pass(provision+" passed", ref)
		}
		return models.Fail(provision+" failed", ref)
	})
}

func refOf(r rules.Rule) models.Reference { return r.Reference() }

func (s *EngineSuite) TestRun() {
	gate := leaf("§ 11", false)
	a, b, c := leaf("§ 13", true), leaf("§ 12", false), leaf("§ 9c", true)

	s.Run("non-blocking failures never stop processing", func() {
		set := RuleSet{LawID: "AufenthG", Rules: []rules.Rule{a, b, c}, Blocking: []models.Reference{refOf(a)}}
		got, err := Run(set, s.snap)
		s.Require().NoError(err)
		s.Equal(StateCompleted, got.State)
		s.Len(got.Results, 3)
		s.Nil(got.BlockedBy)
		s.Equal(1, got.Failures())
		s.False(got.Satisfied())
	})

	s.Run("blocking failure at position k returns k results", func() {
		for k := 1; k <= 3; k++ {
			ordered := []rules.Rule{a, c, leaf("§ 15a", true)}
			ordered = append(ordered[:k-1:k-1], append([]rules.Rule{gate}, ordered[k-1:]...)...)
			set := RuleSet{LawID: "AufenthG", Rules: ordered, Blocking: []models.Reference{refOf(gate)}}

			got, err := Run(set, s.snap)
			s.Require().NoError(err)
			s.Equal(StateBlocked, got.State)
			s.Len(got.Results, k)
			s.Equal(refOf(gate), got.Results[k-1].Rule)
			s.False(got.Results[k-1].Result.Satisfied)
			s.Require().NotNil(got.BlockedBy)
			s.Equal(refOf(gate), *got.BlockedBy)
		}
	})

	s.Run("passing gatekeeper does not block", func() {
		open := leaf("§ 10", true)
		set := RuleSet{LawID: "AufenthG", Rules: []rules.Rule{open, b}, Blocking: []models.Reference{refOf(open)}}
		got, err := Run(set, s.snap)
		s.Require().NoError(err)
		s.Equal(StateCompleted, got.State)
		s.Len(got.Results, 2)
	})

	s.Run("empty set completes with no results", func() {
		got, err := Run(RuleSet{LawID: "StAG"}, s.snap)
		s.Require().NoError(err)
		s.Equal(StateCompleted, got.State)
		s.Empty(got.Results)
		s.True(got.Satisfied())
	})

	s.Run("blocking reference outside the set is not found", func() {
		set := RuleSet{LawID: "StAG", Rules: []rules.Rule{a}, Blocking: []models.Reference{refOf(gate)}}
		_, err := Run(set, s.snap)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.True(errors.Is(err, ErrBlockingRuleNotConfigured))
	})

	s.Run("deterministic", func() {
		set := RuleSet{LawID: "AufenthG", Rules: []rules.Rule{a, b, c}}
		first, _ := Run(set, s.snap)
		second, _ := Run(set, s.snap)
		s.Equal(first, second)
	})
}

func (s *EngineSuite) TestSelect() {
	gate, a, b := leaf("§ 11", false), leaf("§ 13", true), leaf("§ 12", false)
	set := RuleSet{LawID: "AufenthG", Rules: []rules.Rule{gate, a, b}, Blocking: []models.Reference{refOf(gate)}}

	s.Run("keeps configured order", func() {
		got, err := set.Select([]string{refOf(b).ID(), refOf(a).ID()})
		s.Require().NoError(err)
		s.Equal([]models.Reference{refOf(a), refOf(b)}, []models.Reference{refOf(got.Rules[0]), refOf(got.Rules[1])})
		s.Empty(got.Blocking)
	})

	s.Run("selected gatekeepers stay blocking", func() {
		got, err := set.Select([]string{refOf(gate).ID()})
		s.Require().NoError(err)
		s.True(got.IsBlocking(refOf(gate)))
	})

	s.Run("unknown rule is not found", func() {
		_, err := set.Select([]string{"AufenthG:§99:Nothing"})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.ErrorIs(err, ErrUnknownRule)
	})

	s.Run("empty selection is a no-op", func() {
		got, err := set.Select(nil)
		s.Require().NoError(err)
		s.Len(got.Rules, 3)
	})
}

func (s *EngineSuite) TestOrchestrator() {
	gate, a := leaf("§ 11", false), leaf("§ 13", true)
	aufenthG := RuleSet{LawID: "AufenthG", Rules: []rules.Rule{gate, a}, Blocking: []models.Reference{refOf(gate)}}
	broken := RuleSet{LawID: "Broken", Rules: []rules.Rule{a}, Blocking: []models.Reference{refOf(gate)}}

	o, err := NewOrchestrator(aufenthG, broken)
	s.Require().NoError(err)

	s.Run("lists laws in configuration order", func() {
		s.Equal([]string{"AufenthG", "Broken"}, o.Laws())
	})

	s.Run("evaluates a configured law", func() {
		got, err := o.Evaluate("AufenthG", s.snap)
		s.Require().NoError(err)
		s.Equal(StateBlocked, got.State)
		s.Len(got.Results, 1)
		s.Equal("AufenthG", got.LawID)
	})

	s.Run("selection without the gatekeeper completes", func() {
		got, err := o.Evaluate("AufenthG", s.snap, refOf(a).ID())
		s.Require().NoError(err)
		s.Equal(StateCompleted, got.State)
	})

	s.Run("unknown law is not found", func() {
		_, err := o.Evaluate("StAG2", s.snap)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.ErrorIs(err, ErrUnknownLaw)
	})

	s.Run("broken blocking set is reported even when selection drops it", func() {
		_, err := o.Evaluate("Broken", s.snap, refOf(a).ID())
		s.ErrorIs(err, ErrBlockingRuleNotConfigured)
	})

	s.Run("duplicate laws are rejected", func() {
		_, err := NewOrchestrator(aufenthG, aufenthG)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidRuleSet))
	})

	s.Run("rules sharing an id are rejected", func() {
		_, err := NewOrchestrator(RuleSet{LawID: "AufenthG", Rules: []rules.Rule{leaf("§ 18", true), leaf("§18", true)}})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidRuleSet))
		s.Contains(err.Error(), "AufenthG:§18:Check")
	})

	s.Run("state terminality", func() {
		s.False(StateRunning.IsTerminal())
		s.True(StateBlocked.IsTerminal())
		s.True(StateCompleted.IsTerminal())
	})
}
