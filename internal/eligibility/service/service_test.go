package service

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"legalcheck/internal/eligibility/config"
	"legalcheck/internal/eligibility/engine"
	"legalcheck/internal/eligibility/laws"
	"legalcheck/internal/eligibility/metrics"
	"legalcheck/internal/eligibility/models"
	pm "legalcheck/internal/person/models"
	personsvc "legalcheck/internal/person/service"
	"legalcheck/internal/person/store"
	"legalcheck/internal/platform/tracer"
	id "legalcheck/pkg/domain"
	dErrors "legalcheck/pkg/domain-errors"
)

// recordingTracer keeps span names and events for assertions.
type recordingTracer struct {
	mu     sync.Mutex
	spans  []string
	events []string
	errs   []error
}

func (t *recordingTracer) Start(ctx context.Context, name string, _ ...tracer.Attribute) (context.Context, tracer.Span) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.spans = append(t.spans, name)
	return ctx, &recordingSpan{t: t}
}

type recordingSpan struct{ t *recordingTracer }

func (s *recordingSpan) End(err error) {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	s.t.errs = append(s.t.errs, err)
}

func (s *recordingSpan) SetAttributes(...tracer.Attribute) {}

func (s *recordingSpan) AddEvent(name string, _ ...tracer.Attribute) {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	s.t.events = append(s.t.events, name)
}

type ServiceSuite struct {
	suite.Suite
	persons *personsvc.Service
	service *Service
	metrics *metrics.Metrics
	tracer  *recordingTracer
	owner   id.UserID
	now     time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.now = time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC)
	clock := func() time.Time { return s.now }
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	s.persons = personsvc.New(store.NewInMemory(), personsvc.WithLogger(logger), personsvc.WithClock(clock))
	s.metrics = metrics.NewWithRegisterer(prometheus.NewRegistry())
	s.tracer = &recordingTracer{}
	s.owner = id.NewUserID()

	cat := laws.Default()
	ruleSets, err := config.Default(cat)
	s.Require().NoError(err)
	s.service, err = New(s.persons, ruleSets, cat,
		WithLogger(logger),
		WithMetrics(s.metrics),
		WithTracer(s.tracer),
		WithClock(clock),
	)
	s.Require().NoError(err)
}

func (s *ServiceSuite) createPerson() *pm.Person {
	p, err := s.persons.Create(context.Background(), s.owner, personsvc.CreateCommand{Name: "Amina", NationalityISO2: "SY"})
	s.Require().NoError(err)
	return p
}

func (s *ServiceSuite) banned() *pm.Person {
	p := s.createPerson()
	banned, until := true, models.NewDate(2029, time.January, 1)
	p, err := s.persons.UpdateFacts(context.Background(), s.owner, p.ID, pm.FactsUpdate{HasEntryBan: &banned, EntryBanUntil: &until})
	s.Require().NoError(err)
	return p
}

func (s *ServiceSuite) TestCatalogue() {
	all := s.service.Laws()
	s.Require().Len(all, 2)
	s.Equal(laws.AufenthG, all[0].ID)
	s.Equal(laws.StAG, all[1].ID)

	l, err := s.service.Law(laws.StAG)
	s.Require().NoError(err)
	s.Equal("Staatsangehörigkeitsgesetz", l.Title)

	_, err = s.service.Law("BGB")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	rules, err := s.service.Rules(laws.StAG)
	s.Require().NoError(err)
	s.Require().Len(rules, 2)
	s.Equal("AufenthG:§11:EntryBan", rules[0].RuleID)
	s.True(rules[0].Blocking)
	s.False(rules[1].Blocking)

	_, err = s.service.Rules("BGB")
	s.ErrorIs(err, engine.ErrUnknownLaw)
}

func (s *ServiceSuite) TestEvaluate() {
	ctx := context.Background()

	s.Run("entry ban blocks", func() {
		p := s.banned()
		report, err := s.service.Evaluate(ctx, s.owner, p.ID, laws.AufenthG, time.Time{})
		s.Require().NoError(err)

		s.Equal(engine.StateBlocked, report.State)
		s.Require().NotNil(report.BlockedBy)
		s.Equal("AufenthG:§11:EntryBan", report.BlockedBy.ID())
		s.Require().Len(report.Results, 1)
		s.False(report.Results[0].Satisfied)
		s.False(report.Satisfied())
		s.Equal(s.now, report.EvaluatedAt)
		s.Equal(s.now, report.AsOf)

		s.Contains(s.tracer.events, tracer.EventBlocked)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.EvaluationsTotal.WithLabelValues(laws.AufenthG, "blocked")))
	})

	s.Run("ban expired by the as-of date", func() {
		p := s.banned()
		report, err := s.service.Evaluate(ctx, s.owner, p.ID, laws.StAG, time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC))
		s.Require().NoError(err)
		s.Equal(engine.StateCompleted, report.State)
		s.Len(report.Results, 2)
		s.True(report.Results[0].Satisfied)
	})

	s.Run("rule selection", func() {
		p := s.createPerson()
		report, err := s.service.Evaluate(ctx, s.owner, p.ID, laws.StAG, time.Time{}, "StAG:§10:Allgemein")
		s.Require().NoError(err)
		s.Require().Len(report.Results, 1)
		s.Equal("StAG:§10:Allgemein", report.Results[0].RuleID)
		s.NotEmpty(report.Results[0].Title)
	})

	s.Run("unknown rule id", func() {
		p := s.createPerson()
		_, err := s.service.Evaluate(ctx, s.owner, p.ID, laws.StAG, time.Time{}, "StAG:§99:Nothing")
		s.ErrorIs(err, engine.ErrUnknownRule)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("unknown law counts as an error", func() {
		p := s.createPerson()
		_, err := s.service.Evaluate(ctx, s.owner, p.ID, "BGB", time.Time{})
		s.ErrorIs(err, engine.ErrUnknownLaw)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.EvaluationErrors.WithLabelValues("BGB")))
	})

	s.Run("other owner is forbidden", func() {
		p := s.createPerson()
		_, err := s.service.Evaluate(ctx, id.NewUserID(), p.ID, laws.StAG, time.Time{})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("missing person", func() {
		_, err := s.service.Evaluate(ctx, s.owner, id.NewPersonID(), laws.StAG, time.Time{})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("expired context", func() {
		p := s.createPerson()
		cctx, cancel := context.WithDeadline(ctx, time.Unix(0, 0))
		defer cancel()
		_, err := s.service.Evaluate(cctx, s.owner, p.ID, laws.StAG, time.Time{})
		s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
	})
}

func (s *ServiceSuite) TestEvaluateSnapshot() {
	ctx := context.Background()

	s.Run("defaults as-of to now and leaves the input untouched", func() {
		snap := models.NewSnapshot(id.PersonID{}, time.Time{})
		report, err := s.service.EvaluateSnapshot(ctx, laws.StAG, snap)
		s.Require().NoError(err)
		s.Equal(s.now, report.AsOf)
		s.True(snap.AsOf.IsZero())
		s.Equal(engine.StateCompleted, report.State)
	})

	s.Run("nil snapshot", func() {
		_, err := s.service.EvaluateSnapshot(ctx, laws.StAG, nil)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("snapshot-only service", func() {
		cat := laws.Default()
		ruleSets, err := config.Default(cat)
		s.Require().NoError(err)
		adhoc, err := New(nil, ruleSets, cat)
		s.Require().NoError(err)

		_, err = adhoc.Evaluate(ctx, s.owner, id.NewPersonID(), laws.StAG, time.Time{})
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))

		report, err := adhoc.EvaluateSnapshot(ctx, laws.StAG, models.NewSnapshot(id.NewPersonID(), s.now))
		s.Require().NoError(err)
		s.Len(report.Results, 2)
	})
}

func (s *ServiceSuite) TestEvaluateAll() {
	ctx := context.Background()
	p := s.banned()

	reports, err := s.service.EvaluateAll(ctx, s.owner, p.ID, time.Time{})
	s.Require().NoError(err)
	s.Require().Len(reports, 2)
	s.Equal(laws.AufenthG, reports[0].LawID)
	s.Equal(laws.StAG, reports[1].LawID)
	for _, r := range reports {
		s.Equal(engine.StateBlocked, r.State)
		s.Len(r.Results, 1)
	}
	s.Contains(s.tracer.spans, tracer.SpanEvaluateAll)

	_, err = s.service.EvaluateAll(ctx, id.NewUserID(), p.ID, time.Time{})
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
}

func (s *ServiceSuite) TestInvalidConfiguration() {
	cat := laws.Default()
	_, err := New(nil, &config.RuleSets{Sets: []engine.RuleSet{{LawID: ""}}}, cat)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidRuleSet))
}
