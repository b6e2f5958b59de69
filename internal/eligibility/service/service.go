// Package service runs law evaluations for stored persons and for ad-hoc
// snapshots, recording metrics and spans around each run.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"legalcheck/internal/eligibility/config"
	"legalcheck/internal/eligibility/engine"
	"legalcheck/internal/eligibility/laws"
	"legalcheck/internal/eligibility/mapper"
	"legalcheck/internal/eligibility/metrics"
	"legalcheck/internal/eligibility/models"
	pm "legalcheck/internal/person/models"
	"legalcheck/internal/platform/tracer"
	id "legalcheck/pkg/domain"
	dErrors "legalcheck/pkg/domain-errors"
)

// PersonReader loads a person on behalf of its owner.
type PersonReader interface {
	Get(ctx context.Context, owner id.UserID, personID id.PersonID) (*pm.Person, error)
}

type Service struct {
	persons      PersonReader
	orchestrator *engine.Orchestrator
	ruleSets     *config.RuleSets
	catalogue    *laws.Catalogue
	mapper       *mapper.Mapper
	metrics      *metrics.Metrics
	tracer       tracer.Tracer
	logger       *slog.Logger
	clock        func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics enables Prometheus recording. Without it metrics are skipped.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithMapper replaces the default snapshot mapper, e.g. to change the
// residence policy.
func WithMapper(m *mapper.Mapper) Option {
	return func(s *Service) {
		s.mapper = m
	}
}

func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// New builds the orchestrator from ruleSets. persons may be nil for
// callers that only evaluate ad-hoc snapshots.
func New(persons PersonReader, ruleSets *config.RuleSets, cat *laws.Catalogue, opts ...Option) (*Service, error) {
	if ruleSets == nil || cat == nil {
		panic("eligibility service: rule sets and catalogue are required")
	}
	orchestrator, err := engine.NewOrchestrator(ruleSets.Sets...)
	if err != nil {
		return nil, err
	}
	s := &Service{
		persons:      persons,
		orchestrator: orchestrator,
		ruleSets:     ruleSets,
		catalogue:    cat,
		mapper:       mapper.Default(),
		tracer:       tracer.NewNoop(),
		logger:       slog.Default(),
		clock:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Laws lists the configured laws in configuration order.
func (s *Service) Laws() []laws.Law {
	return append([]laws.Law(nil), s.ruleSets.Laws...)
}

func (s *Service) Law(lawID string) (laws.Law, error) {
	l, ok := s.ruleSets.Law(lawID)
	if !ok {
		return laws.Law{}, dErrors.New(dErrors.CodeNotFound, "law "+lawID+" is not configured")
	}
	return l, nil
}

// Rules lists the rules of lawID in evaluation order.
func (s *Service) Rules(lawID string) ([]RuleInfo, error) {
	set, err := s.orchestrator.RuleSet(lawID)
	if err != nil {
		return nil, err
	}
	out := make([]RuleInfo, len(set.Rules))
	for i, r := range set.Rules {
		ref := r.Reference()
		out[i] = RuleInfo{
			RuleID:   ref.ID(),
			Title:    s.catalogue.Title(ref),
			Rule:     ref,
			Blocking: set.IsBlocking(ref),
		}
	}
	return out, nil
}

// Evaluate loads the person as owner, derives a snapshot as of asOf (zero
// means now) and runs lawID, narrowed to ruleIDs when given.
func (s *Service) Evaluate(ctx context.Context, owner id.UserID, personID id.PersonID, lawID string, asOf time.Time, ruleIDs ...string) (Report, error) {
	snap, err := s.snapshot(ctx, owner, personID, asOf)
	if err != nil {
		return Report{}, err
	}
	return s.run(ctx, lawID, snap, ruleIDs)
}

// EvaluateSnapshot runs lawID against a caller-supplied snapshot. The
// snapshot is copied; a zero AsOf is set to now.
func (s *Service) EvaluateSnapshot(ctx context.Context, lawID string, snap *models.Snapshot, ruleIDs ...string) (Report, error) {
	if snap == nil {
		return Report{}, dErrors.New(dErrors.CodeBadRequest, "snapshot required")
	}
	snap = snap.Clone()
	if snap.AsOf.IsZero() {
		snap.AsOf = s.clock().UTC()
	}
	return s.run(ctx, lawID, snap, ruleIDs)
}

// EvaluateAll runs every configured law against one snapshot of the person
// in parallel. Reports are ordered by law id.
func (s *Service) EvaluateAll(ctx context.Context, owner id.UserID, personID id.PersonID, asOf time.Time) (reports []Report, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanEvaluateAll, tracer.String(tracer.AttrPersonID, personID.String()))
	defer func() { span.End(err) }()

	snap, err := s.snapshot(ctx, owner, personID, asOf)
	if err != nil {
		return nil, err
	}

	lawIDs := s.orchestrator.Laws()
	sort.Strings(lawIDs)
	reports = make([]Report, len(lawIDs))

	g, gctx := errgroup.WithContext(ctx)
	for i, lawID := range lawIDs {
		g.Go(func() error {
			report, err := s.run(gctx, lawID, snap.Clone(), nil)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	span.SetAttributes(tracer.Int(tracer.AttrResultCount, len(reports)))
	return reports, nil
}

func (s *Service) snapshot(ctx context.Context, owner id.UserID, personID id.PersonID, asOf time.Time) (*models.Snapshot, error) {
	if s.persons == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "person lookup not configured")
	}
	person, err := s.persons.Get(ctx, owner, personID)
	if err != nil {
		return nil, err
	}
	if asOf.IsZero() {
		asOf = s.clock()
	}
	return s.mapper.ToSnapshot(person, asOf.UTC()), nil
}

func (s *Service) run(ctx context.Context, lawID string, snap *models.Snapshot, ruleIDs []string) (report Report, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanEvaluate,
		tracer.String(tracer.AttrLawID, lawID),
		tracer.String(tracer.AttrPersonID, snap.PersonID.String()),
		tracer.Int(tracer.AttrRuleCount, len(ruleIDs)),
	)
	defer func() { span.End(err) }()

	if err := ctx.Err(); err != nil {
		s.metrics.IncEvaluationError(lawID)
		if errors.Is(err, context.DeadlineExceeded) {
			return Report{}, dErrors.Wrap(err, dErrors.CodeTimeout, "evaluation timed out")
		}
		return Report{}, dErrors.Wrap(err, dErrors.CodeInternal, "evaluation cancelled")
	}

	start := s.clock()
	ev, err := s.orchestrator.Evaluate(lawID, snap, ruleIDs...)
	if err != nil {
		s.metrics.IncEvaluationError(lawID)
		s.logger.WarnContext(ctx, "evaluation rejected", "law_id", lawID, "error", err)
		return Report{}, err
	}
	now := s.clock()
	s.metrics.ObserveEvaluation(lawID, string(ev.State), ev.Failures(), now.Sub(start))

	span.SetAttributes(
		tracer.String(tracer.AttrState, string(ev.State)),
		tracer.Int(tracer.AttrResultCount, len(ev.Results)),
		tracer.Int(tracer.AttrFailures, ev.Failures()),
	)
	if ev.BlockedBy != nil {
		span.AddEvent(tracer.EventBlocked, tracer.String(tracer.AttrBlockedBy, ev.BlockedBy.ID()))
		s.logger.InfoContext(ctx, "evaluation blocked",
			"law_id", lawID,
			"person_id", snap.PersonID,
			"blocked_by", ev.BlockedBy.ID(),
		)
	}
	return newReport(ev, s.catalogue, snap.AsOf, now.UTC()), nil
}
