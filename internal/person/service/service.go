// Package service manages applicant profiles. Every operation is scoped to
// the calling user; another user's profile is reported as forbidden.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	em "legalcheck/internal/eligibility/models"
	"legalcheck/internal/person/models"
	"legalcheck/internal/platform/metrics"
	"legalcheck/internal/sentinel"
	id "legalcheck/pkg/domain"
	dErrors "legalcheck/pkg/domain-errors"
)

type Store interface {
	Create(ctx context.Context, p *models.Person) error
	FindByID(ctx context.Context, personID id.PersonID) (*models.Person, error)
	ListByOwner(ctx context.Context, owner id.UserID) ([]*models.Person, error)
	Update(ctx context.Context, personID id.PersonID, fn func(*models.Person) error) (*models.Person, error)
}

type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	clock   func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock overrides the time source for CreatedAt/UpdatedAt.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

func New(store Store, opts ...Option) *Service {
	if store == nil {
		panic("person service: store is required")
	}
	s := &Service{store: store, logger: slog.Default(), clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateCommand carries the identity fields of a new profile.
type CreateCommand struct {
	Name            string
	NationalityISO2 string
	BirthDate       *em.Date
}

func (s *Service) Create(ctx context.Context, owner id.UserID, cmd CreateCommand) (*models.Person, error) {
	p, err := models.NewPerson(id.NewPersonID(), owner, cmd.Name, cmd.NationalityISO2, s.clock().UTC())
	if err != nil {
		return nil, err
	}
	p.BirthDate = cmd.BirthDate
	if err := s.store.Create(ctx, p); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyExists) {
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, "person already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create person")
	}
	s.metrics.IncrementPersonsCreated()
	s.logger.InfoContext(ctx, "person created", "person_id", p.ID, "owner_id", owner)
	return p, nil
}

// Get returns the profile if owner manages it.
func (s *Service) Get(ctx context.Context, owner id.UserID, personID id.PersonID) (*models.Person, error) {
	p, err := s.store.FindByID(ctx, personID)
	if err != nil {
		return nil, wrapStoreErr(err, "failed to load person")
	}
	if !p.OwnedBy(owner) {
		s.logger.WarnContext(ctx, "person access denied", "person_id", personID, "user_id", owner)
		return nil, dErrors.New(dErrors.CodeForbidden, "not owner of this person profile")
	}
	return p, nil
}

func (s *Service) ListMine(ctx context.Context, owner id.UserID) ([]*models.Person, error) {
	list, err := s.store.ListByOwner(ctx, owner)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list persons")
	}
	return list, nil
}

func (s *Service) AddResidencePeriod(ctx context.Context, owner id.UserID, personID id.PersonID, period em.ResidencePeriod) (*models.Person, error) {
	if err := models.ValidateResidencePeriod(period); err != nil {
		return nil, err
	}
	return s.mutate(ctx, owner, personID, "residence period added", func(p *models.Person) error {
		p.ResidenceHistory = append(p.ResidenceHistory, period.Clone())
		return nil
	})
}

func (s *Service) AddPermit(ctx context.Context, owner id.UserID, personID id.PersonID, permit em.ResidencePermit) (*models.Person, error) {
	if err := models.ValidatePermit(permit); err != nil {
		return nil, err
	}
	return s.mutate(ctx, owner, personID, "permit added", func(p *models.Person) error {
		p.Permits = append(p.Permits, permit.Clone())
		return nil
	})
}

func (s *Service) AddEducation(ctx context.Context, owner id.UserID, personID id.PersonID, record em.EducationRecord) (*models.Person, error) {
	if err := models.ValidateEducationRecord(record); err != nil {
		return nil, err
	}
	return s.mutate(ctx, owner, personID, "education record added", func(p *models.Person) error {
		p.EducationHistory = append(p.EducationHistory, record.Clone())
		return nil
	})
}

func (s *Service) AddEmployment(ctx context.Context, owner id.UserID, personID id.PersonID, record em.EmploymentRecord) (*models.Person, error) {
	if err := models.ValidateEmploymentRecord(record); err != nil {
		return nil, err
	}
	return s.mutate(ctx, owner, personID, "employment record added", func(p *models.Person) error {
		p.EmploymentHistory = append(p.EmploymentHistory, record.Clone())
		return nil
	})
}

func (s *Service) AddEducationCase(ctx context.Context, owner id.UserID, personID id.PersonID, c em.EducationCase) (*models.Person, error) {
	if err := models.ValidateEducationCase(c); err != nil {
		return nil, err
	}
	return s.mutate(ctx, owner, personID, "education case added", func(p *models.Person) error {
		p.EducationCases = append(p.EducationCases, c.Clone())
		return nil
	})
}

func (s *Service) AddEmploymentCase(ctx context.Context, owner id.UserID, personID id.PersonID, c em.EmploymentCase) (*models.Person, error) {
	if err := models.ValidateEmploymentCase(c); err != nil {
		return nil, err
	}
	return s.mutate(ctx, owner, personID, "employment case added", func(p *models.Person) error {
		p.EmploymentCases = append(p.EmploymentCases, c.Clone())
		return nil
	})
}

func (s *Service) UpdateFacts(ctx context.Context, owner id.UserID, personID id.PersonID, update models.FactsUpdate) (*models.Person, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, owner, personID, "facts updated", func(p *models.Person) error {
		update.Apply(p)
		return nil
	})
}

// AttachDocument records document metadata on the profile. The file itself
// is stored by the documents service before this is called.
func (s *Service) AttachDocument(ctx context.Context, owner id.UserID, personID id.PersonID, doc em.EvidenceDocument) (*models.Person, error) {
	if doc.ID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "document id required")
	}
	return s.mutate(ctx, owner, personID, "document attached", func(p *models.Person) error {
		p.Documents = append(p.Documents, doc.Clone())
		return nil
	})
}

// mutate runs fn inside the store's update after the ownership check, so a
// rejected caller never touches the record.
func (s *Service) mutate(ctx context.Context, owner id.UserID, personID id.PersonID, event string, fn func(*models.Person) error) (*models.Person, error) {
	updated, err := s.store.Update(ctx, personID, func(p *models.Person) error {
		if !p.OwnedBy(owner) {
			return dErrors.New(dErrors.CodeForbidden, "not owner of this person profile")
		}
		if err := fn(p); err != nil {
			return err
		}
		p.UpdatedAt = s.clock().UTC()
		return nil
	})
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeForbidden) {
			s.logger.WarnContext(ctx, "person access denied", "person_id", personID, "user_id", owner)
			return nil, err
		}
		return nil, wrapStoreErr(err, "failed to update person")
	}
	s.logger.InfoContext(ctx, event, "person_id", personID)
	return updated, nil
}

func wrapStoreErr(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "person not found")
	}
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
