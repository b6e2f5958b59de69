package service

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	em "legalcheck/internal/eligibility/models"
	"legalcheck/internal/person/models"
	"legalcheck/internal/person/store"
	id "legalcheck/pkg/domain"
	dErrors "legalcheck/pkg/domain-errors"
)

var fixedNow = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

type ServiceSuite struct {
	suite.Suite
	svc    *Service
	ctx    context.Context
	owner  id.UserID
	person *models.Person
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	s.svc = New(store.NewInMemory(), WithLogger(logger), WithClock(func() time.Time { return fixedNow }))
	s.ctx = context.Background()
	s.owner = id.NewUserID()

	p, err := s.svc.Create(s.ctx, s.owner, CreateCommand{Name: "Applicant", NationalityISO2: "sy"})
	s.Require().NoError(err)
	s.person = p
}

func (s *ServiceSuite) TestCreate() {
	s.Equal("SY", s.person.NationalityISO2)
	s.Equal(fixedNow, s.person.CreatedAt)

	_, err := s.svc.Create(s.ctx, s.owner, CreateCommand{NationalityISO2: "SYR"})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ServiceSuite) TestOwnership() {
	intruder := id.NewUserID()

	s.Run("get by owner", func() {
		got, err := s.svc.Get(s.ctx, s.owner, s.person.ID)
		s.Require().NoError(err)
		s.Equal(s.person.ID, got.ID)
	})

	s.Run("get by another user is forbidden", func() {
		_, err := s.svc.Get(s.ctx, intruder, s.person.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("mutation by another user is forbidden and discarded", func() {
		_, err := s.svc.AddPermit(s.ctx, intruder, s.person.ID, em.ResidencePermit{
			Code: "§ 18b", IssuedAt: em.NewDate(2023, 1, 1), ValidUntil: em.NewDate(2027, 1, 1),
		})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

		got, err := s.svc.Get(s.ctx, s.owner, s.person.ID)
		s.Require().NoError(err)
		s.Empty(got.Permits)
	})

	s.Run("unknown person", func() {
		_, err := s.svc.Get(s.ctx, s.owner, id.NewPersonID())
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		_, err = s.svc.UpdateFacts(s.ctx, s.owner, id.NewPersonID(), models.FactsUpdate{})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("list only returns own persons", func() {
		_, err := s.svc.Create(s.ctx, intruder, CreateCommand{Name: "Other"})
		s.Require().NoError(err)
		mine, err := s.svc.ListMine(s.ctx, s.owner)
		s.Require().NoError(err)
		s.Len(mine, 1)
	})
}

func (s *ServiceSuite) TestAddRecords() {
	start := em.NewDate(2019, 9, 1)

	_, err := s.svc.AddResidencePeriod(s.ctx, s.owner, s.person.ID, em.ResidencePeriod{Start: start, CountryISO2: "DE"})
	s.Require().NoError(err)
	_, err = s.svc.AddEducation(s.ctx, s.owner, s.person.ID, em.EducationRecord{Level: "master", DidGraduate: true, Institution: "TU Berlin"})
	s.Require().NoError(err)
	_, err = s.svc.AddEmployment(s.ctx, s.owner, s.person.ID, em.EmploymentRecord{EmploymentType: "full_time", Start: start, MonthlyNetIncome: 2500})
	s.Require().NoError(err)
	_, err = s.svc.AddEducationCase(s.ctx, s.owner, s.person.ID, em.EducationCase{Purpose: em.PurposeStudy})
	s.Require().NoError(err)
	p, err := s.svc.AddEmploymentCase(s.ctx, s.owner, s.person.ID, em.EmploymentCase{HasConcreteJobOffer: true})
	s.Require().NoError(err)

	s.Len(p.ResidenceHistory, 1)
	s.Len(p.EducationHistory, 1)
	s.Len(p.EmploymentHistory, 1)
	s.Len(p.EducationCases, 1)
	s.Len(p.EmploymentCases, 1)
	s.Equal(fixedNow, p.UpdatedAt)

	s.Run("invalid records are rejected before loading", func() {
		_, err := s.svc.AddResidencePeriod(s.ctx, s.owner, id.NewPersonID(), em.ResidencePeriod{CountryISO2: "DE"})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		_, err = s.svc.AddEducationCase(s.ctx, s.owner, s.person.ID, em.EducationCase{Purpose: "nope"})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ServiceSuite) TestUpdateFactsAndDocuments() {
	livelihood := true
	p, err := s.svc.UpdateFacts(s.ctx, s.owner, s.person.ID, models.FactsUpdate{
		IsLivelihoodSecured: &livelihood,
		Asylum:              &em.AsylumProfile{Status: em.AsylumRecognized},
	})
	s.Require().NoError(err)
	s.True(*p.IsLivelihoodSecured)
	s.Equal(em.AsylumRecognized, p.Asylum.Status)

	_, err = s.svc.AttachDocument(s.ctx, s.owner, s.person.ID, em.EvidenceDocument{})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	doc := em.EvidenceDocument{ID: id.NewDocumentID(), Type: em.EvidencePassport, OriginalFileName: "pass.pdf"}
	p, err = s.svc.AttachDocument(s.ctx, s.owner, s.person.ID, doc)
	s.Require().NoError(err)
	s.Require().Len(p.Documents, 1)
	s.Equal(doc.ID, p.Documents[0].ID)
}

func (s *ServiceSuite) TestConcurrentAppendsAreNotLost() {
	const n = 20
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.svc.AddEmploymentCase(s.ctx, s.owner, s.person.ID, em.EmploymentCase{JobDurationMonths: i})
			s.NoError(err)
		}()
	}
	wg.Wait()

	p, err := s.svc.Get(s.ctx, s.owner, s.person.ID)
	s.Require().NoError(err)
	s.Len(p.EmploymentCases, n)
}
