// Package models holds the stored applicant record. Record types are shared
// with the eligibility snapshot so the mapper copies rather than converts.
package models

import (
	"strings"
	"time"

	em "legalcheck/internal/eligibility/models"
	id "legalcheck/pkg/domain"
	dErrors "legalcheck/pkg/domain-errors"
)

// Person is an applicant profile managed by one user.
type Person struct {
	ID              id.PersonID `json:"person_id"`
	OwnerID         id.UserID   `json:"owner_user_id"`
	Name            string      `json:"name"`
	NationalityISO2 string      `json:"nationality"`
	BirthDate       *em.Date    `json:"birth_date,omitempty"`

	Asylum                   *em.AsylumProfile         `json:"asylum,omitempty"`
	ResidenceObligation      *em.ResidenceObligation   `json:"residence_obligation,omitempty"`
	CurrentResidenceAreaCode *string                   `json:"current_residence_area_code,omitempty"`
	LastEntryAttempt         *em.EntryAttempt          `json:"last_entry_attempt,omitempty"`
	Distribution             *em.DistributionProcedure `json:"distribution,omitempty"`

	EducationCases  []em.EducationCase    `json:"education_cases"`
	EmploymentCases []em.EmploymentCase   `json:"employment_cases"`
	Documents       []em.EvidenceDocument `json:"documents"`

	Permits           []em.ResidencePermit  `json:"permits"`
	ResidenceHistory  []em.ResidencePeriod  `json:"residence_history"`
	EducationHistory  []em.EducationRecord  `json:"education_history"`
	EmploymentHistory []em.EmploymentRecord `json:"employment_history"`

	LanguageLevel                em.LanguageLevel `json:"language_level"`
	IntegrationCourseCompleted   bool             `json:"integration_course_completed"`
	CommitsToConstitutionalOrder bool             `json:"commits_to_constitutional_order"`
	AcceptsBasicLaw              bool             `json:"accepts_basic_law"`

	IsLivelihoodSecured       *bool    `json:"is_livelihood_secured,omitempty"`
	MonthlyHousingCost        float64  `json:"monthly_housing_cost"`
	PensionContributionMonths int      `json:"pension_contribution_months"`
	HasCriminalRecord         bool     `json:"has_criminal_record"`
	HasEntryBan               bool     `json:"has_entry_ban"`
	EntryBanUntil             *em.Date `json:"entry_ban_until,omitempty"`
	HasValidPassport          bool     `json:"has_valid_passport"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPerson validates the identity fields and applies the named defaults.
// An empty nationality becomes the unknown placeholder.
func NewPerson(personID id.PersonID, owner id.UserID, name, nationality string, now time.Time) (*Person, error) {
	if owner.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "owner required")
	}
	nationality = strings.ToUpper(strings.TrimSpace(nationality))
	if nationality == "" {
		nationality = em.DefaultNationality
	}
	if len(nationality) != 2 {
		return nil, dErrors.New(dErrors.CodeValidation, "nationality must be an ISO 3166-1 alpha-2 code")
	}
	return &Person{
		ID:                           personID,
		OwnerID:                      owner,
		Name:                         strings.TrimSpace(name),
		NationalityISO2:              nationality,
		CommitsToConstitutionalOrder: em.DefaultCommitsToConstitutionalOrder,
		AcceptsBasicLaw:              em.DefaultAcceptsBasicLaw,
		HasValidPassport:             em.DefaultHasValidPassport,
		CreatedAt:                    now,
		UpdatedAt:                    now,
	}, nil
}

// OwnedBy reports whether user manages this profile.
func (p *Person) OwnedBy(user id.UserID) bool {
	return p != nil && p.OwnerID == user
}

// Clone returns a deep copy; stores hand out clones only.
func (p *Person) Clone() *Person {
	if p == nil {
		return nil
	}
	c := *p
	c.BirthDate = clonePtr(p.BirthDate)
	c.Asylum = p.Asylum.Clone()
	c.ResidenceObligation = p.ResidenceObligation.Clone()
	c.CurrentResidenceAreaCode = clonePtr(p.CurrentResidenceAreaCode)
	c.LastEntryAttempt = p.LastEntryAttempt.Clone()
	c.Distribution = p.Distribution.Clone()
	c.EducationCases = cloneAll(p.EducationCases, em.EducationCase.Clone)
	c.EmploymentCases = cloneAll(p.EmploymentCases, em.EmploymentCase.Clone)
	c.Documents = cloneAll(p.Documents, em.EvidenceDocument.Clone)
	c.Permits = cloneAll(p.Permits, em.ResidencePermit.Clone)
	c.ResidenceHistory = cloneAll(p.ResidenceHistory, em.ResidencePeriod.Clone)
	c.EducationHistory = cloneAll(p.EducationHistory, em.EducationRecord.Clone)
	c.EmploymentHistory = cloneAll(p.EmploymentHistory, em.EmploymentRecord.Clone)
	c.IsLivelihoodSecured = clonePtr(p.IsLivelihoodSecured)
	c.EntryBanUntil = clonePtr(p.EntryBanUntil)
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneAll[T any](in []T, clone func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = clone(v)
	}
	return out
}
