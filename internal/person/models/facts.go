package models

import (
	"strings"

	em "legalcheck/internal/eligibility/models"
)

// FactsUpdate is a partial update. Nil fields are left untouched; the
// Clear* flags remove optional facts.
type FactsUpdate struct {
	Name            *string
	NationalityISO2 *string
	BirthDate       *em.Date

	LanguageLevel                *em.LanguageLevel
	IntegrationCourseCompleted   *bool
	CommitsToConstitutionalOrder *bool
	AcceptsBasicLaw              *bool

	IsLivelihoodSecured       *bool
	MonthlyHousingCost        *float64
	PensionContributionMonths *int
	HasCriminalRecord         *bool
	HasEntryBan               *bool
	EntryBanUntil             *em.Date
	HasValidPassport          *bool
	CurrentResidenceAreaCode  *string

	Asylum              *em.AsylumProfile
	ResidenceObligation *em.ResidenceObligation
	LastEntryAttempt    *em.EntryAttempt
	Distribution        *em.DistributionProcedure

	ClearEntryBanUntil       bool
	ClearAsylum              bool
	ClearResidenceObligation bool
	ClearLastEntryAttempt    bool
	ClearDistribution        bool
}

// Validate checks the values that carry constraints.
func (u FactsUpdate) Validate() error {
	if u.NationalityISO2 != nil && len(strings.TrimSpace(*u.NationalityISO2)) != 2 {
		return invalid("nationality must be an ISO 3166-1 alpha-2 code")
	}
	if u.MonthlyHousingCost != nil && *u.MonthlyHousingCost < 0 {
		return invalid("monthly_housing_cost must not be negative")
	}
	if u.PensionContributionMonths != nil && *u.PensionContributionMonths < 0 {
		return invalid("pension_contribution_months must not be negative")
	}
	if u.ResidenceObligation != nil && strings.TrimSpace(u.ResidenceObligation.FederalStateCode) == "" {
		return invalid("residence_obligation.federal_state_code is required")
	}
	return nil
}

// Apply writes the update onto p. Pointer values are copied.
func (u FactsUpdate) Apply(p *Person) {
	if u.Name != nil {
		p.Name = strings.TrimSpace(*u.Name)
	}
	if u.NationalityISO2 != nil {
		p.NationalityISO2 = strings.ToUpper(strings.TrimSpace(*u.NationalityISO2))
	}
	if u.BirthDate != nil {
		p.BirthDate = clonePtr(u.BirthDate)
	}
	setIf(&p.LanguageLevel, u.LanguageLevel)
	setIf(&p.IntegrationCourseCompleted, u.IntegrationCourseCompleted)
	setIf(&p.CommitsToConstitutionalOrder, u.CommitsToConstitutionalOrder)
	setIf(&p.AcceptsBasicLaw, u.AcceptsBasicLaw)
	if u.IsLivelihoodSecured != nil {
		p.IsLivelihoodSecured = clonePtr(u.IsLivelihoodSecured)
	}
	setIf(&p.MonthlyHousingCost, u.MonthlyHousingCost)
	setIf(&p.PensionContributionMonths, u.PensionContributionMonths)
	setIf(&p.HasCriminalRecord, u.HasCriminalRecord)
	setIf(&p.HasEntryBan, u.HasEntryBan)
	setIf(&p.HasValidPassport, u.HasValidPassport)
	if u.CurrentResidenceAreaCode != nil {
		area := strings.TrimSpace(*u.CurrentResidenceAreaCode)
		p.CurrentResidenceAreaCode = &area
	}

	switch {
	case u.ClearEntryBanUntil:
		p.EntryBanUntil = nil
	case u.EntryBanUntil != nil:
		p.EntryBanUntil = clonePtr(u.EntryBanUntil)
	}
	switch {
	case u.ClearAsylum:
		p.Asylum = nil
	case u.Asylum != nil:
		p.Asylum = u.Asylum.Clone()
	}
	switch {
	case u.ClearResidenceObligation:
		p.ResidenceObligation = nil
	case u.ResidenceObligation != nil:
		p.ResidenceObligation = u.ResidenceObligation.Clone()
	}
	switch {
	case u.ClearLastEntryAttempt:
		p.LastEntryAttempt = nil
	case u.LastEntryAttempt != nil:
		p.LastEntryAttempt = u.LastEntryAttempt.Clone()
	}
	switch {
	case u.ClearDistribution:
		p.Distribution = nil
	case u.Distribution != nil:
		p.Distribution = u.Distribution.Clone()
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
