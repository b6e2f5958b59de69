package handler

import (
	"strings"

	em "legalcheck/internal/eligibility/models"
	"legalcheck/internal/person/models"
	dErrors "legalcheck/pkg/domain-errors"
	"legalcheck/pkg/validation"
)

type CreatePersonRequest struct {
	Name        string   `json:"name" validate:"max=200"`
	Nationality string   `json:"nationality" validate:"omitempty,iso3166_1_alpha2"`
	BirthDate   *em.Date `json:"birth_date,omitempty"`
}

func (r *CreatePersonRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Nationality = strings.ToUpper(strings.TrimSpace(r.Nationality))
}

func (r *CreatePersonRequest) Validate() error {
	return validation.Validate(r)
}

// UpdateFactsRequest is the PATCH body; absent fields keep their value.
type UpdateFactsRequest struct {
	Name                         *string           `json:"name,omitempty"`
	Nationality                  *string           `json:"nationality,omitempty"`
	BirthDate                    *em.Date          `json:"birth_date,omitempty"`
	LanguageLevel                *em.LanguageLevel `json:"language_level,omitempty"`
	IntegrationCourseCompleted   *bool             `json:"integration_course_completed,omitempty"`
	CommitsToConstitutionalOrder *bool             `json:"commits_to_constitutional_order,omitempty"`
	AcceptsBasicLaw              *bool             `json:"accepts_basic_law,omitempty"`
	IsLivelihoodSecured          *bool             `json:"is_livelihood_secured,omitempty"`
	MonthlyHousingCost           *float64          `json:"monthly_housing_cost,omitempty"`
	PensionContributionMonths    *int              `json:"pension_contribution_months,omitempty"`
	HasCriminalRecord            *bool             `json:"has_criminal_record,omitempty"`
	HasEntryBan                  *bool             `json:"has_entry_ban,omitempty"`
	EntryBanUntil                *em.Date          `json:"entry_ban_until,omitempty"`
	HasValidPassport             *bool             `json:"has_valid_passport,omitempty"`
	CurrentResidenceAreaCode     *string           `json:"current_residence_area_code,omitempty"`

	Asylum              *em.AsylumProfile         `json:"asylum,omitempty"`
	ResidenceObligation *em.ResidenceObligation   `json:"residence_obligation,omitempty"`
	LastEntryAttempt    *em.EntryAttempt          `json:"last_entry_attempt,omitempty"`
	Distribution        *em.DistributionProcedure `json:"distribution,omitempty"`

	// Clear names optional facts to remove, e.g. ["asylum", "entry_ban_until"].
	Clear []string `json:"clear,omitempty" validate:"max=5"`
}

var clearable = map[string]func(*models.FactsUpdate){
	"entry_ban_until":      func(u *models.FactsUpdate) { u.ClearEntryBanUntil = true },
	"asylum":               func(u *models.FactsUpdate) { u.ClearAsylum = true },
	"residence_obligation": func(u *models.FactsUpdate) { u.ClearResidenceObligation = true },
	"last_entry_attempt":   func(u *models.FactsUpdate) { u.ClearLastEntryAttempt = true },
	"distribution":         func(u *models.FactsUpdate) { u.ClearDistribution = true },
}

func (r *UpdateFactsRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	for _, field := range r.Clear {
		if _, ok := clearable[field]; !ok {
			return dErrors.New(dErrors.CodeValidation, "cannot clear field: "+field)
		}
	}
	return nil
}

func (r *UpdateFactsRequest) toUpdate() models.FactsUpdate {
	u := models.FactsUpdate{
		Name:                         r.Name,
		NationalityISO2:              r.Nationality,
		BirthDate:                    r.BirthDate,
		LanguageLevel:                r.LanguageLevel,
		IntegrationCourseCompleted:   r.IntegrationCourseCompleted,
		CommitsToConstitutionalOrder: r.CommitsToConstitutionalOrder,
		AcceptsBasicLaw:              r.AcceptsBasicLaw,
		IsLivelihoodSecured:          r.IsLivelihoodSecured,
		MonthlyHousingCost:           r.MonthlyHousingCost,
		PensionContributionMonths:    r.PensionContributionMonths,
		HasCriminalRecord:            r.HasCriminalRecord,
		HasEntryBan:                  r.HasEntryBan,
		EntryBanUntil:                r.EntryBanUntil,
		HasValidPassport:             r.HasValidPassport,
		CurrentResidenceAreaCode:     r.CurrentResidenceAreaCode,
		Asylum:                       r.Asylum,
		ResidenceObligation:          r.ResidenceObligation,
		LastEntryAttempt:             r.LastEntryAttempt,
		Distribution:                 r.Distribution,
	}
	for _, field := range r.Clear {
		clearable[field](&u)
	}
	return u
}
