package models

import (
	"encoding/json"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	id "legalcheck/pkg/domain"
)

// Defaults applied when a fact was never recorded for an applicant.
const (
	DefaultCommitsToConstitutionalOrder = true
	DefaultAcceptsBasicLaw              = true
	DefaultHasValidPassport             = true
	DefaultNationality                  = "XX"

	// HomeCountry is the jurisdiction whose residence counts as domestic.
	HomeCountry = "DE"
	// HomeStatePrefix prefixes federal-state codes such as "DE-NW".
	HomeStatePrefix = "DE-"
)

// Snapshot is the read-only fact base one evaluation runs against.
// Rules must treat it as immutable; producers hand out deep copies.
//
// All temporal comparisons use AsOf. Derived fields (current permit,
// residence months, German degree) are computed once by the mapper.
type Snapshot struct {
	PersonID        id.PersonID `json:"person_id" yaml:"person_id"`
	AsOf            time.Time   `json:"as_of" yaml:"as_of"`
	NationalityISO2 string      `json:"nationality" yaml:"nationality"`
	IsEUCitizen     bool        `json:"is_eu_citizen" yaml:"is_eu_citizen"`
	BirthDate       *Date       `json:"birth_date,omitempty" yaml:"birth_date,omitempty"`

	CurrentPermitCode           string `json:"current_permit_code,omitempty" yaml:"current_permit_code,omitempty"`
	CurrentPermitIssuingCountry string `json:"current_permit_issuing_country,omitempty" yaml:"current_permit_issuing_country,omitempty"`
	TotalResidenceMonths        int    `json:"total_residence_months" yaml:"total_residence_months"`
	HasGermanDegree             bool   `json:"has_german_degree" yaml:"has_german_degree"`

	Permits          []ResidencePermit  `json:"permits,omitempty" yaml:"permits,omitempty"`
	ResidencePeriods []ResidencePeriod  `json:"residence_periods,omitempty" yaml:"residence_periods,omitempty"`
	EducationCases   []EducationCase    `json:"education_cases,omitempty" yaml:"education_cases,omitempty"`
	EmploymentCases  []EmploymentCase   `json:"employment_cases,omitempty" yaml:"employment_cases,omitempty"`
	Documents        []EvidenceDocument `json:"documents,omitempty" yaml:"documents,omitempty"`

	Asylum                   *AsylumProfile         `json:"asylum,omitempty" yaml:"asylum,omitempty"`
	ResidenceObligation      *ResidenceObligation   `json:"residence_obligation,omitempty" yaml:"residence_obligation,omitempty"`
	CurrentResidenceAreaCode *string                `json:"current_residence_area_code,omitempty" yaml:"current_residence_area_code,omitempty"`
	EntryAttempt             *EntryAttempt          `json:"entry_attempt,omitempty" yaml:"entry_attempt,omitempty"`
	Distribution             *DistributionProcedure `json:"distribution,omitempty" yaml:"distribution,omitempty"`

	LanguageLevel                LanguageLevel `json:"language_level" yaml:"language_level"`
	IntegrationCourseCompleted   bool          `json:"integration_course_completed" yaml:"integration_course_completed"`
	CommitsToConstitutionalOrder bool          `json:"commits_to_constitutional_order" yaml:"commits_to_constitutional_order"`
	IsLivelihoodSecured          *bool         `json:"is_livelihood_secured,omitempty" yaml:"is_livelihood_secured,omitempty"`
	MonthlyNetIncome             float64       `json:"monthly_net_income" yaml:"monthly_net_income"`
	MonthlyHousingCost           float64       `json:"monthly_housing_cost" yaml:"monthly_housing_cost"`
	PensionContributionMonths    int           `json:"pension_contribution_months" yaml:"pension_contribution_months"`
	HasCriminalRecord            bool          `json:"has_criminal_record" yaml:"has_criminal_record"`
	HasEntryBan                  bool          `json:"has_entry_ban" yaml:"has_entry_ban"`
	EntryBanUntil                *Date         `json:"entry_ban_until,omitempty" yaml:"entry_ban_until,omitempty"`
	HasValidPassport             bool          `json:"has_valid_passport" yaml:"has_valid_passport"`
}

// NewSnapshot returns a snapshot carrying the named defaults.
func NewSnapshot(personID id.PersonID, asOf time.Time) *Snapshot {
	return &Snapshot{
		PersonID:                     personID,
		AsOf:                         asOf,
		NationalityISO2:              DefaultNationality,
		CommitsToConstitutionalOrder: DefaultCommitsToConstitutionalOrder,
		HasValidPassport:             DefaultHasValidPassport,
	}
}

// UnmarshalJSON starts from NewSnapshot so absent fields keep their defaults.
func (s *Snapshot) UnmarshalJSON(b []byte) error {
	type plain Snapshot
	p := plain(*NewSnapshot(id.PersonID{}, time.Time{}))
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*s = Snapshot(p)
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for snapshot fixtures.
func (s *Snapshot) UnmarshalYAML(node *yaml.Node) error {
	type plain Snapshot
	p := plain(*NewSnapshot(id.PersonID{}, time.Time{}))
	if err := node.Decode(&p); err != nil {
		return err
	}
	*s = Snapshot(p)
	return nil
}

// AsOfDate is the calendar day of AsOf in UTC.
func (s *Snapshot) AsOfDate() Date {
	return DateOf(s.AsOf)
}

// LivelihoodSecured is true only when the flag was recorded as true.
func (s *Snapshot) LivelihoodSecured() bool {
	return s.IsLivelihoodSecured != nil && *s.IsLivelihoodSecured
}

// HoldsPermit reports whether the current permit code matches code,
// ignoring whitespace differences such as "§16b" vs "§ 16b".
func (s *Snapshot) HoldsPermit(code string) bool {
	return compact(s.CurrentPermitCode) == compact(code)
}

// EducationCase returns the first case for purpose, if any.
func (s *Snapshot) EducationCase(purpose EducationPurpose) (EducationCase, bool) {
	for _, c := range s.EducationCases {
		if c.Purpose == purpose {
			return c, true
		}
	}
	return EducationCase{}, false
}

// FirstEmploymentCase returns the first case matching match, if any.
func (s *Snapshot) FirstEmploymentCase(match func(EmploymentCase) bool) (EmploymentCase, bool) {
	for _, c := range s.EmploymentCases {
		if match == nil || match(c) {
			return c, true
		}
	}
	return EmploymentCase{}, false
}

// IsHomeCountry compares ISO codes case-insensitively against HomeCountry.
func IsHomeCountry(iso2 string) bool {
	return strings.EqualFold(strings.TrimSpace(iso2), HomeCountry)
}

// Clone returns a deep copy.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	c := *s
	c.BirthDate = clonePtr(s.BirthDate)
	c.Permits = cloneSlice(s.Permits, ResidencePermit.Clone)
	c.ResidencePeriods = cloneSlice(s.ResidencePeriods, ResidencePeriod.Clone)
	c.EducationCases = cloneSlice(s.EducationCases, EducationCase.Clone)
	c.EmploymentCases = cloneSlice(s.EmploymentCases, EmploymentCase.Clone)
	c.Documents = cloneSlice(s.Documents, EvidenceDocument.Clone)
	c.Asylum = s.Asylum.Clone()
	c.ResidenceObligation = s.ResidenceObligation.Clone()
	c.CurrentResidenceAreaCode = clonePtr(s.CurrentResidenceAreaCode)
	c.EntryAttempt = s.EntryAttempt.Clone()
	c.Distribution = s.Distribution.Clone()
	c.IsLivelihoodSecured = clonePtr(s.IsLivelihoodSecured)
	c.EntryBanUntil = clonePtr(s.EntryBanUntil)
	return &c
}
