// Package mapper derives an evaluation snapshot from a stored person.
package mapper

import (
	"strings"
	"time"

	"legalcheck/internal/eligibility/calculator"
	em "legalcheck/internal/eligibility/models"
	"legalcheck/internal/person/models"
)

var euMembers = map[string]struct{}{
	"DE": {}, "FR": {}, "IT": {}, "ES": {}, "PL": {}, "NL": {}, "BE": {},
	"SE": {}, "AT": {}, "DK": {}, "FI": {}, "IE": {}, "PT": {}, "GR": {},
	"CZ": {}, "HU": {}, "RO": {}, "BG": {}, "HR": {}, "SK": {}, "SI": {},
	"LT": {}, "LV": {}, "EE": {}, "CY": {}, "MT": {}, "LU": {},
}

// IsEUMember compares case-insensitively against the member list.
func IsEUMember(iso2 string) bool {
	_, ok := euMembers[strings.ToUpper(strings.TrimSpace(iso2))]
	return ok
}

// Mapper turns a Person into a Snapshot. The residence policy decides how
// unknown lawfulness is counted.
type Mapper struct {
	policy calculator.ResidencePolicy
}

func New(policy calculator.ResidencePolicy) *Mapper {
	return &Mapper{policy: policy}
}

// Default uses calculator.DefaultResidencePolicy.
func Default() *Mapper {
	return New(calculator.DefaultResidencePolicy())
}

// ToSnapshot derives the snapshot as of asOf. The person is deep-copied
// first; nothing in the result aliases the input.
func (m *Mapper) ToSnapshot(person *models.Person, asOf time.Time) *em.Snapshot {
	p := person.Clone()
	day := em.DateOf(asOf)

	s := em.NewSnapshot(p.ID, asOf)
	if p.NationalityISO2 != "" {
		s.NationalityISO2 = p.NationalityISO2
	}
	s.IsEUCitizen = IsEUMember(s.NationalityISO2)
	s.BirthDate = p.BirthDate

	if permit, ok := ActivePermit(p.Permits, day); ok {
		s.CurrentPermitCode = permit.Code
		s.CurrentPermitIssuingCountry = permit.IssuingCountry
	}
	s.TotalResidenceMonths = m.policy.CountableMonths(p.ResidenceHistory, p.Permits, day).TotalMonths
	s.HasGermanDegree = hasGermanDegree(p.EducationHistory)
	s.MonthlyNetIncome = currentIncome(p.EmploymentHistory, day)

	s.Permits = p.Permits
	s.ResidencePeriods = p.ResidenceHistory
	s.EducationCases = p.EducationCases
	s.EmploymentCases = p.EmploymentCases
	s.Documents = p.Documents

	s.Asylum = p.Asylum
	s.ResidenceObligation = p.ResidenceObligation
	s.CurrentResidenceAreaCode = p.CurrentResidenceAreaCode
	s.EntryAttempt = p.LastEntryAttempt
	s.Distribution = p.Distribution

	s.LanguageLevel = p.LanguageLevel
	s.IntegrationCourseCompleted = p.IntegrationCourseCompleted
	s.CommitsToConstitutionalOrder = p.CommitsToConstitutionalOrder
	s.IsLivelihoodSecured = p.IsLivelihoodSecured
	s.MonthlyHousingCost = p.MonthlyHousingCost
	s.PensionContributionMonths = p.PensionContributionMonths
	s.HasCriminalRecord = p.HasCriminalRecord
	s.HasEntryBan = p.HasEntryBan
	s.EntryBanUntil = p.EntryBanUntil
	s.HasValidPassport = p.HasValidPassport
	return s
}

// ActivePermit picks the permit valid on day; the most recently issued wins
// when windows overlap.
func ActivePermit(permits []em.ResidencePermit, day em.Date) (em.ResidencePermit, bool) {
	var (
		best  em.ResidencePermit
		found bool
	)
	for _, p := range permits {
		if !p.ActiveOn(day) {
			continue
		}
		if !found || p.IssuedAt.After(best.IssuedAt) {
			best, found = p, true
		}
	}
	return best, found
}

func hasGermanDegree(records []em.EducationRecord) bool {
	for _, r := range records {
		if r.DidGraduate && strings.TrimSpace(r.Institution) != "" {
			return true
		}
	}
	return false
}

func currentIncome(records []em.EmploymentRecord, day em.Date) float64 {
	var total float64
	for _, r := range records {
		if r.ActiveOn(day) {
			total += r.MonthlyNetIncome
		}
	}
	return total
}
