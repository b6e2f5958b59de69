package models

import (
	"fmt"
	"strings"

	em "legalcheck/internal/eligibility/models"
	dErrors "legalcheck/pkg/domain-errors"
)

// Validation of appended history records. Each returns a CodeValidation
// error naming the offending field.

func ValidateResidencePeriod(p em.ResidencePeriod) error {
	if p.Start.IsZero() {
		return invalid("start is required")
	}
	if p.End != nil && p.End.Before(p.Start) {
		return invalid("end must not be before start")
	}
	if len(strings.TrimSpace(p.CountryISO2)) != 2 {
		return invalid("country must be an ISO 3166-1 alpha-2 code")
	}
	return nil
}

func ValidatePermit(p em.ResidencePermit) error {
	if strings.TrimSpace(p.Code) == "" {
		return invalid("code is required")
	}
	if p.IssuedAt.IsZero() || p.ValidUntil.IsZero() {
		return invalid("issued_at and valid_until are required")
	}
	if p.ValidUntil.Before(p.IssuedAt) {
		return invalid("valid_until must not be before issued_at")
	}
	for i, c := range p.Conditions {
		if c.ValidFrom != nil && c.ValidUntil != nil && c.ValidUntil.Before(*c.ValidFrom) {
			return invalid(fmt.Sprintf("conditions[%d]: valid_until must not be before valid_from", i))
		}
	}
	return nil
}

func ValidateEducationRecord(r em.EducationRecord) error {
	if strings.TrimSpace(r.Level) == "" {
		return invalid("level is required")
	}
	if r.GraduationDate != nil && !r.DidGraduate {
		return invalid("graduation_date requires did_graduate")
	}
	return nil
}

func ValidateEmploymentRecord(r em.EmploymentRecord) error {
	if r.Start.IsZero() {
		return invalid("start is required")
	}
	if r.End != nil && r.End.Before(r.Start) {
		return invalid("end must not be before start")
	}
	if r.MonthlyNetIncome < 0 {
		return invalid("monthly_net_income must not be negative")
	}
	return nil
}

func ValidateEducationCase(c em.EducationCase) error {
	switch c.Purpose {
	case em.PurposeVocationalTraining, em.PurposeStudy, em.PurposeStudyMobility,
		em.PurposeRecognition, em.PurposeEUInternship, em.PurposeLanguageOrSchool,
		em.PurposeTrainingSearch, em.PurposeStudyApplication,
		em.PurposeResearchMobility, em.PurposeMobileResearcher:
	default:
		return invalid(fmt.Sprintf("unsupported purpose %q", c.Purpose))
	}
	if c.PlannedStayDays != nil && *c.PlannedStayDays < 0 {
		return invalid("planned_stay_days must not be negative")
	}
	if c.PlannedStart != nil && c.PlannedEnd != nil && c.PlannedEnd.Before(*c.PlannedStart) {
		return invalid("planned_end must not be before planned_start")
	}
	return nil
}

func ValidateEmploymentCase(c em.EmploymentCase) error {
	if c.JobDurationMonths < 0 || c.PlannedMobilityDays < 0 || c.PriorGroupEmploymentMonths < 0 {
		return invalid("durations must not be negative")
	}
	if c.MonthlySalaryGross < 0 {
		return invalid("monthly_salary_gross must not be negative")
	}
	return nil
}

func invalid(msg string) error {
	return dErrors.New(dErrors.CodeValidation, msg)
}
