// Package calculator derives durations from residence history. Everything
// here is a pure function of its inputs and the as-of date.
package calculator

import (
	"fmt"
	"math"

	"legalcheck/internal/eligibility/models"
)

// AverageMonthDays is the mean Gregorian month length used for residence
// durations.
const AverageMonthDays = 30.4375

// DefaultAssumeLawfulWhenUnknown counts domestic periods whose lawfulness
// was never recorded.
const DefaultAssumeLawfulWhenUnknown = true

// NoPeriodsNote is the single note returned for an empty history.
const NoPeriodsNote = "No residence periods provided."

// ResidenceSummary is the outcome of the countable-months calculation.
// Notes has exactly one entry per excluded period, in input order.
type ResidenceSummary struct {
	TotalMonths    int      `json:"total_months"`
	DomesticMonths int      `json:"domestic_months"`
	ForeignMonths  int      `json:"foreign_months"`
	Notes          []string `json:"notes"`
}

// ResidencePolicy holds the tunable assumptions of the calculation.
type ResidencePolicy struct {
	// AssumeLawfulWhenUnknown counts a domestic period with no lawfulness
	// flag. When false such periods are excluded with a note.
	AssumeLawfulWhenUnknown bool
}

func DefaultResidencePolicy() ResidencePolicy {
	return ResidencePolicy{AssumeLawfulWhenUnknown: DefaultAssumeLawfulWhenUnknown}
}

// CountableResidenceMonths applies the default policy.
func CountableResidenceMonths(periods []models.ResidencePeriod, permits []models.ResidencePermit, asOf models.Date) ResidenceSummary {
	return DefaultResidencePolicy().CountableMonths(periods, permits, asOf)
}

// CountableMonths sums the months that count towards long-term residence.
//
// Each period is clipped to asOf and measured as floor(days/30.4375).
// Periods of zero or negative length contribute nothing and produce no note.
// Domestic periods count unless marked unlawful. Foreign periods count only
// when a German title was held throughout (recorded, or derived from a
// permit covering the whole period) and they are not flagged as not
// countable.
func (p ResidencePolicy) CountableMonths(periods []models.ResidencePeriod, permits []models.ResidencePermit, asOf models.Date) ResidenceSummary {
	if len(periods) == 0 {
		return ResidenceSummary{Notes: []string{NoPeriodsNote}}
	}

	summary := ResidenceSummary{Notes: []string{}}
	for _, period := range periods {
		end := asOf
		if period.End != nil {
			end = models.Min(*period.End, asOf)
		}
		days := period.Start.DaysUntil(end)
		if days <= 0 {
			continue
		}
		months := int(math.Floor(float64(days) / AverageMonthDays))

		if models.IsHomeCountry(period.CountryISO2) {
			if note, excluded := p.excludeDomestic(period); excluded {
				summary.Notes = append(summary.Notes, note)
				continue
			}
			summary.DomesticMonths += months
			continue
		}

		if note, excluded := excludeForeign(period, permits, end); excluded {
			summary.Notes = append(summary.Notes, note)
			continue
		}
		summary.ForeignMonths += months
	}
	summary.TotalMonths = summary.DomesticMonths + summary.ForeignMonths
	return summary
}

func (p ResidencePolicy) excludeDomestic(period models.ResidencePeriod) (string, bool) {
	switch {
	case period.IsLawful != nil && !*period.IsLawful:
		return fmt.Sprintf("Excluded DE period %s: marked not lawful.", period.Start), true
	case period.IsLawful == nil && !p.AssumeLawfulWhenUnknown:
		return fmt.Sprintf("Excluded DE period %s: lawfulness not established.", period.Start), true
	}
	return "", false
}

func excludeForeign(period models.ResidencePeriod, permits []models.ResidencePermit, end models.Date) (string, bool) {
	hadTitle := false
	if period.HadGermanTitle != nil {
		hadTitle = *period.HadGermanTitle
	} else {
		hadTitle = anyPermitCovers(permits, period.Start, end)
	}
	if !hadTitle {
		return fmt.Sprintf("Excluded abroad period %s (%s): no German title during period.", period.CountryISO2, period.Start), true
	}
	if period.CountsForLongTermEU != nil && !*period.CountsForLongTermEU {
		return fmt.Sprintf("Excluded abroad period %s (%s): marked not countable.", period.CountryISO2, period.Start), true
	}
	return "", false
}

func anyPermitCovers(permits []models.ResidencePermit, start, end models.Date) bool {
	for _, permit := range permits {
		if permit.Covers(start, end) {
			return true
		}
	}
	return false
}
