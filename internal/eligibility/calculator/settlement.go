package calculator

import (
	"cmp"
	"slices"

	"legalcheck/internal/eligibility/models"
)

// EmploymentMonthDays is the flat month length used for settlement
// employment time. It is coarser than AverageMonthDays on purpose; the two
// calculations are kept separate.
const EmploymentMonthDays = 30

// SettlementTrack names a route to a settlement permit.
type SettlementTrack string

const (
	TrackBlueCard SettlementTrack = "blue_card"
	TrackSkilled  SettlementTrack = "skilled_worker"
)

// SettlementFacts are the inputs of the threshold decision table.
type SettlementFacts struct {
	HoldsBlueCard   bool
	HasGermanDegree bool
	Language        models.LanguageLevel
}

// SettlementThreshold is one row of the decision table.
type SettlementThreshold struct {
	Track  SettlementTrack
	Months int
	// BlueCardTimeOnly counts only Blue Card periods; otherwise all
	// skilled-worker-class periods count.
	BlueCardTimeOnly bool
	// RequiredLanguage must be met on top of the months once the row has
	// been selected.
	RequiredLanguage models.LanguageLevel

	requiresBlueCard     bool
	requiresGermanDegree bool
	selectLanguage       models.LanguageLevel
}

func (t SettlementThreshold) applies(f SettlementFacts) bool {
	if t.requiresBlueCard && !f.HoldsBlueCard {
		return false
	}
	if t.requiresGermanDegree && !f.HasGermanDegree {
		return false
	}
	if t.selectLanguage != models.LanguageUnknown && !f.Language.AtLeast(t.selectLanguage) {
		return false
	}
	return true
}

var settlementTable = []SettlementThreshold{
	{Track: TrackBlueCard, Months: 21, BlueCardTimeOnly: true, requiresBlueCard: true, selectLanguage: models.LanguageB1},
	{Track: TrackBlueCard, Months: 27, BlueCardTimeOnly: true, requiresBlueCard: true},
	{Track: TrackSkilled, Months: 24, RequiredLanguage: models.LanguageB1, requiresGermanDegree: true},
	{Track: TrackSkilled, Months: 36, RequiredLanguage: models.LanguageB1},
}

// SettlementThresholds selects, per track, the lowest applicable row and
// returns the winners in ascending order of months.
func SettlementThresholds(f SettlementFacts) []SettlementThreshold {
	best := map[SettlementTrack]SettlementThreshold{}
	for _, row := range settlementTable {
		if !row.applies(f) {
			continue
		}
		if cur, ok := best[row.Track]; !ok || row.Months < cur.Months {
			best[row.Track] = row
		}
	}
	out := make([]SettlementThreshold, 0, len(best))
	for _, row := range best {
		out = append(out, row)
	}
	slices.SortFunc(out, func(a, b SettlementThreshold) int {
		if a.Months != b.Months {
			return a.Months - b.Months
		}
		return cmp.Compare(a.Track, b.Track)
	})
	return out
}

// QualifyingEmploymentMonths sums days/30 over periods whose title type is
// in titles. Periods are clipped to asOf; negative spans count zero.
func QualifyingEmploymentMonths(periods []models.ResidencePeriod, asOf models.Date, titles ...models.ResidenceTitleType) int {
	total := 0
	for _, p := range periods {
		if !slices.Contains(titles, p.TitleType) {
			continue
		}
		end := asOf
		if p.End != nil {
			end = models.Min(*p.End, asOf)
		}
		days := p.Start.DaysUntil(end)
		if days <= 0 {
			continue
		}
		total += days / EmploymentMonthDays
	}
	return total
}
