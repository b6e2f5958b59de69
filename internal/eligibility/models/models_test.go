package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	id "legalcheck/pkg/domain"
	dErrors "legalcheck/pkg/domain-errors"
)

func ptr[T any](v T) *T { return &v }

func TestDate(t *testing.T) {
	t.Run("parse and format round trip", func(t *testing.T) {
		d, err := ParseDate("2024-02-29")
		require.NoError(t, err)
		assert.Equal(t, "2024-02-29", d.String())
	})

	t.Run("rejects timestamps", func(t *testing.T) {
		_, err := ParseDate("2024-02-29T10:00:00Z")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("days between ignores time of day", func(t *testing.T) {
		start := NewDate(2020, time.January, 1)
		end := DateOf(time.Date(2020, time.March, 1, 23, 59, 0, 0, time.UTC))
		assert.Equal(t, 60, start.DaysUntil(end))
		assert.Equal(t, -60, end.DaysUntil(start))
	})

	t.Run("days between spans centuries", func(t *testing.T) {
		start := NewDate(1600, time.January, 1)
		end := NewDate(2024, time.January, 1)
		assert.Equal(t, 154863, start.DaysUntil(end))
		assert.Equal(t, -154863, end.DaysUntil(start))
	})

	t.Run("DateOf normalizes to UTC", func(t *testing.T) {
		berlin := time.FixedZone("CET", 3600)
		assert.Equal(t, NewDate(2023, time.December, 31), DateOf(time.Date(2024, time.January, 1, 0, 30, 0, 0, berlin)))
	})

	t.Run("json and yaml use the calendar layout", func(t *testing.T) {
		type holder struct {
			Until Date `json:"until" yaml:"until"`
		}
		raw, err := json.Marshal(holder{Until: NewDate(2029, time.June, 1)})
		require.NoError(t, err)
		assert.JSONEq(t, `{"until":"2029-06-01"}`, string(raw))

		var fromYAML holder
		require.NoError(t, yaml.Unmarshal([]byte("until: 2029-06-01\n"), &fromYAML))
		assert.Equal(t, NewDate(2029, time.June, 1), fromYAML.Until)

		var bad holder
		assert.Error(t, json.Unmarshal([]byte(`{"until":"01.06.2029"}`), &bad))
	})
}

func TestReference(t *testing.T) {
	ref := Ref("AufenthG", "§ 17 Abs. 1", "Training Search")
	assert.Equal(t, "AufenthG § 17 Abs. 1 Training Search", ref.String())
	assert.Equal(t, "AufenthG:§17Abs.1:TrainingSearch", ref.ID())
	assert.True(t, Reference{}.IsZero())

	deduped := DedupeReferences([]Reference{
		Ref("AufenthG", "§ 9a", "Abs. 2 Nr. 1"),
		Ref("AufenthG", "§ 9a", "Abs. 2 Nr. 3"),
		Ref("AufenthG", "§ 9a", "Abs. 2 Nr. 1"),
	})
	assert.Equal(t, []Reference{
		Ref("AufenthG", "§ 9a", "Abs. 2 Nr. 1"),
		Ref("AufenthG", "§ 9a", "Abs. 2 Nr. 3"),
	}, deduped)
}

func TestResult(t *testing.T) {
	cite := Ref("StAG", "§ 10", "Allgemein")
	r := NewResult(false, []string{"b", "a", "b"}, []Reference{cite, cite})
	assert.False(t, r.Satisfied)
	assert.Equal(t, []string{"b", "a"}, r.Reasons)
	assert.Equal(t, []Reference{cite}, r.Citations)
	assert.True(t, r.Cites(cite))
	assert.False(t, r.Cites(Ref("StAG", "§ 10", "Other")))

	assert.True(t, Pass("ok", cite).Satisfied)
	assert.False(t, Fail("no", cite).Satisfied)
}

func TestLanguageLevel(t *testing.T) {
	lvl, err := ParseLanguageLevel("c1")
	require.NoError(t, err)
	assert.Equal(t, LanguageC1, lvl)
	assert.True(t, lvl.AtLeast(LanguageB1))
	assert.False(t, LanguageUnknown.AtLeast(LanguageUnknown))

	_, err = ParseLanguageLevel("D1")
	assert.Error(t, err)

	var s struct {
		Level LanguageLevel `json:"level"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"level":"B2"}`), &s))
	assert.Equal(t, LanguageB2, s.Level)
	raw, _ := json.Marshal(s)
	assert.JSONEq(t, `{"level":"B2"}`, string(raw))
}

func TestPermitAndConditionWindows(t *testing.T) {
	permit := ResidencePermit{
		Code:       "§ 18b",
		IssuedAt:   NewDate(2020, time.January, 1),
		ValidUntil: NewDate(2024, time.January, 1),
	}
	assert.True(t, permit.Covers(NewDate(2020, time.January, 1), NewDate(2024, time.January, 1)))
	assert.False(t, permit.Covers(NewDate(2019, time.December, 31), NewDate(2021, time.January, 1)))
	assert.True(t, permit.ActiveOn(NewDate(2022, time.May, 5)))
	assert.False(t, permit.ActiveOn(NewDate(2024, time.January, 2)))

	cond := PermitCondition{Type: ConditionSpatialRestriction, ValidUntil: ptr(NewDate(2023, time.June, 1))}
	assert.True(t, cond.ActiveOn(NewDate(2023, time.May, 31)))
	assert.False(t, cond.ActiveOn(NewDate(2023, time.June, 1)), "valid-until is exclusive")
}

func TestSnapshotClone(t *testing.T) {
	snap := NewSnapshot(id.NewPersonID(), time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC))
	snap.IsLivelihoodSecured = ptr(true)
	snap.ResidencePeriods = []ResidencePeriod{{Start: NewDate(2019, time.January, 1), IsLawful: ptr(true), CountryISO2: "DE"}}
	snap.Permits = []ResidencePermit{{Code: "§ 18b", Conditions: []PermitCondition{{Type: ConditionReportingDuty}}}}
	snap.Asylum = &AsylumProfile{Status: AsylumRejected, IsDeportable: ptr(false)}

	clone := snap.Clone()
	*clone.IsLivelihoodSecured = false
	*clone.ResidencePeriods[0].IsLawful = false
	clone.Permits[0].Conditions[0].Type = ConditionOther
	*clone.Asylum.IsDeportable = true

	assert.True(t, *snap.IsLivelihoodSecured)
	assert.True(t, *snap.ResidencePeriods[0].IsLawful)
	assert.Equal(t, ConditionReportingDuty, snap.Permits[0].Conditions[0].Type)
	assert.False(t, *snap.Asylum.IsDeportable)
	assert.Nil(t, (*Snapshot)(nil).Clone())
}

func TestSnapshotDefaultsAndHelpers(t *testing.T) {
	snap := NewSnapshot(id.NewPersonID(), time.Date(2024, time.March, 1, 23, 0, 0, 0, time.UTC))
	assert.True(t, snap.CommitsToConstitutionalOrder)
	assert.True(t, snap.HasValidPassport)
	assert.Equal(t, DefaultNationality, snap.NationalityISO2)
	assert.Equal(t, NewDate(2024, time.March, 1), snap.AsOfDate())
	assert.False(t, snap.LivelihoodSecured())

	snap.CurrentPermitCode = "§16b"
	assert.True(t, snap.HoldsPermit("§ 16b"))
	assert.True(t, IsHomeCountry(" de"))
	assert.False(t, IsHomeCountry("AT"))

	snap.EducationCases = []EducationCase{{Purpose: PurposeStudy}, {Purpose: PurposeStudy, Notes: "second"}}
	c, ok := snap.EducationCase(PurposeStudy)
	assert.True(t, ok)
	assert.Empty(t, c.Notes)
	_, ok = snap.EducationCase(PurposeEUInternship)
	assert.False(t, ok)
}

func TestSnapshotDecodingKeepsDefaults(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var snap Snapshot
		require.NoError(t, json.Unmarshal([]byte(`{"language_level":"B2","has_criminal_record":true}`), &snap))
		assert.True(t, snap.HasValidPassport)
		assert.True(t, snap.CommitsToConstitutionalOrder)
		assert.Equal(t, DefaultNationality, snap.NationalityISO2)
		assert.Equal(t, LanguageB2, snap.LanguageLevel)
		assert.True(t, snap.HasCriminalRecord)
	})

	t.Run("json explicit false wins", func(t *testing.T) {
		var snap Snapshot
		require.NoError(t, json.Unmarshal([]byte(`{"has_valid_passport":false}`), &snap))
		assert.False(t, snap.HasValidPassport)
	})

	t.Run("yaml", func(t *testing.T) {
		var snap Snapshot
		require.NoError(t, yaml.Unmarshal([]byte("nationality: TR\nentry_ban_until: 2029-01-01\nhas_entry_ban: true\n"), &snap))
		assert.True(t, snap.HasValidPassport)
		assert.Equal(t, "TR", snap.NationalityISO2)
		require.NotNil(t, snap.EntryBanUntil)
		assert.Equal(t, NewDate(2029, time.January, 1), *snap.EntryBanUntil)
	})
}
