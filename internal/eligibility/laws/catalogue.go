// Package laws holds the rule catalogue: every statutory check the engine can
// run, keyed by the reference that identifies it, plus the default rule sets.
package laws

import (
	"legalcheck/internal/eligibility/engine"
	"legalcheck/internal/eligibility/models"
	"legalcheck/internal/eligibility/rules"
)

const (
	AufenthG = "AufenthG"
	StAG     = "StAG"
)

// Law describes a statute the catalogue has rules for.
type Law struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	SourceURL string `json:"source_url" yaml:"source_url"`
	Version   string `json:"version" yaml:"version"`
}

// Entry is a catalogued rule with a human title.
type Entry struct {
	Rule  rules.Rule
	Title string
}

func (e Entry) Reference() models.Reference {
	return e.Rule.Reference()
}

// Catalogue is immutable once built and safe for concurrent use.
type Catalogue struct {
	laws    map[string]Law
	entries []Entry
	byRef   map[models.Reference]Entry
	byID    map[string]Entry
}

// NewCatalogue indexes entries by reference and by rule ID. A duplicate
// of either is a programming error and panics; references differing only
// in spacing ("§ 18" and "§18") share a rule ID and count as duplicates.
func NewCatalogue(laws []Law, entries []Entry) *Catalogue {
	c := &Catalogue{
		laws:    make(map[string]Law, len(laws)),
		entries: append([]Entry(nil), entries...),
		byRef:   make(map[models.Reference]Entry, len(entries)),
		byID:    make(map[string]Entry, len(entries)),
	}
	for _, l := range laws {
		c.laws[l.ID] = l
	}
	for _, e := range entries {
		ref := e.Reference()
		if _, dup := c.byRef[ref]; dup {
			panic("laws: duplicate catalogue entry " + ref.String())
		}
		if prev, dup := c.byID[ref.ID()]; dup {
			panic("laws: rule ID " + ref.ID() + " shared by " + prev.Reference().String() + " and " + ref.String())
		}
		c.byRef[ref] = e
		c.byID[ref.ID()] = e
	}
	return c
}

// Lookup finds a top-level rule by its identity reference.
func (c *Catalogue) Lookup(ref models.Reference) (Entry, bool) {
	e, ok := c.byRef[ref]
	return e, ok
}

// LookupID finds a top-level rule by its rule ID.
func (c *Catalogue) LookupID(ruleID string) (Entry, bool) {
	e, ok := c.byID[ruleID]
	return e, ok
}

// Title returns the catalogue title for ref, falling back to the reference
// itself for composite children and unknown rules.
func (c *Catalogue) Title(ref models.Reference) string {
	if e, ok := c.byRef[ref]; ok && e.Title != "" {
		return e.Title
	}
	return ref.String()
}

// Law returns the metadata of a known law.
func (c *Catalogue) Law(id string) (Law, bool) {
	l, ok := c.laws[id]
	return l, ok
}

// Entries lists every entry in catalogue order.
func (c *Catalogue) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

var defaultCatalogue = NewCatalogue(
	[]Law{
		{
			ID:        AufenthG,
			Title:     "Aufenthaltsgesetz",
			SourceURL: "https://www.gesetze-im-internet.de/aufenthg_2004/",
			Version:   "1.0.0",
		},
		{
			ID:        StAG,
			Title:     "Staatsangehörigkeitsgesetz",
			SourceURL: "https://www.gesetze-im-internet.de/stag/",
			Version:   "1.0.0",
		},
	},
	[]Entry{
		{EntryBan, "Entry and residence ban"},
		{BorderStatus, "Border crossing status"},
		{IllegalEntry, "Illegal entry indicators"},
		{ReturnAtBorder, "Return or refusal at the border"},
		{Distribution, "Distribution procedure"},
		{Asylum, "Asylum procedure"},
		{ObligationExists, "Residence obligation"},
		{ObligationCompliance, "Residence obligation compliance"},
		{VocationalTraining, "Vocational training"},
		{Study, "Study"},
		{MatriculationEvidence, "Matriculation certificate uploaded"},
		{StudyMobility, "Student mobility"},
		{Recognition, "Recognition of foreign qualifications"},
		{EUInternship, "EU internship"},
		{LanguageOrSchool, "Language course or school attendance"},
		{TrainingSearch, "Search for vocational training"},
		{StudyApplication, "Study application"},
		{SkilledWorkerDefinition, "Skilled worker definition"},
		{EmploymentRequirements, "General employment requirements"},
		{AgePension, "Age and pension provision"},
		{VocationalEntitlement, "Skilled worker with vocational training"},
		{AcademicEntitlement, "Skilled worker with academic training"},
		{BlueCard, "EU Blue Card"},
		{Settlement, "Settlement permit for skilled workers"},
		{ResearchMobility, "Short-term researcher mobility"},
		{MobileResearcher, "Mobile researcher"},
		{BusinessMobility, "Blue Card short-term mobility"},
		{LongTermMobility, "Blue Card long-term mobility"},
		{ICTCard, "ICT card"},
		{Conditions, "Permit conditions"},
		{LongTermExclusions, "Long-term residence exclusions"},
		{GeneralRequirements, "General requirements for residence titles"},
		{LongTermResidenceEU, "EU long-term residence permit"},
		{Naturalisation, "Naturalisation entitlement"},
	},
)

// Default returns the built-in catalogue.
func Default() *Catalogue {
	return defaultCatalogue
}

// DefaultRuleSets returns the built-in configuration: AufenthG runs every
// precheck followed by the composite provisions; StAG gates naturalisation
// behind the entry ban.
func DefaultRuleSets() []engine.RuleSet {
	return []engine.RuleSet{
		{
			LawID: AufenthG,
			Rules: []rules.Rule{
				EntryBan,
				BorderStatus,
				IllegalEntry,
				ReturnAtBorder,
				Distribution,
				Asylum,
				ObligationExists,
				ObligationCompliance,
				VocationalTraining,
				Study,
				MatriculationEvidence,
				StudyMobility,
				Recognition,
				EUInternship,
				LanguageOrSchool,
				TrainingSearch,
				StudyApplication,
				SkilledWorkerDefinition,
				EmploymentRequirements,
				AgePension,
				VocationalEntitlement,
				AcademicEntitlement,
				BlueCard,
				Settlement,
				ResearchMobility,
				MobileResearcher,
				BusinessMobility,
				LongTermMobility,
				ICTCard,
				Conditions,
				LongTermExclusions,
				GeneralRequirements,
				LongTermResidenceEU,
			},
			Blocking: []models.Reference{
				EntryBan.Reference(),
				Asylum.Reference(),
				IllegalEntry.Reference(),
				ReturnAtBorder.Reference(),
			},
		},
		{
			LawID:    StAG,
			Rules:    []rules.Rule{EntryBan, Naturalisation},
			Blocking: []models.Reference{EntryBan.Reference()},
		},
	}
}
