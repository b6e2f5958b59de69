package laws

import (
	"fmt"
	"strings"

	"legalcheck/internal/eligibility/models"
	"legalcheck/internal/eligibility/rules"
)

const (
	// SubsistenceRate is the monthly standard rate for a single adult
	// (Regelsatz 2024). Income must cover it plus housing.
	SubsistenceRate = 563.0

	LongTermResidenceMonths = 60
	NaturalisationYears     = 5
	FastNaturalisationYears = 3
)

// excludedTitles are permit codes whose temporary purpose bars § 9a.
var excludedTitles = []string{"§ 16a", "§ 16b", "§ 16d", "§ 16e", "§ 16f", "§ 19c"}

func stag(provision, unit string) models.Reference {
	return models.Ref(StAG, provision, unit)
}

func leaf(ref models.Reference, check func(models.Reference, *models.Snapshot) models.Result) *rules.Leaf {
	return rules.NewLeaf(ref, func(s *models.Snapshot) models.Result { return check(ref, s) })
}

// Composite provisions: every child is always evaluated.
var (
	GeneralRequirements = rules.NewAnd(aufenthG("§ 5", "Abs. 1"),
		leaf(aufenthG("§ 5", "Abs. 1 Nr. 1"), checkLivelihoodFlag),
		leaf(aufenthG("§ 5", "Abs. 1 Nr. 2"), checkNoExpulsionInterest),
	)

	LongTermResidenceEU = rules.NewAnd(aufenthG("§ 9a", "Erlaubnis zum Daueraufenthalt-EU"),
		leaf(aufenthG("§ 9a", "Abs. 3 (Ausschlussgründe)"), checkLongTermExclusion),
		leaf(aufenthG("§ 9a", "Abs. 2 Nr. 1"), checkLongTermResidence),
		leaf(aufenthG("§ 9a", "Abs. 2 Nr. 2"), checkLivelihoodWithIncome),
		leaf(aufenthG("§ 9a", "Abs. 2 Nr. 3"), checkLanguageB1),
		leaf(aufenthG("§ 9a", "Abs. 2 Nr. 4"), checkBasicKnowledge),
	)

	Naturalisation = rules.NewAnd(stag("§ 10", "Allgemein"),
		leaf(stag("§ 10", "Abs. 1 S. 1 (Aufenthaltsdauer)"), checkNaturalisationResidence),
		leaf(stag("§ 10", "Abs. 1 Nr. 3 (Lebensunterhalt)"), checkNaturalisationLivelihood),
	)
)

func checkLivelihoodFlag(ref models.Reference, s *models.Snapshot) models.Result {
	if s.LivelihoodSecured() {
		return models.Pass("Lebensunterhalt ist gesichert.", ref)
	}
	return models.Fail("Lebensunterhalt ist nicht gesichert.", ref)
}

func checkNoExpulsionInterest(ref models.Reference, s *models.Snapshot) models.Result {
	if !s.HasCriminalRecord {
		return models.Pass("Kein Ausweisungsinteresse bekannt (Keine Vorstrafen).", ref)
	}
	return models.Fail("Ausweisungsinteresse könnte bestehen (Vorstrafen vorhanden).", ref)
}

func checkLongTermExclusion(ref models.Reference, s *models.Snapshot) models.Result {
	if strings.TrimSpace(s.CurrentPermitCode) == "" {
		return models.Fail("Aktueller Aufenthaltstitel unbekannt - Prüfung auf Ausschlussgründe nicht möglich.", ref)
	}
	current := strings.ReplaceAll(s.CurrentPermitCode, " ", "")
	for _, excluded := range excludedTitles {
		if strings.Contains(current, strings.ReplaceAll(excluded, " ", "")) {
			return models.Fail(
				fmt.Sprintf("§ 9a ist ausgeschlossen, da aktueller Titel (%s) vorübergehender Natur ist (%s).", s.CurrentPermitCode, excluded),
				ref,
			)
		}
	}
	return models.Pass("Keine Ausschlussgründe nach Abs. 3 identifiziert.", ref)
}

func checkLongTermResidence(ref models.Reference, s *models.Snapshot) models.Result {
	if s.TotalResidenceMonths >= LongTermResidenceMonths {
		return models.Pass(fmt.Sprintf("Aufenthaltsdauer erfüllt: %d Monate (Benötigt: %d)", s.TotalResidenceMonths, LongTermResidenceMonths), ref)
	}
	return models.Fail(fmt.Sprintf("Aufenthaltsdauer nicht erfüllt: %d Monate (Benötigt: %d)", s.TotalResidenceMonths, LongTermResidenceMonths), ref)
}

// incomeCoversNeeds is the fallback when livelihood was not confirmed:
// net income must cover housing plus the standard rate.
func incomeCoversNeeds(s *models.Snapshot) (needs float64, ok bool) {
	needs = s.MonthlyHousingCost + SubsistenceRate
	return needs, s.MonthlyNetIncome >= needs
}

func checkLivelihoodWithIncome(ref models.Reference, s *models.Snapshot) models.Result {
	if s.LivelihoodSecured() {
		return models.Pass("Lebensunterhalt ist gesichert.", ref)
	}
	if needs, ok := incomeCoversNeeds(s); ok {
		return models.Pass(fmt.Sprintf("Einkommen (%s EUR) deckt Bedarf (%s EUR).", eur(s.MonthlyNetIncome), eur(needs)), ref)
	}
	return models.Fail("Lebensunterhalt nicht gesichert.", ref)
}

func checkLanguageB1(ref models.Reference, s *models.Snapshot) models.Result {
	if s.LanguageLevel.AtLeast(models.LanguageB1) {
		return models.Pass(fmt.Sprintf("Sprachkenntnisse ausreichend (%s).", s.LanguageLevel), ref)
	}
	return models.Fail(fmt.Sprintf("Sprachkenntnisse nicht ausreichend: %s (Benötigt: B1).", s.LanguageLevel), ref)
}

func checkBasicKnowledge(ref models.Reference, s *models.Snapshot) models.Result {
	if s.IntegrationCourseCompleted || s.HasGermanDegree {
		return models.Pass("Grundkenntnisse vorhanden (Integrationskurs oder deutscher Abschluss).", ref)
	}
	return models.Fail("Nachweis über Grundkenntnisse (Integrationskurs) fehlt.", ref)
}

// checkNaturalisationResidence counts completed years; C1 German shortens
// the requirement.
func checkNaturalisationResidence(ref models.Reference, s *models.Snapshot) models.Result {
	required := NaturalisationYears
	if s.LanguageLevel.AtLeast(models.LanguageC1) {
		required = FastNaturalisationYears
	}
	years := s.TotalResidenceMonths / 12
	if years >= required {
		return models.Pass(
			fmt.Sprintf("Aufenthaltsdauer von %d Jahren (ca. %d Monate) erfüllt (Erforderlich: %d).", years, s.TotalResidenceMonths, required),
			ref,
		)
	}
	return models.Fail(fmt.Sprintf("Aufenthaltsdauer von %d Jahren zu kurz (Erforderlich: %d).", years, required), ref)
}

func checkNaturalisationLivelihood(ref models.Reference, s *models.Snapshot) models.Result {
	if s.LivelihoodSecured() {
		return models.Pass("Lebensunterhalt ist gesichert (Manuell bestätigt).", ref)
	}
	needs, ok := incomeCoversNeeds(s)
	if ok {
		return models.Pass(fmt.Sprintf("Einkommen (%s EUR) deckt Bedarf (%s EUR).", eur(s.MonthlyNetIncome), eur(needs)), ref)
	}
	return models.Fail(
		fmt.Sprintf("Lebensunterhalt nicht gesichert. Einkommen %s EUR < Bedarf %s EUR.", eur(s.MonthlyNetIncome), eur(needs)),
		ref,
	)
}
