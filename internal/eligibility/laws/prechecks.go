package laws

import (
	"fmt"
	"strings"

	"legalcheck/internal/eligibility/models"
	"legalcheck/internal/eligibility/rules"
)

func aufenthG(provision, unit string) models.Reference {
	return models.Ref(AufenthG, provision, unit)
}

// Gatekeepers and entry prechecks (§§ 9c-15a).
var (
	EntryBan             = rules.NewLeaf(aufenthG("§ 11", "Entry Ban"), checkEntryBan)
	Asylum               = rules.NewLeaf(aufenthG("§ 10", "Precheck"), checkAsylum)
	BorderStatus         = rules.NewLeaf(aufenthG("§ 13", "Border Status"), checkBorderStatus)
	IllegalEntry         = rules.NewLeaf(aufenthG("§ 14", "Illegal Entry"), checkIllegalEntry)
	ReturnAtBorder       = rules.NewLeaf(aufenthG("§ 15", "Return At Border"), checkReturnAtBorder)
	Distribution         = rules.NewLeaf(aufenthG("§ 15a", "Distribution"), checkDistribution)
	ObligationExists     = rules.NewLeaf(aufenthG("§ 12a", "Residence Obligation"), checkObligationExists)
	ObligationCompliance = rules.NewLeaf(aufenthG("§ 12a", "Compliance"), checkObligationCompliance)
	Conditions           = rules.NewLeaf(aufenthG("§ 12", "Conditions"), checkConditions)
	LongTermExclusions   = rules.NewLeaf(aufenthG("§ 9c", "Precheck"), checkLongTermExclusions)
)

func checkEntryBan(s *models.Snapshot) models.Result {
	ref := aufenthG("§ 11", "Entry Ban")
	if !s.HasEntryBan {
		return models.Pass("No entry ban recorded.", ref)
	}
	if s.EntryBanUntil == nil {
		return models.Fail("Active entry and residence ban (Einreise- und Aufenthaltsverbot) in effect indefinitely.", ref)
	}
	if s.EntryBanUntil.After(s.AsOfDate()) {
		return models.Fail(fmt.Sprintf("Active entry and residence ban (Einreise- und Aufenthaltsverbot) in effect until %s.", s.EntryBanUntil), ref)
	}
	return models.Pass(fmt.Sprintf("Entry ban existed but expired on %s.", s.EntryBanUntil), ref)
}

func checkAsylum(s *models.Snapshot) models.Result {
	ref := aufenthG("§ 10", "Precheck")
	a := s.Asylum
	if a == nil || a.Status == models.AsylumNone || a.Status == "" {
		return models.Pass("No asylum procedure recorded.", ref)
	}
	if a.Status == models.AsylumPending {
		return models.Fail("Asylum procedure is still pending.", ref)
	}
	rejected := a.Status == models.AsylumRejected || a.Status == models.AsylumRejectedManifest
	if rejected && isTrue(a.IsDeportable) {
		return models.Fail("Asylum rejected and person is deportable.", ref)
	}
	return models.Pass("Asylum check passed (Recognized or non-deportable).", ref)
}

func checkBorderStatus(s *models.Snapshot) models.Result {
	a := s.EntryAttempt
	if a == nil {
		return models.Fail("No entry attempt provided.", aufenthG("§ 13", "Insufficient Data"))
	}
	passed := "unknown"
	if a.PassedBorderControlPoint != nil {
		passed = fmt.Sprint(*a.PassedBorderControlPoint)
	}
	return models.Pass(
		fmt.Sprintf("Designated crossing point: %t.; Border control passed: %s.", a.AtDesignatedCrossingPoint, passed),
		aufenthG("§ 13", "Status"),
	)
}

func checkIllegalEntry(s *models.Snapshot) models.Result {
	a := s.EntryAttempt
	switch {
	case a == nil:
		return models.Pass("No entry attempt provided for illegal entry check.", aufenthG("§ 14", "Precheck"))
	case isTrue(a.ExceptionVisaIssuedAtBorder):
		return models.Pass("Exception visa/pass substitute issued at border (recorded).", aufenthG("§ 14", "Exception Visa"))
	case a.HasValidPassportOrSubstitute == nil || a.HasRequiredTitleOrVisa == nil:
		return models.Pass("Missing passport/visa facts. Cannot determine legality.", aufenthG("§ 14", "Insufficient Data"))
	case !*a.HasValidPassportOrSubstitute || !*a.HasRequiredTitleOrVisa:
		return models.Fail(
			"Entry appears illegal due to missing passport/pass substitute and/or required title/visa (formal check).",
			aufenthG("§ 14", "Illegal Entry Indicator"),
		)
	}
	return models.Pass("No indicators for illegal entry found in provided facts (formal check).", aufenthG("§ 14", "Check"))
}

func checkReturnAtBorder(s *models.Snapshot) models.Result {
	a := s.EntryAttempt
	if a == nil {
		return models.Pass("No entry attempt provided.", aufenthG("§ 15", "Check"))
	}
	reason := a.DecisionReason
	if strings.TrimSpace(reason) == "" {
		reason = "reason not recorded"
	}
	switch a.Decision {
	case models.EntryDecisionReturned:
		return models.Fail("Returned at border: "+reason, aufenthG("§ 15", "Returned"))
	case models.EntryDecisionRefused:
		return models.Fail("Entry refused: "+reason, aufenthG("§ 15", "Refused"))
	}
	if isFalse(a.HasValidPassportOrSubstitute) || isFalse(a.HasRequiredTitleOrVisa) {
		return models.Fail(
			"Attempted illegal entry indicators present; §15 return/refusal may apply (precheck only).",
			aufenthG("§ 15", "Warning"),
		)
	}
	return models.Pass("No return/refusal indicators based on provided facts (precheck only).", aufenthG("§ 15", "Check"))
}

func checkDistribution(s *models.Snapshot) models.Result {
	d := s.Distribution
	if d == nil {
		return models.Pass("No §15a distribution procedure recorded.", aufenthG("§ 15a", "Status"))
	}
	state := d.AssignedFederalStateCode
	if state == "" {
		state = "unknown"
	}
	return models.Fail(
		fmt.Sprintf("§15a status: %s. Assigned state: %s.", d.Status, state),
		aufenthG("§ 15a", "Procedure Active"),
	)
}

// activeObligation returns the §12a obligation in force on the as-of date.
// An obligation past its ValidUntil date is reported as expired.
func activeObligation(s *models.Snapshot) (o *models.ResidenceObligation, expired bool) {
	o = s.ResidenceObligation
	if !o.IsActive() {
		return nil, false
	}
	if o.ValidUntil != nil && !o.ValidUntil.After(s.AsOfDate()) {
		return nil, true
	}
	return o, false
}

func checkObligationExists(s *models.Snapshot) models.Result {
	ref := aufenthG("§ 12a", "Residence Obligation")
	o, expired := activeObligation(s)
	if expired {
		return models.Pass("Residence obligation existed but is no longer valid.", ref)
	}
	if o == nil {
		return models.Pass("No active residence obligation under §12a.", ref)
	}
	area := "Residence obligation applies to area " + o.FederalStateCode
	if o.MunicipalityCode != nil {
		area += " / " + *o.MunicipalityCode
	}
	return models.Fail(area, ref)
}

func checkObligationCompliance(s *models.Snapshot) models.Result {
	ref := aufenthG("§ 12a", "Compliance")
	o, _ := activeObligation(s)
	if o == nil {
		return models.Pass("No active §12a obligation.", ref)
	}
	if s.CurrentResidenceAreaCode == nil || strings.TrimSpace(*s.CurrentResidenceAreaCode) == "" {
		return models.Fail("Current residence location unknown.", ref)
	}
	area := strings.TrimSpace(*s.CurrentResidenceAreaCode)
	if strings.HasPrefix(strings.ToUpper(area), strings.ToUpper(o.FederalStateCode)) {
		return models.Pass("Current residence complies with §12a obligation.", ref)
	}
	return models.Fail(fmt.Sprintf("Current residence (%s) outside obligated area %s.", area, o.FederalStateCode), ref)
}

func checkConditions(s *models.Snapshot) models.Result {
	ref := aufenthG("§ 12", "Conditions")
	day := s.AsOfDate()
	var active []string
	for _, p := range s.Permits {
		for _, c := range p.Conditions {
			if !c.ActiveOn(day) {
				continue
			}
			line := fmt.Sprintf("Active condition on %s: %s", p.Code, c.Type)
			if strings.TrimSpace(c.Value) != "" {
				line += " - " + c.Value
			}
			active = append(active, line)
		}
	}
	if len(active) == 0 {
		return models.Pass("No active permit conditions (Nebenbestimmungen) recorded.", ref)
	}
	reasons := append([]string{"Active permit conditions (restrictions) found."}, active...)
	return models.NewResult(false, reasons, []models.Reference{ref})
}

func checkLongTermExclusions(s *models.Snapshot) models.Result {
	ref := aufenthG("§ 9c", "Precheck")
	var found []string
	for _, p := range s.Permits {
		if isTrue(p.ExcludedFromLongTermEU) {
			found = append(found, fmt.Sprintf("Permit %s marked as excluded from Daueraufenthalt-EU.", p.Code))
		}
		if isTrue(p.IsAsylumProcedureOnly) {
			found = append(found, fmt.Sprintf("Permit %s is asylum-procedure-only.", p.Code))
		}
		if isTrue(p.IsTemporaryPurpose) {
			found = append(found, fmt.Sprintf("Permit %s is temporary purpose.", p.Code))
		}
		if isTrue(p.IsHumanitarian) {
			found = append(found, fmt.Sprintf("Permit %s is humanitarian permit (potentially excluded).", p.Code))
		}
	}
	for _, rp := range s.ResidencePeriods {
		if isTrue(rp.ExcludedBy9c) {
			found = append(found, fmt.Sprintf("Residence period (Start: %s) excluded by §9c: %s", rp.Start, rp.ExclusionReason9c))
		}
		if isTrue(rp.IsTemporaryStay) {
			found = append(found, fmt.Sprintf("Residence period (Start: %s) marked as temporary stay.", rp.Start))
		}
	}
	if len(found) == 0 {
		return models.Pass("No §9c exclusion indicators found.", ref)
	}
	reasons := append([]string{"§ 9c exclusion indicators found."}, found...)
	return models.NewResult(false, reasons, []models.Reference{ref})
}

func isTrue(b *bool) bool {
	return b != nil && *b
}

func isFalse(b *bool) bool {
	return b != nil && !*b
}
