package laws

import (
	"fmt"
	"strings"

	"legalcheck/internal/eligibility/calculator"
	"legalcheck/internal/eligibility/models"
	"legalcheck/internal/eligibility/rules"
	id "legalcheck/pkg/domain"
)

// Salary thresholds are monthly gross amounts in EUR for 2024.
const (
	BlueCardStandardSalary = 3775.0
	BlueCardReducedSalary  = 3420.0
	AgePensionSalary       = 4000.0
	AgePensionMinAge       = 45

	BlueCardMinJobMonths      = 6
	FreshGraduateYears        = 3
	BlueCardPermitCode        = "BlueCardEU"
	ResearchMobilityMaxDays   = 180
	MobileResearcherMaxDays   = 365
	BusinessMobilityMaxDays   = 90
	LongTermMobilityMinMonths = 12

	ICTMinPriorMonths   = 6
	ICTMinTransferDays  = 90
	ICTMaxMonths        = 36
	ICTTraineeMaxMonths = 12
)

var (
	shortageISCOPrefixes = []string{"132", "133", "134", "21", "221", "222", "225", "226", "23", "25"}
	itISCOPrefixes       = []string{"133", "25"}
)

// Employment, mobility and settlement provisions (§§ 18-19).
var (
	SkilledWorkerDefinition = rules.NewLeaf(aufenthG("§ 18 Abs. 3", "Fachkraft"), checkSkilledWorkerDefinition)
	EmploymentRequirements  = rules.NewLeaf(aufenthG("§ 18 Abs. 2", "General Requirements"), checkEmploymentRequirements)
	AgePension              = rules.NewLeaf(aufenthG("§ 18 Abs. 2 Nr. 5", "Age Pension"), checkAgePension)
	VocationalEntitlement   = rules.NewLeaf(aufenthG("§ 18a", "Vocational"), checkVocationalEntitlement)
	AcademicEntitlement     = rules.NewLeaf(aufenthG("§ 18b", "Academic"), checkAcademicEntitlement)
	BlueCard                = rules.NewLeaf(aufenthG("§ 18g", "Blue Card"), checkBlueCard)
	Settlement              = rules.NewLeaf(aufenthG("§ 18c", "Settlement"), checkSettlement)
	ResearchMobility        = rules.NewLeaf(aufenthG("§ 18e", "Research Mobility"), checkResearchMobility)
	MobileResearcher        = rules.NewLeaf(aufenthG("§ 18f", "Mobile Researcher"), checkMobileResearcher)
	BusinessMobility        = rules.NewLeaf(aufenthG("§ 18h", "Business Mobility"), checkBusinessMobility)
	LongTermMobility        = rules.NewLeaf(aufenthG("§ 18i", "Long-Term Mobility"), checkLongTermMobility)
	ICTCard                 = rules.NewLeaf(aufenthG("§ 19", "ICT Card"), checkICTCard)
)

func eur(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func vocationalSkilled(c models.EmploymentCase) bool {
	return c.Qualification == models.QualificationVocational && c.Equivalence == models.EquivalenceConfirmed
}

func academicSkilled(c models.EmploymentCase) bool {
	return c.Qualification == models.QualificationAcademic && (c.IsGermanDegree || c.Equivalence == models.EquivalenceConfirmed)
}

func hasJobOffer(c models.EmploymentCase) bool {
	return c.HasConcreteJobOffer
}

func hasISCOPrefix(isco string, prefixes []string) bool {
	isco = strings.TrimSpace(isco)
	if isco == "" {
		return false
	}
	for _, p := range prefixes {
		if strings.HasPrefix(isco, p) {
			return true
		}
	}
	return false
}

func freshGraduate(c models.EmploymentCase, asOf models.Date) bool {
	return c.GraduationDate != nil && !c.GraduationDate.Before(asOf.AddYears(-FreshGraduateYears))
}

func checkSkilledWorkerDefinition(s *models.Snapshot) models.Result {
	c, ok := s.FirstEmploymentCase(nil)
	switch {
	case !ok:
		return models.Pass("No employment profile.", aufenthG("§ 18 Abs. 3", "Skip"))
	case vocationalSkilled(c):
		return models.Pass("Person is 'Fachkraft with vocational training'.", aufenthG("§ 18 Abs. 3 Nr. 1", "Vocational"))
	case academicSkilled(c):
		return models.Pass("Person is 'Fachkraft with academic training'.", aufenthG("§ 18 Abs. 3 Nr. 2", "Academic"))
	}
	return models.Fail(
		"Person does not meet 'Fachkraft' definition (Missing qualification or equivalence).",
		aufenthG("§ 18 Abs. 3", "Not Skilled"),
	)
}

func checkEmploymentRequirements(s *models.Snapshot) models.Result {
	c, ok := s.FirstEmploymentCase(nil)
	switch {
	case !ok:
		return models.Pass("No employment case.", aufenthG("§ 18 Abs. 2", "Skip"))
	case !c.HasConcreteJobOffer:
		return models.Fail("No concrete job offer.", aufenthG("§ 18 Abs. 2 Nr. 1", "No Job Offer"))
	case !c.HasBAApproval:
		return models.Fail("Missing BA approval check.", aufenthG("§ 18 Abs. 2 Nr. 2", "BA Approval"))
	case c.RequiresProfessionalLicense && !c.HasProfessionalLicense:
		return models.Fail("Missing professional practice license.", aufenthG("§ 18 Abs. 2 Nr. 3", "License"))
	}
	return models.Pass("General requirements (§ 18 Abs. 2 Nr. 1-4) met.", aufenthG("§ 18 Abs. 2", "Met"))
}

// checkAgePension applies the pension provision for applicants aged 45 or
// older. Without a birth date the salary test runs for everyone.
func checkAgePension(s *models.Snapshot) models.Result {
	c, ok := s.FirstEmploymentCase(nil)
	if !ok {
		return models.Pass("No employment case.", aufenthG("§ 18 Abs. 2 Nr. 5", "Skip"))
	}
	pass := aufenthG("§ 18 Abs. 2 Nr. 5", "Pass")
	if s.BirthDate != nil && !id.HasReachedAge(s.BirthDate.Time(), s.AsOf, AgePensionMinAge) {
		return models.Pass(fmt.Sprintf("Applicant is under %d; age/pension requirement not applicable.", AgePensionMinAge), pass)
	}
	if c.MonthlySalaryGross < AgePensionSalary && !c.HasAdequatePensionPlan {
		msg := fmt.Sprintf("Salary %s < %s and no pension plan. Critical if Age > %d.", eur(c.MonthlySalaryGross), eur(AgePensionSalary), AgePensionMinAge)
		if s.BirthDate != nil {
			msg = fmt.Sprintf("Salary %s < %s and no pension plan at age %d.", eur(c.MonthlySalaryGross), eur(AgePensionSalary), id.AgeAt(s.BirthDate.Time(), s.AsOf))
		}
		return models.Fail(msg, aufenthG("§ 18 Abs. 2 Nr. 5", "Age Check Required"))
	}
	return models.Pass("Age/Pension Requirement met or not applicable.", pass)
}

func checkVocationalEntitlement(s *models.Snapshot) models.Result {
	if _, ok := s.FirstEmploymentCase(vocationalSkilled); !ok {
		return models.Fail("Not a Fachkraft with vocational training (§ 18a).", aufenthG("§ 18a", "Definition"))
	}
	if _, ok := s.FirstEmploymentCase(hasJobOffer); !ok {
		return models.Fail("No qualified job offer.", aufenthG("§ 18a", "Job Offer"))
	}
	return models.Pass("Entitlement to residence permit pursuant to § 18a exists.", aufenthG("§ 18a", "Grant"))
}

func checkAcademicEntitlement(s *models.Snapshot) models.Result {
	if _, ok := s.FirstEmploymentCase(academicSkilled); !ok {
		return models.Fail("Not a Fachkraft with academic training (§ 18b).", aufenthG("§ 18b", "Definition"))
	}
	if _, ok := s.FirstEmploymentCase(hasJobOffer); !ok {
		return models.Fail("No qualified job offer.", aufenthG("§ 18b", "Job Offer"))
	}
	return models.Pass("Entitlement to residence permit pursuant to § 18b exists.", aufenthG("§ 18b", "Grant"))
}

// checkBlueCard follows two paths: academics against the standard or
// reduced salary threshold, and IT specialists without a degree in ISCO
// groups 133 or 25.
func checkBlueCard(s *models.Snapshot) models.Result {
	c, ok := s.FirstEmploymentCase(hasJobOffer)
	if !ok {
		return models.Fail("No job offer found.", aufenthG("§ 18g", "Job Offer Missing"))
	}
	if c.JobDurationMonths < BlueCardMinJobMonths {
		return models.Fail(
			fmt.Sprintf("Job duration %d months too short (Min %d).", c.JobDurationMonths, BlueCardMinJobMonths),
			aufenthG("§ 18g Abs. 3", "Duration"),
		)
	}

	salary := c.MonthlySalaryGross
	switch {
	case academicSkilled(c):
		if salary >= BlueCardStandardSalary {
			return models.Pass("Blue Card (Standard) requirements met.", aufenthG("§ 18g Abs. 1 S. 1", "Standard"))
		}
		shortage := hasISCOPrefix(c.ISCOCode, shortageISCOPrefixes)
		if !shortage && !freshGraduate(c, s.AsOfDate()) {
			return models.Fail(
				fmt.Sprintf("Salary %s below standard threshold %s and not eligible for reduction.", eur(salary), eur(BlueCardStandardSalary)),
				aufenthG("§ 18g Abs. 1 S. 1", "Salary Too Low"),
			)
		}
		if salary < BlueCardReducedSalary {
			return models.Fail(
				fmt.Sprintf("Salary %s below reduced threshold %s.", eur(salary), eur(BlueCardReducedSalary)),
				aufenthG("§ 18g Abs. 1 S. 2", "Salary Too Low"),
			)
		}
		reason := "Recent Graduate"
		if shortage {
			reason = "Shortage Occupation"
		}
		return models.Pass(
			fmt.Sprintf("Blue Card (%s) requirements met (Reduced Threshold).", reason),
			aufenthG("§ 18g Abs. 1 S. 2", "Reduced"),
		)

	case c.HasITSpecialistExperience:
		if !hasISCOPrefix(c.ISCOCode, itISCOPrefixes) {
			return models.Fail(
				fmt.Sprintf("IT Specialist requires ISCO 133 or 25 (Has: %s).", c.ISCOCode),
				aufenthG("§ 18g Abs. 2", "Bad ISCO"),
			)
		}
		if salary < BlueCardReducedSalary {
			return models.Fail(
				fmt.Sprintf("IT Specialist Salary %s below threshold %s.", eur(salary), eur(BlueCardReducedSalary)),
				aufenthG("§ 18g Abs. 2", "Salary Too Low"),
			)
		}
		return models.Pass("Blue Card (IT Specialist) requirements met.", aufenthG("§ 18g Abs. 2", "IT"))
	}
	return models.Fail("Neither Academic Degree nor IT Specialist requirement met.", aufenthG("§ 18g", "Qualification"))
}

// checkSettlement tries every applicable settlement threshold, lowest
// first. The first track that is fully met wins. Otherwise the most
// specific shortfall is reported: missing pension months on the Blue Card
// track, then missing language on the skilled track, then the generic
// failure.
func checkSettlement(s *models.Snapshot) models.Result {
	asOf := s.AsOfDate()
	blueCardMonths := calculator.QualifyingEmploymentMonths(s.ResidencePeriods, asOf, models.TitleBlueCardEU)
	skilledMonths := calculator.QualifyingEmploymentMonths(s.ResidencePeriods, asOf, models.TitleSkilledWorker, models.TitleBlueCardEU)
	pension := s.PensionContributionMonths

	thresholds := calculator.SettlementThresholds(calculator.SettlementFacts{
		HoldsBlueCard:   s.HoldsPermit(BlueCardPermitCode),
		HasGermanDegree: s.HasGermanDegree,
		Language:        s.LanguageLevel,
	})

	var pensionShort, languageShort *models.Result
	for _, t := range thresholds {
		months := skilledMonths
		if t.BlueCardTimeOnly {
			months = blueCardMonths
		}
		if months < t.Months {
			continue
		}
		if t.Track == calculator.TrackBlueCard {
			if pension >= t.Months {
				return models.Pass(
					fmt.Sprintf("Blue Card holder eligible for settlement after %d months.", months),
					aufenthG("§ 18c Abs. 2", "Blue Card Settlement"),
				)
			}
			if pensionShort == nil {
				r := models.Fail(
					fmt.Sprintf("Blue Card time sufficient (%d>=%d), but Pension months insufficient (%d).", months, t.Months, pension),
					aufenthG("§ 18c Abs. 2", "Pension Missing"),
				)
				pensionShort = &r
			}
			continue
		}
		if pension < t.Months {
			continue
		}
		if !s.LanguageLevel.AtLeast(t.RequiredLanguage) {
			if languageShort == nil {
				r := models.Fail(
					fmt.Sprintf("Language level %s required for § 18c Abs. 1.", t.RequiredLanguage),
					aufenthG("§ 18c Abs. 1", "Language"),
				)
				languageShort = &r
			}
			continue
		}
		return models.Pass(
			fmt.Sprintf("Skilled worker eligible for settlement after %d months.", months),
			aufenthG("§ 18c Abs. 1", "Skilled Settlement"),
		)
	}
	if pensionShort != nil {
		return *pensionShort
	}
	if languageShort != nil {
		return *languageShort
	}
	return models.Fail(
		fmt.Sprintf("Not eligible for § 18c Settlement. Time: %d (Req: 36/24/21). Pension: %d.", skilledMonths, pension),
		aufenthG("§ 18c", "Requirements Not Met"),
	)
}

func checkResearchMobility(s *models.Snapshot) models.Result {
	c, ok := s.EducationCase(models.PurposeResearchMobility)
	switch {
	case !ok:
		return models.Pass("No §18e mobility case.", aufenthG("§ 18e", "Skip"))
	case !isTrue(c.HasHostingAgreement):
		return models.Fail("Missing Hosting Agreement (§ 18e Abs. 1 Nr. 2).", aufenthG("§ 18e Abs. 1 Nr. 2", "Agreement Missing"))
	case c.BAMFNotificationDate == nil:
		return models.Fail("BAMF has not been notified (§ 18e Abs. 1).", aufenthG("§ 18e Abs. 1", "Notification Missing"))
	case !s.LivelihoodSecured():
		return models.Fail("Livelihood not secured (§ 18e Abs. 1 Nr. 4).", aufenthG("§ 18e Abs. 1 Nr. 4", "Livelihood"))
	case c.PlannedStayDays == nil:
		return models.Fail("Missing fact: PlannedStayDays.", aufenthG("§ 18e Abs. 1", "Data Missing"))
	case *c.PlannedStayDays > ResearchMobilityMaxDays:
		return models.Fail(
			fmt.Sprintf("Planned stay %d days exceeds limit of %d days for short-term mobility.", *c.PlannedStayDays, ResearchMobilityMaxDays),
			aufenthG("§ 18e Abs. 1", "Duration Exceeded"),
		)
	}
	return models.Pass("Requirements for Short-term Research Mobility met (Exempt from Title).", aufenthG("§ 18e Abs. 2", "Exempt"))
}

func checkMobileResearcher(s *models.Snapshot) models.Result {
	c, ok := s.EducationCase(models.PurposeMobileResearcher)
	switch {
	case !ok:
		return models.Pass("No §18f mobility case.", aufenthG("§ 18f", "Skip"))
	case !s.HasValidPassport:
		return models.Fail("Valid passport required (§ 18f Abs. 1 Nr. 2).", aufenthG("§ 18f Abs. 1 Nr. 2", "Passport Missing"))
	case !isTrue(c.HasHostingAgreement):
		return models.Fail("Missing Hosting Agreement (§ 18f Abs. 1 Nr. 3).", aufenthG("§ 18f Abs. 1 Nr. 3", "Agreement Missing"))
	case c.PlannedStayDays == nil:
		return models.Fail("Missing fact: PlannedStayDays.", aufenthG("§ 18f Abs. 1", "Data Missing"))
	case *c.PlannedStayDays <= ResearchMobilityMaxDays:
		return models.Fail(
			fmt.Sprintf("Planned stay %d days too short for § 18f (must be > %d). Use § 18e.", *c.PlannedStayDays, ResearchMobilityMaxDays),
			aufenthG("§ 18f Abs. 1", "Too Short"),
		)
	case *c.PlannedStayDays > MobileResearcherMaxDays:
		return models.Fail(
			fmt.Sprintf("Planned stay %d days exceeds 1 year limit.", *c.PlannedStayDays),
			aufenthG("§ 18f Abs. 1", "Too Long"),
		)
	}
	return models.Pass("Entitlement to residence permit for mobile researcher exists.", aufenthG("§ 18f Abs. 1", "Grant"))
}

func checkBusinessMobility(s *models.Snapshot) models.Result {
	c, ok := s.FirstEmploymentCase(func(c models.EmploymentCase) bool {
		return c.MobilityType == models.MobilityBlueCardBusiness
	})
	switch {
	case !ok:
		return models.Pass("No §18h business mobility case.", aufenthG("§ 18h", "Skip"))
	case c.PlannedMobilityDays > BusinessMobilityMaxDays:
		return models.Fail(
			fmt.Sprintf("Planned stay %d days exceeds %d-day limit for short-term mobility.", c.PlannedMobilityDays, BusinessMobilityMaxDays),
			aufenthG("§ 18h Abs. 1", "Duration Exceeded"),
		)
	case c.PlannedMobilityDays <= 0:
		return models.Fail("Invalid duration.", aufenthG("§ 18h", "Bad Input"))
	}
	return models.Pass("Requirements for Blue Card Business Mobility met (Exempt from Title).", aufenthG("§ 18h Abs. 1", "Exempt"))
}

// checkLongTermMobility uses pension contribution months as the proxy for
// prior activity in the first member state.
func checkLongTermMobility(s *models.Snapshot) models.Result {
	_, ok := s.FirstEmploymentCase(func(c models.EmploymentCase) bool {
		return c.MobilityType == models.MobilityBlueCardLongTerm
	})
	if !ok {
		return models.Pass("No §18i long-term mobility case.", aufenthG("§ 18i", "Skip"))
	}
	foreign := s.HoldsPermit(BlueCardPermitCode) &&
		strings.TrimSpace(s.CurrentPermitIssuingCountry) != "" &&
		!models.IsHomeCountry(s.CurrentPermitIssuingCountry)
	if !foreign {
		return models.Fail("Applicant does not hold a valid Foreign Blue Card EU.", aufenthG("§ 18i Abs. 1", "Missing Foreign BC"))
	}
	if s.PensionContributionMonths < LongTermMobilityMinMonths {
		return models.Fail(
			fmt.Sprintf("Prior residence duration %d months < %d months required.", s.PensionContributionMonths, LongTermMobilityMinMonths),
			aufenthG("§ 18i Abs. 1", "Duration Short"),
		)
	}
	if bc := checkBlueCard(s); !bc.Satisfied {
		return models.NewResult(false,
			[]string{"§ 18g Requirements not met: " + strings.Join(bc.Reasons, " ")},
			append([]models.Reference{aufenthG("§ 18i Abs. 1 S. 1", "18g Failed")}, bc.Citations...),
		)
	}
	return models.Pass("Entitlement to Blue Card EU (§ 18g) via Long-Term Mobility (§ 18i) met.", aufenthG("§ 18i", "Met"))
}

func checkICTCard(s *models.Snapshot) models.Result {
	c, ok := s.FirstEmploymentCase(func(c models.EmploymentCase) bool { return c.IsICT })
	if !ok {
		return models.Fail("No ICT case declared.", aufenthG("§ 19", "Skip"))
	}
	if c.ICTRole == models.ICTRoleNone || c.ICTRole == "" {
		return models.Fail("ICT Role not specified (Manager, Specialist, Trainee).", aufenthG("§ 19 Abs. 2", "Role Missing"))
	}
	if c.PriorGroupEmploymentMonths < ICTMinPriorMonths {
		return models.Fail(
			fmt.Sprintf("Prior employment %d months < %d months.", c.PriorGroupEmploymentMonths, ICTMinPriorMonths),
			aufenthG("§ 19 Abs. 2 Nr. 2", "Prior Duration"),
		)
	}
	if c.JobDurationMonths < 3 && c.PlannedMobilityDays <= ICTMinTransferDays {
		return models.Fail(
			"Transfer duration must be > 90 days (otherwise Schengen/Mobility).",
			aufenthG("§ 19 Abs. 2 Nr. 3", "Too Short"),
		)
	}
	if !c.HasReturnGuarantee {
		return models.Fail("Missing return guarantee to non-EU unit.", aufenthG("§ 19 Abs. 2 Nr. 4b", "Return Guarantee"))
	}
	limit := ICTMaxMonths
	if c.ICTRole == models.ICTRoleTrainee {
		limit = ICTTraineeMaxMonths
	}
	if c.JobDurationMonths > limit {
		return models.Fail(
			fmt.Sprintf("Transfer duration %d exceeds limit of %d months for role %s.", c.JobDurationMonths, limit, c.ICTRole),
			aufenthG("§ 19 Abs. 4", "Max Duration Exceeded"),
		)
	}
	if c.ICTRole == models.ICTRoleTrainee && c.Qualification != models.QualificationAcademic {
		return models.Fail("ICT Trainee requires university degree.", aufenthG("§ 19 Abs. 3 S. 2", "Trainee Qualification"))
	}
	if c.ICTRole != models.ICTRoleTrainee && (c.Qualification == models.QualificationNone || c.Qualification == "") {
		return models.Fail("Role requires professional qualification.", aufenthG("§ 19 Abs. 2 Nr. 5", "Qualification Missing"))
	}
	return models.Pass(fmt.Sprintf("Entitlement to ICT Card (%s) met.", c.ICTRole), aufenthG("§ 19", "Granted"))
}
