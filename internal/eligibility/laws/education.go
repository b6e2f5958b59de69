package laws

import (
	"fmt"
	"strings"

	"legalcheck/internal/eligibility/models"
	"legalcheck/internal/eligibility/rules"
	id "legalcheck/pkg/domain"
)

const (
	// StudyMobilityMaxDays is the § 16c limit for mobility within the EU.
	StudyMobilityMaxDays = 360
	// SearchMaxStayDays caps § 17 search stays at nine months.
	SearchMaxStayDays = 270
	// TrainingSearchMaxAge is the age the applicant must not have reached
	// for a § 17 Abs. 1 training search.
	TrainingSearchMaxAge = 35
)

// Education, training search and study provisions (§§ 16a-17).
var (
	VocationalTraining    = rules.NewLeaf(aufenthG("§ 16a", "Precheck"), checkVocationalTraining)
	Study                 = rules.NewLeaf(aufenthG("§ 16b", "Precheck"), checkStudy)
	MatriculationEvidence = rules.NewLeaf(aufenthG("§ 16b", "Evidence"), checkMatriculationEvidence)
	StudyMobility         = rules.NewLeaf(aufenthG("§ 16c", "Precheck"), checkStudyMobility)
	Recognition           = rules.NewLeaf(aufenthG("§ 16d", "Precheck"), checkRecognition)
	EUInternship          = rules.NewLeaf(aufenthG("§ 16e", "Precheck"), checkEUInternship)
	LanguageOrSchool      = rules.NewLeaf(aufenthG("§ 16f", "Precheck"), checkLanguageOrSchool)
	TrainingSearch        = rules.NewLeaf(aufenthG("§ 17 Abs. 1", "Training Search"), checkTrainingSearch)
	StudyApplication      = rules.NewLeaf(aufenthG("§ 17 Abs. 2", "Study Application"), checkStudyApplication)
)

func checkVocationalTraining(s *models.Snapshot) models.Result {
	c, ok := s.EducationCase(models.PurposeVocationalTraining)
	if !ok {
		return models.Pass("No §16a case data provided.", aufenthG("§ 16a", "Check"))
	}
	var missing []string
	if c.HasAdmissionOrContract == nil {
		missing = append(missing, "HasAdmissionOrContract")
	}
	if c.RequiresBAApproval == nil {
		missing = append(missing, "RequiresBAApproval")
	}
	if isTrue(c.RequiresBAApproval) && c.HasBAApproval == nil {
		missing = append(missing, "HasBAApproval")
	}
	if len(missing) > 0 {
		return models.Fail("Missing facts: "+strings.Join(missing, ", "), aufenthG("§ 16a", "Data Missing"))
	}
	return models.Pass("§16a precheck facts captured. Full legal logic not fully implemented.", aufenthG("§ 16a", "Precheck"))
}

func checkStudy(s *models.Snapshot) models.Result {
	c, ok := s.EducationCase(models.PurposeStudy)
	switch {
	case !ok:
		return models.Pass("No §16b case data provided.", aufenthG("§ 16b", "Check"))
	case c.HasAdmissionOrContract == nil:
		return models.Fail("Missing fact: HasAdmissionOrContract (university admission).", aufenthG("§ 16b", "Data Missing"))
	case !*c.HasAdmissionOrContract:
		return models.Fail("No admission recorded (formal precheck).", aufenthG("§ 16b", "Admission Missing"))
	}
	return models.Pass("Admission recorded. Full §16b logic not implemented.", aufenthG("§ 16b", "Precheck"))
}

// checkMatriculationEvidence reads document metadata only; the file itself
// never reaches the engine.
func checkMatriculationEvidence(s *models.Snapshot) models.Result {
	for _, d := range s.Documents {
		if d.Type != models.EvidenceMatriculationCertificate {
			continue
		}
		return models.Pass(
			fmt.Sprintf("Matrikulationsbescheinigung PDF uploaded: %s (%d bytes).", d.OriginalFileName, d.SizeBytes),
			aufenthG("§ 16b", "Evidence Provided"),
		)
	}
	return models.Fail("Missing Matrikulationsbescheinigung PDF.", aufenthG("§ 16b", "Evidence Missing"))
}

func checkStudyMobility(s *models.Snapshot) models.Result {
	c, ok := s.EducationCase(models.PurposeStudyMobility)
	switch {
	case !ok:
		return models.Pass("No §16c mobility case data provided.", aufenthG("§ 16c", "Check"))
	case c.PlannedStayDays == nil:
		return models.Fail("Missing fact: PlannedStayDays.", aufenthG("§ 16c", "Data Missing"))
	case *c.PlannedStayDays > StudyMobilityMaxDays:
		return models.Fail(fmt.Sprintf("Planned stay is %d days (> %d).", *c.PlannedStayDays, StudyMobilityMaxDays), aufenthG("§ 16c", "Day Limit Exceeded"))
	}
	return models.Pass(fmt.Sprintf("Planned stay is %d days (<= %d).", *c.PlannedStayDays, StudyMobilityMaxDays), aufenthG("§ 16c", "Precheck"))
}

func checkRecognition(s *models.Snapshot) models.Result {
	c, ok := s.EducationCase(models.PurposeRecognition)
	switch {
	case !ok:
		return models.Pass("No §16d recognition-measure case data provided.", aufenthG("§ 16d", "Check"))
	case c.HasAdmissionOrContract == nil:
		return models.Fail("Missing fact: HasAdmissionOrContract (recognition/qualification plan).", aufenthG("§ 16d", "Data Missing"))
	case !*c.HasAdmissionOrContract:
		return models.Fail("No recognition/qualification measure recorded.", aufenthG("§ 16d", "Missing Contract"))
	}
	return models.Pass("Recognition measure recorded.", aufenthG("§ 16d", "Precheck"))
}

func checkEUInternship(s *models.Snapshot) models.Result {
	c, ok := s.EducationCase(models.PurposeEUInternship)
	switch {
	case !ok:
		return models.Pass("No §16e internship case data provided.", aufenthG("§ 16e", "Check"))
	case !isTrue(c.HasAdmissionOrContract):
		return models.Fail("No internship agreement recorded.", aufenthG("§ 16e", "Missing Agreement"))
	}
	return models.Pass("§16e precheck facts captured.", aufenthG("§ 16e", "Precheck"))
}

func checkLanguageOrSchool(s *models.Snapshot) models.Result {
	c, ok := s.EducationCase(models.PurposeLanguageOrSchool)
	switch {
	case !ok:
		return models.Pass("No §16f case data provided.", aufenthG("§ 16f", "Check"))
	case c.AdmissionType == models.AdmissionUnknown || c.AdmissionType == "":
		return models.Fail("Missing AdmissionType.", aufenthG("§ 16f", "Data Missing"))
	case !isTrue(c.HasAdmissionOrContract):
		return models.Fail("No enrollment recorded.", aufenthG("§ 16f", "Enrollment Missing"))
	}
	return models.Pass("Enrollment recorded.", aufenthG("§ 16f", "Precheck"))
}

func checkTrainingSearch(s *models.Snapshot) models.Result {
	c, ok := s.EducationCase(models.PurposeTrainingSearch)
	if !ok {
		return models.Pass("No §17(1) search case.", aufenthG("§ 17 Abs. 1", "Skip"))
	}
	if s.BirthDate == nil {
		return models.Fail("Missing fact: BirthDate (age limit).", aufenthG("§ 17 Abs. 1 Nr. 1", "Data Missing"))
	}
	if id.HasReachedAge(s.BirthDate.Time(), s.AsOf, TrainingSearchMaxAge) {
		return models.Fail(
			fmt.Sprintf("Applicant is %d; the search permit requires an age below %d.", id.AgeAt(s.BirthDate.Time(), s.AsOf), TrainingSearchMaxAge),
			aufenthG("§ 17 Abs. 1 Nr. 1", "Age"),
		)
	}
	if !s.LivelihoodSecured() {
		return models.Fail("Livelihood not secured.", aufenthG("§ 17 Abs. 1 Nr. 2", "Livelihood"))
	}
	if !isTrue(c.HasGermanSchoolDegree) && !isTrue(c.HasUniversityEntrance) {
		return models.Fail(
			"Missing required school leaving certificate (German School or University Entrance).",
			aufenthG("§ 17 Abs. 1 Nr. 3", "Qualification"),
		)
	}
	if !s.LanguageLevel.AtLeast(models.LanguageB1) {
		return models.Fail(
			fmt.Sprintf("Language level %s insufficient (Expected B1).", s.LanguageLevel),
			aufenthG("§ 17 Abs. 1 Nr. 4", "Language"),
		)
	}
	if c.PlannedStayDays != nil && *c.PlannedStayDays > SearchMaxStayDays {
		return models.Fail(
			fmt.Sprintf("Planned stay %d days exceeds 9 months limit.", *c.PlannedStayDays),
			aufenthG("§ 17 Abs. 1 S. 2", "Duration"),
		)
	}
	return models.Pass("Requirements providing for training search permit appear met.", aufenthG("§ 17 Abs. 1", "Met"))
}

func checkStudyApplication(s *models.Snapshot) models.Result {
	c, ok := s.EducationCase(models.PurposeStudyApplication)
	switch {
	case !ok:
		return models.Pass("No §17(2) study application case.", aufenthG("§ 17 Abs. 2", "Skip"))
	case !isTrue(c.HasUniversityEntrance):
		return models.Fail("University entrance qualification missing.", aufenthG("§ 17 Abs. 2 Nr. 1", "Prerequisites"))
	case !s.LivelihoodSecured():
		return models.Fail("Livelihood not secured.", aufenthG("§ 17 Abs. 2 Nr. 2", "Livelihood"))
	case c.PlannedStayDays != nil && *c.PlannedStayDays > SearchMaxStayDays:
		return models.Fail("Duration > 9 months.", aufenthG("§ 17 Abs. 2 S. 2", "Duration"))
	}
	return models.Pass("Study application requirements met.", aufenthG("§ 17 Abs. 2", "Met"))
}
