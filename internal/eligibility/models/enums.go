package models

import (
	"strings"

	dErrors "legalcheck/pkg/domain-errors"
)

// LanguageLevel is a CEFR level. The ordering is meaningful: B1 < C1.
type LanguageLevel int

const (
	LanguageUnknown LanguageLevel = iota
	LanguageA1
	LanguageA2
	LanguageB1
	LanguageB2
	LanguageC1
	LanguageC2
)

var languageNames = [...]string{"unknown", "A1", "A2", "B1", "B2", "C1", "C2"}

func (l LanguageLevel) String() string {
	if l < LanguageUnknown || int(l) >= len(languageNames) {
		return "unknown"
	}
	return languageNames[l]
}

// AtLeast reports whether l meets min. An unknown level never does.
func (l LanguageLevel) AtLeast(min LanguageLevel) bool {
	return l != LanguageUnknown && l >= min
}

// ParseLanguageLevel accepts "B1", "b1" and "" (unknown).
func ParseLanguageLevel(s string) (LanguageLevel, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return LanguageUnknown, nil
	}
	for i, name := range languageNames {
		if strings.EqualFold(name, s) {
			return LanguageLevel(i), nil
		}
	}
	return LanguageUnknown, dErrors.New(dErrors.CodeInvalidInput, "unsupported language level: "+s)
}

func (l LanguageLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *LanguageLevel) UnmarshalText(b []byte) error {
	parsed, err := ParseLanguageLevel(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ResidenceTitleType classifies the title held during a residence period.
type ResidenceTitleType string

const (
	TitleUnknown                ResidenceTitleType = ""
	TitleSettlementPermit       ResidenceTitleType = "settlement_permit"
	TitleLongTermEU             ResidenceTitleType = "long_term_eu"
	TitleBlueCardEU             ResidenceTitleType = "blue_card_eu"
	TitleSkilledWorker          ResidenceTitleType = "skilled_worker"
	TitleHumanitarianProtection ResidenceTitleType = "humanitarian_protection"
	TitleStudent                ResidenceTitleType = "student"
	TitleJobSeeker              ResidenceTitleType = "job_seeker"
	TitleTourist                ResidenceTitleType = "tourist"
	TitleToleratedStay          ResidenceTitleType = "tolerated_stay"
)

type AsylumStatus string

const (
	AsylumNone             AsylumStatus = "none"
	AsylumPending          AsylumStatus = "pending"
	AsylumRecognized       AsylumStatus = "recognized"
	AsylumRejected         AsylumStatus = "rejected"
	AsylumRejectedManifest AsylumStatus = "rejected_manifest"
	AsylumWithdrawn        AsylumStatus = "withdrawn"
)

type PermitConditionType string

const (
	ConditionUnknown               PermitConditionType = "unknown"
	ConditionSpatialRestriction    PermitConditionType = "spatial_restriction"
	ConditionResidenceObligation   PermitConditionType = "residence_obligation"
	ConditionEmploymentRestriction PermitConditionType = "employment_restriction"
	ConditionReportingDuty         PermitConditionType = "reporting_duty"
	ConditionOther                 PermitConditionType = "other"
)

type BorderCrossingMode string

const (
	CrossingUnknown BorderCrossingMode = "unknown"
	CrossingAir     BorderCrossingMode = "air"
	CrossingLand    BorderCrossingMode = "land"
	CrossingSea     BorderCrossingMode = "sea"
)

type EntryDecision string

const (
	EntryDecisionUnknown  EntryDecision = "unknown"
	EntryDecisionAllowed  EntryDecision = "allowed"
	EntryDecisionRefused  EntryDecision = "refused"
	EntryDecisionReturned EntryDecision = "returned"
)

type BorderControlStatus string

const (
	ControlUnknown    BorderControlStatus = "unknown"
	ControlNotChecked BorderControlStatus = "not_checked"
	ControlChecked    BorderControlStatus = "checked"
)

// EducationPurpose selects which education or research provision a case is for.
type EducationPurpose string

const (
	PurposeUnknown            EducationPurpose = "unknown"
	PurposeVocationalTraining EducationPurpose = "vocational_training_16a"
	PurposeStudy              EducationPurpose = "study_16b"
	PurposeStudyMobility      EducationPurpose = "study_mobility_16c"
	PurposeRecognition        EducationPurpose = "recognition_measure_16d"
	PurposeEUInternship       EducationPurpose = "eu_internship_16e"
	PurposeLanguageOrSchool   EducationPurpose = "language_or_school_16f"
	PurposeTrainingSearch     EducationPurpose = "training_search_17_1"
	PurposeStudyApplication   EducationPurpose = "study_application_17_2"
	PurposeResearchMobility   EducationPurpose = "research_mobility_18e"
	PurposeMobileResearcher   EducationPurpose = "mobile_researcher_18f"
)

type AdmissionType string

const (
	AdmissionUnknown          AdmissionType = "unknown"
	AdmissionUniversity       AdmissionType = "university_admission"
	AdmissionTrainingContract AdmissionType = "training_contract"
	AdmissionRecognitionPlan  AdmissionType = "recognition_plan"
	AdmissionInternshipEU     AdmissionType = "internship_agreement_eu"
	AdmissionLanguageCourse   AdmissionType = "language_course_enrollment"
	AdmissionSchoolOrExchange AdmissionType = "school_enrollment_or_exchange"
)

type DistributionStatus string

const (
	DistributionNotApplicable       DistributionStatus = "not_applicable"
	DistributionInProcedure         DistributionStatus = "in_procedure"
	DistributionAssigned            DistributionStatus = "assigned"
	DistributionRelocationRequested DistributionStatus = "relocation_requested"
	DistributionRelocationGranted   DistributionStatus = "relocation_granted"
	DistributionCompleted           DistributionStatus = "completed"
)

type EvidenceType string

const (
	EvidenceUnknown                  EvidenceType = "unknown"
	EvidenceMatriculationCertificate EvidenceType = "matriculation_certificate"
	EvidenceUniversityAdmission      EvidenceType = "university_admission"
	EvidenceTrainingContract         EvidenceType = "training_contract"
	EvidencePassport                 EvidenceType = "passport"
	EvidenceVisa                     EvidenceType = "visa"
	EvidenceOther                    EvidenceType = "other"
)

// ParseEvidenceType maps user input to a known type; empty means unknown.
func ParseEvidenceType(s string) (EvidenceType, error) {
	t := EvidenceType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case "":
		return EvidenceUnknown, nil
	case EvidenceUnknown, EvidenceMatriculationCertificate, EvidenceUniversityAdmission,
		EvidenceTrainingContract, EvidencePassport, EvidenceVisa, EvidenceOther:
		return t, nil
	}
	return EvidenceUnknown, dErrors.New(dErrors.CodeBadRequest, "unsupported evidence type: "+s)
}

type QualificationType string

const (
	QualificationNone       QualificationType = "none"
	QualificationVocational QualificationType = "vocational_training"
	QualificationAcademic   QualificationType = "academic_degree"
)

type EquivalenceStatus string

const (
	EquivalenceUnknown   EquivalenceStatus = "unknown"
	EquivalencePending   EquivalenceStatus = "pending"
	EquivalenceConfirmed EquivalenceStatus = "confirmed"
	EquivalenceRejected  EquivalenceStatus = "rejected"
)

type MobilityType string

const (
	MobilityNone             MobilityType = "none"
	MobilityBlueCardBusiness MobilityType = "blue_card_business_18h"
	MobilityBlueCardLongTerm MobilityType = "blue_card_long_term_18i"
)

type ICTRole string

const (
	ICTRoleNone       ICTRole = "none"
	ICTRoleManager    ICTRole = "manager"
	ICTRoleSpecialist ICTRole = "specialist"
	ICTRoleTrainee    ICTRole = "trainee"
)

type AbsenceReason string

const (
	AbsenceUnknown              AbsenceReason = "unknown"
	AbsenceAssignmentByEmployer AbsenceReason = "assignment_by_employer"
	AbsenceStudyOrTraining      AbsenceReason = "study_or_training"
	AbsenceFamilyReasons        AbsenceReason = "family_reasons"
	AbsenceOther                AbsenceReason = "other"
)
