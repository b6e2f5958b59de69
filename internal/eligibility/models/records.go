package models

import (
	"time"

	id "legalcheck/pkg/domain"
)

// ResidencePeriod is one stretch of residence, at home or abroad.
// A nil End means the period is ongoing.
type ResidencePeriod struct {
	Start               Date               `json:"start" yaml:"start"`
	End                 *Date              `json:"end,omitempty" yaml:"end,omitempty"`
	CountryISO2         string             `json:"country" yaml:"country"`
	Basis               string             `json:"basis,omitempty" yaml:"basis,omitempty"`
	TitleType           ResidenceTitleType `json:"title_type,omitempty" yaml:"title_type,omitempty"`
	IsLawful            *bool              `json:"is_lawful,omitempty" yaml:"is_lawful,omitempty"`
	HadGermanTitle      *bool              `json:"had_german_title,omitempty" yaml:"had_german_title,omitempty"`
	AbsenceReason       AbsenceReason      `json:"absence_reason,omitempty" yaml:"absence_reason,omitempty"`
	CountsForLongTermEU *bool              `json:"counts_for_long_term_eu,omitempty" yaml:"counts_for_long_term_eu,omitempty"`
	IsTemporaryStay     *bool              `json:"is_temporary_stay,omitempty" yaml:"is_temporary_stay,omitempty"`
	ExcludedBy9c        *bool              `json:"excluded_by_9c,omitempty" yaml:"excluded_by_9c,omitempty"`
	ExclusionReason9c   string             `json:"exclusion_reason_9c,omitempty" yaml:"exclusion_reason_9c,omitempty"`
}

func (p ResidencePeriod) Clone() ResidencePeriod {
	c := p
	c.End = clonePtr(p.End)
	c.IsLawful = clonePtr(p.IsLawful)
	c.HadGermanTitle = clonePtr(p.HadGermanTitle)
	c.CountsForLongTermEU = clonePtr(p.CountsForLongTermEU)
	c.IsTemporaryStay = clonePtr(p.IsTemporaryStay)
	c.ExcludedBy9c = clonePtr(p.ExcludedBy9c)
	return c
}

// ResidencePermit is a title with its validity window and attached conditions.
type ResidencePermit struct {
	Code                   string            `json:"code" yaml:"code"`
	IssuedAt               Date              `json:"issued_at" yaml:"issued_at"`
	ValidUntil             Date              `json:"valid_until" yaml:"valid_until"`
	Purpose                string            `json:"purpose,omitempty" yaml:"purpose,omitempty"`
	IssuingCountry         string            `json:"issuing_country,omitempty" yaml:"issuing_country,omitempty"`
	IsTemporaryPurpose     *bool             `json:"is_temporary_purpose,omitempty" yaml:"is_temporary_purpose,omitempty"`
	IsHumanitarian         *bool             `json:"is_humanitarian,omitempty" yaml:"is_humanitarian,omitempty"`
	IsAsylumProcedureOnly  *bool             `json:"is_asylum_procedure_only,omitempty" yaml:"is_asylum_procedure_only,omitempty"`
	ExcludedFromLongTermEU *bool             `json:"excluded_from_long_term_eu,omitempty" yaml:"excluded_from_long_term_eu,omitempty"`
	Conditions             []PermitCondition `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}

// Covers reports whether the permit was valid for the whole of [start, end].
func (p ResidencePermit) Covers(start, end Date) bool {
	return !p.IssuedAt.After(start) && !p.ValidUntil.Before(end)
}

// ActiveOn reports whether day falls inside the validity window.
func (p ResidencePermit) ActiveOn(day Date) bool {
	return !p.IssuedAt.After(day) && !p.ValidUntil.Before(day)
}

func (p ResidencePermit) Clone() ResidencePermit {
	c := p
	c.IsTemporaryPurpose = clonePtr(p.IsTemporaryPurpose)
	c.IsHumanitarian = clonePtr(p.IsHumanitarian)
	c.IsAsylumProcedureOnly = clonePtr(p.IsAsylumProcedureOnly)
	c.ExcludedFromLongTermEU = clonePtr(p.ExcludedFromLongTermEU)
	c.Conditions = cloneSlice(p.Conditions, PermitCondition.Clone)
	return c
}

// PermitCondition is an ancillary provision attached to a permit.
type PermitCondition struct {
	Type       PermitConditionType `json:"type" yaml:"type"`
	Value      string              `json:"value,omitempty" yaml:"value,omitempty"`
	ValidFrom  *Date               `json:"valid_from,omitempty" yaml:"valid_from,omitempty"`
	ValidUntil *Date               `json:"valid_until,omitempty" yaml:"valid_until,omitempty"`
	LegalBasis string              `json:"legal_basis,omitempty" yaml:"legal_basis,omitempty"`
	Notes      string              `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// ActiveOn: ValidFrom <= day < ValidUntil, open ends unbounded.
func (c PermitCondition) ActiveOn(day Date) bool {
	if c.ValidFrom != nil && c.ValidFrom.After(day) {
		return false
	}
	if c.ValidUntil != nil && !c.ValidUntil.After(day) {
		return false
	}
	return true
}

func (c PermitCondition) Clone() PermitCondition {
	out := c
	out.ValidFrom = clonePtr(c.ValidFrom)
	out.ValidUntil = clonePtr(c.ValidUntil)
	return out
}

type EducationRecord struct {
	Level          string `json:"level" yaml:"level"`
	DidGraduate    bool   `json:"did_graduate" yaml:"did_graduate"`
	GraduationDate *Date  `json:"graduation_date,omitempty" yaml:"graduation_date,omitempty"`
	FieldOfStudy   string `json:"field_of_study,omitempty" yaml:"field_of_study,omitempty"`
	Institution    string `json:"institution,omitempty" yaml:"institution,omitempty"`
}

func (r EducationRecord) Clone() EducationRecord {
	c := r
	c.GraduationDate = clonePtr(r.GraduationDate)
	return c
}

type EmploymentRecord struct {
	EmploymentType   string  `json:"employment_type" yaml:"employment_type"`
	Start            Date    `json:"start" yaml:"start"`
	End              *Date   `json:"end,omitempty" yaml:"end,omitempty"`
	MonthlyNetIncome float64 `json:"monthly_net_income" yaml:"monthly_net_income"`
}

// ActiveOn: started on or before day and not yet ended.
func (r EmploymentRecord) ActiveOn(day Date) bool {
	if r.Start.After(day) {
		return false
	}
	return r.End == nil || !r.End.Before(day)
}

func (r EmploymentRecord) Clone() EmploymentRecord {
	c := r
	c.End = clonePtr(r.End)
	return c
}

type AsylumProfile struct {
	Status                 AsylumStatus `json:"status" yaml:"status"`
	ApplicationDate        *Date        `json:"application_date,omitempty" yaml:"application_date,omitempty"`
	DecisionDate           *Date        `json:"decision_date,omitempty" yaml:"decision_date,omitempty"`
	IsDeportable           *bool        `json:"is_deportable,omitempty" yaml:"is_deportable,omitempty"`
	HasDepartureBan        *bool        `json:"has_departure_ban,omitempty" yaml:"has_departure_ban,omitempty"`
	HasTemporarySuspension *bool        `json:"has_temporary_suspension,omitempty" yaml:"has_temporary_suspension,omitempty"`
	EntryWithVisa          *bool        `json:"entry_with_visa,omitempty" yaml:"entry_with_visa,omitempty"`
	IdentityClarified      *bool        `json:"identity_clarified,omitempty" yaml:"identity_clarified,omitempty"`
}

func (a *AsylumProfile) Clone() *AsylumProfile {
	if a == nil {
		return nil
	}
	c := *a
	c.ApplicationDate = clonePtr(a.ApplicationDate)
	c.DecisionDate = clonePtr(a.DecisionDate)
	c.IsDeportable = clonePtr(a.IsDeportable)
	c.HasDepartureBan = clonePtr(a.HasDepartureBan)
	c.HasTemporarySuspension = clonePtr(a.HasTemporarySuspension)
	c.EntryWithVisa = clonePtr(a.EntryWithVisa)
	c.IdentityClarified = clonePtr(a.IdentityClarified)
	return &c
}

// ResidenceObligation is a duty to live in an assigned federal state.
// A nil Active flag means active.
type ResidenceObligation struct {
	FederalStateCode    string  `json:"federal_state_code" yaml:"federal_state_code"`
	MunicipalityCode    *string `json:"municipality_code,omitempty" yaml:"municipality_code,omitempty"`
	LegalBasis          string  `json:"legal_basis,omitempty" yaml:"legal_basis,omitempty"`
	ImposedAt           Date    `json:"imposed_at" yaml:"imposed_at"`
	ValidUntil          *Date   `json:"valid_until,omitempty" yaml:"valid_until,omitempty"`
	EmploymentException bool    `json:"employment_exception,omitempty" yaml:"employment_exception,omitempty"`
	EducationException  bool    `json:"education_exception,omitempty" yaml:"education_exception,omitempty"`
	FamilyException     bool    `json:"family_exception,omitempty" yaml:"family_exception,omitempty"`
	ExceptionNotes      string  `json:"exception_notes,omitempty" yaml:"exception_notes,omitempty"`
	Active              *bool   `json:"active,omitempty" yaml:"active,omitempty"`
}

func (o *ResidenceObligation) IsActive() bool {
	return o != nil && (o.Active == nil || *o.Active)
}

func (o *ResidenceObligation) Clone() *ResidenceObligation {
	if o == nil {
		return nil
	}
	c := *o
	c.MunicipalityCode = clonePtr(o.MunicipalityCode)
	c.ValidUntil = clonePtr(o.ValidUntil)
	c.Active = clonePtr(o.Active)
	return &c
}

// EntryAttempt records the most recent border crossing attempt.
type EntryAttempt struct {
	AttemptedAt                  Date                `json:"attempted_at" yaml:"attempted_at"`
	BorderPoint                  string              `json:"border_point,omitempty" yaml:"border_point,omitempty"`
	Mode                         BorderCrossingMode  `json:"mode,omitempty" yaml:"mode,omitempty"`
	AtDesignatedCrossingPoint    bool                `json:"at_designated_crossing_point" yaml:"at_designated_crossing_point"`
	ControlStatus                BorderControlStatus `json:"control_status,omitempty" yaml:"control_status,omitempty"`
	PassedBorderControlPoint     *bool               `json:"passed_border_control_point,omitempty" yaml:"passed_border_control_point,omitempty"`
	HasValidPassportOrSubstitute *bool               `json:"has_valid_passport_or_substitute,omitempty" yaml:"has_valid_passport_or_substitute,omitempty"`
	HasRequiredTitleOrVisa       *bool               `json:"has_required_title_or_visa,omitempty" yaml:"has_required_title_or_visa,omitempty"`
	VisaType                     string              `json:"visa_type,omitempty" yaml:"visa_type,omitempty"`
	VisaValidUntil               *Date               `json:"visa_valid_until,omitempty" yaml:"visa_valid_until,omitempty"`
	IntendedPurpose              string              `json:"intended_purpose,omitempty" yaml:"intended_purpose,omitempty"`
	IntendsEmployment            *bool               `json:"intends_employment,omitempty" yaml:"intends_employment,omitempty"`
	Decision                     EntryDecision       `json:"decision,omitempty" yaml:"decision,omitempty"`
	DecisionReason               string              `json:"decision_reason,omitempty" yaml:"decision_reason,omitempty"`
	ExceptionVisaIssuedAtBorder  *bool               `json:"exception_visa_issued_at_border,omitempty" yaml:"exception_visa_issued_at_border,omitempty"`
	Notes                        string              `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func (a *EntryAttempt) Clone() *EntryAttempt {
	if a == nil {
		return nil
	}
	c := *a
	c.PassedBorderControlPoint = clonePtr(a.PassedBorderControlPoint)
	c.HasValidPassportOrSubstitute = clonePtr(a.HasValidPassportOrSubstitute)
	c.HasRequiredTitleOrVisa = clonePtr(a.HasRequiredTitleOrVisa)
	c.VisaValidUntil = clonePtr(a.VisaValidUntil)
	c.IntendsEmployment = clonePtr(a.IntendsEmployment)
	c.ExceptionVisaIssuedAtBorder = clonePtr(a.ExceptionVisaIssuedAtBorder)
	return &c
}

// DistributionProcedure tracks allocation to a federal state after an
// unauthorized entry was detected.
type DistributionProcedure struct {
	DetectedAt               Date               `json:"detected_at" yaml:"detected_at"`
	Status                   DistributionStatus `json:"status" yaml:"status"`
	AssignedFederalStateCode string             `json:"assigned_federal_state_code,omitempty" yaml:"assigned_federal_state_code,omitempty"`
	HasNoAsylumRequest       *bool              `json:"has_no_asylum_request,omitempty" yaml:"has_no_asylum_request,omitempty"`
	InDetentionAndRemovable  *bool              `json:"in_detention_and_removable,omitempty" yaml:"in_detention_and_removable,omitempty"`
	CertificateIssued        *bool              `json:"certificate_issued,omitempty" yaml:"certificate_issued,omitempty"`
	Notes                    string             `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func (d *DistributionProcedure) Clone() *DistributionProcedure {
	if d == nil {
		return nil
	}
	c := *d
	c.HasNoAsylumRequest = clonePtr(d.HasNoAsylumRequest)
	c.InDetentionAndRemovable = clonePtr(d.InDetentionAndRemovable)
	c.CertificateIssued = clonePtr(d.CertificateIssued)
	return &c
}

// EducationCase captures the facts for one education, search or research
// purpose. Most fields are optional because rules must tell "not provided"
// apart from "provided as false".
type EducationCase struct {
	Purpose                 EducationPurpose `json:"purpose" yaml:"purpose"`
	AdmissionType           AdmissionType    `json:"admission_type,omitempty" yaml:"admission_type,omitempty"`
	HasAdmissionOrContract  *bool            `json:"has_admission_or_contract,omitempty" yaml:"has_admission_or_contract,omitempty"`
	PlannedStart            *Date            `json:"planned_start,omitempty" yaml:"planned_start,omitempty"`
	PlannedEnd              *Date            `json:"planned_end,omitempty" yaml:"planned_end,omitempty"`
	PlannedStayDays         *int             `json:"planned_stay_days,omitempty" yaml:"planned_stay_days,omitempty"`
	IsShortTermMobility     *bool            `json:"is_short_term_mobility,omitempty" yaml:"is_short_term_mobility,omitempty"`
	RequiresBAApproval      *bool            `json:"requires_ba_approval,omitempty" yaml:"requires_ba_approval,omitempty"`
	HasBAApproval           *bool            `json:"has_ba_approval,omitempty" yaml:"has_ba_approval,omitempty"`
	AllowedWorkHoursPerWeek *int             `json:"allowed_work_hours_per_week,omitempty" yaml:"allowed_work_hours_per_week,omitempty"`
	HasSecuredLivelihood    *bool            `json:"has_secured_livelihood,omitempty" yaml:"has_secured_livelihood,omitempty"`
	HealthInsuranceType     string           `json:"health_insurance_type,omitempty" yaml:"health_insurance_type,omitempty"`
	HasGermanSchoolDegree   *bool            `json:"has_german_school_degree,omitempty" yaml:"has_german_school_degree,omitempty"`
	HasUniversityEntrance   *bool            `json:"has_university_entrance,omitempty" yaml:"has_university_entrance,omitempty"`
	HasHostingAgreement     *bool            `json:"has_hosting_agreement,omitempty" yaml:"has_hosting_agreement,omitempty"`
	BAMFNotificationDate    *Date            `json:"bamf_notification_date,omitempty" yaml:"bamf_notification_date,omitempty"`
	Notes                   string           `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func (c EducationCase) Clone() EducationCase {
	out := c
	out.HasAdmissionOrContract = clonePtr(c.HasAdmissionOrContract)
	out.PlannedStart = clonePtr(c.PlannedStart)
	out.PlannedEnd = clonePtr(c.PlannedEnd)
	out.PlannedStayDays = clonePtr(c.PlannedStayDays)
	out.IsShortTermMobility = clonePtr(c.IsShortTermMobility)
	out.RequiresBAApproval = clonePtr(c.RequiresBAApproval)
	out.HasBAApproval = clonePtr(c.HasBAApproval)
	out.AllowedWorkHoursPerWeek = clonePtr(c.AllowedWorkHoursPerWeek)
	out.HasSecuredLivelihood = clonePtr(c.HasSecuredLivelihood)
	out.HasGermanSchoolDegree = clonePtr(c.HasGermanSchoolDegree)
	out.HasUniversityEntrance = clonePtr(c.HasUniversityEntrance)
	out.HasHostingAgreement = clonePtr(c.HasHostingAgreement)
	out.BAMFNotificationDate = clonePtr(c.BAMFNotificationDate)
	return out
}

// EmploymentCase captures a job offer or transfer and the worker's
// qualification for the skilled-immigration provisions.
type EmploymentCase struct {
	HasConcreteJobOffer         bool              `json:"has_concrete_job_offer" yaml:"has_concrete_job_offer"`
	JobTitle                    string            `json:"job_title,omitempty" yaml:"job_title,omitempty"`
	ISCOCode                    string            `json:"isco_code,omitempty" yaml:"isco_code,omitempty"`
	JobDurationMonths           int               `json:"job_duration_months,omitempty" yaml:"job_duration_months,omitempty"`
	MonthlySalaryGross          float64           `json:"monthly_salary_gross,omitempty" yaml:"monthly_salary_gross,omitempty"`
	HasBAApproval               bool              `json:"has_ba_approval,omitempty" yaml:"has_ba_approval,omitempty"`
	RequiresProfessionalLicense bool              `json:"requires_professional_license,omitempty" yaml:"requires_professional_license,omitempty"`
	HasProfessionalLicense      bool              `json:"has_professional_license,omitempty" yaml:"has_professional_license,omitempty"`
	Qualification               QualificationType `json:"qualification,omitempty" yaml:"qualification,omitempty"`
	Equivalence                 EquivalenceStatus `json:"equivalence,omitempty" yaml:"equivalence,omitempty"`
	IsGermanDegree              bool              `json:"is_german_degree,omitempty" yaml:"is_german_degree,omitempty"`
	GraduationDate              *Date             `json:"graduation_date,omitempty" yaml:"graduation_date,omitempty"`
	HasITSpecialistExperience   bool              `json:"has_it_specialist_experience,omitempty" yaml:"has_it_specialist_experience,omitempty"`
	MobilityType                MobilityType      `json:"mobility_type,omitempty" yaml:"mobility_type,omitempty"`
	PlannedMobilityDays         int               `json:"planned_mobility_days,omitempty" yaml:"planned_mobility_days,omitempty"`
	IsICT                       bool              `json:"is_ict,omitempty" yaml:"is_ict,omitempty"`
	ICTRole                     ICTRole           `json:"ict_role,omitempty" yaml:"ict_role,omitempty"`
	PriorGroupEmploymentMonths  int               `json:"prior_group_employment_months,omitempty" yaml:"prior_group_employment_months,omitempty"`
	HasReturnGuarantee          bool              `json:"has_return_guarantee,omitempty" yaml:"has_return_guarantee,omitempty"`
	HasAdequatePensionPlan      bool              `json:"has_adequate_pension_plan,omitempty" yaml:"has_adequate_pension_plan,omitempty"`
}

func (c EmploymentCase) Clone() EmploymentCase {
	out := c
	out.GraduationDate = clonePtr(c.GraduationDate)
	return out
}

// EvidenceDocument is metadata about an uploaded file. Rules never read the
// file content.
type EvidenceDocument struct {
	ID               id.DocumentID `json:"id" yaml:"id"`
	Type             EvidenceType  `json:"type" yaml:"type"`
	OriginalFileName string        `json:"original_file_name" yaml:"original_file_name"`
	ContentType      string        `json:"content_type" yaml:"content_type"`
	SizeBytes        int64         `json:"size_bytes" yaml:"size_bytes"`
	StorageKey       string        `json:"storage_key" yaml:"storage_key"`
	SHA256           string        `json:"sha256" yaml:"sha256"`
	UploadedAt       time.Time     `json:"uploaded_at" yaml:"uploaded_at"`
	DocumentIssuedAt *Date         `json:"document_issued_at,omitempty" yaml:"document_issued_at,omitempty"`
	Notes            string        `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func (d EvidenceDocument) Clone() EvidenceDocument {
	c := d
	c.DocumentIssuedAt = clonePtr(d.DocumentIssuedAt)
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneSlice[T any](in []T, clone func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = clone(v)
	}
	return out
}
