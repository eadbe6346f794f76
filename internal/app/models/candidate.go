package models

import "time"

// Candidate defines the candidate model based on the 'candidates' table.
// The lifecycle fields after Status are stage markers layered on top of the
// 'sent' status; they are only ever written through the lifecycle engine.
type Candidate struct {
	ID              int64           `json:"id" db:"id" example:"1"`
	FullName        string          `json:"fullName" db:"full_name" example:"Anita Kumari"`
	Gender          string          `json:"gender" db:"gender" example:"Female"`
	FatherName      string          `json:"fatherName" db:"father_name"`
	FirstGraduate   bool            `json:"firstGraduate" db:"first_graduate"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel" db:"experience_level" example:"Fresher"`
	BatchLabel      *string         `json:"batchLabel,omitempty" db:"batch_label"` // freshers only
	Year            *int            `json:"year,omitempty" db:"year"`              // freshers only
	Source          Source          `json:"source" db:"source" example:"Walk-in"`
	ReferenceName   *string         `json:"referenceName,omitempty" db:"reference_name"` // source = Reference only
	Native          string          `json:"native,omitempty" db:"native"`
	MobileNumber    string          `json:"mobileNumber" db:"mobile_number" example:"9876543210"` // normalized 10 digits
	PersonalEmail   string          `json:"personalEmail" db:"personal_email"`                    // stored lowercase
	LinkedinURL     *string         `json:"linkedinUrl,omitempty" db:"linkedin_url"`
	College         string          `json:"college" db:"college"`
	ResumeFileName  *string         `json:"resumeFileName,omitempty" db:"resume_file_name"`

	SubmittedBy     string `json:"submittedBy" db:"submitted_by"` // empId of submitting HR Tag user
	SubmittedByName string `json:"submittedByName" db:"submitted_by_name"`

	// Primary lifecycle stage.
	Status CandidateStatus `json:"status" db:"status" example:"submitted"`

	// HR Ops assignment stamps. Presence of the empId marks the assignment done.
	OfficeEmail          *string `json:"officeEmail,omitempty" db:"office_email"`
	OfficeEmailAssignedBy *string `json:"officeEmailAssignedBy,omitempty" db:"office_email_assigned_by"`
	EmployeeID           *string `json:"employeeId,omitempty" db:"employee_id"`
	EmployeeIDAssignedBy *string `json:"employeeIdAssignedBy,omitempty" db:"employee_id_assigned_by"`

	// Admin / L&D routing stamps.
	SentToAdmin   bool       `json:"sentToAdmin" db:"sent_to_admin"`
	SentToAdminAt *time.Time `json:"sentToAdminAt,omitempty" db:"sent_to_admin_at"`
	SentToLD      bool       `json:"sentToLD" db:"sent_to_ld"`
	SentToLDAt    *time.Time `json:"sentToLDAt,omitempty" db:"sent_to_ld_at"`

	// L&D verdict, written exactly once.
	LDStatus          *LDStatus  `json:"ldStatus,omitempty" db:"ld_status"`
	LDStatusUpdatedAt *time.Time `json:"ldStatusUpdatedAt,omitempty" db:"ld_status_updated_at"`

	// Deployment confirmation and permanent-ID routing.
	SentToHRTag            bool       `json:"sentToHRTag" db:"sent_to_hr_tag"`
	SentToHRTagAt          *time.Time `json:"sentToHRTagAt,omitempty" db:"sent_to_hr_tag_at"`
	SentToHROpsFromHRTag   bool       `json:"sentToHROpsFromHRTag" db:"sent_to_hr_ops_from_hr_tag"`
	SentToHROpsFromHRTagAt *time.Time `json:"sentToHROpsFromHRTagAt,omitempty" db:"sent_to_hr_ops_from_hr_tag_at"`
	SentToHROpsFromHRTagBy *string    `json:"sentToHROpsFromHRTagBy,omitempty" db:"sent_to_hr_ops_from_hr_tag_by"`

	// Deployment email audit. At most one deployment email per candidate.
	DeploymentEmailSent   bool       `json:"deploymentEmailSent" db:"deployment_email_sent"`
	DeploymentEmailSentAt *time.Time `json:"deploymentEmailSentAt,omitempty" db:"deployment_email_sent_at"`
	DeploymentEmailSentBy *string    `json:"deploymentEmailSentBy,omitempty" db:"deployment_email_sent_by"`
	DeploymentRecordID    *int64     `json:"deploymentRecordId,omitempty" db:"deployment_record_id"`
	DeploymentStatus      *string    `json:"deploymentStatus,omitempty" db:"deployment_status"` // "deployed" once the email went out

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// AssignmentStatus derives the candidate's HR Ops completion stage from the
// two assignment stamps. The boundary is deliberately these two fields only;
// adding a future assignment means extending this one function.
func (c *Candidate) AssignmentStatus() AssignmentStatus {
	emailDone := c.OfficeEmailAssignedBy != nil
	idDone := c.EmployeeIDAssignedBy != nil
	switch {
	case emailDone && idDone:
		return AssignmentComplete
	case emailDone || idDone:
		return AssignmentPartial
	default:
		return AssignmentNone
	}
}

// FullyUpdated reports whether both HR Ops assignments are complete.
func (c *Candidate) FullyUpdated() bool {
	return c.AssignmentStatus() == AssignmentComplete
}
