package models

import "time"

// Deployment defines the placement record based on the 'deployments' table.
// A deployment is created at most once per candidate, when the first
// deployment email succeeds, and is updated in place on internal transfer
// and on exit. It is never deleted.
type Deployment struct {
	ID          int64  `json:"id" db:"id"`
	CandidateID int64  `json:"candidateId" db:"candidate_id"`
	CandidateName  string  `json:"candidateName" db:"candidate_name"`
	CandidateEmpID *string `json:"candidateEmpId,omitempty" db:"candidate_emp_id"`

	// Placement details captured from the deployment form.
	Role           string     `json:"role" db:"role"`
	Email          string     `json:"email,omitempty" db:"email"`
	Office         string     `json:"office,omitempty" db:"office"`
	ModeOfHire     string     `json:"modeOfHire,omitempty" db:"mode_of_hire"`
	FromTeam       string     `json:"fromTeam,omitempty" db:"from_team"`
	ToTeam         string     `json:"toTeam,omitempty" db:"to_team"`
	Client         string     `json:"client,omitempty" db:"client"`
	BU             string     `json:"bu,omitempty" db:"bu"`
	ReportingTo    string     `json:"reportingTo,omitempty" db:"reporting_to"`
	AccountManager string     `json:"accountManager,omitempty" db:"account_manager"`
	DeploymentDate *time.Time `json:"deploymentDate,omitempty" db:"deployment_date"`
	Track          string     `json:"track,omitempty" db:"track"`
	WorkLocation   string     `json:"workLocation,omitempty" db:"work_location"`
	DOJ            *time.Time `json:"doj,omitempty" db:"doj"`
	Extension      string     `json:"extension,omitempty" db:"extension"`

	// Candidate snapshot carried for reporting.
	CandidateMobile          string `json:"candidateMobile,omitempty" db:"candidate_mobile"`
	CandidateOfficeEmail     string `json:"candidateOfficeEmail,omitempty" db:"candidate_office_email"`
	CandidateExperienceLevel string `json:"candidateExperienceLevel,omitempty" db:"candidate_experience_level"`
	CandidateBatch           string `json:"candidateBatch,omitempty" db:"candidate_batch"`

	// Status is Active until an exit is recorded; ExitDate and ExitReason are
	// set together with the Inactive transition and never independently.
	Status     DeploymentStatus `json:"status" db:"status" example:"Active"`
	ExitDate   *time.Time       `json:"exitDate,omitempty" db:"exit_date"`
	ExitReason *string          `json:"exitReason,omitempty" db:"exit_reason"`

	// Deployment email audit.
	EmailSubject    string      `json:"emailSubject" db:"email_subject"`
	RecipientEmails []string    `json:"recipientEmails" db:"recipient_emails"`
	CcEmails        []string    `json:"ccEmails,omitempty" db:"cc_emails"`
	EmailStatus     EmailStatus `json:"emailStatus" db:"email_status"`
	EmailSuccessful int         `json:"emailSuccessful" db:"email_successful"`
	EmailFailed     int         `json:"emailFailed" db:"email_failed"`
	EmailTotal      int         `json:"emailTotal" db:"email_total"`
	SentBy          string      `json:"sentBy" db:"sent_by"`
	SentByName      string      `json:"sentByName" db:"sent_by_name"`
	SentFromEmail   string      `json:"sentFromEmail,omitempty" db:"sent_from_email"`

	// Internal transfer audit. A transfer date can coexist with Active status:
	// a resource moved between teams without exiting stays Active.
	InternalTransferDate       *time.Time `json:"internalTransferDate,omitempty" db:"internal_transfer_date"`
	InternalTransferEmailSent  bool       `json:"internalTransferEmailSent" db:"internal_transfer_email_sent"`
	InternalTransferSubject    string     `json:"internalTransferSubject,omitempty" db:"internal_transfer_subject"`
	InternalTransferRecipients []string   `json:"internalTransferRecipients,omitempty" db:"internal_transfer_recipients"`
	InternalTransferCc         []string   `json:"internalTransferCc,omitempty" db:"internal_transfer_cc"`
	InternalTransferSentBy     *string    `json:"internalTransferSentBy,omitempty" db:"internal_transfer_sent_by"`
	InternalTransferSentByName *string    `json:"internalTransferSentByName,omitempty" db:"internal_transfer_sent_by_name"`
	InternalTransferSentAt     *time.Time `json:"internalTransferSentAt,omitempty" db:"internal_transfer_sent_at"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
