package dto

// DeploymentForm is the placement detail block captured when the Delivery
// portal sends a deployment or transfer email.
type DeploymentForm struct {
	Role           string `json:"role"`
	Email          string `json:"email"`
	Office         string `json:"office"`
	ModeOfHire     string `json:"modeOfHire"`
	FromTeam       string `json:"fromTeam"`
	ToTeam         string `json:"toTeam"`
	Client         string `json:"client"`
	BU             string `json:"bu"`
	ReportingTo    string `json:"reportingTo"`
	AccountManager string `json:"accountManager"`
	DeploymentDate string `json:"deploymentDate"` // yyyy-mm-dd, optional
}

// DeploymentEmailRequest triggers the at-most-once deployment email for a
// candidate.
type DeploymentEmailRequest struct {
	CandidateID     int64          `json:"candidateId" binding:"required"`
	Form            DeploymentForm `json:"formData" binding:"required"`
	RecipientEmails []string       `json:"recipientEmails" binding:"required"`
	CcEmails        []string       `json:"ccEmails"`
	Subject         string         `json:"subject"`
	Content         string         `json:"content"`
}

// InternalTransferRequest triggers a transfer email on an existing
// deployment record.
type InternalTransferRequest struct {
	DeploymentID    int64          `json:"deploymentId" binding:"required"`
	Form            DeploymentForm `json:"formData"`
	RecipientEmails []string       `json:"recipientEmails" binding:"required"`
	CcEmails        []string       `json:"ccEmails"`
	Subject         string         `json:"subject"`
	Content         string         `json:"content"`
}

// ExitRequest records a resource exit on a deployment.
type ExitRequest struct {
	ExitReason string `json:"exitReason" binding:"required"`
}
