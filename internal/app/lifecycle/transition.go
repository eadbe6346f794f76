// Package lifecycle holds the candidate/resource lifecycle rules: which
// transitions are legal for which actors, the preconditions each transition
// carries, and the notifications a committed transition must trigger.
// Everything in this package is pure decision logic; loading and persisting
// records is the orchestrating service's job.
package lifecycle

import "github.com/karthikr/talentflow/internal/app/models"

// Transition names every state change a portal can request on a candidate
// or deployment.
type Transition string

const (
	TransitionSubmitCandidate       Transition = "submit_candidate"
	TransitionEditCandidate         Transition = "edit_candidate"
	TransitionSendToHROps           Transition = "send_to_hr_ops"
	TransitionSendToAdmin           Transition = "send_to_admin"
	TransitionSendToAdminAndLD      Transition = "send_to_admin_and_ld"
	TransitionAssignOfficeEmail     Transition = "assign_office_email"
	TransitionAssignEmployeeID      Transition = "assign_employee_id"
	TransitionSetLDStatus           Transition = "set_ld_status"
	TransitionSendToHRTag           Transition = "send_to_hr_tag"
	TransitionSendDeploymentEmail   Transition = "send_deployment_email"
	TransitionSendInternalTransfer  Transition = "send_internal_transfer_email"
	TransitionExitResource          Transition = "exit_resource"
	TransitionSendForPermanentID    Transition = "send_to_hr_ops_for_permanent_id"
)

// Actor is the authenticated identity a transition request runs under.
// It is supplied by the auth middleware and trusted as already verified.
type Actor struct {
	EmpID        string
	Name         string
	Team         models.Team
	CanSendEmail bool
}

// NotificationKind distinguishes the messages the dispatcher can deliver.
type NotificationKind string

const (
	// NotifyCandidateTransfer tells a receiving portal that candidates were
	// routed to it; recipients are resolved from the portal address table.
	NotifyCandidateTransfer NotificationKind = "candidate_transfer"

	// NotifyDeploymentEmail and NotifyInternalTransferEmail go to explicit
	// recipient lists supplied by the Delivery portal.
	NotifyDeploymentEmail       NotificationKind = "deployment_email"
	NotifyInternalTransferEmail NotificationKind = "internal_transfer_email"
)

// NotificationIntent is a side effect a committed transition asks the
// dispatcher to perform. Delivery is best-effort: a failed or dropped
// intent never invalidates the transition that produced it.
type NotificationIntent struct {
	Kind           NotificationKind
	FromPortal     models.Team
	ToPortals      []models.Team // portal-addressed messages
	Recipients     []string      // explicitly addressed messages
	Cc             []string
	Subject        string
	Body           string
	CandidateCount int
	Purpose        string
	SenderEmpID    string
}
