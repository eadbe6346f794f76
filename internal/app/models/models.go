package models

// Team identifies the portal a user belongs to. Every mutating operation is
// gated on the requesting user's team (plus the delivery-manager capability,
// which cuts across teams).
type Team string

const (
	TeamHRTag    Team = "HR Tag"
	TeamHROps    Team = "HR Ops"
	TeamAdmin    Team = "Admin"
	TeamLD       Team = "L&D"
	TeamDelivery Team = "Delivery"
	TeamIT       Team = "IT"
	TeamHR       Team = "HR"
	TeamDirector Team = "Director"
)

// ValidTeams lists every team accepted when creating an employee.
var ValidTeams = []Team{
	TeamHRTag, TeamHROps, TeamAdmin, TeamLD, TeamDelivery, TeamIT, TeamHR, TeamDirector,
}

// IsValid reports whether the team is one of the known portals.
func (t Team) IsValid() bool {
	for _, v := range ValidTeams {
		if t == v {
			return true
		}
	}
	return false
}

// CandidateStatus is the primary lifecycle stage of a candidate.
// A candidate starts as 'submitted' and moves to 'sent' once HR Tag hands
// it over to HR Ops. All later stages (admin, L&D, deployment) are tracked
// as separate stage values layered on top of 'sent'.
type CandidateStatus string

const (
	StatusSubmitted CandidateStatus = "submitted"
	StatusSent      CandidateStatus = "sent"
)

// LDStatus is the L&D team's verdict on a candidate. It is written exactly
// once; a second write is rejected as a conflict.
type LDStatus string

const (
	LDSelected LDStatus = "Selected"
	LDRejected LDStatus = "Rejected"
	LDDropped  LDStatus = "Dropped"
)

// IsValid reports whether the value is one of the three L&D verdicts.
func (s LDStatus) IsValid() bool {
	return s == LDSelected || s == LDRejected || s == LDDropped
}

// ExperienceLevel distinguishes freshers from lateral hires. Batch and year
// are meaningful only for freshers.
type ExperienceLevel string

const (
	ExperienceFresher ExperienceLevel = "Fresher"
	ExperienceLateral ExperienceLevel = "Lateral"
)

// Source records how the candidate reached the company.
type Source string

const (
	SourceWalkIn    Source = "Walk-in"
	SourceReference Source = "Reference"
	SourceCampus    Source = "Campus"
)

// DeploymentStatus marks an active or exited placement.
type DeploymentStatus string

const (
	DeploymentActive   DeploymentStatus = "Active"
	DeploymentInactive DeploymentStatus = "Inactive"
)

// EmailStatus summarises the outcome of a batch email send.
type EmailStatus string

const (
	EmailStatusSent          EmailStatus = "Sent"
	EmailStatusPartiallySent EmailStatus = "Partially Sent"
)

// AssignmentStatus is the derived classification of a sent candidate based
// on which of the two HR Ops assignments (office email, employee id) have
// been completed.
type AssignmentStatus string

const (
	AssignmentNone     AssignmentStatus = "none"
	AssignmentPartial  AssignmentStatus = "partial"
	AssignmentComplete AssignmentStatus = "complete"
)
