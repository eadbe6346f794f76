package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/karthikr/talentflow/internal/app/models"
	"github.com/karthikr/talentflow/internal/pkg/apperrors"
	"github.com/karthikr/talentflow/internal/pkg/validation"
)

// Engine evaluates transition preconditions and computes the resulting
// record state plus notification intents. It holds no storage handle; the
// clock is injectable for tests.
type Engine struct {
	Now func() time.Time
}

// NewEngine creates an engine using the wall clock.
func NewEngine() *Engine {
	return &Engine{Now: time.Now}
}

// CandidateProfile is the editable profile portion of a candidate, shared by
// the submit and edit transitions.
type CandidateProfile struct {
	FullName        string
	Gender          string
	FatherName      string
	FirstGraduate   bool
	ExperienceLevel models.ExperienceLevel
	BatchLabel      string
	Year            int
	Source          models.Source
	ReferenceName   string
	Native          string
	MobileNumber    string
	PersonalEmail   string
	LinkedinURL     string
	College         string
	ResumeFileName  string
}

// ValidateProfile enforces the profile field rules:
// email and mobile must normalize to valid values, a reference name is
// required exactly when the source is Reference, and batch/year are required
// exactly when the candidate is a fresher.
func (e *Engine) ValidateProfile(p CandidateProfile) error {
	if strings.TrimSpace(p.FullName) == "" {
		return apperrors.NewValidationError("full name is required")
	}
	if !validation.IsValidEmail(p.PersonalEmail) {
		return apperrors.NewValidationError("personal email is not a valid address")
	}
	if !validation.IsValidMobile(p.MobileNumber) {
		return apperrors.NewValidationError(
			fmt.Sprintf("mobile number must contain exactly %d digits", validation.MobileLength))
	}

	switch p.ExperienceLevel {
	case models.ExperienceFresher:
		if strings.TrimSpace(p.BatchLabel) == "" || p.Year == 0 {
			return apperrors.NewValidationError("batch label and year are required for freshers")
		}
	case models.ExperienceLateral:
	default:
		return apperrors.NewValidationError("experience level must be Fresher or Lateral")
	}

	switch p.Source {
	case models.SourceReference:
		if strings.TrimSpace(p.ReferenceName) == "" {
			return apperrors.NewValidationError("reference name is required for referenced candidates")
		}
	case models.SourceWalkIn, models.SourceCampus:
	default:
		return apperrors.NewValidationError("source must be Walk-in, Reference or Campus")
	}

	return nil
}

// NewCandidate builds the record a submit transition creates. Email and
// mobile are stored in normalized form; status starts at submitted.
func (e *Engine) NewCandidate(p CandidateProfile, actor Actor) (*models.Candidate, error) {
	if err := e.ValidateProfile(p); err != nil {
		return nil, err
	}

	c := &models.Candidate{
		FullName:        strings.TrimSpace(p.FullName),
		Gender:          p.Gender,
		FatherName:      p.FatherName,
		FirstGraduate:   p.FirstGraduate,
		ExperienceLevel: p.ExperienceLevel,
		Source:          p.Source,
		Native:          p.Native,
		MobileNumber:    validation.NormalizeMobile(p.MobileNumber),
		PersonalEmail:   validation.NormalizeEmail(p.PersonalEmail),
		College:         p.College,
		SubmittedBy:     actor.EmpID,
		SubmittedByName: actor.Name,
		Status:          models.StatusSubmitted,
	}
	applyConditionalFields(c, p)
	return c, nil
}

// ApplyEdit mutates a loaded candidate with new profile values. Editing is
// legal only while the candidate is still in submitted status. Fields tied
// to source/experience are cleared when they no longer apply.
func (e *Engine) ApplyEdit(c *models.Candidate, p CandidateProfile) error {
	if c.Status != models.StatusSubmitted {
		return &apperrors.CustomError{
			Err:     apperrors.ErrCandidateNotEditable,
			Message: "only candidates with submitted status can be edited",
		}
	}
	if err := e.ValidateProfile(p); err != nil {
		return err
	}

	c.FullName = strings.TrimSpace(p.FullName)
	c.Gender = p.Gender
	c.FatherName = p.FatherName
	c.FirstGraduate = p.FirstGraduate
	c.ExperienceLevel = p.ExperienceLevel
	c.Source = p.Source
	c.Native = p.Native
	c.MobileNumber = validation.NormalizeMobile(p.MobileNumber)
	c.PersonalEmail = validation.NormalizeEmail(p.PersonalEmail)
	c.College = p.College

	// Reset before re-applying so stale conditional fields are dropped when
	// the source or experience level changed.
	c.BatchLabel = nil
	c.Year = nil
	c.ReferenceName = nil
	c.LinkedinURL = nil
	applyConditionalFields(c, p)
	return nil
}

func applyConditionalFields(c *models.Candidate, p CandidateProfile) {
	if p.ExperienceLevel == models.ExperienceFresher {
		batch := strings.TrimSpace(p.BatchLabel)
		year := p.Year
		c.BatchLabel = &batch
		c.Year = &year
	}
	if p.Source == models.SourceReference {
		ref := strings.TrimSpace(p.ReferenceName)
		c.ReferenceName = &ref
	}
	if url := strings.TrimSpace(p.LinkedinURL); url != "" {
		c.LinkedinURL = &url
	}
	if name := strings.TrimSpace(p.ResumeFileName); name != "" {
		c.ResumeFileName = &name
	}
}

// ValidateBulkIDs rejects empty bulk transition requests before any store
// round trip.
func (e *Engine) ValidateBulkIDs(ids []int64) error {
	if len(ids) == 0 {
		return apperrors.NewValidationError("at least one candidate id is required")
	}
	return nil
}

// TransferIntent builds the portal notification fired after a bulk routing
// transition commits.
func (e *Engine) TransferIntent(to []models.Team, count int, purpose string, actor Actor) NotificationIntent {
	return NotificationIntent{
		Kind:           NotifyCandidateTransfer,
		FromPortal:     actor.Team,
		ToPortals:      to,
		CandidateCount: count,
		Purpose:        purpose,
		SenderEmpID:    actor.EmpID,
	}
}

// CheckSetLDStatus guards the L&D verdict: the candidate must have been
// routed to L&D, the verdict must be one of the three allowed values, and a
// verdict may be recorded only once.
func (e *Engine) CheckSetLDStatus(c *models.Candidate, verdict models.LDStatus) error {
	if !verdict.IsValid() {
		return apperrors.NewValidationError("L&D status must be Selected, Rejected or Dropped")
	}
	if !c.SentToLD {
		return apperrors.NewValidationError("candidate has not been sent to L&D")
	}
	if c.LDStatus != nil {
		return &apperrors.CustomError{
			Err:     apperrors.ErrLDStatusAlreadySet,
			Message: fmt.Sprintf("L&D status is already %s", *c.LDStatus),
		}
	}
	return nil
}

// CheckDeploymentEmail guards the at-most-once deployment email. The
// duplicate check runs first, before sender and recipient validation, so a
// retried request can never slip past it into a second delivery attempt.
func (e *Engine) CheckDeploymentEmail(c *models.Candidate, sender *models.Employee, recipients []string) error {
	if c.DeploymentEmailSent {
		return &apperrors.CustomError{
			Err:     apperrors.ErrDeploymentEmailSent,
			Message: "deployment email has already been sent for this candidate",
		}
	}
	if sender == nil || !sender.IsActive || !sender.CanSendEmail {
		return apperrors.NewForbiddenError("sender does not have email permissions or is not active")
	}
	if len(validation.FilterEmails(recipients)) == 0 {
		return apperrors.NewValidationError("at least one recipient email is required")
	}
	return nil
}

// CheckInternalTransferEmail guards the transfer email on an existing
// deployment. Unlike the deployment email there is no at-most-once rule:
// a resource can be transferred more than once.
func (e *Engine) CheckInternalTransferEmail(d *models.Deployment, sender *models.Employee, recipients []string) error {
	if sender == nil || !sender.IsActive || !sender.CanSendEmail {
		return apperrors.NewForbiddenError("sender does not have email permissions or is not active")
	}
	if len(validation.FilterEmails(recipients)) == 0 {
		return apperrors.NewValidationError("at least one recipient email is required")
	}
	return nil
}

// EligibleForHRTag reports whether a candidate can be confirmed as deployed
// by the Delivery portal: sent, and selected by L&D.
func (e *Engine) EligibleForHRTag(c *models.Candidate) bool {
	return c.Status == models.StatusSent &&
		c.LDStatus != nil && *c.LDStatus == models.LDSelected
}

// ValidateExitReason enforces the minimum reason length for an exit.
func (e *Engine) ValidateExitReason(reason string) error {
	if len(strings.TrimSpace(reason)) < validation.ExitReasonMinLength {
		return &apperrors.CustomError{
			Err: apperrors.ErrExitReasonTooShort,
			Message: fmt.Sprintf("exit reason must be at least %d characters",
				validation.ExitReasonMinLength),
		}
	}
	return nil
}

// EligibleForPermanentID reports whether a candidate qualifies for the
// permanent-ID handover: deployment confirmed by Delivery and selected by L&D.
func (e *Engine) EligibleForPermanentID(c *models.Candidate) bool {
	return c.Status == models.StatusSent &&
		c.SentToHRTag &&
		c.LDStatus != nil && *c.LDStatus == models.LDSelected
}

// CheckPermanentIDBatch requires every requested candidate to be eligible;
// unlike the other bulk transitions a partial match here is an error.
func (e *Engine) CheckPermanentIDBatch(eligible, requested int) error {
	if eligible == 0 {
		return apperrors.NewNotFoundError("no valid deployed candidates found")
	}
	if eligible != requested {
		return apperrors.NewValidationError(fmt.Sprintf(
			"only %d out of %d candidates are valid for permanent ID assignment",
			eligible, requested))
	}
	return nil
}
