package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/karthikr/talentflow/internal/app/lifecycle"
	"github.com/karthikr/talentflow/internal/app/models"
	"github.com/karthikr/talentflow/internal/app/models/dto"
	"github.com/karthikr/talentflow/internal/pkg/apperrors"
	"github.com/karthikr/talentflow/internal/pkg/notify"
	"github.com/karthikr/talentflow/internal/pkg/validation"
)

// CandidateStore is the candidate persistence surface the service depends on.
type CandidateStore interface {
	Create(ctx context.Context, c *models.Candidate) error
	GetByID(ctx context.Context, id int64) (*models.Candidate, error)
	ExistsByEmailOrMobile(ctx context.Context, email, mobile string, excludeID int64) (bool, error)
	Update(ctx context.Context, c *models.Candidate) error
	MarkSent(ctx context.Context, ids []int64) (int64, error)
	MarkSentToAdmin(ctx context.Context, ids []int64) (int64, error)
	MarkSentToAdminAndLD(ctx context.Context, ids []int64) (int64, error)
	AssignOfficeEmail(ctx context.Context, id int64, email, assignedBy string) error
	AssignEmployeeID(ctx context.Context, id int64, empID, assignedBy string) error
	SetLDStatus(ctx context.Context, id int64, verdict models.LDStatus) error
	MarkSentToHRTag(ctx context.Context, ids []int64) (int64, error)
	CountEligibleForPermanentID(ctx context.Context, ids []int64) (int64, error)
	MarkSentForPermanentID(ctx context.Context, ids []int64, sentBy string) (int64, error)
	List(ctx context.Context, q dto.CandidateListQuery, offset uint64, limit int) ([]*models.Candidate, int64, error)
	ListDeployed(ctx context.Context) ([]*models.Candidate, error)
	ListRejected(ctx context.Context, from, to *time.Time) ([]*models.Candidate, error)
	Stats(ctx context.Context) (*dto.DashboardStats, error)
}

// CandidateService orchestrates the candidate lifecycle: submission and
// editing on the HR Tag portal, the bulk routing transitions, identifier
// assignment on HR Ops and the L&D verdict. The lifecycle engine decides,
// the store persists, the dispatcher notifies.
type CandidateService struct {
	candidates CandidateStore
	engine     *lifecycle.Engine
	dispatcher notify.Dispatcher
	portals    notify.PortalDirectory
	logger     zerolog.Logger
}

// NewCandidateService creates a new candidate service.
func NewCandidateService(candidates CandidateStore, engine *lifecycle.Engine, dispatcher notify.Dispatcher, portals notify.PortalDirectory, logger zerolog.Logger) *CandidateService {
	return &CandidateService{
		candidates: candidates,
		engine:     engine,
		dispatcher: dispatcher,
		portals:    portals,
		logger:     logger,
	}
}

// Submit creates a new candidate in submitted status.
func (s *CandidateService) Submit(ctx context.Context, p lifecycle.CandidateProfile, actor lifecycle.Actor) (*models.Candidate, error) {
	if err := lifecycle.Authorize(actor, lifecycle.TransitionSubmitCandidate); err != nil {
		return nil, err
	}

	candidate, err := s.engine.NewCandidate(p, actor)
	if err != nil {
		return nil, err
	}

	exists, err := s.candidates.ExistsByEmailOrMobile(ctx, candidate.PersonalEmail, candidate.MobileNumber, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrCandidateAlreadyExists,
			Message: "a candidate with this email or mobile number already exists",
		}
	}

	if err := s.candidates.Create(ctx, candidate); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("candidateId", candidate.ID).
		Str("submittedBy", actor.EmpID).
		Msg("Candidate submitted")
	return candidate, nil
}

// Edit updates a candidate's profile while it is still in submitted status.
func (s *CandidateService) Edit(ctx context.Context, id int64, p lifecycle.CandidateProfile, actor lifecycle.Actor) (*models.Candidate, error) {
	if err := lifecycle.Authorize(actor, lifecycle.TransitionEditCandidate); err != nil {
		return nil, err
	}

	candidate, err := s.candidates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.engine.ApplyEdit(candidate, p); err != nil {
		return nil, err
	}

	exists, err := s.candidates.ExistsByEmailOrMobile(ctx, candidate.PersonalEmail, candidate.MobileNumber, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrCandidateAlreadyExists,
			Message: "another candidate with this email or mobile number already exists",
		}
	}

	if err := s.candidates.Update(ctx, candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

// GetByID retrieves a single candidate.
func (s *CandidateService) GetByID(ctx context.Context, id int64) (*models.Candidate, error) {
	return s.candidates.GetByID(ctx, id)
}

// List returns a filtered candidate page.
func (s *CandidateService) List(ctx context.Context, q dto.CandidateListQuery, offset uint64, limit int) ([]*models.Candidate, int64, error) {
	return s.candidates.List(ctx, q, offset, limit)
}

// ListDeployed returns candidates confirmed as deployed.
func (s *CandidateService) ListDeployed(ctx context.Context) ([]*models.Candidate, error) {
	return s.candidates.ListDeployed(ctx)
}

// ListRejected returns candidates rejected or dropped by L&D.
func (s *CandidateService) ListRejected(ctx context.Context, from, to *time.Time) ([]*models.Candidate, error) {
	return s.candidates.ListRejected(ctx, from, to)
}

// Stats aggregates the HR Tag dashboard counters.
func (s *CandidateService) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	return s.candidates.Stats(ctx)
}

// SendToHROps moves the matching submitted candidates to sent status. A
// request where no candidate matches fails; a partial match succeeds and
// reports the modified count.
func (s *CandidateService) SendToHROps(ctx context.Context, ids []int64, actor lifecycle.Actor) (*dto.TransitionResult, error) {
	return s.bulkTransition(ctx, bulkTransition{
		transition: lifecycle.TransitionSendToHROps,
		ids:        ids,
		actor:      actor,
		apply:      s.candidates.MarkSent,
		notifyTo:   []models.Team{models.TeamHROps},
		purpose:    "onboarding",
		message:    "candidates sent to HR Ops",
	})
}

// SendToAdmin routes the matching sent candidates to the Admin portal.
func (s *CandidateService) SendToAdmin(ctx context.Context, ids []int64, actor lifecycle.Actor) (*dto.TransitionResult, error) {
	return s.bulkTransition(ctx, bulkTransition{
		transition: lifecycle.TransitionSendToAdmin,
		ids:        ids,
		actor:      actor,
		apply:      s.candidates.MarkSentToAdmin,
		notifyTo:   []models.Team{models.TeamAdmin},
		purpose:    "system allocation",
		message:    "candidates sent to Admin",
	})
}

// SendToAdminAndLD routes the matching sent candidates to the Admin and L&D
// portals in one transition.
func (s *CandidateService) SendToAdminAndLD(ctx context.Context, ids []int64, actor lifecycle.Actor) (*dto.TransitionResult, error) {
	return s.bulkTransition(ctx, bulkTransition{
		transition: lifecycle.TransitionSendToAdminAndLD,
		ids:        ids,
		actor:      actor,
		apply:      s.candidates.MarkSentToAdminAndLD,
		notifyTo:   []models.Team{models.TeamAdmin, models.TeamLD},
		purpose:    "system allocation and training",
		message:    "candidates sent to Admin and L&D",
	})
}

// SendToHRTag confirms deployment for L&D-selected candidates from the
// Delivery portal.
func (s *CandidateService) SendToHRTag(ctx context.Context, ids []int64, actor lifecycle.Actor) (*dto.TransitionResult, error) {
	return s.bulkTransition(ctx, bulkTransition{
		transition: lifecycle.TransitionSendToHRTag,
		ids:        ids,
		actor:      actor,
		apply:      s.candidates.MarkSentToHRTag,
		notifyTo:   []models.Team{models.TeamHRTag},
		purpose:    "deployment confirmation",
		message:    "candidates confirmed as deployed",
	})
}

type bulkTransition struct {
	transition lifecycle.Transition
	ids        []int64
	actor      lifecycle.Actor
	apply      func(ctx context.Context, ids []int64) (int64, error)
	notifyTo   []models.Team
	purpose    string
	message    string
}

func (s *CandidateService) bulkTransition(ctx context.Context, t bulkTransition) (*dto.TransitionResult, error) {
	if err := lifecycle.Authorize(t.actor, t.transition); err != nil {
		return nil, err
	}
	if err := s.engine.ValidateBulkIDs(t.ids); err != nil {
		return nil, err
	}

	modified, err := t.apply(ctx, t.ids)
	if err != nil {
		return nil, err
	}
	if modified == 0 {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrNoCandidatesMatched,
			Message: "no candidates were eligible for this transition",
		}
	}

	warning := s.notifyTransfer(s.engine.TransferIntent(t.notifyTo, int(modified), t.purpose, t.actor))

	s.logger.Info().
		Str("transition", string(t.transition)).
		Int64("modified", modified).
		Int("requested", len(t.ids)).
		Str("actor", t.actor.EmpID).
		Msg("Bulk candidate transition committed")

	return &dto.TransitionResult{
		ModifiedCount:       modified,
		Message:             fmt.Sprintf("%d %s", modified, t.message),
		NotificationWarning: warning,
	}, nil
}

// SendForPermanentID hands deployed candidates back to HR Ops for permanent
// employee ids. Unlike the other bulk transitions every requested candidate
// must be eligible.
func (s *CandidateService) SendForPermanentID(ctx context.Context, ids []int64, actor lifecycle.Actor) (*dto.TransitionResult, error) {
	if err := lifecycle.Authorize(actor, lifecycle.TransitionSendForPermanentID); err != nil {
		return nil, err
	}
	if err := s.engine.ValidateBulkIDs(ids); err != nil {
		return nil, err
	}

	eligible, err := s.candidates.CountEligibleForPermanentID(ctx, ids)
	if err != nil {
		return nil, err
	}
	if err := s.engine.CheckPermanentIDBatch(int(eligible), len(ids)); err != nil {
		return nil, err
	}

	modified, err := s.candidates.MarkSentForPermanentID(ctx, ids, actor.EmpID)
	if err != nil {
		return nil, err
	}

	warning := s.notifyTransfer(s.engine.TransferIntent(
		[]models.Team{models.TeamHROps}, int(modified), "permanent ID assignment", actor))

	return &dto.TransitionResult{
		ModifiedCount:       modified,
		Message:             fmt.Sprintf("%d candidates sent to HR Ops for permanent ID", modified),
		NotificationWarning: warning,
	}, nil
}

// AssignOfficeEmail records an office email on a sent candidate. Assignments
// are idempotent overwrites.
func (s *CandidateService) AssignOfficeEmail(ctx context.Context, id int64, email string, actor lifecycle.Actor) error {
	if err := lifecycle.Authorize(actor, lifecycle.TransitionAssignOfficeEmail); err != nil {
		return err
	}
	email = validation.NormalizeEmail(email)
	if !validation.IsValidEmail(email) {
		return apperrors.NewValidationError("office email is not a valid address")
	}
	if _, err := s.candidates.GetByID(ctx, id); err != nil {
		return err
	}
	return s.candidates.AssignOfficeEmail(ctx, id, email, actor.EmpID)
}

// AssignEmployeeID records an employee id on a sent candidate.
func (s *CandidateService) AssignEmployeeID(ctx context.Context, id int64, empID string, actor lifecycle.Actor) error {
	if err := lifecycle.Authorize(actor, lifecycle.TransitionAssignEmployeeID); err != nil {
		return err
	}
	empID = strings.TrimSpace(empID)
	if empID == "" {
		return apperrors.NewValidationError("employee id is required")
	}
	if _, err := s.candidates.GetByID(ctx, id); err != nil {
		return err
	}
	return s.candidates.AssignEmployeeID(ctx, id, empID, actor.EmpID)
}

// SetLDStatus records the L&D verdict for a candidate. The verdict is
// write-once; both the engine precondition and the store's conditional
// update enforce it.
func (s *CandidateService) SetLDStatus(ctx context.Context, id int64, verdict models.LDStatus, actor lifecycle.Actor) error {
	if err := lifecycle.Authorize(actor, lifecycle.TransitionSetLDStatus); err != nil {
		return err
	}
	candidate, err := s.candidates.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.engine.CheckSetLDStatus(candidate, verdict); err != nil {
		return err
	}
	return s.candidates.SetLDStatus(ctx, id, verdict)
}

// notifyTransfer fires a portal transfer notification and returns a soft
// warning string when the notification could not even be queued. Delivery
// outcomes are logged by the dispatcher; they never fail the transition.
func (s *CandidateService) notifyTransfer(intent lifecycle.NotificationIntent) string {
	recipients := s.portals.Resolve(intent.ToPortals)
	if len(recipients) == 0 {
		return "notification skipped: no portal addresses configured"
	}

	names := make([]string, len(intent.ToPortals))
	for i, p := range intent.ToPortals {
		names[i] = string(p)
	}

	msg := notify.NewMessage(recipients, nil,
		notify.TransferSubject(intent.CandidateCount, string(intent.FromPortal)),
		notify.TransferBody(string(intent.FromPortal), strings.Join(names, ", "),
			intent.CandidateCount, intent.Purpose, intent.SenderEmpID))

	result := s.dispatcher.Dispatch(msg)
	select {
	case d := <-result:
		// An immediate result means the message never entered the queue.
		if d.Err != nil {
			return "notification could not be queued and was dropped"
		}
	default:
	}
	return ""
}
