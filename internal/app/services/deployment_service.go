package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/karthikr/talentflow/internal/app/lifecycle"
	"github.com/karthikr/talentflow/internal/app/models"
	"github.com/karthikr/talentflow/internal/app/models/dto"
	"github.com/karthikr/talentflow/internal/pkg/apperrors"
	"github.com/karthikr/talentflow/internal/pkg/notify"
	"github.com/karthikr/talentflow/internal/pkg/validation"
)

// DeploymentStore is the deployment persistence surface the service depends on.
type DeploymentStore interface {
	Create(ctx context.Context, d *models.Deployment) (*models.Deployment, error)
	GetByID(ctx context.Context, id int64) (*models.Deployment, error)
	GetByCandidateID(ctx context.Context, candidateID int64) (*models.Deployment, error)
	UpdateEmailAudit(ctx context.Context, id int64, status models.EmailStatus, successful, failed, total int) error
	RecordInternalTransfer(ctx context.Context, d *models.Deployment) error
	Exit(ctx context.Context, id int64, exitDate time.Time, reason string) error
	List(ctx context.Context, status *models.DeploymentStatus) ([]*models.Deployment, error)
}

// deploymentCandidateStore is the slice of the candidate store the
// deployment flows need.
type deploymentCandidateStore interface {
	GetByID(ctx context.Context, id int64) (*models.Candidate, error)
	ClaimDeploymentEmail(ctx context.Context, id int64, sentBy string) error
	SetDeploymentRecord(ctx context.Context, id, deploymentID int64) error
	SetDeploymentStatus(ctx context.Context, id int64, status string) error
}

// employeeLookup resolves the sending employee for email transitions.
type employeeLookup interface {
	GetByEmpID(ctx context.Context, empID string) (*models.Employee, error)
}

// DeploymentService orchestrates the Delivery portal flows: the at-most-once
// deployment email, internal transfers and resource exits. The email claim is
// committed before any send attempt, so a crash mid-send can lose an email
// but can never duplicate one.
type DeploymentService struct {
	deployments DeploymentStore
	candidates  deploymentCandidateStore
	employees   employeeLookup
	engine      *lifecycle.Engine
	dispatcher  notify.Dispatcher
	logger      zerolog.Logger
}

// NewDeploymentService creates a new deployment service.
func NewDeploymentService(deployments DeploymentStore, candidates deploymentCandidateStore, employees employeeLookup, engine *lifecycle.Engine, dispatcher notify.Dispatcher, logger zerolog.Logger) *DeploymentService {
	return &DeploymentService{
		deployments: deployments,
		candidates:  candidates,
		employees:   employees,
		engine:      engine,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// SendDeploymentEmail sends the one-time deployment announcement for a
// candidate and creates the deployment record.
func (s *DeploymentService) SendDeploymentEmail(ctx context.Context, req dto.DeploymentEmailRequest, actor lifecycle.Actor) (*dto.TransitionResult, error) {
	if err := lifecycle.Authorize(actor, lifecycle.TransitionSendDeploymentEmail); err != nil {
		return nil, err
	}

	candidate, err := s.candidates.GetByID(ctx, req.CandidateID)
	if err != nil {
		return nil, err
	}
	sender, err := s.employees.GetByEmpID(ctx, actor.EmpID)
	if err != nil {
		return nil, err
	}

	if err := s.engine.CheckDeploymentEmail(candidate, sender, req.RecipientEmails); err != nil {
		return nil, err
	}
	if !sender.ManagerSetupComplete() {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrManagerSetupIncomplete,
			Message: "sender's delivery manager profile is incomplete",
		}
	}

	// Claim the email flag first. Losing the race here means another request
	// already sent; nothing has been dispatched yet.
	if err := s.candidates.ClaimDeploymentEmail(ctx, req.CandidateID, actor.EmpID); err != nil {
		return nil, err
	}

	recipients := validation.FilterEmails(req.RecipientEmails)
	cc := validation.FilterEmails(req.CcEmails)
	subject := req.Subject
	if subject == "" {
		subject = "Deployment Announcement - " + candidate.FullName
	}

	record := buildDeploymentRecord(candidate, sender, req, subject, recipients, cc)
	record, err = s.deployments.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	if err := s.candidates.SetDeploymentRecord(ctx, req.CandidateID, record.ID); err != nil {
		return nil, err
	}

	msg := notify.NewMessage(recipients, cc, subject,
		notify.DeploymentBody(req.Content, sender.Name, sender.Designation, sender.MobileNumber, *sender.ManagerEmail))
	msg.From = notify.Identity{
		Name:     sender.Name,
		Email:    *sender.ManagerEmail,
		Password: *sender.ManagerEmailPassword,
	}
	s.auditDelivery(record.ID, s.dispatcher.Dispatch(msg))

	s.logger.Info().
		Int64("candidateId", req.CandidateID).
		Int64("deploymentId", record.ID).
		Str("sentBy", actor.EmpID).
		Msg("Deployment email queued")

	return &dto.TransitionResult{
		RecordID: record.ID,
		Message:  "deployment email queued and deployment record created",
	}, nil
}

func buildDeploymentRecord(c *models.Candidate, sender *models.Employee, req dto.DeploymentEmailRequest, subject string, recipients, cc []string) *models.Deployment {
	d := &models.Deployment{
		CandidateID:    c.ID,
		CandidateName:  c.FullName,
		CandidateEmpID: c.EmployeeID,

		Role:           req.Form.Role,
		Email:          req.Form.Email,
		Office:         req.Form.Office,
		ModeOfHire:     req.Form.ModeOfHire,
		FromTeam:       req.Form.FromTeam,
		ToTeam:         req.Form.ToTeam,
		Client:         req.Form.Client,
		BU:             req.Form.BU,
		ReportingTo:    req.Form.ReportingTo,
		AccountManager: req.Form.AccountManager,

		CandidateMobile:          c.MobileNumber,
		CandidateExperienceLevel: string(c.ExperienceLevel),

		Status:          models.DeploymentActive,
		EmailSubject:    subject,
		RecipientEmails: recipients,
		CcEmails:        cc,
		EmailStatus:     models.EmailStatusSent,
		SentBy:          sender.EmpID,
		SentByName:      sender.Name,
	}
	if date, err := time.Parse("2006-01-02", req.Form.DeploymentDate); err == nil {
		d.DeploymentDate = &date
	}
	if c.OfficeEmail != nil {
		d.CandidateOfficeEmail = *c.OfficeEmail
	}
	if c.BatchLabel != nil {
		d.CandidateBatch = *c.BatchLabel
	}
	if sender.ManagerEmail != nil {
		d.SentFromEmail = *sender.ManagerEmail
	}
	return d
}

// auditDelivery records the asynchronous delivery outcome on the deployment
// row. Best-effort: the transition is already committed.
func (s *DeploymentService) auditDelivery(deploymentID int64, result <-chan notify.Delivery) {
	go func() {
		d, ok := <-result
		if !ok {
			return
		}
		status := models.EmailStatusSent
		if d.Failed > 0 || d.Err != nil {
			status = models.EmailStatusPartiallySent
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.deployments.UpdateEmailAudit(ctx, deploymentID, status, d.Successful, d.Failed, d.Total); err != nil {
			s.logger.Error().Err(err).
				Int64("deploymentId", deploymentID).
				Msg("Failed to record email delivery audit")
		}
	}()
}

// SendInternalTransferEmail announces an internal transfer on an existing
// deployment. Transfers can repeat; the resource stays Active.
func (s *DeploymentService) SendInternalTransferEmail(ctx context.Context, req dto.InternalTransferRequest, actor lifecycle.Actor) (*dto.TransitionResult, error) {
	if err := lifecycle.Authorize(actor, lifecycle.TransitionSendInternalTransfer); err != nil {
		return nil, err
	}

	deployment, err := s.deployments.GetByID(ctx, req.DeploymentID)
	if err != nil {
		return nil, err
	}
	sender, err := s.employees.GetByEmpID(ctx, actor.EmpID)
	if err != nil {
		return nil, err
	}
	if err := s.engine.CheckInternalTransferEmail(deployment, sender, req.RecipientEmails); err != nil {
		return nil, err
	}
	if !sender.ManagerSetupComplete() {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrManagerSetupIncomplete,
			Message: "sender's delivery manager profile is incomplete",
		}
	}

	recipients := validation.FilterEmails(req.RecipientEmails)
	cc := validation.FilterEmails(req.CcEmails)
	subject := req.Subject
	if subject == "" {
		subject = "Internal Transfer - " + deployment.CandidateName
	}

	now := s.engine.Now()
	if req.Form.ToTeam != "" {
		deployment.ToTeam = req.Form.ToTeam
	}
	if req.Form.Client != "" {
		deployment.Client = req.Form.Client
	}
	if req.Form.ReportingTo != "" {
		deployment.ReportingTo = req.Form.ReportingTo
	}
	deployment.InternalTransferDate = &now
	deployment.InternalTransferSubject = subject
	deployment.InternalTransferRecipients = recipients
	deployment.InternalTransferCc = cc
	deployment.InternalTransferSentBy = &sender.EmpID
	deployment.InternalTransferSentByName = &sender.Name

	if err := s.deployments.RecordInternalTransfer(ctx, deployment); err != nil {
		return nil, err
	}

	msg := notify.NewMessage(recipients, cc, subject,
		notify.DeploymentBody(req.Content, sender.Name, sender.Designation, sender.MobileNumber, *sender.ManagerEmail))
	msg.From = notify.Identity{
		Name:     sender.Name,
		Email:    *sender.ManagerEmail,
		Password: *sender.ManagerEmailPassword,
	}
	s.dispatcher.Dispatch(msg)

	return &dto.TransitionResult{
		RecordID: deployment.ID,
		Message:  "internal transfer recorded and email queued",
	}, nil
}

// Exit marks a deployed resource as exited. The transition is one-way.
func (s *DeploymentService) Exit(ctx context.Context, deploymentID int64, reason string, actor lifecycle.Actor) error {
	if err := lifecycle.Authorize(actor, lifecycle.TransitionExitResource); err != nil {
		return err
	}
	if err := s.engine.ValidateExitReason(reason); err != nil {
		return err
	}

	deployment, err := s.deployments.GetByID(ctx, deploymentID)
	if err != nil {
		return err
	}
	if err := s.deployments.Exit(ctx, deploymentID, s.engine.Now(), reason); err != nil {
		return err
	}
	if err := s.candidates.SetDeploymentStatus(ctx, deployment.CandidateID, "exited"); err != nil {
		s.logger.Error().Err(err).
			Int64("candidateId", deployment.CandidateID).
			Msg("Failed to mirror exit onto candidate")
	}

	s.logger.Info().
		Int64("deploymentId", deploymentID).
		Str("actor", actor.EmpID).
		Msg("Resource exit recorded")
	return nil
}

// GetByID retrieves a deployment record.
func (s *DeploymentService) GetByID(ctx context.Context, id int64) (*models.Deployment, error) {
	return s.deployments.GetByID(ctx, id)
}

// List returns deployment records, optionally filtered by status.
func (s *DeploymentService) List(ctx context.Context, status *models.DeploymentStatus) ([]*models.Deployment, error) {
	return s.deployments.List(ctx, status)
}
