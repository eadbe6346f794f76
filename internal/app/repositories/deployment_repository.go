package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/karthikr/talentflow/internal/app/models"
	"github.com/karthikr/talentflow/internal/pkg/apperrors"
	"github.com/karthikr/talentflow/internal/pkg/dberrors"
)

const deploymentColumns = `
	id, candidate_id, candidate_name, candidate_emp_id,
	role, email, office, mode_of_hire, from_team, to_team,
	client, bu, reporting_to, account_manager, deployment_date,
	track, work_location, doj, extension,
	candidate_mobile, candidate_office_email, candidate_experience_level, candidate_batch,
	status, exit_date, exit_reason,
	email_subject, recipient_emails, cc_emails, email_status,
	email_successful, email_failed, email_total,
	sent_by, sent_by_name, sent_from_email,
	internal_transfer_date, internal_transfer_email_sent, internal_transfer_subject,
	internal_transfer_recipients, internal_transfer_cc,
	internal_transfer_sent_by, internal_transfer_sent_by_name, internal_transfer_sent_at,
	created_at, updated_at`

// DeploymentRepository handles database operations for deployment records.
type DeploymentRepository struct {
	db *pgxpool.Pool
}

// NewDeploymentRepository creates a new deployment repository.
func NewDeploymentRepository(db *pgxpool.Pool) *DeploymentRepository {
	return &DeploymentRepository{db: db}
}

func scanDeployment(row pgx.Row) (*models.Deployment, error) {
	var d models.Deployment
	err := row.Scan(
		&d.ID, &d.CandidateID, &d.CandidateName, &d.CandidateEmpID,
		&d.Role, &d.Email, &d.Office, &d.ModeOfHire, &d.FromTeam, &d.ToTeam,
		&d.Client, &d.BU, &d.ReportingTo, &d.AccountManager, &d.DeploymentDate,
		&d.Track, &d.WorkLocation, &d.DOJ, &d.Extension,
		&d.CandidateMobile, &d.CandidateOfficeEmail, &d.CandidateExperienceLevel, &d.CandidateBatch,
		&d.Status, &d.ExitDate, &d.ExitReason,
		&d.EmailSubject, &d.RecipientEmails, &d.CcEmails, &d.EmailStatus,
		&d.EmailSuccessful, &d.EmailFailed, &d.EmailTotal,
		&d.SentBy, &d.SentByName, &d.SentFromEmail,
		&d.InternalTransferDate, &d.InternalTransferEmailSent, &d.InternalTransferSubject,
		&d.InternalTransferRecipients, &d.InternalTransferCc,
		&d.InternalTransferSentBy, &d.InternalTransferSentByName, &d.InternalTransferSentAt,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new deployment record. The unique index on candidate_id
// enforces at most one record per candidate; on a duplicate the existing
// record is loaded and returned so concurrent creators converge on one row.
func (r *DeploymentRepository) Create(ctx context.Context, d *models.Deployment) (*models.Deployment, error) {
	query := `
		INSERT INTO deployments (
			candidate_id, candidate_name, candidate_emp_id,
			role, email, office, mode_of_hire, from_team, to_team,
			client, bu, reporting_to, account_manager, deployment_date,
			track, work_location, doj, extension,
			candidate_mobile, candidate_office_email, candidate_experience_level, candidate_batch,
			status, email_subject, recipient_emails, cc_emails, email_status,
			email_successful, email_failed, email_total,
			sent_by, sent_by_name, sent_from_email
		) VALUES (
			$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,
			$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33
		)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		d.CandidateID, d.CandidateName, d.CandidateEmpID,
		d.Role, d.Email, d.Office, d.ModeOfHire, d.FromTeam, d.ToTeam,
		d.Client, d.BU, d.ReportingTo, d.AccountManager, d.DeploymentDate,
		d.Track, d.WorkLocation, d.DOJ, d.Extension,
		d.CandidateMobile, d.CandidateOfficeEmail, d.CandidateExperienceLevel, d.CandidateBatch,
		d.Status, d.EmailSubject, d.RecipientEmails, d.CcEmails, d.EmailStatus,
		d.EmailSuccessful, d.EmailFailed, d.EmailTotal,
		d.SentBy, d.SentByName, d.SentFromEmail,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return r.GetByCandidateID(ctx, d.CandidateID)
		}
		return nil, fmt.Errorf("error creating deployment record: %w", err)
	}
	return d, nil
}

// GetByID retrieves a deployment record by id.
func (r *DeploymentRepository) GetByID(ctx context.Context, id int64) (*models.Deployment, error) {
	query := `SELECT ` + deploymentColumns + ` FROM deployments WHERE id = $1`
	d, err := scanDeployment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrDeploymentNotFound
		}
		return nil, fmt.Errorf("error retrieving deployment record: %w", err)
	}
	return d, nil
}

// GetByCandidateID retrieves the deployment record for a candidate.
func (r *DeploymentRepository) GetByCandidateID(ctx context.Context, candidateID int64) (*models.Deployment, error) {
	query := `SELECT ` + deploymentColumns + ` FROM deployments WHERE candidate_id = $1`
	d, err := scanDeployment(r.db.QueryRow(ctx, query, candidateID))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrDeploymentNotFound
		}
		return nil, fmt.Errorf("error retrieving deployment record: %w", err)
	}
	return d, nil
}

// UpdateEmailAudit records the per-recipient outcome of the deployment email
// after the asynchronous send completes.
func (r *DeploymentRepository) UpdateEmailAudit(ctx context.Context, id int64, status models.EmailStatus, successful, failed, total int) error {
	query := `
		UPDATE deployments
		SET email_status = $2, email_successful = $3, email_failed = $4,
		    email_total = $5, updated_at = NOW()
		WHERE id = $1
	`
	if _, err := r.db.Exec(ctx, query, id, status, successful, failed, total); err != nil {
		return fmt.Errorf("error updating deployment email audit: %w", err)
	}
	return nil
}

// RecordInternalTransfer updates the record in place with the transfer audit.
// The resource stays Active; a transfer is not an exit.
func (r *DeploymentRepository) RecordInternalTransfer(ctx context.Context, d *models.Deployment) error {
	query := `
		UPDATE deployments
		SET to_team = $2, client = $3, reporting_to = $4, work_location = $5,
		    internal_transfer_date = $6, internal_transfer_email_sent = TRUE,
		    internal_transfer_subject = $7, internal_transfer_recipients = $8,
		    internal_transfer_cc = $9, internal_transfer_sent_by = $10,
		    internal_transfer_sent_by_name = $11, internal_transfer_sent_at = NOW(),
		    updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		d.ID, d.ToTeam, d.Client, d.ReportingTo, d.WorkLocation,
		d.InternalTransferDate, d.InternalTransferSubject,
		d.InternalTransferRecipients, d.InternalTransferCc,
		d.InternalTransferSentBy, d.InternalTransferSentByName,
	)
	if err != nil {
		return fmt.Errorf("error recording internal transfer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDeploymentNotFound
	}
	return nil
}

// Exit marks the deployment Inactive with the given reason. The status guard
// makes the transition one-way: a second exit attempt matches no rows.
func (r *DeploymentRepository) Exit(ctx context.Context, id int64, exitDate time.Time, reason string) error {
	query := `
		UPDATE deployments
		SET status = $2, exit_date = $3, exit_reason = $4, updated_at = NOW()
		WHERE id = $1 AND status = $5
	`
	tag, err := r.db.Exec(ctx, query, id, models.DeploymentInactive, exitDate, reason, models.DeploymentActive)
	if err != nil {
		return fmt.Errorf("error recording resource exit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("resource already exited or deployment not found")
	}
	return nil
}

// List returns deployment records, optionally filtered by status.
func (r *DeploymentRepository) List(ctx context.Context, status *models.DeploymentStatus) ([]*models.Deployment, error) {
	query := `
		SELECT ` + deploymentColumns + ` FROM deployments
		WHERE $1::text IS NULL OR status = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("error listing deployment records: %w", err)
	}
	defer rows.Close()

	var deployments []*models.Deployment
	for rows.Next() {
		d, err := scanDeployment(rows)
		if err != nil {
			return nil, err
		}
		deployments = append(deployments, d)
	}
	return deployments, rows.Err()
}
