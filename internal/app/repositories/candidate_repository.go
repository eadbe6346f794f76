package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/karthikr/talentflow/internal/app/models"
	"github.com/karthikr/talentflow/internal/app/models/dto"
	"github.com/karthikr/talentflow/internal/pkg/apperrors"
	"github.com/karthikr/talentflow/internal/pkg/dberrors"
)

// candidateColumns is the scan list shared by every candidate query.
const candidateColumns = `
	id, full_name, gender, father_name, first_graduate, experience_level,
	batch_label, year, source, reference_name, native, mobile_number,
	personal_email, linkedin_url, college, resume_file_name,
	submitted_by, submitted_by_name, status,
	office_email, office_email_assigned_by, employee_id, employee_id_assigned_by,
	sent_to_admin, sent_to_admin_at, sent_to_ld, sent_to_ld_at,
	ld_status, ld_status_updated_at,
	sent_to_hr_tag, sent_to_hr_tag_at,
	sent_to_hr_ops_from_hr_tag, sent_to_hr_ops_from_hr_tag_at, sent_to_hr_ops_from_hr_tag_by,
	deployment_email_sent, deployment_email_sent_at, deployment_email_sent_by,
	deployment_record_id, deployment_status,
	created_at, updated_at`

// CandidateRepository handles database operations for candidates.
type CandidateRepository struct {
	db *pgxpool.Pool
}

// NewCandidateRepository creates a new candidate repository.
func NewCandidateRepository(db *pgxpool.Pool) *CandidateRepository {
	return &CandidateRepository{db: db}
}

func scanCandidate(row pgx.Row) (*models.Candidate, error) {
	var c models.Candidate
	err := row.Scan(
		&c.ID, &c.FullName, &c.Gender, &c.FatherName, &c.FirstGraduate, &c.ExperienceLevel,
		&c.BatchLabel, &c.Year, &c.Source, &c.ReferenceName, &c.Native, &c.MobileNumber,
		&c.PersonalEmail, &c.LinkedinURL, &c.College, &c.ResumeFileName,
		&c.SubmittedBy, &c.SubmittedByName, &c.Status,
		&c.OfficeEmail, &c.OfficeEmailAssignedBy, &c.EmployeeID, &c.EmployeeIDAssignedBy,
		&c.SentToAdmin, &c.SentToAdminAt, &c.SentToLD, &c.SentToLDAt,
		&c.LDStatus, &c.LDStatusUpdatedAt,
		&c.SentToHRTag, &c.SentToHRTagAt,
		&c.SentToHROpsFromHRTag, &c.SentToHROpsFromHRTagAt, &c.SentToHROpsFromHRTagBy,
		&c.DeploymentEmailSent, &c.DeploymentEmailSentAt, &c.DeploymentEmailSentBy,
		&c.DeploymentRecordID, &c.DeploymentStatus,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a submitted candidate. The unique indexes on the normalized
// email and mobile number back the uniqueness invariant; a violation is
// translated to the domain conflict error.
func (r *CandidateRepository) Create(ctx context.Context, c *models.Candidate) error {
	query := `
		INSERT INTO candidates (
			full_name, gender, father_name, first_graduate, experience_level,
			batch_label, year, source, reference_name, native, mobile_number,
			personal_email, linkedin_url, college, resume_file_name,
			submitted_by, submitted_by_name, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		c.FullName, c.Gender, c.FatherName, c.FirstGraduate, c.ExperienceLevel,
		c.BatchLabel, c.Year, c.Source, c.ReferenceName, c.Native, c.MobileNumber,
		c.PersonalEmail, c.LinkedinURL, c.College, c.ResumeFileName,
		c.SubmittedBy, c.SubmittedByName, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCandidateAlreadyExists
		}
		return fmt.Errorf("error creating candidate: %w", err)
	}
	return nil
}

// GetByID retrieves a candidate by id.
func (r *CandidateRepository) GetByID(ctx context.Context, id int64) (*models.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`
	c, err := scanCandidate(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrCandidateNotFound
		}
		return nil, fmt.Errorf("error retrieving candidate: %w", err)
	}
	return c, nil
}

// ExistsByEmailOrMobile checks uniqueness of the normalized identifiers,
// optionally excluding one candidate (used on edit).
func (r *CandidateRepository) ExistsByEmailOrMobile(ctx context.Context, email, mobile string, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM candidates
			WHERE (personal_email = $1 OR mobile_number = $2) AND id <> $3
		)
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, email, mobile, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking candidate uniqueness: %w", err)
	}
	return exists, nil
}

// Update persists an edited candidate profile. The status guard is repeated
// here so a concurrent send-to-HR-Ops cannot race an edit past the
// submitted-only rule.
func (r *CandidateRepository) Update(ctx context.Context, c *models.Candidate) error {
	query := `
		UPDATE candidates SET
			full_name = $2, gender = $3, father_name = $4, first_graduate = $5,
			experience_level = $6, batch_label = $7, year = $8, source = $9,
			reference_name = $10, native = $11, mobile_number = $12,
			personal_email = $13, linkedin_url = $14, college = $15,
			resume_file_name = $16, updated_at = NOW()
		WHERE id = $1 AND status = $17
	`
	tag, err := r.db.Exec(ctx, query,
		c.ID, c.FullName, c.Gender, c.FatherName, c.FirstGraduate,
		c.ExperienceLevel, c.BatchLabel, c.Year, c.Source,
		c.ReferenceName, c.Native, c.MobileNumber,
		c.PersonalEmail, c.LinkedinURL, c.College,
		c.ResumeFileName, models.StatusSubmitted,
	)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCandidateAlreadyExists
		}
		return fmt.Errorf("error updating candidate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCandidateNotEditable
	}
	return nil
}

// MarkSent moves the matching submitted candidates to sent. Only documents
// still in submitted status are touched; the modified count is reported so
// the service can distinguish partial matches from a complete miss.
func (r *CandidateRepository) MarkSent(ctx context.Context, ids []int64) (int64, error) {
	query := `
		UPDATE candidates
		SET status = $2, updated_at = NOW()
		WHERE id = ANY($1) AND status = $3
	`
	tag, err := r.db.Exec(ctx, query, ids, models.StatusSent, models.StatusSubmitted)
	if err != nil {
		return 0, fmt.Errorf("error marking candidates sent: %w", err)
	}
	return tag.RowsAffected(), nil
}

// MarkSentToAdmin stamps the admin routing flag on matching sent candidates.
func (r *CandidateRepository) MarkSentToAdmin(ctx context.Context, ids []int64) (int64, error) {
	query := `
		UPDATE candidates
		SET sent_to_admin = TRUE, sent_to_admin_at = NOW(), updated_at = NOW()
		WHERE id = ANY($1) AND status = $2
	`
	tag, err := r.db.Exec(ctx, query, ids, models.StatusSent)
	if err != nil {
		return 0, fmt.Errorf("error marking candidates sent to admin: %w", err)
	}
	return tag.RowsAffected(), nil
}

// MarkSentToAdminAndLD stamps both the admin and L&D routing flags in one
// statement so the two timestamps land atomically.
func (r *CandidateRepository) MarkSentToAdminAndLD(ctx context.Context, ids []int64) (int64, error) {
	query := `
		UPDATE candidates
		SET sent_to_admin = TRUE, sent_to_admin_at = NOW(),
		    sent_to_ld = TRUE, sent_to_ld_at = NOW(), updated_at = NOW()
		WHERE id = ANY($1) AND status = $2
	`
	tag, err := r.db.Exec(ctx, query, ids, models.StatusSent)
	if err != nil {
		return 0, fmt.Errorf("error marking candidates sent to admin and L&D: %w", err)
	}
	return tag.RowsAffected(), nil
}

// AssignOfficeEmail records the office email assignment. Re-assigning
// overwrites in place; the sent-status guard keeps assignments off
// submitted candidates.
func (r *CandidateRepository) AssignOfficeEmail(ctx context.Context, id int64, email, assignedBy string) error {
	query := `
		UPDATE candidates
		SET office_email = $2, office_email_assigned_by = $3, updated_at = NOW()
		WHERE id = $1 AND status = $4
	`
	return r.execAssignment(ctx, query, id, email, assignedBy)
}

// AssignEmployeeID records the employee id assignment, same contract as
// AssignOfficeEmail.
func (r *CandidateRepository) AssignEmployeeID(ctx context.Context, id int64, empID, assignedBy string) error {
	query := `
		UPDATE candidates
		SET employee_id = $2, employee_id_assigned_by = $3, updated_at = NOW()
		WHERE id = $1 AND status = $4
	`
	return r.execAssignment(ctx, query, id, empID, assignedBy)
}

func (r *CandidateRepository) execAssignment(ctx context.Context, query string, id int64, value, assignedBy string) error {
	tag, err := r.db.Exec(ctx, query, id, value, assignedBy, models.StatusSent)
	if err != nil {
		return fmt.Errorf("error recording assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewValidationError("candidate is not in sent status")
	}
	return nil
}

// SetLDStatus records the L&D verdict with a conditional update so the
// write-once rule holds even under concurrent requests.
func (r *CandidateRepository) SetLDStatus(ctx context.Context, id int64, verdict models.LDStatus) error {
	query := `
		UPDATE candidates
		SET ld_status = $2, ld_status_updated_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND sent_to_ld = TRUE AND ld_status IS NULL
	`
	tag, err := r.db.Exec(ctx, query, id, verdict)
	if err != nil {
		return fmt.Errorf("error setting L&D status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrLDStatusAlreadySet
	}
	return nil
}

// MarkSentToHRTag confirms deployment for L&D-selected candidates.
func (r *CandidateRepository) MarkSentToHRTag(ctx context.Context, ids []int64) (int64, error) {
	query := `
		UPDATE candidates
		SET sent_to_hr_tag = TRUE, sent_to_hr_tag_at = NOW(), updated_at = NOW()
		WHERE id = ANY($1) AND status = $2 AND ld_status = $3
	`
	tag, err := r.db.Exec(ctx, query, ids, models.StatusSent, models.LDSelected)
	if err != nil {
		return 0, fmt.Errorf("error marking candidates sent to HR Tag: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ClaimDeploymentEmail flips the at-most-once deployment email flag. The
// conditional update is the compare-and-swap that closes the race between
// two concurrent send attempts: exactly one caller wins.
func (r *CandidateRepository) ClaimDeploymentEmail(ctx context.Context, id int64, sentBy string) error {
	query := `
		UPDATE candidates
		SET deployment_email_sent = TRUE, deployment_email_sent_at = NOW(),
		    deployment_email_sent_by = $2, deployment_status = 'deployed',
		    updated_at = NOW()
		WHERE id = $1 AND deployment_email_sent = FALSE
	`
	tag, err := r.db.Exec(ctx, query, id, sentBy)
	if err != nil {
		return fmt.Errorf("error claiming deployment email: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDeploymentEmailSent
	}
	return nil
}

// SetDeploymentRecord links the candidate to its deployment row after the
// row is created.
func (r *CandidateRepository) SetDeploymentRecord(ctx context.Context, id, deploymentID int64) error {
	query := `UPDATE candidates SET deployment_record_id = $2, updated_at = NOW() WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id, deploymentID); err != nil {
		return fmt.Errorf("error linking deployment record: %w", err)
	}
	return nil
}

// SetDeploymentStatus mirrors the deployment record's status onto the
// candidate row for list views.
func (r *CandidateRepository) SetDeploymentStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE candidates SET deployment_status = $2, updated_at = NOW() WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id, status); err != nil {
		return fmt.Errorf("error updating candidate deployment status: %w", err)
	}
	return nil
}

// CountEligibleForPermanentID counts how many of the requested candidates
// satisfy the permanent-ID preconditions.
func (r *CandidateRepository) CountEligibleForPermanentID(ctx context.Context, ids []int64) (int64, error) {
	query := `
		SELECT COUNT(*) FROM candidates
		WHERE id = ANY($1) AND status = $2 AND sent_to_hr_tag = TRUE AND ld_status = $3
	`
	var count int64
	if err := r.db.QueryRow(ctx, query, ids, models.StatusSent, models.LDSelected).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting eligible candidates: %w", err)
	}
	return count, nil
}

// MarkSentForPermanentID stamps the permanent-ID handover on the candidates.
func (r *CandidateRepository) MarkSentForPermanentID(ctx context.Context, ids []int64, sentBy string) (int64, error) {
	query := `
		UPDATE candidates
		SET sent_to_hr_ops_from_hr_tag = TRUE,
		    sent_to_hr_ops_from_hr_tag_at = NOW(),
		    sent_to_hr_ops_from_hr_tag_by = $2,
		    updated_at = NOW()
		WHERE id = ANY($1)
	`
	tag, err := r.db.Exec(ctx, query, ids, sentBy)
	if err != nil {
		return 0, fmt.Errorf("error marking candidates for permanent ID: %w", err)
	}
	return tag.RowsAffected(), nil
}

// List returns a filtered, paginated candidate page plus the total match
// count.
func (r *CandidateRepository) List(ctx context.Context, q dto.CandidateListQuery, offset uint64, limit int) ([]*models.Candidate, int64, error) {
	where, args := buildCandidateFilter(q)

	countQuery := `SELECT COUNT(*) FROM candidates` + where
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting candidates: %w", err)
	}

	listQuery := fmt.Sprintf(
		`SELECT %s FROM candidates%s ORDER BY created_at DESC OFFSET %d LIMIT %d`,
		candidateColumns, where, offset, limit,
	)
	rows, err := r.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing candidates: %w", err)
	}
	defer rows.Close()

	var candidates []*models.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, 0, err
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return candidates, total, nil
}

func buildCandidateFilter(q dto.CandidateListQuery) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Status == string(models.StatusSubmitted) || q.Status == string(models.StatusSent) {
		conditions = append(conditions, "status = "+arg(q.Status))
	}
	if q.ExperienceLevel != "" && q.ExperienceLevel != "all" {
		conditions = append(conditions, "experience_level = "+arg(q.ExperienceLevel))
	}
	if q.BatchLabel != "" && q.BatchLabel != "all" {
		conditions = append(conditions, "batch_label = "+arg(q.BatchLabel))
	}
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		p := arg(pattern)
		conditions = append(conditions, fmt.Sprintf(
			"(full_name ILIKE %s OR personal_email ILIKE %s OR college ILIKE %s OR linkedin_url ILIKE %s)",
			p, p, p, p))
	}
	if q.FromDate != "" {
		if from, err := time.Parse("2006-01-02", q.FromDate); err == nil {
			conditions = append(conditions, "created_at >= "+arg(from))
		}
	}
	if q.ToDate != "" {
		if to, err := time.Parse("2006-01-02", q.ToDate); err == nil {
			endOfDay := to.Add(24*time.Hour - time.Millisecond)
			conditions = append(conditions, "created_at <= "+arg(endOfDay))
		}
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// ListDeployed returns candidates confirmed by Delivery and selected by L&D.
func (r *CandidateRepository) ListDeployed(ctx context.Context) ([]*models.Candidate, error) {
	query := `
		SELECT ` + candidateColumns + ` FROM candidates
		WHERE status = $1 AND sent_to_hr_tag = TRUE AND ld_status = $2
		ORDER BY sent_to_hr_tag_at DESC
	`
	return r.queryCandidates(ctx, query, models.StatusSent, models.LDSelected)
}

// ListRejected returns candidates the L&D team rejected or dropped, with an
// optional range filter on the verdict date.
func (r *CandidateRepository) ListRejected(ctx context.Context, from, to *time.Time) ([]*models.Candidate, error) {
	query := `
		SELECT ` + candidateColumns + ` FROM candidates
		WHERE sent_to_ld = TRUE AND ld_status = ANY($1)
		  AND ($2::timestamptz IS NULL OR ld_status_updated_at >= $2)
		  AND ($3::timestamptz IS NULL OR ld_status_updated_at <= $3)
		ORDER BY ld_status_updated_at DESC
	`
	return r.queryCandidates(ctx, query, []models.LDStatus{models.LDRejected, models.LDDropped}, from, to)
}

func (r *CandidateRepository) queryCandidates(ctx context.Context, query string, args ...interface{}) ([]*models.Candidate, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying candidates: %w", err)
	}
	defer rows.Close()

	var candidates []*models.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// Stats aggregates the dashboard counters in a single round trip.
func (r *CandidateRepository) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'submitted'),
			COUNT(*) FILTER (WHERE status = 'sent'),
			COUNT(*) FILTER (WHERE status = 'sent' AND office_email_assigned_by IS NOT NULL),
			COUNT(*) FILTER (WHERE status = 'sent' AND employee_id_assigned_by IS NOT NULL),
			COUNT(*) FILTER (WHERE status = 'sent' AND office_email_assigned_by IS NOT NULL AND employee_id_assigned_by IS NOT NULL),
			COUNT(*) FILTER (WHERE status = 'sent' AND sent_to_hr_tag AND ld_status = 'Selected'),
			COUNT(*) FILTER (WHERE sent_to_ld AND ld_status = 'Rejected'),
			COUNT(*) FILTER (WHERE sent_to_ld AND ld_status = 'Dropped'),
			COUNT(*) FILTER (WHERE status = 'sent' AND sent_to_hr_tag AND ld_status = 'Selected' AND sent_to_hr_ops_from_hr_tag),
			COUNT(*) FILTER (WHERE experience_level = 'Fresher'),
			COUNT(*) FILTER (WHERE experience_level = 'Lateral'),
			COUNT(*) FILTER (WHERE source = 'Walk-in'),
			COUNT(*) FILTER (WHERE source = 'Reference'),
			COUNT(*) FILTER (WHERE source = 'Campus')
		FROM candidates
	`
	var s dto.DashboardStats
	err := r.db.QueryRow(ctx, query).Scan(
		&s.Total, &s.Submitted, &s.Sent,
		&s.EmailAssigned, &s.EmpIDAssigned, &s.Completed,
		&s.Deployed, &s.Rejected, &s.Dropped, &s.DeployedSentToHROps,
		&s.FreshersCount, &s.LateralCount,
		&s.WalkinCount, &s.ReferenceCount, &s.CampusCount,
	)
	if err != nil {
		return nil, fmt.Errorf("error aggregating dashboard stats: %w", err)
	}
	s.EmailUnassigned = s.Sent - s.EmailAssigned
	s.EmpIDUnassigned = s.Sent - s.EmpIDAssigned
	return &s, nil
}
