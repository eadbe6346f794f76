package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/karthikr/talentflow/internal/app/models"
	"github.com/karthikr/talentflow/internal/pkg/apperrors"
	"github.com/karthikr/talentflow/internal/pkg/dberrors"
)

const employeeColumns = `
	id, emp_id, password, name, team, email, is_active,
	mobile_number, designation, can_send_email, is_delivery_manager,
	manager_email, manager_email_password, created_at, updated_at`

// EmployeeRepository handles database operations for portal users.
type EmployeeRepository struct {
	db *pgxpool.Pool
}

// NewEmployeeRepository creates a new employee repository.
func NewEmployeeRepository(db *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func scanEmployee(row pgx.Row) (*models.Employee, error) {
	var e models.Employee
	err := row.Scan(
		&e.ID, &e.EmpID, &e.Password, &e.Name, &e.Team, &e.Email, &e.IsActive,
		&e.MobileNumber, &e.Designation, &e.CanSendEmail, &e.IsDeliveryManager,
		&e.ManagerEmail, &e.ManagerEmailPassword, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new employee.
func (r *EmployeeRepository) Create(ctx context.Context, e *models.Employee) error {
	query := `
		INSERT INTO employees (
			emp_id, password, name, team, email, is_active,
			mobile_number, designation, can_send_email, is_delivery_manager,
			manager_email, manager_email_password
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		e.EmpID, e.Password, e.Name, e.Team, e.Email, e.IsActive,
		e.MobileNumber, e.Designation, e.CanSendEmail, e.IsDeliveryManager,
		e.ManagerEmail, e.ManagerEmailPassword,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "employees_single_delivery_manager") {
			return apperrors.ErrDeliveryManagerExists
		}
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmployeeAlreadyExists
		}
		return fmt.Errorf("error creating employee: %w", err)
	}
	return nil
}

// GetByEmpID retrieves an employee by their login identifier.
func (r *EmployeeRepository) GetByEmpID(ctx context.Context, empID string) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE emp_id = $1`
	e, err := scanEmployee(r.db.QueryRow(ctx, query, empID))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("error retrieving employee: %w", err)
	}
	return e, nil
}

// GetByID retrieves an employee by database id.
func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	e, err := scanEmployee(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("error retrieving employee: %w", err)
	}
	return e, nil
}

// List returns all employees ordered by creation time.
func (r *EmployeeRepository) List(ctx context.Context) ([]*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing employees: %w", err)
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// Update persists changes to an employee.
func (r *EmployeeRepository) Update(ctx context.Context, e *models.Employee) error {
	query := `
		UPDATE employees SET
			password = $2, name = $3, team = $4, email = $5, is_active = $6,
			mobile_number = $7, designation = $8, can_send_email = $9,
			is_delivery_manager = $10, manager_email = $11,
			manager_email_password = $12, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		e.ID, e.Password, e.Name, e.Team, e.Email, e.IsActive,
		e.MobileNumber, e.Designation, e.CanSendEmail,
		e.IsDeliveryManager, e.ManagerEmail, e.ManagerEmailPassword,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "employees_single_delivery_manager") {
			return apperrors.ErrDeliveryManagerExists
		}
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmployeeAlreadyExists
		}
		return fmt.Errorf("error updating employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEmployeeNotFound
	}
	return nil
}

// Delete removes an employee.
func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEmployeeNotFound
	}
	return nil
}

// GetActiveDeliveryManager returns the single active delivery manager. The
// partial unique index on the table guarantees at most one row matches.
func (r *EmployeeRepository) GetActiveDeliveryManager(ctx context.Context) (*models.Employee, error) {
	query := `
		SELECT ` + employeeColumns + ` FROM employees
		WHERE team = $1 AND is_delivery_manager = TRUE AND is_active = TRUE
	`
	e, err := scanEmployee(r.db.QueryRow(ctx, query, models.TeamDelivery))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrNoDeliveryManager
		}
		return nil, fmt.Errorf("error retrieving delivery manager: %w", err)
	}
	return e, nil
}
