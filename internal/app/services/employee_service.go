package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/karthikr/talentflow/internal/app/models"
	"github.com/karthikr/talentflow/internal/app/models/dto"
	"github.com/karthikr/talentflow/internal/pkg/apperrors"
	"github.com/karthikr/talentflow/internal/pkg/auth"
	"github.com/karthikr/talentflow/internal/pkg/validation"
)

// EmployeeStore is the employee persistence surface the service depends on.
type EmployeeStore interface {
	Create(ctx context.Context, e *models.Employee) error
	GetByEmpID(ctx context.Context, empID string) (*models.Employee, error)
	GetByID(ctx context.Context, id int64) (*models.Employee, error)
	List(ctx context.Context) ([]*models.Employee, error)
	Update(ctx context.Context, e *models.Employee) error
	Delete(ctx context.Context, id int64) error
	GetActiveDeliveryManager(ctx context.Context) (*models.Employee, error)
}

// EmployeeService manages portal users on behalf of the Director portal.
// The single-active-delivery-manager invariant is enforced here and backed
// by a partial unique index in the database.
type EmployeeService struct {
	employees EmployeeStore
	logger    zerolog.Logger
}

// NewEmployeeService creates a new employee service.
func NewEmployeeService(employees EmployeeStore, logger zerolog.Logger) *EmployeeService {
	return &EmployeeService{employees: employees, logger: logger}
}

// Create provisions a portal user.
func (s *EmployeeService) Create(ctx context.Context, req dto.CreateEmployeeRequest) (*models.Employee, error) {
	team := models.Team(req.Team)
	if !team.IsValid() {
		return nil, apperrors.NewValidationError("unknown team")
	}
	email := validation.NormalizeEmail(req.Email)
	if !validation.IsValidEmail(email) {
		return nil, apperrors.NewValidationError("email is not a valid address")
	}
	mobile := validation.NormalizeMobile(req.MobileNumber)
	if req.MobileNumber != "" && !validation.IsValidMobile(mobile) {
		return nil, apperrors.NewValidationError("mobile number must contain exactly 10 digits")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	employee := &models.Employee{
		EmpID:             strings.TrimSpace(req.EmpID),
		Password:          hash,
		Name:              strings.TrimSpace(req.Name),
		Team:              team,
		Email:             email,
		IsActive:          true,
		MobileNumber:      mobile,
		Designation:       strings.TrimSpace(req.Designation),
		IsDeliveryManager: req.IsDeliveryManager,
	}
	if req.ManagerEmail != "" {
		managerEmail := validation.NormalizeEmail(req.ManagerEmail)
		employee.ManagerEmail = &managerEmail
	}
	if req.ManagerEmailPassword != "" {
		pw := req.ManagerEmailPassword
		employee.ManagerEmailPassword = &pw
	}

	if req.IsDeliveryManager {
		if err := s.checkDeliveryManager(ctx, employee, 0); err != nil {
			return nil, err
		}
		employee.CanSendEmail = true
	}

	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("empId", employee.EmpID).
		Str("team", string(employee.Team)).
		Bool("isDeliveryManager", employee.IsDeliveryManager).
		Msg("Employee created")
	return employee, nil
}

// checkDeliveryManager enforces the atomic preconditions of the
// delivery-manager capability: Delivery team, complete SMTP identity, and no
// other active holder.
func (s *EmployeeService) checkDeliveryManager(ctx context.Context, e *models.Employee, selfID int64) error {
	if e.Team != models.TeamDelivery {
		return apperrors.NewValidationError("only Delivery team members can be delivery managers")
	}
	if !e.ManagerSetupComplete() {
		return &apperrors.CustomError{
			Err:     apperrors.ErrManagerSetupIncomplete,
			Message: "designation, mobile number, manager email and app password are all required",
		}
	}
	current, err := s.employees.GetActiveDeliveryManager(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoDeliveryManager) {
			return nil
		}
		return err
	}
	if current.ID != selfID {
		return &apperrors.CustomError{
			Err:     apperrors.ErrDeliveryManagerExists,
			Message: "an active delivery manager already exists: " + current.EmpID,
		}
	}
	return nil
}

// Update applies a partial update to an employee. The email capability is
// recomputed so it always tracks the manager flag and the active state.
func (s *EmployeeService) Update(ctx context.Context, id int64, req dto.UpdateEmployeeRequest) (*models.Employee, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		employee.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := validation.NormalizeEmail(*req.Email)
		if !validation.IsValidEmail(email) {
			return nil, apperrors.NewValidationError("email is not a valid address")
		}
		employee.Email = email
	}
	if req.MobileNumber != nil {
		mobile := validation.NormalizeMobile(*req.MobileNumber)
		if *req.MobileNumber != "" && !validation.IsValidMobile(mobile) {
			return nil, apperrors.NewValidationError("mobile number must contain exactly 10 digits")
		}
		employee.MobileNumber = mobile
	}
	if req.Designation != nil {
		employee.Designation = strings.TrimSpace(*req.Designation)
	}
	if req.ManagerEmail != nil {
		managerEmail := validation.NormalizeEmail(*req.ManagerEmail)
		employee.ManagerEmail = &managerEmail
	}
	if req.ManagerEmailPassword != nil {
		employee.ManagerEmailPassword = req.ManagerEmailPassword
	}
	if req.IsDeliveryManager != nil {
		employee.IsDeliveryManager = *req.IsDeliveryManager
	}

	if employee.IsDeliveryManager {
		if err := s.checkDeliveryManager(ctx, employee, employee.ID); err != nil {
			return nil, err
		}
	}
	employee.CanSendEmail = employee.IsDeliveryManager && employee.IsActive

	if err := s.employees.Update(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// SetActive toggles an account. Deactivation revokes the email capability;
// reactivation restores it when the manager flag is still set.
func (s *EmployeeService) SetActive(ctx context.Context, id int64, active bool) (*models.Employee, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	employee.IsActive = active
	employee.CanSendEmail = employee.IsDeliveryManager && active
	if err := s.employees.Update(ctx, employee); err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("empId", employee.EmpID).
		Bool("active", active).
		Msg("Employee active state changed")
	return employee, nil
}

// GetByID retrieves an employee.
func (s *EmployeeService) GetByID(ctx context.Context, id int64) (*models.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

// List returns all employees.
func (s *EmployeeService) List(ctx context.Context) ([]*models.Employee, error) {
	return s.employees.List(ctx)
}

// GetActiveDeliveryManager returns the current deployment email sender.
func (s *EmployeeService) GetActiveDeliveryManager(ctx context.Context) (*models.Employee, error) {
	return s.employees.GetActiveDeliveryManager(ctx)
}

// Delete removes an employee.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	return s.employees.Delete(ctx, id)
}
