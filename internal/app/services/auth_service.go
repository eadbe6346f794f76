package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/karthikr/talentflow/internal/app/models/dto"
	"github.com/karthikr/talentflow/internal/pkg/apperrors"
	"github.com/karthikr/talentflow/internal/pkg/auth"
)

// AuthService authenticates portal users and issues access tokens.
type AuthService struct {
	employees EmployeeStore
	jwt       *auth.JWTService
	logger    zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(employees EmployeeStore, jwt *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{employees: employees, jwt: jwt, logger: logger}
}

// Login verifies credentials and returns a signed token. An unknown employee
// id and a wrong password produce the same error so the response does not
// reveal which accounts exist.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	employee, err := s.employees.GetByEmpID(ctx, req.EmpID)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmployeeNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.VerifyPassword(employee.Password, req.Password); err != nil {
		s.logger.Warn().Str("empId", req.EmpID).Msg("Failed login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}
	if !employee.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	token, expiresIn, err := s.jwt.GenerateToken(employee)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("empId", employee.EmpID).
		Str("team", string(employee.Team)).
		Msg("Employee logged in")

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		User:      dto.FromEmployee(employee),
	}, nil
}
