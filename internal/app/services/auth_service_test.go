package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karthikr/talentflow/internal/app/models"
	"github.com/karthikr/talentflow/internal/app/models/dto"
	"github.com/karthikr/talentflow/internal/pkg/apperrors"
	"github.com/karthikr/talentflow/internal/pkg/auth"
)

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "talentflow-test",
	})
}

func portalUser(t *testing.T, password string) *models.Employee {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &models.Employee{
		ID: 1, EmpID: "HRT001", Name: "Tagger",
		Team: models.TeamHRTag, Email: "tagger@corp.com",
		Password: hash, IsActive: true,
	}
}

func TestLoginSuccess(t *testing.T) {
	user := portalUser(t, "Secret123!")
	store := &mockEmployeeStore{
		getByEmpID: func(ctx context.Context, empID string) (*models.Employee, error) {
			return user, nil
		},
	}
	svc := NewAuthService(store, testJWTService(), zerolog.Nop())

	res, err := svc.Login(context.Background(), dto.LoginRequest{EmpID: "HRT001", Password: "Secret123!"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, 3600, res.ExpiresIn)
	assert.Equal(t, "HRT001", res.User.EmpID)
	assert.Equal(t, models.TeamHRTag, res.User.Team)

	claims, err := testJWTService().ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "HRT001", claims.EmpID)
	assert.Equal(t, string(models.TeamHRTag), claims.Team)
}

func TestLoginWrongPassword(t *testing.T) {
	user := portalUser(t, "Secret123!")
	store := &mockEmployeeStore{
		getByEmpID: func(ctx context.Context, empID string) (*models.Employee, error) {
			return user, nil
		},
	}
	svc := NewAuthService(store, testJWTService(), zerolog.Nop())

	_, err := svc.Login(context.Background(), dto.LoginRequest{EmpID: "HRT001", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmployee(t *testing.T) {
	store := &mockEmployeeStore{
		getByEmpID: func(ctx context.Context, empID string) (*models.Employee, error) {
			return nil, apperrors.ErrEmployeeNotFound
		},
	}
	svc := NewAuthService(store, testJWTService(), zerolog.Nop())

	// Unknown accounts and wrong passwords are indistinguishable.
	_, err := svc.Login(context.Background(), dto.LoginRequest{EmpID: "NOPE", Password: "x"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	user := portalUser(t, "Secret123!")
	user.IsActive = false
	store := &mockEmployeeStore{
		getByEmpID: func(ctx context.Context, empID string) (*models.Employee, error) {
			return user, nil
		},
	}
	svc := NewAuthService(store, testJWTService(), zerolog.Nop())

	_, err := svc.Login(context.Background(), dto.LoginRequest{EmpID: "HRT001", Password: "Secret123!"})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}
