package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karthikr/talentflow/internal/app/models"
	"github.com/karthikr/talentflow/internal/app/models/dto"
	"github.com/karthikr/talentflow/internal/pkg/apperrors"
)

type mockEmployeeStore struct {
	create                   func(ctx context.Context, e *models.Employee) error
	getByEmpID               func(ctx context.Context, empID string) (*models.Employee, error)
	getByID                  func(ctx context.Context, id int64) (*models.Employee, error)
	update                   func(ctx context.Context, e *models.Employee) error
	deleteFn                 func(ctx context.Context, id int64) error
	getActiveDeliveryManager func(ctx context.Context) (*models.Employee, error)
}

func (m *mockEmployeeStore) Create(ctx context.Context, e *models.Employee) error {
	return m.create(ctx, e)
}
func (m *mockEmployeeStore) GetByEmpID(ctx context.Context, empID string) (*models.Employee, error) {
	return m.getByEmpID(ctx, empID)
}
func (m *mockEmployeeStore) GetByID(ctx context.Context, id int64) (*models.Employee, error) {
	return m.getByID(ctx, id)
}
func (m *mockEmployeeStore) List(ctx context.Context) ([]*models.Employee, error) {
	return nil, nil
}
func (m *mockEmployeeStore) Update(ctx context.Context, e *models.Employee) error {
	return m.update(ctx, e)
}
func (m *mockEmployeeStore) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}
func (m *mockEmployeeStore) GetActiveDeliveryManager(ctx context.Context) (*models.Employee, error) {
	return m.getActiveDeliveryManager(ctx)
}

func createManagerRequest() dto.CreateEmployeeRequest {
	return dto.CreateEmployeeRequest{
		EmpID:                "DEL010",
		Password:             "Secret123!",
		Name:                 "New Manager",
		Team:                 string(models.TeamDelivery),
		Email:                "new.manager@corp.com",
		MobileNumber:         "9876543210",
		Designation:          "Delivery Head",
		IsDeliveryManager:    true,
		ManagerEmail:         "New.Manager@Corp.com",
		ManagerEmailPassword: "app-password",
	}
}

func TestCreateEmployeeGrantsCapabilityToManager(t *testing.T) {
	var created *models.Employee
	store := &mockEmployeeStore{
		create: func(ctx context.Context, e *models.Employee) error {
			created = e
			return nil
		},
		getActiveDeliveryManager: func(ctx context.Context) (*models.Employee, error) {
			return nil, apperrors.ErrNoDeliveryManager
		},
	}
	svc := NewEmployeeService(store, zerolog.Nop())

	_, err := svc.Create(context.Background(), createManagerRequest())
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.True(t, created.CanSendEmail)
	assert.True(t, created.IsActive)
	require.NotNil(t, created.ManagerEmail)
	assert.Equal(t, "new.manager@corp.com", *created.ManagerEmail)
	assert.NotEqual(t, "Secret123!", created.Password) // stored hashed
}

func TestCreateEmployeeRejectsSecondManager(t *testing.T) {
	store := &mockEmployeeStore{
		getActiveDeliveryManager: func(ctx context.Context) (*models.Employee, error) {
			return &models.Employee{ID: 3, EmpID: "DEL001"}, nil
		},
	}
	svc := NewEmployeeService(store, zerolog.Nop())

	_, err := svc.Create(context.Background(), createManagerRequest())
	assert.ErrorIs(t, err, apperrors.ErrDeliveryManagerExists)
}

func TestCreateEmployeeManagerOutsideDelivery(t *testing.T) {
	svc := NewEmployeeService(&mockEmployeeStore{}, zerolog.Nop())

	req := createManagerRequest()
	req.Team = string(models.TeamHROps)
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateEmployeeManagerWithoutSMTPIdentity(t *testing.T) {
	svc := NewEmployeeService(&mockEmployeeStore{}, zerolog.Nop())

	req := createManagerRequest()
	req.ManagerEmailPassword = ""
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrManagerSetupIncomplete)
}

func TestCreateEmployeeUnknownTeam(t *testing.T) {
	svc := NewEmployeeService(&mockEmployeeStore{}, zerolog.Nop())

	req := createManagerRequest()
	req.Team = "Finance"
	req.IsDeliveryManager = false
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateRecomputesCapability(t *testing.T) {
	email := "m@corp.com"
	password := "pw"
	existing := &models.Employee{
		ID: 5, EmpID: "DEL001", Team: models.TeamDelivery,
		Email: "del@corp.com", IsActive: true,
		MobileNumber: "9876543210", Designation: "Head",
		IsDeliveryManager: true, CanSendEmail: true,
		ManagerEmail: &email, ManagerEmailPassword: &password,
	}
	var saved *models.Employee
	store := &mockEmployeeStore{
		getByID: func(ctx context.Context, id int64) (*models.Employee, error) { return existing, nil },
		update: func(ctx context.Context, e *models.Employee) error {
			saved = e
			return nil
		},
	}
	svc := NewEmployeeService(store, zerolog.Nop())

	// Dropping the manager flag revokes the capability.
	off := false
	_, err := svc.Update(context.Background(), 5, dto.UpdateEmployeeRequest{IsDeliveryManager: &off})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.False(t, saved.CanSendEmail)
}

func TestSetActiveTogglesCapability(t *testing.T) {
	existing := &models.Employee{
		ID: 5, EmpID: "DEL001", Team: models.TeamDelivery,
		IsActive: true, IsDeliveryManager: true, CanSendEmail: true,
	}
	store := &mockEmployeeStore{
		getByID: func(ctx context.Context, id int64) (*models.Employee, error) { return existing, nil },
		update:  func(ctx context.Context, e *models.Employee) error { return nil },
	}
	svc := NewEmployeeService(store, zerolog.Nop())

	got, err := svc.SetActive(context.Background(), 5, false)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.False(t, got.CanSendEmail)

	// Reactivation restores the capability while the flag is still set.
	got, err = svc.SetActive(context.Background(), 5, true)
	require.NoError(t, err)
	assert.True(t, got.CanSendEmail)
}
