package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karthikr/talentflow/internal/app/lifecycle"
	"github.com/karthikr/talentflow/internal/app/models"
	"github.com/karthikr/talentflow/internal/app/models/dto"
	"github.com/karthikr/talentflow/internal/pkg/apperrors"
	"github.com/karthikr/talentflow/internal/pkg/notify"
)

type mockDeploymentStore struct {
	create                 func(ctx context.Context, d *models.Deployment) (*models.Deployment, error)
	getByID                func(ctx context.Context, id int64) (*models.Deployment, error)
	getByCandidateID       func(ctx context.Context, candidateID int64) (*models.Deployment, error)
	updateEmailAudit       func(ctx context.Context, id int64, status models.EmailStatus, successful, failed, total int) error
	recordInternalTransfer func(ctx context.Context, d *models.Deployment) error
	exit                   func(ctx context.Context, id int64, exitDate time.Time, reason string) error
}

func (m *mockDeploymentStore) Create(ctx context.Context, d *models.Deployment) (*models.Deployment, error) {
	return m.create(ctx, d)
}
func (m *mockDeploymentStore) GetByID(ctx context.Context, id int64) (*models.Deployment, error) {
	return m.getByID(ctx, id)
}
func (m *mockDeploymentStore) GetByCandidateID(ctx context.Context, candidateID int64) (*models.Deployment, error) {
	return m.getByCandidateID(ctx, candidateID)
}
func (m *mockDeploymentStore) UpdateEmailAudit(ctx context.Context, id int64, status models.EmailStatus, successful, failed, total int) error {
	return m.updateEmailAudit(ctx, id, status, successful, failed, total)
}
func (m *mockDeploymentStore) RecordInternalTransfer(ctx context.Context, d *models.Deployment) error {
	return m.recordInternalTransfer(ctx, d)
}
func (m *mockDeploymentStore) Exit(ctx context.Context, id int64, exitDate time.Time, reason string) error {
	return m.exit(ctx, id, exitDate, reason)
}
func (m *mockDeploymentStore) List(ctx context.Context, status *models.DeploymentStatus) ([]*models.Deployment, error) {
	return nil, nil
}

type mockDeployCandidates struct {
	getByID             func(ctx context.Context, id int64) (*models.Candidate, error)
	claim               func(ctx context.Context, id int64, sentBy string) error
	setDeploymentRecord func(ctx context.Context, id, deploymentID int64) error
	setDeploymentStatus func(ctx context.Context, id int64, status string) error
}

func (m *mockDeployCandidates) GetByID(ctx context.Context, id int64) (*models.Candidate, error) {
	return m.getByID(ctx, id)
}
func (m *mockDeployCandidates) ClaimDeploymentEmail(ctx context.Context, id int64, sentBy string) error {
	return m.claim(ctx, id, sentBy)
}
func (m *mockDeployCandidates) SetDeploymentRecord(ctx context.Context, id, deploymentID int64) error {
	return m.setDeploymentRecord(ctx, id, deploymentID)
}
func (m *mockDeployCandidates) SetDeploymentStatus(ctx context.Context, id int64, status string) error {
	return m.setDeploymentStatus(ctx, id, status)
}

type mockEmployeeLookup struct {
	getByEmpID func(ctx context.Context, empID string) (*models.Employee, error)
}

func (m *mockEmployeeLookup) GetByEmpID(ctx context.Context, empID string) (*models.Employee, error) {
	return m.getByEmpID(ctx, empID)
}

func deliveryManager() *models.Employee {
	email := "manager@corp.com"
	password := "app-password"
	return &models.Employee{
		ID:                   7,
		EmpID:                "DEL001",
		Name:                 "Delivery Manager",
		Team:                 models.TeamDelivery,
		IsActive:             true,
		CanSendEmail:         true,
		IsDeliveryManager:    true,
		MobileNumber:         "9876543210",
		Designation:          "Delivery Head",
		ManagerEmail:         &email,
		ManagerEmailPassword: &password,
	}
}

func managerActor() lifecycle.Actor {
	return lifecycle.Actor{EmpID: "DEL001", Name: "Delivery Manager", Team: models.TeamDelivery, CanSendEmail: true}
}

func deployRequest() dto.DeploymentEmailRequest {
	return dto.DeploymentEmailRequest{
		CandidateID:     1,
		RecipientEmails: []string{"client@x.com", " ops@x.com "},
		CcEmails:        []string{"hr@x.com"},
		Form: dto.DeploymentForm{
			Role:           "Engineer",
			ToTeam:         "Payments",
			Client:         "Acme",
			ReportingTo:    "Priya",
			DeploymentDate: "2025-06-15",
		},
	}
}

func newDeploymentService(deployments *mockDeploymentStore, candidates *mockDeployCandidates, employees *mockEmployeeLookup, dispatcher notify.Dispatcher) *DeploymentService {
	return NewDeploymentService(deployments, candidates, employees, lifecycle.NewEngine(), dispatcher, zerolog.Nop())
}

func TestSendDeploymentEmailSuccess(t *testing.T) {
	officeEmail := "anita@corp.com"
	claimed := false
	var linkedRecord int64

	candidates := &mockDeployCandidates{
		getByID: func(ctx context.Context, id int64) (*models.Candidate, error) {
			return &models.Candidate{
				ID: id, FullName: "Anita Kumari", Status: models.StatusSent,
				MobileNumber: "9876543210", OfficeEmail: &officeEmail,
			}, nil
		},
		claim: func(ctx context.Context, id int64, sentBy string) error {
			claimed = true
			return nil
		},
		setDeploymentRecord: func(ctx context.Context, id, deploymentID int64) error {
			linkedRecord = deploymentID
			return nil
		},
	}
	deployments := &mockDeploymentStore{
		create: func(ctx context.Context, d *models.Deployment) (*models.Deployment, error) {
			d.ID = 99
			return d, nil
		},
	}
	employees := &mockEmployeeLookup{
		getByEmpID: func(ctx context.Context, empID string) (*models.Employee, error) {
			return deliveryManager(), nil
		},
	}
	dispatcher := &stubDispatcher{}
	svc := newDeploymentService(deployments, candidates, employees, dispatcher)

	res, err := svc.SendDeploymentEmail(context.Background(), deployRequest(), managerActor())
	require.NoError(t, err)
	assert.Equal(t, int64(99), res.RecordID)
	assert.True(t, claimed)
	assert.Equal(t, int64(99), linkedRecord)

	require.Len(t, dispatcher.messages, 1)
	msg := dispatcher.messages[0]
	assert.Equal(t, []string{"client@x.com", "ops@x.com"}, msg.To)
	assert.Equal(t, "manager@corp.com", msg.From.Email)
	assert.Contains(t, msg.Subject, "Anita Kumari")
}

func TestSendDeploymentEmailDuplicate(t *testing.T) {
	candidates := &mockDeployCandidates{
		getByID: func(ctx context.Context, id int64) (*models.Candidate, error) {
			return &models.Candidate{ID: id, Status: models.StatusSent, DeploymentEmailSent: true}, nil
		},
	}
	employees := &mockEmployeeLookup{
		getByEmpID: func(ctx context.Context, empID string) (*models.Employee, error) {
			return deliveryManager(), nil
		},
	}
	svc := newDeploymentService(&mockDeploymentStore{}, candidates, employees, &stubDispatcher{})

	_, err := svc.SendDeploymentEmail(context.Background(), deployRequest(), managerActor())
	assert.ErrorIs(t, err, apperrors.ErrDeploymentEmailSent)
}

func TestSendDeploymentEmailClaimLost(t *testing.T) {
	createCalled := false
	candidates := &mockDeployCandidates{
		getByID: func(ctx context.Context, id int64) (*models.Candidate, error) {
			return &models.Candidate{ID: id, Status: models.StatusSent}, nil
		},
		claim: func(ctx context.Context, id int64, sentBy string) error {
			// Another request committed the claim between the read and here.
			return &apperrors.CustomError{Err: apperrors.ErrDeploymentEmailSent}
		},
	}
	deployments := &mockDeploymentStore{
		create: func(ctx context.Context, d *models.Deployment) (*models.Deployment, error) {
			createCalled = true
			return d, nil
		},
	}
	employees := &mockEmployeeLookup{
		getByEmpID: func(ctx context.Context, empID string) (*models.Employee, error) {
			return deliveryManager(), nil
		},
	}
	dispatcher := &stubDispatcher{}
	svc := newDeploymentService(deployments, candidates, employees, dispatcher)

	_, err := svc.SendDeploymentEmail(context.Background(), deployRequest(), managerActor())
	assert.ErrorIs(t, err, apperrors.ErrDeploymentEmailSent)
	assert.False(t, createCalled)
	assert.Empty(t, dispatcher.messages)
}

func TestSendDeploymentEmailIncompleteManagerSetup(t *testing.T) {
	sender := deliveryManager()
	sender.ManagerEmailPassword = nil

	candidates := &mockDeployCandidates{
		getByID: func(ctx context.Context, id int64) (*models.Candidate, error) {
			return &models.Candidate{ID: id, Status: models.StatusSent}, nil
		},
	}
	employees := &mockEmployeeLookup{
		getByEmpID: func(ctx context.Context, empID string) (*models.Employee, error) {
			return sender, nil
		},
	}
	svc := newDeploymentService(&mockDeploymentStore{}, candidates, employees, &stubDispatcher{})

	_, err := svc.SendDeploymentEmail(context.Background(), deployRequest(), managerActor())
	assert.ErrorIs(t, err, apperrors.ErrManagerSetupIncomplete)
}

func TestSendDeploymentEmailRequiresCapability(t *testing.T) {
	svc := newDeploymentService(&mockDeploymentStore{}, &mockDeployCandidates{}, &mockEmployeeLookup{}, &stubDispatcher{})

	actor := lifecycle.Actor{EmpID: "DEL002", Team: models.TeamDelivery}
	_, err := svc.SendDeploymentEmail(context.Background(), deployRequest(), actor)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestAuditDeliveryRecordsPartialSend(t *testing.T) {
	audited := make(chan models.EmailStatus, 1)
	deployments := &mockDeploymentStore{
		updateEmailAudit: func(ctx context.Context, id int64, status models.EmailStatus, successful, failed, total int) error {
			audited <- status
			return nil
		},
	}
	svc := newDeploymentService(deployments, &mockDeployCandidates{}, &mockEmployeeLookup{}, &stubDispatcher{})

	result := make(chan notify.Delivery, 1)
	result <- notify.Delivery{Successful: 1, Failed: 1, Total: 2}
	close(result)
	svc.auditDelivery(99, result)

	select {
	case status := <-audited:
		assert.Equal(t, models.EmailStatusPartiallySent, status)
	case <-time.After(2 * time.Second):
		t.Fatal("audit was never written")
	}
}

func TestSendInternalTransferEmail(t *testing.T) {
	var recorded *models.Deployment
	deployments := &mockDeploymentStore{
		getByID: func(ctx context.Context, id int64) (*models.Deployment, error) {
			return &models.Deployment{
				ID: id, CandidateID: 1, CandidateName: "Anita Kumari",
				ToTeam: "Payments", Status: models.DeploymentActive,
			}, nil
		},
		recordInternalTransfer: func(ctx context.Context, d *models.Deployment) error {
			recorded = d
			return nil
		},
	}
	employees := &mockEmployeeLookup{
		getByEmpID: func(ctx context.Context, empID string) (*models.Employee, error) {
			return deliveryManager(), nil
		},
	}
	dispatcher := &stubDispatcher{}
	svc := newDeploymentService(deployments, &mockDeployCandidates{}, employees, dispatcher)

	req := dto.InternalTransferRequest{
		DeploymentID:    5,
		RecipientEmails: []string{"lead@x.com"},
		Form:            dto.DeploymentForm{ToTeam: "Lending", Client: "NewBank"},
	}
	res, err := svc.SendInternalTransferEmail(context.Background(), req, managerActor())
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.RecordID)

	require.NotNil(t, recorded)
	assert.Equal(t, "Lending", recorded.ToTeam)
	assert.Equal(t, "NewBank", recorded.Client)
	assert.NotNil(t, recorded.InternalTransferDate)
	require.Len(t, dispatcher.messages, 1)
}

func TestExitValidatesReason(t *testing.T) {
	svc := newDeploymentService(&mockDeploymentStore{}, &mockDeployCandidates{}, &mockEmployeeLookup{}, &stubDispatcher{})

	actor := lifecycle.Actor{EmpID: "HRO001", Team: models.TeamHROps}
	err := svc.Exit(context.Background(), 5, "no", actor)
	assert.ErrorIs(t, err, apperrors.ErrExitReasonTooShort)
}

func TestExitMirrorsCandidateStatus(t *testing.T) {
	var mirrored string
	deployments := &mockDeploymentStore{
		getByID: func(ctx context.Context, id int64) (*models.Deployment, error) {
			return &models.Deployment{ID: id, CandidateID: 11, Status: models.DeploymentActive}, nil
		},
		exit: func(ctx context.Context, id int64, exitDate time.Time, reason string) error {
			return nil
		},
	}
	candidates := &mockDeployCandidates{
		setDeploymentStatus: func(ctx context.Context, id int64, status string) error {
			mirrored = status
			return nil
		},
	}
	svc := newDeploymentService(deployments, candidates, &mockEmployeeLookup{}, &stubDispatcher{})

	actor := lifecycle.Actor{EmpID: "HRO001", Team: models.TeamHROps}
	require.NoError(t, svc.Exit(context.Background(), 5, "resigned for personal reasons", actor))
	assert.Equal(t, "exited", mirrored)
}

func TestExitForbiddenForDelivery(t *testing.T) {
	svc := newDeploymentService(&mockDeploymentStore{}, &mockDeployCandidates{}, &mockEmployeeLookup{}, &stubDispatcher{})

	err := svc.Exit(context.Background(), 5, "resigned for personal reasons", managerActor())
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
