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

// mockCandidateStore implements CandidateStore with overridable functions.
type mockCandidateStore struct {
	create                func(ctx context.Context, c *models.Candidate) error
	getByID               func(ctx context.Context, id int64) (*models.Candidate, error)
	existsByEmailOrMobile func(ctx context.Context, email, mobile string, excludeID int64) (bool, error)
	update                func(ctx context.Context, c *models.Candidate) error
	markSent              func(ctx context.Context, ids []int64) (int64, error)
	markSentToAdmin       func(ctx context.Context, ids []int64) (int64, error)
	markSentToAdminAndLD  func(ctx context.Context, ids []int64) (int64, error)
	assignOfficeEmail     func(ctx context.Context, id int64, email, assignedBy string) error
	assignEmployeeID      func(ctx context.Context, id int64, empID, assignedBy string) error
	setLDStatus           func(ctx context.Context, id int64, verdict models.LDStatus) error
	markSentToHRTag       func(ctx context.Context, ids []int64) (int64, error)
	countEligible         func(ctx context.Context, ids []int64) (int64, error)
	markForPermanentID    func(ctx context.Context, ids []int64, sentBy string) (int64, error)
}

func (m *mockCandidateStore) Create(ctx context.Context, c *models.Candidate) error {
	return m.create(ctx, c)
}
func (m *mockCandidateStore) GetByID(ctx context.Context, id int64) (*models.Candidate, error) {
	return m.getByID(ctx, id)
}
func (m *mockCandidateStore) ExistsByEmailOrMobile(ctx context.Context, email, mobile string, excludeID int64) (bool, error) {
	return m.existsByEmailOrMobile(ctx, email, mobile, excludeID)
}
func (m *mockCandidateStore) Update(ctx context.Context, c *models.Candidate) error {
	return m.update(ctx, c)
}
func (m *mockCandidateStore) MarkSent(ctx context.Context, ids []int64) (int64, error) {
	return m.markSent(ctx, ids)
}
func (m *mockCandidateStore) MarkSentToAdmin(ctx context.Context, ids []int64) (int64, error) {
	return m.markSentToAdmin(ctx, ids)
}
func (m *mockCandidateStore) MarkSentToAdminAndLD(ctx context.Context, ids []int64) (int64, error) {
	return m.markSentToAdminAndLD(ctx, ids)
}
func (m *mockCandidateStore) AssignOfficeEmail(ctx context.Context, id int64, email, assignedBy string) error {
	return m.assignOfficeEmail(ctx, id, email, assignedBy)
}
func (m *mockCandidateStore) AssignEmployeeID(ctx context.Context, id int64, empID, assignedBy string) error {
	return m.assignEmployeeID(ctx, id, empID, assignedBy)
}
func (m *mockCandidateStore) SetLDStatus(ctx context.Context, id int64, verdict models.LDStatus) error {
	return m.setLDStatus(ctx, id, verdict)
}
func (m *mockCandidateStore) MarkSentToHRTag(ctx context.Context, ids []int64) (int64, error) {
	return m.markSentToHRTag(ctx, ids)
}
func (m *mockCandidateStore) CountEligibleForPermanentID(ctx context.Context, ids []int64) (int64, error) {
	return m.countEligible(ctx, ids)
}
func (m *mockCandidateStore) MarkSentForPermanentID(ctx context.Context, ids []int64, sentBy string) (int64, error) {
	return m.markForPermanentID(ctx, ids, sentBy)
}
func (m *mockCandidateStore) List(ctx context.Context, q dto.CandidateListQuery, offset uint64, limit int) ([]*models.Candidate, int64, error) {
	return nil, 0, nil
}
func (m *mockCandidateStore) ListDeployed(ctx context.Context) ([]*models.Candidate, error) {
	return nil, nil
}
func (m *mockCandidateStore) ListRejected(ctx context.Context, from, to *time.Time) ([]*models.Candidate, error) {
	return nil, nil
}
func (m *mockCandidateStore) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	return nil, nil
}

// stubDispatcher records dispatched messages. When dropAll is set every
// message reports an immediate queue-full drop, mirroring the real
// dispatcher's behavior on a full buffer.
type stubDispatcher struct {
	messages []notify.Message
	dropAll  bool
}

func (d *stubDispatcher) Dispatch(msg notify.Message) <-chan notify.Delivery {
	d.messages = append(d.messages, msg)
	result := make(chan notify.Delivery, 1)
	if d.dropAll {
		result <- notify.Delivery{MessageID: msg.ID, Failed: len(msg.To), Total: len(msg.To), Err: notify.ErrQueueFull}
		close(result)
	}
	return result
}

var testPortals = notify.PortalDirectory{
	models.TeamHRTag:    "hrtag@x.com",
	models.TeamHROps:    "hrops@x.com",
	models.TeamAdmin:    "admin@x.com",
	models.TeamLD:       "ld@x.com",
	models.TeamDelivery: "delivery@x.com",
}

func newCandidateService(store *mockCandidateStore, dispatcher notify.Dispatcher, portals notify.PortalDirectory) *CandidateService {
	return NewCandidateService(store, lifecycle.NewEngine(), dispatcher, portals, zerolog.Nop())
}

func hrTagActor() lifecycle.Actor {
	return lifecycle.Actor{EmpID: "HRT001", Name: "Tagger", Team: models.TeamHRTag}
}

func submitProfile() lifecycle.CandidateProfile {
	return lifecycle.CandidateProfile{
		FullName:        "Anita Kumari",
		ExperienceLevel: models.ExperienceLateral,
		Source:          models.SourceWalkIn,
		MobileNumber:    "9876543210",
		PersonalEmail:   "anita@example.com",
	}
}

func TestSubmitCreatesCandidate(t *testing.T) {
	var created *models.Candidate
	store := &mockCandidateStore{
		existsByEmailOrMobile: func(ctx context.Context, email, mobile string, excludeID int64) (bool, error) {
			return false, nil
		},
		create: func(ctx context.Context, c *models.Candidate) error {
			c.ID = 42
			created = c
			return nil
		},
	}
	svc := newCandidateService(store, &stubDispatcher{}, testPortals)

	got, err := svc.Submit(context.Background(), submitProfile(), hrTagActor())
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, models.StatusSubmitted, got.Status)
	assert.Equal(t, "HRT001", got.SubmittedBy)
}

func TestSubmitRejectsDuplicate(t *testing.T) {
	store := &mockCandidateStore{
		existsByEmailOrMobile: func(ctx context.Context, email, mobile string, excludeID int64) (bool, error) {
			return true, nil
		},
	}
	svc := newCandidateService(store, &stubDispatcher{}, testPortals)

	_, err := svc.Submit(context.Background(), submitProfile(), hrTagActor())
	assert.ErrorIs(t, err, apperrors.ErrCandidateAlreadyExists)
}

func TestSubmitForbiddenForOtherTeams(t *testing.T) {
	svc := newCandidateService(&mockCandidateStore{}, &stubDispatcher{}, testPortals)

	actor := lifecycle.Actor{EmpID: "HRO001", Team: models.TeamHROps}
	_, err := svc.Submit(context.Background(), submitProfile(), actor)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestSendToHROpsPartialMatchSucceeds(t *testing.T) {
	store := &mockCandidateStore{
		markSent: func(ctx context.Context, ids []int64) (int64, error) {
			return 2, nil // one of the three was already sent
		},
	}
	dispatcher := &stubDispatcher{}
	svc := newCandidateService(store, dispatcher, testPortals)

	res, err := svc.SendToHROps(context.Background(), []int64{1, 2, 3}, hrTagActor())
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.ModifiedCount)
	assert.Empty(t, res.NotificationWarning)
	require.Len(t, dispatcher.messages, 1)
	assert.Equal(t, []string{"hrops@x.com"}, dispatcher.messages[0].To)
}

func TestSendToHROpsNoMatches(t *testing.T) {
	store := &mockCandidateStore{
		markSent: func(ctx context.Context, ids []int64) (int64, error) { return 0, nil },
	}
	svc := newCandidateService(store, &stubDispatcher{}, testPortals)

	_, err := svc.SendToHROps(context.Background(), []int64{1}, hrTagActor())
	assert.ErrorIs(t, err, apperrors.ErrNoCandidatesMatched)
}

func TestSendToHROpsEmptyIDs(t *testing.T) {
	svc := newCandidateService(&mockCandidateStore{}, &stubDispatcher{}, testPortals)

	_, err := svc.SendToHROps(context.Background(), nil, hrTagActor())
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestBulkTransitionDroppedNotificationIsSoft(t *testing.T) {
	store := &mockCandidateStore{
		markSent: func(ctx context.Context, ids []int64) (int64, error) { return 1, nil },
	}
	svc := newCandidateService(store, &stubDispatcher{dropAll: true}, testPortals)

	res, err := svc.SendToHROps(context.Background(), []int64{1}, hrTagActor())
	require.NoError(t, err)
	assert.NotEmpty(t, res.NotificationWarning)
}

func TestBulkTransitionNoPortalAddresses(t *testing.T) {
	store := &mockCandidateStore{
		markSent: func(ctx context.Context, ids []int64) (int64, error) { return 1, nil },
	}
	dispatcher := &stubDispatcher{}
	svc := newCandidateService(store, dispatcher, notify.PortalDirectory{})

	res, err := svc.SendToHROps(context.Background(), []int64{1}, hrTagActor())
	require.NoError(t, err)
	assert.NotEmpty(t, res.NotificationWarning)
	assert.Empty(t, dispatcher.messages)
}

func TestSendToAdminAndLDNotifiesBothPortals(t *testing.T) {
	store := &mockCandidateStore{
		markSentToAdminAndLD: func(ctx context.Context, ids []int64) (int64, error) { return 3, nil },
	}
	dispatcher := &stubDispatcher{}
	svc := newCandidateService(store, dispatcher, testPortals)

	_, err := svc.SendToAdminAndLD(context.Background(), []int64{1, 2, 3}, hrTagActor())
	require.NoError(t, err)
	require.Len(t, dispatcher.messages, 1)
	assert.Equal(t, []string{"admin@x.com", "ld@x.com"}, dispatcher.messages[0].To)
}

func TestSendToHRTagRequiresDeliveryTeam(t *testing.T) {
	store := &mockCandidateStore{
		markSentToHRTag: func(ctx context.Context, ids []int64) (int64, error) { return 1, nil },
	}
	svc := newCandidateService(store, &stubDispatcher{}, testPortals)

	delivery := lifecycle.Actor{EmpID: "DEL001", Team: models.TeamDelivery}
	_, err := svc.SendToHRTag(context.Background(), []int64{1}, delivery)
	assert.NoError(t, err)

	_, err = svc.SendToHRTag(context.Background(), []int64{1}, hrTagActor())
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestSendForPermanentIDRequiresFullEligibility(t *testing.T) {
	store := &mockCandidateStore{
		countEligible: func(ctx context.Context, ids []int64) (int64, error) { return 2, nil },
	}
	svc := newCandidateService(store, &stubDispatcher{}, testPortals)

	_, err := svc.SendForPermanentID(context.Background(), []int64{1, 2, 3}, hrTagActor())
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestSendForPermanentIDSuccess(t *testing.T) {
	var sentBy string
	store := &mockCandidateStore{
		countEligible: func(ctx context.Context, ids []int64) (int64, error) { return 2, nil },
		markForPermanentID: func(ctx context.Context, ids []int64, by string) (int64, error) {
			sentBy = by
			return 2, nil
		},
	}
	dispatcher := &stubDispatcher{}
	svc := newCandidateService(store, dispatcher, testPortals)

	res, err := svc.SendForPermanentID(context.Background(), []int64{1, 2}, hrTagActor())
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.ModifiedCount)
	assert.Equal(t, "HRT001", sentBy)
	require.Len(t, dispatcher.messages, 1)
	assert.Equal(t, []string{"hrops@x.com"}, dispatcher.messages[0].To)
}

func TestAssignOfficeEmailValidatesAddress(t *testing.T) {
	svc := newCandidateService(&mockCandidateStore{}, &stubDispatcher{}, testPortals)
	actor := lifecycle.Actor{EmpID: "HRO001", Team: models.TeamHROps}

	err := svc.AssignOfficeEmail(context.Background(), 1, "not-an-email", actor)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestAssignOfficeEmailNormalizes(t *testing.T) {
	var assigned string
	store := &mockCandidateStore{
		getByID: func(ctx context.Context, id int64) (*models.Candidate, error) {
			return &models.Candidate{ID: id, Status: models.StatusSent}, nil
		},
		assignOfficeEmail: func(ctx context.Context, id int64, email, assignedBy string) error {
			assigned = email
			return nil
		},
	}
	svc := newCandidateService(store, &stubDispatcher{}, testPortals)
	actor := lifecycle.Actor{EmpID: "HRO001", Team: models.TeamHROps}

	require.NoError(t, svc.AssignOfficeEmail(context.Background(), 1, " Anita.K@Corp.COM ", actor))
	assert.Equal(t, "anita.k@corp.com", assigned)
}

func TestAssignEmployeeIDRequiresValue(t *testing.T) {
	svc := newCandidateService(&mockCandidateStore{}, &stubDispatcher{}, testPortals)
	actor := lifecycle.Actor{EmpID: "HRO001", Team: models.TeamHROps}

	err := svc.AssignEmployeeID(context.Background(), 1, "   ", actor)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestSetLDStatusWriteOnce(t *testing.T) {
	verdict := models.LDSelected
	store := &mockCandidateStore{
		getByID: func(ctx context.Context, id int64) (*models.Candidate, error) {
			return &models.Candidate{ID: id, Status: models.StatusSent, SentToLD: true, LDStatus: &verdict}, nil
		},
	}
	svc := newCandidateService(store, &stubDispatcher{}, testPortals)
	actor := lifecycle.Actor{EmpID: "LD001", Team: models.TeamLD}

	err := svc.SetLDStatus(context.Background(), 1, models.LDRejected, actor)
	assert.ErrorIs(t, err, apperrors.ErrLDStatusAlreadySet)
}

func TestSetLDStatusSuccess(t *testing.T) {
	var written models.LDStatus
	store := &mockCandidateStore{
		getByID: func(ctx context.Context, id int64) (*models.Candidate, error) {
			return &models.Candidate{ID: id, Status: models.StatusSent, SentToLD: true}, nil
		},
		setLDStatus: func(ctx context.Context, id int64, verdict models.LDStatus) error {
			written = verdict
			return nil
		},
	}
	svc := newCandidateService(store, &stubDispatcher{}, testPortals)
	actor := lifecycle.Actor{EmpID: "LD001", Team: models.TeamLD}

	require.NoError(t, svc.SetLDStatus(context.Background(), 1, models.LDSelected, actor))
	assert.Equal(t, models.LDSelected, written)
}

func TestEditRejectsNonSubmitted(t *testing.T) {
	store := &mockCandidateStore{
		getByID: func(ctx context.Context, id int64) (*models.Candidate, error) {
			return &models.Candidate{ID: id, Status: models.StatusSent}, nil
		},
	}
	svc := newCandidateService(store, &stubDispatcher{}, testPortals)

	_, err := svc.Edit(context.Background(), 1, submitProfile(), hrTagActor())
	assert.ErrorIs(t, err, apperrors.ErrCandidateNotEditable)
}
