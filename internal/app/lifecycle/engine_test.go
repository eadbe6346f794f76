package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karthikr/talentflow/internal/app/models"
	"github.com/karthikr/talentflow/internal/pkg/apperrors"
)

func testEngine() *Engine {
	fixed := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return &Engine{Now: func() time.Time { return fixed }}
}

func validProfile() CandidateProfile {
	return CandidateProfile{
		FullName:        "Anita Kumari",
		ExperienceLevel: models.ExperienceFresher,
		BatchLabel:      "Batch-12",
		Year:            2025,
		Source:          models.SourceWalkIn,
		MobileNumber:    "98765 43210",
		PersonalEmail:   "Anita@Example.com",
		College:         "PSG Tech",
	}
}

func TestValidateProfile(t *testing.T) {
	e := testEngine()

	tests := []struct {
		name    string
		mutate  func(*CandidateProfile)
		wantErr bool
	}{
		{"valid fresher", func(p *CandidateProfile) {}, false},
		{"valid lateral without batch", func(p *CandidateProfile) {
			p.ExperienceLevel = models.ExperienceLateral
			p.BatchLabel = ""
			p.Year = 0
		}, false},
		{"missing name", func(p *CandidateProfile) { p.FullName = "  " }, true},
		{"bad email", func(p *CandidateProfile) { p.PersonalEmail = "not-an-email" }, true},
		{"short mobile", func(p *CandidateProfile) { p.MobileNumber = "12345" }, true},
		{"fresher without batch", func(p *CandidateProfile) { p.BatchLabel = "" }, true},
		{"fresher without year", func(p *CandidateProfile) { p.Year = 0 }, true},
		{"unknown experience level", func(p *CandidateProfile) { p.ExperienceLevel = "Intern" }, true},
		{"reference without name", func(p *CandidateProfile) { p.Source = models.SourceReference }, true},
		{"reference with name", func(p *CandidateProfile) {
			p.Source = models.SourceReference
			p.ReferenceName = "Ravi"
		}, false},
		{"unknown source", func(p *CandidateProfile) { p.Source = "Billboard" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)
			err := e.ValidateProfile(p)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewCandidateNormalizesFields(t *testing.T) {
	e := testEngine()
	actor := Actor{EmpID: "HRT001", Name: "Tagger", Team: models.TeamHRTag}

	p := validProfile()
	p.LinkedinURL = " https://linkedin.com/in/anita "

	c, err := e.NewCandidate(p, actor)
	require.NoError(t, err)

	assert.Equal(t, models.StatusSubmitted, c.Status)
	assert.Equal(t, "9876543210", c.MobileNumber)
	assert.Equal(t, "anita@example.com", c.PersonalEmail)
	assert.Equal(t, "HRT001", c.SubmittedBy)
	require.NotNil(t, c.BatchLabel)
	assert.Equal(t, "Batch-12", *c.BatchLabel)
	require.NotNil(t, c.LinkedinURL)
	assert.Equal(t, "https://linkedin.com/in/anita", *c.LinkedinURL)
	assert.Nil(t, c.ReferenceName)
}

func TestApplyEdit(t *testing.T) {
	e := testEngine()
	actor := Actor{EmpID: "HRT001", Team: models.TeamHRTag}

	c, err := e.NewCandidate(validProfile(), actor)
	require.NoError(t, err)

	// Switching to lateral walk-in clears the fresher-only fields.
	p := validProfile()
	p.ExperienceLevel = models.ExperienceLateral
	p.BatchLabel = ""
	p.Year = 0
	require.NoError(t, e.ApplyEdit(c, p))
	assert.Nil(t, c.BatchLabel)
	assert.Nil(t, c.Year)

	// Editing stops once the candidate left submitted status.
	c.Status = models.StatusSent
	err = e.ApplyEdit(c, validProfile())
	assert.ErrorIs(t, err, apperrors.ErrCandidateNotEditable)
}

func TestValidateBulkIDs(t *testing.T) {
	e := testEngine()
	assert.Error(t, e.ValidateBulkIDs(nil))
	assert.Error(t, e.ValidateBulkIDs([]int64{}))
	assert.NoError(t, e.ValidateBulkIDs([]int64{1}))
}

func TestCheckSetLDStatus(t *testing.T) {
	e := testEngine()
	c := &models.Candidate{Status: models.StatusSent, SentToLD: true}

	assert.NoError(t, e.CheckSetLDStatus(c, models.LDSelected))

	err := e.CheckSetLDStatus(c, "Maybe")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	notRouted := &models.Candidate{Status: models.StatusSent}
	err = e.CheckSetLDStatus(notRouted, models.LDRejected)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// A verdict is write-once.
	verdict := models.LDSelected
	c.LDStatus = &verdict
	err = e.CheckSetLDStatus(c, models.LDRejected)
	assert.ErrorIs(t, err, apperrors.ErrLDStatusAlreadySet)
}

func TestCheckDeploymentEmail(t *testing.T) {
	e := testEngine()
	candidate := &models.Candidate{Status: models.StatusSent}
	sender := &models.Employee{IsActive: true, CanSendEmail: true}

	assert.NoError(t, e.CheckDeploymentEmail(candidate, sender, []string{"team@x.com"}))

	// The duplicate check wins even when the sender would also be rejected,
	// so a retried request surfaces the real state.
	dup := &models.Candidate{DeploymentEmailSent: true}
	err := e.CheckDeploymentEmail(dup, &models.Employee{}, nil)
	assert.ErrorIs(t, err, apperrors.ErrDeploymentEmailSent)

	err = e.CheckDeploymentEmail(candidate, &models.Employee{IsActive: true}, []string{"team@x.com"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	err = e.CheckDeploymentEmail(candidate, sender, []string{"  ", ""})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCheckInternalTransferEmail(t *testing.T) {
	e := testEngine()
	d := &models.Deployment{Status: models.DeploymentActive}
	sender := &models.Employee{IsActive: true, CanSendEmail: true}

	// No at-most-once rule: a deployment that already saw a transfer can
	// see another.
	now := time.Now()
	d.InternalTransferDate = &now
	assert.NoError(t, e.CheckInternalTransferEmail(d, sender, []string{"team@x.com"}))

	err := e.CheckInternalTransferEmail(d, &models.Employee{CanSendEmail: true}, []string{"team@x.com"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestEligibleForHRTag(t *testing.T) {
	e := testEngine()
	selected := models.LDSelected
	rejected := models.LDRejected

	assert.True(t, e.EligibleForHRTag(&models.Candidate{Status: models.StatusSent, LDStatus: &selected}))
	assert.False(t, e.EligibleForHRTag(&models.Candidate{Status: models.StatusSent, LDStatus: &rejected}))
	assert.False(t, e.EligibleForHRTag(&models.Candidate{Status: models.StatusSubmitted, LDStatus: &selected}))
	assert.False(t, e.EligibleForHRTag(&models.Candidate{Status: models.StatusSent}))
}

func TestValidateExitReason(t *testing.T) {
	e := testEngine()
	assert.NoError(t, e.ValidateExitReason("resigned for higher studies"))
	assert.ErrorIs(t, e.ValidateExitReason("ok"), apperrors.ErrExitReasonTooShort)
	assert.ErrorIs(t, e.ValidateExitReason("    a    "), apperrors.ErrExitReasonTooShort)
}

func TestCheckPermanentIDBatch(t *testing.T) {
	e := testEngine()

	assert.NoError(t, e.CheckPermanentIDBatch(3, 3))

	err := e.CheckPermanentIDBatch(0, 3)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	// Unlike the other bulk transitions, partial eligibility is rejected.
	err = e.CheckPermanentIDBatch(2, 3)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
