package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssignmentStatus(t *testing.T) {
	by := "HRO001"

	c := &Candidate{}
	assert.Equal(t, AssignmentNone, c.AssignmentStatus())
	assert.False(t, c.FullyUpdated())

	c.OfficeEmailAssignedBy = &by
	assert.Equal(t, AssignmentPartial, c.AssignmentStatus())

	c.EmployeeIDAssignedBy = &by
	assert.Equal(t, AssignmentComplete, c.AssignmentStatus())
	assert.True(t, c.FullyUpdated())
}

func TestManagerSetupComplete(t *testing.T) {
	email := "m@corp.com"
	password := "app-password"
	empty := ""

	e := &Employee{Designation: "Head", MobileNumber: "9876543210"}
	assert.False(t, e.ManagerSetupComplete())

	e.ManagerEmail = &email
	e.ManagerEmailPassword = &empty
	assert.False(t, e.ManagerSetupComplete())

	e.ManagerEmailPassword = &password
	assert.True(t, e.ManagerSetupComplete())
}

func TestTeamIsValid(t *testing.T) {
	assert.True(t, Team("HR Tag").IsValid())
	assert.True(t, Team("Delivery").IsValid())
	assert.False(t, Team("Finance").IsValid())
}

func TestLDStatusIsValid(t *testing.T) {
	assert.True(t, LDSelected.IsValid())
	assert.True(t, LDDropped.IsValid())
	assert.False(t, LDStatus("Maybe").IsValid())
}
