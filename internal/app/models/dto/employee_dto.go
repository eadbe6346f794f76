package dto

import (
	"time"

	"github.com/karthikr/talentflow/internal/app/models"
)

// LoginRequest authenticates a portal user by employee id.
type LoginRequest struct {
	EmpID    string `json:"empId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the signed token and the authenticated identity.
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresIn int              `json:"expiresIn"`
	User      EmployeeResponse `json:"user"`
}

// CreateEmployeeRequest provisions a portal user. The delivery-manager
// fields are validated as a single atomic precondition when the flag is set.
type CreateEmployeeRequest struct {
	EmpID                string `json:"empId" binding:"required"`
	Password             string `json:"password" binding:"required"`
	Name                 string `json:"name" binding:"required"`
	Team                 string `json:"team" binding:"required"`
	Email                string `json:"email" binding:"required"`
	MobileNumber         string `json:"mobileNumber"`
	Designation          string `json:"designation"`
	IsDeliveryManager    bool   `json:"isDeliveryManager"`
	ManagerEmail         string `json:"managerEmail"`
	ManagerEmailPassword string `json:"managerAppPassword"`
}

// UpdateEmployeeRequest carries partial employee updates; nil fields are
// left untouched.
type UpdateEmployeeRequest struct {
	Name                 *string `json:"name"`
	Email                *string `json:"email"`
	MobileNumber         *string `json:"mobileNumber"`
	Designation          *string `json:"designation"`
	IsDeliveryManager    *bool   `json:"isDeliveryManager"`
	ManagerEmail         *string `json:"managerEmail"`
	ManagerEmailPassword *string `json:"managerAppPassword"`
}

// EmployeeResponse is the employee view with credentials stripped.
type EmployeeResponse struct {
	ID                int64       `json:"id"`
	EmpID             string      `json:"empId"`
	Name              string      `json:"name"`
	Team              models.Team `json:"team"`
	Email             string      `json:"email"`
	MobileNumber      string      `json:"mobileNumber,omitempty"`
	Designation       string      `json:"designation,omitempty"`
	IsActive          bool        `json:"isActive"`
	IsDeliveryManager bool        `json:"isDeliveryManager"`
	CanSendEmail      bool        `json:"canSendEmail"`
	ManagerEmail      *string     `json:"managerEmail,omitempty"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

// FromEmployee converts a model.Employee to its response view. The SMTP
// credential never leaves the service layer.
func FromEmployee(e *models.Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                e.ID,
		EmpID:             e.EmpID,
		Name:              e.Name,
		Team:              e.Team,
		Email:             e.Email,
		MobileNumber:      e.MobileNumber,
		Designation:       e.Designation,
		IsActive:          e.IsActive,
		IsDeliveryManager: e.IsDeliveryManager,
		CanSendEmail:      e.CanSendEmail,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
	if e.IsDeliveryManager {
		resp.ManagerEmail = e.ManagerEmail
	}
	return resp
}
