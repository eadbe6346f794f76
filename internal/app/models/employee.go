package models

import "time"

// Employee defines a portal user based on the 'employees' table.
type Employee struct {
	ID       int64  `json:"id" db:"id"`
	EmpID    string `json:"empId" db:"emp_id" example:"VD1042"`
	Password string `json:"-" db:"password"` // bcrypt hash, never serialized
	Name     string `json:"name" db:"name"`
	Team     Team   `json:"team" db:"team" example:"Delivery"`
	Email    string `json:"email" db:"email"`
	IsActive bool   `json:"isActive" db:"is_active"`

	MobileNumber string `json:"mobileNumber,omitempty" db:"mobile_number"` // normalized 10 digits
	Designation  string `json:"designation,omitempty" db:"designation"`

	// Outbound email capability. CanSendEmail follows IsDeliveryManager and
	// IsActive; it is revoked on deactivation and restored on reactivation.
	CanSendEmail      bool `json:"canSendEmail" db:"can_send_email"`
	IsDeliveryManager bool `json:"isDeliveryManager" db:"is_delivery_manager"`

	// SMTP identity used when this employee sends on behalf of the Delivery
	// team. Required, together with designation and mobile number, before the
	// delivery-manager flag can be enabled.
	ManagerEmail         *string `json:"managerEmail,omitempty" db:"manager_email"`
	ManagerEmailPassword *string `json:"-" db:"manager_email_password"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ManagerSetupComplete reports whether all four fields required for the
// delivery-manager capability are present. The check is a single gate: the
// flag is never enabled with a partial setup.
func (e *Employee) ManagerSetupComplete() bool {
	return e.Designation != "" &&
		e.MobileNumber != "" &&
		e.ManagerEmail != nil && *e.ManagerEmail != "" &&
		e.ManagerEmailPassword != nil && *e.ManagerEmailPassword != ""
}
