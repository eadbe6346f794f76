package apperrors

import "errors"

// Error kinds. Every failure surfaced by the lifecycle engine, access policy
// or services wraps one of these sentinels so callers can branch with
// errors.Is without string matching.
var (
	// Validation errors: caller-correctable input problems.
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Conflict errors: the request is well-formed but collides with current
	// state: uniqueness violations and duplicate transitions.
	ErrConflict = errors.New("conflict")

	// Authorization errors: the actor's team or capability does not permit
	// the requested transition.
	ErrPermissionDenied = errors.New("permission denied")

	// Not-found errors.
	ErrResourceNotFound = errors.New("resource not found")

	// Authentication errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Notification errors: downstream delivery failures. Always non-fatal to
	// the transition that triggered them; recorded, never escalated.
	ErrNotificationFailed = errors.New("notification delivery failed")
)

// Candidate errors
var (
	ErrCandidateNotFound      = errors.New("candidate not found")
	ErrCandidateAlreadyExists = errors.New("candidate with this email or mobile number already exists")
	ErrCandidateNotEditable   = errors.New("only candidates with submitted status can be edited")
	ErrNoCandidatesMatched    = errors.New("no candidates matched the requested transition")
	ErrLDStatusAlreadySet     = errors.New("L&D status has already been recorded for this candidate")
	ErrDeploymentEmailSent    = errors.New("deployment email has already been sent for this candidate")
)

// Deployment errors
var (
	ErrDeploymentNotFound = errors.New("deployment record not found")
	ErrExitReasonTooShort = errors.New("exit reason must be at least 5 characters")
)

// Employee errors
var (
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrEmployeeAlreadyExists  = errors.New("employee with this ID or email already exists")
	ErrNoDeliveryManager      = errors.New("no active delivery manager found")
	ErrDeliveryManagerExists  = errors.New("an active delivery manager already exists")
	ErrManagerSetupIncomplete = errors.New("designation, mobile number, manager email and credential are all required for a delivery manager")
)

// CustomError carries structured context alongside the sentinel kind so
// callers can log the transition, record and actor without stack inspection.
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap exposes the sentinel kind to errors.Is.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails attaches context details to the error.
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode attaches a stable error code.
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// NewValidationError creates a validation failure with a field-level message.
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewConflictError creates a conflict with an explanatory message.
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates an authorization failure with a message.
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewNotFoundError creates a not-found error with a message.
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}
