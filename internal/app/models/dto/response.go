package dto

import "time"

// APIResponse is the standard envelope for successful API responses.
type APIResponse struct {
	Success   bool         `json:"success" example:"true"`
	Message   string       `json:"message,omitempty"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewAPIResponse creates a success envelope around data.
func NewAPIResponse(data interface{}, message string) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// PaginationInfo carries page metadata for list endpoints.
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
}

// PaginatedResponse represents a paginated list with metadata.
type PaginatedResponse struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}

// TransitionResult is the caller-visible outcome of a lifecycle transition.
// ModifiedCount reports how many records the transition touched (bulk
// transitions may legitimately touch a subset of the requested ids).
// NotificationWarning carries a soft delivery failure; it never marks the
// transition itself as failed.
type TransitionResult struct {
	ModifiedCount       int64  `json:"modifiedCount,omitempty"`
	RecordID            int64  `json:"recordId,omitempty"`
	Message             string `json:"message"`
	NotificationWarning string `json:"notificationWarning,omitempty"`
}
