package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karthikr/talentflow/internal/app/models/dto"
	"github.com/karthikr/talentflow/internal/pkg/apperrors"
	"github.com/karthikr/talentflow/internal/pkg/logger"
)

// HandleAPIError maps service errors onto the standard error envelope. The
// message from a CustomError is surfaced to the client; the wrapped sentinel
// decides the status code.
func HandleAPIError(c *gin.Context, err error) {
	status, code := classify(err)

	message := err.Error()
	var details interface{}
	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		if custom.Details != nil {
			details = custom.Details
		}
	}

	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("path", c.FullPath()).
			Str("method", c.Request.Method).
			Msg("Unhandled API error")
		message = "internal server error"
	}

	detail := dto.NewErrorDetail(code, message)
	if details != nil {
		detail = detail.WithDetails(details)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func classify(err error) (int, dto.ErrorCode) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrCandidateNotEditable),
		errors.Is(err, apperrors.ErrExitReasonTooShort),
		errors.Is(err, apperrors.ErrManagerSetupIncomplete):
		return http.StatusBadRequest, dto.ErrorCodeValidationFailed

	case errors.Is(err, apperrors.ErrCandidateAlreadyExists),
		errors.Is(err, apperrors.ErrEmployeeAlreadyExists),
		errors.Is(err, apperrors.ErrDeliveryManagerExists):
		return http.StatusConflict, dto.ErrorCodeResourceAlreadyExists

	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrLDStatusAlreadySet),
		errors.Is(err, apperrors.ErrDeploymentEmailSent):
		return http.StatusConflict, dto.ErrorCodeTransitionConflict

	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.ErrorCodeForbidden

	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrCandidateNotFound),
		errors.Is(err, apperrors.ErrNoCandidatesMatched),
		errors.Is(err, apperrors.ErrDeploymentNotFound),
		errors.Is(err, apperrors.ErrEmployeeNotFound),
		errors.Is(err, apperrors.ErrNoDeliveryManager):
		return http.StatusNotFound, dto.ErrorCodeResourceNotFound

	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrAccountDisabled):
		return http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials

	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.ErrorCodeExpiredToken

	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, dto.ErrorCodeInvalidToken

	default:
		return http.StatusInternalServerError, dto.ErrorCodeInternalServer
	}
}
