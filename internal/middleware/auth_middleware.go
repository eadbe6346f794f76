package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/karthikr/talentflow/internal/app/lifecycle"
	"github.com/karthikr/talentflow/internal/app/models"
	"github.com/karthikr/talentflow/internal/app/models/dto"
	"github.com/karthikr/talentflow/internal/pkg/auth"
)

// Context keys set by JWTAuth.
const (
	ContextEmpID        = "empId"
	ContextName         = "name"
	ContextTeam         = "team"
	ContextCanSendEmail = "canSendEmail"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authorization header missing")
			return
		}

		var tokenString string
		// A raw JWT without the Bearer prefix is accepted for convenience.
		if strings.Count(authHeader, ".") == 2 && !strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = authHeader
		} else {
			var err error
			tokenString, err = auth.ExtractBearerToken(authHeader)
			if err != nil {
				abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token format")
				return
			}
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			code := dto.ErrorCodeInvalidToken
			detail := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				code = dto.ErrorCodeExpiredToken
				detail = "Token has expired"
			}
			abortUnauthorized(c, code, detail)
			return
		}

		c.Set(ContextEmpID, claims.EmpID)
		c.Set(ContextName, claims.Name)
		c.Set(ContextTeam, claims.Team)
		c.Set(ContextCanSendEmail, claims.CanSendEmail)

		c.Next()
	}
}

// TeamRequired restricts a route group to the named portals.
func (m *AuthMiddleware) TeamRequired(teams ...models.Team) gin.HandlerFunc {
	return func(c *gin.Context) {
		team, exists := c.Get(ContextTeam)
		if !exists {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "User team not found")
			return
		}

		teamStr, _ := team.(string)
		for _, allowed := range teams {
			if teamStr == string(allowed) {
				c.Next()
				return
			}
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
		errorDetail = errorDetail.WithDetails("Your team does not have access to this portal")
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
	}
}

// ActorFromContext reconstructs the lifecycle actor set by JWTAuth.
func ActorFromContext(c *gin.Context) lifecycle.Actor {
	return lifecycle.Actor{
		EmpID:        c.GetString(ContextEmpID),
		Name:         c.GetString(ContextName),
		Team:         models.Team(c.GetString(ContextTeam)),
		CanSendEmail: c.GetBool(ContextCanSendEmail),
	}
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, details string) {
	errorDetail := dto.NewErrorDetail(code, "Authentication required")
	errorDetail = errorDetail.WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}
