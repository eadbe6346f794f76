package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/karthikr/talentflow/internal/app/models"
	"github.com/karthikr/talentflow/internal/app/models/dto"
	"github.com/karthikr/talentflow/internal/app/services"
	"github.com/karthikr/talentflow/internal/middleware"
)

// LDController handles the L&D portal endpoint: the one-time training
// verdict on candidates routed to L&D.
type LDController struct {
	candidateService *services.CandidateService
}

// NewLDController creates a new LDController
func NewLDController(candidateService *services.CandidateService) *LDController {
	return &LDController{candidateService: candidateService}
}

// SetLDStatus records the L&D verdict for a candidate
// @Summary Set L&D status
// @Description Records the one-time L&D verdict (Selected, Rejected or Dropped); a second write is rejected
// @Tags ld
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Candidate ID"
// @Param request body dto.LDStatusRequest true "Verdict"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid verdict or candidate not sent to L&D"
// @Failure 404 {object} dto.ErrorResponse "Candidate not found"
// @Failure 409 {object} dto.ErrorResponse "Verdict already recorded"
// @Router /ld/candidates/{id}/status [put]
func (c *LDController) SetLDStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.LDStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	err := c.candidateService.SetLDStatus(ctx, id, models.LDStatus(req.Status), middleware.ActorFromContext(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "L&D status recorded",
		Timestamp: time.Now(),
	})
}
