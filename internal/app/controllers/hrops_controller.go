package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/karthikr/talentflow/internal/app/models/dto"
	"github.com/karthikr/talentflow/internal/app/services"
	"github.com/karthikr/talentflow/internal/middleware"
)

// HROpsController handles the HR Ops portal endpoints: office email and
// employee id assignment on sent candidates, and resource exits.
type HROpsController struct {
	candidateService  *services.CandidateService
	deploymentService *services.DeploymentService
}

// NewHROpsController creates a new HROpsController
func NewHROpsController(candidateService *services.CandidateService, deploymentService *services.DeploymentService) *HROpsController {
	return &HROpsController{
		candidateService:  candidateService,
		deploymentService: deploymentService,
	}
}

func (c *HROpsController) assignment(ctx *gin.Context, apply func(id int64, value string) error) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.AssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := apply(id, req.Value); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "assignment recorded",
		Timestamp: time.Now(),
	})
}

// AssignOfficeEmail records an office email for a sent candidate
// @Summary Assign office email
// @Description Records the office email on a sent candidate; re-assignment overwrites
// @Tags hrops
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Candidate ID"
// @Param request body dto.AssignmentRequest true "Office email"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid email or candidate not in sent status"
// @Failure 404 {object} dto.ErrorResponse "Candidate not found"
// @Router /hrops/candidates/{id}/office-email [put]
func (c *HROpsController) AssignOfficeEmail(ctx *gin.Context) {
	actor := middleware.ActorFromContext(ctx)
	c.assignment(ctx, func(id int64, value string) error {
		return c.candidateService.AssignOfficeEmail(ctx, id, value, actor)
	})
}

// AssignEmployeeID records an employee id for a sent candidate
// @Summary Assign employee ID
// @Tags hrops
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Candidate ID"
// @Param request body dto.AssignmentRequest true "Employee ID"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid value or candidate not in sent status"
// @Failure 404 {object} dto.ErrorResponse "Candidate not found"
// @Router /hrops/candidates/{id}/employee-id [put]
func (c *HROpsController) AssignEmployeeID(ctx *gin.Context) {
	actor := middleware.ActorFromContext(ctx)
	c.assignment(ctx, func(id int64, value string) error {
		return c.candidateService.AssignEmployeeID(ctx, id, value, actor)
	})
}

// ExitResource marks a deployed resource as exited
// @Summary Record a resource exit
// @Description One-way transition: the deployment becomes Inactive with the exit date and reason
// @Tags hrops
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Deployment ID"
// @Param request body dto.ExitRequest true "Exit reason"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Exit reason too short"
// @Failure 404 {object} dto.ErrorResponse "Deployment record not found"
// @Failure 409 {object} dto.ErrorResponse "Resource already exited"
// @Router /hrops/deployments/{id}/exit [post]
func (c *HROpsController) ExitResource(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.ExitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.deploymentService.Exit(ctx, id, req.ExitReason, middleware.ActorFromContext(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "resource exit recorded",
		Timestamp: time.Now(),
	})
}
