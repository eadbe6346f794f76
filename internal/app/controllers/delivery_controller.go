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

// DeliveryController handles the Delivery portal endpoints: deployment
// confirmation, the one-time deployment email and internal transfers.
type DeliveryController struct {
	candidateService  *services.CandidateService
	deploymentService *services.DeploymentService
}

// NewDeliveryController creates a new DeliveryController
func NewDeliveryController(candidateService *services.CandidateService, deploymentService *services.DeploymentService) *DeliveryController {
	return &DeliveryController{
		candidateService:  candidateService,
		deploymentService: deploymentService,
	}
}

// ConfirmDeployment marks L&D-selected candidates as deployed
// @Summary Confirm deployment
// @Description Bulk transition: L&D-selected candidates are confirmed as deployed and HR Tag is notified
// @Tags delivery
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkCandidateRequest true "Candidate IDs"
// @Success 200 {object} dto.APIResponse{data=dto.TransitionResult}
// @Failure 404 {object} dto.ErrorResponse "No candidates were eligible"
// @Router /delivery/candidates/confirm [post]
func (c *DeliveryController) ConfirmDeployment(ctx *gin.Context) {
	var req dto.BulkCandidateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.candidateService.SendToHRTag(ctx, req.CandidateIDs, middleware.ActorFromContext(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   result.Message,
		Data:      result,
		Timestamp: time.Now(),
	})
}

// SendDeploymentEmail sends the one-time deployment announcement
// @Summary Send deployment email
// @Description Sends the at-most-once deployment email and creates the deployment record
// @Tags delivery
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DeploymentEmailRequest true "Deployment email"
// @Success 200 {object} dto.APIResponse{data=dto.TransitionResult}
// @Failure 400 {object} dto.ErrorResponse "No recipients"
// @Failure 403 {object} dto.ErrorResponse "Sender lacks the email capability"
// @Failure 409 {object} dto.ErrorResponse "Deployment email already sent"
// @Router /delivery/deployment-email [post]
func (c *DeliveryController) SendDeploymentEmail(ctx *gin.Context) {
	var req dto.DeploymentEmailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.deploymentService.SendDeploymentEmail(ctx, req, middleware.ActorFromContext(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   result.Message,
		Data:      result,
		Timestamp: time.Now(),
	})
}

// SendInternalTransferEmail announces an internal transfer
// @Summary Send internal transfer email
// @Description Records a transfer on an existing deployment and emails the announcement; the resource stays Active
// @Tags delivery
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.InternalTransferRequest true "Transfer email"
// @Success 200 {object} dto.APIResponse{data=dto.TransitionResult}
// @Failure 403 {object} dto.ErrorResponse "Sender lacks the email capability"
// @Failure 404 {object} dto.ErrorResponse "Deployment record not found"
// @Router /delivery/internal-transfer [post]
func (c *DeliveryController) SendInternalTransferEmail(ctx *gin.Context) {
	var req dto.InternalTransferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.deploymentService.SendInternalTransferEmail(ctx, req, middleware.ActorFromContext(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   result.Message,
		Data:      result,
		Timestamp: time.Now(),
	})
}

// ListDeployments lists deployment records
// @Summary List deployments
// @Tags delivery
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(Active, Inactive)
// @Success 200 {object} dto.APIResponse{data=[]models.Deployment}
// @Router /delivery/deployments [get]
func (c *DeliveryController) ListDeployments(ctx *gin.Context) {
	var status *models.DeploymentStatus
	if s := ctx.Query("status"); s != "" {
		ds := models.DeploymentStatus(s)
		status = &ds
	}

	deployments, err := c.deploymentService.List(ctx, status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      deployments,
		Timestamp: time.Now(),
	})
}

// GetDeployment retrieves one deployment record
// @Summary Get deployment by ID
// @Tags delivery
// @Produce json
// @Security BearerAuth
// @Param id path int true "Deployment ID"
// @Success 200 {object} dto.APIResponse{data=models.Deployment}
// @Failure 404 {object} dto.ErrorResponse "Deployment record not found"
// @Router /delivery/deployments/{id} [get]
func (c *DeliveryController) GetDeployment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	deployment, err := c.deploymentService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      deployment,
		Timestamp: time.Now(),
	})
}

