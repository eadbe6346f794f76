package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/karthikr/talentflow/internal/app/models/dto"
	"github.com/karthikr/talentflow/internal/app/services"
	"github.com/karthikr/talentflow/internal/middleware"
	"github.com/karthikr/talentflow/internal/pkg/helpers"
)

// CandidateController handles the HR Tag portal endpoints: candidate
// submission, editing, listing and the bulk routing transitions.
type CandidateController struct {
	candidateService *services.CandidateService
}

// NewCandidateController creates a new CandidateController
func NewCandidateController(candidateService *services.CandidateService) *CandidateController {
	return &CandidateController{candidateService: candidateService}
}

func parseIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid candidate ID")
		errorDetail = errorDetail.WithDetails("ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// SubmitCandidate handles candidate submission
// @Summary Submit a new candidate
// @Description Creates a candidate in submitted status on the HR Tag portal
// @Tags candidates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CandidateRequest true "Candidate profile"
// @Success 201 {object} dto.APIResponse{data=models.Candidate} "Candidate submitted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid candidate data"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - wrong portal"
// @Failure 409 {object} dto.ErrorResponse "Candidate already exists"
// @Router /candidates [post]
func (c *CandidateController) SubmitCandidate(ctx *gin.Context) {
	var req dto.CandidateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid candidate data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	candidate, err := c.candidateService.Submit(ctx, req.Profile(), middleware.ActorFromContext(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      candidate,
		Timestamp: time.Now(),
	})
}

// UpdateCandidate handles candidate profile edits
// @Summary Update a submitted candidate
// @Description Edits a candidate's profile while it is still in submitted status
// @Tags candidates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Candidate ID"
// @Param request body dto.CandidateRequest true "Candidate profile"
// @Success 200 {object} dto.APIResponse{data=models.Candidate} "Candidate updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid data or candidate no longer editable"
// @Failure 404 {object} dto.ErrorResponse "Candidate not found"
// @Failure 409 {object} dto.ErrorResponse "Duplicate email or mobile number"
// @Router /candidates/{id} [put]
func (c *CandidateController) UpdateCandidate(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.CandidateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid candidate data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	candidate, err := c.candidateService.Edit(ctx, id, req.Profile(), middleware.ActorFromContext(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      candidate,
		Timestamp: time.Now(),
	})
}

// GetCandidate retrieves one candidate
// @Summary Get candidate by ID
// @Tags candidates
// @Produce json
// @Security BearerAuth
// @Param id path int true "Candidate ID"
// @Success 200 {object} dto.APIResponse{data=models.Candidate}
// @Failure 404 {object} dto.ErrorResponse "Candidate not found"
// @Router /candidates/{id} [get]
func (c *CandidateController) GetCandidate(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	candidate, err := c.candidateService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      candidate,
		Timestamp: time.Now(),
	})
}

// ListCandidates returns a filtered, paginated candidate list
// @Summary List candidates
// @Description Lists candidates with status, experience, batch, search and date filters
// @Tags candidates
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Param search query string false "Search in name, email, college and LinkedIn URL"
// @Param status query string false "Filter by lifecycle status" Enums(all, submitted, sent)
// @Param experienceLevel query string false "Filter by experience level" Enums(all, Fresher, Lateral)
// @Param batchLabel query string false "Filter by batch"
// @Param fromDate query string false "Submitted on or after (yyyy-mm-dd)"
// @Param toDate query string false "Submitted on or before (yyyy-mm-dd)"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /candidates [get]
func (c *CandidateController) ListCandidates(ctx *gin.Context) {
	var query dto.CandidateListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid query parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	offset, limit := helpers.CalculateOffsetLimit(query.Page, query.Limit)
	candidates, total, err := c.candidateService.List(ctx, query, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.PaginatedResponse{
			Items:      candidates,
			Pagination: helpers.NewPaginationInfo(total, query.Page, limit),
		},
		Timestamp: time.Now(),
	})
}

// GetDashboardStats returns the HR Tag dashboard counters
// @Summary Dashboard statistics
// @Tags candidates
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardStats}
// @Router /candidates/stats [get]
func (c *CandidateController) GetDashboardStats(ctx *gin.Context) {
	stats, err := c.candidateService.Stats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      stats,
		Timestamp: time.Now(),
	})
}

// GetDeployedCandidates lists deployment-confirmed candidates
// @Summary List deployed candidates
// @Tags candidates
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Candidate}
// @Router /candidates/deployed [get]
func (c *CandidateController) GetDeployedCandidates(ctx *gin.Context) {
	candidates, err := c.candidateService.ListDeployed(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      candidates,
		Timestamp: time.Now(),
	})
}

// GetRejectedCandidates lists candidates rejected or dropped by L&D
// @Summary List rejected candidates
// @Tags candidates
// @Produce json
// @Security BearerAuth
// @Param fromDate query string false "Verdict on or after (yyyy-mm-dd)"
// @Param toDate query string false "Verdict on or before (yyyy-mm-dd)"
// @Success 200 {object} dto.APIResponse{data=[]models.Candidate}
// @Router /candidates/rejected [get]
func (c *CandidateController) GetRejectedCandidates(ctx *gin.Context) {
	var from, to *time.Time
	if s := ctx.Query("fromDate"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			from = &t
		}
	}
	if s := ctx.Query("toDate"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			end := t.Add(24*time.Hour - time.Millisecond)
			to = &end
		}
	}

	candidates, err := c.candidateService.ListRejected(ctx, from, to)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      candidates,
		Timestamp: time.Now(),
	})
}

func (c *CandidateController) bulkTransition(ctx *gin.Context, apply func([]int64) (*dto.TransitionResult, error)) {
	var req dto.BulkCandidateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := apply(req.CandidateIDs)
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

// SendToHROps moves submitted candidates to sent status
// @Summary Send candidates to HR Ops
// @Description Bulk transition: submitted candidates move to sent status and HR Ops is notified
// @Tags candidates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkCandidateRequest true "Candidate IDs"
// @Success 200 {object} dto.APIResponse{data=dto.TransitionResult}
// @Failure 404 {object} dto.ErrorResponse "No candidates were eligible"
// @Router /candidates/send-to-hrops [post]
func (c *CandidateController) SendToHROps(ctx *gin.Context) {
	actor := middleware.ActorFromContext(ctx)
	c.bulkTransition(ctx, func(ids []int64) (*dto.TransitionResult, error) {
		return c.candidateService.SendToHROps(ctx, ids, actor)
	})
}

// SendToAdmin routes sent candidates to the Admin portal
// @Summary Send candidates to Admin
// @Tags candidates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkCandidateRequest true "Candidate IDs"
// @Success 200 {object} dto.APIResponse{data=dto.TransitionResult}
// @Router /candidates/send-to-admin [post]
func (c *CandidateController) SendToAdmin(ctx *gin.Context) {
	actor := middleware.ActorFromContext(ctx)
	c.bulkTransition(ctx, func(ids []int64) (*dto.TransitionResult, error) {
		return c.candidateService.SendToAdmin(ctx, ids, actor)
	})
}

// SendToAdminAndLD routes sent candidates to Admin and L&D in one step
// @Summary Send candidates to Admin and L&D
// @Tags candidates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkCandidateRequest true "Candidate IDs"
// @Success 200 {object} dto.APIResponse{data=dto.TransitionResult}
// @Router /candidates/send-to-admin-ld [post]
func (c *CandidateController) SendToAdminAndLD(ctx *gin.Context) {
	actor := middleware.ActorFromContext(ctx)
	c.bulkTransition(ctx, func(ids []int64) (*dto.TransitionResult, error) {
		return c.candidateService.SendToAdminAndLD(ctx, ids, actor)
	})
}

// SendForPermanentID hands deployed candidates to HR Ops for permanent IDs
// @Summary Send deployed candidates for permanent ID assignment
// @Description Every requested candidate must be deployment-confirmed and L&D-selected
// @Tags candidates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkCandidateRequest true "Candidate IDs"
// @Success 200 {object} dto.APIResponse{data=dto.TransitionResult}
// @Failure 400 {object} dto.ErrorResponse "Some requested candidates are not eligible"
// @Failure 404 {object} dto.ErrorResponse "No eligible candidates"
// @Router /candidates/send-for-permanent-id [post]
func (c *CandidateController) SendForPermanentID(ctx *gin.Context) {
	actor := middleware.ActorFromContext(ctx)
	c.bulkTransition(ctx, func(ids []int64) (*dto.TransitionResult, error) {
		return c.candidateService.SendForPermanentID(ctx, ids, actor)
	})
}
