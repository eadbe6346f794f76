package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/karthikr/talentflow/internal/app/models/dto"
	"github.com/karthikr/talentflow/internal/app/services"
	"github.com/karthikr/talentflow/internal/middleware"
)

// EmployeeController handles the Director portal's user management
// endpoints.
type EmployeeController struct {
	employeeService *services.EmployeeService
}

// NewEmployeeController creates a new EmployeeController
func NewEmployeeController(employeeService *services.EmployeeService) *EmployeeController {
	return &EmployeeController{employeeService: employeeService}
}

func parseEmployeeID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid employee ID")
		errorDetail = errorDetail.WithDetails("ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// CreateEmployee provisions a portal user
// @Summary Create an employee
// @Description Creates a portal user; setting the delivery-manager flag requires the full SMTP identity and no other active manager
// @Tags employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEmployeeRequest true "Employee"
// @Success 201 {object} dto.APIResponse{data=dto.EmployeeResponse} "Employee created"
// @Failure 400 {object} dto.ErrorResponse "Invalid data or incomplete manager setup"
// @Failure 409 {object} dto.ErrorResponse "Employee or delivery manager already exists"
// @Router /employees [post]
func (c *EmployeeController) CreateEmployee(ctx *gin.Context) {
	var req dto.CreateEmployeeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid employee data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	employee, err := c.employeeService.Create(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      dto.FromEmployee(employee),
		Timestamp: time.Now(),
	})
}

// ListEmployees lists all portal users
// @Summary List employees
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.EmployeeResponse}
// @Router /employees [get]
func (c *EmployeeController) ListEmployees(ctx *gin.Context) {
	employees, err := c.employeeService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.EmployeeResponse, len(employees))
	for i, e := range employees {
		responses[i] = dto.FromEmployee(e)
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      responses,
		Timestamp: time.Now(),
	})
}

// GetEmployee retrieves one portal user
// @Summary Get employee by ID
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} dto.APIResponse{data=dto.EmployeeResponse}
// @Failure 404 {object} dto.ErrorResponse "Employee not found"
// @Router /employees/{id} [get]
func (c *EmployeeController) GetEmployee(ctx *gin.Context) {
	id, ok := parseEmployeeID(ctx)
	if !ok {
		return
	}

	employee, err := c.employeeService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dto.FromEmployee(employee),
		Timestamp: time.Now(),
	})
}

// GetDeliveryManager returns the active delivery manager, if any
// @Summary Get the active delivery manager
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.EmployeeResponse}
// @Failure 404 {object} dto.ErrorResponse "No active delivery manager"
// @Router /employees/delivery-manager [get]
func (c *EmployeeController) GetDeliveryManager(ctx *gin.Context) {
	employee, err := c.employeeService.GetActiveDeliveryManager(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dto.FromEmployee(employee),
		Timestamp: time.Now(),
	})
}

// UpdateEmployee applies a partial update to a portal user
// @Summary Update an employee
// @Tags employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param request body dto.UpdateEmployeeRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.EmployeeResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid data or incomplete manager setup"
// @Failure 404 {object} dto.ErrorResponse "Employee not found"
// @Failure 409 {object} dto.ErrorResponse "Delivery manager already exists"
// @Router /employees/{id} [put]
func (c *EmployeeController) UpdateEmployee(ctx *gin.Context) {
	id, ok := parseEmployeeID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateEmployeeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid employee data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	employee, err := c.employeeService.Update(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dto.FromEmployee(employee),
		Timestamp: time.Now(),
	})
}

// SetEmployeeActive activates or deactivates an account
// @Summary Toggle employee active state
// @Description Deactivation revokes the email capability; reactivation restores it for delivery managers
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param active query bool true "New active state"
// @Success 200 {object} dto.APIResponse{data=dto.EmployeeResponse}
// @Failure 404 {object} dto.ErrorResponse "Employee not found"
// @Router /employees/{id}/active [put]
func (c *EmployeeController) SetEmployeeActive(ctx *gin.Context) {
	id, ok := parseEmployeeID(ctx)
	if !ok {
		return
	}

	active, err := strconv.ParseBool(ctx.Query("active"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid active parameter")
		errorDetail = errorDetail.WithDetails("active must be true or false")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	employee, err := c.employeeService.SetActive(ctx, id, active)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dto.FromEmployee(employee),
		Timestamp: time.Now(),
	})
}

// DeleteEmployee removes a portal user
// @Summary Delete an employee
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Employee not found"
// @Router /employees/{id} [delete]
func (c *EmployeeController) DeleteEmployee(ctx *gin.Context) {
	id, ok := parseEmployeeID(ctx)
	if !ok {
		return
	}

	if err := c.employeeService.Delete(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "employee deleted",
		Timestamp: time.Now(),
	})
}
