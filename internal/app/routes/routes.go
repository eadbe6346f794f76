package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/karthikr/talentflow/internal/app/controllers"
	"github.com/karthikr/talentflow/internal/app/models"
	"github.com/karthikr/talentflow/internal/app/models/dto"
	"github.com/karthikr/talentflow/internal/middleware"
)

// SetupRouter configures all application routes. Each portal gets its own
// team-gated group; reads on candidates are open to every authenticated
// portal, mutations stay behind the owning team's group.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	candidateController *controllers.CandidateController,
	hropsController *controllers.HROpsController,
	ldController *controllers.LDController,
	deliveryController *controllers.DeliveryController,
	employeeController *controllers.EmployeeController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Candidate reads are shared by every portal.
		candidates := authenticated.Group("/candidates")
		{
			candidates.GET("", candidateController.ListCandidates)
			candidates.GET("/stats", candidateController.GetDashboardStats)
			candidates.GET("/deployed", candidateController.GetDeployedCandidates)
			candidates.GET("/rejected", candidateController.GetRejectedCandidates)
			candidates.GET("/:id", candidateController.GetCandidate)

			// Submission, editing and routing belong to HR Tag.
			hrTag := candidates.Group("")
			hrTag.Use(authMiddleware.TeamRequired(models.TeamHRTag))
			{
				hrTag.POST("", candidateController.SubmitCandidate)
				hrTag.PUT("/:id", candidateController.UpdateCandidate)
				hrTag.POST("/send-to-hrops", candidateController.SendToHROps)
				hrTag.POST("/send-to-admin", candidateController.SendToAdmin)
				hrTag.POST("/send-to-admin-ld", candidateController.SendToAdminAndLD)
				hrTag.POST("/send-for-permanent-id", candidateController.SendForPermanentID)
			}
		}

		// HR Ops portal: identifier assignment and resource exits.
		hrops := authenticated.Group("/hrops")
		hrops.Use(authMiddleware.TeamRequired(models.TeamHROps))
		{
			hrops.PUT("/candidates/:id/office-email", hropsController.AssignOfficeEmail)
			hrops.PUT("/candidates/:id/employee-id", hropsController.AssignEmployeeID)
			hrops.POST("/deployments/:id/exit", hropsController.ExitResource)
		}

		// L&D portal: training verdicts.
		ld := authenticated.Group("/ld")
		ld.Use(authMiddleware.TeamRequired(models.TeamLD))
		{
			ld.PUT("/candidates/:id/status", ldController.SetLDStatus)
		}

		// Delivery portal: deployment confirmation and outbound emails.
		delivery := authenticated.Group("/delivery")
		delivery.Use(authMiddleware.TeamRequired(models.TeamDelivery))
		{
			delivery.POST("/candidates/confirm", deliveryController.ConfirmDeployment)
			delivery.POST("/deployment-email", deliveryController.SendDeploymentEmail)
			delivery.POST("/internal-transfer", deliveryController.SendInternalTransferEmail)
			delivery.GET("/deployments", deliveryController.ListDeployments)
			delivery.GET("/deployments/:id", deliveryController.GetDeployment)
		}

		// Director portal: portal user management.
		employees := authenticated.Group("/employees")
		employees.Use(authMiddleware.TeamRequired(models.TeamDirector))
		{
			employees.POST("", employeeController.CreateEmployee)
			employees.GET("", employeeController.ListEmployees)
			employees.GET("/delivery-manager", employeeController.GetDeliveryManager)
			employees.GET("/:id", employeeController.GetEmployee)
			employees.PUT("/:id", employeeController.UpdateEmployee)
			employees.PUT("/:id/active", employeeController.SetEmployeeActive)
			employees.DELETE("/:id", employeeController.DeleteEmployee)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Success:   true,
			Data:      gin.H{"status": "ok"},
			Timestamp: time.Now(),
		})
	})
}
