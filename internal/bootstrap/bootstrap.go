// Package bootstrap wires configuration, the database, and the dependency
// graph together so the server package stays thin.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/karthikr/talentflow/internal/app/controllers"
	"github.com/karthikr/talentflow/internal/app/migrations"
	"github.com/karthikr/talentflow/internal/app/models"
	appRepositories "github.com/karthikr/talentflow/internal/app/repositories"
	appRoutes "github.com/karthikr/talentflow/internal/app/routes"
	appServices "github.com/karthikr/talentflow/internal/app/services"
	"github.com/karthikr/talentflow/internal/config"
	"github.com/karthikr/talentflow/internal/db"
	appMiddleware "github.com/karthikr/talentflow/internal/middleware"
	pkgAuth "github.com/karthikr/talentflow/internal/pkg/auth"
	"github.com/karthikr/talentflow/internal/pkg/helpers"
	"github.com/karthikr/talentflow/internal/pkg/logger"
	"github.com/karthikr/talentflow/internal/pkg/notify"
	"github.com/karthikr/talentflow/internal/seed"
)

// Dependencies holds initialized application components.
type Dependencies struct {
	Repos      *appRepositories.Repositories
	Services   *appServices.Services
	JWTService *pkgAuth.JWTService
	Dispatcher *notify.QueueDispatcher

	AuthMiddleware *appMiddleware.AuthMiddleware

	AuthController      *appControllers.AuthController
	CandidateController *appControllers.CandidateController
	HROpsController     *appControllers.HROpsController
	LDController        *appControllers.LDController
	DeliveryController  *appControllers.DeliveryController
	EmployeeController  *appControllers.EmployeeController
}

// LoadConfigAndSetupLogger loads configuration and configures the global logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		return nil, zerolog.Logger{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format == "text",
	})
	lgr := logger.GetLogger()
	lgr.Info().Str("logLevel", cfg.Logging.Level).Msg("Logger configured")

	return cfg, lgr, nil
}

// SetupDatabase connects to the database, runs migrations and seeds the
// default portal accounts.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database connection: %w", err)
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	lgr.Info().Msg("Database connection successful")

	migrator := migrations.NewMigrator(dbPool)
	if err := migrator.MigrateFromDirectory("migrations"); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	lgr.Info().Msg("Database migrations completed")

	// Seed failures are logged but not fatal; the portals can still run
	// against accounts created by the director.
	if err := seed.CreateDefaultData(ctx, dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data")
	}

	return dbPool, nil
}

// BuildDependencies builds the full dependency graph from repositories up to
// controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	repos := appRepositories.NewRepositories(dbPool)

	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	sender := notify.NewSMTPSender(notify.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
	}, logger.Component("smtp"))

	dispatcher := notify.NewQueueDispatcher(
		sender,
		cfg.Notifications.QueueSize,
		helpers.ParseDuration(cfg.Notifications.SendTimeout, 30*time.Second),
		logger.Component("notify"),
	)

	portals := notify.PortalDirectory{
		models.TeamHRTag:    cfg.Notifications.Portals.HRTag,
		models.TeamHROps:    cfg.Notifications.Portals.HROps,
		models.TeamAdmin:    cfg.Notifications.Portals.Admin,
		models.TeamLD:       cfg.Notifications.Portals.LD,
		models.TeamDelivery: cfg.Notifications.Portals.Delivery,
	}

	services := appServices.NewServices(repos, jwtService, dispatcher, portals)

	deps := &Dependencies{
		Repos:      repos,
		Services:   services,
		JWTService: jwtService,
		Dispatcher: dispatcher,

		AuthMiddleware: appMiddleware.NewAuthMiddleware(jwtService),

		AuthController:      appControllers.NewAuthController(services.Auth),
		CandidateController: appControllers.NewCandidateController(services.Candidate),
		HROpsController:     appControllers.NewHROpsController(services.Candidate, services.Deployment),
		LDController:        appControllers.NewLDController(services.Candidate),
		DeliveryController:  appControllers.NewDeliveryController(services.Candidate, services.Deployment),
		EmployeeController:  appControllers.NewEmployeeController(services.Employee),
	}

	lgr.Info().Msg("Dependency injection completed")
	return deps, nil
}

// SetupRouter creates the Gin engine and registers all routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.Default()

	appRoutes.SetupRouter(
		router,
		deps.AuthController,
		deps.CandidateController,
		deps.HROpsController,
		deps.LDController,
		deps.DeliveryController,
		deps.EmployeeController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	lgr.Info().Msg("Router setup completed")
	return router
}
