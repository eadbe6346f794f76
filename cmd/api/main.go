package main

import (
	"os"

	"github.com/karthikr/talentflow/internal/pkg/logger"
	"github.com/karthikr/talentflow/internal/server"
)

// @title TalentFlow API
// @version 1.0
// @description Internal HR operations portal: candidate intake, routing, training verdicts and deployment tracking.

// @host localhost:8080
// @BasePath /api/v1
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully")
}
