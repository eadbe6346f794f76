// Package services contains the transition orchestrators. A service
// authorizes the actor, lets the lifecycle engine evaluate preconditions,
// commits the change through a repository and fires any notification the
// committed transition requires.
package services

import (
	"github.com/karthikr/talentflow/internal/app/lifecycle"
	"github.com/karthikr/talentflow/internal/app/repositories"
	"github.com/karthikr/talentflow/internal/pkg/auth"
	"github.com/karthikr/talentflow/internal/pkg/logger"
	"github.com/karthikr/talentflow/internal/pkg/notify"
)

// Services holds every service instance.
type Services struct {
	Auth       *AuthService
	Candidate  *CandidateService
	Deployment *DeploymentService
	Employee   *EmployeeService
}

// NewServices wires all services to their repositories and shared
// collaborators.
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, dispatcher notify.Dispatcher, portals notify.PortalDirectory) *Services {
	engine := lifecycle.NewEngine()

	return &Services{
		Auth:       NewAuthService(repos.Employee, jwtService, logger.Component("auth")),
		Candidate:  NewCandidateService(repos.Candidate, engine, dispatcher, portals, logger.Component("candidates")),
		Deployment: NewDeploymentService(repos.Deployment, repos.Candidate, repos.Employee, engine, dispatcher, logger.Component("deployments")),
		Employee:   NewEmployeeService(repos.Employee, logger.Component("employees")),
	}
}
