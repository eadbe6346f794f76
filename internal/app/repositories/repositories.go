// Package repositories contains the data access layer. Each repository owns
// the SQL for one table; lifecycle preconditions that must hold under
// concurrency are expressed as conditional updates here rather than as
// read-modify-write sequences in the services.
package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds every repository instance.
type Repositories struct {
	Candidate  *CandidateRepository
	Deployment *DeploymentRepository
	Employee   *EmployeeRepository
}

// NewRepositories creates all repositories sharing one connection pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Candidate:  NewCandidateRepository(db),
		Deployment: NewDeploymentRepository(db),
		Employee:   NewEmployeeRepository(db),
	}
}
