package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/karthikr/talentflow/internal/app/models"
	appRepos "github.com/karthikr/talentflow/internal/app/repositories"
	"github.com/karthikr/talentflow/internal/pkg/apperrors"
	"golang.org/x/crypto/bcrypt"
)

// seedAccount describes one default portal login.
type seedAccount struct {
	EmpID    string
	Name     string
	Team     appModels.Team
	Email    string
	Password string
}

// defaultAccounts are created once so every portal is reachable on a fresh
// install. Passwords are placeholders meant to be rotated immediately.
var defaultAccounts = []seedAccount{
	{EmpID: "DIR001", Name: "Portal Director", Team: appModels.TeamDirector, Email: "director@talentflow.local", Password: "Director123!"},
	{EmpID: "HRT001", Name: "HR Tag Lead", Team: appModels.TeamHRTag, Email: "hrtag@talentflow.local", Password: "HrTag123!"},
	{EmpID: "HRO001", Name: "HR Ops Lead", Team: appModels.TeamHROps, Email: "hrops@talentflow.local", Password: "HrOps123!"},
	{EmpID: "LD001", Name: "L&D Lead", Team: appModels.TeamLD, Email: "ld@talentflow.local", Password: "Training123!"},
	{EmpID: "DEL001", Name: "Delivery Lead", Team: appModels.TeamDelivery, Email: "delivery@talentflow.local", Password: "Delivery123!"},
}

// CreateDefaultData creates the default portal accounts if they don't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	employeeRepo := appRepos.NewEmployeeRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default portal accounts...")
	var finalErr error

	for _, account := range defaultAccounts {
		if _, err := employeeRepo.GetByEmpID(ctx, account.EmpID); err == nil {
			continue
		} else if !errors.Is(err, apperrors.ErrEmployeeNotFound) {
			lgr.Error().Err(err).Str("empId", account.EmpID).Msg("Error checking seed account")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(account.Password), bcrypt.DefaultCost)
		if err != nil {
			lgr.Error().Err(err).Str("empId", account.EmpID).Msg("Error hashing seed password")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		employee := &appModels.Employee{
			EmpID:    account.EmpID,
			Password: string(hashed),
			Name:     account.Name,
			Team:     account.Team,
			Email:    account.Email,
			IsActive: true,
		}
		if err := employeeRepo.Create(ctx, employee); err != nil {
			if errors.Is(err, apperrors.ErrEmployeeAlreadyExists) {
				continue
			}
			lgr.Error().Err(err).Str("empId", account.EmpID).Msg("Error creating seed account")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Info().Str("empId", account.EmpID).Str("team", string(account.Team)).Msg("Seed account created")
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
