package lifecycle

import (
	"fmt"

	"github.com/karthikr/talentflow/internal/app/models"
	"github.com/karthikr/talentflow/internal/pkg/apperrors"
)

// transitionsByTeam is the access matrix: which portal may initiate which
// transition. The delivery-manager capability is handled separately because
// it cuts across teams rather than belonging to one.
var transitionsByTeam = map[models.Team][]Transition{
	models.TeamHRTag: {
		TransitionSubmitCandidate,
		TransitionEditCandidate,
		TransitionSendToHROps,
		TransitionSendToAdmin,
		TransitionSendToAdminAndLD,
		TransitionSendForPermanentID,
	},
	models.TeamHROps: {
		TransitionAssignOfficeEmail,
		TransitionAssignEmployeeID,
		TransitionExitResource,
	},
	models.TeamLD: {
		TransitionSetLDStatus,
	},
	models.TeamDelivery: {
		TransitionSendToHRTag,
	},
}

// emailTransitions require the delivery-manager capability regardless of team.
var emailTransitions = map[Transition]bool{
	TransitionSendDeploymentEmail:  true,
	TransitionSendInternalTransfer: true,
}

// CanPerform reports whether the actor may initiate the transition.
func CanPerform(actor Actor, t Transition) bool {
	if emailTransitions[t] {
		return actor.CanSendEmail
	}
	for _, allowed := range transitionsByTeam[actor.Team] {
		if allowed == t {
			return true
		}
	}
	return false
}

// Authorize is CanPerform with a structured authorization error carrying the
// actor and transition for caller-side logging.
func Authorize(actor Actor, t Transition) error {
	if CanPerform(actor, t) {
		return nil
	}
	err := apperrors.NewForbiddenError(
		fmt.Sprintf("team %q may not perform %q", actor.Team, t),
	)
	if cerr, ok := err.(*apperrors.CustomError); ok {
		cerr.WithDetails(map[string]interface{}{
			"actor":      actor.EmpID,
			"team":       string(actor.Team),
			"transition": string(t),
		})
	}
	return err
}
