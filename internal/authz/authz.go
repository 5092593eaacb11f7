// Package authz is the single source of truth for who may do what. Every
// state-machine transition consults it before touching the repository; UI
// affordances are advisory and re-checked here.
package authz

import (
	"jobboard/internal/common"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/company"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/user"
)

// Actor is the authenticated identity a decision is made for.
type Actor struct {
	ID   common.UUID
	Role user.Role
}

// Decision is allow, or deny with a machine-readable reason.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Reason: reason}
}

// CanApply: candidates only, the job must be active, and the (candidate,
// job) slot must be free. existing is the blocking application, if any.
func CanApply(actor Actor, target job.Job, existing *application.Application) Decision {
	if actor.Role != user.RoleCandidate {
		return deny(common.ReasonForbiddenRole)
	}
	if target.Status != job.StatusActive {
		return deny(common.ReasonInvalidState)
	}
	if existing != nil && application.Blocks(existing.Status) {
		return deny(common.ReasonDuplicate)
	}
	return allow()
}

// CanWithdraw: the owning candidate only, and only from the early states.
func CanWithdraw(actor Actor, app application.Application) Decision {
	if actor.Role != user.RoleCandidate {
		return deny(common.ReasonForbiddenRole)
	}
	if app.CandidateID != actor.ID {
		return deny(common.ReasonNotOwner)
	}
	if !application.CanWithdraw(app.Status) {
		return deny(common.ReasonInvalidState)
	}
	return allow()
}

// CanAdvanceApplication: employer (owning the job's company) or admin may
// move an application forward along the chain.
func CanAdvanceApplication(actor Actor, app application.Application, owner company.Company, to application.Status) Decision {
	switch actor.Role {
	case user.RoleAdmin:
	case user.RoleEmployer:
		if owner.OwnerID != actor.ID {
			return deny(common.ReasonNotOwner)
		}
	default:
		return deny(common.ReasonForbiddenRole)
	}
	if !application.CanAdvance(app.Status, to) {
		return deny(common.ReasonInvalidState)
	}
	return allow()
}

// CanDeleteApplication: hard delete is an admin-only, out-of-band removal.
func CanDeleteApplication(actor Actor) Decision {
	if actor.Role != user.RoleAdmin {
		return deny(common.ReasonForbiddenRole)
	}
	return allow()
}

// CanCreateJob: employers create jobs for their own company.
func CanCreateJob(actor Actor, owner company.Company) Decision {
	if actor.Role != user.RoleEmployer {
		return deny(common.ReasonForbiddenRole)
	}
	if owner.OwnerID != actor.ID {
		return deny(common.ReasonNotOwner)
	}
	return allow()
}

// CanUpdateJob: the owning employer or admin.
func CanUpdateJob(actor Actor, owner company.Company) Decision {
	switch actor.Role {
	case user.RoleAdmin:
		return allow()
	case user.RoleEmployer:
		if owner.OwnerID != actor.ID {
			return deny(common.ReasonNotOwner)
		}
		return allow()
	default:
		return deny(common.ReasonForbiddenRole)
	}
}

// CanTransitionJob covers the moderation machine: pending edges are
// admin-only, the rest are open to the owning employer or admin.
func CanTransitionJob(actor Actor, current job.Job, owner company.Company, to job.Status) Decision {
	if !job.CanTransition(current.Status, to) {
		return deny(common.ReasonInvalidState)
	}
	if job.AdminOnlyTransition(current.Status, to) {
		if actor.Role != user.RoleAdmin {
			return deny(common.ReasonForbiddenRole)
		}
		return allow()
	}
	return CanUpdateJob(actor, owner)
}

// CanModerate: admin-only actions on companies and users (status,
// verification, deletion, bans).
func CanModerate(actor Actor) Decision {
	if actor.Role != user.RoleAdmin {
		return deny(common.ReasonForbiddenRole)
	}
	return allow()
}

// ErrIfDenied converts a deny decision into the typed error the HTTP layer
// maps onto statuses. Allowed decisions return nil.
func ErrIfDenied(d Decision, message string) error {
	if d.Allowed {
		return nil
	}
	return common.NewDenied(d.Reason, message)
}
