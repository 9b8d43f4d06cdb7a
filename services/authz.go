package services

import (
	"github.com/Damilola-codes/lenno-sub000/apperr"
	"github.com/Damilola-codes/lenno-sub000/models"
)

// Principal is the acting identity extracted from the verified session
// token. The service layer trusts it has already been authenticated.
type Principal struct {
	UserID uint
	Role   string
}

// Action names a mutating operation for the permission table.
type Action string

const (
	ActionAcceptProposal    Action = "proposal.accept"
	ActionSubmitProposal    Action = "proposal.submit"
	ActionCreateEscrow      Action = "payment.create"
	ActionSettlePayment     Action = "payment.settle"
	ActionCreateMilestone   Action = "milestone.create"
	ActionCompleteMilestone Action = "milestone.complete"
	ActionPayMilestone      Action = "milestone.pay"
	ActionManageContract    Action = "contract.manage"
	ActionViewContract      Action = "contract.view"
)

// Owners carries the owning identities of the resource under check.
type Owners struct {
	ClientID     uint
	FreelancerID uint
}

// Decision is an explicit allow/deny with the reason for the denial.
type Decision struct {
	Allowed bool
	Reason  string
}

// side encodes which party an action belongs to.
type side int

const (
	clientSide side = iota
	freelancerSide
	eitherSide
)

var actionSides = map[Action]side{
	ActionAcceptProposal:    clientSide,
	ActionSubmitProposal:    freelancerSide,
	ActionCreateEscrow:      clientSide,
	ActionSettlePayment:     eitherSide,
	ActionCreateMilestone:   eitherSide,
	ActionCompleteMilestone: freelancerSide,
	ActionPayMilestone:      clientSide,
	ActionManageContract:    clientSide,
	ActionViewContract:      eitherSide,
}

// Authorize checks the principal against the resource owners for the
// given action. It is called after the resource has been loaded and
// before any state precondition, so a denied caller learns nothing
// about the resource's lifecycle stage.
func Authorize(action Action, owners Owners, p Principal) Decision {
	s, ok := actionSides[action]
	if !ok {
		return Decision{Reason: "unknown action"}
	}
	switch s {
	case clientSide:
		if p.UserID == owners.ClientID {
			return Decision{Allowed: true}
		}
		return Decision{Reason: "only the client may perform this action"}
	case freelancerSide:
		if p.UserID == owners.FreelancerID {
			return Decision{Allowed: true}
		}
		return Decision{Reason: "only the freelancer may perform this action"}
	default:
		if p.UserID == owners.ClientID || p.UserID == owners.FreelancerID {
			return Decision{Allowed: true}
		}
		return Decision{Reason: "you are not a party to this resource"}
	}
}

// requireRole gates operations that depend on the account role rather
// than ownership of an existing resource (e.g. posting a job).
func requireRole(p Principal, role string) error {
	if p.Role != role {
		switch role {
		case models.RoleClient:
			return apperr.Forbidden("only clients may perform this action")
		default:
			return apperr.Forbidden("only freelancers may perform this action")
		}
	}
	return nil
}

// authorize adapts a Decision into the error taxonomy.
func authorize(action Action, owners Owners, p Principal) error {
	if d := Authorize(action, owners, p); !d.Allowed {
		return apperr.Forbidden(d.Reason)
	}
	return nil
}
