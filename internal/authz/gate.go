package authz

import "CareBowAPI/internal/model"

// Identity is the resolved, trusted representation of the caller, built
// fresh per request by the session resolver. A nil *Identity means no
// session.
type Identity struct {
	ID          int64
	Email       string
	DisplayName string
	Role        string
	HasProfile  bool
}

// Reason explains a denial. Handlers translate reasons into HTTP status
// codes with generic messages; reasons never reach response bodies verbatim.
type Reason string

const (
	ReasonUnauthenticated Reason = "UNAUTHENTICATED"
	ReasonWrongRole       Reason = "WRONG_ROLE"
	ReasonNotOwner        Reason = "NOT_OWNER"
)

type Decision struct {
	Allow  bool
	Reason Reason
}

var Allowed = Decision{Allow: true}

func Deny(r Reason) Decision {
	return Decision{Reason: r}
}

// Ownership names the user id that owns the target resource, looked up
// from the record's owning foreign key.
type Ownership struct {
	OwnerID int64
}

// Authorize is the single resource-level checkpoint used inside handlers.
// Order of checks: session, role set, ownership. Admins pass any ownership
// check. Pure function of its inputs; returns no data beyond the decision.
func Authorize(ident *Identity, required []string, owner *Ownership) Decision {
	if ident == nil {
		return Deny(ReasonUnauthenticated)
	}
	if len(required) > 0 && !hasRole(required, ident.Role) {
		return Deny(ReasonWrongRole)
	}
	if owner != nil && ident.Role != model.RoleAdmin && owner.OwnerID != ident.ID {
		return Deny(ReasonNotOwner)
	}
	return Allowed
}

func hasRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
