// Package permissions evaluates the access policies attached to each route
// and resource.
package permissions

import (
	"github.com/spyne-social/api-go/apperror"
	"github.com/spyne-social/api-go/models"
)

type Policy int

const (
	// Public allows anonymous callers.
	Public Policy = iota
	// Authenticated requires a caller for every operation.
	Authenticated
	// OwnerOnly leaves reads unrestricted; mutations require the owner.
	OwnerOnly
	// OwnerOrReadOnly requires a caller; mutations require the owner.
	OwnerOrReadOnly
)

func (p Policy) String() string {
	switch p {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case OwnerOnly:
		return "owner_only"
	case OwnerOrReadOnly:
		return "owner_or_read_only"
	default:
		return "unknown"
	}
}

type Operation int

const (
	Read Operation = iota
	Create
	Update
	Delete
)

func (op Operation) IsSafe() bool {
	return op == Read
}

// Owned is implemented by every entity that records its creator.
type Owned interface {
	OwnerID() uint
}

const (
	notAuthenticatedDetail = "Authentication credentials were not provided."
	forbiddenDetail        = "You do not have permission to perform this action."
)

// Authorize decides whether caller may perform op on resource under policy.
// A nil caller is anonymous. A nil resource means a collection-level check
// (list or create), where ownership cannot apply yet. Authentication is always
// checked before ownership.
func Authorize(policy Policy, caller *models.User, resource Owned, op Operation) error {
	switch policy {
	case Public:
		return nil
	case Authenticated:
		if caller == nil {
			return apperror.NewUnauthenticated(notAuthenticatedDetail)
		}
		return nil
	case OwnerOnly:
		if op.IsSafe() {
			return nil
		}
		if caller == nil {
			return apperror.NewUnauthenticated(notAuthenticatedDetail)
		}
		return checkOwner(caller, resource)
	case OwnerOrReadOnly:
		if caller == nil {
			return apperror.NewUnauthenticated(notAuthenticatedDetail)
		}
		if op.IsSafe() {
			return nil
		}
		return checkOwner(caller, resource)
	}
	return apperror.NewForbidden(forbiddenDetail)
}

func checkOwner(caller *models.User, resource Owned) error {
	if resource == nil {
		return nil
	}
	if resource.OwnerID() != caller.ID {
		return apperror.NewForbidden(forbiddenDetail)
	}
	return nil
}
