// Package authz decides whether a caller may perform an action. It is a
// predicate over already-fetched entities and the caller's role; it performs
// no persistence.
package authz

import (
	"fmt"

	"consite/internal/errors"
	"consite/internal/model"
)

// Reason distinguishes the two causes of a denial for logging and tests.
// Both surface to the caller as the same authorization failure.
type Reason string

const (
	// ReasonInsufficientPermission means the caller's role lacks the permission.
	ReasonInsufficientPermission Reason = "insufficient_permission"
	// ReasonRelationshipViolation means the role qualifies but a resource-level
	// relationship does not hold, e.g. acting on another site's order.
	ReasonRelationshipViolation Reason = "relationship_violation"
)

// Relationship is a named resource-level predicate evaluated during
// authorization.
type Relationship struct {
	Name string
	OK   bool
}

// DeniedError reports a failed authorization with its reason.
type DeniedError struct {
	Reason Reason
	Detail string
	err    *errors.Error
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("authorization denied (%s): %s", e.Reason, e.Detail)
}

// Unwrap exposes the underlying Unauthorized error so the denial maps to the
// standard error taxonomy.
func (e *DeniedError) Unwrap() error {
	return e.err
}

func deny(reason Reason, detail string) *DeniedError {
	return &DeniedError{
		Reason: reason,
		Detail: detail,
		err:    errors.Unauthorized("you are not permitted to perform this action"),
	}
}

// Authorize allows the action iff the caller's role owns the required
// permission and every supplied relationship holds.
func Authorize(callerRole model.Role, required model.Permission, relationships ...Relationship) error {
	if !model.HasPermission(callerRole, required) {
		return deny(ReasonInsufficientPermission, string(required))
	}
	for _, rel := range relationships {
		if !rel.OK {
			return deny(ReasonRelationshipViolation, rel.Name)
		}
	}
	return nil
}

// OwnSite holds when the caller is allocated to the given site.
func OwnSite(caller *model.User, siteID uint) Relationship {
	return Relationship{
		Name: "resource belongs to caller's site",
		OK:   caller.SiteID != nil && *caller.SiteID == siteID,
	}
}

// AssignedSupplier holds when the caller is the supplier assigned to the order.
func AssignedSupplier(caller *model.User, order *model.OrderDetails) Relationship {
	return Relationship{
		Name: "caller is the order's assigned supplier",
		OK:   order.SupplierID != nil && *order.SupplierID == caller.ID,
	}
}
