package middleware

import (
	"hackhub-backend/apperr"
	"hackhub-backend/models"
)

// Capability is the access level a route or operation declares. All
// authorization decisions go through Authorize so the rules live in one
// place instead of inline role conditionals scattered across handlers.
type Capability int

const (
	// CapPublic requires nothing.
	CapPublic Capability = iota
	// CapAuthenticated requires a resolved user.
	CapAuthenticated
	// CapOrganizer requires the organizer or admin role.
	CapOrganizer
	// CapOwnerOrAdmin requires the caller to own the resource, or admin.
	CapOwnerOrAdmin
	// CapAdmin requires the admin role.
	CapAdmin
)

// Authorize evaluates (capability, caller role, resource ownership).
// ownerID is only consulted for CapOwnerOrAdmin and names the user who
// owns the resource under access.
func Authorize(user *models.User, capability Capability, ownerID string) error {
	if capability == CapPublic {
		return nil
	}
	if user == nil {
		return apperr.ErrUnauthenticated
	}
	switch capability {
	case CapAuthenticated:
		return nil
	case CapOrganizer:
		if user.CanManageEvents() {
			return nil
		}
	case CapOwnerOrAdmin:
		if user.Role == models.RoleAdmin || user.ID == ownerID {
			return nil
		}
	case CapAdmin:
		if user.Role == models.RoleAdmin {
			return nil
		}
	}
	return apperr.ErrForbidden
}
