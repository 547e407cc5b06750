// Package policy holds the stateless role-based visibility rules.
// Keeping them as pure functions over token claims keeps authorization
// out of the repositories and the lease manager entirely.
package policy

import (
	"github.com/arktribe/tribestore/internal/model"
	"github.com/arktribe/tribestore/internal/utils"
)

// CanSeeUser reports whether the caller may view the target user.
// Superusers see everyone; admins see members of their own tribe;
// everyone sees themselves.
func CanSeeUser(caller utils.Claims, target model.User) bool {
	if caller.IsSuperuser {
		return true
	}
	if caller.UserID == target.ID {
		return true
	}
	if caller.Role == model.RoleAdmin && caller.TribeID != nil && target.TribeID != nil {
		return *caller.TribeID == *target.TribeID
	}
	return false
}

// FilterUsers returns the subset of users visible to the caller.
func FilterUsers(caller utils.Claims, users []model.User) []model.User {
	visible := make([]model.User, 0, len(users))
	for _, u := range users {
		if CanSeeUser(caller, u) {
			visible = append(visible, u)
		}
	}
	return visible
}

// CanManageUsers reports whether the caller may create, update or
// delete user records. Mutation stays with superusers and admins.
func CanManageUsers(caller utils.Claims) bool {
	return caller.IsSuperuser || caller.Role == model.RoleAdmin
}
