// Package permissions keeps the whole admin/moderator/author access matrix
// in one place so it can be tested without the HTTP layer. A nil user means
// an anonymous caller.
package permissions

import "github.com/qutha/yamdb-final/internal/models"

// IsAdmin reports whether the caller holds the admin role or is a
// superuser. Superuser status grants admin-equivalent rights everywhere.
func IsAdmin(user *models.User) bool {
	if user == nil {
		return false
	}
	return user.Role == models.RoleAdmin || user.IsSuperuser
}

// IsModerator reports whether the caller holds the moderator role.
func IsModerator(user *models.User) bool {
	if user == nil {
		return false
	}
	return user.Role == models.RoleModerator
}

// CanManageCatalog gates mutating operations on titles, categories and
// genres. Reads are open to everyone, including anonymous callers.
func CanManageCatalog(user *models.User) bool {
	return IsAdmin(user)
}

// CanManageUsers gates the users collection endpoints.
func CanManageUsers(user *models.User) bool {
	return IsAdmin(user)
}

// CanEditAuthored gates mutating operations on reviews and comments:
// admins and moderators may touch anything, everyone else only their own
// records. Author-ship is necessarily object-level, so callers must load
// the target record first.
func CanEditAuthored(user *models.User, authorID string) bool {
	if user == nil {
		return false
	}
	if IsAdmin(user) || IsModerator(user) {
		return true
	}
	return user.ID == authorID
}
