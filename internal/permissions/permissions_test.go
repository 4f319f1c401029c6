package permissions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qutha/yamdb-final/internal/models"
	"github.com/qutha/yamdb-final/internal/permissions"
)

func user(id, role string) *models.User {
	return &models.User{ID: id, Role: role}
}

func TestIsAdmin(t *testing.T) {
	assert.False(t, permissions.IsAdmin(nil), "anonymous is never admin")
	assert.False(t, permissions.IsAdmin(user("u1", models.RoleUser)))
	assert.False(t, permissions.IsAdmin(user("u1", models.RoleModerator)))
	assert.True(t, permissions.IsAdmin(user("u1", models.RoleAdmin)))

	superuser := user("u1", models.RoleUser)
	superuser.IsSuperuser = true
	assert.True(t, permissions.IsAdmin(superuser), "superuser flag grants admin rights regardless of role")
}

func TestIsModerator(t *testing.T) {
	assert.False(t, permissions.IsModerator(nil))
	assert.False(t, permissions.IsModerator(user("u1", models.RoleUser)))
	assert.True(t, permissions.IsModerator(user("u1", models.RoleModerator)))
	assert.False(t, permissions.IsModerator(user("u1", models.RoleAdmin)), "admin role is not the moderator role")
}

func TestCanManageCatalog(t *testing.T) {
	assert.False(t, permissions.CanManageCatalog(nil))
	assert.False(t, permissions.CanManageCatalog(user("u1", models.RoleUser)))
	assert.False(t, permissions.CanManageCatalog(user("u1", models.RoleModerator)))
	assert.True(t, permissions.CanManageCatalog(user("u1", models.RoleAdmin)))
}

func TestCanEditAuthored(t *testing.T) {
	const authorID = "author-1"

	tests := []struct {
		name    string
		caller  *models.User
		allowed bool
	}{
		{"anonymous", nil, false},
		{"author", user(authorID, models.RoleUser), true},
		{"other user", user("other", models.RoleUser), false},
		{"moderator", user("other", models.RoleModerator), true},
		{"admin", user("other", models.RoleAdmin), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, permissions.CanEditAuthored(tt.caller, authorID))
		})
	}

	superuser := user("other", models.RoleUser)
	superuser.IsSuperuser = true
	assert.True(t, permissions.CanEditAuthored(superuser, authorID))
}
