// Package scenes is the in-process stand-in for the scene configuration
// provider: it defines which scenes exist, which roles they admit, and how
// feed visibility works within them.
package scenes

import (
	"yuanfen_backend/internal/models"
)

// Definition describes one matching scene.
type Definition struct {
	Scene models.Scene
	Roles []models.Role

	// RoleFiltered scenes show a requester only the cards of the
	// complementary role (seeker sees provider cards and vice versa).
	// Non-role-filtered scenes (housing listings) are visible to everyone in
	// the scene regardless of role.
	RoleFiltered bool
}

var registry = map[models.Scene]Definition{
	models.SceneHousing: {
		Scene:        models.SceneHousing,
		Roles:        []models.Role{models.RoleSeeker, models.RoleProvider},
		RoleFiltered: false,
	},
	models.SceneDating: {
		Scene:        models.SceneDating,
		Roles:        []models.Role{models.RoleSeeker, models.RoleProvider},
		RoleFiltered: true,
	},
	models.SceneActivity: {
		Scene:        models.SceneActivity,
		Roles:        []models.Role{models.RoleSeeker, models.RoleProvider},
		RoleFiltered: true,
	},
}

// Lookup returns the definition for a scene.
func Lookup(scene models.Scene) (Definition, bool) {
	def, ok := registry[scene]
	return def, ok
}

// ValidRole reports whether role is admitted by the scene.
func (d Definition) ValidRole(role models.Role) bool {
	for _, r := range d.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Complement returns the role whose cards a requester with the given role
// should see in a role-filtered scene.
func Complement(role models.Role) models.Role {
	if role == models.RoleSeeker {
		return models.RoleProvider
	}
	return models.RoleSeeker
}
