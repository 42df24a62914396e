package scenes

import (
	"testing"

	"yuanfen_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	for _, scene := range []models.Scene{models.SceneHousing, models.SceneDating, models.SceneActivity} {
		def, ok := Lookup(scene)
		require.True(t, ok, "scene %s must be registered", scene)
		assert.Equal(t, scene, def.Scene)
		assert.True(t, def.ValidRole(models.RoleSeeker))
		assert.True(t, def.ValidRole(models.RoleProvider))
		assert.False(t, def.ValidRole("spectator"))
	}

	_, ok := Lookup("karaoke")
	assert.False(t, ok)
}

func TestHousingIsNotRoleFiltered(t *testing.T) {
	t.Parallel()

	housing, _ := Lookup(models.SceneHousing)
	assert.False(t, housing.RoleFiltered)

	dating, _ := Lookup(models.SceneDating)
	assert.True(t, dating.RoleFiltered)

	activity, _ := Lookup(models.SceneActivity)
	assert.True(t, activity.RoleFiltered)
}

func TestComplement(t *testing.T) {
	t.Parallel()

	assert.Equal(t, models.RoleProvider, Complement(models.RoleSeeker))
	assert.Equal(t, models.RoleSeeker, Complement(models.RoleProvider))
}
