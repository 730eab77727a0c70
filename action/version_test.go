package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dalrrd-emc/emc"
)

func TestShowVersion(t *testing.T) {
	svc, _, _ := testService(t)

	t.Run("git sha unset", func(t *testing.T) {
		t.Setenv("GIT_COMMIT", "")
		info := svc.ShowVersion()
		assert.Equal(t, emc.Version, info.Version)
		assert.Nil(t, info.GitSHA)
	})

	t.Run("git sha set", func(t *testing.T) {
		t.Setenv("GIT_COMMIT", "0a1b2c3d")
		info := svc.ShowVersion()
		assert.Equal(t, emc.Version, info.Version)
		require.NotNil(t, info.GitSHA)
		assert.Equal(t, "0a1b2c3d", *info.GitSHA)
	})
}
