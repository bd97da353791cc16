package style

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldUseColor_ExplicitModes(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.True(t, ShouldUseColor(ColorAlways), "always overrides NO_COLOR")

	os.Unsetenv("NO_COLOR")
	t.Setenv("CLICOLOR_FORCE", "1")
	assert.False(t, ShouldUseColor(ColorNever), "never overrides CLICOLOR_FORCE")
}

func TestShouldUseColor_AutoEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	assert.False(t, ShouldUseColor(ColorAuto), "NO_COLOR disables color even when empty")

	os.Unsetenv("NO_COLOR")
	t.Setenv("CLICOLOR", "0")
	assert.False(t, ShouldUseColor(ColorAuto))

	t.Setenv("CLICOLOR", "")
	t.Setenv("CLICOLOR_FORCE", "1")
	assert.True(t, ShouldUseColor(ColorAuto))
}

func TestIsTerminal_RegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTerminal(f))
	assert.False(t, IsTerminal(nil))
}

func TestSetup_NeverRendersPlain(t *testing.T) {
	assert.False(t, Setup(ColorNever))
	assert.Equal(t, "x = 0", Success.Render("x = 0"))
	assert.Equal(t, "boom", Error.Render("boom"))
}
