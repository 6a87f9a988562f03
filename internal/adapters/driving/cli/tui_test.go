package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
	assert.Equal(t, "Launch the interactive terminal UI", tuiCmd.Short)
	assert.Contains(t, tuiCmd.Long, "ctrl+e")
}

func TestTUICmd_RefusesNonTerminal(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()
	orig := interactive
	interactive = func() bool { return false }
	defer func() { interactive = orig }()

	_, err := execute(t, "tui")

	assert.ErrorIs(t, err, errNotTerminal)
}

func TestTUICmd_MissingSession(t *testing.T) {
	defer resetFlags()
	orig := interactive
	interactive = func() bool { return true }
	defer func() { interactive = orig }()

	_, err := execute(t, "tui")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create TUI")
}
