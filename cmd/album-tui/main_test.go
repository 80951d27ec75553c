package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/album-downloader/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ReturnsConfigErrors(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "tui.log")

	unsupported := filepath.Join(dir, "settings.ini")
	require.NoError(t, os.WriteFile(unsupported, []byte("x=1"), 0o644))

	invalid := filepath.Join(dir, "settings.toml")
	require.NoError(t, os.WriteFile(invalid, []byte("simultaneous = 0\n"), 0o644))

	assert.ErrorIs(t, run(unsupported, logPath), config.ErrInvalidSettings)
	assert.ErrorIs(t, run(invalid, logPath), config.ErrInvalidSettings)
	assert.NoFileExists(t, logPath, "no log file is opened before settings are valid")
}
