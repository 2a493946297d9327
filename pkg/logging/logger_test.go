package logging

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFileLogger exercises the whole file-backed path in one test so
// the package-level init state is only driven once per test binary.
func TestFileLogger(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	logger, err := NewLogger("resolver")
	require.NoError(t, err)
	defer logger.Close()

	assert.Equal(t, "resolver", logger.component)
	assert.NotEmpty(t, logger.SessionID())
	assert.NotEmpty(t, logger.LogPath())
	assert.Contains(t, logger.LogPath(), ".voxpilot")

	logger.Debugf("scored %d tabs", 3)
	logger.Infof("selected tab %q", "GitHub")
	logger.Warnf("llm unreachable, using local classifier")
	logger.Errorf("activation failed: %v", os.ErrClosed)

	content, err := os.ReadFile(logger.LogPath())
	require.NoError(t, err)

	text := string(content)
	assert.Contains(t, text, "[resolver] [DEBUG] scored 3 tabs")
	assert.Contains(t, text, `[resolver] [INFO] selected tab "GitHub"`)
	assert.Contains(t, text, "[resolver] [WARN] llm unreachable")
	assert.Contains(t, text, "[resolver] [ERROR] activation failed")

	// Close is idempotent.
	assert.NoError(t, logger.Close())
	assert.NoError(t, logger.Close())
}

func TestSharedSessionID(t *testing.T) {
	assert.Equal(t, GetSessionID(), GetSessionID())
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Infof("goes nowhere %d", 1)
	assert.Empty(t, logger.LogPath())
	assert.NoError(t, logger.Close())
}

func TestFormatLogEntry(t *testing.T) {
	logger := NewNopLogger()
	entry := logger.formatLogEntry("INFO", "hello")
	assert.True(t, strings.HasSuffix(entry, "[nop] [INFO] hello"), entry)
}
