package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDir points the package at a temporary log directory and resets
// the global session state.
func setupTestDir(t *testing.T) {
	t.Helper()

	tempDir := t.TempDir()

	origLogDir := logDir
	origInitErr := initErr
	origInitOnce := initOnce
	origSessionID := sessionID
	origSessionIDOnce := sessionIDOnce

	logDir = tempDir
	initErr = nil
	initOnce = sync.Once{}
	initOnce.Do(func() {}) // mark initialized so the temp dir is kept
	sessionID = ""
	sessionIDOnce = sync.Once{}

	t.Cleanup(func() {
		logDir = origLogDir
		initErr = origInitErr
		initOnce = origInitOnce
		sessionID = origSessionID
		sessionIDOnce = origSessionIDOnce
	})
}

func TestNewLogger(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("overlay")
	require.NoError(t, err)
	defer logger.Close()

	assert.Equal(t, "overlay", logger.component)
	assert.NotEmpty(t, logger.sessionID)
	assert.NotEmpty(t, logger.logPath)

	_, err = os.Stat(logger.logPath)
	assert.NoError(t, err, "log file should exist")
}

func TestLoggerFormatting(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("test")
	require.NoError(t, err)
	defer logger.Close()

	logger.Infof("Info message %d", 123)
	logger.Warnf("Warning message")
	logger.Errorf("Error message")
	logger.Verbosef("Verbose message")
	logger.Tracef("injection failed after %d attempts", 10)

	content, err := os.ReadFile(logger.logPath)
	require.NoError(t, err)

	logContent := string(content)
	expectedPatterns := []string{
		"[test] [INFO] Info message 123",
		"[test] [WARN] Warning message",
		"[test] [ERROR] Error message",
		"[test] [VERBOSE] Verbose message",
		"[test] [TRACE] injection failed after 10 attempts",
	}

	for _, pattern := range expectedPatterns {
		assert.Contains(t, logContent, pattern)
	}
}

func TestMultipleComponentsShareSessionFile(t *testing.T) {
	setupTestDir(t)

	logger1, err := NewLogger("browser")
	require.NoError(t, err)
	defer logger1.Close()

	logger2, err := NewLogger("overlay")
	require.NoError(t, err)
	defer logger2.Close()

	assert.Equal(t, logger1.sessionID, logger2.sessionID)
	assert.Equal(t, logger1.logPath, logger2.logPath)

	logger1.Infof("from browser")
	logger2.Infof("from overlay")

	content, err := os.ReadFile(logger1.logPath)
	require.NoError(t, err)

	assert.Contains(t, string(content), "[browser]")
	assert.Contains(t, string(content), "[overlay]")
}

func TestGetSessionID(t *testing.T) {
	setupTestDir(t)

	id1 := GetSessionID()
	id2 := GetSessionID()

	assert.Equal(t, id1, id2)
	assert.NotEmpty(t, id1)
}

func TestGetLogDirectory(t *testing.T) {
	setupTestDir(t)

	dir, err := GetLogDirectory()
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoggerCloseIsIdempotent(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("test")
	require.NoError(t, err)

	assert.NoError(t, logger.Close())
	assert.NoError(t, logger.Close())
}

func TestLogPathFormat(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("test")
	require.NoError(t, err)
	defer logger.Close()

	fileName := filepath.Base(logger.logPath)
	assert.True(t, strings.HasSuffix(fileName, ".log"))

	// The file is named by the UUID session ID
	sessionPart := strings.TrimSuffix(fileName, ".log")
	assert.Equal(t, logger.sessionID, sessionPart)
	assert.Contains(t, sessionPart, "-")
}
