package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/logging"
)

func TestParseLevel(t *testing.T) {
	l, err := logging.ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, l)

	l, err = logging.ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, l)

	_, err = logging.ParseLevel("loud")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	require.NoError(t, logging.DefaultConfig().Validate())

	cfg := logging.DefaultConfig()
	cfg.Format = "xml"
	assert.ErrorIs(t, cfg.Validate(), logging.ErrInvalidFormat)

	_, err := logging.New(cfg)
	assert.ErrorIs(t, err, logging.ErrInvalidFormat)
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewWithWriter(logging.Config{Level: "warn", Format: logging.FormatJSON}, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("dropping goal", zap.Int("goal", 3))
	require.NoError(t, logger.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "dropping goal", entry["msg"])
	assert.Equal(t, "warn", entry["level"])
	assert.EqualValues(t, 3, entry["goal"])
	assert.Contains(t, entry, "ts")
}

func TestNewWithWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewWithWriter(logging.Config{Level: "debug", Format: logging.FormatConsole}, &buf)
	require.NoError(t, err)

	logger.Debug("tour ordered", zap.Int("goals", 5))
	require.NoError(t, logger.Sync())

	out := buf.String()
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "tour ordered")
	assert.Contains(t, out, `{"goals": 5}`)
}
