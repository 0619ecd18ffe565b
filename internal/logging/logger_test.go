package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "json")

	logger.Info("game created", FieldGameID, 3)
	logger.Debug("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "game created", entry["msg"])
	assert.Equal(t, float64(3), entry[FieldGameID])
}

func TestNewTextLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "error", "text")

	logger.Warn("dropped")
	assert.Empty(t, buf.String())

	logger.Error("kept")
	assert.Contains(t, buf.String(), "msg=kept")
}

func TestHelpersTolerateNilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		Warn(nil, "nothing")
		Error(nil, "nothing", nil)
	})
}

func TestErrorHelperAppendsError(t *testing.T) {
	var buf bytes.Buffer
	Error(New(&buf, "info", "text"), "insert failed", assertErr("boom"), FieldGameID, 9)

	assert.Contains(t, buf.String(), "error=boom")
	assert.Contains(t, buf.String(), "game_id=9")
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
