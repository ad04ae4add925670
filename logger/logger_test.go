package logger

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/amirphl/email-feedback/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		out = append(out, entry)
	}
	return out
}

func TestLoggerWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, zapcore.InfoLevel)

	log.Info("email rating stored", "id", 42, "preference", "more")
	log.Debug("hidden at info level")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "email rating stored", entries[0]["msg"])
	assert.Equal(t, "info", entries[0]["level"])
	assert.EqualValues(t, 42, entries[0]["id"])
	assert.Equal(t, "more", entries[0]["preference"])
}

func TestLoggerRedactsSensitiveKeys(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, zapcore.DebugLevel)

	log.With("subscriber_email", "a@example.com").Warn("rating rejected", "db_password", "hunter2", "campaign_uid", "c1")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "[REDACTED]", entries[0]["subscriber_email"])
	assert.Equal(t, "[REDACTED]", entries[0]["db_password"])
	assert.Equal(t, "c1", entries[0]["campaign_uid"])
}

func TestNew(t *testing.T) {
	t.Run("rejects unknown level", func(t *testing.T) {
		_, err := New(config.LoggingConfig{Level: "chatty", Format: "json", Output: "stdout"})
		assert.Error(t, err)
	})

	t.Run("file output", func(t *testing.T) {
		log, err := New(config.LoggingConfig{
			Level:    "info",
			Format:   "console",
			Output:   "file",
			FilePath: filepath.Join(t.TempDir(), "app.log"),
			MaxSize:  1,
		})
		require.NoError(t, err)
		log.Info("written to rotating file")
		log.Sync()
	})
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	assert.NotPanics(t, func() {
		log.Error("discarded", "k", "v")
		log.Printf("slow query %s", "SELECT 1")
	})
}
