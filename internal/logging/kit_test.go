package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-kit/kit/log/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreiashu/locode/internal/config"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "line: %s", line)
		entries = append(entries, entry)
	}
	return entries
}

func TestNewKitLogger(t *testing.T) {
	var buf bytes.Buffer
	kl := NewKitLogger(New(&buf, config.LogConfig{Level: "debug", Format: "json"}), "search request")

	require.NoError(t, kl.Log("method", "find_by_locode", "results", 3, "took", time.Millisecond))
	require.NoError(t, kl.Log("method", "country", "err", errors.New("not found")))
	require.NoError(t, kl.Log("method", "country", "err", nil))
	require.NoError(t, kl.Log("msg", "custom", "dangling"))
	require.NoError(t, level.Debug(kl).Log("method", "reload"))

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 5)

	assert.Equal(t, "search request", entries[0]["msg"])
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "find_by_locode", entries[0]["method"])
	assert.Equal(t, float64(3), entries[0]["results"])
	assert.Contains(t, entries[0], "took")

	assert.Equal(t, "WARN", entries[1]["level"])
	assert.Equal(t, "not found", entries[1]["err"])

	assert.Equal(t, "INFO", entries[2]["level"])
	assert.Nil(t, entries[2]["err"])

	assert.Equal(t, "custom", entries[3]["msg"])
	assert.Equal(t, "(MISSING)", entries[3]["dangling"])

	assert.Equal(t, "DEBUG", entries[4]["level"])
	assert.Equal(t, "reload", entries[4]["method"])
}

func TestNewKitLoggerHonoursHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	kl := NewKitLogger(New(&buf, config.LogConfig{Level: "warn", Format: "json"}), "search request")

	require.NoError(t, kl.Log("method", "find_by_locode"))
	assert.Empty(t, buf.String())

	require.NoError(t, kl.Log("method", "country", "err", errors.New("boom")))
	assert.Contains(t, buf.String(), `"err":"boom"`)
}
