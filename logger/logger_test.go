package logger

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryShape(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Config{ServiceName: "test", Output: &buf})

	l.Error(EventRequest, "request failed", Fields("status", 500, "path", "/api/Artist"))

	var entry Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, LevelError, entry.Level)
	assert.Equal(t, "test", entry.Service)
	assert.Equal(t, EventRequest, entry.EventType)
	assert.Equal(t, "request failed", entry.Message)
	assert.Equal(t, "/api/Artist", entry.Details["path"])
	assert.Equal(t, float64(500), entry.Details["status"])
	assert.NotEmpty(t, entry.Timestamp)
}

func TestOneLinePerEntry(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Config{Output: &buf})
	l.Info(EventGeneral, "one", nil)
	l.Warn(EventGeneral, "two", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.NotContains(t, lines[0], "details")
}

func TestPrintf(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Config{Output: &buf})
	l.Printf("slow sql %dms\n", 250)

	var entry Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, LevelWarn, entry.Level)
	assert.Equal(t, EventDB, entry.EventType)
	assert.Equal(t, "slow sql 250ms", entry.Message)
}

func TestFields(t *testing.T) {
	assert.Equal(t,
		map[string]interface{}{"a": 1, "c": "d"},
		Fields("a", 1, 2, "skipped", "c", "d", "dangling"))
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")
	l := NewLogger(Config{LogFilePath: path})
	l.Info(EventStartup, "hello", nil)
	assert.FileExists(t, path)
}
