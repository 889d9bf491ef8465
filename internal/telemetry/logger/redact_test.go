package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logJSON(t *testing.T, fn func(l *slog.Logger)) map[string]any {
	t.Helper()
	restoreDefault(t)

	var buf bytes.Buffer
	l, err := New(Config{Level: "debug", Format: "json", Output: &buf})
	require.NoError(t, err)
	fn(l)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
	return entry
}

func TestRedact_EntryValue(t *testing.T) {
	entry := logJSON(t, func(l *slog.Logger) {
		l.Debug("entry set", "key", "wifi_psk", "value", "hunter2")
	})

	assert.Equal(t, "wifi_psk", entry["key"])
	assert.Equal(t, redactedValue, entry["value"])
}

func TestRedact_NestedGroup(t *testing.T) {
	entry := logJSON(t, func(l *slog.Logger) {
		l.Info("provisioned", slog.Group("entry", "key", "root_password", "value", "x"))
	})

	group, ok := entry["entry"].(map[string]any)
	require.True(t, ok, "entry group missing: %v", entry)
	assert.Equal(t, redactedValue, group["value"])
	assert.Equal(t, "root_password", group["key"])
}

func TestRedact_EmptyValueKept(t *testing.T) {
	entry := logJSON(t, func(l *slog.Logger) {
		l.Info("empty", "value", "")
	})
	assert.Equal(t, "", entry["value"])
}

func TestIsSensitiveKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"value", true},
		{"Value", true},
		{"db_password", true},
		{"client_secret", true},
		{"key", false},
		{"section", false},
		{"values", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSensitiveKey(tt.key), tt.key)
	}
}
