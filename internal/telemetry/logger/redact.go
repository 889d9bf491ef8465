package logger

import (
	"log/slog"
	"strings"
)

// valueKey is the attribute carrying entry values. It is masked at every
// level.
const valueKey = "value"

var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"passphrase",
}

const redactedValue = "***REDACTED***"

func redactSensitive(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	case slog.KindString:
		if a.Value.String() != "" && IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
	}
	return a
}

// IsSensitiveKey reports whether attributes named key are masked.
func IsSensitiveKey(key string) bool {
	k := strings.ToLower(key)
	if k == valueKey {
		return true
	}
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(k, pattern) {
			return true
		}
	}
	return false
}
