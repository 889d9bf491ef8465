// Package logger configures the process-wide log/slog logger.
//
//   - logger.go: handler construction and dynamic level
//   - redact.go: masking of entry values and secrets
//
// Components take a *slog.Logger in their options and fall back to
// slog.Default, which New replaces.
package logger
