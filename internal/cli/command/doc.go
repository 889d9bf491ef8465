// Package command defines the nvram command line using urfave/cli/v2.
//
//   - root.go: application, global flags, per-invocation state
//   - store.go: opening the selected section
//   - entry.go: list, get, set and delete
//   - watch.go: follow a file section
//   - info.go: version and effective configuration
//
// User commands operate on the user section. --sys selects the system
// section instead; the other section is never opened.
package command
