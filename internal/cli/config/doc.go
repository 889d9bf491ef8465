// Package config defines the nvram tool configuration.
//
// Files:
//
//   - spec.go: Config struct and section resolution
//   - default.go: compile-time defaults
//   - verify.go: validation
//   - loader.go: file and environment layering
//
// Every section path may be overridden from the environment, for example
// NVRAM_FILE_USER_A or NVRAM_MTD_SYSTEM_B.
package config
