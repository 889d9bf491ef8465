// Package confloader layers configuration sources into a typed struct and
// watches files for changes.
//
// Priority (highest to lowest):
//
//  1. Overrides (command-line flags)
//  2. Environment variables (NVRAM_*)
//  3. Configuration file (YAML)
//  4. Values already present in the target struct
package confloader
