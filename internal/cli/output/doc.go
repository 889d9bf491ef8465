// Package output renders entry lists for the nvram command line.
//
//   - formatter.go: Formatter interface and factory
//   - text.go: key=value lines, the format the tool has always printed
//   - table.go: aligned KEY/VALUE columns
//   - json.go, yaml.go: machine-readable mappings
package output
