// Package domain defines the core data model of nvram.
//
// Domain types are pure values without any IO dependencies. This package
// contains:
//
//   - Entry: one key/value record
//   - List: the key-unique, key-ordered collection exchanged between a
//     format codec and its caller
//   - Errors: the error taxonomy shared by codecs, backends and the CLI
package domain
