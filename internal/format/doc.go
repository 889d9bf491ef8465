// Package format provides the on-disk encodings of nvram sections.
//
// A Format couples a codec with a storage backend. Open reads a section
// through the backend and decodes it into the caller's domain.List; the
// returned Session writes the list back with Commit and releases the
// backend handle with Close.
//
// Legacy format:
//
//	key1=value1\n
//	key2=value2\n
//
// One record per line, keys and values are non-empty, keys never contain
// '=' or '\n'. Blank lines and leading spaces or tabs are ignored when
// reading. Records are written in ascending key order and the last record
// keeps its trailing newline. The legacy format uses a single section;
// redundancy slot B is rejected.
package format
