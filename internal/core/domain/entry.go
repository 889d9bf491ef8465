package domain

import "bytes"

// Entry is one key/value record.
type Entry struct {
	Key   []byte
	Value []byte
}

// NewEntry builds an entry from strings.
func NewEntry(key, value string) Entry {
	return Entry{Key: []byte(key), Value: []byte(value)}
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	return Entry{
		Key:   bytes.Clone(e.Key),
		Value: bytes.Clone(e.Value),
	}
}

// String renders the entry the way the legacy format stores it.
func (e Entry) String() string {
	return string(e.Key) + "=" + string(e.Value)
}

// Validate checks that the entry can be stored and read back unchanged.
//
// Keys must be non-empty, must not start with a space or tab and must be
// free of '=', '\n' and NUL. Values must be non-empty and free of '\n' and
// NUL.
func (e Entry) Validate() error {
	switch {
	case len(e.Key) == 0:
		return ErrInvalidArgument.WithDetails("empty key")
	case e.Key[0] == ' ' || e.Key[0] == '\t':
		return ErrInvalidArgument.WithDetails("key %q starts with a blank", e.Key)
	case bytes.IndexByte(e.Key, '=') >= 0:
		return ErrInvalidArgument.WithDetails("key %q contains '='", e.Key)
	case bytes.IndexByte(e.Key, '\n') >= 0:
		return ErrInvalidArgument.WithDetails("key %q contains newline", e.Key)
	case bytes.IndexByte(e.Key, 0) >= 0:
		return ErrInvalidArgument.WithDetails("key %q contains NUL", e.Key)
	case len(e.Value) == 0:
		return ErrInvalidArgument.WithDetails("empty value for key %q", e.Key)
	case bytes.IndexByte(e.Value, '\n') >= 0:
		return ErrInvalidArgument.WithDetails("value for key %q contains newline", e.Key)
	case bytes.IndexByte(e.Value, 0) >= 0:
		return ErrInvalidArgument.WithDetails("value for key %q contains NUL", e.Key)
	}
	return nil
}
