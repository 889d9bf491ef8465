package format

import (
	"bytes"
	"errors"

	"github.com/data-respons-solutions/nvram/internal/core/domain"
)

// Legacy grammar tokens.
const (
	separator = '='
	newline   = '\n'
)

// Reasons a record fails to decode. They are wrapped in domain.ErrCorruptData.
var (
	errMissingSeparator = errors.New("missing '='")
	errEmptyKey         = errors.New("empty key")
	errNewlineInKey     = errors.New("newline in key")
	errMissingValue     = errors.New("missing value")
	errEmptyValue       = errors.New("empty value")
)

// Decode parses a legacy section into list. An empty buffer is an empty
// section. Keys already in list are replaced by the decoded values.
//
// Decoding is all or nothing: if any record is invalid list is left
// untouched and the error wraps domain.ErrCorruptData with the offset of the
// offending record.
func Decode(buf []byte, list *domain.List) error {
	decoded := domain.NewList()
	pos := 0
	for pos < len(buf) {
		switch buf[pos] {
		case ' ', '\t', newline:
			pos++
			continue
		}

		e, n, err := decodeRecord(buf[pos:])
		if err != nil {
			return domain.ErrCorruptData.WithDetails("offset %d", pos).WithCause(err)
		}
		decoded.Set(e)
		pos += n
	}

	decoded.Ascend(func(e domain.Entry) bool {
		list.Set(e)
		return true
	})
	return nil
}

// decodeRecord parses the record at the start of rec. It returns the entry
// and the number of bytes consumed, including the record's newline.
func decodeRecord(rec []byte) (domain.Entry, int, error) {
	eq := bytes.IndexByte(rec, separator)
	switch {
	case eq < 0:
		return domain.Entry{}, 0, errMissingSeparator
	case eq == 0:
		return domain.Entry{}, 0, errEmptyKey
	case bytes.IndexByte(rec[:eq], newline) >= 0:
		return domain.Entry{}, 0, errNewlineInKey
	}

	value := rec[eq+1:]
	if len(value) == 0 {
		return domain.Entry{}, 0, errMissingValue
	}

	// The last record may omit its newline.
	end, consumed := bytes.IndexByte(value, newline), len(rec)
	if end < 0 {
		end = len(value)
	} else {
		consumed = eq + 1 + end + 1
	}
	if end == 0 {
		return domain.Entry{}, 0, errEmptyValue
	}

	return domain.Entry{
		Key:   bytes.Clone(rec[:eq]),
		Value: bytes.Clone(value[:end]),
	}, consumed, nil
}

// Encode renders list as a legacy section, one "key=value\n" record per
// entry in list order.
//
// Keys and values are expected to be text. A NUL byte ends the field it
// appears in, so "k\x00x" is stored as "k"; callers that need the value back
// unchanged must validate entries first (domain.Entry.Validate).
func Encode(list *domain.List) ([]byte, error) {
	return encode(list, 0)
}

// encode sizes the output in a dry run, refuses outputs above maxSize
// (0 = unlimited) and fills a single exactly sized buffer. The buffer keeps
// one trailing NUL that is not part of the returned section.
func encode(list *domain.List, maxSize int) ([]byte, error) {
	size := 0
	list.Ascend(func(e domain.Entry) bool {
		size += recordLen(e)
		return true
	})
	if maxSize > 0 && size > maxSize {
		return nil, domain.ErrOutOfMemory.WithDetails("section needs %d bytes, limit is %d", size, maxSize)
	}
	size++

	buf := make([]byte, 0, size)
	list.Ascend(func(e domain.Entry) bool {
		buf = appendRecord(buf, e)
		return true
	})
	buf = append(buf, 0)

	if len(buf) != size {
		return nil, domain.ErrInvalidArgument.WithDetails("encoded %d bytes, sized %d", len(buf), size)
	}
	return buf[:size-1], nil
}

func recordLen(e domain.Entry) int {
	return len(cstring(e.Key)) + 1 + len(cstring(e.Value)) + 1
}

func appendRecord(buf []byte, e domain.Entry) []byte {
	buf = append(buf, cstring(e.Key)...)
	buf = append(buf, separator)
	buf = append(buf, cstring(e.Value)...)
	return append(buf, newline)
}

// cstring cuts b at its first NUL.
func cstring(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}
