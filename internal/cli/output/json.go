package output

import (
	"encoding/json"
	"io"

	"github.com/data-respons-solutions/nvram/internal/core/domain"
)

// JSONFormatter formats entries as a JSON object.
type JSONFormatter struct{}

// Format writes an indented object mapping keys to values.
func (f *JSONFormatter) Format(w io.Writer, entries []domain.Entry) error {
	return EncodeJSON(w, toMap(entries))
}

// EncodeJSON writes v as indented JSON.
func EncodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
