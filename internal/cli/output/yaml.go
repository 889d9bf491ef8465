package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/data-respons-solutions/nvram/internal/core/domain"
)

// YAMLFormatter formats entries as a YAML mapping.
type YAMLFormatter struct{}

// Format writes a mapping of keys to values.
func (f *YAMLFormatter) Format(w io.Writer, entries []domain.Entry) error {
	return EncodeYAML(w, toMap(entries))
}

// EncodeYAML writes v as a YAML document.
func EncodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
