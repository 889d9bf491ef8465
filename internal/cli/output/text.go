package output

import (
	"bufio"
	"io"

	"github.com/data-respons-solutions/nvram/internal/core/domain"
)

// TextFormatter writes one key=value line per entry.
type TextFormatter struct{}

// Format writes entries in list order.
func (f *TextFormatter) Format(w io.Writer, entries []domain.Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		bw.Write(e.Key)
		bw.WriteByte('=')
		bw.Write(e.Value)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
