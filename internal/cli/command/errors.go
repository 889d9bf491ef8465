package command

import (
	"fmt"

	"github.com/data-respons-solutions/nvram/internal/core/domain"
)

// ErrorMessage renders err for stderr. Domain errors carry their code so
// scripts can match on it.
func ErrorMessage(err error) string {
	if code := domain.GetErrorCode(err); code != "" {
		return fmt.Sprintf("error [%s]: %v", code, err)
	}
	return fmt.Sprintf("error: %v", err)
}
