package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/data-respons-solutions/nvram/internal/core/domain"
	"github.com/data-respons-solutions/nvram/internal/format"
	"github.com/data-respons-solutions/nvram/internal/storage"
)

// Verify validates the configuration.
func Verify(cfg *Config) error {
	kind, err := storage.ParseKind(cfg.Interface)
	if err != nil {
		return fmt.Errorf("interface: %w", err)
	}
	if _, err := format.ParseKind(cfg.Format); err != nil {
		return fmt.Errorf("format: %w", err)
	}
	if cfg.MaxSize <= 0 {
		return errors.New("maxsize must be positive")
	}
	if err := verifyLog(&cfg.Log); err != nil {
		return err
	}

	for _, role := range domain.Roles() {
		if cfg.Section(kind, role, SlotA) == "" {
			return fmt.Errorf("%s.%s.a is required", kind, role)
		}
	}

	switch kind {
	case storage.KindEFI:
		if cfg.EFI.Dir == "" {
			return errors.New("efi.dir is required")
		}
	case storage.KindBadger:
		if cfg.Badger.Dir == "" {
			return errors.New("badger.dir is required")
		}
	case storage.KindMTD:
		if cfg.MTD.EraseSize < 0 {
			return errors.New("mtd.erasesize must not be negative")
		}
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Level)
	}
	switch strings.ToLower(cfg.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q is not one of text, json", cfg.Format)
	}
	return nil
}
