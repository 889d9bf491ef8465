package config

import (
	"fmt"

	"github.com/data-respons-solutions/nvram/internal/core/domain"
	"github.com/data-respons-solutions/nvram/internal/storage"
)

// Config is the configuration for the nvram tool.
type Config struct {
	// Interface selects the storage backend: file, mtd, efi or badger.
	Interface string `koanf:"interface" yaml:"interface"`

	// Format selects the on-disk format.
	Format string `koanf:"format" yaml:"format"`

	// MaxSize is the largest section in bytes that is read or written.
	MaxSize int `koanf:"maxsize" yaml:"maxsize"`

	Log     LogSection     `koanf:"log" yaml:"log"`
	File    FileSection    `koanf:"file" yaml:"file"`
	MTD     MTDSection     `koanf:"mtd" yaml:"mtd"`
	EFI     EFISection     `koanf:"efi" yaml:"efi"`
	Badger  BadgerSection  `koanf:"badger" yaml:"badger"`
	Metrics MetricsSection `koanf:"metrics" yaml:"metrics"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level" yaml:"level"`   // debug, info, warn, error
	Format string `koanf:"format" yaml:"format"` // text, json
}

// Slots names the A and B sections of one role.
type Slots struct {
	A string `koanf:"a" yaml:"a"`
	B string `koanf:"b" yaml:"b"`
}

// Sections holds the system and user slots of one interface.
type Sections struct {
	System Slots `koanf:"system" yaml:"system"`
	User   Slots `koanf:"user" yaml:"user"`
}

// FileSection configures the file interface. Sections are file paths.
type FileSection struct {
	Sections `koanf:",squash" yaml:",inline"`
}

// MTDSection configures the mtd interface. Sections are device nodes.
type MTDSection struct {
	Sections  `koanf:",squash" yaml:",inline"`
	EraseSize int `koanf:"erasesize" yaml:"erasesize"`
}

// EFISection configures the efi interface. Sections are NAME-GUID
// variable identifiers below Dir.
type EFISection struct {
	Sections `koanf:",squash" yaml:",inline"`
	Dir      string `koanf:"dir" yaml:"dir"`
}

// BadgerSection configures the badger interface. Sections are keys in the
// database at Dir.
type BadgerSection struct {
	Sections `koanf:",squash" yaml:",inline"`
	Dir      string `koanf:"dir" yaml:"dir"`
}

// MetricsSection configures metrics export.
type MetricsSection struct {
	// Textfile is written in the node_exporter textfile format after every
	// command when set.
	Textfile string `koanf:"textfile" yaml:"textfile"`
}

// Slot selects the A or B section of a role.
type Slot int

const (
	SlotA Slot = iota
	SlotB
)

// String returns the slot name.
func (s Slot) String() string {
	switch s {
	case SlotA:
		return "a"
	case SlotB:
		return "b"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// Section resolves the section identifier for an interface, role and slot.
// An unknown combination resolves to "".
func (c *Config) Section(kind storage.Kind, role domain.Role, slot Slot) string {
	var s *Sections
	switch kind {
	case storage.KindFile:
		s = &c.File.Sections
	case storage.KindMTD:
		s = &c.MTD.Sections
	case storage.KindEFI:
		s = &c.EFI.Sections
	case storage.KindBadger:
		s = &c.Badger.Sections
	default:
		return ""
	}

	var slots Slots
	switch role {
	case domain.RoleSystem:
		slots = s.System
	case domain.RoleUser:
		slots = s.User
	default:
		return ""
	}

	switch slot {
	case SlotA:
		return slots.A
	case SlotB:
		return slots.B
	default:
		return ""
	}
}

// StorageOptions returns the backend options derived from c.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		EFIDir:    c.EFI.Dir,
		BadgerDir: c.Badger.Dir,
		EraseSize: c.MTD.EraseSize,
	}
}
