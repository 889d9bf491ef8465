package config

import (
	"github.com/data-respons-solutions/nvram/internal/format"
	"github.com/data-respons-solutions/nvram/internal/storage"
)

// Default configuration values.
const (
	DefaultInterface = "file"
	DefaultFormat    = "legacy"

	DefaultFileSystemA = "/var/lib/nvram/system_a"
	DefaultFileUserA   = "/var/lib/nvram/user_a"

	DefaultMTDSystemA = "/dev/mtd_system_a"
	DefaultMTDUserA   = "/dev/mtd_user_a"

	DefaultEFISystemA = "SYSTEM_A-a4d7a396-f0df-4ee4-8c5c-2a3e3f8d4b11"
	DefaultEFIUserA   = "USER_A-a4d7a396-f0df-4ee4-8c5c-2a3e3f8d4b11"

	DefaultBadgerDir = "/var/lib/nvram/badger"

	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Default returns the default configuration.
//
// Only A sections are set for interfaces that cannot hold redundant
// copies; the legacy format rejects a configured B section.
func Default() *Config {
	return &Config{
		Interface: DefaultInterface,
		Format:    DefaultFormat,
		MaxSize:   format.DefaultMaxSize,
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		File: FileSection{Sections: Sections{
			System: Slots{A: DefaultFileSystemA},
			User:   Slots{A: DefaultFileUserA},
		}},
		MTD: MTDSection{
			Sections: Sections{
				System: Slots{A: DefaultMTDSystemA},
				User:   Slots{A: DefaultMTDUserA},
			},
			EraseSize: storage.DefaultEraseSize,
		},
		EFI: EFISection{
			Sections: Sections{
				System: Slots{A: DefaultEFISystemA},
				User:   Slots{A: DefaultEFIUserA},
			},
			Dir: storage.DefaultEFIDir,
		},
		Badger: BadgerSection{
			Sections: Sections{
				System: Slots{A: "system_a"},
				User:   Slots{A: "user_a"},
			},
			Dir: DefaultBadgerDir,
		},
	}
}
