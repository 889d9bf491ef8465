// Package storage provides the raw storage backends of nvram.
//
// A Backend hands out one Handle per section. A Handle moves the whole
// content of its section at once: the format codec asks for the size, reads
// everything into one buffer and later writes everything back. Backends know
// nothing about the encoding of the data they store.
//
// Backends:
//
//   - file: one regular file per section, replaced atomically on write
//   - mtd: a raw flash partition (or flash image), content ends at the first
//     erased byte
//   - efi: a UEFI variable exposed through efivarfs
//   - badger: one key per section in a Badger database, for development hosts
package storage
