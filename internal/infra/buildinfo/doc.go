// Package buildinfo reports the version of the nvram binary.
//
// Release builds inject values via ldflags:
//
//	go build -ldflags "-X github.com/data-respons-solutions/nvram/internal/infra/buildinfo.Version=v1.2.0"
//
// Without ldflags the VCS stamp recorded by the Go toolchain is used.
package buildinfo
