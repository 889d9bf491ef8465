//go:build !linux

package storage

func clearImmutable(string) error { return nil }

func isEFIVarFS(string) bool { return false }
