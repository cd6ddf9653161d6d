package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// DirStatus describes a directory the program wants to keep files in.
type DirStatus struct {
	Exists   bool
	Writable bool
	Err      error
}

// IsFile reports whether path names an existing regular file.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// AbsPath resolves path against the working directory, returning it unchanged if that fails.
func AbsPath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// ExecutableDir returns the directory holding the running binary.
func ExecutableDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(execPath), nil
}

// ProbeDir creates dir when missing and checks that files can be created in it.
func ProbeDir(dir string) DirStatus {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warnf("Cannot create directory %s: %v", dir, err)
		return DirStatus{Err: err}
	}

	status := DirStatus{Exists: true}
	f, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		log.Warnf("Cannot write to directory %s: %v", dir, err)
		status.Err = err
		return status
	}
	name := f.Name()
	f.Close()
	os.Remove(name)

	status.Writable = true
	return status
}

// WriteTOML encodes v into path. The file is written next to its target and renamed
// into place, so a crash never leaves a half-written config behind.
func WriteTOML(v any, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(v); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
