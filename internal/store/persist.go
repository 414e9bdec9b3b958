// Package store implements the external lookup tables spec.md §3/§6
// describes as read-only from the core's perspective: history,
// bookmarks, the jump database, aliases, workspaces, remotes, tags, the
// prompt theme table, and the binary-command index. Each table is a
// contiguous slice indexed by a typed handle (spec.md §9's
// pointer-to-index note), persisted with the teacher's replace-via-
// temp-file pattern.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/tern-fm/tern/internal/config"
)

// writeFileAtomic writes data to path by creating a temp file alongside
// it and renaming over the target, exactly the sequence
// internal/config/save.go's SaveWithFileOps uses for config.yaml, reused
// here verbatim for every store file (history.cfm, jump.cfm,
// bookmarks.cfm, nets.cfm, ...).
func writeFileAtomic(fileOps config.FileOps, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fileOps.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	tmp, err := fileOps.CreateTemp(dir, ".tern-store-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}
	tmpName := tmp.Name()
	if runtime.GOOS != "windows" {
		_ = fileOps.Chmod(tmpName, 0600)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = fileOps.Remove(tmpName)
		return fmt.Errorf("write temp store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = fileOps.Remove(tmpName)
		return fmt.Errorf("close temp store file: %w", err)
	}

	if runtime.GOOS == "windows" {
		_ = fileOps.Remove(path)
	}
	if err := fileOps.Rename(tmpName, path); err != nil {
		_ = fileOps.Remove(tmpName)
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

// readFileIfExists returns the file's contents, or (nil, nil) if it does
// not exist yet — a fresh install has no history/bookmarks/jump files.
func readFileIfExists(fileOps config.FileOps, path string) ([]byte, error) {
	data, err := fileOps.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}
