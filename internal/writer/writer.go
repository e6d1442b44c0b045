// Package writer persists the final virtual file tree to disk. The writer
// diffs the final tree against the initial snapshot: changed and new files
// are written, files removed during generation are deleted, and untouched
// files are left alone.
package writer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/scaffold/internal/observability"
	"git.home.luguber.info/inful/scaffold/internal/tree"
)

// Writer persists a generated tree under a root directory.
type Writer interface {
	Write(ctx context.Context, dir string, files, initial tree.Tree) error
}

// DiskWriter is the stock diff-based Writer.
type DiskWriter struct{}

// NewDiskWriter creates the default writer.
func NewDiskWriter() *DiskWriter {
	return &DiskWriter{}
}

// Write persists files under dir. Paths are validated to stay inside dir.
func (DiskWriter) Write(ctx context.Context, dir string, files, initial tree.Tree) error {
	for _, path := range initial.Paths() {
		if files.Has(path) {
			continue
		}
		full, err := securePath(dir, path)
		if err != nil {
			return err
		}
		if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", path, err)
		}
		observability.DebugContext(ctx, "removed file", slog.String("path", path))
	}

	written := 0
	for _, path := range files.Paths() {
		content, _ := files.Read(path)
		if prev, ok := initial.Read(path); ok && bytes.Equal(prev, content) {
			continue
		}
		full, err := securePath(dir, path)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
			return fmt.Errorf("create directory for %s: %w", path, err)
		}
		if err := os.WriteFile(full, content, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written++
	}
	observability.InfoContext(ctx, "wrote file tree",
		slog.String("dir", dir), slog.Int("files", written))
	return nil
}

// securePath joins path under dir and rejects traversal outside it.
func securePath(dir, path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("path %s escapes project directory", path)
	}
	full := filepath.Join(dir, clean)
	rel, err := filepath.Rel(dir, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("path %s escapes project directory", path)
	}
	return full, nil
}
