// Package fileutil provides the physical move primitive used by the
// reconciler's executor.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
)

// MoveFile relocates src to dst. It prefers an atomic rename and falls back to
// copy-then-remove when the rename crosses devices, creating missing
// destination parent directories first. After success the source no longer
// exists and the destination holds the original bytes with the source's
// modification time.
func MoveFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}

	renameErr := os.Rename(src, dst)
	if renameErr == nil {
		return nil
	}

	var linkErr *os.LinkError
	if !errors.As(renameErr, &linkErr) || !errors.Is(linkErr.Err, syscall.EXDEV) {
		return fmt.Errorf("rename %s: %w", src, renameErr)
	}

	if err := copyPreservingTimes(src, dst); err != nil {
		return fmt.Errorf("fallback copy %s: %w", src, err)
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}

// CopyFile streams src to dst with default permissions (0o644).
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

func copyPreservingTimes(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	if err := CopyFile(src, dst); err != nil {
		return err
	}

	copied, err := os.Stat(dst)
	if err != nil {
		return fmt.Errorf("stat copy: %w", err)
	}
	if copied.Size() != info.Size() {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", info.Size(), copied.Size())
	}

	// Modification metadata is preserved on a best-effort basis.
	_ = os.Chtimes(dst, info.ModTime(), info.ModTime())
	return nil
}
