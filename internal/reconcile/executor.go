package reconcile

import (
	"os"

	"epsync/internal/fileutil"
)

// Executor carries out the physical filesystem effects of a decision. The
// reconciler trusts its success or failure to decide whether the in-memory
// destination view is updated.
type Executor interface {
	Move(src, dst string) error
	Remove(path string) error
}

// FilesystemExecutor performs real moves and removals.
type FilesystemExecutor struct{}

func (FilesystemExecutor) Move(src, dst string) error {
	return fileutil.MoveFile(src, dst)
}

func (FilesystemExecutor) Remove(path string) error {
	return os.Remove(path)
}
