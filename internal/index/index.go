// Package index walks a media tree and maps every episode identity found in
// it to the single best-scoring file for that identity.
package index

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"epsync/internal/identity"
	"epsync/internal/logging"
	"epsync/internal/scoring"
)

// Candidate pairs a file's absolute path with its quality score.
type Candidate struct {
	Path  string
	Score int
}

// Index maps episode identities to the best candidate found in one tree.
// At most one entry exists per identity.
type Index map[identity.Identity]Candidate

// TieBreak selects how intra-tree duplicates of an identity are resolved.
type TieBreak string

const (
	// TieBreakScore keeps the highest-scoring file; equal scores keep the
	// first one encountered in traversal order.
	TieBreakScore TieBreak = "score"
	// TieBreakFirstSeen keeps the first file encountered regardless of score,
	// matching the tool's historical behavior.
	TieBreakFirstSeen TieBreak = "first"
)

// Options control index construction.
type Options struct {
	TieBreak TieBreak
}

// Build enumerates every file under root in lexical order and indexes those
// carrying an episode code. Files without a code are invisible to all
// downstream logic. Unreadable subdirectories are skipped with a warning; an
// unreadable root fails the build.
func Build(root string, rules []scoring.Rule, opts Options, logger *slog.Logger) (Index, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	tieBreak := opts.TieBreak
	if tieBreak == "" {
		tieBreak = TieBreakScore
	}

	idx := make(Index)
	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fmt.Errorf("walk tree %s: %w", root, err)
			}
			logger.Warn("skipping unreadable directory",
				logging.String(logging.FieldPath, path),
				logging.Error(err))
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}

		id, ok := identity.FromFile(path, root)
		if !ok {
			logger.Debug("no episode code, ignoring",
				logging.String(logging.FieldPath, path))
			return nil
		}
		score := scoring.Score(entry.Name(), rules)
		logger.Debug("indexed file",
			logging.String(logging.FieldPath, path),
			logging.String(logging.FieldIdentity, id.String()),
			logging.Int("score", score))

		current, exists := idx[id]
		switch {
		case !exists:
			idx[id] = Candidate{Path: path, Score: score}
		case tieBreak == TieBreakFirstSeen:
			// First file wins outright.
		case score > current.Score:
			idx[id] = Candidate{Path: path, Score: score}
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return idx, nil
}

// Identities returns the index keys in their total order, for deterministic
// iteration.
func (idx Index) Identities() []identity.Identity {
	ids := make([]identity.Identity, 0, len(idx))
	for id := range idx {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, identity.Identity.Compare)
	return ids
}

// Probe reports whether root is a directory and how many entries (files and
// directories) live beneath it. Used by the run preconditions.
func Probe(root string) (bool, int, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, 0, nil
		}
		return false, 0, fmt.Errorf("stat tree %s: %w", root, err)
	}
	if !info.IsDir() {
		return false, 0, nil
	}

	count := 0
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if path == root {
			return nil
		}
		count++
		return nil
	})
	if err != nil {
		return true, count, fmt.Errorf("probe tree %s: %w", root, err)
	}
	return true, count, nil
}
