package reconcile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"epsync/internal/identity"
	"epsync/internal/index"
	"epsync/internal/logging"
)

// Skip reasons form a fixed vocabulary; tooling downstream matches on the
// exact text.
const (
	ReasonCollision = "collision in target"
	ReasonCanceled  = "user canceled"
	ReasonPresent   = "code present in target"
	ReasonOutranked = "lower-scored than target"
)

// Outcome is the terminal state of one source identity within a run.
type Outcome string

const (
	OutcomeMoved            Outcome = "moved"
	OutcomeOverwritten      Outcome = "overwritten"
	OutcomeSkippedCollision Outcome = "skipped-collision"
	OutcomeSkippedPresent   Outcome = "skipped-present"
	OutcomeSkippedOutranked Outcome = "skipped-outranked"
	OutcomeSkippedCanceled  Outcome = "skipped-canceled"
	OutcomeFailed           Outcome = "failed"
)

// Decision records what happened to one source identity.
type Decision struct {
	Identity identity.Identity
	Source   index.Candidate
	DestPath string
	Outcome  Outcome
	Reason   string
	Err      error
}

// Options configure a Reconciler.
type Options struct {
	Executor  Executor
	Confirmer Confirmer
	Policy    ConfirmationPolicy
	DryRun    bool
	Output    io.Writer
	Logger    *slog.Logger
}

// Reconciler drives the per-identity decision loop. It exclusively owns its
// in-memory view of the destination index and updates that view after each
// confirmed non-dry-run success, so later identities observe moves made
// earlier in the same run.
type Reconciler struct {
	sourceRoot string
	destRoot   string
	dest       index.Index
	exec       Executor
	confirmer  Confirmer
	policy     ConfirmationPolicy
	dryRun     bool
	out        io.Writer
	logger     *slog.Logger
}

// New constructs a reconciler over the given roots and destination index.
func New(sourceRoot, destRoot string, dest index.Index, opts Options) *Reconciler {
	exec := opts.Executor
	if exec == nil {
		exec = FilesystemExecutor{}
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if dest == nil {
		dest = make(index.Index)
	}
	return &Reconciler{
		sourceRoot: sourceRoot,
		destRoot:   destRoot,
		dest:       dest,
		exec:       exec,
		confirmer:  opts.Confirmer,
		policy:     opts.Policy,
		dryRun:     opts.DryRun,
		out:        out,
		logger:     logging.NewComponentLogger(opts.Logger, "reconcile"),
	}
}

// Run evaluates every identity in the source index, in sorted identity order,
// and returns the decision made for each. A failed move is reported and
// recorded but does not abort the run; only context cancellation does.
func (r *Reconciler) Run(ctx context.Context, source index.Index) ([]Decision, error) {
	decisions := make([]Decision, 0, len(source))
	for _, id := range source.Identities() {
		if err := ctx.Err(); err != nil {
			return decisions, err
		}
		decision := r.evaluate(ctx, id, source[id])
		decisions = append(decisions, decision)
	}
	return decisions, nil
}

func (r *Reconciler) evaluate(ctx context.Context, id identity.Identity, src index.Candidate) Decision {
	logger := logging.WithContext(ctx, r.logger).With(
		logging.String(logging.FieldIdentity, id.String()),
		logging.String("source", src.Path),
	)
	decision := Decision{Identity: id, Source: src}

	destPath, err := r.destPath(src.Path)
	if err != nil {
		decision.Outcome = OutcomeFailed
		decision.Err = err
		r.emitError(src.Path, err)
		logger.Error("destination path resolution failed", logging.Error(err))
		return decision
	}
	decision.DestPath = destPath

	incumbent, present := r.dest[id]
	if present {
		switch {
		case src.Score > incumbent.Score:
			return r.overwrite(decision, incumbent, logger)
		case src.Score == incumbent.Score:
			logger.Debug("identity already present at equal score",
				logging.String("incumbent", incumbent.Path))
			return r.skip(decision, OutcomeSkippedPresent, ReasonPresent)
		default:
			logger.Debug("identity outranked by destination",
				logging.Int("source_score", src.Score),
				logging.Int("destination_score", incumbent.Score))
			return r.skip(decision, OutcomeSkippedOutranked, ReasonOutranked)
		}
	}

	// Identity absence never overrides a literal path collision: an untracked
	// file occupying the slot always wins.
	if _, statErr := os.Stat(destPath); statErr == nil {
		logger.Debug("destination slot occupied by untracked file",
			logging.String(logging.FieldPath, destPath))
		return r.skip(decision, OutcomeSkippedCollision, ReasonCollision)
	}

	return r.move(decision, logger)
}

func (r *Reconciler) move(decision Decision, logger *slog.Logger) Decision {
	approved, err := r.policy.Approve(r.confirmer, decision.Source.Path, decision.DestPath)
	if err != nil {
		logger.Warn("confirmation failed, treating as rejection", logging.Error(err))
		approved = false
	}
	if !approved {
		return r.skip(decision, OutcomeSkippedCanceled, ReasonCanceled)
	}

	if r.dryRun {
		decision.Outcome = OutcomeMoved
		fmt.Fprintf(r.out, "DRY-RUN: %s => %s\n", decision.Source.Path, decision.DestPath)
		return decision
	}

	if err := r.exec.Move(decision.Source.Path, decision.DestPath); err != nil {
		decision.Outcome = OutcomeFailed
		decision.Err = err
		r.emitError(decision.Source.Path, err)
		logger.Error("move failed", logging.Error(err))
		return decision
	}

	decision.Outcome = OutcomeMoved
	fmt.Fprintf(r.out, "MOVE: %s => %s\n", decision.Source.Path, decision.DestPath)
	r.dest[decision.Identity] = index.Candidate{Path: decision.DestPath, Score: decision.Source.Score}
	logger.Info("moved", logging.String("destination", decision.DestPath))
	return decision
}

func (r *Reconciler) overwrite(decision Decision, incumbent index.Candidate, logger *slog.Logger) Decision {
	approved, err := r.policy.Approve(r.confirmer, decision.Source.Path, decision.DestPath)
	if err != nil {
		logger.Warn("confirmation failed, treating as rejection", logging.Error(err))
		approved = false
	}
	if !approved {
		return r.skip(decision, OutcomeSkippedCanceled, ReasonCanceled)
	}

	if r.dryRun {
		decision.Outcome = OutcomeOverwritten
		fmt.Fprintf(r.out, "DRY-RUN: %s => %s\n", decision.Source.Path, decision.DestPath)
		return decision
	}

	if err := r.exec.Remove(incumbent.Path); err != nil {
		decision.Outcome = OutcomeFailed
		decision.Err = err
		r.emitError(decision.Source.Path, err)
		logger.Error("removing outscored incumbent failed",
			logging.String("incumbent", incumbent.Path),
			logging.Error(err))
		return decision
	}
	if err := r.exec.Move(decision.Source.Path, decision.DestPath); err != nil {
		decision.Outcome = OutcomeFailed
		decision.Err = err
		r.emitError(decision.Source.Path, err)
		logger.Error("move after overwrite failed", logging.Error(err))
		return decision
	}

	decision.Outcome = OutcomeOverwritten
	fmt.Fprintf(r.out, "OVERWRITE: %s => %s\n", decision.Source.Path, decision.DestPath)
	r.dest[decision.Identity] = index.Candidate{Path: decision.DestPath, Score: decision.Source.Score}
	logger.Info("overwrote lower-scored incumbent",
		logging.String("incumbent", incumbent.Path),
		logging.String("destination", decision.DestPath))
	return decision
}

func (r *Reconciler) skip(decision Decision, outcome Outcome, reason string) Decision {
	decision.Outcome = outcome
	decision.Reason = reason
	fmt.Fprintf(r.out, "SKIP: %s => %s\n", decision.Source.Path, reason)
	return decision
}

func (r *Reconciler) emitError(src string, err error) {
	fmt.Fprintf(r.out, "ERROR: %s => %v\n", src, err)
}

// destPath re-roots a source file path onto the destination tree, preserving
// every intermediate subfolder verbatim.
func (r *Reconciler) destPath(srcPath string) (string, error) {
	rel, err := filepath.Rel(r.sourceRoot, srcPath)
	if err != nil {
		return "", fmt.Errorf("relativize %s: %w", srcPath, err)
	}
	return filepath.Join(r.destRoot, rel), nil
}

// Summary aggregates run outcomes for reporting.
type Summary struct {
	Moved            int
	Overwritten      int
	SkippedCollision int
	SkippedPresent   int
	SkippedOutranked int
	SkippedCanceled  int
	Failed           int
}

// Summarize tallies decisions by outcome.
func Summarize(decisions []Decision) Summary {
	var s Summary
	for _, d := range decisions {
		switch d.Outcome {
		case OutcomeMoved:
			s.Moved++
		case OutcomeOverwritten:
			s.Overwritten++
		case OutcomeSkippedCollision:
			s.SkippedCollision++
		case OutcomeSkippedPresent:
			s.SkippedPresent++
		case OutcomeSkippedOutranked:
			s.SkippedOutranked++
		case OutcomeSkippedCanceled:
			s.SkippedCanceled++
		case OutcomeFailed:
			s.Failed++
		}
	}
	return s
}
