package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"epsync/internal/config"
	"epsync/internal/index"
	"epsync/internal/logging"
	"epsync/internal/reconcile"
	"epsync/internal/scoring"
	"epsync/internal/services"
)

const lockFileName = ".epsync.lock"

func newRunCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var verbose bool
	var yes bool
	var tagsFlag string

	cmd := &cobra.Command{
		Use:   "run <source> <destination>",
		Short: "Move episodes missing from the destination tree, preserving subfolder layout",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(verbose)
			if err != nil {
				return err
			}

			sourceRoot, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			destRoot, err := config.ExpandPath(args[1])
			if err != nil {
				return err
			}

			runCtx := services.WithRunID(cmd.Context(), uuid.NewString())
			logger = logging.WithContext(runCtx, logger)
			logger.Info("starting reconciliation",
				logging.String("source", sourceRoot),
				logging.String("destination", destRoot),
				logging.Bool("dry_run", dryRun))

			interactive := !yes && isatty.IsTerminal(os.Stdin.Fd())

			if err := checkTree(cmd, sourceRoot, "source", interactive, logger); err != nil {
				return err
			}
			if err := checkTree(cmd, destRoot, "destination", interactive, logger); err != nil {
				return err
			}

			// One run per destination tree at a time.
			lock := flock.New(filepath.Join(destRoot, lockFileName))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire destination lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another epsync run is already using %s", destRoot)
			}
			defer func() {
				_ = lock.Unlock()
			}()

			rules := loadRules(cfg, tagsFlag, logger)
			opts := index.Options{TieBreak: index.TieBreak(cfg.Index.TieBreak)}

			sourceIndex, err := index.Build(sourceRoot, rules, opts,
				logger.With(logging.String(logging.FieldTree, "source")))
			if err != nil {
				return err
			}
			destIndex, err := index.Build(destRoot, rules, opts,
				logger.With(logging.String(logging.FieldTree, "destination")))
			if err != nil {
				return err
			}
			logger.Info("indexes built",
				logging.Int("source_identities", len(sourceIndex)),
				logging.Int("destination_identities", len(destIndex)))

			var confirmer reconcile.Confirmer
			policy := reconcile.AcceptAll()
			if interactive {
				confirmer = reconcile.NewPromptConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr())
				policy = reconcile.AskEachTime()
			}

			reconciler := reconcile.New(sourceRoot, destRoot, destIndex, reconcile.Options{
				Confirmer: confirmer,
				Policy:    policy,
				DryRun:    dryRun,
				Output:    cmd.OutOrStdout(),
				Logger:    logger,
			})
			decisions, err := reconciler.Run(runCtx, sourceIndex)
			if err != nil {
				return err
			}

			summary := reconcile.Summarize(decisions)
			fmt.Fprintln(cmd.OutOrStdout(), renderSummary(summary, dryRun))
			if summary.Failed > 0 {
				return fmt.Errorf("%d file move(s) failed; see diagnostics above", summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log decisions without moving any files")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Enable debug diagnostics")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Accept all moves without prompting")
	cmd.Flags().StringVar(&tagsFlag, "tags", "", "Tag rules file overriding the configured path")

	return cmd
}

// checkTree enforces the run preconditions. A missing tree aborts outright in
// non-interactive mode; an empty one only warns there. Interactive runs get a
// continuation prompt for both.
func checkTree(cmd *cobra.Command, root, role string, interactive bool, logger *slog.Logger) error {
	exists, entries, err := index.Probe(root)
	if err != nil {
		return err
	}
	if exists && entries > 0 {
		return nil
	}

	problem := "is empty"
	if !exists {
		problem = "does not exist or is not a directory"
	}

	if interactive {
		fmt.Fprintf(cmd.ErrOrStderr(), "WARNING: the %s directory %q %s.\nContinue anyway? (y/N): ", role, root, problem)
		reader := bufio.NewReader(cmd.InOrStdin())
		line, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(line)) == "y" {
			return nil
		}
		return services.Wrap(services.ErrPrecondition, "run",
			"check "+role+" tree", "operator declined to continue", nil)
	}

	if !exists {
		return services.Wrap(services.ErrPrecondition, "run",
			"check "+role+" tree", fmt.Sprintf("%s %s", root, problem), nil)
	}
	logger.Warn("tree is empty, continuing",
		logging.String(logging.FieldTree, role),
		logging.String(logging.FieldPath, root))
	return nil
}

// loadRules resolves the tag rules path and degrades to an empty rule set on
// malformed input, surfacing the diagnostic instead of failing the run.
func loadRules(cfg *config.Config, override string, logger *slog.Logger) []scoring.Rule {
	path := cfg.Paths.TagsPath
	if override != "" {
		if expanded, err := config.ExpandPath(override); err == nil {
			path = expanded
		} else {
			logger.Warn("invalid tags path override, using configured path", logging.Error(err))
		}
	}
	if path == "" {
		return nil
	}
	rules, err := scoring.LoadRules(path)
	if err != nil {
		logger.Warn("tags config unusable, scoring everything 0",
			logging.String(logging.FieldPath, path),
			logging.Error(err))
		return nil
	}
	logger.Debug("tag rules loaded",
		logging.String(logging.FieldPath, path),
		logging.Int("rule_count", len(rules)))
	return rules
}
