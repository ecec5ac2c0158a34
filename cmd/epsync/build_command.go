package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"epsync/internal/fixture"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "build [dir]",
		Short: "Create a canned two-tree scenario for manual testing",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base := ""
			if len(args) == 1 {
				base = args[0]
			} else {
				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("resolve working directory: %w", err)
				}
				base = filepath.Join(cwd, "fake_scenario")
			}

			sourceDir, destDir, err := fixture.Build(base)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Fixture scenario built.")
			fmt.Fprintf(out, "Source directory:      %s\n", sourceDir)
			fmt.Fprintf(out, "Destination directory: %s\n", destDir)
			fmt.Fprintln(out, "\nTry:")
			fmt.Fprintf(out, "  epsync run %q %q --dry-run\n", sourceDir, destDir)
			return nil
		},
	}
}
