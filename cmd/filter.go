package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	verrors "github.com/PolarWolf314/vellum/internal/errors"
	"github.com/PolarWolf314/vellum/internal/workflows"
)

// filterAnnotation marks commands git invokes. They log warnings only in
// debug mode and write nothing to stdout except filter data.
const filterAnnotation = "vellum/filter"

var filterAnnotations = map[string]string{filterAnnotation: "true"}

var cleanCmd = &cobra.Command{
	Use:         "clean <file>",
	Short:       "git clean filter: encrypt stdin to stdout",
	Hidden:      true,
	Args:        cobra.ExactArgs(1),
	Annotations: filterAnnotations,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		filter, err := openFilter(ctx)
		if err != nil {
			return err
		}
		err = filter.Clean(ctx, args[0], cmd.InOrStdin(), cmd.OutOrStdout())
		if errors.Is(err, verrors.ErrNotConfigured) {
			return fmt.Errorf("refusing to store %s as plaintext: %w (run 'vellum configure')", args[0], err)
		}
		return err
	},
}

var smudgeCmd = &cobra.Command{
	Use:         "smudge",
	Short:       "git smudge filter: decrypt stdin to stdout",
	Hidden:      true,
	Args:        cobra.NoArgs,
	Annotations: filterAnnotations,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		filter, err := openFilter(ctx)
		if err != nil {
			return err
		}
		return filter.Smudge(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

var textconvCmd = &cobra.Command{
	Use:         "textconv <file>",
	Short:       "git textconv driver: print the decrypted form of a file",
	Hidden:      true,
	Args:        cobra.ExactArgs(1),
	Annotations: filterAnnotations,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		filter, err := openFilter(ctx)
		if err != nil {
			return err
		}
		return filter.TextConv(ctx, args[0], cmd.OutOrStdout())
	},
}

var preCommitCmd = &cobra.Command{
	Use:         "pre-commit",
	Short:       "git pre-commit hook: reject staged plaintext in managed files",
	Hidden:      true,
	Args:        cobra.NoArgs,
	Annotations: filterAnnotations,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := openEnv(ctx)
		if err != nil {
			return err
		}
		if _, err := workflows.PreCommit(ctx, env); err != nil {
			fmt.Fprintln(os.Stderr, formatError(err))
			return ErrReported
		}
		return nil
	},
}
