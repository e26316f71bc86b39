package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/vellum/internal/ui"
	"github.com/PolarWolf314/vellum/internal/workflows"
)

var listCmd = &cobra.Command{
	Use:   "list [pattern...]",
	Short: "List managed files and their stored state",
	Long: `Lists the tracked files whose filter attribute is vellum and reports
whether the content staged in git is encrypted. Patterns use doublestar
syntax ('secrets/**/*.env').`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		env, err := openEnv(ctx)
		if err != nil {
			fmt.Fprintln(out, formatError(err))
			return ErrReported
		}

		result, err := workflows.List(ctx, env, workflows.ListOptions{Patterns: args})
		if err != nil {
			fmt.Fprintln(out, formatError(err))
			return ErrReported
		}

		if len(result.Files) == 0 {
			fmt.Fprintln(out, "No managed files.")
			fmt.Fprintf(out, "%s Mark files in .gitattributes with %s\n", ui.Info.Sprint("→"), ui.Code.Sprint("filter=vellum diff=vellum"))
			return nil
		}

		for _, f := range result.Files {
			state := ui.Success.Sprint("encrypted")
			switch {
			case f.Size == 0:
				state = ui.Muted.Sprint("empty")
			case !f.Encrypted:
				state = ui.Error.Sprint("plaintext")
			}
			fmt.Fprintf(out, "%-10s %s\n", state, ui.Path.Sprint(f.Path))
		}
		return nil
	},
}
