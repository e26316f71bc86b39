package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/vellum/internal/ui"
	"github.com/PolarWolf314/vellum/internal/workflows"
)

var displayCopy bool

func init() {
	displayCmd.Flags().BoolVar(&displayCopy, "copy", false, "copy the password to the clipboard instead of printing it")
}

var displayCmd = &cobra.Command{
	Use:   "display",
	Short: "Show the credential for setting up another clone",
	Long: `Prints the cipher and password of this repository together with the
configure command that sets up another clone with the same credential.

Every display is recorded in the audit log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		env, err := openEnv(ctx)
		if err != nil {
			fmt.Fprintln(out, formatError(err))
			return ErrReported
		}

		result, err := workflows.Display(ctx, env)
		if err != nil {
			fmt.Fprintln(out, formatError(err))
			return ErrReported
		}

		fmt.Fprintf(out, "Cipher:   %s\n", ui.Cipher.Sprint(result.Credential.Cipher))

		if displayCopy {
			if err := clipboard.WriteAll(result.Credential.Password); err != nil {
				return fmt.Errorf("copy to clipboard: %w", err)
			}
			fmt.Fprintf(out, "Password: %s\n", ui.Muted.Sprint("copied to clipboard"))
			return nil
		}

		fmt.Fprintf(out, "Password: %s\n\n", ui.Secret.Sprint(result.Credential.Password))
		fmt.Fprintf(out, "Configure another clone with:\n  %s\n", ui.Code.Sprint(result.Command))
		return nil
	},
}
