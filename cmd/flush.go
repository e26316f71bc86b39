package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/vellum/internal/ui"
	"github.com/PolarWolf314/vellum/internal/workflows"
)

var (
	flushForce   bool
	flushYes     bool
	uninstallYes bool
)

func init() {
	flushCmd.Flags().BoolVar(&flushForce, "force", false, "discard uncommitted edits to managed files")
	flushCmd.Flags().BoolVarP(&flushYes, "yes", "y", false, "skip the confirmation prompt")
	uninstallCmd.Flags().BoolVarP(&uninstallYes, "yes", "y", false, "skip the confirmation prompt")
}

var flushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Forget the credential and restore encrypted files on disk",
	Long: `Removes the credential and the filter registrations from this clone and
checks out every managed file again, so the working tree holds the encrypted
form that is stored in git.

Make sure the credential is saved elsewhere ('vellum display') before
flushing, or the files can no longer be decrypted in this clone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		spinner, cleanup := startSpinner(cmd, "Flushing credential...")
		defer cleanup()

		env, err := openEnv(ctx)
		if err != nil {
			return report(&spinner.FinalMSG, err)
		}

		if !flushYes && !confirm(spinner, cmd.OutOrStdout(), "This removes the credential from this clone and re-encrypts managed files on disk.") {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " Flush cancelled"
			return nil
		}

		result, err := workflows.Flush(ctx, env, workflows.FlushOptions{Force: flushForce})
		if err != nil {
			return report(&spinner.FinalMSG, err)
		}

		spinner.FinalMSG = fmt.Sprintf("%s Credential removed, %d managed file(s) back in encrypted form",
			ui.Success.Sprint("✓"), len(result.Files))
		return nil
	},
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Forget the credential and remove vellum from this clone",
	Long: `Removes the credential, the filter registrations, the pre-commit hook and
vellum's files inside the git directory, including the audit log.

Managed files stay decrypted in the working tree. Do not commit them
afterwards: without the filter git would store them as plaintext.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		spinner, cleanup := startSpinner(cmd, "Uninstalling...")
		defer cleanup()

		env, err := openEnv(ctx)
		if err != nil {
			return report(&spinner.FinalMSG, err)
		}

		if !uninstallYes && !confirm(spinner, cmd.OutOrStdout(), "This removes vellum from this clone and leaves managed files decrypted on disk.") {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " Uninstall cancelled"
			return nil
		}

		result, err := workflows.Uninstall(ctx, env)
		if err != nil {
			return report(&spinner.FinalMSG, err)
		}

		msg := ui.Success.Sprint("✓") + " vellum removed from this clone"
		if result.HookRemoved {
			msg += "\n" + ui.Success.Sprint("✓") + " Removed the pre-commit hook"
		}
		msg += "\n" + ui.Warning.Sprint("⚠") + " Managed files are still plaintext on disk; do not commit them"
		spinner.FinalMSG = msg
		return nil
	},
}
