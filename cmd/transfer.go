package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/vellum/internal/ui"
	"github.com/PolarWolf314/vellum/internal/utils"
	"github.com/PolarWolf314/vellum/internal/workflows"
)

var (
	exportOutput     string
	importNoCheckout bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "-", "file to write the sealed credential to")
	importCmd.Flags().BoolVar(&importNoCheckout, "no-checkout", false, "do not rewrite managed files in the working tree")
}

var exportCmd = &cobra.Command{
	Use:   "export <recipient>",
	Short: "Seal the credential for a gpg recipient",
	Long: `Encrypts the credential for a gpg public key so it can be sent to a
collaborator, who runs 'vellum import' in their clone.

Examples:
  vellum export alice@example.com -o vellum-credential.asc`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := openEnv(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, formatError(err))
			return ErrReported
		}

		result, err := workflows.Export(ctx, env, workflows.ExportOptions{Recipient: args[0]})
		if err != nil {
			fmt.Fprintln(os.Stderr, formatError(err))
			return ErrReported
		}

		if err := utils.WriteOutput(exportOutput, cmd.OutOrStdout(), result.Sealed); err != nil {
			return err
		}
		if exportOutput != "-" && exportOutput != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s Sealed %s credential for %s in %s\n", ui.Success.Sprint("✓"),
				ui.Cipher.Sprint(result.Cipher), ui.Highlight.Sprint(args[0]), ui.Path.Sprint(exportOutput))
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Configure this clone from a sealed credential",
	Long: `Decrypts a credential produced by 'vellum export' with gpg and configures
the repository with it. Reads stdin when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		path := "-"
		if len(args) == 1 {
			path = args[0]
		}
		sealed, err := utils.ReadInput(path)
		if err != nil {
			return err
		}

		spinner, cleanup := startSpinner(cmd, "Importing credential...")
		defer cleanup()

		env, err := openEnv(ctx)
		if err != nil {
			return report(&spinner.FinalMSG, err)
		}

		result, err := workflows.Import(ctx, env, workflows.ImportOptions{Sealed: sealed, SkipCheckout: importNoCheckout})
		if err != nil {
			return report(&spinner.FinalMSG, err)
		}

		spinner.FinalMSG = formatConfigureResult(result)
		return nil
	},
}
