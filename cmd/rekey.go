package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/vellum/internal/ui"
	"github.com/PolarWolf314/vellum/internal/utils"
	"github.com/PolarWolf314/vellum/internal/workflows"
)

var (
	rekeyCipher   string
	rekeyPassword string
	rekeyPrompt   bool
	rekeyForce    bool
	rekeyYes      bool
)

func init() {
	rekeyCmd.Flags().StringVarP(&rekeyCipher, "cipher", "c", "", "new cipher (default: keep the current one)")
	rekeyCmd.Flags().StringVarP(&rekeyPassword, "password", "p", "", "new password (generated when empty)")
	rekeyCmd.Flags().BoolVar(&rekeyPrompt, "prompt", false, "read the new password from the terminal")
	rekeyCmd.Flags().BoolVar(&rekeyForce, "force", false, "rekey even when managed files have uncommitted edits")
	rekeyCmd.Flags().BoolVarP(&rekeyYes, "yes", "y", false, "skip the confirmation prompt")
}

var rekeyCmd = &cobra.Command{
	Use:   "rekey",
	Short: "Re-encrypt every managed file under a new credential",
	Long: `Replaces the credential and re-encrypts the stored form of every managed
file with it. The re-encrypted files are staged, not committed: review them
with 'git status' and commit when ready.

Every other clone has to be configured with the new credential afterwards.

Examples:
  # New random password, same cipher
  vellum rekey

  # Switch cipher
  vellum rekey --cipher aes-256-gcm --prompt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		Logger.Infof("Starting rekey command")

		password := rekeyPassword
		if rekeyPrompt {
			var err error
			password, err = utils.ReadNewPassword("New password (empty to generate one): ")
			if err != nil {
				return err
			}
		}

		spinner, cleanup := startSpinner(cmd, "Rekeying managed files...")
		defer cleanup()

		env, err := openEnv(ctx)
		if err != nil {
			return report(&spinner.FinalMSG, err)
		}

		if !rekeyYes && !confirm(spinner, cmd.OutOrStdout(), "Every other clone will need the new credential after this.") {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " Rekey cancelled"
			return nil
		}

		result, err := workflows.Rekey(ctx, env, workflows.RekeyOptions{
			Cipher:   rekeyCipher,
			Password: password,
			Force:    rekeyForce,
		})
		if err != nil {
			return report(&spinner.FinalMSG, err)
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%s Rekeyed %s -> %s", ui.Success.Sprint("✓"),
			ui.Cipher.Sprint(result.Previous.Cipher), ui.Cipher.Sprint(result.Credential.Cipher))
		if result.GeneratedPassword {
			fmt.Fprintf(&b, "\n%s Generated password: %s", ui.Info.Sprint("→"), ui.Secret.Sprint(result.Credential.Password))
		}
		if len(result.Staged) > 0 {
			fmt.Fprintf(&b, "\n%s Staged %d file(s):%s", ui.Success.Sprint("✓"), len(result.Staged),
				strings.TrimRight(ui.FormatPaths(result.Staged, 10), "\n"))
			fmt.Fprintf(&b, "\n%s Review with %s and commit", ui.Info.Sprint("→"), ui.Code.Sprint("git status"))
		}
		spinner.FinalMSG = b.String()
		return nil
	},
}
