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
	configureCipher     string
	configurePassword   string
	configurePrompt     bool
	configureNoCheckout bool
)

func init() {
	configureCmd.Flags().StringVarP(&configureCipher, "cipher", "c", "", "cipher to encrypt with (default from settings, see 'vellum ciphers')")
	configureCmd.Flags().StringVarP(&configurePassword, "password", "p", "", "shared password (generated when empty)")
	configureCmd.Flags().BoolVar(&configurePrompt, "prompt", false, "read the password from the terminal")
	configureCmd.Flags().BoolVar(&configureNoCheckout, "no-checkout", false, "do not rewrite managed files in the working tree")
}

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Store a credential and enable encryption in this clone",
	Long: `Stores the cipher and password in the repository's git config, registers
the clean, smudge and textconv filters and installs a pre-commit hook that
refuses to commit plaintext for managed files.

Managed files already in the repository are checked out again so they appear
decrypted. Files with local edits are left alone.

To set up a second clone use the command printed by 'vellum display' in the
first one, or 'vellum import'.

Examples:
  # Generate a random password with the default cipher
  vellum configure

  # Join an existing repository
  vellum configure --cipher aes-256-cbc --password 'shared secret'

  # Type the password without echoing it
  vellum configure --prompt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		Logger.Infof("Starting configure command")

		password := configurePassword
		if configurePrompt {
			var err error
			password, err = utils.ReadNewPassword("Password (empty to generate one): ")
			if err != nil {
				return err
			}
		}

		spinner, cleanup := startSpinner(cmd, "Configuring repository...")
		defer cleanup()

		env, err := openEnv(ctx)
		if err != nil {
			return report(&spinner.FinalMSG, err)
		}

		result, err := workflows.Configure(ctx, env, workflows.ConfigureOptions{
			Cipher:       configureCipher,
			Password:     password,
			SkipCheckout: configureNoCheckout,
		})
		if err != nil {
			return report(&spinner.FinalMSG, err)
		}

		spinner.FinalMSG = formatConfigureResult(result)
		return nil
	},
}

func formatConfigureResult(result *workflows.ConfigureResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Repository configured with %s", ui.Success.Sprint("✓"), ui.Cipher.Sprint(result.Credential.Cipher))

	if result.GeneratedPassword {
		fmt.Fprintf(&b, "\n%s Generated password: %s", ui.Info.Sprint("→"), ui.Secret.Sprint(result.Credential.Password))
	}
	if len(result.CheckedOut) > 0 {
		fmt.Fprintf(&b, "\n%s Decrypted %d managed file(s):%s", ui.Success.Sprint("✓"), len(result.CheckedOut),
			strings.TrimRight(ui.FormatPaths(result.CheckedOut, 10), "\n"))
	}
	if len(result.Skipped) > 0 {
		fmt.Fprintf(&b, "\n%s Left %d file(s) with local edits untouched:%s", ui.Warning.Sprint("⚠"), len(result.Skipped),
			strings.TrimRight(ui.FormatPaths(result.Skipped, 10), "\n"))
	}
	if !result.HookInstalled {
		fmt.Fprintf(&b, "\n%s An existing pre-commit hook was kept; add %s to it to block plaintext commits",
			ui.Warning.Sprint("⚠"), ui.Code.Sprint("vellum pre-commit"))
	}
	fmt.Fprintf(&b, "\n%s Run %s to print the setup command for other clones", ui.Info.Sprint("→"), ui.Code.Sprint("vellum display"))
	return b.String()
}
