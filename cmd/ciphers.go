package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/vellum/internal/ciphers"
	"github.com/PolarWolf314/vellum/internal/ui"
)

var ciphersCmd = &cobra.Command{
	Use:   "ciphers",
	Short: "List supported ciphers",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, name := range ciphers.Default.Supported() {
			c, err := ciphers.Default.Lookup(name)
			if err != nil {
				return err
			}
			marker := " "
			if name == settings.DefaultCipher {
				marker = ui.Success.Sprint("*")
			}
			fmt.Fprintf(out, "%s %-18s %s\n", marker, name, ui.Muted.Sprintf("%d-bit key", c.KeySize()*8))
		}
		return nil
	},
}
