package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/vellum/internal/credentials"
	"github.com/PolarWolf314/vellum/internal/envelope"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "dev"

var versionBanner bool

func init() {
	versionCmd.Flags().BoolVar(&versionBanner, "banner", false, "print the ASCII banner")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if versionBanner {
			fig := figure.NewColorFigure("vellum", "small", "green", true)
			fmt.Fprintln(out, fig.ColorString())
		}
		fmt.Fprintf(out, "vellum %s\n", Version)
		fmt.Fprintf(out, "credential format %s, PBKDF2-HMAC-SHA256 with %d iterations\n", credentials.FormatVersion, envelope.Iterations)
		return nil
	},
}
