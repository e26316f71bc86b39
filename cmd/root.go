package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/PolarWolf314/vellum/internal/configs"
	logger "github.com/PolarWolf314/vellum/internal/logging"
)

// ErrReported is returned by commands that already printed their failure.
// The caller exits non-zero without printing it again.
var ErrReported = errors.New("error already reported")

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	settings = configs.DefaultSettings()

	RootCmd = &cobra.Command{
		Use:   "vellum",
		Short: "Transparent encryption for files in a git repository",
		Long: `vellum keeps selected files encrypted inside git while leaving them
readable in your working copy and in diffs.

Mark files in .gitattributes:

  secrets/** filter=vellum diff=vellum

then run 'vellum configure' once per clone. git encrypts those files on add,
decrypts them on checkout and shows plaintext in git diff and git log -p.

Lifecycle:
  configure   store a credential and register the filters
  display     show the credential for setting up another clone
  rekey       re-encrypt every managed file under a new credential
  flush       forget the credential and restore encrypted files on disk
  uninstall   forget the credential and remove vellum from the repository`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(configureCmd)
	RootCmd.AddCommand(displayCmd)
	RootCmd.AddCommand(flushCmd)
	RootCmd.AddCommand(uninstallCmd)
	RootCmd.AddCommand(rekeyCmd)
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(ciphersCmd)
	RootCmd.AddCommand(exportCmd)
	RootCmd.AddCommand(importCmd)
	RootCmd.AddCommand(logCmd)
	RootCmd.AddCommand(versionCmd)

	RootCmd.AddCommand(cleanCmd)
	RootCmd.AddCommand(smudgeCmd)
	RootCmd.AddCommand(textconvCmd)
	RootCmd.AddCommand(preCommitCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	path, err := configs.SettingsPath()
	if err != nil {
		return err
	}
	loaded, err := configs.LoadSettings(path)
	if err != nil {
		return err
	}
	settings = loaded

	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug || settings.Debug,
		Quiet:   cmd.Annotations[filterAnnotation] != "",
	}
	Logger.Debugf("Loaded settings from %s (git=%s, gpg=%s, cipher=%s)", path, settings.GitBinary, settings.GPGBinary, settings.DefaultCipher)
	return nil
}

// ResetGlobalState restores every flag to its default for testing.
func ResetGlobalState() {
	resetFlags(RootCmd)
	settings = configs.DefaultSettings()
	Logger = logger.Logger{}
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}
