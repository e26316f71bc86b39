package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/vellum/internal/audit"
	"github.com/PolarWolf314/vellum/internal/ciphers"
	"github.com/PolarWolf314/vellum/internal/credentials"
	"github.com/PolarWolf314/vellum/internal/envelope"
	"github.com/PolarWolf314/vellum/internal/filters"
	"github.com/PolarWolf314/vellum/internal/git"
	"github.com/PolarWolf314/vellum/internal/transfer"
	"github.com/PolarWolf314/vellum/internal/ui"
	"github.com/PolarWolf314/vellum/internal/utils"
	"github.com/PolarWolf314/vellum/internal/workflows"
)

const lockFile = "vellum.lock"

// startSpinner starts a spinner on stderr unless verbose or debug output is
// on. The returned cleanup stops it and prints FinalMSG, newline-terminated,
// to the command's stdout.
func startSpinner(cmd *cobra.Command, message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	_ = s.Color("cyan")

	quiet := !verbose && !Logger.Debug
	if quiet {
		s.Start()
	} else {
		Logger.Infof("%s", message)
	}

	out := cmd.OutOrStdout()
	cleanup := func() {
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			s.FinalMSG = ""
		}
		if quiet {
			s.Stop()
		}
		if finalMsg != "" {
			fmt.Fprint(out, finalMsg)
		}
	}
	return s, cleanup
}

// openEnv builds the workflow environment for the repository containing
// the working directory.
func openEnv(ctx context.Context) (*workflows.Env, error) {
	repo, err := openRepo(ctx)
	if err != nil {
		return nil, err
	}

	gitDir, err := repo.GitDir(ctx)
	if err != nil {
		return nil, err
	}

	exe, err := executablePath()
	if err != nil {
		return nil, err
	}

	store := credentials.NewStore(repo, credentials.WithRegistry(ciphers.Default))
	return &workflows.Env{
		Repo:           repo,
		Store:          store,
		Filter:         filters.New(store, envelope.New(ciphers.Default), Logger),
		Registry:       ciphers.Default,
		Lock:           credentials.NewLock(filepath.Join(gitDir, lockFile)),
		Audit:          audit.ForGitDir(gitDir),
		Sealer:         transfer.NewGPG(settings.GPGBinary, Logger),
		Executable:     exe,
		DefaultCipher:  settings.DefaultCipher,
		PasswordLength: settings.PasswordLength,
		Log:            Logger,
	}, nil
}

func openRepo(ctx context.Context) (*git.CLI, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return git.Open(ctx, settings.GitBinary, wd, Logger)
}

// openFilter builds the filter pipeline used by git's filter invocations.
func openFilter(ctx context.Context) (*filters.Filter, error) {
	repo, err := openRepo(ctx)
	if err != nil {
		return nil, err
	}
	store := credentials.NewStore(repo, credentials.WithRegistry(ciphers.Default))
	return filters.New(store, envelope.New(ciphers.Default), Logger), nil
}

func executablePath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating vellum executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return exe, nil
}

// confirm asks a yes/no question on the terminal. Without a terminal the
// answer is no and the user is told to pass --yes.
func confirm(s *spinner.Spinner, out io.Writer, warning string) bool {
	if s.Active() {
		s.Stop()
		defer s.Restart()
	}

	if !utils.IsTerminal() {
		fmt.Fprintf(out, "%s %s\n%s Re-run with %s to proceed\n", ui.Warning.Sprint("⚠"), warning, ui.Info.Sprint("→"), ui.Flag.Sprint("--yes"))
		return false
	}

	fmt.Fprintf(out, "\n%s %s\n", ui.Warning.Sprint("Warning:"), warning)
	fmt.Fprint(out, "Do you want to continue? [y/N]: ")

	var response string
	if _, err := fmt.Fscanln(os.Stdin, &response); err != nil {
		return false
	}
	return response == "y" || response == "Y" || response == "yes"
}
