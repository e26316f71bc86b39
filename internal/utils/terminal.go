package utils

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/term"
)

// ErrPasswordMismatch is returned by ReadNewPassword when the entries differ.
var ErrPasswordMismatch = errors.New("passwords do not match")

func ttyPath() string {
	if runtime.GOOS == "windows" {
		return "CON"
	}
	return "/dev/tty"
}

// ReadPassword prompts for a password on the terminal without echoing input.
// Returns an error if no terminal is available.
func ReadPassword(prompt string) (string, error) {
	tty, err := os.Open(ttyPath())
	if err != nil {
		return "", fmt.Errorf("cannot open %s for password input: %w", ttyPath(), err)
	}
	defer tty.Close()

	fd := int(tty.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("%s is not a terminal", ttyPath())
	}

	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return string(password), nil
}

// ReadNewPassword prompts for a password twice. An empty first entry is
// returned as is so callers can fall back to a generated password.
func ReadNewPassword(prompt string) (string, error) {
	first, err := ReadPassword(prompt)
	if err != nil || first == "" {
		return first, err
	}

	second, err := ReadPassword("Confirm password: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", ErrPasswordMismatch
	}
	return first, nil
}

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
