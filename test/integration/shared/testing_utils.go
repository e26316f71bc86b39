// Package shared contains testing utilities shared between integration tests.
// This file provides common functions for setting up throwaway git
// repositories, running the vellum CLI against them and capturing output.
//
// Integration test binaries double as the vellum executable: configure
// registers os.Executable as the filter command, so git runs the test binary
// for clean, smudge, textconv and the pre-commit hook. Main dispatches those
// invocations to the CLI.
package shared

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/vellum/cmd"
)

const cliModeEnv = "VELLUM_INTEGRATION_CLI"

// Password is the credential password used by integration tests.
const Password = "integration-password"

// Main runs the tests, or acts as the vellum CLI when git invokes the test
// binary as a filter or hook.
func Main(m *testing.M) {
	if os.Getenv(cliModeEnv) == "1" {
		err := cmd.RootCmd.ExecuteContext(context.Background())
		if err != nil {
			if !errors.Is(err, cmd.ErrReported) {
				fmt.Fprintln(os.Stderr, "vellum:", err)
			}
			os.Exit(1)
		}
		os.Exit(0)
	}

	if err := os.Setenv(cliModeEnv, "1"); err != nil {
		log.Fatalf("Failed to set %s: %s", cliModeEnv, err)
	}
	os.Exit(m.Run())
}

// SetupTestRepo creates a git repository in a temporary directory, changes
// into it and marks secret.txt as managed. It skips the test without git.
func SetupTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to resolve temp directory: %v", err)
	}

	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))
	t.Setenv("GIT_AUTHOR_NAME", "Test User")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Test User")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")
	t.Setenv("VELLUM_CONFIG", filepath.Join(t.TempDir(), "config.toml"))

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		cmd.ResetGlobalState()
	})

	Git(t, "init", "-q")
	WriteFile(t, ".gitattributes", "secret.txt filter=vellum diff=vellum\n")
	return dir
}

// Git runs git in the working directory and returns its stdout.
func Git(t *testing.T, args ...string) string {
	t.Helper()
	out, err := GitResult(args...)
	if err != nil {
		t.Fatalf("git %s: %v", strings.Join(args, " "), err)
	}
	return out
}

// GitResult runs git and returns stdout, with stderr folded into the error.
func GitResult(args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	c := exec.Command("git", args...)
	c.Stdout = &stdout
	c.Stderr = &stderr
	if err := c.Run(); err != nil {
		return stdout.String(), fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// WriteFile writes content to name relative to the working directory.
func WriteFile(t *testing.T, name, content string) {
	t.Helper()
	if err := os.WriteFile(name, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

// ReadFile returns the working-tree content of name.
func ReadFile(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", name, err)
	}
	return string(data)
}

// CaptureOutput captures both stdout and stderr during function execution.
func CaptureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)
	drain := func(r io.Reader) {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, r); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}
	go drain(stdoutReader)
	go drain(stderrReader)

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	first := <-outputChan
	second := <-outputChan
	return first + second, err
}

// RunCLI runs vellum in-process with args and returns everything it printed.
func RunCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return RunCLIWithInput(t, "", args...)
}

// RunCLIWithInput is RunCLI with stdin set to input.
func RunCLIWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	cmd.ResetGlobalState()

	var out bytes.Buffer
	cmd.RootCmd.SetArgs(args)
	cmd.RootCmd.SetIn(strings.NewReader(input))
	cmd.RootCmd.SetOut(&out)
	cmd.RootCmd.SetErr(&out)
	defer func() {
		cmd.RootCmd.SetArgs(nil)
		cmd.RootCmd.SetIn(nil)
		cmd.RootCmd.SetOut(nil)
		cmd.RootCmd.SetErr(nil)
	}()

	captured, err := CaptureOutput(func() error {
		return cmd.RootCmd.ExecuteContext(context.Background())
	})
	return out.String() + captured, err
}

// Configure runs 'vellum configure' with the test password and fails the
// test if it does not succeed.
func Configure(t *testing.T, extra ...string) string {
	t.Helper()
	args := append([]string{"configure", "--password", Password}, extra...)
	output, err := RunCLI(t, args...)
	if err != nil {
		t.Fatalf("configure failed: %v\nOutput: %s", err, output)
	}
	return output
}

// StoredBlob returns the content git stores for path in the index.
func StoredBlob(t *testing.T, path string) string {
	t.Helper()
	return Git(t, "cat-file", "blob", ":"+path)
}

// IsEnvelope reports whether stored starts with the armored "Salted__" magic.
func IsEnvelope(stored string) bool {
	return strings.HasPrefix(stored, "U2FsdGVkX1")
}
