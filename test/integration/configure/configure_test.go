package configure_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/vellum/cmd"
	"github.com/PolarWolf314/vellum/test/integration/shared"
)

func TestMain(m *testing.M) {
	shared.Main(m)
}

// TestConfigureIntegration contains integration tests for `vellum configure` and `vellum display`.
func TestConfigureIntegration(t *testing.T) {
	t.Run("ConfigureOutsideRepository", testConfigureOutsideRepository)
	t.Run("ConfigureEncryptsOnAdd", testConfigureEncryptsOnAdd)
	t.Run("ConfigureTwiceFails", testConfigureTwiceFails)
	t.Run("ConfigureUnsupportedCipher", testConfigureUnsupportedCipher)
	t.Run("ConfigureGeneratesPassword", testConfigureGeneratesPassword)
	t.Run("DisplayPrintsSetupCommand", testDisplayPrintsSetupCommand)
	t.Run("PreCommitHookBlocksPlaintext", testPreCommitHookBlocksPlaintext)
}

func testConfigureOutsideRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to resolve temp directory: %v", err)
	}
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))
	t.Setenv("VELLUM_CONFIG", filepath.Join(dir, "config.toml"))

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(originalWd) })

	output, err := shared.RunCLI(t, "configure", "--password", shared.Password)
	if err != cmd.ErrReported {
		t.Fatalf("Expected ErrReported, got %v", err)
	}
	if !strings.Contains(output, "Not inside a git repository") {
		t.Errorf("Expected repository error, got: %s", output)
	}
}

func testConfigureEncryptsOnAdd(t *testing.T) {
	shared.SetupTestRepo(t)
	output := shared.Configure(t)
	if !strings.Contains(output, "Repository configured with") {
		t.Errorf("Expected success message, got: %s", output)
	}

	shared.WriteFile(t, "secret.txt", "api_key=hunter2\n")
	shared.Git(t, "add", ".gitattributes", "secret.txt")

	stored := shared.StoredBlob(t, "secret.txt")
	if !shared.IsEnvelope(stored) {
		t.Fatalf("Expected encrypted blob, got: %q", stored)
	}
	if strings.Contains(stored, "hunter2") {
		t.Error("Stored blob contains plaintext")
	}
	if got := shared.ReadFile(t, "secret.txt"); got != "api_key=hunter2\n" {
		t.Errorf("Working tree changed: %q", got)
	}

	// Re-adding unchanged content must not produce a new blob.
	shared.Git(t, "add", "secret.txt")
	if again := shared.StoredBlob(t, "secret.txt"); again != stored {
		t.Error("Expected identical blob after re-adding unchanged content")
	}

	diff := shared.Git(t, "diff", "--cached", "--", "secret.txt")
	if !strings.Contains(diff, "+api_key=hunter2") {
		t.Errorf("Expected textconv to show plaintext in diff, got: %s", diff)
	}
}

func testConfigureTwiceFails(t *testing.T) {
	shared.SetupTestRepo(t)
	shared.Configure(t)

	output, err := shared.RunCLI(t, "configure", "--password", "other")
	if err != cmd.ErrReported {
		t.Fatalf("Expected ErrReported, got %v", err)
	}
	if !strings.Contains(output, "already configured") {
		t.Errorf("Expected already configured message, got: %s", output)
	}
}

func testConfigureUnsupportedCipher(t *testing.T) {
	shared.SetupTestRepo(t)

	output, err := shared.RunCLI(t, "configure", "--cipher", "rot13", "--password", shared.Password)
	if err != cmd.ErrReported {
		t.Fatalf("Expected ErrReported, got %v", err)
	}
	if !strings.Contains(output, "vellum ciphers") {
		t.Errorf("Expected hint to list ciphers, got: %s", output)
	}
	if out, _ := shared.GitResult("config", "--local", "--get", "vellum.cipher"); out != "" {
		t.Errorf("Expected no stored cipher, got %q", out)
	}
}

func testConfigureGeneratesPassword(t *testing.T) {
	shared.SetupTestRepo(t)

	output, err := shared.RunCLI(t, "configure")
	if err != nil {
		t.Fatalf("configure failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "Generated password:") {
		t.Errorf("Expected generated password in output, got: %s", output)
	}

	stored := strings.TrimSpace(shared.Git(t, "config", "--local", "--get", "vellum.password"))
	if stored == "" || !strings.Contains(output, stored) {
		t.Errorf("Expected printed password to match stored %q", stored)
	}
}

func testDisplayPrintsSetupCommand(t *testing.T) {
	shared.SetupTestRepo(t)
	shared.Configure(t)

	output, err := shared.RunCLI(t, "display")
	if err != nil {
		t.Fatalf("display failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "--password '"+shared.Password+"'") {
		t.Errorf("Expected setup command with password, got: %s", output)
	}
	if !strings.Contains(output, "vellum configure --cipher") {
		t.Errorf("Expected configure command, got: %s", output)
	}
}

func testPreCommitHookBlocksPlaintext(t *testing.T) {
	dir := shared.SetupTestRepo(t)
	shared.Configure(t)

	hook := shared.ReadFile(t, filepath.Join(dir, ".git", "hooks", "pre-commit"))
	if !strings.Contains(hook, "pre-commit") {
		t.Fatalf("Unexpected hook content: %s", hook)
	}

	shared.WriteFile(t, "secret.txt", "first\n")
	shared.Git(t, "add", ".gitattributes", "secret.txt")
	if _, err := shared.GitResult("commit", "-q", "-m", "encrypted"); err != nil {
		t.Fatalf("Expected commit of encrypted file to succeed: %v", err)
	}

	// Bypass the clean filter to stage plaintext.
	shared.WriteFile(t, "secret.txt", "second\n")
	shared.Git(t, "-c", "filter.vellum.clean=cat", "add", "secret.txt")
	if _, err := shared.GitResult("commit", "-q", "-m", "plaintext"); err == nil {
		t.Fatal("Expected pre-commit hook to reject plaintext")
	}
}
