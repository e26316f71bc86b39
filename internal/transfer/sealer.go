//go:generate mockgen -source=sealer.go -destination=../mock/sealer_mock.go -package=mock

package transfer

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	logger "github.com/PolarWolf314/vellum/internal/logging"
)

// Sealer encrypts data for a public-key recipient and decrypts data sealed
// for a key the local user holds.
type Sealer interface {
	Seal(ctx context.Context, recipient string, data []byte) ([]byte, error)
	Open(ctx context.Context, data []byte) ([]byte, error)
}

// GPG is a Sealer backed by the gpg executable.
type GPG struct {
	binary string
	log    logger.Logger
}

func NewGPG(binary string, log logger.Logger) *GPG {
	if binary == "" {
		binary = "gpg"
	}
	return &GPG{binary: binary, log: log}
}

func (g *GPG) Seal(ctx context.Context, recipient string, data []byte) ([]byte, error) {
	return g.run(ctx, data, "--batch", "--yes", "--armor", "--trust-model", "always",
		"--recipient", recipient, "--encrypt")
}

func (g *GPG) Open(ctx context.Context, data []byte) ([]byte, error) {
	return g.run(ctx, data, "--batch", "--quiet", "--decrypt")
}

func (g *GPG) run(ctx context.Context, stdin []byte, args ...string) ([]byte, error) {
	g.log.Debugf("running %s %s", g.binary, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, g.binary, args...)
	cmd.Stdin = bytes.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", g.binary, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
