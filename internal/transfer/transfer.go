package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/PolarWolf314/vellum/internal/credentials"
	verrors "github.com/PolarWolf314/vellum/internal/errors"
)

// ImportAttempts is how many times Import asks the Sealer to decrypt.
const ImportAttempts = 3

// RetryDelay is the pause between import attempts.
var RetryDelay = time.Second

// Export seals cred for recipient.
func Export(ctx context.Context, s Sealer, recipient string, cred credentials.Credential) ([]byte, error) {
	out, err := s.Seal(ctx, recipient, Marshal(cred))
	if err != nil {
		return nil, fmt.Errorf("sealing credential for %s: %w", recipient, err)
	}
	return out, nil
}

// Import decrypts a sealed export and parses the credential inside it.
// A document that decrypts but does not parse is not retried.
func Import(ctx context.Context, s Sealer, sealed []byte) (credentials.Credential, error) {
	var plain []byte
	backoff := retry.WithMaxRetries(ImportAttempts-1, retry.NewConstant(RetryDelay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		out, err := s.Open(ctx, sealed)
		if err != nil {
			return retry.RetryableError(err)
		}
		plain = out
		return nil
	})
	if err != nil {
		return credentials.Credential{}, fmt.Errorf("%w: %v", verrors.ErrImportFailed, err)
	}

	return Unmarshal(plain)
}
