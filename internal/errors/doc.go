// Package errors provides typed error values for vellum.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - Cipher errors: the requested cipher is unknown (ErrUnsupportedCipher)
//   - Envelope errors: encryption and decryption failures (ErrDecryptFailed)
//   - Lifecycle errors: credential state preconditions (ErrNotConfigured)
//   - Repository errors: managed file access and working tree state
//   - Transfer errors: credential export and import
//   - Query errors: malformed arguments to read-only commands
//
// # Usage
//
// Return errors from internal packages:
//
//	if cred.Cipher == "" {
//	    return Credential{}, errors.ErrNotConfigured
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Rekey(ctx, env, opts)
//	if errors.Is(err, verrors.ErrDirtyWorkingTree) {
//	    // Ask the user to commit or stash first
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("reading %s from index: %w", path, errors.ErrManagedFileIO)
//
// The filter pipeline treats empty content as a pass-through, never as an
// error. ErrEmptyPlaintext is only returned by the low-level codec.
package errors
