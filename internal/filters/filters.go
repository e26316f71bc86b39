// Package filters implements the three git filter roles on top of the
// envelope codec.
//
//	clean    plaintext -> stored form   (git add)
//	smudge   stored form -> plaintext   (git checkout)
//	textconv stored form -> display     (git diff, git show)
//
// Every call loads the credential from its Source. Nothing is cached between
// calls and nothing shared is written, so git may run any number of filter
// processes concurrently.
package filters

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/PolarWolf314/vellum/internal/credentials"
	"github.com/PolarWolf314/vellum/internal/envelope"
	verrors "github.com/PolarWolf314/vellum/internal/errors"
	logger "github.com/PolarWolf314/vellum/internal/logging"
)

// Source supplies the active credential.
type Source interface {
	Load(ctx context.Context) (credentials.Credential, error)
}

type Filter struct {
	source Source
	codec  *envelope.Codec
	log    logger.Logger
}

func New(source Source, codec *envelope.Codec, log logger.Logger) *Filter {
	if codec == nil {
		codec = envelope.New(nil)
	}
	return &Filter{source: source, codec: codec, log: log}
}

// Clean reads the staged content of filename from r and writes its stored form to w.
//
// Empty content and content that already is an envelope are copied through
// unchanged. Without a credential Clean fails rather than store plaintext.
func (f *Filter) Clean(ctx context.Context, filename string, r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}

	if len(data) == 0 || envelope.IsEnvelope(data) {
		f.log.Debugf("clean %s: passing through %d bytes", filename, len(data))
		return write(w, data)
	}

	cred, err := f.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("clean %s: %w", filename, err)
	}

	out, err := f.Seal(cred, filename, data)
	if err != nil {
		return fmt.Errorf("clean %s: %w", filename, err)
	}
	f.log.Debugf("clean %s: encrypted %d bytes with %s", filename, len(data), cred.Cipher)
	return write(w, out)
}

// Seal is the clean transform under an explicit credential.
func (f *Filter) Seal(cred credentials.Credential, filename string, data []byte) ([]byte, error) {
	if len(data) == 0 || envelope.IsEnvelope(data) {
		return data, nil
	}
	return f.codec.Encrypt(cred, filename, data)
}

// Reveal is the smudge transform under an explicit credential.
func (f *Filter) Reveal(cred credentials.Credential, data []byte) []byte {
	return f.codec.Open(cred, data)
}

// Unseal is the strict inverse of Seal. Empty content and content that is
// not an envelope are returned as they are; an envelope that does not open
// under cred is an error.
func (f *Filter) Unseal(cred credentials.Credential, data []byte) ([]byte, error) {
	if len(data) == 0 || !envelope.IsEnvelope(data) {
		return data, nil
	}
	return f.codec.Decrypt(cred, data)
}

// Smudge reads stored content from r and writes the working-tree form to w.
// Content that cannot be decrypted is written unchanged.
func (f *Filter) Smudge(ctx context.Context, r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading smudge input: %w", err)
	}
	return write(w, f.reveal(ctx, "smudge", data))
}

// TextConv writes the display form of the stored file at path to w. The
// file itself is never modified.
func (f *Filter) TextConv(ctx context.Context, path string, w io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", verrors.ErrManagedFileIO, err)
	}
	return write(w, f.reveal(ctx, "textconv", data))
}

func (f *Filter) reveal(ctx context.Context, role string, data []byte) []byte {
	if len(data) == 0 || !envelope.IsEnvelope(data) {
		return data
	}

	cred, err := f.source.Load(ctx)
	if err != nil {
		if !errors.Is(err, verrors.ErrNotConfigured) {
			f.log.Warnf("%s: %v", role, err)
		}
		return data
	}

	out := f.codec.Open(cred, data)
	if bytes.Equal(out, data) {
		f.log.Debugf("%s: envelope did not open with the configured credential", role)
	}
	return out
}

func write(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing filter output: %w", err)
	}
	return nil
}
