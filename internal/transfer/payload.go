package transfer

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/PolarWolf314/vellum/internal/credentials"
	verrors "github.com/PolarWolf314/vellum/internal/errors"
)

// Marshal renders cred as the export document.
func Marshal(cred credentials.Credential) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "version=%s\n", cred.Version)
	fmt.Fprintf(&b, "cipher=%s\n", cred.Cipher)
	fmt.Fprintf(&b, "password=%s\n", cred.Password)
	return b.Bytes()
}

// Unmarshal parses an export document. Unknown keys are ignored so newer
// exports stay readable; cipher and password are required.
func Unmarshal(data []byte) (credentials.Credential, error) {
	var cred credentials.Credential

	sc := bufio.NewScanner(bytes.NewReader(data))
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#") {
			continue
		}
		key, value, ok := strings.Cut(text, "=")
		if !ok {
			return credentials.Credential{}, fmt.Errorf("%w: line %d has no '='", verrors.ErrMalformedCredential, line)
		}
		switch strings.TrimSpace(key) {
		case "version":
			cred.Version = value
		case "cipher":
			cred.Cipher = value
		case "password":
			cred.Password = value
		}
	}
	if err := sc.Err(); err != nil {
		return credentials.Credential{}, fmt.Errorf("%w: %v", verrors.ErrMalformedCredential, err)
	}

	if cred.Cipher == "" || cred.Password == "" {
		return credentials.Credential{}, fmt.Errorf("%w: cipher and password are required", verrors.ErrMalformedCredential)
	}
	if cred.Version == "" {
		cred.Version = credentials.FormatVersion
	}
	return cred, nil
}
