package errors

import "errors"

// Cipher errors indicate a problem with the requested symmetric cipher.
var (
	// ErrUnsupportedCipher indicates the cipher name is not provided by the crypto provider.
	ErrUnsupportedCipher = errors.New("unsupported cipher")
)

// Envelope errors indicate failures while encrypting or decrypting file content.
var (
	// ErrEmptyPlaintext indicates an attempt to encrypt zero bytes.
	ErrEmptyPlaintext = errors.New("plaintext is empty")

	// ErrNotEnvelope indicates the content does not carry the envelope magic.
	ErrNotEnvelope = errors.New("content is not an encrypted envelope")

	// ErrMalformedEnvelope indicates the content has the magic but cannot be decoded.
	ErrMalformedEnvelope = errors.New("malformed envelope")

	// ErrDecryptFailed indicates the envelope could not be opened with the credential.
	ErrDecryptFailed = errors.New("failed to decrypt envelope")

	// ErrEncryptFailed indicates the cipher failed to seal the plaintext.
	ErrEncryptFailed = errors.New("failed to encrypt content")
)

// Lifecycle errors indicate a credential state precondition was not met.
var (
	// ErrNotConfigured indicates no credential is configured for the repository.
	ErrNotConfigured = errors.New("repository is not configured for encryption")

	// ErrAlreadyConfigured indicates a credential already exists for the repository.
	ErrAlreadyConfigured = errors.New("repository is already configured for encryption")

	// ErrEmptyPassword indicates a credential was requested with an empty password.
	ErrEmptyPassword = errors.New("password cannot be empty")

	// ErrPasswordLineBreak indicates a password containing CR or LF.
	ErrPasswordLineBreak = errors.New("password cannot contain line breaks")

	// ErrLocked indicates another lifecycle operation holds the repository lock.
	ErrLocked = errors.New("another vellum operation is in progress")
)

// Repository errors indicate issues with the git repository or its managed files.
var (
	// ErrNotRepository indicates the working directory is not inside a git repository.
	ErrNotRepository = errors.New("not a git repository")

	// ErrManagedFileIO indicates a managed file could not be read or written.
	ErrManagedFileIO = errors.New("managed file I/O failed")

	// ErrDirtyWorkingTree indicates managed files have uncommitted changes.
	ErrDirtyWorkingTree = errors.New("managed files have uncommitted changes")

	// ErrPlaintextStaged indicates a managed file is staged without encryption.
	ErrPlaintextStaged = errors.New("managed file staged as plaintext")
)

// Transfer errors indicate issues with credential export and import.
var (
	// ErrMalformedCredential indicates exported credential data could not be parsed.
	ErrMalformedCredential = errors.New("malformed credential data")

	// ErrImportFailed indicates the external tool could not decrypt the export.
	ErrImportFailed = errors.New("failed to import credential")
)

// Query errors indicate invalid arguments to read-only commands.
var (
	// ErrInvalidDateFormat indicates a date filter is not in YYYY-MM-DD format.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrInvalidPattern indicates a path pattern could not be parsed.
	ErrInvalidPattern = errors.New("invalid path pattern")
)
