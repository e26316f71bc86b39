package audit

import (
	"encoding/json"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Operation names recorded in the log.
const (
	OpConfigure = "configure"
	OpDisplay   = "display"
	OpFlush     = "flush"
	OpRekey     = "rekey"
	OpExport    = "export"
	OpImport    = "import"
)

// FileName is the log's name inside the vellum helper directory.
const FileName = "audit.jsonl"

// Entry represents a single audit log entry.
type Entry struct {
	ID        string `json:"id"`   // Random UUID.
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	User      string `json:"user"` // Local account performing the action.
	Operation string `json:"op"`   // Operation name.

	// Optional fields depending on operation.
	Cipher     string   `json:"cipher,omitempty"`      // For configure/rekey/import.
	PrevCipher string   `json:"prev_cipher,omitempty"` // For rekey.
	Files      []string `json:"files,omitempty"`       // For rekey.
	FilesCount int      `json:"files_count,omitempty"` // For configure/flush.
	Recipient  string   `json:"recipient,omitempty"`   // For export.
	Forced     bool     `json:"forced,omitempty"`      // For configure/flush/rekey.
	Failed     string   `json:"failed,omitempty"`      // Error summary when the operation aborted.
}

// Log is an append-only audit log file.
type Log struct {
	path string
}

// New returns a log stored at path. A nil *Log discards entries.
func New(path string) *Log {
	return &Log{path: path}
}

// ForGitDir returns the log kept under the vellum directory of gitDir.
func ForGitDir(gitDir string) *Log {
	return New(filepath.Join(gitDir, "vellum", FileName))
}

// Path returns the location of the log file.
func (l *Log) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Record appends an entry. ID, timestamp and user are filled in when empty.
func (l *Log) Record(entry Entry) {
	if l == nil || l.path == "" {
		return
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}
	if entry.User == "" {
		entry.User = currentUser()
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o700); err != nil {
		return
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// Entries reads all entries from the log.
// Returns an empty slice if the log doesn't exist.
func (l *Log) Entries() ([]Entry, error) {
	if l == nil || l.path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
