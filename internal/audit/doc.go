// Package audit provides an audit trail for vellum lifecycle operations.
//
// Credential changes (configure, rekey, flush, import) and disclosures
// (display, export) are recorded in a repository-level log. The log lives
// inside the git directory, so it is never committed and never leaves the
// machine. Uninstall removes the log along with the rest of the helper
// directory.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line) at:
//
//	<gitdir>/vellum/audit.jsonl
//
// Each entry contains:
//   - A random entry ID
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - Local user name
//   - Operation name
//   - Operation-specific details (cipher, files, recipient)
//
// Passwords are never written to the log.
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails the operation continues
// without error.
//
// # Reading Logs
//
// Use Log.Entries to parse the audit log for display. Malformed entries are
// silently skipped to handle partial writes.
package audit
