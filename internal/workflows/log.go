package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PolarWolf314/vellum/internal/audit"
	verrors "github.com/PolarWolf314/vellum/internal/errors"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// User filters entries by local user name.
	User string

	// Operations filters entries by operation types (comma-separated).
	Operations string

	// Since filters entries after this date (YYYY-MM-DD format).
	Since string

	// Until filters entries before this date (YYYY-MM-DD format).
	Until string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Entries are the filtered audit log entries.
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the audit log.
//
// A repository without an audit log yields an empty result.
// Returns ErrInvalidDateFormat if the date format is invalid.
func Log(ctx context.Context, env *Env, opts LogOptions) (*LogResult, error) {
	entries, err := env.Audit.Entries()
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	result := &LogResult{
		TotalEntriesBeforeFilter: len(entries),
	}

	if len(entries) == 0 {
		result.Entries = entries
		return result, nil
	}

	// Apply filters.
	filtered := entries

	if opts.User != "" {
		filtered = filterByUser(filtered, opts.User)
	}

	if opts.Operations != "" {
		ops := strings.Split(opts.Operations, ",")
		for i := range ops {
			ops[i] = strings.TrimSpace(ops[i])
		}
		filtered = filterByOperations(filtered, ops)
	}

	if opts.Since != "" {
		sinceTime, err := time.Parse("2006-01-02", opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since date format invalid, use YYYY-MM-DD", verrors.ErrInvalidDateFormat)
		}
		filtered = filterSince(filtered, sinceTime)
	}

	if opts.Until != "" {
		untilTime, err := time.Parse("2006-01-02", opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until date format invalid, use YYYY-MM-DD", verrors.ErrInvalidDateFormat)
		}
		// Include the entire day by setting to end of day.
		untilTime = untilTime.Add(24*time.Hour - time.Nanosecond)
		filtered = filterUntil(filtered, untilTime)
	}

	// Apply ordering.
	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	// Apply limit.
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			// When reversed, limit takes first N (most recent).
			filtered = filtered[:opts.Limit]
		} else {
			// When not reversed, limit takes last N (most recent).
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

// filterByUser filters entries by user name (case-insensitive).
func filterByUser(entries []audit.Entry, user string) []audit.Entry {
	return keep(entries, func(e audit.Entry) bool {
		return strings.EqualFold(e.User, user)
	})
}

// filterByOperations filters entries by operation types.
func filterByOperations(entries []audit.Entry, ops []string) []audit.Entry {
	opSet := make(map[string]bool)
	for _, op := range ops {
		opSet[strings.ToLower(op)] = true
	}
	return keep(entries, func(e audit.Entry) bool {
		return opSet[strings.ToLower(e.Operation)]
	})
}

// filterSince keeps entries at or after since. Unparseable timestamps are dropped.
func filterSince(entries []audit.Entry, since time.Time) []audit.Entry {
	return keep(entries, func(e audit.Entry) bool {
		t, ok := parseTimestamp(e.Timestamp)
		return ok && !t.Before(since)
	})
}

// filterUntil keeps entries at or before until. Unparseable timestamps are dropped.
func filterUntil(entries []audit.Entry, until time.Time) []audit.Entry {
	return keep(entries, func(e audit.Entry) bool {
		t, ok := parseTimestamp(e.Timestamp)
		return ok && !t.After(until)
	})
}

func keep(entries []audit.Entry, pred func(audit.Entry) bool) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		if pred(e) {
			result = append(result, e)
		}
	}
	return result
}

func parseTimestamp(ts string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02T15:04:05.000000Z", ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	return t, err == nil
}

// FormatDate formats a timestamp string to YYYY-MM-DD format.
func FormatDate(ts string) string {
	if t, ok := parseTimestamp(ts); ok {
		return t.Format("2006-01-02")
	}
	return ts
}

// FormatDateTime formats a timestamp string to YYYY-MM-DD HH:MM:SS format.
func FormatDateTime(ts string) string {
	if t, ok := parseTimestamp(ts); ok {
		return t.Format("2006-01-02 15:04:05")
	}
	return ts
}

// FormatDetails describes what an entry changed.
func FormatDetails(e audit.Entry) string {
	var details string
	switch e.Operation {
	case audit.OpConfigure, audit.OpImport:
		details = fmt.Sprintf("%s, %d file(s) checked out", e.Cipher, e.FilesCount)
	case audit.OpRekey:
		details = fmt.Sprintf("%s -> %s, %d file(s) staged", e.PrevCipher, e.Cipher, len(e.Files))
	case audit.OpFlush:
		details = fmt.Sprintf("%d file(s) re-encrypted on disk", e.FilesCount)
	case audit.OpExport:
		details = fmt.Sprintf("%s for %s", e.Cipher, e.Recipient)
	case audit.OpDisplay:
		details = e.Cipher
	}

	if e.Forced {
		details += " (forced)"
	}
	if e.Failed != "" {
		details += " failed at " + e.Failed
	}
	return strings.TrimSpace(details)
}
