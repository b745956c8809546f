package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PolarWolf314/lockbox/internal/audit"
	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
	"github.com/PolarWolf314/lockbox/internal/history"
	logger "github.com/PolarWolf314/lockbox/internal/logging"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// Secret filters entries that touched this name, including renames
	// from or to it.
	Secret string

	// Operations filters entries by operation types (comma-separated).
	Operations string

	// Since filters entries after this date (YYYY-MM-DD format).
	Since string

	// Until filters entries before this date (YYYY-MM-DD format).
	Until string

	Logger logger.Logger
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Entries are the filtered history entries, oldest first unless reversed.
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the store history.
//
// Returns ErrStoreNotInitialized if the store directory does not exist.
// Returns ErrInvalidDateFormat if the date format is invalid.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	var since, until time.Time
	var err error
	if opts.Since != "" {
		since, err = time.Parse("2006-01-02", opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
	}
	if opts.Until != "" {
		until, err = time.Parse("2006-01-02", opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		// Include the entire day by setting to end of day.
		until = until.Add(24*time.Hour - time.Nanosecond)
	}

	sess, err := openSession(ctx, opts.Logger, false)
	if err != nil {
		return nil, err
	}

	commits, err := sess.secrets.History(0)
	if err != nil {
		return nil, err
	}
	return filterLog(commits, opts, since, until), nil
}

func filterLog(commits []history.Commit, opts LogOptions, since, until time.Time) *LogResult {
	entries := audit.FromCommits(commits)
	result := &LogResult{
		TotalEntriesBeforeFilter: len(entries),
	}

	filtered := entries

	if opts.Secret != "" {
		filtered = filterBySecret(filtered, opts.Secret)
	}

	if opts.Operations != "" {
		ops := strings.Split(opts.Operations, ",")
		for i := range ops {
			ops[i] = strings.TrimSpace(ops[i])
		}
		filtered = filterByOperations(filtered, ops)
	}

	if !since.IsZero() {
		filtered = filterSince(filtered, since)
	}

	if !until.IsZero() {
		filtered = filterUntil(filtered, until)
	}

	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

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
	return result
}

// filterBySecret keeps entries that touched name under either of its names.
func filterBySecret(entries []audit.Entry, name string) []audit.Entry {
	result := []audit.Entry{}
	for _, e := range entries {
		if e.Secret == name || e.PreviousName == name {
			result = append(result, e)
		}
	}
	return result
}

// filterByOperations filters entries by operation types.
func filterByOperations(entries []audit.Entry, ops []string) []audit.Entry {
	opSet := make(map[string]bool)
	for _, op := range ops {
		opSet[strings.ToLower(op)] = true
	}

	result := []audit.Entry{}
	for _, e := range entries {
		if opSet[strings.ToLower(e.Operation)] {
			result = append(result, e)
		}
	}
	return result
}

// filterSince keeps entries at or after the given time.
func filterSince(entries []audit.Entry, since time.Time) []audit.Entry {
	result := []audit.Entry{}
	for _, e := range entries {
		t := e.Time()
		if !t.IsZero() && !t.Before(since) {
			result = append(result, e)
		}
	}
	return result
}

// filterUntil keeps entries at or before the given time.
func filterUntil(entries []audit.Entry, until time.Time) []audit.Entry {
	result := []audit.Entry{}
	for _, e := range entries {
		t := e.Time()
		if !t.IsZero() && !t.After(until) {
			result = append(result, e)
		}
	}
	return result
}

// FormatDate formats a timestamp string to YYYY-MM-DD format.
func FormatDate(ts string) string {
	t := audit.Entry{Timestamp: ts}.Time()
	if t.IsZero() {
		if len(ts) >= 10 {
			return ts[:10]
		}
		return ts
	}
	return t.Format("2006-01-02")
}

// FormatDateTime formats a timestamp string to YYYY-MM-DD HH:MM:SS format.
func FormatDateTime(ts string) string {
	t := audit.Entry{Timestamp: ts}.Time()
	if t.IsZero() {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDetails formats the details for a log entry in verbose format.
func FormatDetails(e audit.Entry) string {
	switch e.Operation {
	case audit.OpCreate, audit.OpUpdate, audit.OpDelete:
		return e.Secret
	case audit.OpRename:
		return fmt.Sprintf("%s -> %s", e.PreviousName, e.Secret)
	default:
		return e.Message
	}
}

// FormatDetailsOneline formats the details for a log entry in oneline format.
func FormatDetailsOneline(e audit.Entry) string {
	if e.Operation == audit.OpOther {
		line, _, _ := strings.Cut(e.Message, "\n")
		return line
	}
	return FormatDetails(e)
}
