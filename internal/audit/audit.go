package audit

import (
	"strings"
	"time"

	"github.com/PolarWolf314/lockbox/internal/history"
)

// TimestampFormat is the layout of Entry.Timestamp.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Operations recorded in the history.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpRename = "rename"
	OpDelete = "delete"
	OpOther  = "other"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`   // RFC3339 with microseconds, UTC.
	Hash      string `json:"hash"` // Commit hash.
	User      string `json:"user"` // Commit author email.
	Operation string `json:"op"`   // Operation name.
	Secret    string `json:"secret,omitempty"`

	// Optional fields depending on operation.
	PreviousName string `json:"previous_name,omitempty"` // For rename.
	Message      string `json:"message,omitempty"`       // For other.
}

// Time returns the parsed timestamp, or the zero time if it is malformed.
func (e Entry) Time() time.Time {
	t, err := time.Parse(TimestampFormat, e.Timestamp)
	if err != nil {
		t, _ = time.Parse(time.RFC3339, e.Timestamp)
	}
	return t
}

// FromCommit converts a single commit.
func FromCommit(c history.Commit) Entry {
	op, secret, previous := ParseMessage(c.Message)
	entry := Entry{
		Timestamp:    c.When.UTC().Format(TimestampFormat),
		Hash:         c.Hash,
		User:         c.AuthorEmail,
		Operation:    op,
		Secret:       secret,
		PreviousName: previous,
	}
	if op == OpOther {
		entry.Message = strings.TrimSpace(c.Message)
	}
	return entry
}

// FromCommits converts a newest-first commit log into entries ordered
// oldest first. Rename messages whose names contain " to " are split
// against the secrets that existed when the rename was committed.
func FromCommits(commits []history.Commit) []Entry {
	entries := make([]Entry, 0, len(commits))
	live := make(map[string]bool)
	for i := len(commits) - 1; i >= 0; i-- {
		e := FromCommit(commits[i])
		switch e.Operation {
		case OpCreate:
			live[e.Secret] = true
		case OpDelete:
			delete(live, e.Secret)
		case OpRename:
			e.PreviousName, e.Secret = splitRename(e.PreviousName+renameSep+e.Secret, live)
			delete(live, e.PreviousName)
			live[e.Secret] = true
		}
		entries = append(entries, e)
	}
	return entries
}

const renameSep = " to "

// splitRename picks the separator that leaves an existing secret on the
// left and a free name on the right. It falls back to the last
// separator when history cannot tell.
func splitRename(rest string, live map[string]bool) (from, to string) {
	for off := 0; ; {
		k := strings.Index(rest[off:], renameSep)
		if k < 0 {
			break
		}
		i := off + k
		if i > 0 && live[rest[:i]] && !live[rest[i+len(renameSep):]] {
			return rest[:i], rest[i+len(renameSep):]
		}
		off = i + 1
	}
	i := strings.LastIndex(rest, renameSep)
	return rest[:i], rest[i+len(renameSep):]
}

// ParseMessage extracts the operation and secret names from a commit
// message. previous is only set for renames.
//
// A rename message is ambiguous when either name contains " to ". On its
// own ParseMessage splits on the last occurrence; FromCommits re-splits
// using the names known to exist at that point in history.
func ParseMessage(message string) (op, secret, previous string) {
	msg := strings.TrimSpace(message)

	if rest, ok := strings.CutPrefix(msg, "Rename secret from "); ok {
		if i := strings.LastIndex(rest, renameSep); i > 0 {
			return OpRename, rest[i+len(renameSep):], rest[:i]
		}
		return OpOther, "", ""
	}

	for prefix, op := range map[string]string{
		"Create secret: ": OpCreate,
		"Update secret: ": OpUpdate,
		"Delete secret: ": OpDelete,
	} {
		if name, ok := strings.CutPrefix(msg, prefix); ok && name != "" {
			return op, name, ""
		}
	}
	return OpOther, "", ""
}
