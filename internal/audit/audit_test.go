package audit

import (
	"testing"
	"time"

	"github.com/PolarWolf314/lockbox/internal/history"
)

func TestParseMessage(t *testing.T) {
	tests := []struct {
		message  string
		op       string
		secret   string
		previous string
	}{
		{"Create secret: email", OpCreate, "email", ""},
		{"Update secret: email", OpUpdate, "email", ""},
		{"Delete secret: email", OpDelete, "email", ""},
		{"Rename secret from old to new", OpRename, "new", "old"},
		{"Rename secret from a to b to c", OpRename, "c", "a to b"},
		{"Create secret: with spaces in name", OpCreate, "with spaces in name", ""},
		{"Create secret: trailing newline\n", OpCreate, "trailing newline", ""},
		{"Initial commit", OpOther, "", ""},
		{"Create secret: ", OpOther, "", ""},
		{"Rename secret from nothing", OpOther, "", ""},
	}

	for _, tt := range tests {
		op, secret, previous := ParseMessage(tt.message)
		if op != tt.op || secret != tt.secret || previous != tt.previous {
			t.Errorf("ParseMessage(%q) = (%q, %q, %q), expected (%q, %q, %q)",
				tt.message, op, secret, previous, tt.op, tt.secret, tt.previous)
		}
	}
}

func TestFromCommit(t *testing.T) {
	when := time.Date(2024, 3, 1, 12, 30, 45, 123456000, time.FixedZone("CET", 3600))
	entry := FromCommit(history.Commit{
		Hash:        "abc123",
		Message:     "Rename secret from a to b",
		AuthorEmail: history.AuthorEmail,
		When:        when,
	})

	if entry.Timestamp != "2024-03-01T11:30:45.123456Z" {
		t.Errorf("Expected UTC timestamp, got %q", entry.Timestamp)
	}
	if entry.Operation != OpRename || entry.Secret != "b" || entry.PreviousName != "a" {
		t.Errorf("Unexpected entry: %+v", entry)
	}
	if entry.User != history.AuthorEmail {
		t.Errorf("Expected user %q, got %q", history.AuthorEmail, entry.User)
	}
	if entry.Message != "" {
		t.Errorf("Expected no message for a known operation, got %q", entry.Message)
	}
	if !entry.Time().Equal(when) {
		t.Errorf("Expected Time() %v, got %v", when, entry.Time())
	}
}

func TestFromCommitOther(t *testing.T) {
	entry := FromCommit(history.Commit{Message: "Manual cleanup\n", When: time.Now()})
	if entry.Operation != OpOther {
		t.Errorf("Expected other, got %q", entry.Operation)
	}
	if entry.Message != "Manual cleanup" {
		t.Errorf("Expected message to be kept, got %q", entry.Message)
	}
}

func TestFromCommitsOrdersOldestFirst(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	commits := []history.Commit{
		{Hash: "3", Message: "Delete secret: a", When: base.Add(2 * time.Hour)},
		{Hash: "2", Message: "Update secret: a", When: base.Add(time.Hour)},
		{Hash: "1", Message: "Create secret: a", When: base},
	}

	entries := FromCommits(commits)
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	for i, want := range []string{OpCreate, OpUpdate, OpDelete} {
		if entries[i].Operation != want {
			t.Errorf("Entry %d: expected %s, got %s", i, want, entries[i].Operation)
		}
	}
}

func TestFromCommitsResolvesAmbiguousRename(t *testing.T) {
	rename := history.Commit{Hash: "2", Message: "Rename secret from a to b to c"}

	tests := []struct {
		created  string
		secret   string
		previous string
	}{
		{"a to b", "c", "a to b"},
		{"a", "b to c", "a"},
		{"unrelated", "c", "a to b"},
	}

	for _, tt := range tests {
		entries := FromCommits([]history.Commit{
			rename,
			{Hash: "1", Message: "Create secret: " + tt.created},
		})
		got := entries[1]
		if got.Operation != OpRename || got.Secret != tt.secret || got.PreviousName != tt.previous {
			t.Errorf("After creating %q: expected rename %q -> %q, got %q -> %q",
				tt.created, tt.previous, tt.secret, got.PreviousName, got.Secret)
		}
	}
}

func TestFromCommitsTracksRenamedNames(t *testing.T) {
	entries := FromCommits([]history.Commit{
		{Hash: "3", Message: "Rename secret from x to y to z"},
		{Hash: "2", Message: "Rename secret from a to x"},
		{Hash: "1", Message: "Create secret: a"},
	})

	last := entries[2]
	if last.PreviousName != "x" || last.Secret != "y to z" {
		t.Errorf("Expected rename x -> \"y to z\", got %q -> %q", last.PreviousName, last.Secret)
	}
}

func TestEntryTimeMalformed(t *testing.T) {
	if !(Entry{Timestamp: "yesterday"}).Time().IsZero() {
		t.Error("Expected zero time for malformed timestamp")
	}
	rfc := Entry{Timestamp: "2024-01-02T03:04:05Z"}
	if rfc.Time().IsZero() {
		t.Error("Expected RFC3339 timestamps to parse")
	}
}
