// Package audit presents the store history as an audit trail.
//
// The store records every mutation as a commit whose message follows one of
// four templates:
//
//	Create secret: {name}
//	Update secret: {name}
//	Rename secret from {previous} to {name}
//	Delete secret: {name}
//
// Entries are built by parsing those messages, so the trail needs no
// storage of its own. Commits with any other message (for example ones
// made by hand in the store repository) become entries with operation
// "other".
//
// # Usage
//
//	commits, _ := s.History(0)
//	for _, e := range audit.FromCommits(commits) {
//	    fmt.Println(e.Timestamp, e.Operation, e.Secret)
//	}
package audit
