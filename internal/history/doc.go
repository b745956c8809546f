// Package history records store mutations as commits in a local git
// repository.
//
// The repository is rooted at the store directory. Every commit stages the
// whole working tree (additions, modifications and deletions) and is
// authored by a fixed identity, so the log reads as a plain audit trail of
// what happened to which secret. Commits have at most one parent.
package history
