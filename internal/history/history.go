package history

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	kerrors "github.com/PolarWolf314/lockbox/internal/errors"
)

const (
	AuthorName  = "Lockbox"
	AuthorEmail = "lockbox@app.local"
)

// Commit is an immutable entry in the store history.
type Commit struct {
	Hash        string
	Message     string
	Parent      string // Empty for the first commit.
	AuthorName  string
	AuthorEmail string
	When        time.Time
}

// Repository wraps the git repository backing a store.
type Repository struct {
	root string
	repo *git.Repository
}

// Open opens the repository at root, initializing one if none exists.
func Open(root string) (*Repository, error) {
	repo, err := git.PlainOpen(root)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		repo, err = git.PlainInit(root, false)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: opening repository at %s: %w", kerrors.ErrHistory, root, err)
	}
	return &Repository{root: root, repo: repo}, nil
}

// Root returns the repository's working tree path.
func (r *Repository) Root() string {
	return r.root
}

// Commit stages every change under the root and commits it with message.
// An unborn branch produces a commit without parents.
func (r *Repository) Commit(message string) (*Commit, error) {
	parent, err := r.headHash()
	if err != nil {
		return nil, err
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("%w: opening worktree: %w", kerrors.ErrHistory, err)
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return nil, fmt.Errorf("%w: staging changes: %w", kerrors.ErrHistory, err)
	}

	var parents []plumbing.Hash
	if !parent.IsZero() {
		parents = []plumbing.Hash{parent}
	}

	signature := &object.Signature{
		Name:  AuthorName,
		Email: AuthorEmail,
		When:  time.Now(),
	}
	hash, err := wt.Commit(message, &git.CommitOptions{
		Author:            signature,
		Committer:         signature,
		Parents:           parents,
		AllowEmptyCommits: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: committing: %w", kerrors.ErrHistory, err)
	}

	commit, err := r.repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("%w: reading new commit %s: %w", kerrors.ErrHistory, hash, err)
	}
	return fromObject(commit), nil
}

// Head returns the current commit, or nil if the branch is unborn.
func (r *Repository) Head() (*Commit, error) {
	hash, err := r.headHash()
	if err != nil || hash.IsZero() {
		return nil, err
	}

	commit, err := r.repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("%w: reading HEAD commit: %w", kerrors.ErrHistory, err)
	}
	return fromObject(commit), nil
}

// Log returns up to limit commits reachable from HEAD, newest first.
// A limit of 0 or less returns every commit.
func (r *Repository) Log(limit int) ([]Commit, error) {
	hash, err := r.headHash()
	if err != nil {
		return nil, err
	}
	if hash.IsZero() {
		return []Commit{}, nil
	}

	iter, err := r.repo.Log(&git.LogOptions{From: hash})
	if err != nil {
		return nil, fmt.Errorf("%w: reading log: %w", kerrors.ErrHistory, err)
	}
	defer iter.Close()

	commits := []Commit{}
	for limit <= 0 || len(commits) < limit {
		c, err := iter.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading log: %w", kerrors.ErrHistory, err)
		}
		commits = append(commits, *fromObject(c))
	}
	return commits, nil
}

// headHash resolves HEAD, returning the zero hash for an unborn branch.
func (r *Repository) headHash() (plumbing.Hash, error) {
	ref, err := r.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return plumbing.ZeroHash, nil
	}
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("%w: resolving HEAD: %w", kerrors.ErrHistory, err)
	}
	return ref.Hash(), nil
}

func fromObject(c *object.Commit) *Commit {
	commit := &Commit{
		Hash:        c.Hash.String(),
		Message:     c.Message,
		AuthorName:  c.Author.Name,
		AuthorEmail: c.Author.Email,
		When:        c.Author.When,
	}
	if len(c.ParentHashes) > 0 {
		commit.Parent = c.ParentHashes[0].String()
	}
	return commit
}

// ShortHash abbreviates a commit hash for display.
func ShortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
