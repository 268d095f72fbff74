package scaffold

import (
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Initializer abstracts git repository initialization so tests can skip the
// real filesystem work.
type Initializer interface {
	// InitWithCommit creates a repository at path, stages everything, and
	// records one commit with the given message.
	InitWithCommit(path, message string) error
}

// RealInitializer is the production Initializer backed by go-git.
type RealInitializer struct{}

// InitWithCommit initializes a repository and commits the scaffolded files.
func (RealInitializer) InitWithCommit(path, message string) error {
	repo, err := git.PlainInit(path, false)
	if err != nil {
		return err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return err
	}

	if err := wt.AddGlob("."); err != nil {
		return err
	}

	_, err = wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "godot-mcp",
			Email: "godot-mcp@localhost",
			When:  time.Now(),
		},
	})
	return err
}
