package writer

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"git.home.luguber.info/inful/scaffold/internal/errors"
	"git.home.luguber.info/inful/scaffold/internal/observability"
)

// BootstrapGit initializes a git repository in dir, stages everything, and
// creates an initial commit. Reuses an existing repository when dir is
// already one.
func BootstrapGit(ctx context.Context, dir, message string) error {
	if message == "" {
		message = "init"
	}

	repo, err := git.PlainInit(dir, false)
	if err == git.ErrRepositoryAlreadyExists {
		repo, err = git.PlainOpen(dir)
	}
	if err != nil {
		return errors.GitBootstrapFailed(err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return errors.GitBootstrapFailed(err)
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return errors.GitBootstrapFailed(err)
	}

	status, err := wt.Status()
	if err != nil {
		return errors.GitBootstrapFailed(err)
	}
	if status.IsClean() {
		observability.DebugContext(ctx, "git bootstrap: nothing to commit")
		return nil
	}

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "scaffold",
			Email: "scaffold@localhost",
			When:  time.Now(),
		},
	})
	if err != nil {
		return errors.GitBootstrapFailed(err)
	}
	observability.InfoContext(ctx, "created initial commit",
		slog.String("commit", hash.String()[:8]))
	return nil
}
