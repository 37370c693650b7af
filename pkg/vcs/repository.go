package vcs

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// RepositoryRunner answers RemoteOriginURLArgs and RootCommitArgs by reading
// the repository with go-git, without a git binary.
type RepositoryRunner struct {
	// Dir is any directory inside the work tree. Empty means the current directory.
	Dir string
}

var _ Runner = (*RepositoryRunner)(nil)

func (r *RepositoryRunner) Run(ctx context.Context, timeout time.Duration, args ...string) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	dir := r.Dir
	if dir == "" {
		dir = "."
	}

	// PlainOpenWithOptions searches up the directory tree for .git
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", unavailable(err)
	}

	switch {
	case slices.Equal(args, RemoteOriginURLArgs):
		return remoteOriginURL(repo)
	case slices.Equal(args, RootCommitArgs):
		return rootCommits(ctx, repo)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, strings.Join(args, " "))
	}
}

func remoteOriginURL(repo *git.Repository) (string, error) {
	remote, err := repo.Remote(git.DefaultRemoteName)
	if err != nil {
		return "", unavailable(err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", unavailable(errors.New("remote origin has no url"))
	}

	return urls[0] + "\n", nil
}

func rootCommits(ctx context.Context, repo *git.Repository) (string, error) {
	head, err := repo.Head()
	if err != nil {
		return "", unavailable(err)
	}

	// Newest first by committer time, the order `git rev-list` prints
	iter, err := repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderCommitterTime})
	if err != nil {
		return "", unavailable(err)
	}
	defer iter.Close()

	var roots []string
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if c.NumParents() == 0 {
			roots = append(roots, c.Hash.String())
		}
		return nil
	})
	if err != nil {
		return "", unavailable(err)
	}
	if len(roots) == 0 {
		return "", unavailable(errors.New("no root commit reachable from HEAD"))
	}

	return strings.Join(roots, "\n") + "\n", nil
}
