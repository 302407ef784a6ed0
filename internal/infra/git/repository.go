// Package git reads commit history and tags from a local clone using go-git.
package git

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/runoshun/git-relnotes/internal/domain"
)

// Repository serves commit ranges and release baselines from a local clone.
type Repository struct {
	repo *git.Repository
	root string // worktree root, empty for bare repositories
}

// Ensure Repository implements the domain ports.
var (
	_ domain.CommitSource  = (*Repository)(nil)
	_ domain.ReleaseSource = (*Repository)(nil)
)

// Open opens the repository containing dir.
func Open(dir string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", dir, domain.ErrNotGitRepository)
		}
		return nil, fmt.Errorf("open git repository: %w", err)
	}
	return NewWithRepo(repo), nil
}

// NewWithRepo creates a Repository with an existing go-git repository.
func NewWithRepo(repo *git.Repository) *Repository {
	r := &Repository{repo: repo}
	if wt, err := repo.Worktree(); err == nil {
		r.root = wt.Filesystem.Root()
	}
	return r
}

// Root returns the worktree root directory.
func (r *Repository) Root() string {
	return r.root
}

// CommitsBetween yields the commits reachable from head but not from base,
// oldest first.
func (r *Repository) CommitsBetween(ctx context.Context, base, head string) iter.Seq2[domain.Commit, error] {
	return func(yield func(domain.Commit, error) bool) {
		excluded, err := r.reachable(ctx, base)
		if err != nil {
			yield(domain.Commit{}, err)
			return
		}

		var commits []domain.Commit
		for c, err := range r.CommitsFrom(ctx, head) {
			if err != nil {
				yield(domain.Commit{}, err)
				return
			}
			if _, ok := excluded[plumbing.NewHash(c.SHA)]; !ok {
				commits = append(commits, c)
			}
		}

		slices.Reverse(commits)
		for _, c := range commits {
			if !yield(c, nil) {
				return
			}
		}
	}
}

// CommitsFrom yields every commit reachable from head, newest first.
func (r *Repository) CommitsFrom(ctx context.Context, head string) iter.Seq2[domain.Commit, error] {
	return func(yield func(domain.Commit, error) bool) {
		start, err := r.resolve(head)
		if err != nil {
			yield(domain.Commit{}, err)
			return
		}

		log, err := r.repo.Log(&git.LogOptions{From: start.Hash, Order: git.LogOrderCommitterTime})
		if err != nil {
			yield(domain.Commit{}, fmt.Errorf("log %s: %w", head, err))
			return
		}
		defer log.Close()

		stopped := false
		err = log.ForEach(func(c *object.Commit) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !yield(domain.Commit{SHA: c.Hash.String(), Message: c.Message}, nil) {
				stopped = true
				return storer.ErrStop
			}
			return nil
		})
		if err != nil && !stopped {
			yield(domain.Commit{}, fmt.Errorf("log %s: %w", head, err))
		}
	}
}

// LatestReleaseTag returns the most recent tag whose commit is an ancestor of
// tag. Tags pointing at the same commit as tag are skipped. When tag does not
// exist yet, HEAD is used as the release commit.
func (r *Repository) LatestReleaseTag(ctx context.Context, tag string) (string, error) {
	target, err := r.resolve(tag)
	if errors.Is(err, domain.ErrNotFound) {
		target, err = r.resolve(string(plumbing.HEAD))
	}
	if err != nil {
		return "", err
	}

	tags, err := r.repo.Tags()
	if err != nil {
		return "", fmt.Errorf("list tags: %w", err)
	}
	defer tags.Close()

	var (
		best       string
		bestCommit *object.Commit
	)
	err = tags.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := ref.Name().Short()
		if name == tag {
			return nil
		}
		c, err := r.peel(ref.Hash())
		if err != nil {
			// Tags of trees or blobs cannot be release baselines.
			return nil
		}
		if c.Hash == target.Hash {
			return nil
		}
		ok, err := c.IsAncestor(target)
		if err != nil {
			return fmt.Errorf("check ancestry of %s: %w", name, err)
		}
		if !ok {
			return nil
		}
		// Ties are broken by name so the result does not depend on ref order.
		if bestCommit == nil || c.Committer.When.After(bestCommit.Committer.When) ||
			(c.Committer.When.Equal(bestCommit.Committer.When) && name > best) {
			best, bestCommit = name, c
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if bestCommit == nil {
		return "", domain.ErrNoRelease
	}
	return best, nil
}

func (r *Repository) reachable(ctx context.Context, rev string) (map[plumbing.Hash]struct{}, error) {
	set := make(map[plumbing.Hash]struct{})
	for c, err := range r.CommitsFrom(ctx, rev) {
		if err != nil {
			return nil, err
		}
		set[plumbing.NewHash(c.SHA)] = struct{}{}
	}
	return set, nil
}

func (r *Repository) resolve(rev string) (*object.Commit, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) || errors.Is(err, plumbing.ErrObjectNotFound) {
			return nil, fmt.Errorf("revision %s: %w", rev, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("resolve %s: %w", rev, err)
	}
	c, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("read commit %s: %w", hash, err)
	}
	return c, nil
}

// peel follows annotated tags down to the tagged commit.
func (r *Repository) peel(hash plumbing.Hash) (*object.Commit, error) {
	if tag, err := r.repo.TagObject(hash); err == nil {
		return tag.Commit()
	}
	return r.repo.CommitObject(hash)
}
