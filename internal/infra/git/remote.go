package git

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"

	"github.com/runoshun/git-relnotes/internal/domain"
)

// OriginRepository returns "owner/name" parsed from the origin remote URL.
// Returns domain.ErrNoRepository when there is no usable origin.
func (r *Repository) OriginRepository() (string, error) {
	remote, err := r.repo.Remote(git.DefaultRemoteName)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return "", domain.ErrNoRepository
		}
		return "", fmt.Errorf("read origin remote: %w", err)
	}
	for _, u := range remote.Config().URLs {
		if repo, ok := repositoryFromURL(u); ok {
			return repo, nil
		}
	}
	return "", domain.ErrNoRepository
}

// repositoryFromURL extracts owner/name from https, ssh and scp-like remote URLs.
// Local paths are rejected.
func repositoryFromURL(raw string) (string, bool) {
	ep, err := transport.NewEndpoint(raw)
	if err != nil || ep.Protocol == "file" {
		return "", false
	}

	path := strings.TrimSuffix(strings.Trim(ep.Path, "/"), ".git")
	parts := strings.Split(path, "/")
	if len(parts) < 2 {
		return "", false
	}
	owner, name := parts[len(parts)-2], parts[len(parts)-1]
	if owner == "" || name == "" {
		return "", false
	}
	return owner + "/" + name, true
}
