package domain

import "errors"

// Domain errors.
var (
	ErrNotFound      = errors.New("not found")
	ErrTagRequired   = errors.New("tag name is required")
	ErrNoRelease     = errors.New("no published release found")
	ErrInvalidConfig = errors.New("invalid release configuration")
	ErrNoRepository  = errors.New("repository is required (owner/name)")

	ErrNotGitRepository = errors.New("not a git repository")
)
