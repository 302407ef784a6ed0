package git

import (
	"testing"

	"github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/git-relnotes/internal/domain"
)

func TestRepositoryFromURL(t *testing.T) {
	tests := []struct {
		url    string
		want   string
		wantOK bool
	}{
		{"https://github.com/octo/hello.git", "octo/hello", true},
		{"https://github.com/octo/hello", "octo/hello", true},
		{"https://ghe.example.com/org/tool/", "org/tool", true},
		{"ssh://git@github.com/octo/hello.git", "octo/hello", true},
		{"git@github.com:octo/hello.git", "octo/hello", true},
		{"/srv/git/hello", "", false},
		{"https://github.com/octo", "", false},
		{"hello", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, ok := repositoryFromURL(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRepository_OriginRepository(t *testing.T) {
	r := setupTestRepo(t)
	_, err := r.repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:octo/hello.git"},
	})
	require.NoError(t, err)

	got, err := NewWithRepo(r.repo).OriginRepository()

	require.NoError(t, err)
	assert.Equal(t, "octo/hello", got)
}

func TestRepository_OriginRepository_NoRemote(t *testing.T) {
	r := setupTestRepo(t)

	_, err := NewWithRepo(r.repo).OriginRepository()

	assert.ErrorIs(t, err, domain.ErrNoRepository)
}
