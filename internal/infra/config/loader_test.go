package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/git-relnotes/internal/domain"
	"github.com/runoshun/git-relnotes/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `
changelog:
  exclude:
    labels: [ignore-for-release]
    authors: [Dependabot]
  categories:
    - title: Breaking Changes
      labels: [breaking]
    - title: Bugs
      labels: [bug]
      exclude:
        labels: [wontfix]
        authors: [octocat]
    - title: Other
      labels: ["*"]
`

func TestLoader_Load_ExplicitPath(t *testing.T) {
	// Setup
	source := testutil.NewMockConfigSource()
	source.Files["ci/notes.yml"] = yamlConfig
	loader := NewLoader(source, nil)

	// Execute
	cfg, origin, err := loader.Load(context.Background(), "ci/notes.yml")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "ci/notes.yml", origin)
	assert.Equal(t, []string{"ci/notes.yml"}, source.Reads)

	require.NotNil(t, cfg.Changelog)
	require.Len(t, cfg.Changelog.Categories, 3)
	assert.Equal(t, []string{"ignore-for-release"}, cfg.Changelog.Exclude.Labels)
	assert.Equal(t, []string{"Dependabot"}, cfg.Changelog.Exclude.Authors)
	assert.Equal(t, "Bugs", cfg.Changelog.Categories[1].Title)
	assert.Equal(t, []string{"octocat"}, cfg.Changelog.Categories[1].Exclude.Authors)
	assert.Nil(t, cfg.Changelog.Categories[0].Exclude)
}

func TestLoader_Load_DefaultPathsInOrder(t *testing.T) {
	// Setup
	source := testutil.NewMockConfigSource()
	source.Files[".github/release.yaml"] = yamlConfig
	loader := NewLoader(source, nil)

	// Execute
	_, origin, err := loader.Load(context.Background(), "")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, ".github/release.yaml", origin)
	assert.Equal(t, []string{".github/release.yml", ".github/release.yaml"}, source.Reads)
}

func TestLoader_Load_FallsBackToBuiltin(t *testing.T) {
	// Setup
	source := testutil.NewMockConfigSource()
	logger := &testutil.MockLogger{}
	loader := NewLoader(source, logger)

	// Execute
	cfg, origin, err := loader.Load(context.Background(), "")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.BuiltinConfigOrigin, origin)
	assert.Len(t, logger.Level("info"), 3)
	assert.Empty(t, logger.Level("warn"))

	rules, err := cfg.Compile()
	require.NoError(t, err)
	assert.Equal(t, "Other Changes", rules.CatchAll().Title)
	assert.Equal(t, "Bug Fixes", rules.CategoryFor("bug").Title)
}

func TestLoader_Load_ExplicitPathMissingUsesBuiltin(t *testing.T) {
	loader := NewLoader(testutil.NewMockConfigSource(), nil)

	_, origin, err := loader.Load(context.Background(), "nope.yml")

	require.NoError(t, err)
	assert.Equal(t, domain.BuiltinConfigOrigin, origin)
}

func TestLoader_Load_ReadErrorIsFatal(t *testing.T) {
	// Setup
	source := testutil.NewMockConfigSource()
	source.Errs[".github/release.yml"] = errors.New("401 bad credentials")
	source.Files[".github/release.yaml"] = yamlConfig
	loader := NewLoader(source, nil)

	// Execute
	_, _, err := loader.Load(context.Background(), "")

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401 bad credentials")
	assert.Equal(t, []string{".github/release.yml"}, source.Reads)
}

func TestLoader_Parse_TOML(t *testing.T) {
	doc := `
[changelog.exclude]
authors = ["renovate"]

[[changelog.categories]]
title = "Features"
labels = ["enhancement"]

[[changelog.categories]]
title = "Bugs"
labels = ["bug"]

[changelog.categories.exclude]
labels = ["wontfix"]
`
	cfg, err := NewLoader(nil, nil).Parse("release.toml", []byte(doc))
	require.NoError(t, err)

	require.Len(t, cfg.Changelog.Categories, 2)
	assert.Equal(t, []string{"renovate"}, cfg.Changelog.Exclude.Authors)
	assert.Equal(t, "Features", cfg.Changelog.Categories[0].Title)
	assert.Nil(t, cfg.Changelog.Categories[0].Exclude)
	assert.Equal(t, []string{"wontfix"}, cfg.Changelog.Categories[1].Exclude.Labels)
}

func TestLoader_Parse_JSON(t *testing.T) {
	doc := `{"changelog": {"categories": [{"title": "All", "labels": ["*"]}]}}`

	cfg, err := NewLoader(nil, nil).Parse("release.json", []byte(doc))
	require.NoError(t, err)

	rules, err := cfg.Compile()
	require.NoError(t, err)
	assert.Equal(t, "All", rules.CatchAll().Title)
}

func TestLoader_Parse_Malformed(t *testing.T) {
	_, err := NewLoader(nil, nil).Parse("release.yml", []byte("changelog: [unterminated"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestLoader_Parse_WarnsOnUnknownKeys(t *testing.T) {
	doc := `
changelog:
  sort: asc
  categories:
    - title: Bugs
      labels: [bug]
      colour: red
      exclude:
        users: [bob]
`
	logger := &testutil.MockLogger{}

	_, err := NewLoader(nil, logger).Parse("release.yml", []byte(doc))
	require.NoError(t, err)

	var msgs []string
	for _, e := range logger.Level("warn") {
		msgs = append(msgs, e.Msg)
	}
	assert.Equal(t, []string{
		"release.yml: unknown key in [changelog]: sort",
		"release.yml: unknown key in [changelog.categories[0]]: colour",
		"release.yml: unknown key in [changelog.categories[0].exclude]: users",
	}, msgs)
}

func TestLoader_DefaultTemplateCompiles(t *testing.T) {
	loader := NewLoader(nil, nil)

	cfg, err := loader.Parse("default_release.yml", []byte(loader.DefaultTemplate()))
	require.NoError(t, err)
	_, err = cfg.Compile()
	assert.NoError(t, err)
}

func TestFileSource_ReadFile(t *testing.T) {
	// Setup
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".github"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".github", "release.yml"), []byte(yamlConfig), 0o644))
	source := NewFileSource(root)

	// Execute & Assert
	data, err := source.ReadFile(context.Background(), ".github/release.yml")
	require.NoError(t, err)
	assert.Equal(t, yamlConfig, string(data))

	_, err = source.ReadFile(context.Background(), ".github/release.yaml")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoader_Load_FromFileSource(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".github"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".github", "release.yml"), []byte(yamlConfig), 0o644))

	cfg, origin, err := NewLoader(NewFileSource(root), nil).Load(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, ".github/release.yml", origin)
	assert.Len(t, cfg.Changelog.Categories, 3)
}
