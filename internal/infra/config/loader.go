// Package config provides release configuration loading functionality.
package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"path"
	"slices"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/git-relnotes/internal/domain"
)

//go:embed default_release.yml
var defaultTemplate string

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader reads release configuration documents from a ConfigSource.
// YAML (and JSON, as a YAML subset) and TOML documents are accepted, chosen by extension.
type Loader struct {
	source domain.ConfigSource
	logger domain.Logger
}

// NewLoader creates a new Loader. logger may be nil.
func NewLoader(source domain.ConfigSource, logger domain.Logger) *Loader {
	return &Loader{
		source: source,
		logger: logger,
	}
}

// DefaultTemplate returns the built-in configuration document.
func (l *Loader) DefaultTemplate() string {
	return defaultTemplate
}

// Load tries the explicit path, or the default locations in order, and returns the
// first document found. Missing documents fall through; any other read or parse
// error is returned. With no document at all the built-in configuration is used.
func (l *Loader) Load(ctx context.Context, p string) (*domain.ReleaseConfig, string, error) {
	candidates := domain.DefaultConfigPaths
	if p != "" {
		candidates = []string{p}
	}

	for _, candidate := range candidates {
		data, err := l.source.ReadFile(ctx, candidate)
		if errors.Is(err, domain.ErrNotFound) {
			l.info(fmt.Sprintf("configuration %s not found", candidate))
			continue
		}
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", candidate, err)
		}

		cfg, err := l.Parse(candidate, data)
		if err != nil {
			return nil, "", err
		}
		return cfg, candidate, nil
	}

	l.info("using built-in configuration")
	cfg, err := l.Parse("default_release.yml", []byte(defaultTemplate))
	if err != nil {
		return nil, "", err
	}
	return cfg, domain.BuiltinConfigOrigin, nil
}

// Parse decodes a document. The format follows the file extension; anything
// other than .toml is read as YAML.
func (l *Loader) Parse(name string, data []byte) (*domain.ReleaseConfig, error) {
	var (
		cfg domain.ReleaseConfig
		raw map[string]any
		err error
	)

	if strings.EqualFold(path.Ext(name), ".toml") {
		if err = toml.Unmarshal(data, &cfg); err == nil {
			err = toml.Unmarshal(data, &raw)
		}
	} else {
		if err = yaml.Unmarshal(data, &cfg); err == nil {
			err = yaml.Unmarshal(data, &raw)
		}
	}
	if err != nil {
		return nil, &domain.ConfigError{Field: name, Reason: err.Error()}
	}

	for _, w := range unknownKeys(raw) {
		if l.logger != nil {
			l.logger.Warn(0, "config", fmt.Sprintf("%s: %s", name, w))
		}
	}
	return &cfg, nil
}

func (l *Loader) info(msg string) {
	if l.logger != nil {
		l.logger.Info(0, "config", msg)
	}
}

var (
	changelogKeys = []string{"categories", "exclude"}
	categoryKeys  = []string{"exclude", "labels", "title"}
	excludeKeys   = []string{"authors", "labels"}
)

// unknownKeys reports keys the document carries that the schema ignores.
func unknownKeys(raw map[string]any) []string {
	var warnings []string
	check := func(section string, m map[string]any, known []string) {
		for _, k := range sortedKeys(m) {
			if !slices.Contains(known, k) {
				warnings = append(warnings, fmt.Sprintf("unknown key in [%s]: %s", section, k))
			}
		}
	}

	changelog, ok := raw["changelog"].(map[string]any)
	if !ok {
		return nil
	}
	check("changelog", changelog, changelogKeys)
	if ex, ok := changelog["exclude"].(map[string]any); ok {
		check("changelog.exclude", ex, excludeKeys)
	}

	cats, _ := changelog["categories"].([]any)
	for i, c := range cats {
		cat, ok := c.(map[string]any)
		if !ok {
			continue
		}
		section := fmt.Sprintf("changelog.categories[%d]", i)
		check(section, cat, categoryKeys)
		if ex, ok := cat["exclude"].(map[string]any); ok {
			check(section+".exclude", ex, excludeKeys)
		}
	}
	return warnings
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
