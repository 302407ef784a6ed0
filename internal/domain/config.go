package domain

import (
	"fmt"
	"strings"
)

// Default locations searched for a release configuration document.
var DefaultConfigPaths = []string{
	".github/release.yml",
	".github/release.yaml",
}

// ReleaseConfig is the document shape of a release configuration file.
// Optional sections are pointers so a missing section can be told apart from an empty one.
type ReleaseConfig struct {
	Changelog *ChangelogConfig `yaml:"changelog" toml:"changelog" json:"changelog"`
}

// ChangelogConfig holds the category list and global exclusion rule.
type ChangelogConfig struct {
	Exclude    *ExcludeConfig   `yaml:"exclude,omitempty" toml:"exclude,omitempty" json:"exclude,omitempty"`
	Categories []CategoryConfig `yaml:"categories" toml:"categories" json:"categories"`
}

// CategoryConfig declares a single changelog category.
type CategoryConfig struct {
	Exclude *ExcludeConfig `yaml:"exclude,omitempty" toml:"exclude,omitempty" json:"exclude,omitempty"`
	Title   string         `yaml:"title" toml:"title" json:"title"`
	Labels  []string       `yaml:"labels" toml:"labels" json:"labels"`
}

// ExcludeConfig lists labels and authors to leave out.
type ExcludeConfig struct {
	Labels  []string `yaml:"labels,omitempty" toml:"labels,omitempty" json:"labels,omitempty"`
	Authors []string `yaml:"authors,omitempty" toml:"authors,omitempty" json:"authors,omitempty"`
}

// ConfigError reports a malformed release configuration.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid release configuration: %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidConfig) hold for every ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// Compile validates the document and builds the categorization rules.
// Missing exclusion sections default to empty sets.
func (c *ReleaseConfig) Compile() (*Rules, error) {
	if c == nil || c.Changelog == nil {
		return nil, &ConfigError{Field: "changelog", Reason: "section is missing"}
	}
	if c.Changelog.Categories == nil {
		return nil, &ConfigError{Field: "changelog.categories", Reason: "category list is missing"}
	}

	categories := make([]*Category, 0, len(c.Changelog.Categories))
	for i, cc := range c.Changelog.Categories {
		if strings.TrimSpace(cc.Title) == "" {
			return nil, &ConfigError{
				Field:  fmt.Sprintf("changelog.categories[%d].title", i),
				Reason: "title is required",
			}
		}
		categories = append(categories, &Category{
			Title:   cc.Title,
			Labels:  cc.Labels,
			Exclude: NewExclusionRule(cc.Exclude),
		})
	}

	return NewRules(categories, NewExclusionRule(c.Changelog.Exclude)), nil
}
