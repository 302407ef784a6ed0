package domain

import "strings"

// CatchAllLabel marks a category as the catch-all.
const CatchAllLabel = "*"

// ExclusionRule removes issues by label (case-sensitive) or closer (case-insensitive).
type ExclusionRule struct {
	labels  map[string]struct{}
	authors map[string]struct{}
}

// NewExclusionRule builds a rule from its document form. A nil config yields an empty rule.
func NewExclusionRule(cfg *ExcludeConfig) ExclusionRule {
	r := ExclusionRule{
		labels:  map[string]struct{}{},
		authors: map[string]struct{}{},
	}
	if cfg == nil {
		return r
	}
	for _, l := range cfg.Labels {
		r.labels[l] = struct{}{}
	}
	for _, a := range cfg.Authors {
		r.authors[strings.ToLower(a)] = struct{}{}
	}
	return r
}

// ExcludesAnyLabel reports whether any of labels is excluded.
func (r ExclusionRule) ExcludesAnyLabel(labels []string) bool {
	for _, l := range labels {
		if _, ok := r.labels[l]; ok {
			return true
		}
	}
	return false
}

// ExcludesAuthor reports whether login is excluded. login is compared lowercased.
func (r ExclusionRule) ExcludesAuthor(login string) bool {
	_, ok := r.authors[strings.ToLower(login)]
	return ok
}

// Labels returns the excluded labels in no particular order.
func (r ExclusionRule) Labels() []string {
	return setKeys(r.labels)
}

// Authors returns the excluded (lowercased) authors in no particular order.
func (r ExclusionRule) Authors() []string {
	return setKeys(r.authors)
}

// IsEmpty reports whether the rule excludes nothing.
func (r ExclusionRule) IsEmpty() bool {
	return len(r.labels) == 0 && len(r.authors) == 0
}

func setKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// Category is a named changelog bucket. It is immutable once compiled;
// membership lives in Classification.
type Category struct {
	Title   string
	Labels  []string
	Exclude ExclusionRule
	index   int // Declaration order
}

// Index returns the declaration position of the category.
func (c *Category) Index() int {
	return c.index
}

// Rules is the compiled form of a release configuration.
type Rules struct {
	categories []*Category
	byLabel    map[string]*Category
	catchAll   *Category
	exclude    ExclusionRule
}

// NewRules indexes categories by label. When several categories claim the same label
// the last one declared wins; this also decides which category is the catch-all.
func NewRules(categories []*Category, exclude ExclusionRule) *Rules {
	byLabel := make(map[string]*Category)
	for i, c := range categories {
		c.index = i
		for _, l := range c.Labels {
			byLabel[l] = c
		}
	}
	return &Rules{
		categories: categories,
		byLabel:    byLabel,
		catchAll:   byLabel[CatchAllLabel],
		exclude:    exclude,
	}
}

// Categories returns the categories in declaration order.
func (r *Rules) Categories() []*Category {
	return r.categories
}

// CategoryFor returns the category owning label, or nil.
func (r *Rules) CategoryFor(label string) *Category {
	return r.byLabel[label]
}

// CatchAll returns the catch-all category, or nil when none is configured.
func (r *Rules) CatchAll() *Category {
	return r.catchAll
}

// Exclude returns the global exclusion rule.
func (r *Rules) Exclude() ExclusionRule {
	return r.exclude
}
