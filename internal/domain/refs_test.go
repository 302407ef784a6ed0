package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIssueRefs(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    []int
	}{
		{"single", "fix #12", []int{12}},
		{"two refs", "fix #12 and #7", []int{12, 7}},
		{"at start", "#3 typo", []int{3}},
		{"repeats kept", "#12 again #12", []int{12, 12}},
		{"in parens", "Merge pull request (#45)", []int{45}},
		{"comma separated", "closes #1,#2", []int{1, 2}},
		{"multiline", "subject\n\nrefs #8\n#9", []int{8, 9}},

		// Not references
		{"preceded by word char", "abc#12", []int{}},
		{"glued to previous ref", "#1#2", []int{1}},
		{"digits followed by letters", "#12abc", []int{}},
		{"no digits", "# heading", []int{}},
		{"empty", "", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IssueRefs(tt.message))
		})
	}
}

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"v1.2.0", "v1.2.0"},
		{"refs/tags/v1.2.0", "v1.2.0"},
		{"  refs/tags/v2 ", "v2"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTag(tt.in))
		})
	}
}
