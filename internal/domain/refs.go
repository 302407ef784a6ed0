package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// TagRefPrefix is stripped from tag inputs.
const TagRefPrefix = "refs/tags/"

// issueRefPattern matches "#123" when the '#' is not preceded by a word character
// and the digit run ends on a word boundary.
var issueRefPattern = regexp.MustCompile(`(?:^|\W)#(\d+)\b`)

// IssueRefs returns the issue numbers referenced in a commit message,
// in order of appearance. Duplicates are kept; callers deduplicate.
func IssueRefs(message string) []int {
	matches := issueRefPattern.FindAllStringSubmatch(message, -1)
	refs := make([]int, 0, len(matches))
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue // overflow
		}
		refs = append(refs, n)
	}
	return refs
}

// NormalizeTag strips the refs/tags/ prefix from a tag name.
func NormalizeTag(tag string) string {
	return strings.TrimSpace(strings.Replace(tag, TagRefPrefix, "", 1))
}
