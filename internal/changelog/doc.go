// Package changelog renders categorized issues as Markdown release notes.
//
// The output is one "### <title>" heading per non-empty category, in
// declaration order, each followed by a " - [<issue title>](<url>) (<attribution>)"
// line per issue in membership order.
package changelog
