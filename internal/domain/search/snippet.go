package search

import "strings"

// Terminator is the sentence terminator that marks a snippet as complete.
const Terminator = "。"

// Ellipsis marks a truncated snippet for the UI.
const Ellipsis = "..."

// Snippet derives the display fragment for a hit.
//
// Highlighted fragments are tried in field-priority order; the first field
// that was actually highlighted wins. When nothing was highlighted (browse
// mode, or a match outside the highlightable fields) the fallback field is
// truncated to size runes. The result is terminated via Terminate.
func Snippet(highlights map[string][]string, priority []string, fallback string, size int) string {
	var fragment string
	for _, field := range priority {
		if frags, ok := highlights[field]; ok && len(frags) > 0 {
			fragment = frags[0]
			break
		}
	}
	if fragment == "" {
		fragment = truncateRunes(fallback, size)
	}
	return Terminate(fragment)
}

// Terminate appends the ellipsis marker unless the fragment already ends
// with the sentence terminator. Empty fragments stay empty.
func Terminate(fragment string) string {
	if fragment == "" {
		return ""
	}
	if strings.HasSuffix(fragment, Terminator) {
		return fragment
	}
	return fragment + Ellipsis
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
