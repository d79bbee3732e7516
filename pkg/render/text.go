package render

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// truncate cuts s to at most limit runes. It never splits a multi-byte
// character and truncate(truncate(s, n), n) == truncate(s, n).
func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// firstLine returns s up to the first line break.
func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}

// shortSHA returns the first 8 characters of a commit id.
func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}

var (
	// A bare @login not glued to a word, an opening angle bracket, a link
	// label, a URL path or a code span.
	plainMention = regexp.MustCompile("(^|[^<\\w\\[/`])@([A-Za-z0-9][A-Za-z0-9-]{0,38})")
	// An already escaped <@login>.
	markedMention = regexp.MustCompile(`<@([A-Za-z0-9-]+)>`)
)

// rewriteMentions links plain mentions to GitHub profiles, then unwraps
// marked mentions. The order matters: "<@a>@b" becomes "@a[@b](...)".
func rewriteMentions(s string) string {
	s = plainMention.ReplaceAllString(s, "${1}[@${2}](https://github.com/${2})")
	return markedMention.ReplaceAllString(s, "@$1")
}
