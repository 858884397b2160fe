// Package normalize strips the artifacts the ChatGPT export leaves in
// message text: private-use glyphs, bracketed citation markers, and
// zero-width characters, with NFKC applied first so the removals see a
// canonical form.
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	privateUse = regexp.MustCompile(`[\x{E000}-\x{F8FF}]`)
	// The export renders citations either as 【n†source】 or, in older
	// dumps, as a bare [n] following an ellipsis placeholder.
	bracketedRefs = regexp.MustCompile(`【[^】]*】|\s+\[\d+\]`)
	ellipsis      = regexp.MustCompile(`\x{2026}`)
	zeroWidth     = regexp.MustCompile(`[\x{200B}-\x{200F}\x{202A}-\x{202E}\x{2060}-\x{206F}\x{FEFF}]`)
	doubleSpaces  = regexp.MustCompile(` {2,}`)
	spaceBefore   = regexp.MustCompile(`[ \t\n]+([,.:;!?)])`)
	blankLines    = regexp.MustCompile(`\n{3,}`)
)

// Text returns s with export artifacts removed and surrounding whitespace
// trimmed. Idempotent: normalizing already-clean text returns it
// unchanged. An empty result means the message should be dropped.
func Text(s string) string {
	if s == "" {
		return s
	}
	// NFKC would expand U+2026 into three dots, so placeholders go first.
	s = ellipsis.ReplaceAllString(s, "")
	s = norm.NFKC.String(s)
	s = privateUse.ReplaceAllString(s, "")
	s = bracketedRefs.ReplaceAllString(s, "")
	s = zeroWidth.ReplaceAllString(s, "")
	// Removals leave double spaces and stranded space before punctuation.
	s = doubleSpaces.ReplaceAllString(s, " ")
	s = spaceBefore.ReplaceAllString(s, "$1")
	s = blankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
