package bot

import (
	"strings"
	"unicode/utf8"
)

// markdownSpecial is the set of characters Telegram requires escaped in
// MarkdownV2 text.
var markdownSpecial = []string{
	"\\", "_", "*", "[", "]", "(", ")", "~", "`", ">", "<", "&",
	"#", "+", "-", "=", "|", "{", "}", ".", "!",
}

// EscapeMarkdown escapes all MarkdownV2 special characters in s
func EscapeMarkdown(s string) string {
	for _, ch := range markdownSpecial {
		s = strings.ReplaceAll(s, ch, "\\"+ch)
	}
	return s
}

// SplitMessage splits a message into newline-aligned chunks that each
// fit within limit. A single line longer than limit is hard-split.
func SplitMessage(text string, limit int) []string {
	if text == "" {
		return nil
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}

	for _, line := range strings.Split(text, "\n") {
		// hard-split lines that cannot fit on their own
		for len(line) > limit {
			flush()
			cut := splitPoint(line, limit)
			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}

		needed := len(line)
		if current.Len() > 0 {
			needed++ // joining newline
		}
		if current.Len()+needed > limit {
			flush()
		}
		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
	}
	flush()

	return chunks
}

// splitPoint finds a byte offset at most limit that neither cuts a rune
// in half nor strands the backslash of an escape pair at the chunk end.
func splitPoint(line string, limit int) int {
	cut := limit
	for cut > 0 && !utf8.RuneStart(line[cut]) {
		cut--
	}
	if trailingBackslashes(line[:cut])%2 == 1 {
		cut--
	}
	if cut <= 0 {
		return limit
	}
	return cut
}

// trailingBackslashes counts the consecutive backslashes ending s. An odd
// count means the last one opens an escape pair.
func trailingBackslashes(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n
}
