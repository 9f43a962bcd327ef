package bot

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestEscapeMarkdown(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a_b", "a\\_b"},
		{"50% (live!)", "50% \\(live\\!\\)"},
		{"a\\b", "a\\\\b"},
		{"R&B - Vol. 1", "R\\&B \\- Vol\\. 1"},
	}

	for _, tc := range cases {
		if got := EscapeMarkdown(tc.in); got != tc.want {
			t.Errorf("EscapeMarkdown(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSplitMessage_ShortMessage(t *testing.T) {
	chunks := SplitMessage("line one\nline two", 100)

	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0] != "line one\nline two" {
		t.Errorf("unexpected chunk %q", chunks[0])
	}
}

func TestSplitMessage_SplitsOnNewlines(t *testing.T) {
	text := strings.Repeat("aaaaaaaaa\n", 10) // 10 lines of 9 chars
	chunks := SplitMessage(strings.TrimRight(text, "\n"), 25)

	for i, chunk := range chunks {
		if len(chunk) > 25 {
			t.Errorf("chunk %d exceeds limit: %d chars", i, len(chunk))
		}
		for _, line := range strings.Split(chunk, "\n") {
			if line != "aaaaaaaaa" {
				t.Errorf("chunk %d contains a broken line %q", i, line)
			}
		}
	}

	joined := strings.Join(chunks, "\n")
	if joined != strings.TrimRight(text, "\n") {
		t.Error("chunks do not reassemble the original message")
	}
}

func TestSplitMessage_HardSplitsOversizeLine(t *testing.T) {
	text := strings.Repeat("x", 30)
	chunks := SplitMessage(text, 10)

	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) != 10 {
			t.Errorf("chunk %d has %d chars, want 10", i, len(chunk))
		}
	}
}

func TestSplitMessage_HardSplitKeepsRunesIntact(t *testing.T) {
	text := strings.Repeat("🎤", 5) // 20 bytes, 4 per rune
	chunks := SplitMessage(text, 10)

	for i, chunk := range chunks {
		if len(chunk) > 10 {
			t.Errorf("chunk %d exceeds limit: %d bytes", i, len(chunk))
		}
		if !utf8.ValidString(chunk) {
			t.Errorf("chunk %d is not valid UTF-8: %q", i, chunk)
		}
	}
	if joined := strings.Join(chunks, ""); joined != text {
		t.Errorf("chunks do not reassemble the original: %q", joined)
	}
}

func TestSplitMessage_HardSplitKeepsEscapesIntact(t *testing.T) {
	text := EscapeMarkdown(strings.Repeat(".", 10)) // "\.\.\..." 20 bytes
	chunks := SplitMessage(text, 5)

	for i, chunk := range chunks {
		if trailingBackslashes(chunk)%2 == 1 {
			t.Errorf("chunk %d ends on an unpaired backslash: %q", i, chunk)
		}
	}
	if joined := strings.Join(chunks, ""); joined != text {
		t.Errorf("chunks do not reassemble the original: %q", joined)
	}
}

func TestSplitMessage_Empty(t *testing.T) {
	if chunks := SplitMessage("", 10); chunks != nil {
		t.Errorf("SplitMessage(\"\") = %v, want nil", chunks)
	}
}
