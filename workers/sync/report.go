package sync

import (
	"fmt"
	"strings"

	"tidalbot/bot"
	"tidalbot/music"
)

// FormatReport renders a merge report as a MarkdownV2 Telegram message
func FormatReport(playlist string, r *music.MergeReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🎵 Playlist *%s*\n", bot.EscapeMarkdown(playlist))
	b.WriteString("\n")
	fmt.Fprintf(&b, "✅ *Added*: %d\n", len(r.Added))
	fmt.Fprintf(&b, "⏭️ *Skipped*: %d\n", len(r.Skipped))
	fmt.Fprintf(&b, "❓ *Not Found*: %d\n", len(r.NotFound))
	fmt.Fprintf(&b, "❌ *Error*: %d\n", len(r.Failed))

	b.WriteString("\n*Added tracks:*\n")
	for _, t := range r.Added {
		fmt.Fprintf(&b, " 🎤 %s\n", bot.EscapeMarkdown(t.FullName()))
	}

	if len(r.NotFound) > 0 {
		b.WriteString("\n*Tracks not found:*\n")
		for _, t := range r.NotFound {
			fmt.Fprintf(&b, " ❓ %s\n", bot.EscapeMarkdown(t.FullName()))
		}
	}

	if len(r.Failed) > 0 {
		b.WriteString("\n*Tracks with errors:*\n")
		for _, t := range r.Failed {
			fmt.Fprintf(&b, " ❌ %s\n", bot.EscapeMarkdown(t.FullName()))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatPlaylistList renders the playlist overview for /list
func FormatPlaylistList(playlists []music.Playlist) string {
	if len(playlists) == 0 {
		return "No playlists found"
	}

	var b strings.Builder
	b.WriteString("🎵 *Playlists:*\n")
	for _, p := range playlists {
		fmt.Fprintf(&b, " • %s: %d track\\(s\\)\n", bot.EscapeMarkdown(p.Name), len(p.Tracks))
	}
	return strings.TrimRight(b.String(), "\n")
}
