package sync

import (
	"strings"
	"testing"
	"time"

	"tidalbot/music"
)

func TestFormatReport(t *testing.T) {
	report := &music.MergeReport{
		Added: []music.Track{
			{Name: "Song One", Duration: 3 * time.Minute, Artists: []string{"Alice"}},
		},
		Skipped: []music.Track{
			{Name: "Song Two", Duration: 4 * time.Minute, Artists: []string{"Bob"}},
		},
		NotFound: []music.Track{
			{Name: "Song Three (Live)", Duration: 200 * time.Second, Artists: []string{"Carol"}},
		},
	}

	got := FormatReport("EUROVISION 2024", report)

	for _, want := range []string{
		"🎵 Playlist *EUROVISION 2024*",
		"✅ *Added*: 1",
		"⏭️ *Skipped*: 1",
		"❓ *Not Found*: 1",
		"❌ *Error*: 0",
		"🎤 Song One \\- Alice",
		"❓ Song Three \\(Live\\) \\- Carol",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report is missing %q:\n%s", want, got)
		}
	}

	if strings.Contains(got, "Tracks with errors") {
		t.Error("error section rendered with no failed tracks")
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("report has a trailing newline")
	}
}

func TestFormatPlaylistList(t *testing.T) {
	playlists := []music.Playlist{
		{Name: "EUROVISION 2024", Tracks: make([]music.Track, 26)},
		{Name: "EUROVISION 2025"},
	}

	got := FormatPlaylistList(playlists)

	for _, want := range []string{
		"🎵 *Playlists:*",
		"EUROVISION 2024: 26 track\\(s\\)",
		"EUROVISION 2025: 0 track\\(s\\)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("list is missing %q:\n%s", want, got)
		}
	}
}

func TestFormatPlaylistList_Empty(t *testing.T) {
	if got := FormatPlaylistList(nil); got != "No playlists found" {
		t.Errorf("FormatPlaylistList(nil) = %q", got)
	}
}
