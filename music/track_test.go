package music

import (
	"testing"
	"time"
)

func track(name, isrc string, dur time.Duration, artists ...string) Track {
	return Track{Name: name, ISRC: isrc, Duration: dur, Artists: artists}
}

func TestMatches_SameISRC(t *testing.T) {
	a := track("Song", "USRC12345678", 3*time.Minute, "Artist A")
	b := track("Completely Different", "USRC12345678", 5*time.Minute, "Artist B")

	if !a.Matches(b) {
		t.Error("tracks with the same ISRC should match")
	}
}

func TestMatches_DurationTolerance(t *testing.T) {
	a := track("Song", "AAAA00000001", 3*time.Minute, "Artist")
	b := track("Song", "BBBB00000002", 3*time.Minute+2*time.Second, "Artist")
	c := track("Song", "CCCC00000003", 3*time.Minute+3*time.Second, "Artist")

	if !a.Matches(b) {
		t.Error("2s duration difference should be within tolerance")
	}
	if a.Matches(c) {
		t.Error("3s duration difference should not match")
	}
}

func TestMatches_ArtistNormalization(t *testing.T) {
	cases := []struct {
		name    string
		a, b    []string
		matches bool
	}{
		{"identical", []string{"Måneskin"}, []string{"Maneskin"}, true},
		{"case", []string{"ABBA"}, []string{"abba"}, true},
		{"joint credit ampersand", []string{"Alice & Bob"}, []string{"Bob"}, true},
		{"joint credit comma", []string{"Alice, Bob"}, []string{"alice"}, true},
		{"disjoint", []string{"Alice"}, []string{"Bob"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := track("Song", "AAAA00000001", 3*time.Minute, tc.a...)
			b := track("Song", "BBBB00000002", 3*time.Minute, tc.b...)

			if got := a.Matches(b); got != tc.matches {
				t.Errorf("Matches(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.matches)
			}
		})
	}
}

func TestMatches_AlbumPrefix(t *testing.T) {
	base := track("Song", "AAAA00000001", 3*time.Minute, "Artist")
	other := track("Song", "BBBB00000002", 3*time.Minute, "Artist")

	base.Album = &Album{Name: "Greatest Hits"}

	other.Album = &Album{Name: "Greatest Hits (Deluxe Edition)"}
	if !base.Matches(other) {
		t.Error("album name prefix should match")
	}

	other.Album = &Album{Name: "Other Album"}
	if base.Matches(other) {
		t.Error("unrelated album names should not match")
	}

	other.Album = nil
	if !base.Matches(other) {
		t.Error("a missing album on one side should not prevent a match")
	}
}

func TestNormalizeArtistName(t *testing.T) {
	got := NormalizeArtistName("  Céline & José  ")

	want := map[string]bool{
		"celine & jose": false,
		"celine":        false,
		"jose":          false,
	}
	for _, v := range got {
		if _, ok := want[v]; !ok {
			t.Errorf("unexpected variant %q", v)
			continue
		}
		want[v] = true
	}
	for v, seen := range want {
		if !seen {
			t.Errorf("missing variant %q in %v", v, got)
		}
	}
}

func TestFullName(t *testing.T) {
	tr := track("Song", "AAAA00000001", 3*time.Minute, "Alice", "Bob")
	if got, want := tr.FullName(), "Song - Alice, Bob"; got != want {
		t.Errorf("FullName() = %q, want %q", got, want)
	}
}
