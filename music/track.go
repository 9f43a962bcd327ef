package music

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// durationTolerance is the maximum difference between two track durations
// for them to still be considered the same recording.
const durationTolerance = 2 * time.Second

// Album describes the album a track belongs to
type Album struct {
	Name        string
	TotalTracks int
	Artists     []string
}

func (a Album) String() string {
	return fmt.Sprintf("Album: %s by %s (%d track(s))", a.Name, strings.Join(a.Artists, ", "), a.TotalTracks)
}

// Track is a provider-independent view of a single track
type Track struct {
	ID       string
	ISRC     string
	Name     string
	Duration time.Duration
	Artists  []string
	Album    *Album
	AddedAt  *time.Time
}

// FullName returns "name - artist, artist"
func (t Track) FullName() string {
	return fmt.Sprintf("%s - %s", t.Name, strings.Join(t.Artists, ", "))
}

func (t Track) String() string {
	mm := int(t.Duration.Minutes())
	ss := int(t.Duration.Seconds()) % 60

	out := "Track: " + t.FullName() + "\n"
	out += fmt.Sprintf("  ISRC: %s, ID: %s, Duration: %02d:%02d", t.ISRC, t.ID, mm, ss)

	if t.Album != nil {
		out += fmt.Sprintf("\n  %s", t.Album)
	}
	return out
}

// Matches reports whether two tracks are the same recording.
// Equal ISRCs always match. Otherwise the durations must be within
// tolerance, at least one normalized artist name must be shared, and
// when both sides carry an album, one album name must be a prefix of
// the other.
func (t Track) Matches(other Track) bool {
	if t.ISRC != "" && t.ISRC == other.ISRC {
		return true
	}

	diff := t.Duration - other.Duration
	if diff < 0 {
		diff = -diff
	}
	if diff > durationTolerance {
		return false
	}

	if !intersects(normalizeArtists(t.Artists), normalizeArtists(other.Artists)) {
		return false
	}

	if t.Album == nil || other.Album == nil {
		return true
	}

	return albumNamesMatch(t.Album.Name, other.Album.Name)
}

// albumNamesMatch reports whether one album name is a case-insensitive
// prefix of the other. Providers disagree on suffixes like
// "(Deluxe Edition)", so prefix matching is deliberate.
func albumNamesMatch(a, b string) bool {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}

// normalizeArtists maps every artist name to its normalized variants
func normalizeArtists(artists []string) map[string]struct{} {
	out := make(map[string]struct{}, len(artists))
	for _, a := range artists {
		for _, v := range NormalizeArtistName(a) {
			out[v] = struct{}{}
		}
	}
	return out
}

// NormalizeArtistName lower-cases, strips diacritics and splits a
// credited artist string on the separators providers use for joint
// credits ("&" and ","). The whole name is always included alongside
// the split parts.
func NormalizeArtistName(name string) []string {
	lower := foldASCII(strings.ToLower(strings.TrimSpace(name)))

	variants := []string{lower}
	for _, sep := range []string{"&", ","} {
		if !strings.Contains(lower, sep) {
			continue
		}
		for _, part := range strings.Split(lower, sep) {
			part = strings.TrimSpace(part)
			if part != "" {
				variants = append(variants, part)
			}
		}
	}
	return variants
}

// foldASCII decomposes the string and drops combining marks and any
// remaining non-ASCII runes, mirroring an NFD "encode ascii, ignore"
// round trip.
func foldASCII(s string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if r > unicode.MaxASCII {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func intersects(a, b map[string]struct{}) bool {
	for k := range a {
		if _, ok := b[k]; ok {
			return true
		}
	}
	return false
}
