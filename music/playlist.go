package music

import "fmt"

// Playlist is a provider-independent playlist snapshot
type Playlist struct {
	Name   string
	Tracks []Track
	URI    string
	Image  []byte
}

func (p Playlist) String() string {
	out := fmt.Sprintf("Playlist: %s - %d track(s)", p.Name, len(p.Tracks))

	if p.URI != "" {
		out += fmt.Sprintf("\n  URI: %s", p.URI)
	}

	for _, t := range p.Tracks {
		out += fmt.Sprintf("\n%s", t)
	}
	return out
}

// Dedupe removes tracks that match an earlier track in the playlist,
// keeping the first occurrence.
func (p *Playlist) Dedupe() int {
	var kept []Track
	removed := 0

	for _, t := range p.Tracks {
		dup := false
		for _, k := range kept {
			if k.Matches(t) {
				dup = true
				break
			}
		}
		if dup {
			removed++
			continue
		}
		kept = append(kept, t)
	}

	p.Tracks = kept
	return removed
}

// MergeReport summarizes the outcome of merging a playlist into a provider
type MergeReport struct {
	Added    []Track
	Skipped  []Track
	NotFound []Track
	Failed   []Track
}
