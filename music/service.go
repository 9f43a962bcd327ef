package music

import (
	"context"
	"errors"
)

// ErrReadOnly is returned by providers that only support reading playlists
var ErrReadOnly = errors.New("provider is read-only")

// ErrNotLoggedIn is returned when an operation requires an authenticated session
var ErrNotLoggedIn = errors.New("not logged in")

// PlaylistFilter selects playlists by name
type PlaylistFilter func(name string) bool

// MergeOptions controls how MergePlaylist creates and updates the
// destination playlist.
type MergeOptions struct {
	Description  string
	ParentFolder string // empty means the provider's root folder
	Public       bool
}

// Service is a music provider: a source or destination for playlist syncing
type Service interface {
	// Connect authenticates to the provider, reusing a cached session
	// when one is available.
	Connect(ctx context.Context) error

	// Playlists returns the user's playlists, with tracks, optionally
	// filtered by name.
	Playlists(ctx context.Context, filter PlaylistFilter) ([]Playlist, error)

	// SearchTrack looks a track up in the provider's catalog. A nil
	// result with a nil error means no acceptable match was found.
	SearchTrack(ctx context.Context, track Track) (*Track, error)

	// MergePlaylist merges the playlist into the provider, creating it
	// if it does not exist. Read-only providers return ErrReadOnly.
	MergePlaylist(ctx context.Context, playlist Playlist, opts MergeOptions) (*MergeReport, error)
}
