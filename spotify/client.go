package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"tidalbot/config"
	"tidalbot/db"
	"tidalbot/log"
	"tidalbot/music"
)

const (
	provider       = "spotify"
	defaultBaseURL = "https://api.spotify.com/v1"
	authURL        = "https://accounts.spotify.com/authorize"
	tokenURL       = "https://accounts.spotify.com/api/token"

	playlistPageSize = 50
	trackPageSize    = 100
)

var logger = log.GetLogger("spotify")

// Client talks to the Spotify Web API. It is a read-only provider:
// playlists are sourced from Spotify, never written back.
type Client struct {
	oauth        *oauth2.Config
	baseURL      string
	loginTimeout time.Duration

	mu     sync.Mutex
	state  string
	codeCh chan string

	http  *http.Client // authorized API client, set by Connect
	plain *http.Client // unauthenticated fetches (playlist images)
}

// New creates a Spotify client from the global configuration
func New() *Client {
	cfg := config.Get()

	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.SpotifyClientID,
			ClientSecret: cfg.SpotifyClientSecret,
			RedirectURL:  cfg.SpotifyRedirectURL,
			Scopes:       []string{"playlist-read-private", "user-library-read"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
			},
		},
		baseURL:      defaultBaseURL,
		loginTimeout: 5 * time.Minute,
		codeCh:       make(chan string, 1),
		plain:        &http.Client{Timeout: 10 * time.Second},
	}
}

// Connect authenticates to Spotify, reusing the cached session when one
// exists. With no cached session it logs the authorization URL and waits
// for the code to arrive on the OAuth callback route.
func (c *Client) Connect(ctx context.Context) error {
	logger.Info().Msg("authenticating to Spotify")

	token, err := c.cachedToken()
	if err != nil {
		return err
	}

	if token == nil {
		token, err = c.authorize(ctx)
		if err != nil {
			return fmt.Errorf("spotify authorization: %w", err)
		}
	} else {
		logger.Debug().Msg("using cached Spotify session")
	}

	src := oauth2.ReuseTokenSource(token, c.oauth.TokenSource(context.Background(), token))
	c.http = oauth2.NewClient(context.Background(), &persistingTokenSource{src: src, last: token.AccessToken})

	logger.Info().Msg("successfully authenticated to Spotify")
	return nil
}

// HandleCallback delivers the authorization code received on the OAuth
// callback route to a pending Connect.
func (c *Client) HandleCallback(state, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == "" || state != c.state {
		return fmt.Errorf("spotify callback: state mismatch")
	}
	if code == "" {
		return fmt.Errorf("spotify callback: missing code")
	}

	select {
	case c.codeCh <- code:
	default:
	}
	return nil
}

func (c *Client) cachedToken() (*oauth2.Token, error) {
	raw, err := db.LoadToken(provider)
	if err != nil {
		return nil, fmt.Errorf("load spotify session: %w", err)
	}
	if raw == "" {
		return nil, nil
	}

	var token oauth2.Token
	if err := json.Unmarshal([]byte(raw), &token); err != nil {
		logger.Warn().Err(err).Msg("discarding unreadable cached Spotify session")
		_ = db.DeleteToken(provider)
		return nil, nil
	}
	return &token, nil
}

func (c *Client) authorize(ctx context.Context) (*oauth2.Token, error) {
	c.mu.Lock()
	c.state = uuid.NewString()
	state := c.state
	c.mu.Unlock()

	logger.Info().
		Str("url", c.oauth.AuthCodeURL(state)).
		Msg("open the authorization URL to link Spotify")

	timer := time.NewTimer(c.loginTimeout)
	defer timer.Stop()

	select {
	case code := <-c.codeCh:
		token, err := c.oauth.Exchange(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("code exchange: %w", err)
		}
		saveToken(token)
		return token, nil
	case <-timer.C:
		return nil, fmt.Errorf("timed out waiting for authorization after %s", c.loginTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func saveToken(token *oauth2.Token) {
	raw, err := json.Marshal(token)
	if err != nil {
		logger.Error().Err(err).Msg("failed to serialize Spotify session")
		return
	}
	if err := db.SaveToken(provider, string(raw)); err != nil {
		logger.Error().Err(err).Msg("failed to cache Spotify session")
	}
}

// persistingTokenSource caches refreshed tokens in the store so the next
// start does not need a new interactive login.
type persistingTokenSource struct {
	src  oauth2.TokenSource
	mu   sync.Mutex
	last string
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := p.src.Token()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if token.AccessToken != p.last {
		p.last = token.AccessToken
		saveToken(token)
	}
	return token, nil
}

// Playlists returns the user's playlists with their tracks
func (c *Client) Playlists(ctx context.Context, filter music.PlaylistFilter) ([]music.Playlist, error) {
	logger.Info().Msg("fetching Spotify playlists")

	var playlists []music.Playlist

	next := fmt.Sprintf("%s/me/playlists?limit=%d", c.baseURL, playlistPageSize)
	for next != "" {
		var page PagingPlaylistObject
		if err := c.getJSON(ctx, next, &page); err != nil {
			return nil, fmt.Errorf("fetch playlists: %w", err)
		}

		if page.Items != nil {
			for _, sp := range *page.Items {
				if sp.Name == nil {
					logger.Debug().Msg("skipping playlist with no name")
					continue
				}
				if filter != nil && !filter(*sp.Name) {
					continue
				}
				playlists = append(playlists, c.buildPlaylist(ctx, sp))
			}
		}

		if page.Next == nil {
			break
		}
		next = *page.Next
	}

	if len(playlists) == 0 {
		logger.Info().Msg("no Spotify playlists found")
	}
	return playlists, nil
}

func (c *Client) buildPlaylist(ctx context.Context, sp SimplifiedPlaylistObject) music.Playlist {
	p := music.Playlist{Name: *sp.Name}

	if sp.ExternalUrls != nil && sp.ExternalUrls.Spotify != nil {
		p.URI = *sp.ExternalUrls.Spotify
	}

	if sp.Images != nil && len(*sp.Images) > 0 {
		p.Image = c.fetchImage(ctx, (*sp.Images)[0].Url)
	}

	if sp.Id == nil {
		logger.Warn().Str("playlist", p.Name).Msg("playlist ID is missing, cannot fetch tracks")
		return p
	}

	tracks, err := c.playlistTracks(ctx, *sp.Id, p.Name)
	if err != nil {
		logger.Error().Err(err).Str("playlist", p.Name).Msg("failed to fetch playlist tracks")
		return p
	}
	p.Tracks = tracks

	if removed := p.Dedupe(); removed > 0 {
		logger.Debug().Int("removed", removed).Str("playlist", p.Name).Msg("dropped duplicate tracks")
	}

	if len(p.Tracks) == 0 {
		logger.Info().Str("playlist", p.Name).Msg("no tracks found in playlist")
	} else {
		logger.Info().Int("tracks", len(p.Tracks)).Str("playlist", p.Name).Msg("fetched playlist")
	}
	return p
}

func (c *Client) playlistTracks(ctx context.Context, id, name string) ([]music.Track, error) {
	logger.Info().Str("playlist", name).Msg("fetching tracks from playlist")

	var tracks []music.Track

	next := fmt.Sprintf("%s/playlists/%s/tracks?limit=%d", c.baseURL, id, trackPageSize)
	for next != "" {
		logger.Debug().Str("url", next).Msg("fetching track page")

		var page PagingPlaylistTrackObject
		if err := c.getJSON(ctx, next, &page); err != nil {
			return nil, err
		}

		if page.Items != nil {
			for _, item := range *page.Items {
				if item.Track == nil {
					continue
				}
				// Playlists can also carry episodes; only accept tracks.
				if item.Track.Type != nil && *item.Track.Type != "track" {
					continue
				}
				if track := parseTrack(item.Track); track != nil {
					track.AddedAt = item.AddedAt
					tracks = append(tracks, *track)
				}
			}
		}

		if page.Next == nil {
			break
		}
		next = *page.Next
	}

	logger.Debug().Int("count", len(tracks)).Msg("fetched tracks")
	return tracks, nil
}

// SearchTrack is not supported; Spotify is only used as a playlist source
func (c *Client) SearchTrack(ctx context.Context, track music.Track) (*music.Track, error) {
	return nil, nil
}

// MergePlaylist is not supported; Spotify is only used as a playlist source
func (c *Client) MergePlaylist(ctx context.Context, playlist music.Playlist, opts music.MergeOptions) (*music.MergeReport, error) {
	return nil, music.ErrReadOnly
}

func (c *Client) fetchImage(ctx context.Context, url string) []byte {
	logger.Debug().Str("url", url).Msg("fetching playlist image")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		logger.Warn().Err(err).Str("url", url).Msg("failed to build image request")
		return nil
	}

	resp, err := c.plain.Do(req)
	if err != nil {
		logger.Warn().Err(err).Str("url", url).Msg("failed to fetch playlist image")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn().Str("url", url).Str("status", resp.Status).Msg("failed to fetch playlist image")
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn().Err(err).Str("url", url).Msg("failed to read playlist image")
		return nil
	}
	return data
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	if c.http == nil {
		return music.ErrNotLoggedIn
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s: %s: %s", url, resp.Status, body)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// parseTrack converts a Spotify track into the provider-independent
// form. Tracks without a name, ISRC or duration cannot be matched and
// are dropped.
func parseTrack(st *TrackObject) *music.Track {
	if st.Name == nil {
		logger.Debug().Msg("Spotify track name is missing")
		return nil
	}
	if st.ExternalIds == nil || st.ExternalIds.Isrc == nil {
		logger.Debug().Str("track", *st.Name).Msg("Spotify track ISRC is missing")
		return nil
	}
	if st.DurationMs == nil {
		logger.Debug().Str("track", *st.Name).Msg("Spotify track duration is missing")
		return nil
	}

	track := music.Track{
		Name:     *st.Name,
		ISRC:     strings.ToUpper(*st.ExternalIds.Isrc),
		Duration: time.Duration(*st.DurationMs) * time.Millisecond,
		Artists:  artistNames(st.Artists),
	}
	if st.Id != nil {
		track.ID = *st.Id
	}
	if st.Album != nil {
		track.Album = parseAlbum(st.Album)
	}
	return &track
}

func parseAlbum(sa *SimplifiedAlbumObject) *music.Album {
	if sa.Name == nil {
		logger.Debug().Msg("Spotify album name is missing")
		return nil
	}
	if sa.TotalTracks == nil {
		logger.Debug().Str("album", *sa.Name).Msg("Spotify album track count is missing")
		return nil
	}

	return &music.Album{
		Name:        *sa.Name,
		TotalTracks: *sa.TotalTracks,
		Artists:     artistNames(sa.Artists),
	}
}

func artistNames(artists *[]SimplifiedArtistObject) []string {
	if artists == nil {
		return nil
	}
	var names []string
	for _, a := range *artists {
		if a.Name != nil {
			names = append(names, *a.Name)
		}
	}
	return names
}
