package tidal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"tidalbot/config"
	"tidalbot/db"
	"tidalbot/log"
	"tidalbot/music"
)

const (
	provider = "tidal"

	defaultBaseURL   = "https://api.tidal.com/v1"
	defaultBaseURLv2 = "https://api.tidal.com/v2"
	deviceAuthURL    = "https://auth.tidal.com/v1/oauth2/device_authorization"
	tokenURL         = "https://auth.tidal.com/v1/oauth2/token"

	// rootFolderID is the implicit top-level playlist folder
	rootFolderID = "root"

	pageSize = 50
)

var logger = log.GetLogger("tidal")

// Client talks to the Tidal API. It is the destination provider:
// playlists are created and extended, never used as a sync source for
// Spotify.
type Client struct {
	oauth        *oauth2.Config
	baseURL      string
	baseURLv2    string
	loginTimeout time.Duration

	http        *http.Client // authorized API client, set by Connect
	userID      int64
	countryCode string
}

// New creates a Tidal client from the global configuration
func New() *Client {
	cfg := config.Get()

	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.TidalClientID,
			ClientSecret: cfg.TidalClientSecret,
			Scopes:       []string{"r_usr", "w_usr"},
			Endpoint: oauth2.Endpoint{
				DeviceAuthURL: deviceAuthURL,
				TokenURL:      tokenURL,
			},
		},
		baseURL:      defaultBaseURL,
		baseURLv2:    defaultBaseURLv2,
		loginTimeout: 5 * time.Minute,
	}
}

// Connect authenticates to Tidal, reusing the cached session when it is
// still valid and falling back to a fresh device-code login otherwise.
func (c *Client) Connect(ctx context.Context) error {
	token, err := c.cachedToken()
	if err != nil {
		return err
	}

	if token != nil {
		logger.Debug().Msg("using cached Tidal session")
		if err := c.startSession(ctx, token); err == nil {
			logger.Info().Msg("successfully authenticated to Tidal using cached session")
			return nil
		}
		logger.Warn().Msg("cached Tidal session is invalid, creating a new one")
		_ = db.DeleteToken(provider)
	}

	logger.Info().Msg("authenticating to Tidal")

	token, err = c.deviceLogin(ctx)
	if err != nil {
		return fmt.Errorf("tidal login: %w", err)
	}

	if err := c.startSession(ctx, token); err != nil {
		return fmt.Errorf("tidal session: %w", err)
	}

	saveToken(token)
	logger.Info().Msg("successfully authenticated to Tidal")
	return nil
}

// deviceLogin runs the OAuth device-code flow, surfacing the
// verification URL to the operator and polling until confirmed.
func (c *Client) deviceLogin(ctx context.Context) (*oauth2.Token, error) {
	ctx, cancel := context.WithTimeout(ctx, c.loginTimeout)
	defer cancel()

	auth, err := c.oauth.DeviceAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("device authorization: %w", err)
	}

	verifyURL := auth.VerificationURIComplete
	if verifyURL == "" {
		verifyURL = auth.VerificationURI
	}
	if !strings.HasPrefix(verifyURL, "https://") {
		verifyURL = "https://" + verifyURL
	}
	logger.Info().Str("url", verifyURL).Msg("open the verification URL to link Tidal")

	token, err := c.oauth.DeviceAccessToken(ctx, auth)
	if err != nil {
		return nil, fmt.Errorf("device token: %w", err)
	}
	return token, nil
}

// startSession builds the authorized client and resolves the session's
// user ID and country code.
func (c *Client) startSession(ctx context.Context, token *oauth2.Token) error {
	src := oauth2.ReuseTokenSource(token, c.oauth.TokenSource(context.Background(), token))
	c.http = oauth2.NewClient(context.Background(), &persistingTokenSource{src: src, last: token.AccessToken})

	var info sessionInfo
	if err := c.getJSON(ctx, c.baseURL+"/sessions", nil, &info); err != nil {
		c.http = nil
		return err
	}

	c.userID = info.UserID
	c.countryCode = info.CountryCode
	logger.Debug().Int64("user", c.userID).Str("country", c.countryCode).Msg("Tidal session established")
	return nil
}

func (c *Client) cachedToken() (*oauth2.Token, error) {
	raw, err := db.LoadToken(provider)
	if err != nil {
		return nil, fmt.Errorf("load tidal session: %w", err)
	}
	if raw == "" {
		return nil, nil
	}

	var token oauth2.Token
	if err := json.Unmarshal([]byte(raw), &token); err != nil {
		logger.Warn().Err(err).Msg("discarding unreadable cached Tidal session")
		_ = db.DeleteToken(provider)
		return nil, nil
	}
	return &token, nil
}

func saveToken(token *oauth2.Token) {
	raw, err := json.Marshal(token)
	if err != nil {
		logger.Error().Err(err).Msg("failed to serialize Tidal session")
		return
	}
	if err := db.SaveToken(provider, string(raw)); err != nil {
		logger.Error().Err(err).Msg("failed to cache Tidal session")
	}
}

type persistingTokenSource struct {
	src  oauth2.TokenSource
	last string
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := p.src.Token()
	if err != nil {
		return nil, err
	}
	if token.AccessToken != p.last {
		p.last = token.AccessToken
		saveToken(token)
	}
	return token, nil
}

// Playlists returns the user's own playlists with their tracks
func (c *Client) Playlists(ctx context.Context, filter music.PlaylistFilter) ([]music.Playlist, error) {
	if c.http == nil {
		return nil, music.ErrNotLoggedIn
	}

	logger.Info().Msg("fetching Tidal playlists")

	var playlists []music.Playlist

	path := fmt.Sprintf("%s/users/%d/playlists", c.baseURL, c.userID)
	items, err := fetchPaged[playlistObject](ctx, c, path, nil, "fetching playlists")
	if err != nil {
		return nil, fmt.Errorf("fetch playlists: %w", err)
	}

	for _, tp := range items {
		if tp.Title == "" {
			continue
		}
		if filter != nil && !filter(tp.Title) {
			continue
		}

		tracks, err := c.playlistTracks(ctx, tp.UUID, tp.Title)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, music.Playlist{Name: tp.Title, Tracks: tracks})
	}
	return playlists, nil
}

func (c *Client) playlistTracks(ctx context.Context, uuid, name string) ([]music.Track, error) {
	logger.Info().Str("playlist", name).Msg("fetching tracks from playlist")

	items, err := fetchPaged[trackObject](ctx, c, fmt.Sprintf("%s/playlists/%s/tracks", c.baseURL, uuid),
		nil, "fetching tracks from playlist "+name)
	if err != nil {
		return nil, fmt.Errorf("fetch tracks of %s: %w", name, err)
	}

	var tracks []music.Track
	for _, tt := range items {
		if track := parseTrack(tt); track != nil {
			tracks = append(tracks, *track)
		}
	}
	return tracks, nil
}

// SearchTrack searches the Tidal catalog for a matching track
func (c *Client) SearchTrack(ctx context.Context, track music.Track) (*music.Track, error) {
	if c.http == nil {
		return nil, music.ErrNotLoggedIn
	}

	logger.Info().Str("track", track.FullName()).Msg("searching for track")

	query := strings.TrimSpace(track.Name + " " + strings.Join(track.Artists, " "))
	logger.Debug().Str("query", query).Msg("search query")

	result, err := retry(ctx, "search", func() (*page[trackObject], error) {
		var res page[trackObject]
		err := c.getJSON(ctx, c.baseURL+"/search/tracks", url.Values{"query": {query}, "limit": {"20"}}, &res)
		return &res, err
	})
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	for _, tt := range result.Items {
		found := parseTrack(tt)
		if found == nil {
			continue
		}
		if found.Matches(track) {
			logger.Info().Str("track", found.FullName()).Msg("found track")
			return found, nil
		}
	}

	logger.Warn().Str("track", track.FullName()).Msg("no matching track found")
	return nil, nil
}

// MergePlaylist merges a playlist into Tidal, creating the parent
// folder and the playlist as needed. Tracks already present are
// skipped; missing ones are searched and added.
func (c *Client) MergePlaylist(ctx context.Context, playlist music.Playlist, opts music.MergeOptions) (*music.MergeReport, error) {
	if c.http == nil {
		return nil, music.ErrNotLoggedIn
	}

	logger.Info().Str("playlist", playlist.Name).Msg("merging playlist into Tidal")

	folderID, err := c.ensureFolder(ctx, opts.ParentFolder)
	if err != nil {
		return nil, err
	}

	target, existing, err := c.ensurePlaylist(ctx, playlist.Name, folderID, opts)
	if err != nil {
		return nil, err
	}

	if opts.Description != "" && opts.Description != target.Description {
		logger.Info().Str("playlist", playlist.Name).Msg("updating playlist description")
		if err := c.editPlaylist(ctx, target.UUID, opts.Description); err != nil {
			return nil, fmt.Errorf("update description of %s: %w", playlist.Name, err)
		}
	}

	if opts.Public && !target.PublicPlaylist {
		logger.Info().Str("playlist", playlist.Name).Msg("setting playlist public")
		if err := c.setPlaylistPublic(ctx, target.UUID); err != nil {
			return nil, fmt.Errorf("set %s public: %w", playlist.Name, err)
		}
	}

	report := &music.MergeReport{}

	for i, track := range playlist.Tracks {
		logger.Debug().
			Int("index", i+1).
			Int("total", len(playlist.Tracks)).
			Str("track", track.FullName()).
			Msg("processing track")

		if existingTrack := firstMatch(existing, track); existingTrack != nil {
			logger.Info().Str("track", existingTrack.FullName()).Msg("track already in playlist, skipping")
			report.Skipped = append(report.Skipped, *existingTrack)
			continue
		}

		found, err := c.SearchTrack(ctx, track)
		if err != nil {
			return nil, err
		}
		if found == nil {
			logger.Warn().Str("track", track.FullName()).Msg("track not found")
			report.NotFound = append(report.NotFound, track)
			continue
		}

		logger.Info().Str("track", found.FullName()).Str("playlist", playlist.Name).Msg("adding track")

		if err := c.addTrack(ctx, target.UUID, found.ID); err != nil {
			logger.Error().Err(err).Str("track", found.FullName()).Msg("failed to add track")
			report.Failed = append(report.Failed, *found)
			continue
		}
		report.Added = append(report.Added, *found)
	}

	return report, nil
}

// ensureFolder resolves the parent folder name to its ID, creating the
// folder when missing. An empty name means the root folder.
func (c *Client) ensureFolder(ctx context.Context, name string) (string, error) {
	if name == "" {
		return rootFolderID, nil
	}

	items, err := fetchPaged[collectionItem](ctx, c, c.baseURLv2+"/my-collection/playlists/folders",
		nil, "fetching playlist folders")
	if err != nil {
		return "", fmt.Errorf("fetch folders: %w", err)
	}

	for _, item := range items {
		if item.ItemType != itemTypeFolder {
			continue
		}
		var f folderObject
		if err := json.Unmarshal(item.Data, &f); err != nil {
			continue
		}
		if f.Name == name {
			return f.ID, nil
		}
	}

	logger.Info().Str("folder", name).Msg("folder not found, creating it")

	f, err := retry(ctx, "create folder", func() (*folderObject, error) {
		var out folderObject
		err := c.putJSON(ctx, c.baseURLv2+"/my-collection/playlists/folders/create-folder",
			url.Values{"name": {name}, "folderId": {rootFolderID}}, &out)
		return &out, err
	})
	if err != nil {
		return "", fmt.Errorf("create folder %s: %w", name, err)
	}
	return f.ID, nil
}

// ensurePlaylist finds the named playlist inside the folder, creating
// it when missing. For an existing playlist the current tracks are
// returned so the merge can skip them.
func (c *Client) ensurePlaylist(ctx context.Context, name, folderID string, opts music.MergeOptions) (*playlistObject, []music.Track, error) {
	// scope the lookup to the parent folder; a same-named playlist in
	// another folder must not be matched
	items, err := fetchPaged[collectionItem](ctx, c, c.baseURLv2+"/my-collection/playlists/folders/flattened",
		url.Values{"folderId": {folderID}}, "fetching playlists from folder")
	if err != nil {
		return nil, nil, fmt.Errorf("fetch folder items: %w", err)
	}

	for _, item := range items {
		if item.ItemType != itemTypePlaylist {
			continue
		}
		var p playlistObject
		if err := json.Unmarshal(item.Data, &p); err != nil {
			continue
		}
		if p.Title == name {
			tracks, err := c.playlistTracks(ctx, p.UUID, p.Title)
			if err != nil {
				return nil, nil, err
			}
			return &p, tracks, nil
		}
	}

	logger.Info().Str("playlist", name).Msg("playlist not found, creating it")

	description := opts.Description
	if description == "" {
		description = fmt.Sprintf("Playlist %q", name)
	}

	p, err := retry(ctx, "create playlist", func() (*playlistObject, error) {
		var out playlistObject
		err := c.putJSON(ctx, c.baseURLv2+"/my-collection/playlists/folders/create-playlist",
			url.Values{"name": {name}, "description": {description}, "folderId": {folderID}}, &out)
		return &out, err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create playlist %s: %w", name, err)
	}
	return p, nil, nil
}

func (c *Client) editPlaylist(ctx context.Context, uuid, description string) error {
	_, err := retry(ctx, "edit playlist", func() (struct{}, error) {
		return struct{}{}, c.postForm(ctx, fmt.Sprintf("%s/playlists/%s", c.baseURL, uuid),
			url.Values{"description": {description}})
	})
	return err
}

func (c *Client) setPlaylistPublic(ctx context.Context, uuid string) error {
	_, err := retry(ctx, "set playlist public", func() (struct{}, error) {
		return struct{}{}, c.putJSON(ctx, fmt.Sprintf("%s/playlists/%s/set-public", c.baseURLv2, uuid), nil, nil)
	})
	return err
}

func (c *Client) addTrack(ctx context.Context, uuid, trackID string) error {
	_, err := retry(ctx, "add track", func() (struct{}, error) {
		return struct{}{}, c.postForm(ctx, fmt.Sprintf("%s/playlists/%s/items", c.baseURL, uuid),
			url.Values{"trackIds": {trackID}, "onDupes": {"SKIP"}})
	})
	return err
}

// fetchPaged walks an offset/limit listing endpoint, retrying each page
func fetchPaged[T any](ctx context.Context, c *Client, path string, params url.Values, message string) ([]T, error) {
	var all []T
	offset := 0

	for {
		logger.Debug().Str("path", path).Int("offset", offset).Msg(message)

		result, err := retry(ctx, message, func() (*page[T], error) {
			q := url.Values{
				"offset": {strconv.Itoa(offset)},
				"limit":  {strconv.Itoa(pageSize)},
			}
			for k, v := range params {
				q[k] = v
			}

			var res page[T]
			err := c.getJSON(ctx, path, q, &res)
			return &res, err
		})
		if err != nil {
			return nil, err
		}

		all = append(all, result.Items...)

		if len(result.Items) < pageSize {
			return all, nil
		}
		offset += pageSize
	}
}

// HTTP plumbing

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	if c.countryCode != "" {
		params.Set("countryCode", c.countryCode)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	// the playlist mutation endpoints require an ETag precondition
	req.Header.Set("If-None-Match", "*")
	return c.do(req, nil)
}

func (c *Client) putJSON(ctx context.Context, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.http == nil {
		return music.ErrNotLoggedIn
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &apiError{Status: resp.StatusCode, Body: string(body)}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// firstMatch returns the first track in haystack matching needle
func firstMatch(haystack []music.Track, needle music.Track) *music.Track {
	for i := range haystack {
		if haystack[i].Matches(needle) {
			return &haystack[i]
		}
	}
	return nil
}

// parseTrack converts a Tidal track into the provider-independent form
func parseTrack(tt trackObject) *music.Track {
	if tt.Title == "" {
		logger.Debug().Msg("Tidal track title is missing")
		return nil
	}
	if tt.ISRC == "" {
		logger.Debug().Str("track", tt.Title).Msg("Tidal track ISRC is missing")
		return nil
	}
	if tt.ID == 0 {
		logger.Debug().Str("track", tt.Title).Msg("Tidal track ID is missing")
		return nil
	}
	if tt.Duration == 0 {
		logger.Debug().Str("track", tt.Title).Msg("Tidal track duration is missing")
		return nil
	}

	track := music.Track{
		ID:       strconv.FormatInt(tt.ID, 10),
		ISRC:     strings.ToUpper(tt.ISRC),
		Name:     tt.Title,
		Duration: time.Duration(tt.Duration) * time.Second,
		Artists:  artistNames(tt.Artist, tt.Artists),
	}
	if tt.Album != nil {
		track.Album = parseAlbum(tt.Album)
	}
	return &track
}

func parseAlbum(ta *albumObject) *music.Album {
	if ta.Title == "" {
		logger.Debug().Msg("Tidal album title is missing")
		return nil
	}

	return &music.Album{
		Name:        ta.Title,
		TotalTracks: ta.NumberOfTracks,
		Artists:     artistNames(ta.Artist, ta.Artists),
	}
}

// artistNames merges the single credited artist with the full artist
// list, without duplicates.
func artistNames(main *artistObject, artists []artistObject) []string {
	var names []string
	seen := map[string]struct{}{}

	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	if main != nil {
		add(main.Name)
	}
	for _, a := range artists {
		add(a.Name)
	}
	return names
}
