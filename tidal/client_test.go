package tidal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tidalbot/music"
)

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("encode response: %v", err)
	}
}

func TestMergePlaylist_ExistingPlaylist(t *testing.T) {
	fastRetry(t)

	var editedDescription string
	var setPublic bool
	var addedTrackIDs []string

	mux := http.NewServeMux()

	// v2 collection endpoints
	mux.HandleFunc("GET /v2/my-collection/playlists/folders", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"items": []any{
				map[string]any{
					"itemType": "FOLDER",
					"data":     map[string]any{"id": "folder1", "name": "Eurovision"},
				},
			},
		})
	})
	mux.HandleFunc("GET /v2/my-collection/playlists/folders/flattened", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("folderId"); got != "folder1" {
			t.Errorf("playlist lookup folderId = %q, want folder1", got)
		}
		writeJSON(t, w, map[string]any{
			"items": []any{
				map[string]any{
					"itemType": "PLAYLIST",
					"data": map[string]any{
						"uuid":           "pp1",
						"title":          "EUROVISION 2024",
						"description":    "old description",
						"publicPlaylist": false,
					},
				},
			},
		})
	})
	mux.HandleFunc("PUT /v2/playlists/pp1/set-public", func(w http.ResponseWriter, r *http.Request) {
		setPublic = true
		w.WriteHeader(http.StatusOK)
	})

	// v1 endpoints
	mux.HandleFunc("GET /v1/playlists/pp1/tracks", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"items": []any{
				map[string]any{
					"id": 11, "title": "Song One", "duration": 180,
					"isrc":    "USRC11111111",
					"artists": []any{map[string]any{"id": 1, "name": "Alice"}},
				},
			},
		})
	})
	mux.HandleFunc("POST /v1/playlists/pp1", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse edit form: %v", err)
		}
		editedDescription = r.PostForm.Get("description")
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /v1/search/tracks", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		if query == "Song Two Bob" {
			writeJSON(t, w, map[string]any{
				"items": []any{
					map[string]any{
						"id": 42, "title": "Song Two", "duration": 240,
						"isrc":    "USRC22222222",
						"artists": []any{map[string]any{"id": 2, "name": "Bob"}},
					},
				},
			})
			return
		}
		writeJSON(t, w, map[string]any{"items": []any{}})
	})
	mux.HandleFunc("POST /v1/playlists/pp1/items", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse add form: %v", err)
		}
		addedTrackIDs = append(addedTrackIDs, r.PostForm.Get("trackIds"))
		w.WriteHeader(http.StatusOK)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := &Client{
		baseURL:     srv.URL + "/v1",
		baseURLv2:   srv.URL + "/v2",
		http:        srv.Client(),
		countryCode: "NO",
	}

	playlist := music.Playlist{
		Name: "EUROVISION 2024",
		URI:  "https://open.spotify.com/playlist/pl1",
		Tracks: []music.Track{
			// already present, matched by ISRC
			{Name: "Song One", ISRC: "USRC11111111", Duration: 180 * time.Second, Artists: []string{"Alice"}},
			// found via search and added
			{Name: "Song Two", ISRC: "USRC22222222", Duration: 240 * time.Second, Artists: []string{"Bob"}},
			// not found anywhere
			{Name: "Song Three", ISRC: "USRC33333333", Duration: 200 * time.Second, Artists: []string{"Carol"}},
		},
	}

	report, err := c.MergePlaylist(context.Background(), playlist, music.MergeOptions{
		Description:  "Playlist synced from Spotify https://open.spotify.com/playlist/pl1",
		ParentFolder: "Eurovision",
		Public:       true,
	})
	if err != nil {
		t.Fatalf("MergePlaylist() error: %v", err)
	}

	if len(report.Added) != 1 || report.Added[0].Name != "Song Two" {
		t.Errorf("Added = %+v, want Song Two", report.Added)
	}
	if len(report.Skipped) != 1 || report.Skipped[0].Name != "Song One" {
		t.Errorf("Skipped = %+v, want Song One", report.Skipped)
	}
	if len(report.NotFound) != 1 || report.NotFound[0].Name != "Song Three" {
		t.Errorf("NotFound = %+v, want Song Three", report.NotFound)
	}
	if len(report.Failed) != 0 {
		t.Errorf("Failed = %+v, want none", report.Failed)
	}

	if editedDescription != "Playlist synced from Spotify https://open.spotify.com/playlist/pl1" {
		t.Errorf("description not updated: %q", editedDescription)
	}
	if !setPublic {
		t.Error("playlist was not set public")
	}
	if len(addedTrackIDs) != 1 || addedTrackIDs[0] != "42" {
		t.Errorf("added track IDs = %v, want [42]", addedTrackIDs)
	}
}

func TestMergePlaylist_CreatesFolderAndPlaylist(t *testing.T) {
	fastRetry(t)

	var createdFolder, createdPlaylist bool

	mux := http.NewServeMux()

	mux.HandleFunc("GET /v2/my-collection/playlists/folders", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"items": []any{}})
	})
	mux.HandleFunc("PUT /v2/my-collection/playlists/folders/create-folder", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("name"); got != "Eurovision" {
			t.Errorf("create-folder name = %q", got)
		}
		createdFolder = true
		writeJSON(t, w, map[string]any{"id": "folder9", "name": "Eurovision"})
	})
	mux.HandleFunc("GET /v2/my-collection/playlists/folders/flattened", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("folderId"); got != "folder9" {
			t.Errorf("playlist lookup folderId = %q, want folder9", got)
		}
		writeJSON(t, w, map[string]any{"items": []any{}})
	})
	mux.HandleFunc("PUT /v2/my-collection/playlists/folders/create-playlist", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("folderId"); got != "folder9" {
			t.Errorf("create-playlist folderId = %q", got)
		}
		createdPlaylist = true
		writeJSON(t, w, map[string]any{
			"uuid": "pp2", "title": "EUROVISION 2025", "publicPlaylist": true,
		})
	})
	mux.HandleFunc("GET /v1/search/tracks", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"items": []any{}})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := &Client{
		baseURL:   srv.URL + "/v1",
		baseURLv2: srv.URL + "/v2",
		http:      srv.Client(),
	}

	playlist := music.Playlist{
		Name: "EUROVISION 2025",
		Tracks: []music.Track{
			{Name: "Song", ISRC: "USRC44444444", Duration: 3 * time.Minute, Artists: []string{"Dave"}},
		},
	}

	report, err := c.MergePlaylist(context.Background(), playlist, music.MergeOptions{
		ParentFolder: "Eurovision",
		Public:       true,
	})
	if err != nil {
		t.Fatalf("MergePlaylist() error: %v", err)
	}

	if !createdFolder {
		t.Error("folder was not created")
	}
	if !createdPlaylist {
		t.Error("playlist was not created")
	}
	if len(report.NotFound) != 1 {
		t.Errorf("NotFound = %+v, want the one unfindable track", report.NotFound)
	}
}

func TestMergePlaylist_IgnoresSameNameInOtherFolder(t *testing.T) {
	fastRetry(t)

	var createdPlaylist bool

	mux := http.NewServeMux()

	mux.HandleFunc("GET /v2/my-collection/playlists/folders", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"items": []any{
				map[string]any{
					"itemType": "FOLDER",
					"data":     map[string]any{"id": "folder1", "name": "Eurovision"},
				},
			},
		})
	})
	// A playlist with the same title lives in the root folder. A lookup
	// scoped to folder1 must not see it.
	mux.HandleFunc("GET /v2/my-collection/playlists/folders/flattened", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("folderId") {
		case "folder1":
			writeJSON(t, w, map[string]any{"items": []any{}})
		case "root":
			writeJSON(t, w, map[string]any{
				"items": []any{
					map[string]any{
						"itemType": "PLAYLIST",
						"data":     map[string]any{"uuid": "rogue", "title": "EUROVISION 2024"},
					},
				},
			})
		default:
			t.Errorf("unscoped playlist lookup: %s", r.URL)
			writeJSON(t, w, map[string]any{"items": []any{}})
		}
	})
	mux.HandleFunc("PUT /v2/my-collection/playlists/folders/create-playlist", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("folderId"); got != "folder1" {
			t.Errorf("create-playlist folderId = %q, want folder1", got)
		}
		createdPlaylist = true
		writeJSON(t, w, map[string]any{
			"uuid": "pp3", "title": "EUROVISION 2024", "publicPlaylist": true,
		})
	})
	mux.HandleFunc("GET /v1/search/tracks", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"items": []any{}})
	})
	mux.HandleFunc("POST /v1/playlists/rogue/items", func(w http.ResponseWriter, r *http.Request) {
		t.Error("track added to a playlist outside the parent folder")
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := &Client{
		baseURL:   srv.URL + "/v1",
		baseURLv2: srv.URL + "/v2",
		http:      srv.Client(),
	}

	playlist := music.Playlist{
		Name: "EUROVISION 2024",
		Tracks: []music.Track{
			{Name: "Song", ISRC: "USRC55555555", Duration: 3 * time.Minute, Artists: []string{"Erin"}},
		},
	}

	if _, err := c.MergePlaylist(context.Background(), playlist, music.MergeOptions{ParentFolder: "Eurovision"}); err != nil {
		t.Fatalf("MergePlaylist() error: %v", err)
	}

	if !createdPlaylist {
		t.Error("playlist was not created inside the parent folder")
	}
}

func TestSearchTrack_NotLoggedIn(t *testing.T) {
	c := &Client{}
	if _, err := c.SearchTrack(context.Background(), music.Track{Name: "x"}); err == nil {
		t.Error("expected an error before Connect")
	}
}
