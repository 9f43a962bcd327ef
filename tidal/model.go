package tidal

import "encoding/json"

// page is the offset/limit envelope used by the v1 listing endpoints
type page[T any] struct {
	Items              []T `json:"items"`
	Limit              int `json:"limit"`
	Offset             int `json:"offset"`
	TotalNumberOfItems int `json:"totalNumberOfItems"`
}

// collectionItem is an entry of a v2 my-collection folder listing.
// Data decodes as folderObject or playlistObject depending on ItemType.
type collectionItem struct {
	ItemType string          `json:"itemType"`
	Data     json.RawMessage `json:"data"`
}

const (
	itemTypeFolder   = "FOLDER"
	itemTypePlaylist = "PLAYLIST"
)

type folderObject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type playlistObject struct {
	UUID           string `json:"uuid"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	PublicPlaylist bool   `json:"publicPlaylist"`
	NumberOfTracks int    `json:"numberOfTracks"`
}

type artistObject struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type albumObject struct {
	ID             int64          `json:"id"`
	Title          string         `json:"title"`
	NumberOfTracks int            `json:"numberOfTracks"`
	Artist         *artistObject  `json:"artist"`
	Artists        []artistObject `json:"artists"`
}

type trackObject struct {
	ID       int64          `json:"id"`
	Title    string         `json:"title"`
	Duration int            `json:"duration"` // seconds
	ISRC     string         `json:"isrc"`
	Artist   *artistObject  `json:"artist"`
	Artists  []artistObject `json:"artists"`
	Album    *albumObject   `json:"album"`
}

type sessionInfo struct {
	SessionID   string `json:"sessionId"`
	UserID      int64  `json:"userId"`
	CountryCode string `json:"countryCode"`
}
