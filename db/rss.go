package db

import "strings"

// RSSEntry is a feed entry persisted for dedupe and notification tracking
type RSSEntry struct {
	ID          int64
	Title       string
	Description string
	Links       []string
	PubDate     string
	Notified    bool
}

// SaveRSSEntry inserts an entry unless an identical title/description
// pair is already stored. Returns true if the entry is new.
func SaveRSSEntry(e *RSSEntry) (bool, error) {
	res, err := GetDB().Exec(`
		INSERT OR IGNORE INTO rss_entries (title, description, links, pub_date, notified, created_at)
		VALUES (?, ?, ?, ?, 0, ?)
	`, e.Title, e.Description, strings.Join(e.Links, "\n"), e.PubDate, NowMs())
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}

	id, err := res.LastInsertId()
	if err != nil {
		return false, err
	}
	e.ID = id
	return true, nil
}

// UnnotifiedRSSEntries returns stored entries that have not been announced yet
func UnnotifiedRSSEntries() ([]RSSEntry, error) {
	rows, err := GetDB().Query(`
		SELECT id, title, description, links, pub_date, notified
		FROM rss_entries
		WHERE notified = 0
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []RSSEntry
	for rows.Next() {
		var e RSSEntry
		var links string
		var pubDate *string
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &links, &pubDate, &e.Notified); err != nil {
			return nil, err
		}
		if links != "" {
			e.Links = strings.Split(links, "\n")
		}
		if pubDate != nil {
			e.PubDate = *pubDate
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// MarkRSSEntryNotified marks a stored entry as announced
func MarkRSSEntryNotified(id int64) error {
	_, err := GetDB().Exec("UPDATE rss_entries SET notified = 1 WHERE id = ?", id)
	return err
}
