package db

// SyncRun records the outcome of merging one playlist
type SyncRun struct {
	ID         string `json:"id"`
	Playlist   string `json:"playlist"`
	Added      int    `json:"added"`
	Skipped    int    `json:"skipped"`
	NotFound   int    `json:"not_found"`
	Failed     int    `json:"failed"`
	StartedAt  int64  `json:"started_at"`
	FinishedAt int64  `json:"finished_at"`
}

// RecordSyncRun persists a finished sync run
func RecordSyncRun(r SyncRun) error {
	_, err := GetDB().Exec(`
		INSERT INTO sync_runs (id, playlist, added, skipped, not_found, failed, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Playlist, r.Added, r.Skipped, r.NotFound, r.Failed, r.StartedAt, r.FinishedAt)
	return err
}

// RecentSyncRuns returns the most recent sync runs, newest first
func RecentSyncRuns(limit int) ([]SyncRun, error) {
	rows, err := GetDB().Query(`
		SELECT id, playlist, added, skipped, not_found, failed, started_at, finished_at
		FROM sync_runs
		ORDER BY finished_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []SyncRun
	for rows.Next() {
		var r SyncRun
		if err := rows.Scan(&r.ID, &r.Playlist, &r.Added, &r.Skipped, &r.NotFound, &r.Failed, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
