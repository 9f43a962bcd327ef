package sync

import (
	"context"
	"strings"
	gosync "sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"tidalbot/bot"
	"tidalbot/config"
	"tidalbot/db"
	"tidalbot/log"
	"tidalbot/music"
)

var logger = log.GetLogger("sync")

// Worker mirrors matching source playlists into the destination
// provider, on a cron schedule and on demand.
type Worker struct {
	source music.Service
	dest   music.Service
	bot    *bot.Bot

	prefix   string
	folder   string
	schedule string

	cron     *cron.Cron
	trigger  chan struct{}
	stopChan chan struct{}
	wg       gosync.WaitGroup
}

// NewWorker creates a sync worker from the global configuration
func NewWorker(source, dest music.Service, b *bot.Bot) *Worker {
	cfg := config.Get()

	return &Worker{
		source:   source,
		dest:     dest,
		bot:      b,
		prefix:   cfg.PlaylistPrefix,
		folder:   cfg.TidalFolder,
		schedule: cfg.SyncSchedule,
		trigger:  make(chan struct{}, 1),
		stopChan: make(chan struct{}),
	}
}

// Start begins the scheduled sync loop
func (w *Worker) Start() {
	logger.Info().Str("schedule", w.schedule).Str("prefix", w.prefix).Msg("starting sync worker")

	w.cron = cron.New()
	if _, err := w.cron.AddFunc(w.schedule, w.Trigger); err != nil {
		logger.Error().Err(err).Str("schedule", w.schedule).Msg("invalid sync schedule, scheduled runs disabled")
	} else {
		w.cron.Start()
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-w.trigger:
				w.runSync()
			case <-w.stopChan:
				return
			}
		}
	}()
}

// Stop stops the scheduler and waits for a running sync to finish
func (w *Worker) Stop() {
	if w.cron != nil {
		w.cron.Stop()
	}
	close(w.stopChan)
	w.wg.Wait()
	logger.Info().Msg("sync worker stopped")
}

// Trigger requests a sync run. A trigger during a running sync marks at
// most one further run; extra triggers coalesce.
func (w *Worker) Trigger() {
	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

// matchesPrefix selects the playlists to mirror
func (w *Worker) matchesPrefix(name string) bool {
	return strings.HasPrefix(name, w.prefix)
}

// runSync performs one full sync pass
func (w *Worker) runSync() {
	ctx := context.Background()

	logger.Info().Msg("starting sync run")
	started := time.Now()

	playlists, err := w.source.Playlists(ctx, w.matchesPrefix)
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch source playlists")
		syncRuns.WithLabelValues("error").Inc()
		return
	}

	for _, p := range playlists {
		w.syncPlaylist(ctx, p)
	}

	syncRuns.WithLabelValues("ok").Inc()
	logger.Info().Int("playlists", len(playlists)).Dur("took", time.Since(started)).Msg("sync run finished")
}

func (w *Worker) syncPlaylist(ctx context.Context, p music.Playlist) {
	started := time.Now()

	opts := music.MergeOptions{
		ParentFolder: w.folder,
		Public:       true,
	}
	if p.URI != "" {
		opts.Description = "Playlist synced from Spotify " + p.URI
	}

	report, err := w.dest.MergePlaylist(ctx, p, opts)
	if err != nil {
		logger.Error().Err(err).Str("playlist", p.Name).Msg("failed to merge playlist")
		return
	}

	logger.Info().
		Str("playlist", p.Name).
		Int("added", len(report.Added)).
		Int("skipped", len(report.Skipped)).
		Int("not_found", len(report.NotFound)).
		Msg("playlist merged")

	trackResults.WithLabelValues("added").Add(float64(len(report.Added)))
	trackResults.WithLabelValues("skipped").Add(float64(len(report.Skipped)))
	trackResults.WithLabelValues("not_found").Add(float64(len(report.NotFound)))
	trackResults.WithLabelValues("failed").Add(float64(len(report.Failed)))

	run := db.SyncRun{
		ID:         uuid.NewString(),
		Playlist:   p.Name,
		Added:      len(report.Added),
		Skipped:    len(report.Skipped),
		NotFound:   len(report.NotFound),
		Failed:     len(report.Failed),
		StartedAt:  started.UnixMilli(),
		FinishedAt: time.Now().UnixMilli(),
	}
	if err := db.RecordSyncRun(run); err != nil {
		logger.Error().Err(err).Str("playlist", p.Name).Msg("failed to record sync run")
	}

	if len(report.Added) > 0 && w.bot != nil {
		w.bot.SendMessage(FormatReport(p.Name, report))
	}
}

// List reports the matching source playlists over the bot
func (w *Worker) List() {
	ctx := context.Background()

	playlists, err := w.source.Playlists(ctx, w.matchesPrefix)
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch source playlists")
		return
	}

	if w.bot != nil {
		w.bot.SendMessage(FormatPlaylistList(playlists))
	}
}
