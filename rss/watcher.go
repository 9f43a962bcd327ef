package rss

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"

	"tidalbot/config"
	"tidalbot/db"
	"tidalbot/log"
)

var logger = log.GetLogger("rss")

// NotifyFunc announces a new feed entry
type NotifyFunc func(entry db.RSSEntry)

// Watcher polls the news feed and announces entries not seen before
type Watcher struct {
	feedURL  string
	interval time.Duration
	notify   NotifyFunc
	parser   *gofeed.Parser

	// store access, overridable in tests
	save       func(*db.RSSEntry) (bool, error)
	unnotified func() ([]db.RSSEntry, error)
	mark       func(int64) error

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewWatcher creates a watcher from the global configuration
func NewWatcher(notify NotifyFunc) *Watcher {
	cfg := config.Get()

	return &Watcher{
		feedURL:    cfg.RSSFeedURL,
		interval:   cfg.RSSPollInterval,
		notify:     notify,
		parser:     gofeed.NewParser(),
		save:       db.SaveRSSEntry,
		unnotified: db.UnnotifiedRSSEntries,
		mark:       db.MarkRSSEntryNotified,
		stopChan:   make(chan struct{}),
	}
}

// Start begins polling the feed
func (w *Watcher) Start() {
	logger.Info().Str("url", w.feedURL).Dur("interval", w.interval).Msg("starting RSS watcher")

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.announceBacklog()
		w.poll()
		for {
			select {
			case <-ticker.C:
				w.poll()
			case <-w.stopChan:
				return
			}
		}
	}()
}

// Stop stops the watcher
func (w *Watcher) Stop() {
	close(w.stopChan)
	w.wg.Wait()
	logger.Info().Msg("RSS watcher stopped")
}

// announceBacklog re-announces stored entries whose notification never
// went out, for example after a crash between save and send.
func (w *Watcher) announceBacklog() {
	entries, err := w.unnotified()
	if err != nil {
		logger.Error().Err(err).Msg("failed to load unnotified RSS entries")
		return
	}

	for _, e := range entries {
		if w.notify != nil {
			w.notify(e)
		}
		if err := w.mark(e.ID); err != nil {
			logger.Error().Err(err).Int64("id", e.ID).Msg("failed to mark RSS entry notified")
		}
	}
}

// poll fetches the feed once and announces entries not seen before.
// Failures are logged; the next tick tries again.
func (w *Watcher) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	entries, err := w.fetch(ctx)
	if err != nil {
		logger.Warn().Err(err).Str("url", w.feedURL).Msg("failed to fetch RSS feed")
		return
	}

	fresh := 0
	for i := range entries {
		inserted, err := w.save(&entries[i])
		if err != nil {
			logger.Error().Err(err).Str("title", entries[i].Title).Msg("failed to save RSS entry")
			continue
		}
		if !inserted {
			continue
		}

		fresh++
		if w.notify != nil {
			w.notify(entries[i])
		}
		if err := w.mark(entries[i].ID); err != nil {
			logger.Error().Err(err).Int64("id", entries[i].ID).Msg("failed to mark RSS entry notified")
		}
	}

	logger.Info().Int("entries", len(entries)).Int("new", fresh).Msg("polled RSS feed")
}

// fetch downloads and parses the feed
func (w *Watcher) fetch(ctx context.Context) ([]db.RSSEntry, error) {
	logger.Debug().Str("url", w.feedURL).Msg("fetching RSS feed")

	feed, err := w.parser.ParseURLWithContext(w.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	var entries []db.RSSEntry
	for _, item := range feed.Items {
		if item == nil || item.Title == "" || item.Description == "" {
			continue
		}

		entry := db.RSSEntry{
			Title:       item.Title,
			Description: item.Description,
			PubDate:     item.Published,
		}
		if item.Link != "" {
			entry.Links = append(entry.Links, item.Link)
		}
		for _, link := range item.Links {
			if link != item.Link {
				entry.Links = append(entry.Links, link)
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
