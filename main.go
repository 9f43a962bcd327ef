package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tidalbot/bot"
	"tidalbot/config"
	"tidalbot/db"
	"tidalbot/log"
	"tidalbot/rss"
	"tidalbot/server"
	"tidalbot/spotify"
	"tidalbot/tidal"
	syncworker "tidalbot/workers/sync"
)

func main() {
	cfg := config.Get()

	// Initialize database
	_ = db.GetDB()

	sp := spotify.New()
	td := tidal.New()

	// The server must be up before Spotify connects: a fresh login
	// arrives through the OAuth callback route.
	srv := server.New(sp)
	srv.Start()

	ctx := context.Background()

	if err := sp.Connect(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Spotify")
	}
	if err := td.Connect(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Tidal")
	}

	var syncWorker *syncworker.Worker

	tgBot, err := bot.New(bot.Handlers{
		Sync: func() { syncWorker.Trigger() },
		List: func() { go syncWorker.List() },
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Telegram bot")
	}

	syncWorker = syncworker.NewWorker(sp, td, tgBot)

	rssWatcher := rss.NewWatcher(func(entry db.RSSEntry) {
		tgBot.SendMessage(formatRSSMessage(entry))
	})

	// Start background workers
	log.Info().Msg("starting background workers")
	tgBot.Start()
	syncWorker.Start()
	rssWatcher.Start()

	if !cfg.SyncDisabled {
		syncWorker.Trigger()
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	rssWatcher.Stop()
	syncWorker.Stop()
	tgBot.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	if err := db.Close(); err != nil {
		log.Error().Err(err).Msg("database close error")
	}

	log.Info().Msg("stopped")
}

// formatRSSMessage renders a feed entry as a MarkdownV2 announcement
func formatRSSMessage(e db.RSSEntry) string {
	msg := "📰 *" + bot.EscapeMarkdown(e.Title) + "*\n\n" + bot.EscapeMarkdown(e.Description)
	for _, link := range e.Links {
		msg += "\n" + bot.EscapeMarkdown(link)
	}
	return msg
}
