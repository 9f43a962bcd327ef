package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"tidalbot/config"
	"tidalbot/db"
	"tidalbot/log"
	"tidalbot/spotify"
)

// Server is the operational HTTP surface: health, metrics and the
// Spotify OAuth callback.
type Server struct {
	http *http.Server
}

// New builds the server and its routes
func New(sp *spotify.Client) *Server {
	cfg := config.Get()

	// Gin's own debug logging is replaced by the zerolog middleware
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(log.GinLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/syncruns", func(c *gin.Context) {
		runs, err := db.RecentSyncRuns(20)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"runs": runs})
	})

	r.GET("/auth/spotify/callback", spotifyCallback(sp))

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	return &Server{
		http: &http.Server{
			Addr:     addr,
			Handler:  r,
			ErrorLog: log.StdLogger(zerolog.WarnLevel),
		},
	}
}

func spotifyCallback(sp *spotify.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if errParam := c.Query("error"); errParam != "" {
			c.String(http.StatusBadRequest, "authorization denied: %s", errParam)
			return
		}

		if err := sp.HandleCallback(c.Query("state"), c.Query("code")); err != nil {
			log.Warn().Err(err).Msg("rejected Spotify callback")
			c.String(http.StatusBadRequest, "authorization failed")
			return
		}

		c.String(http.StatusOK, "Spotify linked, you can close this tab")
	}
}

// Start begins serving in the background
func (s *Server) Start() {
	go func() {
		log.Info().Str("addr", s.http.Addr).Msg("server starting")

		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
}

// Shutdown stops the server, waiting for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
