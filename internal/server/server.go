// Package server exposes the aggregation feeds over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nitingupta-05/nwave/internal/playlist"
)

// Playlists is the aggregation surface the handlers serve.
type Playlists interface {
	LeftDefault(ctx context.Context) playlist.Result
	LeftTag(ctx context.Context, tag string) playlist.Result
	Search(ctx context.Context, query string) playlist.Result
	RightDefault(ctx context.Context) playlist.Result
	RightTag(ctx context.Context, tag string) playlist.Result
}

type Server struct {
	playlists Playlists
	engine    *gin.Engine
	http      *http.Server
}

type Options struct {
	Port               int
	RateLimitPerSecond int
}

func New(playlists Playlists, opts Options) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestID())
	engine.Use(AccessLog())
	engine.Use(CORS())
	if opts.RateLimitPerSecond > 0 {
		engine.Use(RateLimit(opts.RateLimitPerSecond))
	}

	s := &Server{
		playlists: playlists,
		engine:    engine,
		http: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      30 * time.Second,
		},
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")

	api.GET("/left-playlist", s.leftPlaylist)
	api.GET("/left-playlist-tag", s.leftPlaylistTag)
	api.GET("/left-search", s.leftSearch)
	api.GET("/right-playlist", s.rightPlaylist)
	api.GET("/right-playlist-tag", s.rightPlaylistTag)

	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// Handler returns the HTTP handler, used directly by tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) ListenAndServe() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
