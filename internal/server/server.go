package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/ytget/yt-downloader-web/internal/auth"
	"github.com/ytget/yt-downloader-web/internal/download"
	"github.com/ytget/yt-downloader-web/internal/logger"
	"github.com/ytget/yt-downloader-web/internal/model"
	"github.com/ytget/yt-downloader-web/internal/platform"
)

// Server timeouts. Writes are unbounded because a stream lives as long as its download.
const (
	ReadHeaderTimeout = 10 * time.Second
	IdleTimeout       = 120 * time.Second
)

// MetadataService answers video-info lookups
type MetadataService interface {
	Info(ctx context.Context, rawURL string) (*model.VideoInfo, error)
}

// AuthProber checks whether the credential can read a video
type AuthProber interface {
	Probe(ctx context.Context, ref model.VideoReference) auth.Result
}

// VersionReporter reports the engine version for diagnostics
type VersionReporter interface {
	Version(ctx context.Context) (string, error)
}

// Options wires the server to its collaborators
type Options struct {
	Addr       string
	Metadata   MetadataService
	Downloader download.Downloader
	Prober     AuthProber
	Engine     VersionReporter

	// Static serves the UI files; paths are relative to its root
	Static afero.Fs

	// FFmpeg and Now are replaceable for tests
	FFmpeg func(ctx context.Context) platform.FFmpegStatus
	Now    func() time.Time
}

// Server is the HTTP server for the downloader UI
type Server struct {
	opts   Options
	engine *gin.Engine
	http   *http.Server
	log    *logrus.Entry
}

// New builds the router and the underlying http.Server
func New(opts Options) *Server {
	if opts.FFmpeg == nil {
		opts.FFmpeg = platform.LocateFFmpeg
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Static == nil {
		opts.Static = afero.NewMemMapFs()
	}

	s := &Server{
		opts: opts,
		log:  logrus.WithField("component", "server"),
	}

	if gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	s.engine = gin.New()
	s.engine.Use(gin.Recovery())
	s.engine.Use(logger.Middleware(logrus.StandardLogger()))
	s.engine.Use(corsMiddleware())

	api := s.engine.Group("/api")
	api.GET("/video-info", s.handleVideoInfo)
	api.GET("/auth-status", s.handleAuthStatus)
	api.POST("/auth-get", s.handleAuthGet)
	api.GET("/default-path", s.handleDefaultPath)
	api.GET("/diagnostics", s.handleDiagnostics)
	api.POST("/download", s.handleDownload)
	api.POST("/download-stream", s.handleDownloadStream)

	s.engine.NoRoute(s.handleNoRoute)

	s.http = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: ReadHeaderTimeout,
		WriteTimeout:      0,
		IdleTimeout:       IdleTimeout,
	}

	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe blocks until the server stops; a graceful shutdown is not an error
func (s *Server) ListenAndServe() error {
	s.log.WithField("addr", s.opts.Addr).Info("video downloader API running")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// corsMiddleware allows any origin and answers preflight requests
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		if c.Request.Method == http.MethodOptions {
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type")
			c.Header("Access-Control-Max-Age", "600")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
