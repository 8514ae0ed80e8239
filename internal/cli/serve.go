package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/ytget/yt-downloader-web/internal/auth"
	"github.com/ytget/yt-downloader-web/internal/download"
	"github.com/ytget/yt-downloader-web/internal/platform"
	"github.com/ytget/yt-downloader-web/internal/server"
	"github.com/ytget/yt-downloader-web/internal/video"
)

// ShutdownTimeout bounds the graceful shutdown after SIGINT/SIGTERM
const ShutdownTimeout = 10 * time.Second

// buildServer wires the services onto the HTTP server
func (a *app) buildServer() (*server.Server, error) {
	s := a.settings
	engine := a.engine()

	policy, err := video.NewTierPolicy(s.FormatsPolicy)
	if err != nil {
		return nil, err
	}

	prober := auth.NewProber(engine)
	prober.SetTimeout(s.ProbeTimeout)

	staticRoot := s.StaticRoot
	if abs, err := filepath.Abs(staticRoot); err == nil {
		staticRoot = abs
	}
	if exists, _ := afero.DirExists(a.fs, staticRoot); !exists {
		logrus.WithField("static_root", staticRoot).Warn("static root not found, only the API will be served")
	}

	return server.New(server.Options{
		Addr:       s.Addr(),
		Metadata:   video.NewService(engine, policy),
		Downloader: download.NewService(engine, a.fs, s.DownloadDir),
		Prober:     prober,
		Engine:     engine,
		Static:     server.StaticFS(a.fs, staticRoot),
	}), nil
}

func (a *app) serve(cmd *cobra.Command, _ []string) error {
	srv, err := a.buildServer()
	if err != nil {
		return err
	}

	log := logrus.WithFields(logrus.Fields{
		"addr":       a.settings.Addr(),
		"credential": a.credential.String(),
		"downloads":  a.settings.DownloadDir,
		"policy":     a.settings.FormatsPolicy,
	})

	if ffmpeg := platform.LocateFFmpeg(cmd.Context()); !ffmpeg.Found {
		log.Warn("ffmpeg not found, separate video and audio streams cannot be merged")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Info("server started")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
