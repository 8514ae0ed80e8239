package download

import (
	"context"

	"github.com/ytget/yt-downloader-web/internal/model"
	"github.com/ytget/yt-downloader-web/internal/platform"
)

// Engine is the download side of the engine adapter
type Engine interface {
	Download(ctx context.Context, url string, opts platform.DownloadOptions, onProgress model.ProgressFunc) (*model.DownloadResult, error)
}

// Downloader defines the interface for the download service.
type Downloader interface {
	// Download blocks until the engine returns; onProgress fires on the calling goroutine
	Download(ctx context.Context, req Request, onProgress model.ProgressFunc) (*model.DownloadResult, error)

	// DefaultDirectory is used when a request carries no path
	DefaultDirectory() string
}
