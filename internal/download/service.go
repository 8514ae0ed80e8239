package download

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/ytget/yt-downloader-web/internal/auth"
	"github.com/ytget/yt-downloader-web/internal/model"
	"github.com/ytget/yt-downloader-web/internal/platform"
	"github.com/ytget/yt-downloader-web/internal/video"
)

// Merge containers
const (
	MergeLossless = "mp4/mkv"
	MergeDefault  = "mp4"
)

// Error messages surfaced to clients
const (
	MsgMissingURL = "Missing url"
)

// Request is the body of a download call
type Request struct {
	URL          string `json:"url"`
	Quality      string `json:"quality"`
	FormatString string `json:"format_string"`
	Path         string `json:"path"`
	Language     string `json:"language"`
}

// Normalize trims every field
func (r Request) Normalize() Request {
	return Request{
		URL:          strings.TrimSpace(r.URL),
		Quality:      strings.TrimSpace(r.Quality),
		FormatString: strings.TrimSpace(r.FormatString),
		Path:         strings.TrimSpace(r.Path),
		Language:     strings.TrimSpace(r.Language),
	}
}

// Service handles download operations
type Service struct {
	engine      Engine
	fs          afero.Fs
	downloadDir string
}

// NewService creates a new download service
func NewService(engine Engine, fs afero.Fs, downloadDir string) *Service {
	return &Service{
		engine:      engine,
		fs:          fs,
		downloadDir: downloadDir,
	}
}

// DefaultDirectory returns the directory used when a request has no path
func (s *Service) DefaultDirectory() string {
	return s.downloadDir
}

// ResolveDirectory expands "~" in path and falls back to the default directory
func (s *Service) ResolveDirectory(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return s.downloadDir, nil
	}
	return platform.ExpandHome(path)
}

// SelectFormat picks the engine selector: explicit format string, then a
// ladder tier id, then the quality hint in front of the generic fallback
func SelectFormat(req Request) string {
	if req.FormatString != "" {
		return req.FormatString
	}
	if tier, ok := video.LookupTier(req.Quality); ok {
		return tier.Format
	}

	fallback := video.GenericFormat
	if req.Language != "" {
		fallback = fmt.Sprintf("bestvideo+bestaudio[language=%s]/%s", req.Language, video.GenericFormat)
	}
	if req.Quality != "" {
		return req.Quality + "/" + fallback
	}
	return fallback
}

// MergeFormatFor returns the merge container for selector, "" when no merge runs
func MergeFormatFor(selector string) string {
	switch {
	case selector == video.BestAvailableFormat:
		return MergeLossless
	case video.IsAudioOnlyFormat(selector):
		return ""
	default:
		return MergeDefault
	}
}

// Download runs one session to completion. Engine failures matching the auth
// phrases come back as *model.AuthRequiredError.
func (s *Service) Download(ctx context.Context, req Request, onProgress model.ProgressFunc) (*model.DownloadResult, error) {
	req = req.Normalize()
	if req.URL == "" {
		return nil, model.InvalidRequest(MsgMissingURL)
	}

	ref := video.Reference(req.URL)
	format := SelectFormat(req)
	mergeFormat := MergeFormatFor(format)

	dir, err := s.ResolveDirectory(req.Path)
	if err != nil {
		return nil, err
	}

	session := model.NewDownloadSession(ref, format, mergeFormat, dir)
	log := logrus.WithFields(logrus.Fields{
		"session": session.ID,
		"url":     ref.CanonicalURL,
		"format":  format,
	})

	if err := platform.CreateDirectoryIfNotExists(s.fs, dir); err != nil {
		err = fmt.Errorf("failed to create download directory %s: %w", dir, err)
		session.Fail(err)
		log.WithError(err).Error("download failed")
		return nil, err
	}

	log.WithField("dir", dir).Info("download started")

	opts := platform.DownloadOptions{
		Format:      format,
		MergeFormat: mergeFormat,
		Directory:   dir,
	}

	result, err := s.engine.Download(ctx, ref.CanonicalURL, opts, func(update model.ProgressUpdate) {
		s.updateSession(session, update, log)
		if onProgress != nil {
			onProgress(update)
		}
	})
	if err != nil {
		err = auth.Classify(err)
		session.Fail(err)
		log.WithError(err).WithField("elapsed", session.Elapsed()).Error("download failed")
		return nil, err
	}

	if result == nil {
		result = &model.DownloadResult{}
	}
	if result.Filepath != "" {
		if found, findErr := platform.FindFileWithFallback(s.fs, result.Filepath); findErr == nil {
			result.Filepath = found
		} else {
			log.WithError(findErr).Warn("reported file not found on disk")
		}
	}

	session.Advance(model.SessionStatusComplete)
	log.WithFields(logrus.Fields{
		"file":    result.Filepath,
		"elapsed": session.Elapsed(),
	}).Info("download complete")

	return result, nil
}

// updateSession advances the state machine from an engine callback. A
// finished stream may be followed by another one, so only post processing
// counts as merging.
func (s *Service) updateSession(session *model.DownloadSession, update model.ProgressUpdate, log *logrus.Entry) {
	var next model.SessionStatus
	switch update.Status {
	case model.ProgressStatusDownloading:
		next = model.SessionStatusDownloading
	case model.ProgressStatusPostProcessing:
		next = model.SessionStatusMerging
	default:
		return
	}

	if session.Advance(next) {
		log.WithField("status", next).Debug("session status changed")
	}
}
