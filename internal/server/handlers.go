package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ytget/yt-downloader-web/internal/auth"
	"github.com/ytget/yt-downloader-web/internal/download"
	"github.com/ytget/yt-downloader-web/internal/model"
	"github.com/ytget/yt-downloader-web/internal/platform"
	"github.com/ytget/yt-downloader-web/internal/progress"
	"github.com/ytget/yt-downloader-web/internal/video"
)

// Error messages
const (
	MsgMissingURLParam  = "Missing url parameter"
	MsgInvalidJSON      = "Invalid JSON payload"
	MsgEndpointNotFound = "Endpoint not found"
	AuthRequiredCode    = progress.AuthRequiredCode
)

// Diagnostics
const (
	ExtractorName   = "youtube"
	StaleEngineDays = 30
	UnknownVersion  = "unknown"
	staleEngineHint = "yt-dlp is %d days old. If metadata broke recently, update yt-dlp and restart the server."
)

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

type authStatusResponse struct {
	OK      bool   `json:"ok"`
	Browser string `json:"browser"`
	Reason  string `json:"reason"`
}

type downloadResponse struct {
	Status   string `json:"status"`
	Title    string `json:"title"`
	Filepath string `json:"filepath"`
	FormatID string `json:"format_id"`
}

type engineDiagnostics struct {
	Version string  `json:"version"`
	AgeDays *int    `json:"age_days"`
	Warning *string `json:"warning"`
}

type extractorDiagnostics struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type diagnosticsResponse struct {
	YTDLP     engineDiagnostics     `json:"yt_dlp"`
	Extractor extractorDiagnostics  `json:"extractor"`
	FFmpeg    platform.FFmpegStatus `json:"ffmpeg"`
}

// writeError converts a service error into the JSON error contract
func (s *Server) writeError(c *gin.Context, err error) {
	if authErr, ok := model.AsAuthRequired(err); ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: AuthRequiredCode, Detail: authErr.Detail})
		return
	}
	if errors.Is(err, model.ErrInvalidRequest) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

// decodeBody reads an optional JSON object; an empty body decodes to the zero value
func decodeBody(c *gin.Context, v any) error {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func (s *Server) authStatus(ctx context.Context, rawURL string) (authStatusResponse, bool) {
	resp := authStatusResponse{Browser: auth.SupportedBrowser}
	if !video.IsValidURL(rawURL) {
		resp.Reason = auth.ReasonInvalidURL
		return resp, false
	}

	result := s.opts.Prober.Probe(ctx, video.Reference(strings.TrimSpace(rawURL)))
	resp.OK = result.OK
	resp.Reason = result.Reason
	return resp, true
}

func (s *Server) handleVideoInfo(c *gin.Context) {
	url := strings.TrimSpace(c.Query("url"))
	if url == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: MsgMissingURLParam})
		return
	}

	info, err := s.opts.Metadata.Info(c.Request.Context(), url)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) handleAuthStatus(c *gin.Context) {
	resp, _ := s.authStatus(c.Request.Context(), c.Query("url"))
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleAuthGet(c *gin.Context) {
	var body struct {
		URL string `json:"url"`
	}
	if err := decodeBody(c, &body); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: MsgInvalidJSON})
		return
	}

	resp, valid := s.authStatus(c.Request.Context(), body.URL)
	if !valid {
		c.JSON(http.StatusBadRequest, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleDefaultPath(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"path": s.opts.Downloader.DefaultDirectory()})
}

func (s *Server) handleDiagnostics(c *gin.Context) {
	ctx := c.Request.Context()
	resp := diagnosticsResponse{
		YTDLP:     engineDiagnostics{Version: UnknownVersion},
		Extractor: extractorDiagnostics{Name: ExtractorName, OK: true},
		FFmpeg:    s.opts.FFmpeg(ctx),
	}

	version, err := s.opts.Engine.Version(ctx)
	if err != nil {
		resp.Extractor.OK = false
		resp.Extractor.Error = err.Error()
	} else if version != "" {
		resp.YTDLP.Version = version
	}

	if age, ok := platform.VersionAge(resp.YTDLP.Version, s.opts.Now()); ok {
		resp.YTDLP.AgeDays = &age
		if age >= StaleEngineDays {
			warning := fmt.Sprintf(staleEngineHint, age)
			resp.YTDLP.Warning = &warning
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleDownload(c *gin.Context) {
	var req download.Request
	if err := decodeBody(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: MsgInvalidJSON})
		return
	}

	result, err := s.opts.Downloader.Download(c.Request.Context(), req, nil)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, downloadResponse{
		Status:   "ok",
		Title:    result.Title,
		Filepath: result.Filepath,
		FormatID: result.FormatID,
	})
}

// handleDownloadStream always answers 200; every failure is an in-band error event
func (s *Server) handleDownloadStream(c *gin.Context) {
	var req download.Request
	decodeErr := decodeBody(c, &req)

	c.Header("Content-Type", progress.ContentType)
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()

	emitter := progress.NewEmitter(progress.NewSSEWriter(c.Writer), s.log.WithField("url", req.URL))

	if decodeErr != nil {
		emitter.Fail(model.InvalidRequest(MsgInvalidJSON))
		return
	}

	// the engine keeps running when the client goes away
	ctx := context.WithoutCancel(c.Request.Context())
	result, err := s.opts.Downloader.Download(ctx, req, emitter.OnProgress)
	if err != nil {
		emitter.Fail(err)
		return
	}
	emitter.Complete(*result)
}

func (s *Server) handleNoRoute(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") || c.Request.URL.Path == "/api" {
		c.JSON(http.StatusNotFound, errorResponse{Error: MsgEndpointNotFound})
		return
	}
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusNotFound, errorResponse{Error: MsgEndpointNotFound})
		return
	}
	s.serveStatic(c)
}
