package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/sirupsen/logrus"
	"github.com/ytget/yt-downloader-web/internal/model"
)

// Engine defaults
const (
	DefaultExecutable = "yt-dlp"
	OutputTemplate    = "%(title)s.%(ext)s"
	ProbeFormat       = "best"
	MetadataFormat    = "best"
	ProgressInterval  = 250 * time.Millisecond
)

// Extractor arguments. Metadata and download share one player client set so
// the formats offered are the formats fetched.
const (
	DefaultExtractorArgs = "youtube:player_client=web,android,tv"
	ProbeExtractorArgs   = "youtube:player_client=web,android,tv;skip=dash,hls"
)

// ExitError is returned when yt-dlp fails. Error() is the tool's own output.
type ExitError struct {
	Code   int
	Stderr string
	Stdout string
	Err    error
}

func (e *ExitError) Error() string {
	if msg := e.Diagnostic(); msg != "" {
		return msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("yt-dlp exited with code %d", e.Code)
}

// Diagnostic returns stderr, or stdout when stderr is empty
func (e *ExitError) Diagnostic() string {
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		return msg
	}
	return strings.TrimSpace(e.Stdout)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// DownloadOptions configures a single download
type DownloadOptions struct {
	Format      string
	MergeFormat string // empty disables --merge-output-format
	Directory   string
}

// YTDLP drives the yt-dlp executable with a fixed credential
type YTDLP struct {
	executable string
	credential model.Credential
}

// NewYTDLP creates an adapter; an empty executable means the default lookup
func NewYTDLP(executable string, credential model.Credential) *YTDLP {
	return &YTDLP{executable: executable, credential: credential}
}

// Credential returns the credential passed to every call
func (y *YTDLP) Credential() model.Credential {
	return y.credential
}

// command builds a base invocation carrying the shared flags and credential
func (y *YTDLP) command(extractorArgs string) *ytdlp.Command {
	cmd := ytdlp.New().
		NoWarnings().
		IgnoreConfig().
		NoCheckCertificates().
		ExtractorArgs(extractorArgs)

	if y.executable != "" {
		cmd.SetExecutable(y.executable)
	}

	return applyCredential(cmd, y.credential)
}

func applyCredential(cmd *ytdlp.Command, cred model.Credential) *ytdlp.Command {
	if cred.IsCookieFile() {
		return cmd.Cookies(cred.CookieFile)
	}
	if spec, ok := cred.Browser.Get(); ok {
		return cmd.CookiesFromBrowser(spec.String())
	}
	return cmd
}

// run executes cmd and normalizes failures into *ExitError
func (y *YTDLP) run(ctx context.Context, cmd *ytdlp.Command, args ...string) (*ytdlp.Result, error) {
	res, err := cmd.Run(ctx, args...)
	return normalize(ctx, res, err)
}

// normalize turns a failed invocation into *ExitError carrying the tool's
// output; a cancelled or expired ctx is reported as an interruption instead
func normalize(ctx context.Context, res *ytdlp.Result, err error) (*ytdlp.Result, error) {
	if err == nil {
		return res, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, fmt.Errorf("yt-dlp interrupted: %w", ctxErr)
	}

	exitErr := &ExitError{Code: -1, Err: err}
	if res != nil {
		exitErr.Code = res.ExitCode
		exitErr.Stderr = res.Stderr
		exitErr.Stdout = res.Stdout
	}
	return res, exitErr
}

// Extract fetches single-video metadata without downloading
func (y *YTDLP) Extract(ctx context.Context, url string) (*model.VideoMetadata, error) {
	cmd := y.command(DefaultExtractorArgs).
		SkipDownload().
		DumpSingleJSON().
		NoPlaylist().
		Format(MetadataFormat)

	res, err := y.run(ctx, cmd, url)
	if err != nil {
		return nil, err
	}

	var meta model.VideoMetadata
	if err := decodeJSONLine(res.Stdout, &meta); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	return &meta, nil
}

// Probe runs a metadata-only trial and discards the output
func (y *YTDLP) Probe(ctx context.Context, url string) error {
	cmd := y.command(ProbeExtractorArgs).
		SkipDownload().
		DumpSingleJSON().
		NoPlaylist().
		Format(ProbeFormat)

	_, err := y.run(ctx, cmd, url)
	return err
}

// downloadInfo is the part of the info JSON printed after a download
type downloadInfo struct {
	Title              string `json:"title"`
	FormatID           string `json:"format_id"`
	Filename           string `json:"filename"`
	LegacyFilename     string `json:"_filename"`
	RequestedDownloads []struct {
		Filepath string `json:"filepath"`
	} `json:"requested_downloads"`
}

func (d downloadInfo) path() string {
	for _, rd := range d.RequestedDownloads {
		if rd.Filepath != "" {
			return rd.Filepath
		}
	}
	if d.Filename != "" {
		return d.Filename
	}
	return d.LegacyFilename
}

// Download fetches url into opts.Directory, reporting progress synchronously
func (y *YTDLP) Download(ctx context.Context, url string, opts DownloadOptions, onProgress model.ProgressFunc) (*model.DownloadResult, error) {
	cmd := y.command(DefaultExtractorArgs).
		Format(opts.Format).
		Output(filepath.Join(opts.Directory, OutputTemplate)).
		NoPlaylist().
		PrintJSON()

	if opts.MergeFormat != "" {
		cmd.MergeOutputFormat(opts.MergeFormat)
	}

	var lastFilename string
	if onProgress != nil {
		cmd.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
			converted := convertProgress(update)
			if converted.Filename != "" {
				lastFilename = converted.Filename
			}
			onProgress(converted)
		})
	}

	res, err := y.run(ctx, cmd, url)
	if err != nil {
		return nil, err
	}

	var info downloadInfo
	if err := decodeJSONLine(res.Stdout, &info); err != nil {
		logrus.WithError(err).WithField("url", url).Debug("no info json in yt-dlp output")
	}

	result := &model.DownloadResult{
		Title:    info.Title,
		Filepath: info.path(),
		FormatID: info.FormatID,
	}
	if result.Filepath == "" {
		result.Filepath = lastFilename
	}
	return result, nil
}

// Version returns the engine version string, e.g. "2025.09.26"
func (y *YTDLP) Version(ctx context.Context) (string, error) {
	cmd := ytdlp.New()
	if y.executable != "" {
		cmd.SetExecutable(y.executable)
	}

	res, err := cmd.Version(ctx)
	if res, err = normalize(ctx, res, err); err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

// convertProgress maps a go-ytdlp update onto the service's progress payload
func convertProgress(update ytdlp.ProgressUpdate) model.ProgressUpdate {
	p := model.ProgressUpdate{
		Status:          model.ProgressStatus(update.Status),
		Filename:        update.Filename,
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
	}

	// Calculate speed
	if !update.Started.IsZero() {
		elapsed := time.Since(update.Started)
		if elapsed.Seconds() > 0 {
			p.Speed = float64(update.DownloadedBytes) / elapsed.Seconds()
		}
	}

	if eta := update.ETA(); eta > 0 {
		p.ETA = eta
	}

	return p
}

// decodeJSONLine decodes the last line of output that holds a JSON object
func decodeJSONLine(output string, v any) error {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, "{") {
			return json.Unmarshal([]byte(line), v)
		}
	}
	return fmt.Errorf("no JSON object in output")
}

// VersionAge returns the age in days of a date-based version like
// "2025.09.26" or "2025.09.26.232905"
func VersionAge(version string, now time.Time) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(version), ".", 4)
	if len(parts) < 3 {
		return 0, false
	}

	built, err := time.Parse("2006.1.2", strings.Join(parts[:3], "."))
	if err != nil {
		return 0, false
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(today.Sub(built).Hours() / 24), true
}
