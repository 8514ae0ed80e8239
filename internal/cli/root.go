// Package cli implements the yt-downloader-web command line: the server
// command plus credential and engine checks.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ytget/yt-downloader-web/internal/auth"
	"github.com/ytget/yt-downloader-web/internal/config"
	"github.com/ytget/yt-downloader-web/internal/download"
	"github.com/ytget/yt-downloader-web/internal/logger"
	"github.com/ytget/yt-downloader-web/internal/model"
	"github.com/ytget/yt-downloader-web/internal/platform"
	"github.com/ytget/yt-downloader-web/internal/server"
	"github.com/ytget/yt-downloader-web/internal/video"
)

// Version is set during build via -ldflags "-X github.com/ytget/yt-downloader-web/internal/cli.Version=X.Y.Z"
var Version = "dev"

// Engine is everything the commands need from the download engine
type Engine interface {
	video.Extractor
	auth.ProbeEngine
	download.Engine
	server.VersionReporter
}

// EngineFactory builds the engine for the configured executable and credential
type EngineFactory func(executable string, credential model.Credential) Engine

func defaultEngine(executable string, credential model.Credential) Engine {
	return platform.NewYTDLP(executable, credential)
}

// app carries the state shared by all commands of one invocation
type app struct {
	v          *viper.Viper
	fs         afero.Fs
	newEngine  EngineFactory
	configFile string

	settings   *config.Settings
	credential model.Credential
}

// NewRootCommand builds the command tree. fs backs the config file, cookie
// file checks and static files; newEngine may be nil for the real engine.
func NewRootCommand(v *viper.Viper, fs afero.Fs, newEngine EngineFactory) *cobra.Command {
	a := &app{v: v, fs: fs, newEngine: newEngine}
	if a.newEngine == nil {
		a.newEngine = defaultEngine
	}

	root := &cobra.Command{
		Use:   config.AppName,
		Short: "Local web UI and API for downloading videos with yt-dlp",
		Long: `yt-downloader-web serves a small browser UI and a JSON API that fetch
video metadata and download videos through yt-dlp, streaming progress
to the page as server-sent events.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
		RunE:              a.serve,
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "Config file (default $XDG_CONFIG_HOME/yt-downloader-web/yt-downloader-web.toml)")

	flags := root.PersistentFlags()
	flags.String("host", config.DefaultHost, "Address to listen on")
	flags.Int("port", config.DefaultPort, "Port to listen on")
	flags.String("static-root", config.DefaultStaticRoot, "Directory with the web UI files")
	flags.String("cookies-file", "", "Netscape cookies.txt file passed to yt-dlp")
	flags.String("cookies-from-browser", "", "Browser cookie store: chrome[+KEYRING][:PROFILE][::CONTAINER]")
	flags.String("chrome-profile", "", "Chrome profile used when no other credential is configured")
	flags.String("yt-dlp", config.DefaultExecutable, "yt-dlp executable")
	flags.Duration("probe-timeout", config.DefaultProbeTimeout, "Upper bound for one auth probe")
	flags.String("formats-policy", config.DefaultFormatsPolicy, "Quality tier policy: ladder or bucketed")
	flags.String("download-dir", "", "Default download directory (default ~/Downloads)")
	flags.String("log-level", config.DefaultLogsLevel, "Log level: debug, info, warn, error")
	flags.Bool("log-json", config.DefaultLogsJSON, "Log as JSON")

	for flag, key := range map[string]string{
		"host":                 config.KeyServerHost,
		"port":                 config.KeyServerPort,
		"static-root":          config.KeyStaticRoot,
		"cookies-file":         config.KeyCookiesFile,
		"cookies-from-browser": config.KeyCookiesFromBrowser,
		"chrome-profile":       config.KeyChromeProfile,
		"yt-dlp":               config.KeyEngineExecutable,
		"probe-timeout":        config.KeyProbeTimeout,
		"formats-policy":       config.KeyFormatsPolicy,
		"download-dir":         config.KeyDownloadDir,
		"log-level":            config.KeyLogsLevel,
		"log-json":             config.KeyLogsJSON,
	} {
		lo.Must0(v.BindPFlag(key, flags.Lookup(flag)))
	}

	root.AddCommand(a.probeCommand(), a.versionCommand())
	return root
}

// load reads the configuration and resolves the credential before any command runs
func (a *app) load(cmd *cobra.Command, _ []string) error {
	if err := config.Setup(a.v, a.fs, a.configFile); err != nil {
		return err
	}

	settings, err := config.Load(a.v)
	if err != nil {
		return err
	}
	logger.Setup(settings.LogsLevel, settings.LogsJSON, cmd.ErrOrStderr())

	credential, err := settings.Credential(a.fs)
	if err != nil {
		return err
	}

	a.settings = settings
	a.credential = credential
	return nil
}

func (a *app) engine() Engine {
	return a.newEngine(a.settings.Executable, a.credential)
}

// Execute runs the root command against the real filesystem and exits non-zero on failure
func Execute() {
	ExecuteContext(context.Background(), os.Args[1:], os.Stderr)
}

// ExecuteContext is Execute with explicit arguments and error output
func ExecuteContext(ctx context.Context, args []string, stderr io.Writer) {
	root := NewRootCommand(viper.New(), afero.NewOsFs(), nil)
	root.SetArgs(args)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		os.Exit(1)
	}
}
