package config

import (
	"strings"
	"time"

	"github.com/ytget/yt-downloader-web/internal/auth"
	"github.com/ytget/yt-downloader-web/internal/platform"
	"github.com/ytget/yt-downloader-web/internal/video"
)

// AppName names the config file and the config directory
const AppName = "yt-downloader-web"

// EnvPrefix is prepended to every environment override, e.g. YTDLWEB_SERVER_PORT
const EnvPrefix = "YTDLWEB"

// EnvKeyReplacer maps config keys onto environment variable names
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Settings keys
const (
	KeyServerHost         = "server.host"
	KeyServerPort         = "server.port"
	KeyStaticRoot         = "server.static_root"
	KeyCookiesFile        = "auth.cookies_file"
	KeyCookiesFromBrowser = "auth.cookies_from_browser"
	KeyChromeProfile      = "auth.chrome_profile"
	KeyEngineExecutable   = "engine.executable"
	KeyProbeTimeout       = "engine.probe_timeout"
	KeyFormatsPolicy      = "formats.policy"
	KeyDownloadDir        = "download.directory"
	KeyLogsLevel          = "logs.level"
	KeyLogsJSON           = "logs.json"
)

// Default values
const (
	DefaultHost          = "127.0.0.1"
	DefaultPort          = 5050
	DefaultStaticRoot    = "web"
	DefaultExecutable    = platform.DefaultExecutable
	DefaultProbeTimeout  = auth.MaxProbeTimeout
	DefaultFormatsPolicy = video.PolicyLadder
	DefaultLogsLevel     = "info"
	DefaultLogsJSON      = false
)

// Defaults registered with viper. Empty strings keep the keys visible to
// environment lookups.
var Defaults = map[string]any{
	KeyServerHost:         DefaultHost,
	KeyServerPort:         DefaultPort,
	KeyStaticRoot:         DefaultStaticRoot,
	KeyCookiesFile:        "",
	KeyCookiesFromBrowser: "",
	KeyChromeProfile:      "",
	KeyEngineExecutable:   DefaultExecutable,
	KeyProbeTimeout:       DefaultProbeTimeout,
	KeyFormatsPolicy:      DefaultFormatsPolicy,
	KeyDownloadDir:        "",
	KeyLogsLevel:          DefaultLogsLevel,
	KeyLogsJSON:           DefaultLogsJSON,
}

// Env returns the environment variable that overrides key
func Env(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(EnvKeyReplacer.Replace(key))
}

// clampProbeTimeout keeps the probe bound within (0, auth.MaxProbeTimeout]
func clampProbeTimeout(d time.Duration) time.Duration {
	if d <= 0 || d > auth.MaxProbeTimeout {
		return auth.MaxProbeTimeout
	}
	return d
}
