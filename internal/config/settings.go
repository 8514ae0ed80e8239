package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/samber/mo"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/ytget/yt-downloader-web/internal/auth"
	"github.com/ytget/yt-downloader-web/internal/model"
	"github.com/ytget/yt-downloader-web/internal/platform"
	"github.com/ytget/yt-downloader-web/internal/video"
)

// Settings is the immutable configuration read once at startup
type Settings struct {
	Host       string
	Port       int
	StaticRoot string

	CookiesFile        string
	CookiesFromBrowser string
	ChromeProfile      string

	Executable   string
	ProbeTimeout time.Duration

	FormatsPolicy string
	DownloadDir   string

	LogsLevel string
	LogsJSON  bool
}

// Setup registers defaults, environment bindings and the optional config
// file on v. An explicit configFile must exist; the default one may not.
func Setup(v *viper.Viper, fs afero.Fs, configFile string) error {
	v.SetFs(fs)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("toml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, AppName))
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(EnvKeyReplacer)
	v.AutomaticEnv()
	if err := v.BindEnv(KeyChromeProfile, Env(KeyChromeProfile), auth.ProfileEnv); err != nil {
		return err
	}

	for key, value := range Defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && configFile == "" {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	return nil
}

// Load reads Settings from v and validates them
func Load(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		Host:               strings.TrimSpace(v.GetString(KeyServerHost)),
		Port:               v.GetInt(KeyServerPort),
		StaticRoot:         v.GetString(KeyStaticRoot),
		CookiesFile:        strings.TrimSpace(v.GetString(KeyCookiesFile)),
		CookiesFromBrowser: strings.TrimSpace(v.GetString(KeyCookiesFromBrowser)),
		ChromeProfile:      strings.TrimSpace(v.GetString(KeyChromeProfile)),
		Executable:         strings.TrimSpace(v.GetString(KeyEngineExecutable)),
		ProbeTimeout:       clampProbeTimeout(v.GetDuration(KeyProbeTimeout)),
		FormatsPolicy:      strings.ToLower(strings.TrimSpace(v.GetString(KeyFormatsPolicy))),
		DownloadDir:        strings.TrimSpace(v.GetString(KeyDownloadDir)),
		LogsLevel:          v.GetString(KeyLogsLevel),
		LogsJSON:           v.GetBool(KeyLogsJSON),
	}

	var err error
	if s.DownloadDir == "" {
		s.DownloadDir, err = platform.GetHomeDownloadsDir()
	} else {
		s.DownloadDir, err = platform.ExpandHome(s.DownloadDir)
	}
	if err != nil {
		return nil, err
	}

	if s.CookiesFile, err = platform.ExpandHome(s.CookiesFile); err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate rejects settings the server cannot start with
func (s *Settings) Validate() error {
	if s.Host == "" {
		return fmt.Errorf("%s must not be empty", KeyServerHost)
	}
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("%s out of range: %d", KeyServerPort, s.Port)
	}
	if _, err := video.NewTierPolicy(s.FormatsPolicy); err != nil {
		return fmt.Errorf("%s: %w", KeyFormatsPolicy, err)
	}
	if s.CookiesFromBrowser != "" {
		if _, err := auth.ParseBrowserSpec(s.CookiesFromBrowser); err != nil {
			return err
		}
	}
	return nil
}

// Addr returns host:port for the HTTP listener
func (s *Settings) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Credential resolves the engine credential; a configured cookie file must exist
func (s *Settings) Credential(fs afero.Fs) (model.Credential, error) {
	opts := auth.Options{CookieFile: s.CookiesFile, Profile: s.ChromeProfile}

	if s.CookiesFile != "" && !platform.FileExists(fs, s.CookiesFile) {
		return model.Credential{}, fmt.Errorf("cookies file not found: %s", s.CookiesFile)
	}

	if s.CookiesFromBrowser != "" {
		spec, err := auth.ParseBrowserSpec(s.CookiesFromBrowser)
		if err != nil {
			return model.Credential{}, err
		}
		opts.BrowserSpec = mo.Some(spec)
	}

	return auth.Resolve(opts), nil
}
