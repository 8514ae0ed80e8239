package config

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/ytget/yt-downloader-web/internal/auth"
)

const sampleConfig = `
[server]
host = "0.0.0.0"
port = 8080

[engine]
probe_timeout = "5s"

[formats]
policy = "bucketed"

[download]
directory = "/srv/videos"
`

func setup(t *testing.T, fs afero.Fs, file string) *viper.Viper {
	t.Helper()
	v := viper.New()
	if err := Setup(v, fs, file); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	return v
}

func TestLoad(t *testing.T) {
	Convey("Given no config file", t, func() {
		v := setup(t, afero.NewMemMapFs(), "")

		Convey("Defaults are used", func() {
			s, err := Load(v)
			So(err, ShouldBeNil)
			So(s.Host, ShouldEqual, DefaultHost)
			So(s.Port, ShouldEqual, DefaultPort)
			So(s.StaticRoot, ShouldEqual, DefaultStaticRoot)
			So(s.Executable, ShouldEqual, DefaultExecutable)
			So(s.ProbeTimeout, ShouldEqual, auth.MaxProbeTimeout)
			So(s.FormatsPolicy, ShouldEqual, DefaultFormatsPolicy)
			So(s.DownloadDir, ShouldEndWith, "Downloads")
			So(s.Addr(), ShouldEqual, "127.0.0.1:5050")
		})
	})

	Convey("Given a TOML config file", t, func() {
		fs := afero.NewMemMapFs()
		So(afero.WriteFile(fs, "/etc/ytdl.toml", []byte(sampleConfig), 0644), ShouldBeNil)
		v := setup(t, fs, "/etc/ytdl.toml")

		Convey("File values override defaults", func() {
			s, err := Load(v)
			So(err, ShouldBeNil)
			So(s.Addr(), ShouldEqual, "0.0.0.0:8080")
			So(s.ProbeTimeout, ShouldEqual, 5*time.Second)
			So(s.FormatsPolicy, ShouldEqual, "bucketed")
			So(s.DownloadDir, ShouldEqual, "/srv/videos")
		})
	})

	Convey("Given a missing explicit config file", t, func() {
		err := Setup(viper.New(), afero.NewMemMapFs(), "/nowhere.toml")

		Convey("Setup fails", func() {
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given invalid values", t, func() {
		v := setup(t, afero.NewMemMapFs(), "")

		Convey("A bad port is rejected", func() {
			v.Set(KeyServerPort, 70000)
			_, err := Load(v)
			So(err, ShouldNotBeNil)
		})

		Convey("An unknown policy is rejected", func() {
			v.Set(KeyFormatsPolicy, "fancy")
			_, err := Load(v)
			So(err, ShouldNotBeNil)
		})

		Convey("A non-chrome browser spec is rejected", func() {
			v.Set(KeyCookiesFromBrowser, "firefox")
			_, err := Load(v)
			So(err, ShouldNotBeNil)
		})

		Convey("An oversized probe timeout is clamped", func() {
			v.Set(KeyProbeTimeout, time.Minute)
			s, err := Load(v)
			So(err, ShouldBeNil)
			So(s.ProbeTimeout, ShouldEqual, auth.MaxProbeTimeout)
		})
	})
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("YTDLWEB_SERVER_PORT", "6060")
	t.Setenv(auth.ProfileEnv, "Profile 1")

	Convey("Given environment overrides", t, func() {
		v := setup(t, afero.NewMemMapFs(), "")
		s, err := Load(v)

		So(err, ShouldBeNil)
		So(s.Port, ShouldEqual, 6060)
		So(s.ChromeProfile, ShouldEqual, "Profile 1")
	})
}

func TestEnv(t *testing.T) {
	Convey("Env maps keys to variable names", t, func() {
		So(Env(KeyServerPort), ShouldEqual, "YTDLWEB_SERVER_PORT")
		So(EnvKeyReplacer.Replace("engine.probe_timeout"), ShouldEqual, "engine_probe_timeout")
	})
}

func TestCredential(t *testing.T) {
	Convey("Given settings", t, func() {
		fs := afero.NewMemMapFs()
		So(afero.WriteFile(fs, "/cookies.txt", []byte("# Netscape HTTP Cookie File"), 0600), ShouldBeNil)

		Convey("An existing cookie file is used", func() {
			s := &Settings{CookiesFile: "/cookies.txt", CookiesFromBrowser: "chrome"}
			cred, err := s.Credential(fs)
			So(err, ShouldBeNil)
			So(cred.IsCookieFile(), ShouldBeTrue)
		})

		Convey("A missing cookie file fails", func() {
			s := &Settings{CookiesFile: "/missing.txt"}
			_, err := s.Credential(fs)
			So(err, ShouldNotBeNil)
		})

		Convey("A browser spec is parsed", func() {
			s := &Settings{CookiesFromBrowser: "chrome+kwallet:Work"}
			cred, err := s.Credential(fs)
			So(err, ShouldBeNil)
			So(cred.String(), ShouldContainSubstring, "chrome+KWALLET:Work")
		})

		Convey("The default chrome profile applies otherwise", func() {
			s := &Settings{ChromeProfile: "Profile 2"}
			cred, err := s.Credential(fs)
			So(err, ShouldBeNil)
			spec, ok := cred.Browser.Get()
			So(ok, ShouldBeTrue)
			So(spec.Profile.OrEmpty(), ShouldEqual, "Profile 2")
		})
	})
}
