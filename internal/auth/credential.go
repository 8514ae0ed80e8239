package auth

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/ytget/yt-downloader-web/internal/model"
)

// SupportedBrowser is the only cookie source this service reads from
const SupportedBrowser = "chrome"

// ProfileEnv names the environment variable holding the default Chrome profile
const ProfileEnv = "VIDEO_DL_CHROME_PROFILE"

// SupportedKeyrings mirrors the engine's accepted --cookies-from-browser keyrings
var SupportedKeyrings = []string{"BASICTEXT", "GNOMEKEYRING", "KWALLET", "KWALLET5", "KWALLET6"}

// SpecError reports an unusable --cookies-from-browser value
type SpecError struct {
	Input  string
	Reason string
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("invalid cookies-from-browser value %q: %s", e.Input, e.Reason)
}

// ParseBrowserSpec parses name[+keyring][:profile][::container]
func ParseBrowserSpec(spec string) (model.BrowserSpec, error) {
	input := spec
	spec = strings.TrimSpace(spec)

	invalid := func(reason string) (model.BrowserSpec, error) {
		return model.BrowserSpec{}, &SpecError{Input: input, Reason: reason}
	}

	rest, container, hasContainer := strings.Cut(spec, "::")
	rest, profile, hasProfile := strings.Cut(rest, ":")
	name, keyring, hasKeyring := strings.Cut(rest, "+")

	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return invalid("missing browser name")
	}
	if name != SupportedBrowser {
		return invalid(fmt.Sprintf("unsupported browser %q, only %q is supported", name, SupportedBrowser))
	}

	result := model.BrowserSpec{Name: name}

	if hasKeyring {
		keyring = strings.ToUpper(strings.TrimSpace(keyring))
		if !lo.Contains(SupportedKeyrings, keyring) {
			supported := append([]string(nil), SupportedKeyrings...)
			sort.Strings(supported)
			return invalid(fmt.Sprintf("unsupported keyring %q, supported keyrings: %s", keyring, strings.Join(supported, ", ")))
		}
		result.Keyring = mo.Some(keyring)
	}

	if hasProfile {
		profile = strings.TrimSpace(profile)
		if profile == "" {
			return invalid("empty profile")
		}
		result.Profile = mo.Some(profile)
	}

	if hasContainer {
		container = strings.TrimSpace(container)
		if container == "" {
			return invalid("empty container")
		}
		result.Container = mo.Some(container)
	}

	return result, nil
}

// DefaultBrowserSpec is the Chrome spec used when nothing is configured
func DefaultBrowserSpec(profile string) model.BrowserSpec {
	spec := model.BrowserSpec{Name: SupportedBrowser}
	if profile = strings.TrimSpace(profile); profile != "" {
		spec.Profile = mo.Some(profile)
	}
	return spec
}

// Options carries the explicit credential configuration given at startup
type Options struct {
	CookieFile  string
	BrowserSpec mo.Option[model.BrowserSpec]
	Profile     string // default Chrome profile, usually from ProfileEnv
}

// ProfileFromEnv reads the default Chrome profile from the environment
func ProfileFromEnv() string {
	return strings.TrimSpace(os.Getenv(ProfileEnv))
}

// Resolve picks the credential: cookie file, then explicit browser spec, then
// the default Chrome spec
func Resolve(opts Options) model.Credential {
	if opts.CookieFile != "" {
		return model.CookieFileCredential(opts.CookieFile)
	}
	if spec, ok := opts.BrowserSpec.Get(); ok {
		return model.BrowserCredential(spec)
	}
	return model.BrowserCredential(DefaultBrowserSpec(opts.Profile))
}
