package video

import (
	"net/url"
	"strings"

	"github.com/ytget/yt-downloader-web/internal/model"
)

// Host names recognized by Canonicalize
const (
	ShortLinkHost   = "youtu.be"
	WatchHost       = "youtube.com"
	PrivacyModeHost = "youtube-nocookie.com"
)

// WatchURLTemplate is the canonical watch page form
const WatchURLTemplate = "https://www.youtube.com/watch?v="

// Canonicalize returns the canonical watch URL for YouTube links and the input
// unchanged for anything else. It never fails and is idempotent.
func Canonicalize(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	host := strings.ToLower(u.Hostname())
	if matchesHost(host, ShortLinkHost) {
		id, _, _ := strings.Cut(strings.TrimLeft(u.Path, "/"), "/")
		if id != "" {
			return watchURL(id)
		}
	}

	if matchesHost(host, WatchHost) || matchesHost(host, PrivacyModeHost) {
		if id := u.Query().Get("v"); id != "" {
			return watchURL(id)
		}
	}

	return raw
}

// Reference derives the canonical form of raw once and keeps both
func Reference(raw string) model.VideoReference {
	return model.VideoReference{RawURL: raw, CanonicalURL: Canonicalize(raw)}
}

// VideoID extracts the id from a canonical watch URL, or "" if raw is not one
func VideoID(raw string) string {
	canonical := Canonicalize(raw)
	if !strings.HasPrefix(canonical, WatchURLTemplate) {
		return ""
	}
	id, err := url.QueryUnescape(strings.TrimPrefix(canonical, WatchURLTemplate))
	if err != nil {
		return ""
	}
	return id
}

func matchesHost(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

func watchURL(id string) string {
	return WatchURLTemplate + url.QueryEscape(id)
}

// IsValidURL reports whether raw is an absolute http(s) URL with a host
func IsValidURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
