package model

import (
	"strings"

	"github.com/samber/mo"
)

// BrowserSpec selects a browser cookie store: name[+keyring][:profile][::container]
type BrowserSpec struct {
	Name      string
	Profile   mo.Option[string]
	Keyring   mo.Option[string]
	Container mo.Option[string]
}

// String renders the spec in the engine's --cookies-from-browser syntax
func (b BrowserSpec) String() string {
	var sb strings.Builder
	sb.WriteString(b.Name)
	if keyring, ok := b.Keyring.Get(); ok {
		sb.WriteString("+")
		sb.WriteString(keyring)
	}
	if profile, ok := b.Profile.Get(); ok {
		sb.WriteString(":")
		sb.WriteString(profile)
	}
	if container, ok := b.Container.Get(); ok {
		sb.WriteString("::")
		sb.WriteString(container)
	}
	return sb.String()
}

// Credential is the authentication source presented to the engine. Exactly one
// of CookieFile and Browser is set.
type Credential struct {
	CookieFile string
	Browser    mo.Option[BrowserSpec]
}

// CookieFileCredential returns a credential backed by a Netscape cookies.txt file
func CookieFileCredential(path string) Credential {
	return Credential{CookieFile: path, Browser: mo.None[BrowserSpec]()}
}

// BrowserCredential returns a credential that reads cookies from a browser profile
func BrowserCredential(spec BrowserSpec) Credential {
	return Credential{Browser: mo.Some(spec)}
}

// IsCookieFile reports whether the credential points at a cookies file
func (c Credential) IsCookieFile() bool {
	return c.CookieFile != ""
}

// String describes the credential for logs
func (c Credential) String() string {
	if c.IsCookieFile() {
		return "file:" + c.CookieFile
	}
	if spec, ok := c.Browser.Get(); ok {
		return "browser:" + spec.String()
	}
	return "none"
}
