package auth

import (
	"errors"
	"strings"

	"github.com/samber/lo"
	"github.com/ytget/yt-downloader-web/internal/model"
)

// Generic probe reasons
const (
	ReasonProbeFailed = "Probe failed"
	ReasonTimeout     = "Probe timed out"
	ReasonInvalidURL  = "Invalid URL"
)

// MaxReasonLength bounds reasons surfaced to clients
const MaxReasonLength = 240

var (
	botCheckPhrases  = []string{"sign in to confirm", "not a bot"}
	forbiddenPhrases = []string{"http error 403", "403 forbidden", "status code 403"}
)

// diagnostic is implemented by engine errors that carry the tool's own output
type diagnostic interface {
	Diagnostic() string
}

// SummarizeProbeError returns the first non-empty line of message without a
// leading "error:" marker, cut to MaxReasonLength characters
func SummarizeProbeError(message string) string {
	for _, line := range strings.Split(message, "\n") {
		cleaned := strings.TrimSpace(line)
		if cleaned == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(cleaned), "error:") {
			cleaned = strings.TrimSpace(cleaned[len("error:"):])
		}
		if cleaned == "" {
			break
		}
		return lo.Substring(cleaned, 0, MaxReasonLength)
	}
	return ReasonProbeFailed
}

// AuthErrorDetail reports whether message looks like a sign-in wall or a 403
// and returns the summarized detail
func AuthErrorDetail(message string) (string, bool) {
	if message == "" {
		return "", false
	}
	lowered := strings.ToLower(message)
	containsAny := func(phrases []string) bool {
		return lo.SomeBy(phrases, func(phrase string) bool { return strings.Contains(lowered, phrase) })
	}
	if containsAny(botCheckPhrases) || containsAny(forbiddenPhrases) {
		return SummarizeProbeError(message), true
	}
	return "", false
}

// Classify turns engine errors that mean "sign in first" into
// *model.AuthRequiredError and returns every other error unchanged
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := model.AsAuthRequired(err); ok {
		return err
	}
	if detail, ok := AuthErrorDetail(engineMessage(err)); ok {
		return &model.AuthRequiredError{Detail: detail, Err: err}
	}
	return err
}

func engineMessage(err error) string {
	var d diagnostic
	if errors.As(err, &d) {
		if msg := d.Diagnostic(); msg != "" {
			return msg
		}
	}
	return err.Error()
}
