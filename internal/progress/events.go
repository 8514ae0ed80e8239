package progress

import (
	"math"

	"github.com/ytget/yt-downloader-web/internal/model"
)

// EventType tags the JSON payload of an event
type EventType string

const (
	TypeProgress EventType = "progress"
	TypeMerging  EventType = "merging"
	TypeComplete EventType = "complete"
	TypeError    EventType = "error"
)

// AuthRequiredCode marks error events caused by an insufficient credential
const AuthRequiredCode = "AUTH_REQUIRED"

// Event is one frame of a download stream
type Event interface {
	Kind() EventType
}

// Terminal reports whether ev ends a session
func Terminal(ev Event) bool {
	k := ev.Kind()
	return k == TypeComplete || k == TypeError
}

type ProgressEvent struct {
	Type    EventType `json:"type"`
	Percent float64   `json:"percent"`
	Speed   string    `json:"speed"`
	ETA     string    `json:"eta"`
}

func (ProgressEvent) Kind() EventType { return TypeProgress }

type MergingEvent struct {
	Type    EventType `json:"type"`
	Percent float64   `json:"percent"`
}

func (MergingEvent) Kind() EventType { return TypeMerging }

type CompleteEvent struct {
	Type     EventType `json:"type"`
	Title    string    `json:"title"`
	Filepath string    `json:"filepath"`
	FormatID string    `json:"format_id"`
}

func (CompleteEvent) Kind() EventType { return TypeComplete }

type ErrorEvent struct {
	Type    EventType `json:"type"`
	Message string    `json:"message"`
	Code    string    `json:"error,omitempty"`
	Detail  string    `json:"detail,omitempty"`
}

func (ErrorEvent) Kind() EventType { return TypeError }

// NewProgressEvent renders a downloading callback
func NewProgressEvent(update model.ProgressUpdate) ProgressEvent {
	return ProgressEvent{
		Type:    TypeProgress,
		Percent: Percent(update.DownloadedBytes, update.TotalBytes),
		Speed:   FormatSpeed(update.Speed),
		ETA:     FormatETA(update.ETA),
	}
}

// NewMergingEvent is emitted once all streams are fetched
func NewMergingEvent() MergingEvent {
	return MergingEvent{Type: TypeMerging, Percent: 100}
}

// NewCompleteEvent carries the engine's final result
func NewCompleteEvent(result model.DownloadResult) CompleteEvent {
	return CompleteEvent{
		Type:     TypeComplete,
		Title:    result.Title,
		Filepath: result.Filepath,
		FormatID: result.FormatID,
	}
}

// NewErrorEvent builds the terminal error frame, auth failures carry the
// AUTH_REQUIRED code and the summarized detail
func NewErrorEvent(err error) ErrorEvent {
	ev := ErrorEvent{Type: TypeError, Message: err.Error()}
	if authErr, ok := model.AsAuthRequired(err); ok {
		ev.Message = authErr.Detail
		ev.Code = AuthRequiredCode
		ev.Detail = authErr.Detail
	}
	return ev
}

// Percent is downloaded/total*100 rounded to one decimal, 0 when total is unknown
func Percent(downloaded, total int64) float64 {
	if total <= 0 {
		return 0
	}
	p := float64(downloaded) / float64(total) * 100
	p = math.Max(0, math.Min(p, 100))
	return math.Round(p*10) / 10
}
