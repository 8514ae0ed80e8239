package model

import "strings"

// VideoReference pairs the URL a client sent with the canonical watch URL that
// is handed to the engine
type VideoReference struct {
	RawURL       string `json:"raw_url"`
	CanonicalURL string `json:"canonical_url"`
}

// StreamDescriptor is one format entry of the engine's info JSON
type StreamDescriptor struct {
	FormatID     string  `json:"format_id"`
	Height       int     `json:"height,omitempty"`
	FPS          float64 `json:"fps,omitempty"`
	VCodec       string  `json:"vcodec,omitempty"`
	ACodec       string  `json:"acodec,omitempty"`
	TBR          float64 `json:"tbr,omitempty"` // total bitrate in KBit/s
	Ext          string  `json:"ext,omitempty"`
	DynamicRange string  `json:"dynamic_range,omitempty"`
	Language     string  `json:"language,omitempty"`
	LanguageName string  `json:"language_name,omitempty"`
	FormatNote   string  `json:"format_note,omitempty"`
	Resolution   string  `json:"resolution,omitempty"`
}

// HasVideo reports whether the descriptor carries a video track
func (d StreamDescriptor) HasVideo() bool {
	return codecPresent(d.VCodec)
}

// HasAudio reports whether the descriptor carries an audio track
func (d StreamDescriptor) HasAudio() bool {
	return codecPresent(d.ACodec)
}

func codecPresent(codec string) bool {
	return codec != "" && !strings.EqualFold(codec, "none")
}

// Thumbnail is one entry of the engine's thumbnails list
type Thumbnail struct {
	URL    string `json:"url"`
	Height int    `json:"height,omitempty"`
	Width  int    `json:"width,omitempty"`
}

// VideoMetadata is the subset of the engine's single-video info JSON the
// service consumes
type VideoMetadata struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Uploader    string             `json:"uploader"`
	Duration    float64            `json:"duration"`
	Thumbnail   string             `json:"thumbnail"`
	Thumbnails  []Thumbnail        `json:"thumbnails"`
	Formats     []StreamDescriptor `json:"formats"`
	FormatID    string             `json:"format_id"`
	Ext         string             `json:"ext"`
}

// QualityTier is a user-facing quality choice mapped to an engine format selector
type QualityTier struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Ext      string `json:"ext"`
	Format   string `json:"format"`
	Language string `json:"language,omitempty"`
}

// LanguageOption is one selectable audio language
type LanguageOption struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// VideoInfo is the payload returned to the UI for a metadata lookup
type VideoInfo struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Uploader    string           `json:"uploader"`
	Duration    float64          `json:"duration"`
	Formats     []QualityTier    `json:"formats"`
	Thumbnail   string           `json:"thumbnail"`
	Languages   []LanguageOption `json:"languages"`
}

// DownloadResult describes a finished download
type DownloadResult struct {
	Title    string `json:"title"`
	Filepath string `json:"filepath"`
	FormatID string `json:"format_id"`
}
