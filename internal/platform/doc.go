package platform

// Package platform contains OS integration and external tooling glue: the
// yt-dlp engine adapter, ffmpeg discovery and filesystem helpers.
