package download

// Package download drives one download to completion on top of yt-dlp (via
// github.com/lrstanley/go-ytdlp): it picks the format selector and merge
// container, prepares the destination and tracks the session state while
// relaying engine progress.
