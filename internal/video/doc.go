package video

// Package video turns engine metadata into what the UI shows: canonical watch
// URLs, quality tiers, thumbnails and audio language options.
