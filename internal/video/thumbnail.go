package video

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/ytget/yt-downloader-web/internal/model"
)

// FallbackThumbnailTemplate is used when the engine reports no thumbnail
const FallbackThumbnailTemplate = "https://img.youtube.com/vi/%s/maxresdefault.jpg"

// PickThumbnail prefers the explicit thumbnail, then the tallest listed one,
// then the static image URL derived from the video id
func PickThumbnail(meta *model.VideoMetadata) string {
	if meta == nil {
		return ""
	}
	if meta.Thumbnail != "" {
		return meta.Thumbnail
	}

	if len(meta.Thumbnails) > 0 {
		tallest := lo.MaxBy(meta.Thumbnails, func(a, b model.Thumbnail) bool {
			return a.Height > b.Height
		})
		if tallest.URL != "" {
			return tallest.URL
		}
	}

	if meta.ID != "" {
		return fmt.Sprintf(FallbackThumbnailTemplate, meta.ID)
	}
	return ""
}
