package platform

import (
	"context"
	"os/exec"
	"strings"
)

// FFmpegCommand is looked up on PATH
const FFmpegCommand = "ffmpeg"

// FFmpegStatus tells whether merges can run on this host
type FFmpegStatus struct {
	Found   bool   `json:"found"`
	Path    string `json:"path"`
	Version string `json:"version,omitempty"`
}

// LocateFFmpeg finds ffmpeg and reads its version banner
func LocateFFmpeg(ctx context.Context) FFmpegStatus {
	path, err := exec.LookPath(FFmpegCommand)
	if err != nil {
		return FFmpegStatus{}
	}

	status := FFmpegStatus{Found: true, Path: path}
	output, err := exec.CommandContext(ctx, path, "-hide_banner", "-version").Output()
	if err == nil {
		status.Version = parseFFmpegVersion(string(output))
	}
	return status
}

// parseFFmpegVersion extracts "6.1.1" from "ffmpeg version 6.1.1 Copyright ..."
func parseFFmpegVersion(banner string) string {
	firstLine, _, _ := strings.Cut(banner, "\n")
	fields := strings.Fields(firstLine)
	if len(fields) >= 3 && fields[0] == FFmpegCommand && fields[1] == "version" {
		return fields[2]
	}
	return ""
}
