package main

import (
	"github.com/ytget/yt-downloader-web/internal/cli"
)

// version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	if version != "dev" {
		cli.Version = version
	}
	cli.Execute()
}
