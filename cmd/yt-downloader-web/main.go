package main

import "github.com/ytget/yt-downloader-web/internal/cli"

func main() {
	cli.Execute()
}
