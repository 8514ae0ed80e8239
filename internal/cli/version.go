package cli

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/ytget/yt-downloader-web/internal/config"
	"github.com/ytget/yt-downloader-web/internal/platform"
)

func (a *app) versionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the application, yt-dlp and ffmpeg versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if lo.Must(cmd.Flags().GetBool("short")) {
				_, err := fmt.Fprintln(out, Version)
				return err
			}

			fmt.Fprintf(out, "%s %s\n", config.AppName, Version)

			if engineVersion, err := a.engine().Version(cmd.Context()); err != nil {
				fmt.Fprintf(out, "yt-dlp    not available (%v)\n", err)
			} else {
				line := "yt-dlp    " + engineVersion
				if age, ok := platform.VersionAge(engineVersion, time.Now()); ok {
					line += fmt.Sprintf(" (%d days old)", age)
				}
				fmt.Fprintln(out, line)
			}

			ffmpeg := platform.LocateFFmpeg(cmd.Context())
			if !ffmpeg.Found {
				_, err := fmt.Fprintln(out, "ffmpeg    not found")
				return err
			}
			_, err := fmt.Fprintf(out, "ffmpeg    %s %s\n", lo.Ternary(ffmpeg.Version != "", ffmpeg.Version, "unknown"), ffmpeg.Path)
			return err
		},
	}
	cmd.Flags().BoolP("short", "s", false, "Print only the application version")
	return cmd
}
