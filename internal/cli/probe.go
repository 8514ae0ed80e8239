package cli

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"
	"github.com/ytget/yt-downloader-web/internal/auth"
	"github.com/ytget/yt-downloader-web/internal/video"
)

// errProbeFailed makes a failed probe exit non-zero after the JSON is printed
var errProbeFailed = errors.New("credential cannot read the video")

type probeOutput struct {
	OK      bool   `json:"ok"`
	Browser string `json:"browser"`
	Reason  string `json:"reason"`
}

func (a *app) probeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "probe <url>",
		Short: "Check whether the configured credential can read a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := probeOutput{Browser: auth.SupportedBrowser}

			if !video.IsValidURL(args[0]) {
				out.Reason = auth.ReasonInvalidURL
			} else {
				prober := auth.NewProber(a.engine())
				prober.SetTimeout(a.settings.ProbeTimeout)
				result := prober.Probe(cmd.Context(), video.Reference(args[0]))
				out.OK, out.Reason = result.OK, result.Reason
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				return err
			}
			if !out.OK {
				return errProbeFailed
			}
			return nil
		},
	}
}
