package auth

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ytget/yt-downloader-web/internal/model"
)

// MaxProbeTimeout bounds a single probe
const MaxProbeTimeout = 20 * time.Second

// ProbeEngine runs a metadata-only fetch with the engine's configured credential
type ProbeEngine interface {
	Probe(ctx context.Context, url string) error
}

// Result is the outcome of a probe, Reason is empty when OK
type Result struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

// Prober checks whether the current credential can read a video
type Prober struct {
	engine  ProbeEngine
	timeout time.Duration
}

// NewProber creates a prober with the default timeout
func NewProber(engine ProbeEngine) *Prober {
	return &Prober{engine: engine, timeout: MaxProbeTimeout}
}

// SetTimeout changes the probe timeout, values outside (0, MaxProbeTimeout] are clamped
func (p *Prober) SetTimeout(timeout time.Duration) {
	if timeout <= 0 || timeout > MaxProbeTimeout {
		timeout = MaxProbeTimeout
	}
	p.timeout = timeout
}

// Timeout returns the effective probe timeout
func (p *Prober) Timeout() time.Duration {
	return p.timeout
}

// Probe never returns an error, failures are reported through Result.Reason
func (p *Prober) Probe(ctx context.Context, ref model.VideoReference) Result {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	// the engine may outlive ctx when a child process keeps its output open
	done := make(chan error, 1)
	go func() {
		done <- p.engine.Probe(ctx, ref.CanonicalURL)
	}()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err == nil {
		return Result{OK: true}
	}

	result := Result{Reason: ReasonProbeFailed}
	var d diagnostic
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		result.Reason = ReasonTimeout
	case errors.As(err, &d):
		result.Reason = SummarizeProbeError(d.Diagnostic())
	}

	logrus.WithFields(logrus.Fields{
		"url":    ref.CanonicalURL,
		"reason": result.Reason,
	}).Debug("auth probe failed")

	return result
}
