package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ytget/yt-downloader-web/internal/model"
)

type fakeEngine struct {
	err   error
	block bool

	mu  sync.Mutex
	url string
}

func (f *fakeEngine) Probe(ctx context.Context, url string) error {
	f.mu.Lock()
	f.url = url
	f.mu.Unlock()
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return f.err
}

func (f *fakeEngine) seen() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.url
}

// stuckEngine ignores cancellation, like an engine whose child process keeps
// stdout open after the parent is killed
type stuckEngine struct {
	release chan struct{}
}

func (e *stuckEngine) Probe(context.Context, string) error {
	<-e.release
	return nil
}

type stderrError struct{ stderr string }

func (e *stderrError) Error() string      { return "exit status 1" }
func (e *stderrError) Diagnostic() string { return e.stderr }

func TestProber_Probe(t *testing.T) {
	ref := model.VideoReference{RawURL: "https://youtu.be/abc", CanonicalURL: "https://www.youtube.com/watch?v=abc"}

	tests := []struct {
		name   string
		engine *fakeEngine
		want   Result
	}{
		{"success", &fakeEngine{}, Result{OK: true}},
		{"engine error", &fakeEngine{err: &stderrError{stderr: "\nERROR: [youtube] abc: Sign in to confirm you're not a bot\nmore"}},
			Result{Reason: "[youtube] abc: Sign in to confirm you're not a bot"}},
		{"engine error without output", &fakeEngine{err: &stderrError{}}, Result{Reason: ReasonProbeFailed}},
		{"process failure", &fakeEngine{err: errors.New("exec: not found")}, Result{Reason: ReasonProbeFailed}},
		{"timeout", &fakeEngine{block: true}, Result{Reason: ReasonTimeout}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProber(tt.engine)
			p.SetTimeout(20 * time.Millisecond)
			got := p.Probe(context.Background(), ref)
			if got != tt.want {
				t.Errorf("Probe() = %+v, want %+v", got, tt.want)
			}
			if got := tt.engine.seen(); got != ref.CanonicalURL {
				t.Errorf("engine saw %q, want canonical url", got)
			}
		})
	}
}

func TestProber_ProbeStuckEngine(t *testing.T) {
	engine := &stuckEngine{release: make(chan struct{})}
	defer close(engine.release)

	p := NewProber(engine)
	p.SetTimeout(50 * time.Millisecond)

	start := time.Now()
	got := p.Probe(context.Background(), model.VideoReference{CanonicalURL: "https://www.youtube.com/watch?v=abc"})
	elapsed := time.Since(start)

	if got != (Result{Reason: ReasonTimeout}) {
		t.Errorf("Probe() = %+v, want timeout", got)
	}
	if elapsed > time.Second {
		t.Errorf("Probe() took %v, the timeout is 50ms", elapsed)
	}
}

func TestProber_SetTimeoutClamps(t *testing.T) {
	p := NewProber(&fakeEngine{})
	for _, d := range []time.Duration{0, -time.Second, time.Minute} {
		p.SetTimeout(d)
		if p.Timeout() != MaxProbeTimeout {
			t.Errorf("SetTimeout(%v) gave %v", d, p.Timeout())
		}
	}
	p.SetTimeout(5 * time.Second)
	if p.Timeout() != 5*time.Second {
		t.Errorf("Timeout() = %v", p.Timeout())
	}
}

func TestSummarizeProbeError(t *testing.T) {
	long := strings.Repeat("é", 300)
	tests := []struct {
		in, want string
	}{
		{"", ReasonProbeFailed},
		{"\n  \n", ReasonProbeFailed},
		{"ERROR: boom\nsecond", "boom"},
		{"  first line  \nERROR: second", "first line"},
		{"error:", ReasonProbeFailed},
		{long, strings.Repeat("é", MaxReasonLength)},
	}
	for _, tt := range tests {
		if got := SummarizeProbeError(tt.in); got != tt.want {
			t.Errorf("SummarizeProbeError(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		auth bool
	}{
		{"nil", nil, false},
		{"bot check", &stderrError{stderr: "ERROR: Sign in to confirm you're not a bot"}, true},
		{"forbidden", errors.New("unable to download: HTTP Error 403: Forbidden"), true},
		{"status code", errors.New("got status code 403 from server"), true},
		{"unrelated", errors.New("Video unavailable"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			_, isAuth := model.AsAuthRequired(got)
			if isAuth != tt.auth {
				t.Fatalf("Classify() auth = %v, want %v", isAuth, tt.auth)
			}
			if !isAuth && got != tt.err {
				t.Errorf("Classify() changed a non-auth error: %v", got)
			}
			if isAuth && !errors.Is(got, tt.err) {
				t.Errorf("Classify() lost the cause")
			}
		})
	}
}

func TestClassify_AlreadyClassified(t *testing.T) {
	orig := &model.AuthRequiredError{Detail: "x"}
	if got := Classify(orig); got != error(orig) {
		t.Errorf("Classify() rewrapped an auth error")
	}
}
