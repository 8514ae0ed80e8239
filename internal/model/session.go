package model

import (
	"time"

	"github.com/google/uuid"
)

// DownloadSession is the state of one download request. It is owned by the
// request that created it and never shared.
type DownloadSession struct {
	ID          string
	Video       VideoReference
	Format      string // engine format selector
	MergeFormat string // empty when no merge step is needed
	Directory   string
	Status      SessionStatus
	LastError   string
	StartedAt   time.Time
	FinishedAt  time.Time
}

// NewDownloadSession creates a session in the Starting state
func NewDownloadSession(video VideoReference, format, mergeFormat, directory string) *DownloadSession {
	return &DownloadSession{
		ID:          generateSessionID(),
		Video:       video,
		Format:      format,
		MergeFormat: mergeFormat,
		Directory:   directory,
		Status:      SessionStatusStarting,
		StartedAt:   time.Now(),
	}
}

// Advance moves the session to next if the state machine allows it and
// reports whether the status changed
func (s *DownloadSession) Advance(next SessionStatus) bool {
	if s.Status == next || !s.Status.CanTransition(next) {
		return false
	}
	s.Status = next
	if next.IsFinished() {
		s.FinishedAt = time.Now()
	}
	return true
}

// Fail moves the session to Error and records the message
func (s *DownloadSession) Fail(err error) {
	if s.Advance(SessionStatusError) && err != nil {
		s.LastError = err.Error()
	}
}

// Elapsed returns how long the session has been running, or ran
func (s *DownloadSession) Elapsed() time.Duration {
	if s.FinishedAt.IsZero() {
		return time.Since(s.StartedAt)
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

func generateSessionID() string {
	return "session-" + uuid.NewString()
}
