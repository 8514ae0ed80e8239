package model

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewDownloadSession(t *testing.T) {
	video := VideoReference{RawURL: "https://youtu.be/abc", CanonicalURL: "https://www.youtube.com/watch?v=abc"}
	session := NewDownloadSession(video, "bestvideo+bestaudio/best", "mp4", "/tmp")

	if session.Status != SessionStatusStarting {
		t.Errorf("Expected status to be Starting, got %s", session.Status)
	}

	if !strings.HasPrefix(session.ID, "session-") {
		t.Errorf("Expected ID to start with 'session-', got: %s", session.ID)
	}

	// session- + 36 chars for UUID
	if len(session.ID) != len("session-")+36 {
		t.Errorf("Expected ID length %d, got %d for ID: %s", len("session-")+36, len(session.ID), session.ID)
	}

	other := NewDownloadSession(video, "", "", "/tmp")
	if other.ID == session.ID {
		t.Error("Expected different session IDs")
	}
}

func TestDownloadSession_Advance(t *testing.T) {
	session := NewDownloadSession(VideoReference{}, "", "", "")

	if !session.Advance(SessionStatusDownloading) {
		t.Fatal("Expected Starting -> Downloading to succeed")
	}
	if session.Advance(SessionStatusDownloading) {
		t.Error("Expected repeated Downloading to report no change")
	}
	if !session.Advance(SessionStatusMerging) {
		t.Fatal("Expected Downloading -> Merging to succeed")
	}
	if !session.Advance(SessionStatusComplete) {
		t.Fatal("Expected Merging -> Complete to succeed")
	}
	if session.FinishedAt.IsZero() {
		t.Error("Expected FinishedAt to be set on completion")
	}
	if session.Advance(SessionStatusError) {
		t.Error("Expected Complete to be terminal")
	}
}

func TestDownloadSession_Fail(t *testing.T) {
	session := NewDownloadSession(VideoReference{}, "", "", "")
	session.Fail(errors.New("boom"))

	if session.Status != SessionStatusError {
		t.Errorf("Expected status Error, got %s", session.Status)
	}
	if session.LastError != "boom" {
		t.Errorf("Expected LastError 'boom', got %q", session.LastError)
	}

	session.Fail(errors.New("second"))
	if session.LastError != "boom" {
		t.Errorf("Expected first error to be kept, got %q", session.LastError)
	}
}

func TestDownloadSession_Elapsed(t *testing.T) {
	now := time.Now()
	session := &DownloadSession{StartedAt: now.Add(-2 * time.Second), FinishedAt: now}

	if got := session.Elapsed(); got != 2*time.Second {
		t.Errorf("Elapsed() = %v, expected 2s", got)
	}
}

func TestAsAuthRequired(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), &AuthRequiredError{Detail: "Sign in to confirm"})

	authErr, ok := AsAuthRequired(wrapped)
	if !ok {
		t.Fatal("Expected AuthRequiredError to be found in chain")
	}
	if authErr.Detail != "Sign in to confirm" {
		t.Errorf("Detail = %q", authErr.Detail)
	}

	if _, ok := AsAuthRequired(errors.New("plain")); ok {
		t.Error("Expected plain error not to match")
	}
}

func TestInvalidRequest(t *testing.T) {
	err := InvalidRequest("Missing url")
	if !errors.Is(err, ErrInvalidRequest) {
		t.Error("Expected error to match ErrInvalidRequest")
	}
	if !strings.Contains(err.Error(), "Missing url") {
		t.Errorf("Expected message to be kept, got %q", err.Error())
	}
}
