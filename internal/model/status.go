package model

// SessionStatus represents the state of a single download session
type SessionStatus string

const (
	// SessionStatusStarting means the session was created but the engine has not reported yet
	SessionStatusStarting SessionStatus = "Starting"

	// SessionStatusDownloading means the engine is transferring stream data
	SessionStatusDownloading SessionStatus = "Downloading"

	// SessionStatusMerging means all streams are fetched and the engine is muxing them
	SessionStatusMerging SessionStatus = "Merging"

	// SessionStatusComplete means the engine returned successfully
	SessionStatusComplete SessionStatus = "Complete"

	// SessionStatusError means the session failed
	SessionStatusError SessionStatus = "Error"
)

// String returns the string representation of SessionStatus
func (s SessionStatus) String() string {
	return string(s)
}

// IsActive returns true while the engine is still working on the session
func (s SessionStatus) IsActive() bool {
	return s == SessionStatusStarting || s == SessionStatusDownloading || s == SessionStatusMerging
}

// IsFinished returns true once the session reached a terminal state
func (s SessionStatus) IsFinished() bool {
	return s == SessionStatusComplete || s == SessionStatusError
}

// CanTransition reports whether the state machine allows moving from s to next.
// Error is reachable from every non-terminal state; Downloading and Merging may
// alternate because the engine fetches video and audio streams one after another.
func (s SessionStatus) CanTransition(next SessionStatus) bool {
	if s.IsFinished() {
		return false
	}
	switch next {
	case SessionStatusError:
		return true
	case SessionStatusDownloading:
		return s == SessionStatusStarting || s == SessionStatusDownloading || s == SessionStatusMerging
	case SessionStatusMerging:
		return s == SessionStatusStarting || s == SessionStatusDownloading || s == SessionStatusMerging
	case SessionStatusComplete:
		return true
	default:
		return false
	}
}
