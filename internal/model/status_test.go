package model

import "testing"

func TestSessionStatus_IsActive(t *testing.T) {
	tests := []struct {
		status   SessionStatus
		expected bool
	}{
		{SessionStatusStarting, true},
		{SessionStatusDownloading, true},
		{SessionStatusMerging, true},
		{SessionStatusComplete, false},
		{SessionStatusError, false},
	}

	for _, test := range tests {
		result := test.status.IsActive()
		if result != test.expected {
			t.Errorf("SessionStatus(%s).IsActive() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestSessionStatus_IsFinished(t *testing.T) {
	tests := []struct {
		status   SessionStatus
		expected bool
	}{
		{SessionStatusStarting, false},
		{SessionStatusDownloading, false},
		{SessionStatusMerging, false},
		{SessionStatusComplete, true},
		{SessionStatusError, true},
	}

	for _, test := range tests {
		result := test.status.IsFinished()
		if result != test.expected {
			t.Errorf("SessionStatus(%s).IsFinished() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestSessionStatus_CanTransition(t *testing.T) {
	tests := []struct {
		name     string
		from     SessionStatus
		to       SessionStatus
		expected bool
	}{
		{"starting to downloading", SessionStatusStarting, SessionStatusDownloading, true},
		{"downloading to merging", SessionStatusDownloading, SessionStatusMerging, true},
		{"merging back to downloading", SessionStatusMerging, SessionStatusDownloading, true},
		{"merging to complete", SessionStatusMerging, SessionStatusComplete, true},
		{"starting to error", SessionStatusStarting, SessionStatusError, true},
		{"complete is terminal", SessionStatusComplete, SessionStatusDownloading, false},
		{"error is terminal", SessionStatusError, SessionStatusComplete, false},
		{"unknown target", SessionStatusStarting, SessionStatus("Paused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.expected {
				t.Errorf("%s -> %s = %v, expected %v", tt.from, tt.to, got, tt.expected)
			}
		})
	}
}

func TestSessionStatus_String(t *testing.T) {
	status := SessionStatusDownloading
	expected := "Downloading"
	result := status.String()

	if result != expected {
		t.Errorf("SessionStatus.String() = %s, expected %s", result, expected)
	}
}
