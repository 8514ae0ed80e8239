package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	testDir := "/downloads/test_dir"

	// Directory should not exist initially
	if ok, _ := afero.DirExists(fs, testDir); ok {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	if err := CreateDirectoryIfNotExists(fs, testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if ok, _ := afero.DirExists(fs, testDir); !ok {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(fs, testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestCreateDirectoryIfNotExists_File(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/downloads", []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := CreateDirectoryIfNotExists(fs, "/downloads"); err == nil {
		t.Error("Expected error when path is a regular file")
	}
}

func TestGetHomeDownloadsDir(t *testing.T) {
	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("Failed to get downloads directory: %v", err)
	}

	if downloadsDir == "" {
		t.Fatal("Downloads directory is empty")
	}

	// Should end with "Downloads"
	if filepath.Base(downloadsDir) != "Downloads" {
		t.Errorf("Expected directory to end with 'Downloads', got: %s", downloadsDir)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tilde only", "~", home},
		{"tilde path", "~/Videos", filepath.Join(home, "Videos")},
		{"absolute", "/tmp/videos", "/tmp/videos"},
		{"relative", "videos", "videos"},
		{"tilde user form untouched", "~bob/videos", "~bob/videos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandHome(tt.in)
			if err != nil {
				t.Fatalf("ExpandHome() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFindFileWithFallback(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := []string{
		"/dl/Exact Title.mp4",
		"/dl/Merged Title.mkv",
		"/dl/Merged Title.f137.mp4.part",
		"/dl/Some Long Video Title (HD).mp4",
	}
	for _, f := range files {
		if err := afero.WriteFile(fs, f, []byte("data"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"exact match", "/dl/Exact Title.mp4", "/dl/Exact Title.mp4", false},
		{"merged extension", "/dl/Merged Title.webm", "/dl/Merged Title.mkv", false},
		{"similar name", "/dl/Some Long Video Title.mp4", "/dl/Some Long Video Title (HD).mp4", false},
		{"missing", "/dl/Unrelated.mp4", "", true},
		{"empty path", "", "", true},
		{"missing directory", "/nowhere/x.mp4", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindFileWithFallback(fs, tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FindFileWithFallback() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FindFileWithFallback() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsSimilarFileName(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Title", "Title", true},
		{" Title ", "Title", true},
		{"Title (HD)", "Title", true},
		{"Title", "Completely different title", false},
		{"A", "Title of a much longer video", false},
	}
	for _, tt := range tests {
		if got := isSimilarFileName(tt.a, tt.b); got != tt.want {
			t.Errorf("isSimilarFileName(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
