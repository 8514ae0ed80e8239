package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/afero"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// DownloadsDirName is the folder under the home directory used by default
const DownloadsDirName = "Downloads"

// File name thresholds
const (
	MaxNameDifference = 10
)

// File extensions to skip
var (
	SkippedExtensions = []string{".part", ".ytdl"}
)

// Container extensions the engine may produce after a merge
var (
	MergedExtensions = []string{".mp4", ".mkv", ".webm", ".m4a"}
)

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(fs afero.Fs, dirPath string) error {
	info, err := fs.Stat(dirPath)
	if os.IsNotExist(err) {
		return fs.MkdirAll(dirPath, DefaultDirPermissions)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dirPath)
	}
	return nil
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, DownloadsDirName), nil
}

// ExpandHome replaces a leading "~" with the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, path[1:]), nil
}

// FileExists reports whether path names a regular file
func FileExists(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// FindFileWithFallback tries to find a file by its original path, and if not found,
// looks for the same name with a merged container extension and then for
// similarly named files in the same directory
func FindFileWithFallback(fs afero.Fs, filePath string) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("file path is empty")
	}

	// First, try the original path
	if FileExists(fs, filePath) {
		return filePath, nil
	}

	dir := filepath.Dir(filePath)
	originalName := filepath.Base(filePath)
	originalExt := filepath.Ext(originalName)
	baseName := strings.TrimSuffix(originalName, originalExt)

	// The engine reports the pre-merge name when streams are muxed afterwards
	for _, ext := range MergedExtensions {
		candidate := filepath.Join(dir, baseName+ext)
		if ext != originalExt && FileExists(fs, candidate) {
			return candidate, nil
		}
	}

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		entryName := entry.Name()
		entryExt := filepath.Ext(entryName)
		if lo.Contains(SkippedExtensions, entryExt) {
			continue
		}

		entryBase := strings.TrimSuffix(entryName, entryExt)
		if isSimilarFileName(entryBase, baseName) && (entryExt == originalExt || lo.Contains(MergedExtensions, entryExt)) {
			candidates = append(candidates, filepath.Join(dir, entryName))
		}
	}

	if len(candidates) > 0 {
		sort.Strings(candidates)
		return candidates[0], nil
	}

	return "", fmt.Errorf("file not found: %s", filePath)
}

// isSimilarFileName checks if two file names are similar enough to be considered the same file
func isSimilarFileName(name1, name2 string) bool {
	clean1 := strings.TrimSpace(name1)
	clean2 := strings.TrimSpace(name2)

	if clean1 == clean2 {
		return true
	}

	// Truncated or decorated names count when the difference is small
	if strings.Contains(clean1, clean2) || strings.Contains(clean2, clean1) {
		diff := len(clean1) - len(clean2)
		if diff < 0 {
			diff = -diff
		}
		return diff <= MaxNameDifference
	}

	return false
}
