package platform

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Scratch directory name prefix under the temp root
const (
	ScratchDirPrefix = "ytfetch-"
)

// Accepted container extensions for the fallback search, by target.
var (
	AudioExtensions = []string{".mp3"}
	VideoExtensions = []string{".mp4", ".mkv", ".webm", ".mov"}
)

// NewScratchDir creates a uniquely named directory under root (the system
// temp root when root is empty) for exactly one job's output files.
func NewScratchDir(root string) (string, error) {
	if root == "" {
		root = os.TempDir()
	}
	dir := filepath.Join(root, ScratchDirPrefix+uuid.New().String())
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		return "", fmt.Errorf("create scratch dir: %w", err)
	}
	return dir, nil
}

// RemoveScratchDir deletes a scratch directory and everything in it.
// Failures are logged, not returned: cleanup is best-effort and must never
// fail a job that already has an outcome.
func RemoveScratchDir(dir string) {
	if dir == "" {
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		log.Printf("failed to remove scratch dir %s: %v", dir, err)
	}
}

// LargestFileWithExt returns the path of the biggest regular file in dir
// whose extension is in exts. Largest byte size is the tie-break heuristic
// for "most complete output" when several artifacts exist; it has no stronger
// guarantee than that.
func LargestFileWithExt(dir string, exts []string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}

	var bestPath string
	var bestSize int64 = -1
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		accepted := false
		for _, want := range exts {
			if ext == want {
				accepted = true
				break
			}
		}
		if !accepted {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.Size() > bestSize {
			bestSize = info.Size()
			bestPath = filepath.Join(dir, entry.Name())
		}
	}

	if bestPath == "" {
		return "", false
	}
	return bestPath, true
}

// ListDir returns the file names in dir, one per line, for failure
// diagnostics when an expected artifact never appeared.
func ListDir(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Sprintf("(unreadable: %v)", err)
	}
	if len(entries) == 0 {
		return "(empty)"
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return strings.Join(names, "\n")
}

// CheckFFmpeg reports whether ffmpeg is reachable in PATH and logs the
// outcome. Audio extraction and video merging both need it.
func CheckFFmpeg() bool {
	path, err := exec.LookPath("ffmpeg")
	if err != nil {
		log.Println("ffmpeg not found in PATH; audio extraction and merging will fail")
		return false
	}
	log.Printf("ffmpeg OK: %s", path)
	return true
}
