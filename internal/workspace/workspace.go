package workspace

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const BaseDirName = "PDFSim"

// EnsureDefault prepares the workspace under the user's home directory, or
// under PDFSIM_HOME when set.
func EnsureDefault() (string, error) {
	if base := strings.TrimSpace(os.Getenv("PDFSIM_HOME")); base != "" {
		return EnsureAt(base)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return EnsureAt(filepath.Join(home, BaseDirName))
}

func EnsureAt(base string) (string, error) {
	paths := []string{
		filepath.Join(base, "configs"),
		DownloadsDir(base),
	}

	for _, p := range paths {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return "", fmt.Errorf("mkdir %s: %w", p, err)
		}
	}
	return base, nil
}

func DownloadsDir(root string) string {
	return filepath.Join(root, "cache", "downloads")
}

func HistoryPath(root string) string {
	return filepath.Join(root, "history.db")
}

// CacheKey derives a stable file name stem for a remote location.
func CacheKey(location string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(location)))
	return hex.EncodeToString(sum[:])[:16]
}
