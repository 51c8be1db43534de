package util

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// MediaLocator is the asset URL a player source is opened with.
func MediaLocator(mediaID int64) string {
	return fmt.Sprintf("asset://localhost/%d", mediaID)
}

// FileLocator converts a local file path, such as an external subtitle, to
// an asset URL.
func FileLocator(path string) (string, error) {
	clean, err := cleanAbsolute(path)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "asset", Host: "localhost", Path: filepath.ToSlash(clean)}
	return u.String(), nil
}

// ValidateMediaPath checks that path names an existing regular file.
func ValidateMediaPath(path string) error {
	clean, err := cleanAbsolute(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(clean)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", clean, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: %s", clean)
	}
	return nil
}

func cleanAbsolute(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return "", fmt.Errorf("path contains directory traversal: %s", path)
		}
	}
	if !filepath.IsAbs(path) {
		return "", fmt.Errorf("path must be absolute: %s", path)
	}
	return filepath.Clean(path), nil
}
