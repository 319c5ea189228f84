package utils

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// GetEnv returns the value of an environment variable or a fallback
// if it is unset or empty.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// GetEnvInt is GetEnv for integer variables. A value that doesn't parse
// falls back silently.
func GetEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

// CreateFolder creates a directory (and parents) if it doesn't exist.
func CreateFolder(folderPath string) error {
	if _, err := os.Stat(folderPath); os.IsNotExist(err) {
		if err := os.MkdirAll(folderPath, 0755); err != nil {
			return fmt.Errorf("failed to create folder %s: %v", folderPath, err)
		}
	}
	return nil
}

// MoveFile renames src to dst, falling back to copy+remove across devices.
func MoveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return err
	}
	return os.Remove(src)
}

// GenerateUniqueID returns a random 32-bit ID for transient use.
func GenerateUniqueID() uint32 {
	return rand.Uint32()
}

// GenerateTrackKey builds the stable catalog identity for a track.
func GenerateTrackKey(title, artist string) string {
	return strings.ToLower(title) + "---" + strings.ToLower(artist)
}

// BaseName returns the final path component of a track path, including
// its extension. Playlist entries are displayed with this name.
func BaseName(path string) string {
	return filepath.Base(path)
}
