package corpus

import (
	"fmt"
	"path/filepath"
)

// Scan enumerates candidate audio files across the dataset's sharded
// layout: folderCount subfolders named with zero-padded 3-digit numbers,
// each holding files of one extension. Folders are visited in ascending
// numeric order; within one folder the glob's lexical order applies.
// A missing or unreadable folder simply contributes no paths.
func Scan(root string, folderCount int, ext string) []string {
	var paths []string
	for i := 0; i < folderCount; i++ {
		pattern := filepath.Join(root, fmt.Sprintf("%03d", i), "*"+ext)
		matches, err := filepath.Glob(pattern)
		if err != nil {
			// only reachable with a malformed pattern
			continue
		}
		paths = append(paths, matches...)
	}
	return paths
}
