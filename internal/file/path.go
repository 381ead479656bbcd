package file

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Info describes one file inside the torrent's contiguous byte space
type Info struct {
	Path   string // Relative path from torrent root
	Size   int64  // File length in bytes
	Offset int64  // Cumulative offset in torrent data
}

// ValidatePath checks if the path segments are safe to join under a root
func ValidatePath(segments []string) error {
	if len(segments) == 0 {
		return errors.New("file path cannot be empty")
	}

	for i, component := range segments {
		if component == "" {
			return fmt.Errorf("empty path component at index %d", i)
		}
		if component == "." || component == ".." {
			return fmt.Errorf("invalid path component: %s", component)
		}
		if strings.ContainsAny(component, "/\\\x00") {
			return fmt.Errorf("invalid characters in path component: %q", component)
		}
	}

	return nil
}

// JoinPath validates segments and joins them into one relative path
func JoinPath(segments []string) (string, error) {
	if err := ValidatePath(segments); err != nil {
		return "", err
	}
	return filepath.Join(segments...), nil
}
