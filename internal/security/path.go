package security

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateFilePath rejects paths with directory traversal components.
// Absolute paths are allowed; the config and database paths are operator
// supplied and commonly absolute in container deployments.
func ValidateFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("file path cannot be empty")
	}

	cleaned := filepath.Clean(path)
	for _, part := range strings.Split(cleaned, string(filepath.Separator)) {
		if part == ".." {
			return fmt.Errorf("path contains directory traversal: %s", path)
		}
	}

	return nil
}

// ValidateArchiveName validates a member name from an uploaded archive.
// Archive members must stay relative and traversal free.
func ValidateArchiveName(name string) error {
	if name == "" {
		return fmt.Errorf("archive member name cannot be empty")
	}
	if filepath.IsAbs(name) {
		return fmt.Errorf("absolute archive member name not allowed: %s", name)
	}
	cleaned := filepath.Clean(name)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("archive member escapes archive root: %s", name)
	}
	return nil
}
