// src/security/validation/path_validation.go
package validation

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dogwood008/kabucom-pl-calendar/src/logger"
)

// ErrPathOutsideRoot marks a CSV path that escapes the permitted data
// directory. Unlike data-quality problems, this is a security boundary and is
// surfaced to the caller instead of degrading to an empty result.
var ErrPathOutsideRoot = errors.New("csv path resolves outside the permitted data directory")

// ResolveCsvPath resolves a user-supplied CSV path against the sandbox root.
// Relative paths are joined to the root; absolute paths are accepted only when
// they already point inside it. The check runs before any file I/O.
func ResolveCsvPath(root, userPath string) (string, error) {
	trimmed := strings.TrimSpace(userPath)
	if trimmed == "" {
		return "", fmt.Errorf("csv path is empty")
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving csv data directory: %w", err)
	}

	candidate := trimmed
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(absRoot, candidate)
	}
	absCandidate, err := filepath.Abs(candidate)
	if err != nil {
		return "", fmt.Errorf("resolving csv path: %w", err)
	}

	rel, err := filepath.Rel(absRoot, absCandidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		logger.L.Warn("Rejected csv path outside data directory", "path", userPath)
		return "", ErrPathOutsideRoot
	}

	return absCandidate, nil
}
