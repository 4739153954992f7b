// Package security keeps document access inside the configured listing
// directory.
package security

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrOutsideDirectory is returned for paths that escape the configured directory
var ErrOutsideDirectory = errors.New("path is outside configured directory")

// PathValidator provides security validation for file paths
type PathValidator struct {
	configuredDirectory string
}

// NewPathValidator creates a new path validator for the given directory
func NewPathValidator(configuredDirectory string) (*PathValidator, error) {
	if configuredDirectory == "" {
		return nil, fmt.Errorf("configured directory cannot be empty")
	}

	abs, err := filepath.Abs(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve configured directory: %w", err)
	}

	return &PathValidator{configuredDirectory: filepath.Clean(abs)}, nil
}

// Resolve turns a caller-supplied path into an absolute path inside the
// configured directory. Relative paths are taken relative to that directory.
func (v *PathValidator) Resolve(path string) (string, error) {
	path = strings.ReplaceAll(path, "\x00", "")
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(v.configuredDirectory, path)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	if !v.IsPathWithinDirectory(absPath) {
		return "", fmt.Errorf("%w: %s", ErrOutsideDirectory, path)
	}
	return absPath, nil
}

// IsPathWithinDirectory reports whether path, and the file it points to after
// following symlinks, both lie inside the configured directory.
func (v *PathValidator) IsPathWithinDirectory(path string) bool {
	cleanPath := filepath.Clean(path)
	roots := []string{v.configuredDirectory}
	if real, err := filepath.EvalSymlinks(v.configuredDirectory); err == nil && real != v.configuredDirectory {
		roots = append(roots, real)
	}

	if !within(cleanPath, roots) {
		return false
	}

	// A symlink inside the directory must not lead out of it
	if real, err := filepath.EvalSymlinks(cleanPath); err == nil {
		return within(real, roots)
	}
	return true
}

// GetConfiguredDirectory returns the configured directory path
func (v *PathValidator) GetConfiguredDirectory() string {
	return v.configuredDirectory
}

func within(path string, roots []string) bool {
	for _, root := range roots {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			continue
		}
		if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
			return true
		}
	}
	return false
}
