package pdf

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/a3tai/mcp-house-extractor/internal/pdf/security"
)

// Search discovers listing PDFs under the configured directory
type Search struct {
	validator     *Validator
	pathValidator *security.PathValidator
}

// NewSearch creates a search rooted at the path validator's directory
func NewSearch(validator *Validator, pathValidator *security.PathValidator) *Search {
	return &Search{
		validator:     validator,
		pathValidator: pathValidator,
	}
}

// ListFiles walks the directory and returns the PDFs that pass the upload
// checks, in lexical order. Hidden directories are skipped.
func (s *Search) ListFiles(req ListFilesRequest) (*ListFilesResult, error) {
	root := s.pathValidator.GetConfiguredDirectory()
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("directory does not exist: %s", root)
	}

	query := strings.ToLower(strings.TrimSpace(req.Query))
	files := []FileInfo{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Continue walking even if we encounter an error with a specific file
			return nil
		}

		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), ".") || !s.pathValidator.IsPathWithinDirectory(path)) {
				return filepath.SkipDir
			}
			return nil
		}

		if req.Limit > 0 && len(files) >= req.Limit {
			return filepath.SkipAll
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), ".pdf") {
			return nil
		}
		if query != "" && !strings.Contains(strings.ToLower(d.Name()), query) {
			return nil
		}
		if !s.pathValidator.IsPathWithinDirectory(path) {
			return nil
		}

		info, err := s.validator.CheckFile(path)
		if err != nil {
			// Skip invalid files but continue processing
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		files = append(files, FileInfo{
			Path:         filepath.ToSlash(rel),
			Name:         info.Name(),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().UTC().Format(time.RFC3339),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	return &ListFilesResult{
		Files:      files,
		TotalCount: len(files),
		Directory:  root,
		Query:      req.Query,
	}, nil
}
