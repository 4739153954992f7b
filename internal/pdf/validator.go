package pdf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// File check failures, for errors.Is
var (
	ErrNotPDF       = errors.New("file is not a PDF")
	ErrFileTooLarge = errors.New("file too large")
	ErrEmptyFile    = errors.New("file is empty")
	ErrIsDirectory  = errors.New("path is a directory, not a file")
	ErrFileNotFound = errors.New("file does not exist")
)

// Validator handles PDF file validation operations
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a new PDF validator with the specified constraints
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{
		maxFileSize: maxFileSize,
	}
}

// ValidateFile checks that path is an acceptable upload and that pdfcpu can
// read its structure. Problems are reported in the result, not as errors.
func (v *Validator) ValidateFile(req ValidateFileRequest) (*ValidateFileResult, error) {
	result := &ValidateFileResult{
		Path:  req.Path,
		Valid: false,
	}

	info, err := v.CheckFile(req.Path)
	if err != nil {
		result.Message = err.Error()
		return result, nil //nolint:nilerr // Return result with validation error, not a processing error
	}
	result.Size = info.Size()

	pages, encrypted, err := inspect(req.Path)
	if err != nil {
		result.Message = fmt.Sprintf("invalid PDF file: %v", err)
		return result, nil //nolint:nilerr // Return result with validation error, not a processing error
	}

	result.Valid = true
	result.Pages = pages
	result.Encrypted = encrypted
	return result, nil
}

// CheckFile performs the cheap upload checks (extension, size, not empty)
// without parsing the document.
func (v *Validator) CheckFile(path string) (os.FileInfo, error) {
	return checkFile(path, v.maxFileSize)
}

func checkFile(path string, maxFileSize int64) (os.FileInfo, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil, fmt.Errorf("%w: %s", ErrNotPDF, path)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("%w: %d bytes (max: %d bytes)", ErrFileTooLarge, info.Size(), maxFileSize)
	}

	return info, nil
}

// inspect reads the document structure with pdfcpu in relaxed mode
func inspect(path string) (pages int, encrypted bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false, err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		return 0, false, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return 0, false, fmt.Errorf("failed to ensure page count: %w", err)
	}

	return ctx.PageCount, ctx.Encrypt != nil, nil
}
