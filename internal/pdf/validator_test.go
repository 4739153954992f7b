package pdf

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-house-extractor/internal/pdf/pdftest"
)

func TestValidator_ValidateFile(t *testing.T) {
	dir := t.TempDir()
	valid := pdftest.WriteListing(t, dir, "listing.pdf", "Price: $450,000")
	upper := pdftest.WriteListing(t, dir, "LISTING.PDF", "Price: $450,000")
	garbage := pdftest.WriteFile(t, dir, "garbage.pdf", []byte("definitely not a pdf"))
	notPDF := pdftest.WriteFile(t, dir, "listing.docx", []byte("Price: $450,000"))
	empty := pdftest.WriteFile(t, dir, "empty.pdf", nil)

	tests := []struct {
		name      string
		path      string
		wantValid bool
	}{
		{name: "valid", path: valid, wantValid: true},
		{name: "upper case extension", path: upper, wantValid: true},
		{name: "garbage", path: garbage},
		{name: "wrong extension", path: notPDF},
		{name: "empty", path: empty},
		{name: "missing", path: filepath.Join(dir, "missing.pdf")},
		{name: "no path", path: ""},
	}

	v := NewValidator(1024 * 1024)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := v.ValidateFile(ValidateFileRequest{Path: tt.path})
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, result.Valid, result.Message)
			assert.Equal(t, tt.path, result.Path)
			if tt.wantValid {
				assert.Equal(t, 1, result.Pages)
				assert.False(t, result.Encrypted)
				assert.Empty(t, result.Message)
			} else {
				assert.NotEmpty(t, result.Message)
			}
		})
	}
}

func TestValidator_CheckFile(t *testing.T) {
	dir := t.TempDir()
	path := pdftest.WriteListing(t, dir, "listing.pdf", "Bed: 4")

	info, err := NewValidator(1024 * 1024).CheckFile(path)
	require.NoError(t, err)
	assert.Equal(t, "listing.pdf", info.Name())

	_, err = NewValidator(16).CheckFile(path)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}
