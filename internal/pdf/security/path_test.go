package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPathValidator(t *testing.T) {
	_, err := NewPathValidator("")
	assert.Error(t, err)

	v, err := NewPathValidator("relative/listings")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(v.GetConfiguredDirectory()))
}

func TestPathValidator_Resolve(t *testing.T) {
	dir := t.TempDir()
	v, err := NewPathValidator(dir)
	require.NoError(t, err)

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr error
	}{
		{name: "absolute inside", path: filepath.Join(dir, "a.pdf"), want: filepath.Join(dir, "a.pdf")},
		{name: "relative to directory", path: "listings/a.pdf", want: filepath.Join(dir, "listings", "a.pdf")},
		{name: "directory itself", path: dir, want: dir},
		{name: "dotted file name", path: "..a.pdf", want: filepath.Join(dir, "..a.pdf")},
		{name: "null bytes stripped", path: "a\x00.pdf", want: filepath.Join(dir, "a.pdf")},
		{name: "parent traversal", path: "../outside.pdf", wantErr: ErrOutsideDirectory},
		{name: "absolute outside", path: "/etc/passwd", wantErr: ErrOutsideDirectory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Resolve(tt.path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = v.Resolve("   ")
	assert.Error(t, err)
	_, err = v.Resolve("\x00")
	assert.Error(t, err)
}

func TestPathValidator_SymlinkEscape(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()
	target := filepath.Join(outside, "secret.pdf")
	require.NoError(t, os.WriteFile(target, []byte("%PDF-1.4"), 0o600))

	link := filepath.Join(dir, "link.pdf")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	v, err := NewPathValidator(dir)
	require.NoError(t, err)

	assert.False(t, v.IsPathWithinDirectory(link))
	_, err = v.Resolve(link)
	assert.ErrorIs(t, err, ErrOutsideDirectory)
}

func TestPathValidator_SymlinkInside(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.pdf")
	require.NoError(t, os.WriteFile(target, []byte("%PDF-1.4"), 0o600))

	link := filepath.Join(dir, "alias.pdf")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	v, err := NewPathValidator(dir)
	require.NoError(t, err)
	got, err := v.Resolve(link)
	require.NoError(t, err)
	assert.Equal(t, link, got)
}
