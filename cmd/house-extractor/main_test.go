package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVersion = "1.2.3"

func setVersion(t *testing.T, v, built, commit string) {
	t.Helper()
	oldVersion, oldBuildTime, oldGitCommit := version, buildTime, gitCommit
	version, buildTime, gitCommit = v, built, commit
	t.Cleanup(func() {
		version, buildTime, gitCommit = oldVersion, oldBuildTime, oldGitCommit
	})
}

func TestPrintVersion(t *testing.T) {
	setVersion(t, testVersion, "2024-05-01_10:30:00", "abc123")

	var buf bytes.Buffer
	printVersion(&buf)

	output := buf.String()
	for _, expected := range []string{
		"MCP House Extractor",
		"Version: " + testVersion,
		"Build Time: 2024-05-01_10:30:00",
		"Git Commit: abc123",
		"Built with:",
	} {
		assert.Contains(t, output, expected)
	}
}

func TestPrintVersionWithDefaults(t *testing.T) {
	setVersion(t, "dev", "unknown", "unknown")

	var buf bytes.Buffer
	printVersion(&buf)

	assert.Contains(t, buf.String(), "Version: dev")
	assert.Contains(t, buf.String(), "Git Commit: unknown")
}

func TestRun_VersionFlag(t *testing.T) {
	setVersion(t, testVersion, "unknown", "unknown")

	for _, flag := range []string{"--version", "-version", "-v"} {
		t.Run(flag, func(t *testing.T) {
			var buf bytes.Buffer
			err := run(context.Background(), []string{"--mode=server", flag}, &buf)
			require.NoError(t, err)
			assert.Contains(t, buf.String(), "Version: "+testVersion)
		})
	}
}

func TestRun_InvalidConfiguration(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown mode", []string{"--dir=" + dir, "--mode=websocket"}},
		{"bad log level", []string{"--dir=" + dir, "--loglevel=trace"}},
		{"negative min length", []string{"--dir=" + dir, "--mintextlength=-1"}},
		{"unknown flag", []string{"--dir=" + dir, "--bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := run(context.Background(), tt.args, &buf)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to load configuration")
			assert.Empty(t, buf.String())
		})
	}
}
