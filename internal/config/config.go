package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Default values
	DefaultPort              = 8080
	DefaultHost              = "127.0.0.1"
	DefaultLogLevel          = "info"
	DefaultMaxFileSize       = 100 * 1024 * 1024 // 100MB
	DefaultMaxTextLength     = 10 * 1024 * 1024  // 10MB
	DefaultMinTextLength     = 10
	DefaultTextPreviewLength = 500

	// EnvPrefix is prepended to every environment variable, e.g. HOUSE_EXTRACT_PORT
	EnvPrefix = "HOUSE_EXTRACT"

	// Directory permissions
	DefaultDirPerm = 0o750
)

// ErrVersionRequested is returned by Load when --version was passed
var ErrVersionRequested = errors.New("version requested")

// Config holds all configuration for the house extractor
type Config struct {
	// Server configuration
	Mode string // "server" or "stdio"
	Host string
	Port int

	// Document configuration
	PDFDirectory string
	MaxFileSize  int64 // Maximum PDF file size in bytes

	// Extraction configuration
	MaxTextLength     int // bytes of text handed to the engine
	MinTextLength     int // characters below which text counts as an extraction failure
	TextPreviewLength int // characters of text echoed back in reports

	// Application configuration
	Version    string
	ServerName string
	LogLevel   string
	LogFile    string // optional rotated log file, in addition to stderr
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Mode:              ModeStdio, // Default to stdio mode for MCP compatibility
		Host:              DefaultHost,
		Port:              DefaultPort,
		PDFDirectory:      currentDir,
		MaxFileSize:       DefaultMaxFileSize,
		MaxTextLength:     DefaultMaxTextLength,
		MinTextLength:     DefaultMinTextLength,
		TextPreviewLength: DefaultTextPreviewLength,
		Version:           "1.0.0",
		ServerName:        "mcp-house-extractor",
		LogLevel:          DefaultLogLevel,
	}
}

// NewFlagSet returns a flag set carrying every configuration flag. Callers may
// add their own flags before handing it to Load.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	defineFlags(fs, DefaultConfig())
	return fs
}

// LoadFromFlags parses the process command line and returns a configuration
func LoadFromFlags() (*Config, error) {
	fs := NewFlagSet(os.Args[0])
	setupUsageMessage(fs)
	return Load(fs, os.Args[1:])
}

// Load parses args into fs and resolves the configuration with the precedence
// flag > HOUSE_EXTRACT_* environment variable > default.
func Load(fs *pflag.FlagSet, args []string) (*Config, error) {
	if err := checkVersionFlag(args); err != nil {
		return nil, err
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := newViper()
	if err := bindFlags(v, fs); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	populateConfig(v, cfg)

	if cfg.PDFDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.PDFDirectory); err == nil {
			cfg.PDFDirectory = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// configKeys maps each viper key to its flag name
var configKeys = []string{
	"mode",
	"host",
	"port",
	"dir",
	"loglevel",
	"logfile",
	"maxfilesize",
	"maxtextlength",
	"mintextlength",
	"previewlength",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// defineFlags sets up all command line flags
func defineFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.String("mode", cfg.Mode, "Server mode: 'stdio' for MCP standard I/O, 'server' for HTTP/SSE server")
	fs.String("host", cfg.Host, "Server host address (server mode only)")
	fs.Int("port", cfg.Port, "Server port (server mode only)")
	fs.String("dir", cfg.PDFDirectory, "Directory containing listing PDFs")
	fs.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.String("logfile", cfg.LogFile, "Also write logs to this file, rotated by size")
	fs.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
	fs.Int("maxtextlength", cfg.MaxTextLength, "Maximum bytes of document text passed to the extractor")
	fs.Int("mintextlength", cfg.MinTextLength, "Minimum characters of text for a document to be processed")
	fs.Int("previewlength", cfg.TextPreviewLength, "Characters of document text included in reports")
}

// bindFlags binds every configuration flag to v
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, key := range configKeys {
		flag := fs.Lookup(key)
		if flag == nil {
			return fmt.Errorf("flag %q is not defined", key)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding flag %q: %w", key, err)
		}
	}
	return nil
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage(fs *pflag.FlagSet) {
	name := fs.Name()
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", name)
		fmt.Fprintf(os.Stderr, "\nMCP House Extractor - pulls real-estate listing fields out of PDF documents\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                          "+
			"# stdio mode, current directory (default)\n", name)
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/listings                  "+
			"# stdio mode with custom directory\n", name)
		fmt.Fprintf(os.Stderr, "  %s --mode=server --dir=/path/to/listings    # server mode\n", name)
		fmt.Fprintf(os.Stderr, "  %s --mode=server --host=0.0.0.0 --port=8081 # server on all interfaces\n", name)
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		for _, key := range configKeys {
			fmt.Fprintf(os.Stderr, "  %s_%s\n", EnvPrefix, strings.ToUpper(key))
		}
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag(args []string) error {
	for _, arg := range args {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return ErrVersionRequested
		}
	}
	return nil
}

// populateConfig fills the config struct with values from viper
func populateConfig(v *viper.Viper, cfg *Config) {
	cfg.Mode = v.GetString("mode")
	cfg.Host = v.GetString("host")
	cfg.Port = v.GetInt("port")
	cfg.PDFDirectory = v.GetString("dir")
	cfg.LogLevel = v.GetString("loglevel")
	cfg.LogFile = v.GetString("logfile")
	cfg.MaxFileSize = v.GetInt64("maxfilesize")
	cfg.MaxTextLength = v.GetInt("maxtextlength")
	cfg.MinTextLength = v.GetInt("mintextlength")
	cfg.TextPreviewLength = v.GetInt("previewlength")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	// Port only matters when listening
	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.PDFDirectory == "" {
		return errors.New("PDF directory cannot be empty")
	}

	// Check if PDF directory exists, create if it doesn't
	if _, err := os.Stat(c.PDFDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.PDFDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create PDF directory %s: %w", c.PDFDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access PDF directory %s: %w", c.PDFDirectory, err)
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}
	if c.MaxTextLength <= 0 {
		return errors.New("maximum text length must be positive")
	}
	if c.MinTextLength < 0 {
		return errors.New("minimum text length cannot be negative")
	}
	if c.TextPreviewLength < 0 {
		return errors.New("text preview length cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, PDFDirectory: %s, LogLevel: %s, MaxFileSize: %d, "+
		"MaxTextLength: %d, MinTextLength: %d}",
		c.Mode, c.Host, c.Port, c.PDFDirectory, c.LogLevel, c.MaxFileSize, c.MaxTextLength, c.MinTextLength)
}

// IsServerMode returns true if the server is running in HTTP server mode
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if the server is running in stdio mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
