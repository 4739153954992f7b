package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"go.uber.org/zap"

	"github.com/a3tai/mcp-house-extractor/internal/config"
	"github.com/a3tai/mcp-house-extractor/internal/logging"
	"github.com/a3tai/mcp-house-extractor/internal/mcp"
	"github.com/a3tai/mcp-house-extractor/internal/pdf"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "house-extractor: %v\n", err)
		os.Exit(1)
	}
}

// run loads the configuration from args and serves MCP until ctx is canceled
func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := config.NewFlagSet("house-extractor")
	cfg, err := config.Load(fs, args)
	if errors.Is(err, config.ErrVersionRequested) {
		printVersion(stdout)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	logger, closeLogger, err := logging.New(logging.FromAppConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer func() { _ = closeLogger() }()

	logger.Debug("starting", zap.Stringer("config", cfg))

	pdfService, err := pdf.NewService(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create PDF service: %w", err)
	}

	server, err := mcp.NewServer(cfg, pdfService, logger)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	if err := server.Run(ctx); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		return err
	}
	return nil
}

// printVersion prints version information
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "MCP House Extractor\n")
	fmt.Fprintf(w, "Version: %s\n", version)
	fmt.Fprintf(w, "Build Time: %s\n", buildTime)
	fmt.Fprintf(w, "Git Commit: %s\n", gitCommit)
	fmt.Fprintf(w, "Built with: %s\n", runtime.Version())
}
