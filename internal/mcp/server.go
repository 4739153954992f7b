package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/a3tai/mcp-house-extractor/internal/config"
	"github.com/a3tai/mcp-house-extractor/internal/descriptions"
	"github.com/a3tai/mcp-house-extractor/internal/pdf"
)

const shutdownTimeout = 5 * time.Second

// Server represents the MCP server instance
type Server struct {
	config     *config.Config
	pdfService *pdf.Service
	mcpServer  *server.MCPServer
	logger     *zap.Logger

	stdin  io.Reader
	stdout io.Writer
}

// NewServer creates a new MCP server instance. A nil logger disables logging.
func NewServer(cfg *config.Config, pdfService *pdf.Service, logger *zap.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if pdfService == nil {
		return nil, fmt.Errorf("pdfService cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:     cfg,
		pdfService: pdfService,
		mcpServer:  mcpServer,
		logger:     logger.Named("mcp"),
		stdin:      os.Stdin,
		stdout:     os.Stdout,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	extractFileTool := mcp.NewTool(
		descriptions.ToolExtractFile,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolExtractFile)),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the listing PDF, absolute or relative to the listing directory"),
		),
	)
	s.mcpServer.AddTool(extractFileTool, s.handleExtractFile)

	extractTextTool := mcp.NewTool(
		descriptions.ToolExtractText,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolExtractText)),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Listing text to extract fields from"),
		),
		mcp.WithString("file_name",
			mcp.Description("Optional name recorded in the report metadata"),
		),
	)
	s.mcpServer.AddTool(extractTextTool, s.handleExtractText)

	validateFileTool := mcp.NewTool(
		descriptions.ToolValidateFile,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolValidateFile)),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(validateFileTool, s.handleValidateFile)

	listFilesTool := mcp.NewTool(
		descriptions.ToolListFiles,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolListFiles)),
		mcp.WithString("query",
			mcp.Description("Optional case-insensitive file name filter"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of files to return, 0 for all"),
		),
	)
	s.mcpServer.AddTool(listFilesTool, s.handleListFiles)

	serverInfoTool := mcp.NewTool(
		descriptions.ToolServerInfo,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolServerInfo)),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// Handler functions
func (s *Server) handleExtractFile(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := s.pdfService.ExtractHouseInfo(pdf.ExtractFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return reportResult(report)
}

func (s *Server) handleExtractText(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := pdf.ExtractTextRequest{
		Text:     text,
		FileName: request.GetString("file_name", ""),
	}

	return reportResult(s.pdfService.ExtractHouseInfoFromText(req))
}

func (s *Server) handleValidateFile(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.ValidateFile(pdf.ValidateFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(result)
}

func (s *Server) handleListFiles(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 0)
	if limit < 0 {
		return mcp.NewToolResultError("limit cannot be negative"), nil
	}

	result, err := s.pdfService.ListFiles(pdf.ListFilesRequest{
		Query: request.GetString("query", ""),
		Limit: limit,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(result)
}

func (s *Server) handleServerInfo(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.pdfService.ServerInfo())
}

// reportResult renders a report as JSON, flagging failed extractions as tool errors
func reportResult(report *pdf.HouseInfoReport) (*mcp.CallToolResult, error) {
	result, err := jsonResult(report)
	if err != nil {
		return nil, err
	}
	result.IsError = !report.Success
	return result, nil
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// Run starts the MCP server in the configured mode and blocks until ctx is
// canceled or the transport fails.
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode serves MCP over stdin/stdout
func (s *Server) runStdioMode(ctx context.Context) error {
	s.logger.Debug("starting MCP server in stdio mode",
		zap.String("directory", s.config.PDFDirectory))

	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(zap.NewStdLog(s.logger))

	err := stdio.Listen(ctx, s.stdin, s.stdout)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode serves MCP over HTTP with server-sent events
func (s *Server) runServerMode(ctx context.Context) error {
	addr := s.config.Address()
	sse := server.NewSSEServer(s.mcpServer, server.WithBaseURL("http://"+addr))

	errCh := make(chan error, 1)
	go func() {
		errCh <- sse.Start(addr)
	}()

	s.logger.Info("MCP server listening",
		zap.String("address", addr),
		zap.String("directory", s.config.PDFDirectory))

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to serve SSE: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := sse.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down SSE server: %w", err)
		}
		s.logger.Info("MCP server stopped")
		return nil
	}
}
