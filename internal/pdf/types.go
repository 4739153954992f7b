package pdf

import (
	"github.com/a3tai/mcp-house-extractor/internal/extraction"
)

// Request Types

// ExtractFileRequest represents a request to extract listing fields from a PDF file
type ExtractFileRequest struct {
	Path string `json:"path"`
}

// ExtractTextRequest represents a request to extract listing fields from text
// the caller already holds
type ExtractTextRequest struct {
	Text     string `json:"text"`
	FileName string `json:"file_name,omitempty"`
}

// ValidateFileRequest represents a request to validate a PDF file
type ValidateFileRequest struct {
	Path string `json:"path"`
}

// ListFilesRequest filters the listing PDFs returned by ListFiles
type ListFilesRequest struct {
	Query string `json:"query,omitempty"` // case-insensitive file name substring
	Limit int    `json:"limit,omitempty"` // 0 means no limit
}

// Response Types

// TextContent is the plain text of a PDF document
type TextContent struct {
	Text  string `json:"text"`
	Path  string `json:"path"`
	Pages int    `json:"pages"`
	Size  int64  `json:"size"`
}

// HouseInfoReport is the outcome of processing one document. Exactly one of
// Data or Error is set, as selected by Success.
type HouseInfoReport struct {
	ID        string         `json:"id"`
	Success   bool           `json:"success"`
	Data      *ReportData    `json:"data,omitempty"`
	Metadata  ReportMetadata `json:"metadata"`
	Error     string         `json:"error,omitempty"`
	ErrorType string         `json:"error_type,omitempty"`
}

// ReportData carries the extracted fields
type ReportData struct {
	Fields         *extraction.Result `json:"fields"`
	ExtractionDate string             `json:"extraction_date"`
	TextPreview    string             `json:"text_preview"`
}

// ReportMetadata describes the processed document
type ReportMetadata struct {
	TextLength int     `json:"text_length"`
	FileName   string  `json:"file_name"`
	Pages      int     `json:"pages,omitempty"`
	Confidence float64 `json:"confidence"`
}

// ValidateFileResult represents the result of a PDF validation operation
type ValidateFileResult struct {
	Valid     bool   `json:"valid"`
	Path      string `json:"path"`
	Size      int64  `json:"size,omitempty"`
	Pages     int    `json:"pages,omitempty"`
	Encrypted bool   `json:"encrypted,omitempty"`
	Message   string `json:"message,omitempty"`
}

// FileInfo describes a listing PDF. Path is relative to the configured
// directory and can be passed back to the extraction tools.
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// ListFilesResult represents the listing PDFs found in the directory
type ListFilesResult struct {
	Files      []FileInfo `json:"files"`
	TotalCount int        `json:"total_count"`
	Directory  string     `json:"directory"`
	Query      string     `json:"query,omitempty"`
}

// RuleInfo describes one entry of the primary rule table
type RuleInfo struct {
	Name      string `json:"name"`
	Field     string `json:"field"`
	ValueType string `json:"value_type"`
}

// ServerInfoResult describes the extractor and the fields it can produce. It
// doubles as a health check.
type ServerInfoResult struct {
	ServerName     string     `json:"server_name"`
	Version        string     `json:"version"`
	Status         string     `json:"status"`
	Directory      string     `json:"directory"`
	MaxFileSize    int64      `json:"max_file_size"`
	MinTextLength  int        `json:"min_text_length"`
	Fields         []string   `json:"fields"`
	Rules          []RuleInfo `json:"rules"`
	FallbackFields []string   `json:"fallback_fields"`
}
