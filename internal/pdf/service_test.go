package pdf

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/a3tai/mcp-house-extractor/internal/config"
	"github.com/a3tai/mcp-house-extractor/internal/extraction"
	"github.com/a3tai/mcp-house-extractor/internal/pdf/pdftest"
	"github.com/a3tai/mcp-house-extractor/internal/pdf/security"
)

var listingLines = []string{
	"Price: $450,000",
	"Status: For Sale",
	"Bed: 4",
	"Bath: 3",
	"House Size: 2,480 sqft",
	"City: Springfield",
	"ZIP Code: 90210",
}

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.PDFDirectory = t.TempDir()

	svc, err := NewService(cfg, nil)
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc, cfg.PDFDirectory
}

func TestNewService(t *testing.T) {
	svc, dir := newTestService(t)

	assert.NotNil(t, svc.engine)
	assert.NotNil(t, svc.reader)
	assert.NotNil(t, svc.validator)
	assert.Equal(t, dir, svc.pathValidator.GetConfiguredDirectory())
	assert.Equal(t, int64(config.DefaultMaxFileSize), svc.ServerInfo().MaxFileSize)

	_, err := NewService(&config.Config{}, nil)
	assert.Error(t, err)
}

func TestService_ExtractHouseInfo(t *testing.T) {
	svc, dir := newTestService(t)
	pdftest.WriteListing(t, dir, "listing.pdf", listingLines...)

	report, err := svc.ExtractHouseInfo(ExtractFileRequest{Path: "listing.pdf"})
	require.NoError(t, err)
	require.True(t, report.Success, report.Error)

	_, err = uuid.Parse(report.ID)
	assert.NoError(t, err)

	fields := report.Data.Fields
	assert.Equal(t, extraction.FloatValue(450000), fields.Fields[extraction.FieldPrice])
	assert.Equal(t, extraction.IntValue(4), fields.Fields[extraction.FieldBed])
	assert.Equal(t, extraction.FloatValue(2480), fields.Fields[extraction.FieldHouseSize])
	assert.Equal(t, extraction.StringValue("Springfield"), fields.Fields[extraction.FieldCity])
	assert.Equal(t, extraction.StringValue("90210"), fields.Fields[extraction.FieldZipCode])

	assert.Equal(t, "2024-05-01T12:00:00Z", report.Data.ExtractionDate)
	assert.Equal(t, "listing.pdf", report.Metadata.FileName)
	assert.Equal(t, 1, report.Metadata.Pages)
	assert.Equal(t, fields.Confidence, report.Metadata.Confidence)
	assert.Positive(t, report.Metadata.TextLength)
}

func TestService_ExtractHouseInfo_RequestErrors(t *testing.T) {
	svc, dir := newTestService(t)
	pdftest.WriteFile(t, dir, "notes.txt", []byte("Price: $450,000"))

	_, err := svc.ExtractHouseInfo(ExtractFileRequest{Path: "../escape.pdf"})
	assert.ErrorIs(t, err, security.ErrOutsideDirectory)

	_, err = svc.ExtractHouseInfo(ExtractFileRequest{Path: "notes.txt"})
	assert.ErrorIs(t, err, ErrNotPDF)

	_, err = svc.ExtractHouseInfo(ExtractFileRequest{Path: "missing.pdf"})
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestService_ExtractHouseInfo_FailureReports(t *testing.T) {
	svc, dir := newTestService(t)
	pdftest.WriteFile(t, dir, "broken.pdf", []byte("not really a pdf"))
	pdftest.WriteListing(t, dir, "short.pdf", "Bed 4")

	report, err := svc.ExtractHouseInfo(ExtractFileRequest{Path: "broken.pdf"})
	require.NoError(t, err)
	assert.False(t, report.Success)
	assert.Nil(t, report.Data)
	assert.Equal(t, "TEXT_EXTRACTION", report.ErrorType)
	assert.Equal(t, "broken.pdf", report.Metadata.FileName)

	report, err = svc.ExtractHouseInfo(ExtractFileRequest{Path: filepath.Join(dir, "short.pdf")})
	require.NoError(t, err)
	assert.False(t, report.Success)
	assert.Equal(t, "INSUFFICIENT_TEXT", report.ErrorType)
	assert.Contains(t, report.Error, "could not extract text from document")
}

func TestService_ExtractHouseInfoFromText(t *testing.T) {
	svc, _ := newTestService(t)

	report := svc.ExtractHouseInfoFromText(ExtractTextRequest{
		Text:     strings.Join(listingLines, "\n"),
		FileName: "pasted",
	})
	require.True(t, report.Success)
	assert.Equal(t, "pasted", report.Metadata.FileName)
	assert.Zero(t, report.Metadata.Pages)
	assert.Equal(t, 58.3, report.Metadata.Confidence)

	report = svc.ExtractHouseInfoFromText(ExtractTextRequest{Text: "Bed 4"})
	assert.False(t, report.Success)
	assert.Equal(t, "INSUFFICIENT_TEXT", report.ErrorType)
}

func TestService_ReportJSON(t *testing.T) {
	svc, _ := newTestService(t)
	report := svc.ExtractHouseInfoFromText(ExtractTextRequest{Text: "Listing Price: $450,000 and more", FileName: "a.pdf"})

	out, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, true, decoded["success"])

	data := decoded["data"].(map[string]interface{})
	fields := data["fields"].(map[string]interface{})
	assert.Equal(t, 450000.0, fields["price"])
	assert.Equal(t, 8.3, fields["confidence"])
	assert.Contains(t, string(out), `"price":450000.0`)

	metadata := decoded["metadata"].(map[string]interface{})
	assert.Equal(t, "a.pdf", metadata["file_name"])
	assert.NotContains(t, decoded, "error")
}

func TestService_FailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	cfg := config.DefaultConfig()
	cfg.PDFDirectory = t.TempDir()

	svc, err := NewService(cfg, zap.New(core))
	require.NoError(t, err)

	svc.ExtractHouseInfoFromText(ExtractTextRequest{Text: "tiny", FileName: "tiny.pdf"})
	entries := logs.FilterMessage("extraction failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "INSUFFICIENT_TEXT", entries[0].ContextMap()["error_type"])
}

func TestService_ValidateFile(t *testing.T) {
	svc, dir := newTestService(t)
	pdftest.WriteListing(t, dir, "listing.pdf", listingLines...)

	result, err := svc.ValidateFile(ValidateFileRequest{Path: "listing.pdf"})
	require.NoError(t, err)
	assert.True(t, result.Valid, result.Message)
	assert.Equal(t, filepath.Join(dir, "listing.pdf"), result.Path)

	_, err = svc.ValidateFile(ValidateFileRequest{Path: "/etc/hosts"})
	assert.ErrorIs(t, err, security.ErrOutsideDirectory)
}

func TestService_ServerInfo(t *testing.T) {
	svc, dir := newTestService(t)
	info := svc.ServerInfo()

	assert.Equal(t, "mcp-house-extractor", info.ServerName)
	assert.Equal(t, "healthy", info.Status)
	assert.Equal(t, dir, info.Directory)
	assert.Equal(t, config.DefaultMinTextLength, info.MinTextLength)
	assert.Len(t, info.Fields, extraction.CanonicalFieldCount)
	assert.Equal(t, "price", info.Fields[0])
	assert.Len(t, info.Rules, len(extraction.DefaultRules()))
	assert.Equal(t, RuleInfo{Name: "price_currency_symbol", Field: "price", ValueType: "currency"}, info.Rules[0])
	assert.Equal(t, []string{"price", "bed", "house_size"}, info.FallbackFields)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", preview("short", 500))
	assert.Equal(t, "abc...", preview("abcdef", 3))
	assert.Equal(t, "ééé...", preview("éééé", 3))
	assert.Equal(t, "...", preview("abc", 0))
	assert.Equal(t, "", preview("", 0))

	long := strings.Repeat("x", 600)
	got := preview(long, 500)
	assert.Len(t, got, 503)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestService_ListFiles(t *testing.T) {
	svc, dir := newTestService(t)
	pdftest.WriteListing(t, dir, "listing.pdf", listingLines...)

	result, err := svc.ListFiles(ListFilesRequest{})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	// Listed paths feed straight back into extraction
	report, err := svc.ExtractHouseInfo(ExtractFileRequest{Path: result.Files[0].Path})
	require.NoError(t, err)
	assert.True(t, report.Success)
}
