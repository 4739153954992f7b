package pdf

import (
	"fmt"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/a3tai/mcp-house-extractor/internal/config"
	"github.com/a3tai/mcp-house-extractor/internal/extraction"
	"github.com/a3tai/mcp-house-extractor/internal/pdf/security"
)

// previewSuffix marks a preview that was cut short
const previewSuffix = "..."

// Service turns listing documents into extraction reports by orchestrating the
// reader, validator and extraction engine.
type Service struct {
	cfg           *config.Config
	logger        *zap.Logger
	engine        *extraction.Engine
	reader        *Reader
	validator     *Validator
	pathValidator *security.PathValidator
	search        *Search
	now           func() time.Time
}

// NewService creates a new service from cfg. A nil logger disables logging.
func NewService(cfg *config.Config, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pathValidator, err := security.NewPathValidator(cfg.PDFDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	engine := extraction.NewEngine(
		extraction.WithLogger(logger),
		extraction.WithMinTextLength(cfg.MinTextLength),
		extraction.WithMaxTextLength(cfg.MaxTextLength),
	)

	validator := NewValidator(cfg.MaxFileSize)

	return &Service{
		cfg:           cfg,
		logger:        logger.Named("pdf"),
		engine:        engine,
		reader:        NewReader(cfg.MaxFileSize, cfg.MaxTextLength),
		validator:     validator,
		pathValidator: pathValidator,
		search:        NewSearch(validator, pathValidator),
		now:           time.Now,
	}, nil
}

// ExtractHouseInfo processes the PDF at req.Path. Requests for files outside
// the configured directory, or that fail the upload checks, return an error.
// Once a document is accepted every outcome is a report; failures have
// Success set to false and carry the error text and type.
func (s *Service) ExtractHouseInfo(req ExtractFileRequest) (*HouseInfoReport, error) {
	path, err := s.pathValidator.Resolve(req.Path)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	if _, err := s.validator.CheckFile(path); err != nil {
		return nil, err
	}

	fileName := filepath.Base(path)
	content, err := s.reader.ExtractText(path)
	if err != nil {
		return s.failure(fileName, err), nil
	}

	return s.report(content.Text, fileName, content.Pages), nil
}

// ExtractHouseInfoFromText processes text the caller already extracted
func (s *Service) ExtractHouseInfoFromText(req ExtractTextRequest) *HouseInfoReport {
	return s.report(req.Text, req.FileName, 0)
}

// ValidateFile performs validation on a PDF file
func (s *Service) ValidateFile(req ValidateFileRequest) (*ValidateFileResult, error) {
	path, err := s.pathValidator.Resolve(req.Path)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	req.Path = path
	return s.validator.ValidateFile(req)
}

// ListFiles returns the listing PDFs in the configured directory
func (s *Service) ListFiles(req ListFilesRequest) (*ListFilesResult, error) {
	return s.search.ListFiles(req)
}

// ServerInfo describes the extractor's configuration and field catalog
func (s *Service) ServerInfo() *ServerInfoResult {
	fields := extraction.CanonicalFields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.String()
	}

	rules := s.engine.Rules()
	ruleInfo := make([]RuleInfo, len(rules))
	for i, r := range rules {
		ruleInfo[i] = RuleInfo{Name: r.Name, Field: r.Field.String(), ValueType: r.ValueType.String()}
	}

	fallbacks := extraction.FallbackFields()
	fallbackNames := make([]string, len(fallbacks))
	for i, f := range fallbacks {
		fallbackNames[i] = f.String()
	}

	return &ServerInfoResult{
		ServerName:     s.cfg.ServerName,
		Version:        s.cfg.Version,
		Status:         "healthy",
		Directory:      s.pathValidator.GetConfiguredDirectory(),
		MaxFileSize:    s.cfg.MaxFileSize,
		MinTextLength:  s.engine.MinTextLength(),
		Fields:         names,
		Rules:          ruleInfo,
		FallbackFields: fallbackNames,
	}
}

// report runs the engine over text and wraps the outcome
func (s *Service) report(text, fileName string, pages int) *HouseInfoReport {
	result, err := s.engine.Extract(text)
	if err != nil {
		return s.failure(fileName, err)
	}

	s.logger.Info("extracted listing",
		zap.String("file", fileName),
		zap.Int("fields_found", result.Len()),
		zap.Float64("confidence", result.Confidence))

	return &HouseInfoReport{
		ID:      uuid.NewString(),
		Success: true,
		Data: &ReportData{
			Fields:         result,
			ExtractionDate: s.now().UTC().Format(time.RFC3339),
			TextPreview:    preview(text, s.cfg.TextPreviewLength),
		},
		Metadata: ReportMetadata{
			TextLength: utf8.RuneCountInString(text),
			FileName:   fileName,
			Pages:      pages,
			Confidence: result.Confidence,
		},
	}
}

func (s *Service) failure(fileName string, err error) *HouseInfoReport {
	errType := extraction.ClassifyError(err)
	s.logger.Warn("extraction failed",
		zap.String("file", fileName),
		zap.String("error_type", errType.String()),
		zap.Error(err))

	return &HouseInfoReport{
		ID:        uuid.NewString(),
		Success:   false,
		Metadata:  ReportMetadata{FileName: fileName},
		Error:     err.Error(),
		ErrorType: errType.String(),
	}
}

// preview returns the first n characters of text, followed by "..." when the
// text is longer.
func preview(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n]) + previewSuffix
}
