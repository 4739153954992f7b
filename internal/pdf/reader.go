package pdf

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/a3tai/mcp-house-extractor/internal/extraction"
)

var errNoText = errors.New("no text content could be extracted from PDF")

// Reader extracts plain text from PDF files
type Reader struct {
	maxFileSize int64
	maxTextSize int
}

// NewReader creates a new PDF reader with the specified constraints
func NewReader(maxFileSize int64, maxTextSize int) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
		maxTextSize: maxTextSize,
	}
}

// ExtractText returns the text of every page of the PDF at path, pages joined
// by newlines and capped at the reader's text limit. Unreadable documents and
// documents without a text layer return *extraction.TextExtractionError.
func (r *Reader) ExtractText(path string) (*TextContent, error) {
	info, err := checkFile(path, r.maxFileSize)
	if err != nil {
		return nil, err
	}

	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		return nil, &extraction.TextExtractionError{Path: path, Err: fmt.Errorf("failed to open PDF: %w", err)}
	}
	defer f.Close()

	text := r.extractPages(pdfReader)
	if strings.TrimSpace(text) == "" {
		return nil, &extraction.TextExtractionError{Path: path, Err: errNoText}
	}

	return &TextContent{
		Text:  text,
		Path:  path,
		Pages: pdfReader.NumPage(),
		Size:  info.Size(),
	}, nil
}

// extractPages concatenates page text, skipping pages that fail to decode
func (r *Reader) extractPages(pdfReader *pdf.Reader) string {
	var builder strings.Builder
	numPages := pdfReader.NumPage()

	for pageNum := 1; pageNum <= numPages; pageNum++ {
		content, err := pageText(pdfReader, pageNum)
		if err != nil {
			continue
		}

		if builder.Len()+len(content) > r.maxTextSize {
			builder.WriteString(truncateUTF8(content, r.maxTextSize-builder.Len()))
			break
		}
		builder.WriteString(content)

		if pageNum < numPages {
			builder.WriteString("\n")
		}
	}

	return builder.String()
}

// pageText returns the plain text of one page. ledongthuc/pdf panics on some
// malformed content streams; such pages are reported as errors.
func pageText(pdfReader *pdf.Reader, pageNum int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: %v", pageNum, r)
		}
	}()

	page := pdfReader.Page(pageNum)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d: missing", pageNum)
	}
	return page.GetPlainText(nil)
}

// truncateUTF8 returns at most n bytes of s without splitting a rune
func truncateUTF8(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
