package extraction

import (
	"errors"
	"fmt"
)

// ErrorType categorizes extraction failures
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypePattern
	ErrorTypeNumericParse
	ErrorTypeInsufficientText
	ErrorTypeTextExtraction
)

// String returns a string representation of the ErrorType
func (et ErrorType) String() string {
	switch et {
	case ErrorTypePattern:
		return "PATTERN"
	case ErrorTypeNumericParse:
		return "NUMERIC_PARSE"
	case ErrorTypeInsufficientText:
		return "INSUFFICIENT_TEXT"
	case ErrorTypeTextExtraction:
		return "TEXT_EXTRACTION"
	default:
		return "UNKNOWN"
	}
}

// Sentinels for errors.Is checks
var (
	ErrInsufficientText = errors.New("insufficient text for extraction")
	ErrTextExtraction   = errors.New("could not extract text from document")
	ErrNumericParse     = errors.New("value is not a finite number")
	ErrPattern          = errors.New("pattern failed")
)

// PatternError reports a rule whose pattern failed to compile or panicked while
// matching. It is logged and the rule is skipped; callers never see it.
type PatternError struct {
	Rule    string
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("[%s] rule %s (%q): %v", ErrorTypePattern, e.Rule, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() []error { return []error{ErrPattern, e.Err} }

// NumericParseError reports a raw match that could not be turned into a number.
// The field is left unset.
type NumericParseError struct {
	Field FieldName
	Raw   string
	Err   error
}

func (e *NumericParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: cannot parse %q: %v", ErrorTypeNumericParse, e.Field, e.Raw, e.Err)
	}
	return fmt.Sprintf("[%s] %s: cannot parse %q", ErrorTypeNumericParse, e.Field, e.Raw)
}

func (e *NumericParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNumericParse}
	}
	return []error{ErrNumericParse, e.Err}
}

// InsufficientTextError is returned when the text handed to the engine is too
// short to be a real document, which signals an upstream extraction failure.
type InsufficientTextError struct {
	Length    int
	MinLength int
}

func (e *InsufficientTextError) Error() string {
	return fmt.Sprintf("[%s] could not extract text from document: got %d characters, need at least %d",
		ErrorTypeInsufficientText, e.Length, e.MinLength)
}

func (e *InsufficientTextError) Unwrap() error { return ErrInsufficientText }

// TextExtractionError wraps a failure of the document-to-text collaborator
type TextExtractionError struct {
	Path string
	Err  error
}

func (e *TextExtractionError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("[%s] %s: %v", ErrorTypeTextExtraction, e.Path, e.Err)
	}
	return fmt.Sprintf("[%s] %v", ErrorTypeTextExtraction, e.Err)
}

func (e *TextExtractionError) Unwrap() []error { return []error{ErrTextExtraction, e.Err} }

// ClassifyError returns the ErrorType of err, or ErrorTypeUnknown
func ClassifyError(err error) ErrorType {
	switch {
	case err == nil:
		return ErrorTypeUnknown
	case errors.Is(err, ErrInsufficientText):
		return ErrorTypeInsufficientText
	case errors.Is(err, ErrTextExtraction):
		return ErrorTypeTextExtraction
	case errors.Is(err, ErrNumericParse):
		return ErrorTypeNumericParse
	case errors.Is(err, ErrPattern):
		return ErrorTypePattern
	default:
		return ErrorTypeUnknown
	}
}
