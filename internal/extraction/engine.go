package extraction

import (
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

const (
	// DefaultMinTextLength is the shortest text treated as a real document.
	DefaultMinTextLength = 10
	// DefaultMaxTextLength caps the bytes of text handed to the matcher.
	DefaultMaxTextLength = 10 * 1024 * 1024
)

// Engine extracts property fields from document text. It is immutable once
// built and safe for concurrent use.
type Engine struct {
	logger        *zap.Logger
	matcher       *Matcher
	rules         []*CompiledRule
	fallbacks     []compiledFallback
	minTextLength int
	maxTextLength int
}

// Option configures an Engine
type Option func(*engineOptions)

type engineOptions struct {
	logger        *zap.Logger
	rules         []FieldRule
	fallbacks     []FallbackRule
	minTextLength int
	maxTextLength int
}

// WithLogger sets the logger used for skipped rules and rejected values
func WithLogger(logger *zap.Logger) Option {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRules replaces the primary rule table
func WithRules(rules []FieldRule) Option {
	return func(o *engineOptions) { o.rules = rules }
}

// WithFallbacks replaces the fallback table
func WithFallbacks(fallbacks []FallbackRule) Option {
	return func(o *engineOptions) { o.fallbacks = fallbacks }
}

// WithMinTextLength sets the character count below which Extract fails. Zero
// disables the check.
func WithMinTextLength(n int) Option {
	return func(o *engineOptions) {
		if n >= 0 {
			o.minTextLength = n
		}
	}
}

// WithMaxTextLength sets the byte cap applied before matching
func WithMaxTextLength(n int) Option {
	return func(o *engineOptions) {
		if n > 0 {
			o.maxTextLength = n
		}
	}
}

// NewEngine builds an engine with the default rule and fallback tables
func NewEngine(opts ...Option) *Engine {
	o := engineOptions{
		logger:        zap.NewNop(),
		rules:         defaultRules,
		fallbacks:     defaultFallbacks,
		minTextLength: DefaultMinTextLength,
		maxTextLength: DefaultMaxTextLength,
	}
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		logger:        o.logger.Named("extraction"),
		minTextLength: o.minTextLength,
		maxTextLength: o.maxTextLength,
	}
	e.matcher = NewMatcher(e.logger)
	e.rules = compileRules(o.rules, e.logger)
	e.fallbacks = e.compileFallbacks(o.fallbacks)
	return e
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// Default returns a shared engine with the default tables and no logging
func Default() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = NewEngine()
	})
	return defaultEngine
}

// ExtractFields runs the default engine over text
func ExtractFields(text string) *Result {
	return Default().ExtractFields(text)
}

// MinTextLength returns the minimum character count accepted by Extract
func (e *Engine) MinTextLength() int {
	return e.minTextLength
}

// Rules returns the primary rules that compiled, in evaluation order
func (e *Engine) Rules() []FieldRule {
	rules := make([]FieldRule, len(e.rules))
	for i, r := range e.rules {
		rules[i] = r.FieldRule
	}
	return rules
}

// Extract checks that text looks like a real document and then extracts its
// fields. Text shorter than the minimum length returns *InsufficientTextError.
func (e *Engine) Extract(text string) (*Result, error) {
	if n := utf8.RuneCountInString(strings.TrimSpace(text)); n < e.minTextLength {
		return nil, &InsufficientTextError{Length: n, MinLength: e.minTextLength}
	}
	return e.ExtractFields(text), nil
}

// ExtractFields folds the primary rules and then the fallbacks over an empty
// field set and scores the outcome. It never fails: bad rules and unparsable
// values only lower the confidence.
func (e *Engine) ExtractFields(text string) *Result {
	text = e.prepare(text)
	fields := make(map[FieldName]Value, CanonicalFieldCount)

	for _, rule := range e.rules {
		raw, ok := e.matcher.Match(text, rule)
		if !ok {
			continue
		}
		v, err := Normalize(rule.Field, rule.ValueType, raw)
		if err != nil {
			e.logger.Debug("value rejected", fieldLogFields(rule, raw, err)...)
			continue
		}
		merge(fields, rule.Field, v)
	}

	e.runFallbacks(text, fields)

	result := &Result{Fields: fields, Confidence: Score(fields)}
	e.logger.Debug("extraction complete",
		zap.Int("fields_found", result.Len()),
		zap.Float64("confidence", result.Confidence))
	return result
}

// prepare folds compatibility characters (NBSP, ligatures, "m²") and caps the
// text length on a rune boundary.
func (e *Engine) prepare(text string) string {
	text = norm.NFKC.String(text)
	if len(text) <= e.maxTextLength {
		return text
	}
	cut := e.maxTextLength
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	e.logger.Debug("text truncated", zap.Int("length", len(text)), zap.Int("limit", cut))
	return text[:cut]
}

func fieldLogFields(rule *CompiledRule, raw string, err error) []zap.Field {
	return []zap.Field{
		zap.String("rule", rule.Name),
		zap.String("field", rule.Field.String()),
		zap.String("raw", raw),
		zap.Error(err),
	}
}
