package extraction

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// patternFlags makes every rule case-insensitive with per-line anchors
const patternFlags = "(?im)"

// CompiledRule is a FieldRule with its pattern compiled
type CompiledRule struct {
	FieldRule
	re *regexp.Regexp
}

// CompileRule compiles a rule's pattern. Failures are returned as *PatternError.
func CompileRule(rule FieldRule) (*CompiledRule, error) {
	re, err := regexp.Compile(patternFlags + rule.Pattern)
	if err != nil {
		return nil, &PatternError{Rule: rule.Name, Pattern: rule.Pattern, Err: err}
	}
	return &CompiledRule{FieldRule: rule, re: re}, nil
}

// compileRules compiles rules in order, logging and dropping any that fail
func compileRules(rules []FieldRule, logger *zap.Logger) []*CompiledRule {
	compiled := make([]*CompiledRule, 0, len(rules))
	for _, r := range rules {
		cr, err := CompileRule(r)
		if err != nil {
			logger.Warn("skipping rule with invalid pattern",
				zap.String("rule", r.Name),
				zap.String("field", r.Field.String()),
				zap.Error(err))
			continue
		}
		compiled = append(compiled, cr)
	}
	return compiled
}

// Matcher applies compiled rules to document text. A rule that fails while
// matching is logged and reported as no match.
type Matcher struct {
	logger *zap.Logger
}

// NewMatcher creates a matcher; a nil logger disables logging
func NewMatcher(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{logger: logger}
}

// Match returns the payload of the rule's first match in text
func (m *Matcher) Match(text string, rule *CompiledRule) (raw string, ok bool) {
	m.guard(rule, func() {
		raw, ok = firstGroup(rule.re.FindStringSubmatch(text))
	})
	return raw, ok
}

// MatchEach calls fn with the payload of every match in document order until
// fn returns true. It reports whether fn accepted a payload.
func (m *Matcher) MatchEach(text string, rule *CompiledRule, fn func(raw string) bool) (accepted bool) {
	m.guard(rule, func() {
		for _, sub := range rule.re.FindAllStringSubmatch(text, -1) {
			raw, ok := firstGroup(sub)
			if !ok {
				continue
			}
			if fn(raw) {
				accepted = true
				return
			}
		}
	})
	return accepted
}

// guard runs fn and converts a panic into a logged, skipped rule
func (m *Matcher) guard(rule *CompiledRule, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			err := &PatternError{Rule: rule.Name, Pattern: rule.Pattern, Err: fmt.Errorf("panic: %v", r)}
			m.logger.Warn("skipping rule that failed during matching",
				zap.String("rule", rule.Name),
				zap.String("field", rule.Field.String()),
				zap.Error(err))
		}
	}()
	fn()
}

// firstGroup returns the first capturing group that is non-empty once trimmed
func firstGroup(submatch []string) (string, bool) {
	if len(submatch) < 2 {
		return "", false
	}
	for _, g := range submatch[1:] {
		if v := strings.TrimSpace(g); v != "" {
			return v, true
		}
	}
	return "", false
}
