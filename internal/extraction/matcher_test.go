package extraction

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func mustCompile(t *testing.T, rule FieldRule) *CompiledRule {
	t.Helper()
	cr, err := CompileRule(rule)
	require.NoError(t, err)
	return cr
}

func TestCompileRule_Invalid(t *testing.T) {
	_, err := CompileRule(FieldRule{Name: "broken", Pattern: `(unclosed`})
	require.Error(t, err)

	var patternErr *PatternError
	require.True(t, errors.As(err, &patternErr))
	assert.Equal(t, "broken", patternErr.Rule)
	assert.ErrorIs(t, err, ErrPattern)
	assert.Equal(t, ErrorTypePattern, ClassifyError(err))
}

func TestMatcher_Match(t *testing.T) {
	m := NewMatcher(nil)

	tests := []struct {
		name    string
		pattern string
		text    string
		want    string
		wantOK  bool
	}{
		{name: "case_insensitive", pattern: `city:\s*(\w+)`, text: "CITY: Austin", want: "Austin", wantOK: true},
		{name: "label_on_next_line", pattern: `Bed[:\s]+(\d+)`, text: "Bed\n4", want: "4", wantOK: true},
		{name: "line_anchor", pattern: `^Zip:\s*(\d+)`, text: "x\nZip: 12345", want: "12345", wantOK: true},
		{name: "first_non_empty_group", pattern: `(?:a(\d)|b(\d))`, text: "b7", want: "7", wantOK: true},
		{name: "payload_trimmed", pattern: `Street:([^\n]+)`, text: "Street:   1 Main St  ", want: "1 Main St", wantOK: true},
		{name: "blank_payload", pattern: `Street:([^\n]*)`, text: "Street:   ", wantOK: false},
		{name: "no_match", pattern: `Price:\s*(\d+)`, text: "nothing here", wantOK: false},
		{name: "no_group", pattern: `Price`, text: "Price", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.Match(tt.text, mustCompile(t, FieldRule{Name: tt.name, Pattern: tt.pattern}))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatcher_MatchEach(t *testing.T) {
	m := NewMatcher(nil)
	rule := mustCompile(t, FieldRule{Name: "numbers", Pattern: `n=(\d+)`})

	var seen []string
	accepted := m.MatchEach("n=1 n=22 n=333 n=4444", rule, func(raw string) bool {
		seen = append(seen, raw)
		return len(raw) == 3
	})

	assert.True(t, accepted)
	assert.Equal(t, []string{"1", "22", "333"}, seen)

	accepted = m.MatchEach("n=1", rule, func(string) bool { return false })
	assert.False(t, accepted)
}

func TestMatcher_PanicIsContained(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	m := NewMatcher(zap.New(core))
	rule := mustCompile(t, FieldRule{Name: "exploding", Pattern: `(\d+)`, Field: FieldBath})

	accepted := m.MatchEach("1 2", rule, func(string) bool { panic("boom") })
	assert.False(t, accepted)

	entries := logs.FilterMessage("skipping rule that failed during matching").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "exploding", entries[0].ContextMap()["rule"])
	assert.Equal(t, "bath", entries[0].ContextMap()["field"])
}
