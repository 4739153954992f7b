package extraction

// FallbackRule is a secondary, looser attempt at a single field. It runs only
// when Needed reports the primary pass left the field missing or implausible,
// and resolves at most once: the first match (across Rules, in document order)
// whose normalized value satisfies Valid is stored.
type FallbackRule struct {
	Field     FieldName
	ValueType ValueType
	Rules     []FieldRule
	Needed    func(current Value, present bool) bool
	Valid     func(v Value) bool
}

var defaultFallbacks = []FallbackRule{
	{
		Field:     FieldPrice,
		ValueType: ValueTypeCurrency,
		Rules: []FieldRule{
			{Name: "price_label_fallback", Pattern: labelStart + `(?:Listing Price|Price|Prix)[:\s]+[€$]?\s?(` + numberBody + `)`},
			// At least five digit-ish characters keeps incidental "$5" style
			// numbers out.
			{Name: "price_symbol_fallback", Pattern: `[€$]\s?([\d,. ]{5,})`},
		},
		Needed: func(_ Value, present bool) bool { return !present },
		Valid:  func(Value) bool { return true },
	},
	{
		Field:     FieldBed,
		ValueType: ValueTypeCount,
		Rules: []FieldRule{
			{Name: "bed_label_fallback", Pattern: labelStart + `(?:Bed|Bedroom|Chambre)[:\s]+(\d+)`},
			{Name: "bed_number_first_fallback", Pattern: `(\d+)[ \t]+(?:bedroom|bedrooms|bed|chambre|chambres)`},
		},
		Needed: func(current Value, present bool) bool {
			return !present || (current.Kind == KindInt && current.Int == 0)
		},
		Valid: func(v Value) bool { return v.Int > 0 },
	},
	{
		Field:     FieldHouseSize,
		ValueType: ValueTypeDecimal,
		Rules: []FieldRule{
			{Name: "house_size_label_fallback", Pattern: houseSizeLabel + `[:\s]+(\d[\d,.]*)[ \t]*` + areaUnit + `?`},
			{Name: "house_size_unit_fallback", Pattern: `(\d[\d,.]*)[ \t]*` + areaUnit},
		},
		Needed: func(current Value, present bool) bool {
			if !present {
				return true
			}
			n, ok := current.Number()
			return ok && n < PlausibilityFloor
		},
		Valid: func(v Value) bool { return v.Float >= PlausibilityFloor },
	},
}

// DefaultFallbacks returns the fallback table in evaluation order
func DefaultFallbacks() []FallbackRule {
	fallbacks := make([]FallbackRule, len(defaultFallbacks))
	copy(fallbacks, defaultFallbacks)
	return fallbacks
}

// FallbackFields lists the fields that have a fallback pass
func FallbackFields() []FieldName {
	fields := make([]FieldName, 0, len(defaultFallbacks))
	for _, fb := range defaultFallbacks {
		fields = append(fields, fb.Field)
	}
	return fields
}

type compiledFallback struct {
	FallbackRule
	rules []*CompiledRule
}

func (e *Engine) compileFallbacks(fallbacks []FallbackRule) []compiledFallback {
	compiled := make([]compiledFallback, 0, len(fallbacks))
	for _, fb := range fallbacks {
		rules := make([]FieldRule, len(fb.Rules))
		for i, r := range fb.Rules {
			r.Field = fb.Field
			r.ValueType = fb.ValueType
			rules[i] = r
		}
		compiled = append(compiled, compiledFallback{
			FallbackRule: fb,
			rules:        compileRules(rules, e.logger),
		})
	}
	return compiled
}

// runFallbacks is the second, bounded fold over the fallback table
func (e *Engine) runFallbacks(text string, fields map[FieldName]Value) {
	for _, fb := range e.fallbacks {
		current, present := fields[fb.Field]
		if !fb.Needed(current, present) {
			continue
		}

		for _, rule := range fb.rules {
			resolved := e.matcher.MatchEach(text, rule, func(raw string) bool {
				v, err := Normalize(fb.Field, fb.ValueType, raw)
				if err != nil {
					e.logger.Debug("fallback value rejected", fieldLogFields(rule, raw, err)...)
					return false
				}
				if !fb.Valid(v) {
					return false
				}
				fields[fb.Field] = v
				return true
			})
			if resolved {
				break
			}
		}
	}
}
