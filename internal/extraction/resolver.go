package extraction

// Policy decides whether a candidate may overwrite a field's current value
type Policy int

const (
	// PolicySetOnce accepts a candidate only while the field is unset.
	PolicySetOnce Policy = iota
	// PolicyReplaceZero also replaces the zero sentinel of a count.
	PolicyReplaceZero
	// PolicyReplaceBelowFloor also replaces a value under PlausibilityFloor.
	PolicyReplaceBelowFloor
)

// PlausibilityFloor is the smallest house size taken at face value. Anything
// smaller is most likely a room count or similar stray number.
const PlausibilityFloor = 100.0

// String returns a string representation of the Policy
func (p Policy) String() string {
	switch p {
	case PolicySetOnce:
		return "set_once"
	case PolicyReplaceZero:
		return "replace_zero"
	case PolicyReplaceBelowFloor:
		return "replace_below_floor"
	default:
		return "unknown"
	}
}

// fieldPolicies is the per-field acceptance table. Numeric fields that several
// rules can hit get a plausibility re-check; text fields keep the first match.
var fieldPolicies = map[FieldName]Policy{
	FieldPrice:        PolicySetOnce,
	FieldAcreLot:      PolicySetOnce,
	FieldHouseSize:    PolicyReplaceBelowFloor,
	FieldBed:          PolicyReplaceZero,
	FieldBath:         PolicyReplaceZero,
	FieldPrevSoldDate: PolicySetOnce,
	FieldStatus:       PolicySetOnce,
	FieldBrokeredBy:   PolicySetOnce,
	FieldStreet:       PolicySetOnce,
	FieldCity:         PolicySetOnce,
	FieldState:        PolicySetOnce,
	FieldZipCode:      PolicySetOnce,
}

// PolicyFor returns the acceptance policy of field
func PolicyFor(field FieldName) Policy {
	if p, ok := fieldPolicies[field]; ok {
		return p
	}
	return PolicySetOnce
}

// Accept reports whether a new candidate may be stored for field given its
// current value (present reports whether the field is set at all).
func Accept(field FieldName, current Value, present bool) bool {
	if !present {
		return true
	}

	switch PolicyFor(field) {
	case PolicyReplaceZero:
		return current.Kind == KindInt && current.Int == 0
	case PolicyReplaceBelowFloor:
		n, ok := current.Number()
		return ok && n < PlausibilityFloor
	default:
		return false
	}
}

// merge is the fold step: it stores candidate when the field's policy allows
func merge(fields map[FieldName]Value, field FieldName, candidate Value) bool {
	current, present := fields[field]
	if !Accept(field, current, present) {
		return false
	}
	fields[field] = candidate
	return true
}
