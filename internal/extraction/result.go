package extraction

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ConfidenceKey is the key the confidence score is serialized under
const ConfidenceKey = "confidence"

// Result holds the fields resolved from one document plus the completeness
// score. Fields only contains keys that were found.
type Result struct {
	Fields     map[FieldName]Value
	Confidence float64
}

// Get returns the value of field, if it was found
func (r *Result) Get(field FieldName) (Value, bool) {
	v, ok := r.Fields[field]
	return v, ok
}

// Has reports whether field was found
func (r *Result) Has(field FieldName) bool {
	_, ok := r.Fields[field]
	return ok
}

// Len returns the number of fields found
func (r *Result) Len() int {
	return len(r.Fields)
}

// Found returns the fields that were found, in canonical order
func (r *Result) Found() []FieldName {
	var found []FieldName
	for _, f := range canonicalFields {
		if _, ok := r.Fields[f]; ok {
			found = append(found, f)
		}
	}
	return found
}

// Missing returns the canonical fields that were not found
func (r *Result) Missing() []FieldName {
	var missing []FieldName
	for _, f := range canonicalFields {
		if _, ok := r.Fields[f]; !ok {
			missing = append(missing, f)
		}
	}
	return missing
}

// Map flattens the result into plain Go values keyed by field name, with the
// confidence under ConfidenceKey.
func (r *Result) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(r.Fields)+1)
	for f, v := range r.Fields {
		m[f.String()] = v.Interface()
	}
	m[ConfidenceKey] = r.Confidence
	return m
}

// MarshalJSON writes a flat object in canonical field order, followed by the
// confidence with exactly one decimal place.
func (r *Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for _, f := range r.Found() {
		val, err := json.Marshal(r.Fields[f])
		if err != nil {
			return nil, err
		}
		buf.WriteString(strconv.Quote(f.String()))
		buf.WriteByte(':')
		buf.Write(val)
		buf.WriteByte(',')
	}
	buf.WriteString(strconv.Quote(ConfidenceKey))
	buf.WriteByte(':')
	buf.WriteString(strconv.FormatFloat(r.Confidence, 'f', 1, 64))
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
