package extraction

import "math"

// Score returns the share of canonical fields present in fields, as a
// percentage rounded to one decimal place.
//
// This measures completeness only. A document where every rule hit the wrong
// number still scores 100; it says nothing about whether values are correct.
func Score(fields map[FieldName]Value) float64 {
	filled := 0
	for f := range fields {
		if f.IsCanonical() {
			filled++
		}
	}
	ratio := float64(filled) / float64(CanonicalFieldCount) * 100
	return math.Round(ratio*10) / 10
}
