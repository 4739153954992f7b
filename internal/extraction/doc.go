// Package extraction pulls real-estate listing attributes out of plain document
// text with an ordered table of regular-expression rules.
//
// Each call folds the primary rules over an empty field set, normalizing every
// match and letting a per-field policy decide whether it may replace what is
// already stored, then runs a bounded fallback pass for price, bedrooms and
// house size. The result carries a completeness score over the twelve
// canonical fields.
//
// Identical text always yields an identical result. Patterns run on RE2, so
// matching time is linear in the input length.
//
// Known limitation: a bedroom or bathroom count of 0 is the sentinel for
// "label found, number unreadable". A property that genuinely has zero
// bathrooms cannot be told apart from a failed match, and a later non-zero
// match elsewhere in the text will replace it.
package extraction
