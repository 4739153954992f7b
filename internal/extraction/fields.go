package extraction

// FieldName identifies one of the canonical extractable property attributes
type FieldName string

const (
	FieldPrice        FieldName = "price"
	FieldStatus       FieldName = "status"
	FieldBrokeredBy   FieldName = "brokered_by"
	FieldBed          FieldName = "bed"
	FieldBath         FieldName = "bath"
	FieldAcreLot      FieldName = "acre_lot"
	FieldHouseSize    FieldName = "house_size"
	FieldStreet       FieldName = "street"
	FieldCity         FieldName = "city"
	FieldState        FieldName = "state"
	FieldZipCode      FieldName = "zip_code"
	FieldPrevSoldDate FieldName = "prev_sold_date"
)

// CanonicalFieldCount is the denominator of the confidence score. It must stay
// equal to len(CanonicalFields()).
const CanonicalFieldCount = 12

var canonicalFields = [CanonicalFieldCount]FieldName{
	FieldPrice,
	FieldStatus,
	FieldBrokeredBy,
	FieldBed,
	FieldBath,
	FieldAcreLot,
	FieldHouseSize,
	FieldStreet,
	FieldCity,
	FieldState,
	FieldZipCode,
	FieldPrevSoldDate,
}

// CanonicalFields returns the canonical fields in output order
func CanonicalFields() []FieldName {
	fields := make([]FieldName, len(canonicalFields))
	copy(fields, canonicalFields[:])
	return fields
}

// IsCanonical reports whether f is one of the twelve canonical fields
func (f FieldName) IsCanonical() bool {
	for _, c := range canonicalFields {
		if c == f {
			return true
		}
	}
	return false
}

// String returns the wire name of the field
func (f FieldName) String() string {
	return string(f)
}

// ValueType selects how a raw match is normalized
type ValueType int

const (
	ValueTypeText ValueType = iota
	ValueTypeCurrency
	ValueTypeDecimal
	// ValueTypeLotDecimal treats every comma as a decimal separator.
	ValueTypeLotDecimal
	ValueTypeCount
	ValueTypeDate
)

// String returns a string representation of the ValueType
func (vt ValueType) String() string {
	switch vt {
	case ValueTypeText:
		return "text"
	case ValueTypeCurrency:
		return "currency"
	case ValueTypeDecimal:
		return "decimal"
	case ValueTypeLotDecimal:
		return "lot_decimal"
	case ValueTypeCount:
		return "count"
	case ValueTypeDate:
		return "date"
	default:
		return "unknown"
	}
}
