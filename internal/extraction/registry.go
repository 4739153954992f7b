package extraction

// FieldRule binds a pattern to the field it populates. The payload is the first
// non-empty capturing group of the first match.
type FieldRule struct {
	Name      string
	Pattern   string
	Field     FieldName
	ValueType ValueType
}

// Shared pattern fragments. Patterns are compiled with (?im): case-insensitive,
// and \s lets a label and its value sit on different lines. A number and the
// unit after it must share a line.
const (
	// labelStart keeps short labels such as "State" from matching inside words
	// like "Estate". \b is ASCII-only in RE2, so accented labels need this form.
	labelStart = `(?:^|[^\p{L}])`

	// bareLabelStart is stricter, for generic labels such as "Size" or "Date":
	// they must open a line or follow a non-letter other than whitespace, so
	// "Lot Size" and "Listing Date" are not read as house size or sale date.
	bareLabelStart = `(?:^|[^\p{L}\s])[ \t]*`

	// numberBody is a number with optional ",." separators and space-grouped
	// thousands ("450 000,50"), without swallowing an unrelated trailing number.
	numberBody = `\d[\d,.]*(?: \d{3}\b[\d,.]*)*`

	areaUnit = `(?:m²|m2|sqft|sq\.?\s?ft|square\s+feet|square\s+foot|square\s+meters?)`

	houseSizeLabel = `(?:` + labelStart + `(?:House Size|Square Footage|Square Feet|Living Area)|` +
		bareLabelStart + `(?:Size|Area))`

	prevSoldDateLabel = `(?:` + labelStart + `(?:Sold on|Previous sale date|Previous Sold Date|Last Sold)|` +
		bareLabelStart + `Date)`
)

var defaultRules = []FieldRule{
	// Listing
	{
		Name:      "price_currency_symbol",
		Pattern:   `[$€]\s?(` + numberBody + `)`,
		Field:     FieldPrice,
		ValueType: ValueTypeCurrency,
	},
	{
		Name:      "status_label",
		Pattern:   labelStart + `(?:Status|Disponibilité)[:\s]+([\p{L} ]+)`,
		Field:     FieldStatus,
		ValueType: ValueTypeText,
	},
	{
		Name:      "brokered_by_label",
		Pattern:   labelStart + `(?:Brokered by|Listed by|Agence|Agency|Broker)[:\s]+([^\n,]+)`,
		Field:     FieldBrokeredBy,
		ValueType: ValueTypeText,
	},

	// Features. Label-first rules precede number-first ones.
	{
		Name:      "bed_label",
		Pattern:   labelStart + `(?:Bed|Bedroom|Bedrooms|Chambre|Chambres)[:\s]+(\d+)`,
		Field:     FieldBed,
		ValueType: ValueTypeCount,
	},
	{
		Name:      "bed_number_first",
		Pattern:   `(\d+)[ \t]+(?:bedroom|bedrooms|bed|beds|chambre|chambres)\b`,
		Field:     FieldBed,
		ValueType: ValueTypeCount,
	},
	{
		Name:      "bath_label",
		Pattern:   labelStart + `(?:Bath|Baths|Bathroom|Bathrooms|Salles? de bain)[:\s]+(\d+)`,
		Field:     FieldBath,
		ValueType: ValueTypeCount,
	},
	{
		Name:      "bath_number_first",
		Pattern:   `(\d+)[ \t]+(?:bathroom|bathrooms|bath|baths|salles? de bain)\b`,
		Field:     FieldBath,
		ValueType: ValueTypeCount,
	},
	{
		Name:      "acre_lot_label",
		Pattern:   labelStart + `(?:Acre Lot|Lot Size|Lot)[:\s]+(\d[\d.,]*)`,
		Field:     FieldAcreLot,
		ValueType: ValueTypeLotDecimal,
	},
	{
		Name:      "acre_lot_number_first",
		Pattern:   `(\d[\d.,]*)[ \t]+(?:acre lot|acres|acre)\b`,
		Field:     FieldAcreLot,
		ValueType: ValueTypeLotDecimal,
	},
	{
		Name:      "house_size_label",
		Pattern:   houseSizeLabel + `[:\s]+(\d[\d,.]*)`,
		Field:     FieldHouseSize,
		ValueType: ValueTypeDecimal,
	},
	{
		Name:      "house_size_unit",
		Pattern:   `(\d[\d,.]*)[ \t]*` + areaUnit,
		Field:     FieldHouseSize,
		ValueType: ValueTypeDecimal,
	},

	// Address
	{
		Name:      "street_label",
		Pattern:   labelStart + `(?:Address|Street|Adresse)[:\s]+([^\n]+)`,
		Field:     FieldStreet,
		ValueType: ValueTypeText,
	},
	{
		Name:      "city_label",
		Pattern:   labelStart + `(?:City|Ville)[:\s]+([\p{L} '-]+)`,
		Field:     FieldCity,
		ValueType: ValueTypeText,
	},
	{
		Name:      "state_label",
		Pattern:   labelStart + `(?:State|État|Country|Pays)[:\s]+([\p{L} ]{2,20})`,
		Field:     FieldState,
		ValueType: ValueTypeText,
	},
	{
		Name:      "zip_code_label",
		Pattern:   labelStart + `(?:ZIP Code|ZIP|Code postal|Postal Code)[:\s]+(\d{5})(?:-\d{4})?\b`,
		Field:     FieldZipCode,
		ValueType: ValueTypeText,
	},

	// Dates
	{
		Name:      "prev_sold_date_label",
		Pattern:   prevSoldDateLabel + `[:\s]+([^\n]+)`,
		Field:     FieldPrevSoldDate,
		ValueType: ValueTypeDate,
	},
}

// DefaultRules returns a copy of the ordered primary rule table
func DefaultRules() []FieldRule {
	rules := make([]FieldRule, len(defaultRules))
	copy(rules, defaultRules)
	return rules
}

// RulesForField returns the primary rules targeting field, in registry order
func RulesForField(field FieldName) []FieldRule {
	var rules []FieldRule
	for _, r := range defaultRules {
		if r.Field == field {
			rules = append(rules, r)
		}
	}
	return rules
}
