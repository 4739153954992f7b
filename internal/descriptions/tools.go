package descriptions

import "sort"

// Tool names exposed by the MCP server
const (
	ToolExtractFile  = "house_extract_file"
	ToolExtractText  = "house_extract_text"
	ToolValidateFile = "house_validate_file"
	ToolServerInfo   = "house_server_info"
	ToolListFiles    = "house_list_files"
)

const (
	ExtractFileDescription = `Extract real-estate listing fields from a PDF document.

**When to use:** You have a listing sheet, brochure or property report as a PDF and need its structured attributes.

**Fields:** price, status, brokered_by, bed, bath, acre_lot, house_size, street, city, state, zip_code, prev_sold_date.

**Examples:**
• "Extract the listing fields from listings/maple-ave.pdf"
• "What is the price and bedroom count in 42-main-st.pdf?"

**Response:** JSON report with success, data.fields (only the fields that were found, plus confidence), data.extraction_date, data.text_preview, and metadata (text_length, file_name, pages, confidence).

**Notes:** Paths are relative to the configured listing directory. Confidence is the share of the twelve fields that were found, not a measure of correctness. Scanned documents without a text layer fail with error_type TEXT_EXTRACTION.`

	ExtractTextDescription = `Extract real-estate listing fields from plain text.

**When to use:** The listing text is already available, e.g. pasted from an email or produced by OCR.

**Examples:**
• "Extract fields from: Price: $450,000 Bed: 4 Bath: 3 City: Springfield"

**Response:** Same JSON report as house_extract_file, without page count. Text shorter than the configured minimum fails with error_type INSUFFICIENT_TEXT.`

	ValidateFileDescription = `Check that a file is an acceptable listing PDF before extracting.

**When to use:** Before processing uploads or unknown files.

**Checks:** .pdf extension, not empty, within the size limit, and a readable PDF structure. Reports page count and whether the document is encrypted.`

	ListFilesDescription = `List the listing PDFs available in the configured directory.

**When to use:** To discover which documents can be passed to house_extract_file.

**Parameters:** optional query (case-insensitive substring of the file name) and limit (maximum number of files, 0 for all).

**Response:** JSON with files (path relative to the directory, name, size, modified_time), total_count and directory. Hidden directories, empty files and files over the size limit are left out.`

	ServerInfoDescription = `Describe the extractor and report its health.

**Response:** Server name and version, status, listing directory, size and text limits, the twelve canonical fields in output order, the ordered extraction rules (name, field, value type) and the fields that have a fallback pass.`
)

// ToolDescriptions maps tool names to their descriptions
var ToolDescriptions = map[string]string{
	ToolExtractFile:  ExtractFileDescription,
	ToolExtractText:  ExtractTextDescription,
	ToolValidateFile: ValidateFileDescription,
	ToolServerInfo:   ServerInfoDescription,
	ToolListFiles:    ListFilesDescription,
}

// GetToolDescription returns the description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns the tool names in sorted order
func GetAllToolNames() []string {
	names := make([]string, 0, len(ToolDescriptions))
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
