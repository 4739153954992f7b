package descriptions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetToolDescription(t *testing.T) {
	for _, name := range GetAllToolNames() {
		assert.NotEmpty(t, GetToolDescription(name), name)
		assert.NotEqual(t, "Tool description not available", GetToolDescription(name), name)
	}
	assert.Equal(t, "Tool description not available", GetToolDescription("pdf_read_file"))
}

func TestGetAllToolNames(t *testing.T) {
	assert.Equal(t, []string{
		ToolExtractFile,
		ToolExtractText,
		ToolListFiles,
		ToolServerInfo,
		ToolValidateFile,
	}, GetAllToolNames())
}
