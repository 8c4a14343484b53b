package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateClientContentType(t *testing.T) {
	assert.NoError(t, ValidateClientContentType("text/csv"))
	assert.NoError(t, ValidateClientContentType("text/csv; charset=shift_jis"))
	assert.NoError(t, ValidateClientContentType("application/vnd.ms-excel"))
	assert.NoError(t, ValidateClientContentType("TEXT/PLAIN"))

	assert.Error(t, ValidateClientContentType("application/zip"))
	assert.Error(t, ValidateClientContentType("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))
	assert.Error(t, ValidateClientContentType(""))
}

func TestValidateCsvContent(t *testing.T) {
	assert.NoError(t, ValidateCsvContent([]byte("成立日,売買\n2025/1/6,買\n")))
	// Shift_JIS bytes are legitimate even though they are not valid UTF-8.
	assert.NoError(t, ValidateCsvContent([]byte{0x93, 0xFA, 0x96, 0x7B}))

	assert.Error(t, ValidateCsvContent(nil))
	assert.Error(t, ValidateCsvContent([]byte{}))
	assert.Error(t, ValidateCsvContent([]byte("head\x00er")))
}

func TestSanitizeTradeText(t *testing.T) {
	assert.Equal(t, "日経225", SanitizeTradeText("<b>日経</b>225"))
	assert.Equal(t, "日経225mini", SanitizeTradeText("  日経225mini  "))
	assert.Equal(t, "abc", SanitizeTradeText("a\x07b\x1bc"))
	assert.Equal(t, "", SanitizeTradeText(""))
}

func TestNeutralizeFormulaPrefix(t *testing.T) {
	assert.Equal(t, "'=HYPERLINK(\"http://x\")", NeutralizeFormulaPrefix("=HYPERLINK(\"http://x\")"))
	assert.Equal(t, "'+1+2", NeutralizeFormulaPrefix("+1+2"))
	assert.Equal(t, "'@cmd", NeutralizeFormulaPrefix("@cmd"))
	assert.Equal(t, "日経225mini", NeutralizeFormulaPrefix("日経225mini"))
	assert.Equal(t, "", NeutralizeFormulaPrefix(""))
}
