// src/security/validation/content_scanner.go
package validation

import (
	"regexp"
	"strings"
)

// formulaPrefixRegex matches characters that spreadsheet applications treat as
// formula triggers at the start of a cell.
var formulaPrefixRegex = regexp.MustCompile(`^[=+@\t\r]`)

// NeutralizeFormulaPrefix guards free-text fields against CSV formula
// injection: records parsed from uploads can be re-exported to spreadsheets,
// and a symbol like "=HYPERLINK(...)" would execute there. A leading trigger
// character is escaped with a single quote, the convention spreadsheet
// applications use to force text interpretation.
func NeutralizeFormulaPrefix(s string) string {
	trimmed := strings.TrimSpace(s)
	if formulaPrefixRegex.MatchString(trimmed) {
		return "'" + trimmed
	}
	return s
}
