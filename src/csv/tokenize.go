// src/csv/tokenize.go
package csv

import "strings"

// Parse splits decoded CSV text into rows of string fields.
//
// Quoting follows RFC 4180: a field may be wrapped in double quotes, a doubled
// quote inside a quoted field is a literal quote, and commas or line breaks
// inside quotes are content rather than separators. Rows end at \n, \r\n or a
// bare \r. Rows whose fields are all empty or whitespace-only are dropped.
//
// encoding/csv is deliberately not used here: it does not treat a bare \r as a
// record separator and it surfaces quoting irregularities as hard errors,
// while broker exports need the whole-file parse to survive a sloppy row.
func Parse(content string) [][]string {
	var rows [][]string
	var currentRow []string
	var field strings.Builder
	inQuotes := false

	flushField := func() {
		currentRow = append(currentRow, field.String())
		field.Reset()
	}
	flushRow := func() {
		for _, f := range currentRow {
			if strings.TrimSpace(f) != "" {
				rows = append(rows, currentRow)
				break
			}
		}
		currentRow = nil
	}

	for i := 0; i < len(content); i++ {
		ch := content[i]
		var next byte
		if i+1 < len(content) {
			next = content[i+1]
		}

		switch {
		case ch == '"':
			if inQuotes && next == '"' {
				field.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			flushField()
		case (ch == '\n' || ch == '\r') && !inQuotes:
			if ch == '\r' && next == '\n' {
				i++
			}
			flushField()
			flushRow()
		default:
			field.WriteByte(ch)
		}
	}

	if field.Len() > 0 || len(currentRow) > 0 {
		flushField()
		flushRow()
	}

	return rows
}
