// src/parsers/schema.go
package parsers

import (
	"strings"

	"github.com/dogwood008/kabucom-pl-calendar/src/models"
)

// FieldIndexMap maps a normalized header name to its column index.
type FieldIndexMap map[string]int

// TradeCsvSchema describes one supported broker export format as plain data:
// the header names that identify the format plus a pure function mapping a raw
// row into a canonical record. Schemas are static configuration, registered
// once and never mutated.
type TradeCsvSchema struct {
	ID             string
	RequiredFields []string
	ParseRecord    func(row []string, fieldIndices FieldIndexMap) *models.TradeRecord
}

// registeredSchemas is checked in order and the first schema whose required
// fields are all present in the header wins. Schemas with overlapping field
// sets must therefore stay ordered most-specific first.
var registeredSchemas = []TradeCsvSchema{
	kabucomSchema,
	sbiOtcCfdSchema,
	gmoClickSchema,
}

// MapRowsToRecords consumes the header row, detects the broker schema and
// extracts canonical records from the remaining rows. An unrecognized header
// yields zero records rather than an error; rows the schema rejects (bad
// dates) are silently dropped so one garbled row never forfeits the file.
func MapRowsToRecords(rows [][]string) []models.TradeRecord {
	if len(rows) == 0 {
		return nil
	}
	header, dataRows := rows[0], rows[1:]

	fieldIndices := BuildFieldIndexMap(header)
	schema := DetectSchema(fieldIndices)
	if schema == nil {
		return nil
	}

	records := make([]models.TradeRecord, 0, len(dataRows))
	for _, row := range dataRows {
		if record := schema.ParseRecord(row, fieldIndices); record != nil {
			records = append(records, *record)
		}
	}
	return records
}

// BuildFieldIndexMap trims header names and strips a UTF-8 BOM from the very
// first field before using it as a key.
func BuildFieldIndexMap(header []string) FieldIndexMap {
	indices := make(FieldIndexMap, len(header))
	for i, field := range header {
		if i == 0 {
			field = strings.TrimPrefix(field, "\ufeff")
		}
		indices[strings.TrimSpace(field)] = i
	}
	return indices
}

// DetectSchema returns the first registered schema whose required fields are
// all present, or nil when no format matches.
func DetectSchema(fieldIndices FieldIndexMap) *TradeCsvSchema {
	for i := range registeredSchemas {
		if hasAllFields(fieldIndices, registeredSchemas[i].RequiredFields) {
			return &registeredSchemas[i]
		}
	}
	return nil
}

func hasAllFields(indices FieldIndexMap, required []string) bool {
	for _, field := range required {
		if _, ok := indices[field]; !ok {
			return false
		}
	}
	return true
}

// readField resolves a header by name through the index map. A missing header
// or a short row resolves to "" so optional columns degrade safely.
func readField(row []string, indices FieldIndexMap, field string) string {
	index, ok := indices[field]
	if !ok || index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}

func readTrimmedField(row []string, indices FieldIndexMap, field string) string {
	return strings.TrimSpace(readField(row, indices, field))
}
