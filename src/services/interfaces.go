// src/services/interfaces.go
package services

import (
	"context"
	"errors"

	"github.com/dogwood008/kabucom-pl-calendar/src/models"
)

// Define common service errors
var (
	ErrSpreadsheetNotConfigured = errors.New("spreadsheet endpoint or pre-shared key is not configured")
	ErrSpreadsheetFetchFailed   = errors.New("spreadsheet fetch failed")
)

type csvSourceKind int

const (
	sourceDefault csvSourceKind = iota
	sourcePath
	sourceInline
	sourceRaw
)

// CsvSource identifies where trade CSV data comes from. The default fixture
// and explicit paths have a stable identity and are cacheable; inline and raw
// content do not and are reparsed on every call.
type CsvSource struct {
	kind    csvSourceKind
	path    string
	content string
	data    []byte
}

// DefaultCsvSource loads the bundled sample CSV.
func DefaultCsvSource() CsvSource { return CsvSource{kind: sourceDefault} }

// PathCsvSource loads a CSV file from inside the sandboxed data directory.
func PathCsvSource(path string) CsvSource { return CsvSource{kind: sourcePath, path: path} }

// InlineCsvSource parses CSV text already in hand, e.g. a JSON upload body.
func InlineCsvSource(content string) CsvSource { return CsvSource{kind: sourceInline, content: content} }

// RawCsvSource parses an undecoded byte buffer, e.g. a multipart file upload
// or a fetched spreadsheet payload; the bytes go through encoding detection.
func RawCsvSource(data []byte) CsvSource { return CsvSource{kind: sourceRaw, data: data} }

// TradeService drives the ingestion pipeline (decode, tokenize, detect schema,
// extract) for a CSV source and aggregates the result per year.
type TradeService interface {
	// LoadTradeRecords returns the raw canonical records for a source. A
	// source that cannot be read degrades to an empty slice; the only error
	// is a path escaping the sandbox.
	LoadTradeRecords(source CsvSource) ([]models.TradeRecord, error)

	// GetTradeDataForYear loads records and folds them into daily summaries
	// and sorted per-day trade lists for the requested year.
	GetTradeDataForYear(year int, source CsvSource) (*models.TradeDataForYear, error)

	// InvalidateCache drops all cached record lists.
	InvalidateCache()
}

// SpreadsheetService fetches an encrypted CSV payload from a remote
// spreadsheet endpoint and returns the decrypted bytes.
type SpreadsheetService interface {
	FetchCsv(ctx context.Context) ([]byte, error)
}
