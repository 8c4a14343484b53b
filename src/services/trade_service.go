// src/services/trade_service.go
package services

import (
	"os"
	"sync"

	"github.com/patrickmn/go-cache"

	"github.com/dogwood008/kabucom-pl-calendar/src/csv"
	"github.com/dogwood008/kabucom-pl-calendar/src/logger"
	"github.com/dogwood008/kabucom-pl-calendar/src/models"
	"github.com/dogwood008/kabucom-pl-calendar/src/parsers"
	"github.com/dogwood008/kabucom-pl-calendar/src/processors"
	"github.com/dogwood008/kabucom-pl-calendar/src/security/validation"
)

const (
	ckDefaultRecords = "records_default"
	ckPathRecords    = "records_path_"
)

type tradeServiceImpl struct {
	defaultCsvPath string
	csvDataDir     string
	recordCache    *cache.Cache
	aggregator     *processors.TradeAggregator
	warnedKeys     sync.Map
}

// NewTradeService wires the ingestion pipeline to an injectable cache so each
// test can construct a fresh instance instead of sharing process-global state.
func NewTradeService(
	defaultCsvPath string,
	csvDataDir string,
	recordCache *cache.Cache,
	aggregator *processors.TradeAggregator,
) TradeService {
	return &tradeServiceImpl{
		defaultCsvPath: defaultCsvPath,
		csvDataDir:     csvDataDir,
		recordCache:    recordCache,
		aggregator:     aggregator,
	}
}

func (s *tradeServiceImpl) GetTradeDataForYear(year int, source CsvSource) (*models.TradeDataForYear, error) {
	records, err := s.LoadTradeRecords(source)
	if err != nil {
		return nil, err
	}
	result := s.aggregator.Aggregate(records, year)
	return &result, nil
}

func (s *tradeServiceImpl) LoadTradeRecords(source CsvSource) ([]models.TradeRecord, error) {
	switch source.kind {
	case sourceInline:
		// Inline content has no stable identity, so it is never cached.
		return sanitizeRecords(parsers.MapRowsToRecords(csv.Parse(source.content))), nil
	case sourceRaw:
		return sanitizeRecords(parsers.MapRowsToRecords(csv.Parse(csv.DecodeBuffer(source.data)))), nil
	case sourcePath:
		resolved, err := validation.ResolveCsvPath(s.csvDataDir, source.path)
		if err != nil {
			return nil, err
		}
		return s.loadCached(ckPathRecords+resolved, resolved), nil
	default:
		return s.loadCached(ckDefaultRecords, s.defaultCsvPath), nil
	}
}

func (s *tradeServiceImpl) InvalidateCache() {
	s.recordCache.Flush()
}

// loadCached returns the parsed records for a cache key, reading and parsing
// the file on a miss. Concurrent callers may race to populate the same key;
// the parse is deterministic, so last-write-wins is safe and duplicate work is
// tolerated instead of adding single-flight machinery.
func (s *tradeServiceImpl) loadCached(key, path string) []models.TradeRecord {
	if cached, found := s.recordCache.Get(key); found {
		return cached.([]models.TradeRecord)
	}
	records := s.readAndParse(key, path)
	s.recordCache.Set(key, records, cache.DefaultExpiration)
	return records
}

// readAndParse runs bytes -> text -> rows -> records for one file. A missing
// or unreadable file degrades to an empty record list: the calendar stays
// usable with zero trade data, the failure is logged once per cache key, and
// the empty list is cached so known-bad sources are not re-read per request.
func (s *tradeServiceImpl) readAndParse(key, path string) []models.TradeRecord {
	buf, err := os.ReadFile(path)
	if err != nil {
		s.warnOnce(key, "Failed to read trade CSV", path, err)
		return []models.TradeRecord{}
	}

	records := parsers.MapRowsToRecords(csv.Parse(csv.DecodeBuffer(buf)))
	if records == nil {
		records = []models.TradeRecord{}
	}
	return records
}

func (s *tradeServiceImpl) warnOnce(key, msg, path string, err error) {
	if _, alreadyWarned := s.warnedKeys.LoadOrStore(key, true); !alreadyWarned {
		logger.L.Warn(msg, "path", path, "error", err)
	}
}

// sanitizeRecords strips HTML and unprintable characters from the free-text
// fields of records parsed from untrusted content, before they reach the UI.
func sanitizeRecords(records []models.TradeRecord) []models.TradeRecord {
	for i := range records {
		records[i].Symbol = validation.SanitizeTradeText(records[i].Symbol)
		records[i].ContractMonth = validation.SanitizeTradeText(records[i].ContractMonth)
		records[i].Side = validation.SanitizeTradeText(records[i].Side)
		records[i].Action = validation.SanitizeTradeText(records[i].Action)
	}
	return records
}
