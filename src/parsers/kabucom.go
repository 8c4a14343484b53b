// src/parsers/kabucom.go
package parsers

import "github.com/dogwood008/kabucom-pl-calendar/src/models"

// kabucom futures/options export. Date and time arrive in separate columns.
//
// Authoritative profit rule: 確定損益 (settled P&L) already accounts for fees,
// so it is taken as NetProfit verbatim instead of 売買損益 − 手数料.
var kabucomSchema = TradeCsvSchema{
	ID:             "kabucom",
	RequiredFields: []string{"成立日", "売買", "取引数量（枚）", "確定損益"},
	ParseRecord:    parseKabucomRecord,
}

func parseKabucomRecord(row []string, fieldIndices FieldIndexMap) *models.TradeRecord {
	isoDate := ToIsoDate(readField(row, fieldIndices, "成立日"))
	if isoDate == "" {
		return nil
	}

	isoTime := NormalizeTimeString(readField(row, fieldIndices, "成立時間"))

	return &models.TradeRecord{
		IsoDate:       isoDate,
		IsoTime:       isoTime,
		IsoDateTime:   isoDate + "T" + isoTime + ":00",
		Symbol:        readTrimmedField(row, fieldIndices, "銘柄"),
		ContractMonth: readTrimmedField(row, fieldIndices, "限月"),
		Side:          readTrimmedField(row, fieldIndices, "売買"),
		Action:        readTrimmedField(row, fieldIndices, "取引"),
		Quantity:      float64(ParseInteger(readField(row, fieldIndices, "取引数量（枚）"))),
		Price:         ParseDecimal(readField(row, fieldIndices, "成立値段")),
		Fee:           ParseCurrency(readField(row, fieldIndices, "手数料")),
		GrossProfit:   ParseCurrency(readField(row, fieldIndices, "売買損益")),
		NetProfit:     ParseCurrency(readField(row, fieldIndices, "確定損益")),
	}
}
