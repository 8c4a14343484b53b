// src/parsers/gmoclick.go
package parsers

import "github.com/dogwood008/kabucom-pl-calendar/src/models"

// GMO Click CFD export. The execution timestamp arrives as one combined cell.
//
// Authoritative profit rule: prefer 実現損益（円換算額） (currency-converted
// realized P&L) when it is present and non-zero, otherwise fall back to the
// nominal 実現損益（円貨）. Fees are itemized across four columns and summed.
var gmoClickSchema = TradeCsvSchema{
	ID: "gmoClick",
	RequiredFields: []string{
		"約定日時",
		"取引区分",
		"売買区分",
		"約定数量",
		"約定単価",
		"銘柄名",
		"実現損益（円貨）",
	},
	ParseRecord: parseGmoClickRecord,
}

func parseGmoClickRecord(row []string, fieldIndices FieldIndexMap) *models.TradeRecord {
	dateTime := ParseDateTime(readField(row, fieldIndices, "約定日時"))
	if dateTime == nil {
		return nil
	}

	realizedProfit := ParseCurrency(readField(row, fieldIndices, "実現損益（円貨）"))
	realizedProfitConverted := ParseCurrency(readField(row, fieldIndices, "実現損益（円換算額）"))
	netProfit := realizedProfit
	if realizedProfitConverted != 0 {
		netProfit = realizedProfitConverted
	}

	fee := ParseCurrency(readField(row, fieldIndices, "手数料")) +
		ParseCurrency(readField(row, fieldIndices, "手数料消費税")) +
		ParseCurrency(readField(row, fieldIndices, "新規手数料")) +
		ParseCurrency(readField(row, fieldIndices, "新規手数料消費税"))

	return &models.TradeRecord{
		IsoDate:       dateTime.IsoDate,
		IsoTime:       dateTime.IsoTime,
		IsoDateTime:   dateTime.IsoDateTime,
		Symbol:        readTrimmedField(row, fieldIndices, "銘柄名"),
		ContractMonth: readTrimmedField(row, fieldIndices, "限月"),
		Side:          readTrimmedField(row, fieldIndices, "売買区分"),
		Action:        readTrimmedField(row, fieldIndices, "取引区分"),
		Quantity:      ParseDecimal(readField(row, fieldIndices, "約定数量")),
		Price:         ParseDecimal(readField(row, fieldIndices, "約定単価")),
		Fee:           fee,
		GrossProfit:   realizedProfit,
		NetProfit:     netProfit,
	}
}
