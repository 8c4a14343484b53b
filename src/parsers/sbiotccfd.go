// src/parsers/sbiotccfd.go
package parsers

import "github.com/dogwood008/kabucom-pl-calendar/src/models"

// SBI OTC CFD export. No contract-month or fee columns exist in this format.
//
// Authoritative profit rule: prefer 受渡金額(円) (settlement amount) when it is
// non-zero; otherwise net P&L is reconstructed from its components, the
// position P&L plus the interest, price and funding-rate adjustments.
var sbiOtcCfdSchema = TradeCsvSchema{
	ID:             "sbiOtcCfd",
	RequiredFields: []string{"約定日時", "売/買", "数量", "建玉損益(円)"},
	ParseRecord:    parseSbiOtcCfdRecord,
}

func parseSbiOtcCfdRecord(row []string, fieldIndices FieldIndexMap) *models.TradeRecord {
	dateTime := ParseDateTime(readField(row, fieldIndices, "約定日時"))
	if dateTime == nil {
		return nil
	}

	grossProfit := ParseCurrency(readField(row, fieldIndices, "建玉損益(円)"))
	interest := ParseCurrency(readField(row, fieldIndices, "金利調整額合計(円)"))
	priceAdjustment := ParseCurrency(readField(row, fieldIndices, "価格調整額合計(円)"))
	funding := ParseCurrency(readField(row, fieldIndices, "ファンディングレート合計(円)"))
	settlementAmount := ParseCurrency(readField(row, fieldIndices, "受渡金額(円)"))

	netProfit := grossProfit + interest + priceAdjustment + funding
	if settlementAmount != 0 {
		netProfit = settlementAmount
	}

	return &models.TradeRecord{
		IsoDate:       dateTime.IsoDate,
		IsoTime:       dateTime.IsoTime,
		IsoDateTime:   dateTime.IsoDateTime,
		Symbol:        readTrimmedField(row, fieldIndices, "銘柄"),
		ContractMonth: "",
		Side:          readTrimmedField(row, fieldIndices, "売/買"),
		Action:        readTrimmedField(row, fieldIndices, "取引区分"),
		Quantity:      ParseDecimal(readField(row, fieldIndices, "数量")),
		Price:         ParseDecimal(readField(row, fieldIndices, "約定価格")),
		Fee:           0,
		GrossProfit:   grossProfit,
		NetProfit:     netProfit,
	}
}
