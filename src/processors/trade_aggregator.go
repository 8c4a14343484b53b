// src/processors/trade_aggregator.go
package processors

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dogwood008/kabucom-pl-calendar/src/models"
)

// TradeAggregator folds canonical trade records into per-day summaries and
// per-day trade lists for one calendar year. It holds no state; every call
// recomputes the result in full from the records it is given.
type TradeAggregator struct{}

func NewTradeAggregator() *TradeAggregator { return &TradeAggregator{} }

// Aggregate filters records to the requested year and folds them per day.
// Year membership is a string-prefix match on IsoDate, which is exact because
// the canonical date format is fixed-width and zero-padded. The per-day trade
// lists come back sorted ascending by IsoDateTime; for that field lexical
// order equals chronological order, and the stable sort preserves source row
// order between trades with identical timestamps.
func (a *TradeAggregator) Aggregate(records []models.TradeRecord, year int) models.TradeDataForYear {
	yearPrefix := strconv.Itoa(year) + "-"
	summaries := make(map[string]models.DailyTradeSummary)
	tradesByDate := make(map[string][]models.TradeRecord)

	for _, record := range records {
		if !strings.HasPrefix(record.IsoDate, yearPrefix) {
			continue
		}

		summary, ok := summaries[record.IsoDate]
		if !ok {
			summary.IsoDate = record.IsoDate
		}
		summary.TradeCount++
		summary.TotalQuantity += record.Quantity
		switch record.Side {
		case models.SideBuy:
			summary.BuyCount++
		case models.SideSell:
			summary.SellCount++
		}
		summary.NetProfit += record.NetProfit
		summaries[record.IsoDate] = summary

		tradesByDate[record.IsoDate] = append(tradesByDate[record.IsoDate], record)
	}

	for _, trades := range tradesByDate {
		sort.SliceStable(trades, func(i, j int) bool {
			return trades[i].IsoDateTime < trades[j].IsoDateTime
		})
	}

	return models.TradeDataForYear{
		Summaries:    summaries,
		TradesByDate: tradesByDate,
	}
}
