// src/models/trade.go
package models

// TradeRecord is the canonical, broker-agnostic representation of one executed
// trade. Each schema's extractor populates every field directly from the source
// row; records are never mutated after construction.
type TradeRecord struct {
	IsoDate     string `json:"isoDate"`     // YYYY-MM-DD
	IsoTime     string `json:"isoTime"`     // HH:MM
	IsoDateTime string `json:"isoDateTime"` // YYYY-MM-DDTHH:MM:SS, sole same-day sort key

	Symbol        string `json:"symbol"`
	ContractMonth string `json:"contractMonth"`
	Side          string `json:"side"`
	Action        string `json:"action"`

	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	Fee         float64 `json:"fee"`
	GrossProfit float64 `json:"grossProfit"`
	// NetProfit is whichever broker-reported figure is authoritative for the
	// source schema, not necessarily GrossProfit - Fee.
	NetProfit float64 `json:"netProfit"`
}

// Broker-local side literals used when classifying buy/sell counts.
const (
	SideBuy  = "買"
	SideSell = "売"
)

// DailyTradeSummary is the per-day fold of all TradeRecords sharing one
// IsoDate. It is recomputed in full on every aggregation call.
type DailyTradeSummary struct {
	IsoDate       string  `json:"isoDate"`
	TradeCount    int     `json:"tradeCount"`
	BuyCount      int     `json:"buyCount"`
	SellCount     int     `json:"sellCount"`
	TotalQuantity float64 `json:"totalQuantity"`
	NetProfit     float64 `json:"netProfit"`
}

// TradeDataForYear is the unit handed to the calendar/API layer. TradesByDate
// slices are sorted ascending by IsoDateTime.
type TradeDataForYear struct {
	Summaries    map[string]DailyTradeSummary `json:"summaries"`
	TradesByDate map[string][]TradeRecord     `json:"tradesByDate"`
}
