// src/handlers/trade_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dogwood008/kabucom-pl-calendar/src/calendar"
	"github.com/dogwood008/kabucom-pl-calendar/src/logger"
	"github.com/dogwood008/kabucom-pl-calendar/src/security/validation"
	"github.com/dogwood008/kabucom-pl-calendar/src/services"
)

// TradeHandler serves the bare trade data consumed by the chart layer.
type TradeHandler struct {
	tradeService services.TradeService
}

func NewTradeHandler(tradeService services.TradeService) *TradeHandler {
	return &TradeHandler{tradeService: tradeService}
}

// HandleGetTrades serves GET /api/trades?year=&csvPath=.
func (h *TradeHandler) HandleGetTrades(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	year, err := calendar.ParseYear(r.URL.Query().Get("year"), time.Now().Year())
	if err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	source := services.DefaultCsvSource()
	if strings.TrimSpace(r.URL.Query().Get("csvPath")) != "" {
		source = services.PathCsvSource(r.URL.Query().Get("csvPath"))
	}

	tradeData, err := h.tradeService.GetTradeDataForYear(year, source)
	if err != nil {
		if errors.Is(err, validation.ErrPathOutsideRoot) {
			sendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		ctxLogger.Error("Failed to load trade data", "year", year, "error", err)
		sendJSONError(w, "failed to load trade data", http.StatusInternalServerError)
		return
	}

	writeJSON(w, tradeData)
}
