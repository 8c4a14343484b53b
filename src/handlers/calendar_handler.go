// src/handlers/calendar_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dogwood008/kabucom-pl-calendar/src/calendar"
	"github.com/dogwood008/kabucom-pl-calendar/src/logger"
	"github.com/dogwood008/kabucom-pl-calendar/src/models"
	"github.com/dogwood008/kabucom-pl-calendar/src/security/validation"
	"github.com/dogwood008/kabucom-pl-calendar/src/services"
)

// CalendarHandler serves the year calendar merged with the trade data that
// colors it.
type CalendarHandler struct {
	tradeService       services.TradeService
	spreadsheetService services.SpreadsheetService
	maxUploadSizeBytes int64
}

func NewCalendarHandler(
	tradeService services.TradeService,
	spreadsheetService services.SpreadsheetService,
	maxUploadSizeBytes int64,
) *CalendarHandler {
	return &CalendarHandler{
		tradeService:       tradeService,
		spreadsheetService: spreadsheetService,
		maxUploadSizeBytes: maxUploadSizeBytes,
	}
}

// calendarResponse flattens the calendar grid and the trade data into one
// payload for the UI.
type calendarResponse struct {
	calendar.CalendarYear
	Summaries    map[string]models.DailyTradeSummary `json:"summaries"`
	TradesByDate map[string][]models.TradeRecord     `json:"tradesByDate"`
}

// HandleGetCalendar serves GET /api/calendar?year=&csvPath=&source=.
func (h *CalendarHandler) HandleGetCalendar(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())
	now := time.Now()

	year, err := calendar.ParseYear(r.URL.Query().Get("year"), now.Year())
	if err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	source := services.DefaultCsvSource()
	switch {
	case r.URL.Query().Get("source") == "spreadsheet":
		data, fetchErr := h.spreadsheetService.FetchCsv(r.Context())
		if errors.Is(fetchErr, services.ErrSpreadsheetNotConfigured) {
			sendJSONError(w, fetchErr.Error(), http.StatusServiceUnavailable)
			return
		}
		if fetchErr != nil {
			ctxLogger.Warn("Spreadsheet fetch failed", "error", fetchErr)
			sendJSONError(w, "failed to fetch spreadsheet data", http.StatusBadGateway)
			return
		}
		source = services.RawCsvSource(data)
	case strings.TrimSpace(r.URL.Query().Get("csvPath")) != "":
		source = services.PathCsvSource(r.URL.Query().Get("csvPath"))
	}

	h.respondCalendar(w, r, year, source, now)
}

type uploadCalendarRequest struct {
	Year       int    `json:"year"`
	CsvContent string `json:"csvContent"`
}

// HandleUploadCalendar serves POST /api/calendar/upload. The body is either
// JSON {year, csvContent} or a multipart form with a "file" part; multipart
// bytes go through encoding detection since browsers do not decode them.
func (h *CalendarHandler) HandleUploadCalendar(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())
	now := time.Now()

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		h.handleMultipartUpload(w, r, now)
		return
	}

	var req uploadCalendarRequest
	body := io.LimitReader(r.Body, h.maxUploadSizeBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		ctxLogger.Warn("Failed to decode upload body", "error", err)
		sendJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	year := req.Year
	if year == 0 {
		year = now.Year()
	}
	if year < 0 {
		sendJSONError(w, calendar.ErrInvalidYear.Error(), http.StatusBadRequest)
		return
	}

	if err := validation.ValidateCsvContent([]byte(req.CsvContent)); err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.respondCalendar(w, r, year, services.InlineCsvSource(req.CsvContent), now)
}

func (h *CalendarHandler) handleMultipartUpload(w http.ResponseWriter, r *http.Request, now time.Time) {
	ctxLogger := logger.FromContext(r.Context())

	if err := r.ParseMultipartForm(h.maxUploadSizeBytes); err != nil {
		ctxLogger.Warn("Failed to parse multipart form or request too large", "error", err, "limit", h.maxUploadSizeBytes)
		sendJSONError(w, fmt.Sprintf("failed to process upload or file too large (max %d MB)", h.maxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	year, err := calendar.ParseYear(r.FormValue("year"), now.Year())
	if err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		ctxLogger.Warn("Failed to retrieve file from request", "error", err)
		sendJSONError(w, "failed to retrieve file from request; ensure the 'file' field is used", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if clientContentType := fileHeader.Header.Get("Content-Type"); clientContentType != "" {
		if err := validation.ValidateClientContentType(clientContentType); err != nil {
			sendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	buf, err := io.ReadAll(io.LimitReader(file, h.maxUploadSizeBytes))
	if err != nil {
		ctxLogger.Warn("Failed to read uploaded file", "error", err)
		sendJSONError(w, "failed to read uploaded file", http.StatusBadRequest)
		return
	}
	if err := validation.ValidateCsvContent(buf); err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctxLogger.Info("Processing CSV upload", "filename", fileHeader.Filename, "size", len(buf))
	h.respondCalendar(w, r, year, services.RawCsvSource(buf), now)
}

func (h *CalendarHandler) respondCalendar(w http.ResponseWriter, r *http.Request, year int, source services.CsvSource, now time.Time) {
	ctxLogger := logger.FromContext(r.Context())

	yearCalendar, err := calendar.NewYearCalendar(year, now)
	if err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
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

	writeJSON(w, calendarResponse{
		CalendarYear: *yearCalendar,
		Summaries:    tradeData.Summaries,
		TradesByDate: tradeData.TradesByDate,
	})
}
