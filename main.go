package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/dogwood008/kabucom-pl-calendar/src/config"
	"github.com/dogwood008/kabucom-pl-calendar/src/handlers"
	"github.com/dogwood008/kabucom-pl-calendar/src/logger"
	"github.com/dogwood008/kabucom-pl-calendar/src/processors"
	"github.com/dogwood008/kabucom-pl-calendar/src/services"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded", "path", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("kabucom-pl-calendar server starting...")

	recordCache := cache.New(config.Cfg.CacheExpiration, config.Cfg.CacheCleanupInterval)
	aggregator := processors.NewTradeAggregator()

	tradeService := services.NewTradeService(
		config.Cfg.DefaultCsvPath,
		config.Cfg.CsvDataDir,
		recordCache,
		aggregator,
	)
	spreadsheetService := services.NewSpreadsheetService(
		config.Cfg.SpreadsheetEndpoint,
		config.Cfg.SpreadsheetPSK,
		config.Cfg.SpreadsheetTimeout,
	)

	calendarHandler := handlers.NewCalendarHandler(tradeService, spreadsheetService, config.Cfg.MaxUploadSizeBytes)
	tradeHandler := handlers.NewTradeHandler(tradeService)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(enableCORS)
	r.Use(rateLimitMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "kabucom-pl-calendar backend is running"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/calendar", calendarHandler.HandleGetCalendar)
		r.Post("/calendar/upload", calendarHandler.HandleUploadCalendar)
		r.Get("/trades", tradeHandler.HandleGetTrades)
	})

	publicDir, _ := filepath.Abs(config.Cfg.PublicDir)
	fileServer := http.FileServer(http.Dir(publicDir))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}
		if _, err := os.Stat(publicDir); err != nil {
			http.NotFound(w, r)
			return
		}
		fileServer.ServeHTTP(w, r)
	})

	serverAddr := config.Cfg.Host + ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
