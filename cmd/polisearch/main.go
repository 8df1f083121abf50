package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/politylink/polisearch/internal/config"
	"github.com/politylink/polisearch/internal/es"
	"github.com/politylink/polisearch/internal/graphql"
	logpkg "github.com/politylink/polisearch/internal/logger"
	"github.com/politylink/polisearch/internal/metrics"
	"github.com/politylink/polisearch/internal/termstats"
	chiTransport "github.com/politylink/polisearch/internal/transport/chi"
	billuc "github.com/politylink/polisearch/internal/usecase/bill"
	memberuc "github.com/politylink/polisearch/internal/usecase/member"
	speechuc "github.com/politylink/polisearch/internal/usecase/speech"
	wordclouduc "github.com/politylink/polisearch/internal/usecase/wordcloud"
	"github.com/politylink/polisearch/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting polisearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("index_base_url", cfg.Index.BaseURL),
		zap.String("data_url", cfg.Data.URL),
	)

	// Backing-service clients — process-lifetime, read-only singletons
	indexClient := es.NewClient(es.Config{
		BaseURL: cfg.Index.BaseURL,
		Timeout: time.Duration(cfg.Index.TimeoutSec) * time.Second,
	})
	dataClient := graphql.NewClient(graphql.Config{
		URL:     cfg.Data.URL,
		Timeout: time.Duration(cfg.Data.TimeoutSec) * time.Second,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Word-cloud catalogs and term-statistics table. A failure here degrades
	// the word-cloud endpoints but must not take down entity search.
	minutes, diets := loadCatalogs(ctx, dataClient, logger)

	statsStore := termstats.NewStore(cfg.TermStats.Path, logger)
	if err := statsStore.Reload(""); err != nil {
		logger.Warn("term stats not loaded", zap.Error(err))
	}
	if cfg.TermStats.Watch {
		go func() {
			if err := statsStore.Watch(ctx); err != nil {
				logger.Warn("term stats watcher stopped", zap.Error(err))
			}
		}()
	}

	// Use-case services
	billSvc := billuc.New(indexClient, dataClient, cfg.Index.Bills).
		WithDecay(billuc.Decay{Scale: cfg.Search.DecayScale, Weight: cfg.Search.DecayWeight})
	memberSvc := memberuc.New(indexClient, dataClient, cfg.Index.Members)
	speechSvc := speechuc.New(indexClient, dataClient, cfg.Index.Speeches)
	wordcloudSvc := wordclouduc.New(statsStore, minutes, diets)

	server := chiTransport.NewServer(billSvc, memberSvc, speechSvc, wordcloudSvc, statsStore, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.CORSMiddleware)
	r.Use(metrics.Middleware())
	r.Handle("/metrics", promhttp.Handler())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// loadCatalogs fetches the minutes and diet catalogs the word-cloud
// aggregation filters by. Empty catalogs on failure keep the endpoints up
// with empty results.
func loadCatalogs(
	ctx context.Context, client *graphql.Client, logger *zap.Logger,
) ([]wordclouduc.Minutes, []wordclouduc.Diet) {
	rawMinutes, err := client.AllMinutes(ctx)
	if err != nil {
		logger.Warn("fetch minutes catalog", zap.Error(err))
	}
	rawDiets, err := client.AllDiets(ctx)
	if err != nil {
		logger.Warn("fetch diet catalog", zap.Error(err))
	}

	minutes := make([]wordclouduc.Minutes, 0, len(rawMinutes))
	for _, m := range rawMinutes {
		date, err := time.Parse("2006-01-02", m.StartDateTime.DateString())
		if err != nil {
			continue
		}
		minutes = append(minutes, wordclouduc.Minutes{
			ID:            m.ID,
			Name:          m.Name,
			HasTranscript: m.NdlMinID != "",
			Date:          date,
		})
	}

	diets := make([]wordclouduc.Diet, 0, len(rawDiets))
	for _, d := range rawDiets {
		start, err := time.Parse("2006-01-02", d.StartDate.DateString())
		if err != nil {
			continue
		}
		end, err := time.Parse("2006-01-02", d.EndDate.DateString())
		if err != nil {
			continue
		}
		diets = append(diets, wordclouduc.Diet{Number: d.Number, Start: start, End: end})
	}

	logger.Info("loaded word-cloud catalogs",
		zap.Int("minutes", len(minutes)),
		zap.Int("diets", len(diets)),
	)
	return minutes, diets
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
