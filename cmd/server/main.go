package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/geoquiz/backend/internal/api"
	"github.com/geoquiz/backend/internal/infrastructure/config"
	"github.com/geoquiz/backend/internal/provider"
	"github.com/geoquiz/backend/internal/schedule"
	"github.com/geoquiz/backend/internal/scraper"
	"github.com/geoquiz/backend/internal/service"

	_ "github.com/geoquiz/backend/docs" // generated swagger docs
)

// @title           Geoquiz API
// @version         1.0
// @description     Quiz on countries, capitals and flags.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	// ── Data ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src := scraper.New(scraper.Config{
		CapitalsURL:    cfg.CapitalsURL,
		ArticleBaseURL: cfg.WikiBaseURL,
		Timeout:        cfg.HTTPTimeout,
	}, logger)
	data := provider.New(provider.Config{
		CachePath:   cfg.CachePath,
		FlagsDir:    cfg.FlagsDir,
		FlagWorkers: cfg.FlagWorkers,
	}, src, logger)

	d, err := data.Load(ctx)
	if err != nil {
		logger.Error("failed to load dataset", "error", err)
		os.Exit(1)
	}

	// ── Dependencies ────────────────────────────────────────────────
	clock := schedule.Clock{}
	view := api.NewView(clock, cfg.InputFocusDelay, logger)
	quizSvc := service.NewQuizService(d, view, logger,
		service.WithScheduler(clock),
		service.WithResultDelay(cfg.ResultDelay),
	)
	handler := api.NewHandler(quizSvc, view, cfg.FlagsDir, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	server.RegisterOnShutdown(view.Close)

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress, "entries", d.Len())
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
