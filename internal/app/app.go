package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	"BiasLab/internal/api"
	"BiasLab/internal/config"
	"BiasLab/internal/infrastructure/extractor"
	"BiasLab/internal/infrastructure/llm"
	"BiasLab/internal/infrastructure/scheduler"
	"BiasLab/internal/infrastructure/storage"
	"BiasLab/internal/infrastructure/telegram"
	"BiasLab/internal/logging"
	"BiasLab/internal/metrics"
	"BiasLab/internal/ports"
	"BiasLab/internal/scoring"
	"BiasLab/internal/usecase"
	"BiasLab/pkg/logger"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	server   *http.Server
	reporter *usecase.Reporter
	db       *sql.DB
}

// New builds a runnable application instance. A missing OpenAI key or
// database DSN degrades the respective capability instead of failing
// startup.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	systemMetrics := metrics.NewSystem()
	businessMetrics := metrics.NewBusiness()

	fetcher := extractor.New(
		&http.Client{Timeout: cfg.Fetcher.Timeout()},
		cfg.Fetcher.UserAgent,
		baseLogger.With("component", "extractor"),
	)

	var completion ports.CompletionClient
	if cfg.OpenAI.APIKey != "" {
		completion = llm.NewOpenAIClient(cfg.OpenAI)
	} else {
		baseLogger.Warn("no OpenAI API key configured; all scoring will degrade")
	}

	scorer := scoring.NewScorer(completion, systemMetrics, baseLogger.With("component", "scorer"))

	var db *sql.DB
	var repository ports.AnalysisRepository
	if cfg.Database.DSN != "" {
		opened, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		db = opened
		repository = storage.NewPostgresRepository(db)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Fetcher:    fetcher,
		Scorer:     scorer,
		Metrics:    systemMetrics,
		Business:   businessMetrics,
		Repository: repository,
		Logger:     baseLogger.With("component", "pipeline"),
	})

	var notifier ports.Notifier
	if tg := cfg.Notifications.Telegram; tg.BotToken != "" && tg.ChatID != "" {
		notifier = telegram.NewNotifier(tg.BotToken, tg.ChatID)
	}

	reporter := usecase.NewReporter(
		scheduler.NewIntervalScheduler(cfg.Reporting.Interval()),
		systemMetrics,
		notifier,
		baseLogger.With("component", "reporter"),
	)

	apiServer := api.NewServer(pipeline, systemMetrics, businessMetrics, baseLogger.With("component", "api"))

	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		reporter: reporter,
		db:       db,
		server: &http.Server{
			Addr:         cfg.Server.Address,
			Handler:      apiServer.Router(),
			ErrorLog:     logger.New("http"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 90 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
	}, nil
}

// Run serves HTTP until the context is canceled, then shuts down.
func (a *Application) Run(ctx context.Context) error {
	if err := a.reporter.Start(ctx); err != nil {
		return fmt.Errorf("start reporter: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.ListenAndServe()
	}()

	a.logger.Info("bias lab platform initialized", "address", a.cfg.Server.Address)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		_ = a.reporter.Stop(shutdownCtx)
		if a.db != nil {
			_ = a.db.Close()
		}

		a.logger.Info("bias lab platform shutting down")
		return a.server.Shutdown(shutdownCtx)
	}
}
