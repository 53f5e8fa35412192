package commands

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noel97chan-creator/IFRS16calculator/internal/buildinfo"
	"github.com/noel97chan-creator/IFRS16calculator/internal/config"
	"github.com/noel97chan-creator/IFRS16calculator/internal/gate"
	"github.com/noel97chan-creator/IFRS16calculator/internal/httpapi"
	"github.com/noel97chan-creator/IFRS16calculator/internal/leadcapture"
	"github.com/noel97chan-creator/IFRS16calculator/internal/logging"
	"github.com/noel97chan-creator/IFRS16calculator/internal/repository"
	"github.com/noel97chan-creator/IFRS16calculator/internal/resilience"
	"github.com/noel97chan-creator/IFRS16calculator/internal/tools"
	"github.com/noel97chan-creator/IFRS16calculator/internal/tracing"
)

const (
	shutdownTimeout = 15 * time.Second
	minSecretLength = 32
)

func newServeCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, cfg)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8000, "listen port (overrides PORT)")

	return cmd
}

func runServer(ctx context.Context, cfg *config.Config) error {
	// --- Logger ---
	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.Bool("lead_capture_configured", cfg.LeadCaptureURL != ""),
		zap.Bool("redis_configured", cfg.RedisAddr != ""),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Duration("download_token_ttl", cfg.DownloadTokenTTL),
	)

	// --- Tracing ---
	shutdownTracing, err := tracing.InitTracing(cfg.OTELServiceName, buildinfo.Version, cfg.OTELEndpoint, logger)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	// --- Lead store ---
	leads, closeLeads := newLeadRepository(ctx, cfg, logger)
	defer closeLeads()

	// --- Lead capture ---
	httpClient := &http.Client{Timeout: cfg.LeadCaptureTimeout}
	client := leadcapture.NewClient(
		httpClient,
		cfg.LeadCaptureURL,
		resilience.NewCircuitBreaker("lead-capture"),
		resilience.Config{MaxRetries: cfg.MaxRetries, InitialBackoff: cfg.InitialBackoff},
		logger,
	)
	secret, err := downloadTokenSecret(cfg, logger)
	if err != nil {
		return err
	}
	issuer := gate.NewIssuer(secret, cfg.DownloadTokenTTL)
	leadService := leadcapture.NewService(client, leads, issuer, logger)

	limiter := httpapi.NewRateLimiter(cfg.LeadRateLimit, cfg.LeadRateWindow)
	defer limiter.Stop()

	// --- Router ---
	router := httpapi.NewRouter(httpapi.Deps{
		Tools:       tools.Registry(cfg, tracing.Tracer),
		Leads:       leadService,
		Tokens:      issuer,
		LeadLimiter: limiter,
		Logger:      logger,
	})

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	// --- Graceful shutdown ---
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("server shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		return err
	}
	logger.Info("server stopped")
	return nil
}

// newLeadRepository использует Redis, если он задан и доступен, иначе хранит email в памяти
func newLeadRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.LeadRepository, func()) {
	if cfg.RedisAddr == "" {
		logger.Info("lead store: in-memory")
		return repository.NewLeadRepositoryMemory(), func() {}
	}

	redisRepo := repository.NewLeadRepositoryRedis(cfg.RedisAddr)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := redisRepo.Ping(pingCtx); err != nil {
		logger.Warn("redis unavailable, falling back to in-memory lead store",
			zap.String("addr", cfg.RedisAddr), zap.Error(err))
		_ = redisRepo.Close()
		return repository.NewLeadRepositoryMemory(), func() {}
	}

	logger.Info("lead store: redis", zap.String("addr", cfg.RedisAddr))
	return redisRepo, func() { _ = redisRepo.Close() }
}

// downloadTokenSecret возвращает секрет подписи токенов на скачивание.
// Без DOWNLOAD_TOKEN_SECRET генерируется случайный секрет: токены не переживают перезапуск.
func downloadTokenSecret(cfg *config.Config, logger *zap.Logger) (string, error) {
	if cfg.DownloadTokenSecret != "" {
		if len(cfg.DownloadTokenSecret) < minSecretLength {
			return "", fmt.Errorf("DOWNLOAD_TOKEN_SECRET must be at least %d bytes", minSecretLength)
		}
		return cfg.DownloadTokenSecret, nil
	}

	buf := make([]byte, minSecretLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating download token secret: %w", err)
	}
	logger.Warn("DOWNLOAD_TOKEN_SECRET is not set, using a random per-process secret; download tokens are invalidated on restart")
	return hex.EncodeToString(buf), nil
}
