package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"debt-planner/config"
	"debt-planner/database"
	httpLayer "debt-planner/http"
	"debt-planner/repository"
	"debt-planner/service"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const redisPingTimeout = 3 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), a.cfg)
		},
	}
}

// backend is everything the HTTP server depends on, plus what must be
// released on shutdown.
type backend struct {
	services httpLayer.Services
	closers  []func()
}

func (b *backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func newBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	b := &backend{}

	cache := newCache(ctx, cfg.Redis, b)

	var (
		debtRepo repository.DebtRepository = repository.NewDebtRepositoryMemory()
		planRepo repository.PlanRepository = repository.NewPlanRepositoryMemory()
	)
	if cfg.Database.URL != "" {
		if cfg.Database.AutoMigrate {
			if err := database.MigrateUp(cfg.Database.URL); err != nil {
				b.Close()
				return nil, err
			}
		}
		db, err := database.NewConnection(ctx, cfg.Database.URL)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.closers = append(b.closers, db.Close)
		debtRepo = repository.NewDebtRepositoryPostgres(db)
		planRepo = repository.NewPlanRepositoryPostgres(db)
		log.Info("Using Postgres storage")
	} else {
		log.Info("DATABASE_URL not set, using in-memory storage")
	}

	completer, err := newCompleter(ctx, cfg.Advisor)
	if err != nil {
		b.Close()
		return nil, err
	}

	plans := service.NewPlanService(debtRepo, planRepo, cache, service.NewAdvisorService(completer), service.PlanSettings{
		HybridWeights: cfg.Planner.HybridWeights,
		MaxDebts:      cfg.Planner.MaxDebts,
		MaxMonths:     cfg.Planner.MaxMonths,
		Epsilon:       cfg.Planner.Epsilon,
		CacheTTL:      cfg.Redis.CacheTTL,
	})

	b.services = httpLayer.Services{
		Plans:     plans,
		Budgets:   service.NewBudgetRecommendationService(plans),
		Estimates: service.NewEstimateService(),
		Health:    service.NewHealthService(cfg.Planner.DTIThresholds),
		Debts:     service.NewDebtService(debtRepo, cfg.Planner.MaxDebts),
	}
	return b, nil
}

// newCache prefers Redis and falls back to process memory when Redis is
// not configured or not reachable.
func newCache(ctx context.Context, cfg config.RedisConfig, b *backend) repository.CacheRepository {
	if cfg.Addr == "" {
		return repository.NewMemoryCache()
	}

	rc := repository.NewRedisCache(cfg.Addr, cfg.Password, cfg.DB)
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		log.WithField("addr", cfg.Addr).Warnf("Redis unavailable, using in-memory cache: %v", err)
		_ = rc.Close()
		return repository.NewMemoryCache()
	}

	b.closers = append(b.closers, func() {
		if err := rc.Close(); err != nil {
			log.Warnf("Error closing redis: %v", err)
		}
	})
	log.WithField("addr", cfg.Addr).Info("Using Redis plan cache")
	return rc
}

// newCompleter returns nil when no advisor is configured.
func newCompleter(ctx context.Context, cfg config.AdvisorConfig) (service.Completer, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "openai":
		return service.NewOpenAICompleter(cfg.APIKey, cfg.APIURL, cfg.Model, cfg.Timeout), nil
	case "gemini":
		c, err := service.NewGeminiCompleter(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("create gemini advisor: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("invalid advisor provider: %s", cfg.Provider)
	}
}

func runServe(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	b, err := newBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Window)
	defer rateLimiter.Stop()

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      httpLayer.NewRouter(b.services, rateLimiter),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return fmt.Errorf("error starting server: %w", err)
	case <-quit:
		log.Info("Shutting down server...")
	case <-ctx.Done():
		log.Info("Context cancelled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Error during server shutdown: %v", err)
		return err
	}

	log.Info("Server exited")
	return nil
}
