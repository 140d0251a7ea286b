package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finpal-server/src/api"
	"finpal-server/src/auth"
	"finpal-server/src/config"
	"finpal-server/src/db"
	"finpal-server/src/db/migrations"
	dbsql "finpal-server/src/db/sql"
	"finpal-server/src/genai"
	"finpal-server/src/logger"
	"finpal-server/src/middleware"
	"finpal-server/src/quiz"
	"finpal-server/src/service"
	"finpal-server/src/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

// setup loads configuration and initialises the process logger.
func setup() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(cfg.LogDevelopment, cfg.LogLevel); err != nil {
		return config.Config{}, fmt.Errorf("init logger: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cfg config.Config) error {
	log := logger.Get()

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	verifier, err := auth.NewVerifier(auth.Config{
		JWKSURL:            cfg.AuthJWKSURL,
		Issuer:             cfg.AuthIssuer,
		Audience:           cfg.AuthAudience,
		HMACSecret:         cfg.AuthHMACSecret,
		CacheTTL:           cfg.AuthJWKSCacheTTL,
		MinRefreshInterval: time.Minute,
	})
	if err != nil {
		return err
	}

	catalog, err := quiz.Default()
	if err != nil {
		return fmt.Errorf("load quiz catalog: %w", err)
	}

	gen := genai.New(cfg, nil)
	svc := service.New(st, gen, catalog, service.Policy{
		SoftFailListSpending: cfg.SoftFailListSpending,
		SoftFailSaveGoal:     cfg.SoftFailSaveGoal,
	})

	router := api.NewRouter(svc, verifier, api.Options{
		StagePrefix: cfg.StagePrefix,
		ReadOnly:    cfg.ReadOnly,
		RateLimiter: middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("API server running",
			zap.String("port", cfg.Port),
			zap.String("store", cfg.Store),
			zap.String("llm_provider", cfg.LLMProvider),
			zap.Bool("read_only", cfg.ReadOnly))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// openStore returns the configured store and a function releasing it.
func openStore(ctx context.Context, cfg config.Config) (store.Store, func(), error) {
	if cfg.Store == config.StoreMemory {
		logger.Get().Warn("using in-memory store; data is lost on restart")
		return store.NewMemory(), func() {}, nil
	}

	conn, err := connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if cfg.DBMigrateOnStart {
		if err := migrations.Apply(ctx, conn); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return dbsql.NewPostgres(db.NewExecutor(conn)), func() { conn.Close() }, nil
}

func connect(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	conn, err := db.Connect(connectCtx, cfg.DatabaseURL, cfg.DBReuseConnections)
	if err != nil {
		return nil, fmt.Errorf("DB connection failed: %w", err)
	}
	return conn, nil
}
