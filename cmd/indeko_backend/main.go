package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	portsrepo "github.com/indeko/indeko_backend/internal/core/ports/repositories"
	"github.com/indeko/indeko_backend/internal/core/services"
	"github.com/indeko/indeko_backend/internal/handlers"
	"github.com/indeko/indeko_backend/internal/ledger"
	"github.com/indeko/indeko_backend/internal/middleware"
	"github.com/indeko/indeko_backend/internal/platform/config"
	"github.com/indeko/indeko_backend/internal/repositories/database/pgsql"
	"github.com/indeko/indeko_backend/internal/utils"
	"github.com/indeko/indeko_backend/pkg/database"

	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Indeko Backend API
// @version 1.0
// @description Freelancer activity reporting with a tamper evident ledger.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	reconcileMode := flag.Bool("reconcile", false, "run the ledger reconciliation pass and exit")
	flag.Parse()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the git-backed ledger store
	store := ledger.NewGitStore(cfg.LedgerDir, cfg.LedgerCommitTimeout)
	if err := store.Init(context.Background()); err != nil {
		logger.Error("Failed to initialize ledger store", slog.String("error", err.Error()), slog.String("dir", cfg.LedgerDir))
		os.Exit(1)
	}
	logger.Info("Ledger store ready", slog.String("dir", cfg.LedgerDir))

	repos := pgsql.NewRepositoryProvider(dbPool)

	if *reconcileMode {
		runReconcile(repos, store, logger)
		return
	}

	serviceContainer := services.NewServiceContainer(repos, store)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()
	r.Use(middleware.PosthogMiddleware(posthogClient))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending database migrations. It opens a
// temporary database/sql connection via the pgx stdlib driver so the
// migrate tooling stays compatible with the main pool.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	if err := migrationDB.Ping(); err != nil {
		migrationDB.Close()
		return fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		migrationDB.Close()
		return fmt.Errorf("could not create postgres driver instance: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return fmt.Errorf("migration up failed: %w", upErr)
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("migration database error: %w", dbErr)
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// runReconcile executes one reconciliation pass over the ledger store and
// prints the outcome. This is the only place the reconcile service is wired;
// it is deliberately unreachable from HTTP handlers.
func runReconcile(repos portsrepo.RepositoryProvider, store portsrepo.LedgerStore, logger *slog.Logger) {
	reconcileSvc := services.NewReconcileService(
		repos.ReportRepo,
		repos.ReportAdminRepo,
		repos.EntryRepo,
		repos.LedgerCommitRepo,
		store,
		repos.TxManager,
	)

	result, err := reconcileSvc.ReconcileLedger(context.Background())
	if err != nil {
		logger.Error("Reconciliation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Error("Failed to render reconciliation result", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(string(out))

	logger.Info("Reconciliation complete",
		slog.Int("checked", result.CheckedReports),
		slog.Int("consistent", result.Consistent),
		slog.Int("relinked", len(result.Relinked)),
		slog.Int("orphans", len(result.Orphans)),
	)
	if len(result.Orphans) > 0 {
		os.Exit(2)
	}
}
