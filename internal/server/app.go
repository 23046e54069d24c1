// Package server wires the backend together: Postgres storage with goose
// migrations, the REST API and the gRPC health service.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dmitrijs2005/bijligrid/internal/logging"
	"github.com/dmitrijs2005/bijligrid/internal/server/config"
	gs "github.com/dmitrijs2005/bijligrid/internal/server/grpc"
	hs "github.com/dmitrijs2005/bijligrid/internal/server/http"
	"github.com/dmitrijs2005/bijligrid/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bijligrid/internal/server/services"
)

type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	http   runner
	grpc   runner
}

// OpenDatabase connects to Postgres and applies pending migrations.
func OpenDatabase(ctx context.Context, dsn string, m repomanager.RepositoryManager) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}
	return db, nil
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, "json", c.LogLevel)

	rm := repomanager.NewPostgresRepositoryManager()
	db, err := OpenDatabase(ctx, c.DatabaseDSN, rm)
	if err != nil {
		return nil, err
	}

	handler := hs.NewHandler(
		services.NewProfileService(db, rm),
		services.NewAssetService(db, rm),
		services.NewStatsService(),
		logger,
	)

	return &App{
		config: c,
		logger: logger,
		db:     db,
		http:   hs.NewServer(c.HTTPAddr, handler.Router(), logger),
		grpc:   gs.NewHealthServer(c.GRPCAddr, logger, db.PingContext, c.HealthProbeInterval),
	}, nil
}

// start runs r until it returns; a failure stops every other server.
func (app *App) start(ctx context.Context, cancelFunc context.CancelFunc, name string, r runner) {
	if err := r.Run(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled or one of the servers fails, then
// closes the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.start(ctx, cancelFunc, "http", app.http)
	}()
	go func() {
		defer wg.Done()
		app.start(ctx, cancelFunc, "grpc", app.grpc)
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(context.Background(), "db close error", "error", err)
		}
	}
	app.logger.Info(context.Background(), "App stopped")
}
