// Package server initializes and runs the main application server.
// It opens the store connection, applies schema migrations, wires the
// services and starts the HTTP server with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/proplusapp/proplus/internal/logging"
	"github.com/proplusapp/proplus/internal/server/config"
	"github.com/proplusapp/proplus/internal/server/httpapi"
	"github.com/proplusapp/proplus/internal/server/migrations"
	projectsrepo "github.com/proplusapp/proplus/internal/server/repositories/projects"
	usersrepo "github.com/proplusapp/proplus/internal/server/repositories/users"
	"github.com/proplusapp/proplus/internal/server/services"
)

// connectTimeout bounds the startup ping so an unreachable store fails fast.
const connectTimeout = 5 * time.Second

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	httpServer *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewJSON()

	db, err := OpenDB(cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	us := services.NewUserService(usersrepo.NewPostgresRepository(db), cfg)
	ps := services.NewProjectService(projectsrepo.NewPostgresRepository(db))

	hs := httpapi.NewServer(cfg.EndpointAddr, cfg.CORSOrigin, logger, us, ps)

	return &App{config: cfg, logger: logger, db: db, httpServer: hs}, nil
}

// OpenDB opens the store connection and verifies it with a bounded ping.
func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return db, nil
}

// RunMigrations sets up goose with the embedded migrations and applies them.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close error", "error", err)
	}
}
