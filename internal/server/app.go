// Package server initializes and runs the gating server: it opens the
// database, applies migrations, picks the rate-limit counter store, and
// starts the HTTP endpoint with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/redis/go-redis/v9"

	"gripgate/internal/logging"
	"gripgate/internal/server/config"
	"gripgate/internal/server/httpapi"
	"gripgate/internal/server/ratelimit"
	"gripgate/internal/server/repositories/repomanager"
	"gripgate/internal/server/services"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	gating  *services.GatingService
	limiter *ratelimit.Limiter
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	limiter, err := newLimiter(c, logger)
	if err != nil {
		return nil, err
	}

	gs := services.NewGatingService(db, rm)

	return &App{config: c, logger: logger, db: db, gating: gs, limiter: limiter}, nil
}

// newLimiter wires the counter store: Redis when an address is configured,
// otherwise the in-process store (single-instance development only).
func newLimiter(c *config.Config, logger logging.Logger) (*ratelimit.Limiter, error) {
	userRate, err := ratelimit.ParseRate(c.UserRate)
	if err != nil {
		return nil, fmt.Errorf("user rate: %w", err)
	}
	ipRate, err := ratelimit.ParseRate(c.IPRate)
	if err != nil {
		return nil, fmt.Errorf("ip rate: %w", err)
	}

	var store ratelimit.CounterStore
	if c.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		})
		store = ratelimit.NewRedisStore(rdb)
	} else {
		store = ratelimit.NewMemoryStore()
	}

	limiter := ratelimit.NewLimiter(store, logger, c.LimiterTimeout)
	limiter.SetScope(ratelimit.ScopeUser, userRate)
	limiter.SetScope(ratelimit.ScopeIP, ipRate)

	return limiter, nil
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.gating,
		app.limiter, app.config.JWTSecret, app.config.CORSAllowedOrigins, app.config.RequestTimeout)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
