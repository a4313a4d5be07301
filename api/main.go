package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rogerio-castellano/product-api/internal/auth"
	"github.com/rogerio-castellano/product-api/internal/config"
	"github.com/rogerio-castellano/product-api/internal/db"
	"github.com/rogerio-castellano/product-api/internal/http/ban"
	"github.com/rogerio-castellano/product-api/internal/http/handlers"
	mw "github.com/rogerio-castellano/product-api/internal/http/middleware"
	"github.com/rogerio-castellano/product-api/internal/http/router"
	"github.com/rogerio-castellano/product-api/internal/logger"
	"github.com/rogerio-castellano/product-api/internal/redissvc"
	"github.com/rogerio-castellano/product-api/internal/repo"
	"github.com/rogerio-castellano/product-api/internal/seed"
	"go.uber.org/zap"
)

type storage struct {
	products repo.ProductRepository
	users    repo.UserRepository
	ping     func(ctx context.Context) error
	close    func() error
}

func openStorage(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*storage, error) {
	if cfg.Driver == config.DriverMemory {
		log.Warn("using in-memory storage, data is lost on restart")
		return &storage{
			products: repo.NewInMemoryProductRepository(),
			users:    repo.NewInMemoryUserRepository(),
			close:    func() error { return nil },
		}, nil
	}

	database, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, database); err != nil {
		database.Close()
		return nil, err
	}
	return newPostgresStorage(database, cfg.QueryTimeout), nil
}

func newPostgresStorage(database *sql.DB, timeout time.Duration) *storage {
	return &storage{
		products: repo.NewPostgresProductRepository(database, timeout),
		users:    repo.NewPostgresUserRepository(database, timeout),
		ping:     database.PingContext,
		close:    database.Close,
	}
}

func newBanStore(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) (ban.Store, func() error, error) {
	if cfg.Addr == "" {
		log.Info("redis not configured, keeping strikes in memory")
		return ban.NewMemoryStore(), func() error { return nil }, nil
	}

	redisService, err := redissvc.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return ban.NewRedisStore(redisService.Rdb()), redisService.Close, nil
}

// @title Product API
// @version 1.0
// @description REST API for managing a product catalogue.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	configPath := flag.String("config", "", "path to an optional config file")
	seedCount := flag.Int("seed", 0, "insert N fake products and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer logg.Sync()

	if err := run(cfg, *seedCount, logg); err != nil {
		logg.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, seedCount int, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer store.close()

	if seedCount > 0 {
		_, err := seed.Seed(ctx, store.products, seed.NewGenerator(0), seedCount, log)
		return err
	}

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	h := handlers.NewHandler(handlers.Dependencies{
		Products: store.products,
		Users:    store.users,
		Tokens:   tokens,
		Logger:   log,
		Ping:     store.ping,
	})

	var limiter *mw.RateLimiter
	if cfg.RateLimit.Enabled {
		banStore, closeBans, err := newBanStore(ctx, cfg.Redis, log)
		if err != nil {
			return err
		}
		defer closeBans()

		limiter = mw.NewRateLimiter(cfg.RateLimit, ban.NewBanner(banStore, cfg.Ban, log), log)
		go limiter.StartCleanupLoop(ctx, time.Minute)
	}

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			Handler:     h,
			Tokens:      tokens,
			Logger:      log,
			RateLimiter: limiter,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", srv.Addr), zap.String("driver", cfg.Database.Driver))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
