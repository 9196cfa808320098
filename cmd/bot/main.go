package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"max.ks1230/expense-bot/internal/clients/cache"
	"max.ks1230/expense-bot/internal/clients/tg"
	"max.ks1230/expense-bot/internal/config"
	"max.ks1230/expense-bot/internal/entity/expense"
	"max.ks1230/expense-bot/internal/logger"
	"max.ks1230/expense-bot/internal/model/ledger"
	"max.ks1230/expense-bot/internal/model/messages"
	"max.ks1230/expense-bot/internal/model/reports"
	"max.ks1230/expense-bot/internal/model/reset"
	"max.ks1230/expense-bot/internal/model/storage"
	"max.ks1230/expense-bot/internal/model/tracker"
	"max.ks1230/expense-bot/internal/tracing"
	"max.ks1230/expense-bot/internal/utils"
)

const shutdownTimeout = 5 * time.Second

type stateStorage interface {
	Load(ctx context.Context) expense.State
	Save(ctx context.Context, state expense.State) error
}

type reportCache interface {
	CacheReport(userID int64, option string, report string) error
	GetReport(userID int64, option string) (string, error)
	InvalidateCache(userID int64, options []string) error
}

func main() {
	defer logger.Sync()
	logger.Info("Bot init - start")

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", zap.Error(err))
	}

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config:", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	closer, err := tracing.Init(conf.Tracing())
	if err != nil {
		logger.Fatal("failed to init tracing:", zap.Error(err))
	}
	defer closer.Close()

	store, closeStore, err := newStorage(ctx, conf)
	if err != nil {
		logger.Fatal("failed to init storage:", zap.Error(err))
	}
	defer closeStore()

	clock := utils.SystemClock{}
	expenseLedger := ledger.New(ctx, store, conf.App(), clock)
	reportGenerator := reports.NewGenerator(expenseLedger, newCache(conf))
	expenseTracker := tracker.New(expenseLedger, reportGenerator, conf.App(), clock)

	client, err := tg.New(conf.Telegram())
	if err != nil {
		logger.Fatal("failed to init client:", zap.Error(err))
	}
	msgService := messages.NewService(client, expenseTracker, conf.App())
	scheduler := reset.NewScheduler(expenseTracker, conf.App(), clock)

	logger.Info("Bot init - end")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		client.ListenUpdates(ctx, msgService)
		return nil
	})
	g.Go(func() error {
		scheduler.Run(ctx)
		return nil
	})
	if addr := conf.Metrics().Addr(); addr != "" {
		g.Go(func() error {
			return serveMetrics(ctx, addr)
		})
	}

	if err = g.Wait(); err != nil {
		logger.Error("bot stopped with error", zap.Error(err))
	}
}

func newStorage(ctx context.Context, conf *config.Service) (stateStorage, func(), error) {
	switch conf.Storage().Kind() {
	case config.StoragePostgres:
		db, err := storage.NewPostgresStorage(ctx, conf.Postgres())
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	default:
		logger.Info("using file storage", zap.String("path", conf.Storage().DataFile()))
		return storage.NewFileStorage(conf.Storage()), func() {}, nil
	}
}

func newCache(conf *config.Service) reportCache {
	if !conf.Memcached().Enabled() {
		return cache.NoCache{}
	}
	mc, err := cache.NewMemcache(conf.Memcached())
	if err != nil {
		logger.Warn("memcached unavailable, reports are not cached", zap.Error(err))
		return cache.NoCache{}
	}
	return mc
}

func serveMetrics(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: shutdownTimeout}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving metrics", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "metrics server")
	}
	return nil
}
