package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/daoleviethoang/friendly-frontend/internal/bidfeed"
	"github.com/daoleviethoang/friendly-frontend/internal/config"
	"github.com/daoleviethoang/friendly-frontend/internal/gateway"
	"github.com/daoleviethoang/friendly-frontend/internal/intent"
	"github.com/daoleviethoang/friendly-frontend/internal/logger"
	"github.com/daoleviethoang/friendly-frontend/internal/projection"
	"github.com/daoleviethoang/friendly-frontend/internal/saga"
	"github.com/daoleviethoang/friendly-frontend/internal/session"
)

func main() {
	cfg := config.Load()
	appLog := logger.New(cfg)

	appLog.Info("doran client: starting...", "api", cfg.APIHost)

	ctx := context.Background()
	runtimeCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store session.Store
	redisStore, err := session.InitRedis(ctx, cfg)
	if err != nil {
		appLog.Warn("redis unavailable, session will not survive restarts", "error", err)
		store = session.NewMemoryStore()
	} else {
		defer redisStore.Close()
		store = redisStore
		appLog.Info("session store connected")
	}

	bus := intent.NewBus()
	view := projection.New(bus, appLog)
	gw := gateway.New(cfg, store, appLog)
	report := saga.LogReporter(appLog)

	runner := saga.NewRunner(
		appLog,
		saga.NewAuth(bus, gw, store, appLog, report),
		saga.NewCatalog(bus, gw, appLog, report),
		saga.NewForgotPassword(bus, gw, appLog, report),
		saga.NewAccount(bus, gw, appLog, report),
	)

	feed := bidfeed.New(cfg, bus, store, appLog)

	g, gctx := errgroup.WithContext(runtimeCtx)

	g.Go(func() error { return view.Run(gctx) })
	g.Go(func() error { return runner.Run(gctx) })
	g.Go(func() error { return feed.Run(gctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		appLog.Error("client stopped unexpectedly", "error", err)
		return
	}

	appLog.Info("client stopped gracefully.")
}
