package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"bitbucket.org/novatechnologies/spychart/api/http"
	"bitbucket.org/novatechnologies/spychart/infra"
	"bitbucket.org/novatechnologies/spychart/infra/broker"
	"bitbucket.org/novatechnologies/spychart/infra/centrifuge"
	"bitbucket.org/novatechnologies/spychart/infra/logger"
	"bitbucket.org/novatechnologies/spychart/internal/repository"
	"bitbucket.org/novatechnologies/spychart/internal/service"
)

const shutdownTimeout = 15 * time.Second

func main() {
	conf := infra.SetConfig("./config/.env")
	log := logger.Setup(conf.LogConfig.Level, conf.LogConfig.JSON)

	ctx, stop := signal.NotifyContext(
		logger.WithLogger(context.Background(), log),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	bars, closeStorage, err := repository.Open(ctx, conf)
	if err != nil {
		log.WithError(err).Fatal("can't open storage")
	}

	eventsBroker := broker.NewInMemory().WithLogger(log)
	if conf.CentrifugeConfig.Enabled() {
		centrifuge.NewBroadcaster(
			centrifuge.New(conf.CentrifugeConfig),
			eventsBroker,
			conf.ChartConfig.Symbol,
		).SubscribeForSnapshots()
	}

	chartService := service.NewChart(bars, eventsBroker, conf.ChartConfig.BarsLimit)
	server := http.NewServer(chartService, conf.HttpConfig)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return server.Start(ctx)
	})
	group.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(logger.WithLogger(context.Background(), log), shutdownTimeout)
		defer cancel()
		return server.Stop(shutdownCtx)
	})

	if err = group.Wait(); err != nil {
		log.WithError(err).Error("server stopped with error")
	}

	eventsBroker.Wait()
	if err = closeStorage(context.Background()); err != nil {
		log.WithError(err).Error("can't close storage")
	}
	log.Info("bye")
}
