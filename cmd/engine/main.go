package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/akshata29/corporateactions-sub000/internal/adapters/httpapi"
	"github.com/akshata29/corporateactions-sub000/internal/adapters/ledger"
	"github.com/akshata29/corporateactions-sub000/internal/adapters/pending"
	"github.com/akshata29/corporateactions-sub000/internal/adapters/registry"
	"github.com/akshata29/corporateactions-sub000/internal/adapters/transport"
	"github.com/akshata29/corporateactions-sub000/internal/infra/config"
	httpinfra "github.com/akshata29/corporateactions-sub000/internal/infra/http"
	loginfra "github.com/akshata29/corporateactions-sub000/internal/infra/log"
	"github.com/akshata29/corporateactions-sub000/internal/infra/metrics"
	"github.com/akshata29/corporateactions-sub000/internal/usecase/campaigns"
	"github.com/akshata29/corporateactions-sub000/internal/usecase/dispatch"
	"github.com/akshata29/corporateactions-sub000/internal/usecase/subscriptions"
)

func main() {
	cfg := config.Load()
	logger := loginfra.NewLogger(cfg.AppEnv)

	metrics.MustRegister(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// engine state is process-lifetime, in-memory
	reg := registry.NewMemory()
	queue := pending.NewMemory(cfg.Limits.PendingPerUser)
	history := ledger.NewMemory(cfg.Limits.HistoryCap)

	fanout := transport.NewFanout(transport.NewQueue(queue), logger.With().Str("component", "transport").Logger())
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		fanout.AddBridge("redis", transport.NewRedis(client, cfg.Bridges.RedisListKey))
		logger.Info().Str("key", cfg.Bridges.RedisListKey).Msg("engine: redis bridge enabled")
	}
	if cfg.Bridges.AMQPURL != "" {
		bridge, err := transport.NewAMQP(cfg.Bridges.AMQPURL, cfg.Bridges.AMQPExchange)
		if err != nil {
			log.Fatal().Err(err).Msg("engine: amqp bridge failed")
		}
		defer bridge.Close()
		fanout.AddBridge("amqp", bridge)
		logger.Info().Str("exchange", cfg.Bridges.AMQPExchange).Msg("engine: amqp bridge enabled")
	}
	if cfg.Telegram.Token != "" {
		bridge, err := transport.NewTelegram(cfg.Telegram.Token)
		if err != nil {
			log.Fatal().Err(err).Msg("engine: telegram bridge failed")
		}
		fanout.AddBridge("telegram", bridge)
		logger.Info().Msg("engine: telegram bridge enabled")
	}

	dispatcher := dispatch.NewService(reg, fanout, history, logger.With().Str("component", "dispatch").Logger())
	subsService := subscriptions.NewService(reg, history, logger.With().Str("component", "subscriptions").Logger())

	scheduler, err := campaigns.NewScheduler(campaigns.Config{
		Timezone:         cfg.Exchange.Timezone,
		MarketOpenSpec:   cfg.Campaigns.MarketOpenSpec,
		MarketCloseSpec:  cfg.Campaigns.MarketCloseSpec,
		WeeklyDigestSpec: cfg.Campaigns.WeeklyDigestSpec,
	}, dispatcher, logger.With().Str("component", "scheduler").Logger())
	if err != nil {
		log.Fatal().Err(err).Msg("engine: scheduler init failed")
	}
	scheduler.Start()
	defer scheduler.Stop()

	metrics.StartServer(ctx, logger.With().Str("component", "metrics").Logger(), cfg.MetricsAddr)

	server := httpinfra.NewServer(logger.With().Str("component", "http").Logger())
	api := httpapi.NewHandler(subsService, dispatcher, queue, history, logger.With().Str("component", "api").Logger())
	api.Routes(server.Router)

	go func() {
		if err := server.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			log.Error().Err(err).Msg("engine: http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("engine: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
}
