package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Dyuuz/BCFun-API-Explorer/internal/coupon"
	"github.com/Dyuuz/BCFun-API-Explorer/internal/placer"
	"github.com/Dyuuz/BCFun-API-Explorer/internal/placer/producer"
	"github.com/Dyuuz/BCFun-API-Explorer/internal/placer/pubsub"
	"github.com/Dyuuz/BCFun-API-Explorer/internal/placer/repo"
	"github.com/Dyuuz/BCFun-API-Explorer/internal/shared/cache"
	"github.com/Dyuuz/BCFun-API-Explorer/internal/shared/config"
	"github.com/Dyuuz/BCFun-API-Explorer/internal/shared/db"
	"github.com/Dyuuz/BCFun-API-Explorer/internal/shared/kafka"
	"github.com/Dyuuz/BCFun-API-Explorer/internal/shared/logger"
	"github.com/Dyuuz/BCFun-API-Explorer/internal/shared/metrics"
)

func main() {
	os.Exit(run())
}

// run envia os intents lidos e imprime um resultado JSON por linha no stdout.
// Código de saída 1 se algum intent for inválido ou algum envio falhar.
func run() int {
	intentPath := flag.String("intent", "-", "arquivo JSON com um intent ou array de intents (- = stdin)")
	flag.Parse()

	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.BetEndpoint == "" {
		log.Error("BET_ENDPOINT is required")
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	intents, err := readIntents(*intentPath)
	if err != nil {
		log.Error("read intents", zap.Error(err))
		return 2
	}

	// Métricas em registry próprio, enviadas ao Pushgateway no fim
	reg := prometheus.NewRegistry()
	mc := metrics.NewCollectors(reg)

	client := coupon.New(coupon.Config{
		Endpoint: cfg.BetEndpoint,
		Headers:  cfg.Headers(),
		Timeout:  cfg.RequestTimeout,
	}, log, coupon.WithRecorder(mc))

	reporters, closeAll := buildReporters(ctx, cfg, log)
	defer closeAll()

	svc := placer.NewService(log, client, reporters...)
	svc.OnValidationError = mc.ObserveValidationError
	svc.OnReportError = mc.ObserveReportError

	enc := json.NewEncoder(os.Stdout)
	code := 0
	for _, raw := range intents {
		if ctx.Err() != nil {
			log.Warn("interrupted, skipping remaining intents")
			code = 1
			break
		}

		r, err := svc.PlaceRaw(ctx, raw)
		if err != nil {
			log.Error("invalid bet intent", zap.String("event_id", raw.EventID), zap.Error(err))
			code = 1
			continue
		}
		if !r.Result.OK() {
			code = 1
		}
		if err := enc.Encode(r.Result); err != nil {
			log.Error("write result", zap.Error(err))
		}
	}

	if cfg.PushgatewayURL != "" {
		pctx, pcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pcancel()
		if err := metrics.Push(pctx, cfg.PushgatewayURL, cfg.ServiceName, reg); err != nil {
			log.Warn("push metrics", zap.Error(err))
		}
	}

	return code
}

func readIntents(path string) ([]coupon.RawIntent, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return coupon.DecodeRawIntents(r)
}

// buildReporters liga só os destinos configurados; falha de conexão desliga o reporter
func buildReporters(ctx context.Context, cfg config.Config, log *zap.Logger) ([]placer.Reporter, func()) {
	var reporters []placer.Reporter
	var closers []func() error

	if cfg.PostgresDSN != "" {
		cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		pg, err := db.ConnectPostgres(cctx, cfg.PostgresDSN)
		if err != nil {
			log.Warn("postgres disabled", zap.Error(err))
		} else {
			pgRepo := repo.NewPostgres(pg)
			if err := pgRepo.EnsureSchema(cctx); err != nil {
				log.Warn("postgres disabled", zap.Error(err))
				_ = pg.Close()
			} else {
				reporters = append(reporters, pgRepo)
				closers = append(closers, pg.Close)
			}
		}
		cancel()
	}

	if cfg.RedisAddr != "" {
		cctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		rdb, err := cache.ConnectRedis(cctx, cfg.RedisAddr)
		cancel()
		if err != nil {
			log.Warn("redis disabled", zap.Error(err))
		} else {
			reporters = append(reporters, pubsub.NewRedisBroadcaster(rdb, cfg.RedisPubSubChannel))
			closers = append(closers, rdb.Close)
		}
	}

	if cfg.KafkaBrokers != "" {
		w := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetSubmitted)
		reporters = append(reporters, producer.NewKafkaPublisher(w, cfg.TopicBetSubmitted))
		closers = append(closers, w.Close)
	}

	log.Info("reporters ready", zap.Int("count", len(reporters)))

	return reporters, func() {
		for _, c := range closers {
			if err := c(); err != nil {
				log.Warn("close reporter", zap.Error(err))
			}
		}
	}
}
