package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/murkotick/bundle-composition-service/internal/app/bundle/contentsync"
	"github.com/murkotick/bundle-composition-service/internal/app/bundle/queries"
	"github.com/murkotick/bundle-composition-service/internal/app/bundle/queries/outbox_jobs"
	"github.com/murkotick/bundle-composition-service/internal/app/bundle/worker"
	"github.com/murkotick/bundle-composition-service/internal/pkg/clock"
	"github.com/murkotick/bundle-composition-service/internal/pkg/metrics"
)

// Config is read from the environment with the WORKER_ prefix.
type Config struct {
	SpannerDatabase string        `envconfig:"SPANNER_DATABASE" required:"true"`
	ContentURL      string        `envconfig:"CONTENT_URL" required:"true"`
	PollInterval    time.Duration `envconfig:"POLL_INTERVAL" default:"5s"`
	BatchSize       int           `envconfig:"BATCH_SIZE" default:"100"`
	MaxAttempts     int64         `envconfig:"MAX_ATTEMPTS" default:"3"`
	MetricsAddr     string        `envconfig:"METRICS_ADDR" default:":9090"`
}

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	var cfg Config
	if err := envconfig.Process("worker", &cfg); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		log.Info("shutdown signal received")
		cancel()
	}()

	client, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
	if err != nil {
		log.WithError(err).Fatal("spanner client")
	}
	defer client.Close()

	m, err := metrics.NewWorkerMetrics("bundle_propagation", prometheus.DefaultRegisterer)
	if err != nil {
		log.WithError(err).Fatal("register metrics")
	}

	readModel := queries.NewSpannerReadModel(client)
	sync := contentsync.NewHTTPContentSync(cfg.ContentURL, nil)
	store := outbox_jobs.NewSpannerJobStore(client, cfg.MaxAttempts)

	propagator := worker.NewPropagator(readModel, sync, log, m, cfg.BatchSize)
	dispatcher := worker.NewDispatcher(store, propagator, log, m, clock.RealClock{}, cfg.PollInterval, cfg.BatchSize)

	metricsSrv := &http.Server{Addr: cfg.MetricsAddr, Handler: promhttp.Handler()}
	go func() {
		log.WithField("addr", cfg.MetricsAddr).Info("metrics endpoint listening")
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("metrics server")
			cancel()
		}
	}()

	err = dispatcher.Run(ctx)
	if err != nil && err != context.Canceled {
		log.WithError(err).Error("dispatcher exited")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("metrics server shutdown")
	}

	log.Info("worker stopped")
}
