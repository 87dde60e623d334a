package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/murkotick/bundle-composition-service/internal/app/bundle/domain"
	"github.com/murkotick/bundle-composition-service/internal/app/bundle/dto"
	"github.com/murkotick/bundle-composition-service/internal/pkg/clock"
	"github.com/murkotick/bundle-composition-service/internal/pkg/metrics"
)

// DefaultPollInterval is how often the dispatcher checks for pending jobs.
const DefaultPollInterval = 5 * time.Second

// JobStore is the queue backing the dispatcher: pending outbox rows in,
// done/dead rows out.
type JobStore interface {
	// ClaimPending lists up to limit pending jobs of the given type, oldest first.
	ClaimPending(ctx context.Context, jobType string, limit int) ([]*dto.OutboxJobDTO, error)

	// MarkDone finalizes a successfully processed job.
	MarkDone(ctx context.Context, jobID string, now time.Time) error

	// MarkFailed charges one attempt; reports whether the job was dead-lettered.
	MarkFailed(ctx context.Context, jobID string, now time.Time) (dead bool, err error)
}

// Dispatcher polls the outbox for propagation jobs and runs them one at a
// time. Sequential on purpose: each job already streams purchases in bounded
// batches, and one bundle at a time keeps the load on the content service
// predictable.
type Dispatcher struct {
	Store        JobStore
	Propagator   *Propagator
	Log          logrus.FieldLogger
	Metrics      *metrics.WorkerMetrics
	Clock        clock.Clock
	PollInterval time.Duration
	BatchSize    int
}

func NewDispatcher(store JobStore, propagator *Propagator, log logrus.FieldLogger, m *metrics.WorkerMetrics, clk clock.Clock, pollInterval time.Duration, batchSize int) *Dispatcher {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	return &Dispatcher{
		Store:        store,
		Propagator:   propagator,
		Log:          log,
		Metrics:      m,
		Clock:        clk,
		PollInterval: pollInterval,
		BatchSize:    batchSize,
	}
}

// Run polls until the context is canceled.
func (d *Dispatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.PollInterval)
	defer ticker.Stop()

	d.Log.WithField("poll_interval", d.PollInterval.String()).Info("dispatcher started")

	for {
		if err := d.Tick(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			d.Log.WithError(err).Error("dispatch tick failed")
		}

		select {
		case <-ctx.Done():
			d.Log.Info("dispatcher stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Tick claims one batch of pending propagation jobs and runs them.
func (d *Dispatcher) Tick(ctx context.Context) error {
	jobs, err := d.Store.ClaimPending(ctx, domain.EventTypePropagateContent, d.BatchSize)
	if err != nil {
		return err
	}

	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.runJob(ctx, job)
	}
	return nil
}

func (d *Dispatcher) runJob(ctx context.Context, job *dto.OutboxJobDTO) {
	log := d.Log.WithFields(logrus.Fields{
		"job_id":    job.JobID,
		"bundle_id": job.SubjectID,
		"attempt":   job.Attempts + 1,
	})

	if err := d.Propagator.Run(ctx, job.SubjectID); err != nil {
		dead, markErr := d.Store.MarkFailed(ctx, job.JobID, d.Clock.Now())
		if markErr != nil {
			log.WithError(markErr).Error("failed to record job failure")
			return
		}
		if dead {
			d.Metrics.ObserveJob(metrics.ResultDeadLetter)
			log.WithError(err).Error("propagation job dead-lettered")
			return
		}
		d.Metrics.ObserveJob(metrics.ResultError)
		log.WithError(err).Warn("propagation job failed, will retry")
		return
	}

	if err := d.Store.MarkDone(ctx, job.JobID, d.Clock.Now()); err != nil {
		log.WithError(err).Error("failed to finalize job")
		return
	}
	d.Metrics.ObserveJob(metrics.ResultOK)
	log.Info("propagation job done")
}
