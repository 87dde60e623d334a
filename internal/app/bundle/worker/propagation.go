package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	contracts "github.com/murkotick/bundle-composition-service/internal/app/bundle/contracts"
	"github.com/murkotick/bundle-composition-service/internal/app/bundle/dto"
	"github.com/murkotick/bundle-composition-service/internal/pkg/metrics"
)

// DefaultBatchSize bounds one purchase page of the propagation stream.
const DefaultBatchSize = 100

// Propagator pushes a bundle's current composition out to the content of its
// past purchases. It runs outside the request path and never touches the
// outdated flag; only the trigger action does.
type Propagator struct {
	ReadModel contracts.ReadModel
	Sync      contracts.ContentSync
	Log       logrus.FieldLogger
	Metrics   *metrics.WorkerMetrics
	BatchSize int
}

func NewPropagator(readModel contracts.ReadModel, sync contracts.ContentSync, log logrus.FieldLogger, m *metrics.WorkerMetrics, batchSize int) *Propagator {
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	return &Propagator{
		ReadModel: readModel,
		Sync:      sync,
		Log:       log,
		Metrics:   m,
		BatchSize: batchSize,
	}
}

// Run re-synchronizes the content of every eligible purchase of one bundle.
// A purchase is eligible when it is successful (gifts included), not charged
// back, not fully refunded, and was created no later than the cutoff. The
// cutoff is the most recent item change, so buyers who already purchased the
// current composition are skipped.
//
// One failing purchase is logged and counted, never fatal; the job itself
// fails only on storage errors, which the dispatcher retries.
func (p *Propagator) Run(ctx context.Context, bundleID string) error {
	cutoff, err := p.ReadModel.ActiveItemsMaxUpdatedAt(ctx, bundleID)
	if err != nil {
		return fmt.Errorf("resolve propagation cutoff: %w", err)
	}
	if cutoff == nil {
		// Arrives when every item was retired after the job was enqueued.
		p.Log.WithField("bundle_id", bundleID).Info("no active items, skipping propagation")
		return nil
	}

	log := p.Log.WithFields(logrus.Fields{
		"bundle_id": bundleID,
		"cutoff":    cutoff.Format(time.RFC3339),
	})

	var (
		cursor *dto.PurchaseCursor
		synced int
		failed int
	)

	for {
		batch, err := p.ReadModel.ListOutdatedPurchases(ctx, bundleID, *cutoff, cursor, p.BatchSize)
		if err != nil {
			return fmt.Errorf("list outdated purchases: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		for _, purchase := range batch {
			if err := ctx.Err(); err != nil {
				return err
			}

			if err := p.Sync.Resync(ctx, purchase); err != nil {
				failed++
				p.Metrics.ObserveResync(metrics.ResultError)
				log.WithField("purchase_id", purchase.PurchaseID).WithError(err).
					Warn("purchase content resync failed")
				continue
			}
			synced++
			p.Metrics.ObserveResync(metrics.ResultOK)
		}

		last := batch[len(batch)-1]
		cursor = &dto.PurchaseCursor{CreatedAt: last.CreatedAt, PurchaseID: last.PurchaseID}

		if len(batch) < p.BatchSize {
			break
		}
	}

	log.WithFields(logrus.Fields{"synced": synced, "failed": failed}).
		Info("propagation finished")
	return nil
}
