package contracts

import (
	"context"

	"github.com/murkotick/bundle-composition-service/internal/app/bundle/dto"
)

// ContentSync is the external per-purchase collaborator that re-grants the
// delivered content of a single purchase to match the bundle's current
// composition. Failures must be distinguishable from success so the worker
// can log and continue; one bad purchase never aborts a batch.
type ContentSync interface {
	Resync(ctx context.Context, purchase *dto.PurchaseDTO) error
}
