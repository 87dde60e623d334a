package contracts

import (
	"context"
	"time"

	"github.com/murkotick/bundle-composition-service/internal/app/bundle/dto"
)

// ReadModel is the query side consumed by interactors and the propagation
// worker. Implementations return dto values, never domain aggregates.
type ReadModel interface {
	// GetBundle returns the bundle with all of its item rows, retired ones
	// included, or domain.ErrBundleNotFound.
	GetBundle(ctx context.Context, bundleID string) (*dto.BundleDTO, error)

	// GetInstallmentPlan returns the active (non-retired) plan attached to the
	// subject, or nil when there is none.
	GetInstallmentPlan(ctx context.Context, subjectID string) (*dto.InstallmentPlanDTO, error)

	// CountPaymentOptions returns how many payment options are committed
	// against the plan's terms.
	CountPaymentOptions(ctx context.Context, planID string) (int64, error)

	// ActiveItemsMaxUpdatedAt returns the most recent updated_at across the
	// bundle's active items, or nil when the bundle has none.
	ActiveItemsMaxUpdatedAt(ctx context.Context, bundleID string) (*time.Time, error)

	// ListOutdatedPurchases streams one batch of purchases eligible for
	// content re-synchronization: successful (gift or not), not charged back,
	// not fully refunded, created at or before cutoff. Ordered by
	// (created_at, purchase_id) ascending, starting after the cursor.
	ListOutdatedPurchases(ctx context.Context, bundleID string, cutoff time.Time, after *dto.PurchaseCursor, limit int) ([]*dto.PurchaseDTO, error)
}
