package list_purchases

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/murkotick/bundle-composition-service/internal/app/bundle/dto"
	"github.com/murkotick/bundle-composition-service/internal/app/bundle/utils"
	"github.com/murkotick/bundle-composition-service/internal/models/m_purchase"
)

// SpannerListPurchasesQuery serves the propagation worker: the content cutoff
// and the keyset-paginated purchase stream.
type SpannerListPurchasesQuery struct {
	Client *spanner.Client
}

func NewSpannerListPurchasesQuery(client *spanner.Client) *SpannerListPurchasesQuery {
	return &SpannerListPurchasesQuery{Client: client}
}

// ActiveItemsMaxUpdatedAt returns the most recent updated_at across the
// bundle's active items, or nil when none are active. Purchases made after
// this moment already saw the current composition.
func (q *SpannerListPurchasesQuery) ActiveItemsMaxUpdatedAt(ctx context.Context, bundleID string) (*time.Time, error) {
	stmt := spanner.Statement{
		SQL: `SELECT MAX(updated_at)
		      FROM bundle_items
		      WHERE bundle_id = @id AND deleted_at IS NULL`,
		Params: map[string]interface{}{"id": bundleID},
	}

	iter := q.Client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return nil, err
	}

	var max spanner.NullTime
	if err := row.Columns(&max); err != nil {
		return nil, err
	}
	if !max.Valid {
		return nil, nil
	}
	t := max.Time.UTC()
	return &t, nil
}

// ListOutdatedPurchases streams one batch of purchases eligible for content
// re-synchronization, ordered by (created_at, purchase_id) ascending and
// starting strictly after the cursor.
func (q *SpannerListPurchasesQuery) ListOutdatedPurchases(ctx context.Context, bundleID string, cutoff time.Time, after *dto.PurchaseCursor, limit int) ([]*dto.PurchaseDTO, error) {
	sql := `SELECT purchase_id, bundle_id, status, is_gift, chargedback,
	               fully_refunded, created_at
	        FROM purchases
	        WHERE bundle_id = @bundle
	          AND status = @status
	          AND chargedback = FALSE
	          AND fully_refunded = FALSE
	          AND created_at <= @cutoff`
	params := map[string]interface{}{
		"bundle": bundleID,
		"status": m_purchase.StatusSuccessful,
		"cutoff": cutoff,
	}

	if after != nil {
		sql += ` AND (created_at > @afterCreatedAt
		          OR (created_at = @afterCreatedAt AND purchase_id > @afterPurchaseID))`
		params["afterCreatedAt"] = utils.ParseTime(after.CreatedAt)
		params["afterPurchaseID"] = after.PurchaseID
	}

	sql += ` ORDER BY created_at ASC, purchase_id ASC LIMIT @limit`
	params["limit"] = int64(limit)

	stmt := spanner.Statement{SQL: sql, Params: params}
	iter := q.Client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var out []*dto.PurchaseDTO
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		var (
			purchaseID, bundle string
			status             string
			isGift             bool
			chargedback        bool
			fullyRefunded      bool
			createdAt          time.Time
		)
		if err := row.Columns(&purchaseID, &bundle, &status, &isGift, &chargedback,
			&fullyRefunded, &createdAt); err != nil {
			return nil, err
		}

		// Full nanosecond precision: the cursor round-trips through this
		// string, and a truncated value would re-admit rows whose timestamps
		// carry a fractional part.
		out = append(out, &dto.PurchaseDTO{
			PurchaseID:    purchaseID,
			BundleID:      bundle,
			Status:        status,
			IsGift:        isGift,
			Chargedback:   chargedback,
			FullyRefunded: fullyRefunded,
			CreatedAt:     createdAt.UTC().Format(time.RFC3339Nano),
		})
	}
}
