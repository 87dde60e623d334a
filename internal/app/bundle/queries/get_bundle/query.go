package get_bundle

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/murkotick/bundle-composition-service/internal/app/bundle/domain"
	"github.com/murkotick/bundle-composition-service/internal/app/bundle/dto"
)

// SpannerGetBundleQuery reads one bundle with its active items from Spanner.
type SpannerGetBundleQuery struct {
	Client *spanner.Client
}

func NewSpannerGetBundleQuery(client *spanner.Client) *SpannerGetBundleQuery {
	return &SpannerGetBundleQuery{Client: client}
}

// GetBundle fetches the bundle row plus the active items in display order
// (position ascending, insertion order breaking ties).
func (q *SpannerGetBundleQuery) GetBundle(ctx context.Context, bundleID string) (*dto.BundleDTO, error) {
	txn := q.Client.ReadOnlyTransaction()
	defer txn.Close()

	stmt := spanner.Statement{
		SQL: `SELECT bundle_id, seller_id, name, price_cents,
		             customizable_price, published, has_outdated_purchases,
		             successful_sales_count, created_at, updated_at
		      FROM bundles
		      WHERE bundle_id = @id`,
		Params: map[string]interface{}{"id": bundleID},
	}

	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrBundleNotFound
	}
	if err != nil {
		return nil, err
	}

	var (
		id, sellerID, name   string
		priceCents           int64
		customizablePrice    bool
		published            bool
		hasOutdated          bool
		salesCount           int64
		createdAt, updatedAt time.Time
	)
	if err := row.Columns(&id, &sellerID, &name, &priceCents, &customizablePrice,
		&published, &hasOutdated, &salesCount, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	out := &dto.BundleDTO{
		BundleID:             id,
		SellerID:             sellerID,
		Name:                 name,
		PriceCents:           priceCents,
		CustomizablePrice:    customizablePrice,
		Published:            published,
		HasOutdatedPurchases: hasOutdated,
		SuccessfulSalesCount: salesCount,
	}

	c := createdAt.UTC().Format(time.RFC3339)
	out.CreatedAt = &c
	u := updatedAt.UTC().Format(time.RFC3339)
	out.UpdatedAt = &u

	items, err := q.listItems(ctx, txn, bundleID)
	if err != nil {
		return nil, err
	}
	out.Items = items

	return out, nil
}

// listItems loads every item row, retired ones included. The write side
// matches re-added products back to their soft-deleted rows instead of
// inserting duplicates, so it needs to see them.
func (q *SpannerGetBundleQuery) listItems(ctx context.Context, txn *spanner.ReadOnlyTransaction, bundleID string) ([]*dto.BundleItemDTO, error) {
	stmt := spanner.Statement{
		SQL: `SELECT item_id, product_id, variant_id, quantity, position,
		             created_at, updated_at, deleted_at
		      FROM bundle_items
		      WHERE bundle_id = @id
		      ORDER BY position ASC, created_at ASC`,
		Params: map[string]interface{}{"id": bundleID},
	}

	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	var out []*dto.BundleItemDTO
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		var (
			itemID, productID    string
			variantID            spanner.NullString
			quantity, position   int64
			createdAt, updatedAt time.Time
			deletedAt            spanner.NullTime
		)
		if err := row.Columns(&itemID, &productID, &variantID, &quantity, &position,
			&createdAt, &updatedAt, &deletedAt); err != nil {
			return nil, err
		}

		item := &dto.BundleItemDTO{
			ItemID:    itemID,
			ProductID: productID,
			Quantity:  quantity,
			Position:  position,
		}
		if variantID.Valid {
			v := variantID.StringVal
			item.VariantID = &v
		}
		c := createdAt.UTC().Format(time.RFC3339)
		item.CreatedAt = &c
		u := updatedAt.UTC().Format(time.RFC3339)
		item.UpdatedAt = &u
		if deletedAt.Valid {
			d := deletedAt.Time.UTC().Format(time.RFC3339)
			item.DeletedAt = &d
		}

		out = append(out, item)
	}
}
