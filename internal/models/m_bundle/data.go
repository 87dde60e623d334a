package m_bundle

import (
	"time"

	"cloud.google.com/go/spanner"
)

// InsertMutation builds a spanner.Insert mutation for a bundle using a map of
// values keyed by the column names declared in fields.go.
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return spanner.Insert(TableName, cols, vals)
}

// UpdateMutation builds a spanner.Update mutation for a bundle. The values
// map must not include the bundle_id key; it is supplied separately and
// always placed first as the primary key.
func UpdateMutation(bundleID string, values map[string]interface{}) *spanner.Mutation {
	cols := []string{ColBundleID}
	vals := []interface{}{bundleID}

	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}

	return spanner.Update(TableName, cols, vals)
}

// BuildInsertMap prepares the canonical fields for a bundle insertion. Used
// by fixtures and the e2e harness; the service itself never creates bundles.
func BuildInsertMap(bundleID, sellerID, name string, priceCents int64,
	customizablePrice, published, hasOutdatedPurchases bool,
	successfulSalesCount int64, createdAt, updatedAt time.Time) map[string]interface{} {

	return map[string]interface{}{
		ColBundleID:             bundleID,
		ColSellerID:             sellerID,
		ColName:                 name,
		ColPriceCents:           priceCents,
		ColCustomizablePrice:    customizablePrice,
		ColPublished:            published,
		ColHasOutdatedPurchases: hasOutdatedPurchases,
		ColSuccessfulSalesCount: successfulSalesCount,
		ColCreatedAt:            createdAt,
		ColUpdatedAt:            updatedAt,
	}
}
