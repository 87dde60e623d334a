package m_bundle_item

import (
	"time"

	"cloud.google.com/go/spanner"
)

// InsertMutation builds a spanner.Insert mutation for a bundle item using a
// map of values keyed by the column names declared in fields.go.
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return spanner.Insert(TableName, cols, vals)
}

// UpdateMutation builds a spanner.Update mutation for a bundle item. The
// values map must not include the key columns; they are supplied separately
// and always placed first.
func UpdateMutation(bundleID, itemID string, values map[string]interface{}) *spanner.Mutation {
	cols := []string{ColBundleID, ColItemID}
	vals := []interface{}{bundleID, itemID}

	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}

	return spanner.Update(TableName, cols, vals)
}

// BuildInsertMap prepares the canonical fields for an item insertion.
func BuildInsertMap(bundleID, itemID, productID string, variantID *string,
	quantity, position int64, createdAt, updatedAt time.Time) map[string]interface{} {

	m := map[string]interface{}{
		ColBundleID:  bundleID,
		ColItemID:    itemID,
		ColProductID: productID,
		ColQuantity:  quantity,
		ColPosition:  position,
		ColCreatedAt: createdAt,
		ColUpdatedAt: updatedAt,
		ColDeletedAt: nil,
	}

	if variantID != nil {
		m[ColVariantID] = *variantID
	} else {
		m[ColVariantID] = nil
	}

	return m
}
