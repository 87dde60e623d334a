package m_bundle_item

// Field constants for the bundle_items table. The table is interleaved in
// bundles, so every mutation carries the (bundle_id, item_id) composite key.
const (
	TableName = "bundle_items"

	ColBundleID  = "bundle_id"
	ColItemID    = "item_id"
	ColProductID = "product_id"
	ColVariantID = "variant_id"
	ColQuantity  = "quantity"
	ColPosition  = "position"
	ColCreatedAt = "created_at"
	ColUpdatedAt = "updated_at"
	ColDeletedAt = "deleted_at"
)
