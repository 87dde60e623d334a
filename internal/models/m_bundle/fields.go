package m_bundle

// Field constants for the bundles table.
const (
	TableName = "bundles"

	ColBundleID             = "bundle_id"
	ColSellerID             = "seller_id"
	ColName                 = "name"
	ColPriceCents           = "price_cents"
	ColCustomizablePrice    = "customizable_price"
	ColPublished            = "published"
	ColHasOutdatedPurchases = "has_outdated_purchases"
	ColSuccessfulSalesCount = "successful_sales_count"
	ColCreatedAt            = "created_at"
	ColUpdatedAt            = "updated_at"
)
