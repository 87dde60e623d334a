package m_purchase

// Field constants for the purchases table. Rows are written by the sales
// subsystem; this service only reads them.
const (
	TableName = "purchases"

	ColPurchaseID    = "purchase_id"
	ColBundleID      = "bundle_id"
	ColStatus        = "status"
	ColIsGift        = "is_gift"
	ColChargedback   = "chargedback"
	ColFullyRefunded = "fully_refunded"
	ColCreatedAt     = "created_at"
)

// StatusSuccessful marks a completed sale eligible for content propagation.
const StatusSuccessful = "successful"
