package m_payment_option

// Field constants for the payment_options table. Rows are written by the
// sales subsystem and immutable once created; this service only counts them.
const (
	TableName = "payment_options"

	ColPaymentOptionID = "payment_option_id"
	ColPlanID          = "plan_id"
	ColPurchaseID      = "purchase_id"
	ColCreatedAt       = "created_at"
)
