package m_payment_option

import (
	"time"

	"cloud.google.com/go/spanner"
)

// InsertMutation builds an insert for a payment option. The service never
// creates these in production; the helper exists for fixtures and the e2e
// harness, which plays the sales subsystem's part.
func InsertMutation(paymentOptionID, planID, purchaseID string, createdAt time.Time) *spanner.Mutation {
	return spanner.Insert(TableName,
		[]string{ColPaymentOptionID, ColPlanID, ColPurchaseID, ColCreatedAt},
		[]interface{}{paymentOptionID, planID, purchaseID, createdAt},
	)
}
