package m_purchase

import (
	"time"

	"cloud.google.com/go/spanner"
)

// InsertMutation builds an insert for a purchase row. Exists for fixtures
// and the e2e harness, which plays the sales subsystem's part.
func InsertMutation(purchaseID, bundleID, status string, isGift, chargedback, fullyRefunded bool, createdAt time.Time) *spanner.Mutation {
	return spanner.Insert(TableName,
		[]string{ColPurchaseID, ColBundleID, ColStatus, ColIsGift, ColChargedback, ColFullyRefunded, ColCreatedAt},
		[]interface{}{purchaseID, bundleID, status, isGift, chargedback, fullyRefunded, createdAt},
	)
}
