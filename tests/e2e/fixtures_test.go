package e2e

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	contracts "github.com/murkotick/bundle-composition-service/internal/app/bundle/contracts"
	"github.com/murkotick/bundle-composition-service/internal/models/m_bundle"
	"github.com/murkotick/bundle-composition-service/internal/models/m_payment_option"
	"github.com/murkotick/bundle-composition-service/internal/models/m_purchase"
)

// seedBundle inserts a bundle row directly; bundles are born in the catalog
// service, not through this one.
func seedBundle(ctx context.Context, t *testing.T, sellerID string, published bool, salesCount int64) string {
	t.Helper()

	bundleID := uuid.New().String()
	now := clk.Now()

	mut := m_bundle.InsertMutation(m_bundle.BuildInsertMap(
		bundleID, sellerID, "E2E Bundle", 4999,
		false, published, false, salesCount,
		now, now,
	))
	_, err := spClient.Apply(ctx, []*spanner.Mutation{mut})
	require.NoError(t, err)
	return bundleID
}

// seedProduct registers a bundleable product in the stub catalog.
func seedProduct(sellerID string, variants ...string) string {
	productID := uuid.New().String()
	catalog.put(&contracts.CatalogEntry{
		ProductID:           productID,
		SellerID:            sellerID,
		Name:                "E2E Product",
		PriceCents:          1500,
		Alive:               true,
		InstallmentEligible: true,
		VariantIDs:          variants,
	})
	return productID
}

// seedPurchase inserts a successful purchase of the bundle.
func seedPurchase(ctx context.Context, t *testing.T, bundleID string, createdAt time.Time) string {
	t.Helper()

	purchaseID := uuid.New().String()
	mut := m_purchase.InsertMutation(
		purchaseID, bundleID, m_purchase.StatusSuccessful,
		false, false, false, createdAt,
	)
	_, err := spClient.Apply(ctx, []*spanner.Mutation{mut})
	require.NoError(t, err)
	return purchaseID
}

// seedPaymentOption commits one payment option against a plan, freezing its
// terms.
func seedPaymentOption(ctx context.Context, t *testing.T, planID string) {
	t.Helper()

	mut := m_payment_option.InsertMutation(
		uuid.New().String(), planID, uuid.New().String(), clk.Now(),
	)
	_, err := spClient.Apply(ctx, []*spanner.Mutation{mut})
	require.NoError(t, err)
}
