package queries

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/murkotick/bundle-composition-service/internal/app/bundle/dto"
	"github.com/murkotick/bundle-composition-service/internal/app/bundle/queries/get_bundle"
	"github.com/murkotick/bundle-composition-service/internal/app/bundle/queries/get_plan"
	"github.com/murkotick/bundle-composition-service/internal/app/bundle/queries/list_purchases"
)

// SpannerReadModel is an infrastructure adapter that satisfies contracts.ReadModel.
// It composes the individual query implementations.
type SpannerReadModel struct {
	bundleQ    *get_bundle.SpannerGetBundleQuery
	planQ      *get_plan.SpannerGetPlanQuery
	purchasesQ *list_purchases.SpannerListPurchasesQuery
}

func NewSpannerReadModel(client *spanner.Client) *SpannerReadModel {
	return &SpannerReadModel{
		bundleQ:    get_bundle.NewSpannerGetBundleQuery(client),
		planQ:      get_plan.NewSpannerGetPlanQuery(client),
		purchasesQ: list_purchases.NewSpannerListPurchasesQuery(client),
	}
}

func (rm *SpannerReadModel) GetBundle(ctx context.Context, bundleID string) (*dto.BundleDTO, error) {
	return rm.bundleQ.GetBundle(ctx, bundleID)
}

func (rm *SpannerReadModel) GetInstallmentPlan(ctx context.Context, subjectID string) (*dto.InstallmentPlanDTO, error) {
	return rm.planQ.GetInstallmentPlan(ctx, subjectID)
}

func (rm *SpannerReadModel) CountPaymentOptions(ctx context.Context, planID string) (int64, error) {
	return rm.planQ.CountPaymentOptions(ctx, planID)
}

func (rm *SpannerReadModel) ActiveItemsMaxUpdatedAt(ctx context.Context, bundleID string) (*time.Time, error) {
	return rm.purchasesQ.ActiveItemsMaxUpdatedAt(ctx, bundleID)
}

func (rm *SpannerReadModel) ListOutdatedPurchases(ctx context.Context, bundleID string, cutoff time.Time, after *dto.PurchaseCursor, limit int) ([]*dto.PurchaseDTO, error) {
	return rm.purchasesQ.ListOutdatedPurchases(ctx, bundleID, cutoff, after, limit)
}
