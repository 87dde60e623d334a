package apply_installment_plan

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contracts "github.com/murkotick/bundle-composition-service/internal/app/bundle/contracts"
	"github.com/murkotick/bundle-composition-service/internal/app/bundle/domain"
	"github.com/murkotick/bundle-composition-service/internal/app/bundle/dto"
	"github.com/murkotick/bundle-composition-service/internal/app/bundle/repo"
	"github.com/murkotick/bundle-composition-service/internal/pkg/clock"
	commitplan "github.com/murkotick/bundle-composition-service/internal/pkg/committer"
)

type fakeReadModel struct {
	bundle         *dto.BundleDTO
	plan           *dto.InstallmentPlanDTO
	paymentOptions int64
}

func (f *fakeReadModel) GetBundle(ctx context.Context, bundleID string) (*dto.BundleDTO, error) {
	if f.bundle == nil || f.bundle.BundleID != bundleID {
		return nil, domain.ErrBundleNotFound
	}
	return f.bundle, nil
}

func (f *fakeReadModel) GetInstallmentPlan(ctx context.Context, subjectID string) (*dto.InstallmentPlanDTO, error) {
	if f.plan == nil || f.plan.SubjectID != subjectID {
		return nil, nil
	}
	return f.plan, nil
}

func (f *fakeReadModel) CountPaymentOptions(ctx context.Context, planID string) (int64, error) {
	return f.paymentOptions, nil
}

func (f *fakeReadModel) ActiveItemsMaxUpdatedAt(ctx context.Context, bundleID string) (*time.Time, error) {
	return nil, nil
}

func (f *fakeReadModel) ListOutdatedPurchases(ctx context.Context, bundleID string, cutoff time.Time, after *dto.PurchaseCursor, limit int) ([]*dto.PurchaseDTO, error) {
	return nil, nil
}

type fakeCatalog struct {
	entries map[string]*contracts.CatalogEntry
}

func (f *fakeCatalog) ResolveProducts(ctx context.Context, ids []string) (map[string]*contracts.CatalogEntry, error) {
	out := map[string]*contracts.CatalogEntry{}
	for _, id := range ids {
		if e, ok := f.entries[id]; ok {
			out[id] = e
		}
	}
	return out, nil
}

type fakeCommitter struct {
	applied []*commitplan.Plan
}

func (f *fakeCommitter) Apply(ctx context.Context, plan *commitplan.Plan) error {
	f.applied = append(f.applied, plan)
	return nil
}

func terms(n int64) *domain.PlanTerms {
	return &domain.PlanTerms{NumberOfInstallments: n}
}

func rfc3339(t time.Time) *string {
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func eligibleBundle(created time.Time) *dto.BundleDTO {
	return &dto.BundleDTO{
		BundleID: "bundle-1",
		SellerID: "seller-1",
		Name:     "Starter Pack",
		Items: []*dto.BundleItemDTO{
			{ItemID: "item-1", ProductID: "prod-1", Quantity: 1, CreatedAt: rfc3339(created), UpdatedAt: rfc3339(created)},
		},
		CreatedAt: rfc3339(created),
		UpdatedAt: rfc3339(created),
	}
}

func eligibleCatalog() *fakeCatalog {
	return &fakeCatalog{entries: map[string]*contracts.CatalogEntry{
		"prod-1": {ProductID: "prod-1", SellerID: "seller-1", Alive: true, InstallmentEligible: true},
	}}
}

func planRow(subjectID string, installments int64, created time.Time) *dto.InstallmentPlanDTO {
	return &dto.InstallmentPlanDTO{
		PlanID:               "plan-1",
		SubjectID:            subjectID,
		NumberOfInstallments: installments,
		Recurrence:           "monthly",
		CreatedAt:            rfc3339(created),
		UpdatedAt:            rfc3339(created),
	}
}

func newTestInteractor(rm *fakeReadModel, cat *fakeCatalog, cm *fakeCommitter, now time.Time) *Interactor {
	return NewInteractor(
		repo.NewPlanRepo(),
		repo.NewOutboxRepo(),
		cm,
		rm,
		cat,
		clock.NewFake(now),
	)
}

// TestExecute_NoPlanNoDesired is a no-op.
func TestExecute_NoPlanNoDesired(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	cm := &fakeCommitter{}

	it := newTestInteractor(&fakeReadModel{}, eligibleCatalog(), cm, now)

	out, err := it.Execute(context.Background(), Request{SubjectID: "bundle-1"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeNone, out)
	assert.Empty(t, cm.applied)
}

// TestExecute_CreatePlan attaches a plan to a bundle without one.
func TestExecute_CreatePlan(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := created.Add(time.Hour)
	rm := &fakeReadModel{bundle: eligibleBundle(created)}
	cm := &fakeCommitter{}

	it := newTestInteractor(rm, eligibleCatalog(), cm, now)

	out, err := it.Execute(context.Background(), Request{SubjectID: "bundle-1", Desired: terms(3)})
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, out)
	require.Len(t, cm.applied, 1)
	// plan insert + plan.created outbox row
	assert.Equal(t, 2, cm.applied[0].Len())
}

// TestExecute_SameTermsNoWrite leaves a matching plan untouched.
func TestExecute_SameTermsNoWrite(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := created.Add(time.Hour)
	rm := &fakeReadModel{bundle: eligibleBundle(created), plan: planRow("bundle-1", 3, created)}
	cm := &fakeCommitter{}

	it := newTestInteractor(rm, eligibleCatalog(), cm, now)

	out, err := it.Execute(context.Background(), Request{SubjectID: "bundle-1", Desired: terms(3)})
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnchanged, out)
	assert.Empty(t, cm.applied)
}

// TestExecute_RewriteUncommitted mutates terms in place while no buyer has
// committed to the plan.
func TestExecute_RewriteUncommitted(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := created.Add(time.Hour)
	rm := &fakeReadModel{bundle: eligibleBundle(created), plan: planRow("bundle-1", 3, created)}
	cm := &fakeCommitter{}

	it := newTestInteractor(rm, eligibleCatalog(), cm, now)

	out, err := it.Execute(context.Background(), Request{SubjectID: "bundle-1", Desired: terms(6)})
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, out)
	require.Len(t, cm.applied, 1)
	// plan update + plan.terms_changed outbox row
	assert.Equal(t, 2, cm.applied[0].Len())
}

// TestExecute_ReplaceCommitted retires a committed plan and attaches a fresh
// one; the old terms stay frozen.
func TestExecute_ReplaceCommitted(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := created.Add(time.Hour)
	rm := &fakeReadModel{
		bundle:         eligibleBundle(created),
		plan:           planRow("bundle-1", 3, created),
		paymentOptions: 2,
	}
	cm := &fakeCommitter{}

	it := newTestInteractor(rm, eligibleCatalog(), cm, now)

	out, err := it.Execute(context.Background(), Request{SubjectID: "bundle-1", Desired: terms(6)})
	require.NoError(t, err)
	assert.Equal(t, OutcomeReplaced, out)
	require.Len(t, cm.applied, 1)
	// retire update + successor insert + two outbox rows
	assert.Equal(t, 4, cm.applied[0].Len())
}

// TestExecute_RemoveUncommitted hard-deletes a plan no buyer committed to.
func TestExecute_RemoveUncommitted(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := created.Add(time.Hour)
	rm := &fakeReadModel{bundle: eligibleBundle(created), plan: planRow("bundle-1", 3, created)}
	cm := &fakeCommitter{}

	it := newTestInteractor(rm, eligibleCatalog(), cm, now)

	out, err := it.Execute(context.Background(), Request{SubjectID: "bundle-1"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeRemoved, out)
	require.Len(t, cm.applied, 1)
	// row delete + plan.removed outbox row
	assert.Equal(t, 2, cm.applied[0].Len())
}

// TestExecute_RetireCommitted soft-deletes a committed plan with no successor.
func TestExecute_RetireCommitted(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := created.Add(time.Hour)
	rm := &fakeReadModel{
		bundle:         eligibleBundle(created),
		plan:           planRow("bundle-1", 3, created),
		paymentOptions: 1,
	}
	cm := &fakeCommitter{}

	it := newTestInteractor(rm, eligibleCatalog(), cm, now)

	out, err := it.Execute(context.Background(), Request{SubjectID: "bundle-1"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeRetired, out)
	require.Len(t, cm.applied, 1)
	assert.Equal(t, 2, cm.applied[0].Len())
}

// TestExecute_CustomizablePriceIneligible rejects pay-what-you-want subjects.
func TestExecute_CustomizablePriceIneligible(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := created.Add(time.Hour)
	bundle := eligibleBundle(created)
	bundle.CustomizablePrice = true
	rm := &fakeReadModel{bundle: bundle}
	cm := &fakeCommitter{}

	it := newTestInteractor(rm, eligibleCatalog(), cm, now)

	_, err := it.Execute(context.Background(), Request{SubjectID: "bundle-1", Desired: terms(3)})
	var planErr *domain.IneligiblePlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, domain.ReasonCustomizablePrice, planErr.Reason)
	assert.Empty(t, cm.applied)
}

// TestExecute_IneligibleItem rejects bundles containing a product that does
// not allow installments.
func TestExecute_IneligibleItem(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := created.Add(time.Hour)
	rm := &fakeReadModel{bundle: eligibleBundle(created)}
	cat := &fakeCatalog{entries: map[string]*contracts.CatalogEntry{
		"prod-1": {ProductID: "prod-1", SellerID: "seller-1", Alive: true, InstallmentEligible: false},
	}}
	cm := &fakeCommitter{}

	it := newTestInteractor(rm, cat, cm, now)

	_, err := it.Execute(context.Background(), Request{SubjectID: "bundle-1", Desired: terms(3)})
	var planErr *domain.IneligiblePlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, domain.ReasonIneligibleItem, planErr.Reason)
}

// TestExecute_StandaloneProductSubject gates non-bundle subjects through the
// catalog entry itself.
func TestExecute_StandaloneProductSubject(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	cat := &fakeCatalog{entries: map[string]*contracts.CatalogEntry{
		"prod-9": {ProductID: "prod-9", SellerID: "seller-1", Alive: true, InstallmentEligible: true},
	}}
	cm := &fakeCommitter{}

	it := newTestInteractor(&fakeReadModel{}, cat, cm, now)

	out, err := it.Execute(context.Background(), Request{SubjectID: "prod-9", Desired: terms(4)})
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, out)
}

// TestExecute_UnknownSubject rejects plans for subjects nobody knows.
func TestExecute_UnknownSubject(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	cm := &fakeCommitter{}

	it := newTestInteractor(&fakeReadModel{}, &fakeCatalog{}, cm, now)

	_, err := it.Execute(context.Background(), Request{SubjectID: "ghost", Desired: terms(3)})
	var planErr *domain.IneligiblePlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, domain.ReasonUnknownPlanSubject, planErr.Reason)
}

// TestExecute_InvalidInstallmentCount propagates the domain validation error.
func TestExecute_InvalidInstallmentCount(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := created.Add(time.Hour)
	rm := &fakeReadModel{bundle: eligibleBundle(created)}
	cm := &fakeCommitter{}

	it := newTestInteractor(rm, eligibleCatalog(), cm, now)

	_, err := it.Execute(context.Background(), Request{SubjectID: "bundle-1", Desired: terms(1)})
	require.ErrorIs(t, err, domain.ErrInvalidInstallmentCount)
	assert.Empty(t, cm.applied)
}
