package request_propagation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/bundle-composition-service/internal/app/bundle/domain"
	"github.com/murkotick/bundle-composition-service/internal/app/bundle/dto"
	"github.com/murkotick/bundle-composition-service/internal/app/bundle/repo"
	"github.com/murkotick/bundle-composition-service/internal/pkg/clock"
	commitplan "github.com/murkotick/bundle-composition-service/internal/pkg/committer"
)

type fakeReadModel struct {
	bundle *dto.BundleDTO
}

func (f *fakeReadModel) GetBundle(ctx context.Context, bundleID string) (*dto.BundleDTO, error) {
	if f.bundle == nil || f.bundle.BundleID != bundleID {
		return nil, domain.ErrBundleNotFound
	}
	return f.bundle, nil
}

func (f *fakeReadModel) GetInstallmentPlan(ctx context.Context, subjectID string) (*dto.InstallmentPlanDTO, error) {
	return nil, nil
}

func (f *fakeReadModel) CountPaymentOptions(ctx context.Context, planID string) (int64, error) {
	return 0, nil
}

func (f *fakeReadModel) ActiveItemsMaxUpdatedAt(ctx context.Context, bundleID string) (*time.Time, error) {
	return nil, nil
}

func (f *fakeReadModel) ListOutdatedPurchases(ctx context.Context, bundleID string, cutoff time.Time, after *dto.PurchaseCursor, limit int) ([]*dto.PurchaseDTO, error) {
	return nil, nil
}

type fakeCommitter struct {
	applied []*commitplan.Plan
}

func (f *fakeCommitter) Apply(ctx context.Context, plan *commitplan.Plan) error {
	f.applied = append(f.applied, plan)
	return nil
}

func rfc3339(t time.Time) *string {
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func bundleRow(outdated bool, created time.Time) *dto.BundleDTO {
	return &dto.BundleDTO{
		BundleID:             "bundle-1",
		SellerID:             "seller-1",
		Name:                 "Starter Pack",
		Published:            true,
		HasOutdatedPurchases: outdated,
		SuccessfulSalesCount: 5,
		CreatedAt:            rfc3339(created),
		UpdatedAt:            rfc3339(created),
	}
}

// TestExecute_EnqueuesJobAndClearsFlag lands the flag clear and the job row
// in one plan.
func TestExecute_EnqueuesJobAndClearsFlag(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := created.Add(time.Hour)

	rm := &fakeReadModel{bundle: bundleRow(true, created)}
	cm := &fakeCommitter{}

	it := NewInteractor(repo.NewBundleRepo(), repo.NewOutboxRepo(), cm, rm, clock.NewFake(now))

	err := it.Execute(context.Background(), Request{BundleID: "bundle-1"})
	require.NoError(t, err)
	require.Len(t, cm.applied, 1)
	assert.Equal(t, 2, cm.applied[0].Len())
}

// TestExecute_NothingToPropagate rejects a request when the flag is down.
func TestExecute_NothingToPropagate(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := created.Add(time.Hour)

	rm := &fakeReadModel{bundle: bundleRow(false, created)}
	cm := &fakeCommitter{}

	it := NewInteractor(repo.NewBundleRepo(), repo.NewOutboxRepo(), cm, rm, clock.NewFake(now))

	err := it.Execute(context.Background(), Request{BundleID: "bundle-1"})
	require.ErrorIs(t, err, domain.ErrNothingToPropagate)
	assert.Empty(t, cm.applied)
}

// TestExecute_BundleNotFound propagates the read model's sentinel.
func TestExecute_BundleNotFound(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	it := NewInteractor(repo.NewBundleRepo(), repo.NewOutboxRepo(), &fakeCommitter{}, &fakeReadModel{}, clock.NewFake(now))

	err := it.Execute(context.Background(), Request{BundleID: "missing"})
	require.ErrorIs(t, err, domain.ErrBundleNotFound)
}
