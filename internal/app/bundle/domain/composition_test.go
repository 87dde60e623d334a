package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func activeItem(id, productID string, created time.Time) *BundleItem {
	return ReconstructBundleItem(id, "bundle-1", productID, nil, 1, 0, created, created, nil)
}

// TestDiffComposition_Identical produces no work for a matching input.
func TestDiffComposition_Identical(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	active := []*BundleItem{
		activeItem("item-1", "prod-a", created),
		activeItem("item-2", "prod-b", created),
	}
	desired := []ItemSpec{
		{ProductID: "prod-a", Quantity: 1, Position: 0},
		{ProductID: "prod-b", Quantity: 1, Position: 0},
	}

	diff := DiffComposition(active, desired)

	assert.Empty(t, diff.Create)
	assert.Empty(t, diff.Retire)
	require.Len(t, diff.Update, 2)
	assert.Equal(t, "item-1", diff.Update[0].Item.ID())
	assert.Equal(t, "item-2", diff.Update[1].Item.ID())
}

// TestDiffComposition_Swap keeps the shared product, retires the dropped one,
// and creates the new one.
func TestDiffComposition_Swap(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	active := []*BundleItem{
		activeItem("item-1", "prod-a", created),
		activeItem("item-2", "prod-b", created),
	}
	desired := []ItemSpec{
		{ProductID: "prod-a", Quantity: 2, Position: 0},
		{ProductID: "prod-c", Quantity: 1, Position: 1},
	}

	diff := DiffComposition(active, desired)

	require.Len(t, diff.Update, 1)
	assert.Equal(t, "item-1", diff.Update[0].Item.ID())
	assert.Equal(t, int64(2), diff.Update[0].Spec.Quantity)

	require.Len(t, diff.Retire, 1)
	assert.Equal(t, "item-2", diff.Retire[0].ID())

	require.Len(t, diff.Create, 1)
	assert.Equal(t, "prod-c", diff.Create[0].ProductID)
}

// TestDiffComposition_EmptyDesired retires everything.
func TestDiffComposition_EmptyDesired(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	active := []*BundleItem{
		activeItem("item-1", "prod-a", created),
		activeItem("item-2", "prod-b", created),
	}

	diff := DiffComposition(active, nil)

	assert.Empty(t, diff.Create)
	assert.Empty(t, diff.Update)
	assert.Len(t, diff.Retire, 2)
}

// TestApplySpec_NoChange leaves the tracker clean for an identical spec.
func TestApplySpec_NoChange(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := created.Add(time.Hour)
	it := activeItem("item-1", "prod-a", created)

	changed := it.applySpec(ItemSpec{ProductID: "prod-a", Quantity: 1, Position: 0}, now)

	assert.False(t, changed)
	assert.False(t, it.Changes().HasChanges())
	assert.Equal(t, created, it.UpdatedAt())
}

// TestApplySpec_RevivesDeletedItem clears deleted_at when a spec claims a
// soft-deleted item again.
func TestApplySpec_RevivesDeletedItem(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	deleted := created.Add(30 * time.Minute)
	now := created.Add(time.Hour)

	it := ReconstructBundleItem("item-1", "bundle-1", "prod-a", nil, 1, 0, created, deleted, &deleted)

	changed := it.applySpec(ItemSpec{ProductID: "prod-a", Quantity: 1, Position: 0}, now)

	assert.True(t, changed)
	assert.True(t, it.IsActive())
	assert.True(t, it.Changes().Dirty(FieldItemDeletedAt))
}
