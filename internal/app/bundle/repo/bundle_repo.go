package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/murkotick/bundle-composition-service/internal/app/bundle/domain"
	"github.com/murkotick/bundle-composition-service/internal/models/m_bundle"
	"github.com/murkotick/bundle-composition-service/internal/models/m_bundle_item"
)

// BundleRepo is the Spanner implementation of the write-side repository for
// bundles and their items. It returns *spanner.Mutation objects but never
// applies them.
type BundleRepo struct{}

func NewBundleRepo() *BundleRepo {
	return &BundleRepo{}
}

// UpdateMut builds an Update mutation using the aggregate's ChangeTracker.
// Only dirty fields are written; updated_at is stamped whenever anything is.
func (r *BundleRepo) UpdateMut(b *domain.Bundle) *spanner.Mutation {
	if b == nil || b.Changes() == nil || !b.Changes().HasChanges() {
		return nil
	}

	updates := map[string]interface{}{}

	if b.Changes().Dirty(domain.FieldHasOutdatedPurchases) {
		updates[m_bundle.ColHasOutdatedPurchases] = b.HasOutdatedPurchases()
	}

	if len(updates) == 0 {
		return nil
	}

	updates[m_bundle.ColUpdatedAt] = b.UpdatedAt().UTC()
	return m_bundle.UpdateMutation(b.ID(), updates)
}

// buildItemInsertValues constructs the values map used to insert an item.
// Unexported so tests in the package can inspect the map without relying on
// spanner.Mutation internals.
func buildItemInsertValues(it *domain.BundleItem) map[string]interface{} {
	return m_bundle_item.BuildInsertMap(
		it.BundleID(),
		it.ID(),
		it.ProductID(),
		it.VariantID(),
		it.Quantity(),
		it.Position(),
		it.CreatedAt().UTC(),
		it.UpdatedAt().UTC(),
	)
}

// InsertItemMut builds an Insert mutation for a newly created item.
func (r *BundleRepo) InsertItemMut(it *domain.BundleItem) *spanner.Mutation {
	if it == nil || !it.IsNew() {
		return nil
	}
	return m_bundle_item.InsertMutation(buildItemInsertValues(it))
}

// UpdateItemMut builds an Update mutation covering an item's dirty fields,
// including soft deletion via deleted_at.
func (r *BundleRepo) UpdateItemMut(it *domain.BundleItem) *spanner.Mutation {
	if it == nil || it.IsNew() || it.Changes() == nil || !it.Changes().HasChanges() {
		return nil
	}

	updates := map[string]interface{}{}

	if it.Changes().Dirty(domain.FieldItemQuantity) {
		updates[m_bundle_item.ColQuantity] = it.Quantity()
	}
	if it.Changes().Dirty(domain.FieldItemVariant) {
		if v := it.VariantID(); v != nil {
			updates[m_bundle_item.ColVariantID] = *v
		} else {
			updates[m_bundle_item.ColVariantID] = nil
		}
	}
	if it.Changes().Dirty(domain.FieldItemPosition) {
		updates[m_bundle_item.ColPosition] = it.Position()
	}
	if it.Changes().Dirty(domain.FieldItemDeletedAt) {
		if d := it.DeletedAt(); d != nil {
			updates[m_bundle_item.ColDeletedAt] = d.UTC()
		} else {
			updates[m_bundle_item.ColDeletedAt] = nil
		}
	}

	if len(updates) == 0 {
		return nil
	}

	updates[m_bundle_item.ColUpdatedAt] = it.UpdatedAt().UTC()
	return m_bundle_item.UpdateMutation(it.BundleID(), it.ID(), updates)
}
