package domain

import "time"

// Field constants for bundle-item change tracking.
const (
	FieldItemQuantity  = "quantity"
	FieldItemVariant   = "variant_id"
	FieldItemPosition  = "position"
	FieldItemDeletedAt = "deleted_at"
)

// BundleItem is one membership record inside a bundle: a catalog product,
// an optional variant of it, a quantity, and a display/delivery position.
// Items are soft-deleted, never removed, because purchase snapshots may
// still reference the composition they were part of.
type BundleItem struct {
	id        string
	bundleID  string
	productID string
	variantID *string
	quantity  int64
	position  int64
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
	changes   *ChangeTracker
	isNew     bool
}

// NewBundleItem creates a fresh item from a desired-composition entry.
func NewBundleItem(id, bundleID string, spec ItemSpec, now time.Time) *BundleItem {
	return &BundleItem{
		id:        id,
		bundleID:  bundleID,
		productID: spec.ProductID,
		variantID: spec.VariantID,
		quantity:  spec.Quantity,
		position:  spec.Position,
		createdAt: now,
		updatedAt: now,
		changes:   NewChangeTracker(),
		isNew:     true,
	}
}

// ReconstructBundleItem rebuilds an item from persisted state.
func ReconstructBundleItem(
	id, bundleID, productID string,
	variantID *string,
	quantity, position int64,
	createdAt, updatedAt time.Time,
	deletedAt *time.Time,
) *BundleItem {
	return &BundleItem{
		id:        id,
		bundleID:  bundleID,
		productID: productID,
		variantID: variantID,
		quantity:  quantity,
		position:  position,
		createdAt: createdAt,
		updatedAt: updatedAt,
		deletedAt: deletedAt,
		changes:   NewChangeTracker(),
	}
}

func (it *BundleItem) ID() string             { return it.id }
func (it *BundleItem) BundleID() string       { return it.bundleID }
func (it *BundleItem) ProductID() string      { return it.productID }
func (it *BundleItem) VariantID() *string     { return it.variantID }
func (it *BundleItem) Quantity() int64        { return it.quantity }
func (it *BundleItem) Position() int64        { return it.position }
func (it *BundleItem) CreatedAt() time.Time   { return it.createdAt }
func (it *BundleItem) UpdatedAt() time.Time   { return it.updatedAt }
func (it *BundleItem) DeletedAt() *time.Time  { return it.deletedAt }
func (it *BundleItem) Changes() *ChangeTracker { return it.changes }

// IsNew reports whether the item was created in this unit of work and must
// be inserted rather than updated.
func (it *BundleItem) IsNew() bool { return it.isNew }

// IsActive reports whether the item has not been soft-deleted.
func (it *BundleItem) IsActive() bool { return it.deletedAt == nil }

// applySpec updates the item in place from a matched desired entry.
// Returns true when anything actually changed.
func (it *BundleItem) applySpec(spec ItemSpec, now time.Time) bool {
	changed := false

	if it.quantity != spec.Quantity {
		it.quantity = spec.Quantity
		it.changes.MarkDirty(FieldItemQuantity)
		changed = true
	}
	if !variantEqual(it.variantID, spec.VariantID) {
		it.variantID = spec.VariantID
		it.changes.MarkDirty(FieldItemVariant)
		changed = true
	}
	if it.position != spec.Position {
		it.position = spec.Position
		it.changes.MarkDirty(FieldItemPosition)
		changed = true
	}
	if it.deletedAt != nil {
		it.deletedAt = nil
		it.changes.MarkDirty(FieldItemDeletedAt)
		changed = true
	}

	if changed {
		it.updatedAt = now
	}
	return changed
}

// retire soft-deletes the item. The row is kept for audit and for purchase
// snapshots taken before the composition changed.
func (it *BundleItem) retire(now time.Time) {
	if it.deletedAt != nil {
		return
	}
	it.deletedAt = &now
	it.updatedAt = now
	it.changes.MarkDirty(FieldItemDeletedAt)
}

func variantEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
