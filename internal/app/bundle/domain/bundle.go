package domain

import "time"

// Field constants for bundle change tracking.
const (
	FieldHasOutdatedPurchases = "has_outdated_purchases"
)

// IDGenerator mints identifiers for newly created child entities.
type IDGenerator func() string

// Bundle is the aggregate root for composite products. It owns the ordered
// item collection and the outdated-purchases flag; price, publishing and the
// successful-sale counter are read here but owned by other subsystems.
type Bundle struct {
	id                   string
	sellerID             string
	name                 string
	priceCents           int64
	customizablePrice    bool
	published            bool
	hasOutdatedPurchases bool
	successfulSalesCount int64
	items                []*BundleItem
	createdAt            time.Time
	updatedAt            time.Time
	changes              *ChangeTracker
	events               []DomainEvent
}

// ReconstructBundle rebuilds a Bundle from persisted state.
// Used by interactors when loading through the read model.
func ReconstructBundle(
	id, sellerID, name string,
	priceCents int64,
	customizablePrice, published, hasOutdatedPurchases bool,
	successfulSalesCount int64,
	items []*BundleItem,
	createdAt, updatedAt time.Time,
) *Bundle {
	return &Bundle{
		id:                   id,
		sellerID:             sellerID,
		name:                 name,
		priceCents:           priceCents,
		customizablePrice:    customizablePrice,
		published:            published,
		hasOutdatedPurchases: hasOutdatedPurchases,
		successfulSalesCount: successfulSalesCount,
		items:                items,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
		changes:              NewChangeTracker(),
		events:               make([]DomainEvent, 0),
	}
}

func (b *Bundle) ID() string                  { return b.id }
func (b *Bundle) SellerID() string            { return b.sellerID }
func (b *Bundle) Name() string                { return b.name }
func (b *Bundle) PriceCents() int64           { return b.priceCents }
func (b *Bundle) HasCustomizablePrice() bool  { return b.customizablePrice }
func (b *Bundle) IsPublished() bool           { return b.published }
func (b *Bundle) HasOutdatedPurchases() bool  { return b.hasOutdatedPurchases }
func (b *Bundle) SuccessfulSalesCount() int64 { return b.successfulSalesCount }
func (b *Bundle) Items() []*BundleItem        { return b.items }
func (b *Bundle) CreatedAt() time.Time        { return b.createdAt }
func (b *Bundle) UpdatedAt() time.Time        { return b.updatedAt }
func (b *Bundle) Changes() *ChangeTracker     { return b.changes }
func (b *Bundle) DomainEvents() []DomainEvent { return b.events }

// ActiveItems returns the items that have not been soft-deleted.
func (b *Bundle) ActiveItems() []*BundleItem {
	active := make([]*BundleItem, 0, len(b.items))
	for _, it := range b.items {
		if it.IsActive() {
			active = append(active, it)
		}
	}
	return active
}

// Reconcile applies a desired composition to the bundle: matched items are
// updated in place, unmatched active items are soft-deleted, and remaining
// desired entries become new items. A desired entry whose product once lived
// in the bundle revives the retired row instead of inserting a duplicate.
// Returns true when any structural change occurred. Identical input performs
// no mutation at all.
//
// If a structural change happens while the bundle already has successful
// sales, the outdated-purchases flag is armed. It is never cleared here;
// only the explicit propagation trigger may do that.
func (b *Bundle) Reconcile(desired []ItemSpec, newID IDGenerator, now time.Time) (bool, error) {
	if b.published && len(desired) == 0 {
		return false, ErrEmptyPublishedBundle
	}

	diff := DiffComposition(b.ActiveItems(), desired)

	changed := false
	for _, m := range diff.Update {
		if m.Item.applySpec(m.Spec, now) {
			changed = true
		}
	}
	for _, it := range diff.Retire {
		it.retire(now)
		changed = true
	}
	for _, spec := range diff.Create {
		if it := b.retiredItem(spec.ProductID); it != nil {
			it.applySpec(spec, now)
			changed = true
			continue
		}
		b.items = append(b.items, NewBundleItem(newID(), b.id, spec, now))
		changed = true
	}

	if !changed {
		return false, nil
	}

	b.updatedAt = now
	b.armOutdatedPurchases()

	b.events = append(b.events, &CompositionChangedEvent{
		BundleID:     b.id,
		CreatedItems: len(diff.Create),
		RetiredItems: len(diff.Retire),
		UpdatedItems: len(diff.Update),
		Outdated:     b.hasOutdatedPurchases,
		ChangedAt:    now,
	})

	return true, nil
}

// retiredItem finds a soft-deleted item for the product, oldest first.
func (b *Bundle) retiredItem(productID string) *BundleItem {
	for _, it := range b.items {
		if !it.IsActive() && it.ProductID() == productID {
			return it
		}
	}
	return nil
}

// armOutdatedPurchases sets the flag when prior sales exist. Monotonic:
// once armed it stays armed until the propagation trigger clears it.
func (b *Bundle) armOutdatedPurchases() {
	if b.hasOutdatedPurchases {
		return
	}
	if b.successfulSalesCount > 0 {
		b.hasOutdatedPurchases = true
		b.changes.MarkDirty(FieldHasOutdatedPurchases)
	}
}

// RequestPropagation clears the outdated flag and records the request. The
// asynchronous worker never touches the flag itself, so a composition edit
// arriving mid-job re-arms it instead of being masked.
func (b *Bundle) RequestPropagation(now time.Time) error {
	if !b.hasOutdatedPurchases {
		return ErrNothingToPropagate
	}

	b.hasOutdatedPurchases = false
	b.changes.MarkDirty(FieldHasOutdatedPurchases)
	b.updatedAt = now

	b.events = append(b.events, &PropagationRequestedEvent{
		BundleID:    b.id,
		RequestedAt: now,
	})
	return nil
}

// ClearEvents drops accumulated domain events after they have been persisted.
func (b *Bundle) ClearEvents() {
	b.events = make([]DomainEvent, 0)
}
