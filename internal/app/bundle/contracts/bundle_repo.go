package contracts

import (
	"cloud.google.com/go/spanner"

	"github.com/murkotick/bundle-composition-service/internal/app/bundle/domain"
)

// BundleRepo is the write-side repository for bundles and their items.
// Methods return Spanner mutations; they never apply them.
type BundleRepo interface {
	// UpdateMut returns a mutation covering the bundle's dirty fields, or nil
	// when nothing changed.
	UpdateMut(b *domain.Bundle) *spanner.Mutation

	// InsertItemMut returns a mutation inserting a newly created item.
	InsertItemMut(it *domain.BundleItem) *spanner.Mutation

	// UpdateItemMut returns a mutation covering an item's dirty fields, or nil.
	UpdateItemMut(it *domain.BundleItem) *spanner.Mutation
}
