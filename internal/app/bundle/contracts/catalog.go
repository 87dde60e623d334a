package contracts

import "context"

// CatalogEntry is a read-only projection of a catalog product used as
// reconciliation input and as search output. The catalog owns these records;
// this service never writes them.
type CatalogEntry struct {
	ProductID           string
	SellerID            string
	Name                string
	PriceCents          int64
	Alive               bool
	IsBundle            bool
	IsCall              bool
	IsRecurring         bool
	InstallmentEligible bool
	VariantIDs          []string
}

// HasVariant reports whether the entry owns the given variant.
func (e *CatalogEntry) HasVariant(variantID string) bool {
	for _, id := range e.VariantIDs {
		if id == variantID {
			return true
		}
	}
	return false
}

// Catalog resolves product references for composition validation and plan
// eligibility checks.
type Catalog interface {
	// ResolveProducts returns the entries for the given product IDs, keyed by
	// product ID. Unknown IDs are simply absent from the result.
	ResolveProducts(ctx context.Context, productIDs []string) (map[string]*CatalogEntry, error)
}

// SearchFilters narrows a catalog search to products that may legally join a
// bundle.
type SearchFilters struct {
	SellerID         string
	Query            string
	AliveOnly        bool
	ExcludeBundles   bool
	ExcludeRecurring bool
	ExcludeCalls     bool
	ExcludeIDs       []string
}

// SearchResult is one page of catalog records plus the unpaginated total.
type SearchResult struct {
	Records    []*CatalogEntry
	TotalCount int64
}

// CatalogSearchIndex is the external seller-scoped product search. Consumed,
// never implemented, by this service.
type CatalogSearchIndex interface {
	Search(ctx context.Context, filters SearchFilters, offset, limit int) (*SearchResult, error)
}
