package search

import (
	"context"

	contracts "github.com/murkotick/bundle-composition-service/internal/app/bundle/contracts"
)

// Pagination defaults. All is capped rather than unbounded so a seller with a
// huge catalog cannot hold a request open indefinitely.
const (
	DefaultPerPage = 10
	AllCap         = 1000
)

// Params scope one search to a seller and a bundle being edited.
type Params struct {
	BundleID string
	SellerID string
	Query    string
	Page     int
	PerPage  int
	// All requests every bundleable product in one capped page, for pickers
	// that render the whole catalog client-side.
	All bool
}

// Result is one page of bundleable products.
type Result struct {
	Products   []*contracts.CatalogEntry
	TotalCount int64
	Page       int
	PerPage    int
	HasMore    bool
}

// Service finds the seller's products that may legally join the bundle:
// alive, seller-owned, not themselves bundles, not subscriptions, not
// scheduled calls, and never the bundle being edited.
type Service struct {
	Index contracts.CatalogSearchIndex
}

func NewService(index contracts.CatalogSearchIndex) *Service {
	return &Service{Index: index}
}

func (s *Service) Search(ctx context.Context, p Params) (*Result, error) {
	page := p.Page
	if page < 1 {
		page = 1
	}
	perPage := p.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	offset := (page - 1) * perPage
	limit := perPage
	if p.All {
		page = 1
		offset = 0
		limit = AllCap
	}

	filters := contracts.SearchFilters{
		SellerID:         p.SellerID,
		Query:            p.Query,
		AliveOnly:        true,
		ExcludeBundles:   true,
		ExcludeRecurring: true,
		ExcludeCalls:     true,
	}
	if p.BundleID != "" {
		filters.ExcludeIDs = []string{p.BundleID}
	}

	found, err := s.Index.Search(ctx, filters, offset, limit)
	if err != nil {
		return nil, err
	}

	return &Result{
		Products:   found.Records,
		TotalCount: found.TotalCount,
		Page:       page,
		PerPage:    perPage,
		HasMore:    !p.All && int64(page*perPage) < found.TotalCount,
	}, nil
}
