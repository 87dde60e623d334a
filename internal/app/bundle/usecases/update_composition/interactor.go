package update_composition

import (
	"context"

	"github.com/google/uuid"

	contracts "github.com/murkotick/bundle-composition-service/internal/app/bundle/contracts"
	"github.com/murkotick/bundle-composition-service/internal/app/bundle/domain"
	"github.com/murkotick/bundle-composition-service/internal/app/bundle/dto"
	shared "github.com/murkotick/bundle-composition-service/internal/app/bundle/usecases/shared"
	"github.com/murkotick/bundle-composition-service/internal/app/bundle/utils"
	"github.com/murkotick/bundle-composition-service/internal/pkg/clock"
	commitplan "github.com/murkotick/bundle-composition-service/internal/pkg/committer"
)

// ItemInput is one desired membership entry as supplied by the caller.
type ItemInput struct {
	ProductID string
	VariantID *string
	Quantity  int64
	Position  int64
}

// Request carries the full desired composition of one bundle. The request is
// authoritative: anything not listed gets retired.
type Request struct {
	BundleID string
	Items    []ItemInput
}

// Interactor reconciles a bundle's stored composition against a desired one
// in a single atomic unit of work.
type Interactor struct {
	BundleRepo contracts.BundleRepo
	OutboxRepo contracts.OutboxRepo
	Committer  contracts.Committer
	ReadModel  contracts.ReadModel
	Catalog    contracts.Catalog
	Clock      clock.Clock
}

func NewInteractor(repo contracts.BundleRepo, outboxRepo contracts.OutboxRepo, committer contracts.Committer, readModel contracts.ReadModel, catalog contracts.Catalog, clk clock.Clock) *Interactor {
	return &Interactor{
		BundleRepo: repo,
		OutboxRepo: outboxRepo,
		Committer:  committer,
		ReadModel:  readModel,
		Catalog:    catalog,
		Clock:      clk,
	}
}

func (it *Interactor) Execute(ctx context.Context, req Request) error {
	now := it.Clock.Now()

	// 1. Load aggregate via read model
	dtoOut, err := it.ReadModel.GetBundle(ctx, req.BundleID)
	if err != nil {
		return err
	}
	bundle := reconstructBundle(dtoOut)

	// 2. Validate every desired entry against the catalog before touching
	// anything. Validation failures reject the whole request.
	desired, err := it.validateItems(ctx, bundle, req.Items)
	if err != nil {
		return err
	}

	// 3. Domain method
	changed, err := bundle.Reconcile(desired, func() string { return uuid.New().String() }, now)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	// 4. Collect mutations
	plan := commitplan.NewPlan()
	plan.Add(it.BundleRepo.UpdateMut(bundle))
	for _, item := range bundle.Items() {
		if item.IsNew() {
			plan.Add(it.BundleRepo.InsertItemMut(item))
			continue
		}
		plan.Add(it.BundleRepo.UpdateItemMut(item))
	}

	// 5. Outbox events
	for _, ev := range bundle.DomainEvents() {
		payload, err := shared.MarshalDomainEventPayload(ev)
		if err != nil {
			return err
		}
		plan.Add(it.OutboxRepo.InsertMut(&contracts.OutboxJob{
			JobID:        uuid.New().String(),
			JobType:      ev.EventType(),
			SubjectID:    ev.AggregateID(),
			PayloadJSON:  payload,
			Status:       contracts.JobStatusPending,
			CreatedAtUTC: now,
		}))
	}

	// 6. Apply via committer
	return it.Committer.Apply(ctx, plan)
}

// validateItems resolves the referenced products and checks each entry's
// eligibility. Returns the desired specs in request order.
func (it *Interactor) validateItems(ctx context.Context, bundle *domain.Bundle, items []ItemInput) ([]domain.ItemSpec, error) {
	ids := make([]string, 0, len(items))
	for _, in := range items {
		ids = append(ids, in.ProductID)
	}

	entries, err := it.Catalog.ResolveProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	desired := make([]domain.ItemSpec, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, in := range items {
		// One active item per product; a list naming a product twice would
		// split it into two rows.
		if seen[in.ProductID] {
			return nil, &domain.CompositionError{Reference: in.ProductID, Reason: domain.ReasonDuplicateProduct}
		}
		seen[in.ProductID] = true

		entry, ok := entries[in.ProductID]
		if !ok || !entry.Alive {
			return nil, &domain.CompositionError{Reference: in.ProductID, Reason: domain.ReasonUnknownProduct}
		}
		if entry.SellerID != bundle.SellerID() {
			return nil, &domain.CompositionError{Reference: in.ProductID, Reason: domain.ReasonForeignProduct}
		}
		if entry.IsBundle {
			return nil, &domain.CompositionError{Reference: in.ProductID, Reason: domain.ReasonNestedBundle}
		}
		if entry.IsCall {
			return nil, &domain.CompositionError{Reference: in.ProductID, Reason: domain.ReasonCallProduct}
		}
		if entry.IsRecurring {
			return nil, &domain.CompositionError{Reference: in.ProductID, Reason: domain.ReasonRecurringBilled}
		}
		if in.VariantID != nil && !entry.HasVariant(*in.VariantID) {
			return nil, &domain.CompositionError{Reference: in.ProductID, Reason: domain.ReasonUnknownVariant}
		}
		if in.Quantity < 1 {
			return nil, &domain.CompositionError{Reference: in.ProductID, Reason: domain.ReasonBadQuantity}
		}

		desired = append(desired, domain.ItemSpec{
			ProductID: in.ProductID,
			VariantID: in.VariantID,
			Quantity:  in.Quantity,
			Position:  in.Position,
		})
	}

	return desired, nil
}

func reconstructBundle(d *dto.BundleDTO) *domain.Bundle {
	items := make([]*domain.BundleItem, 0, len(d.Items))
	for _, row := range d.Items {
		items = append(items, domain.ReconstructBundleItem(
			row.ItemID,
			d.BundleID,
			row.ProductID,
			row.VariantID,
			row.Quantity,
			row.Position,
			utils.TimeOrZero(utils.ParseTimePtr(row.CreatedAt)),
			utils.TimeOrZero(utils.ParseTimePtr(row.UpdatedAt)),
			utils.ParseTimePtr(row.DeletedAt),
		))
	}

	return domain.ReconstructBundle(
		d.BundleID,
		d.SellerID,
		d.Name,
		d.PriceCents,
		d.CustomizablePrice,
		d.Published,
		d.HasOutdatedPurchases,
		d.SuccessfulSalesCount,
		items,
		utils.TimeOrZero(utils.ParseTimePtr(d.CreatedAt)),
		utils.TimeOrZero(utils.ParseTimePtr(d.UpdatedAt)),
	)
}
