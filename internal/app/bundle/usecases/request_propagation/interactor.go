package request_propagation

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

// Request asks for the content of a bundle's outdated purchases to be
// re-synchronized.
type Request struct {
	BundleID string
}

// Interactor clears the outdated flag and enqueues the propagation job in
// one atomic plan. The flag flips immediately; the actual content work
// happens later in the worker, which never touches the flag.
type Interactor struct {
	BundleRepo contracts.BundleRepo
	OutboxRepo contracts.OutboxRepo
	Committer  contracts.Committer
	ReadModel  contracts.ReadModel
	Clock      clock.Clock
}

func NewInteractor(repo contracts.BundleRepo, outboxRepo contracts.OutboxRepo, committer contracts.Committer, readModel contracts.ReadModel, clk clock.Clock) *Interactor {
	return &Interactor{
		BundleRepo: repo,
		OutboxRepo: outboxRepo,
		Committer:  committer,
		ReadModel:  readModel,
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

	// 2. Domain method
	if err := bundle.RequestPropagation(now); err != nil {
		return err
	}

	// 3. Collect mutations: flag clear + job row land together or not at all
	plan := commitplan.NewPlan()
	plan.Add(it.BundleRepo.UpdateMut(bundle))

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

	// 4. Apply via committer
	return it.Committer.Apply(ctx, plan)
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
