package apply_installment_plan

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	contracts "github.com/murkotick/bundle-composition-service/internal/app/bundle/contracts"
	"github.com/murkotick/bundle-composition-service/internal/app/bundle/domain"
	"github.com/murkotick/bundle-composition-service/internal/app/bundle/dto"
	shared "github.com/murkotick/bundle-composition-service/internal/app/bundle/usecases/shared"
	"github.com/murkotick/bundle-composition-service/internal/app/bundle/utils"
	"github.com/murkotick/bundle-composition-service/internal/pkg/clock"
	commitplan "github.com/murkotick/bundle-composition-service/internal/pkg/committer"
)

// Outcome names the state transition the lifecycle manager performed.
type Outcome string

const (
	// OutcomeNone means no plan existed and none was requested.
	OutcomeNone Outcome = "none"
	// OutcomeUnchanged means the active plan already carries the requested terms.
	OutcomeUnchanged Outcome = "unchanged"
	// OutcomeCreated means a plan was attached to a subject that had none.
	OutcomeCreated Outcome = "created"
	// OutcomeUpdated means an uncommitted plan was rewritten in place.
	OutcomeUpdated Outcome = "updated"
	// OutcomeReplaced means a committed plan was retired and a fresh one created.
	OutcomeReplaced Outcome = "replaced"
	// OutcomeRetired means a committed plan was soft-deleted with no successor.
	OutcomeRetired Outcome = "retired"
	// OutcomeRemoved means an uncommitted plan was hard-deleted.
	OutcomeRemoved Outcome = "removed"
)

// Request carries the desired installment terms for a subject. A nil Desired
// asks for the plan to be removed.
type Request struct {
	SubjectID string
	Desired   *domain.PlanTerms
}

// Interactor drives the installment-plan state machine: terms of a plan with
// committed payment options are frozen, so edits against such a plan always
// retire it and attach a successor.
type Interactor struct {
	PlanRepo   contracts.PlanRepo
	OutboxRepo contracts.OutboxRepo
	Committer  contracts.Committer
	ReadModel  contracts.ReadModel
	Catalog    contracts.Catalog
	Clock      clock.Clock
}

func NewInteractor(planRepo contracts.PlanRepo, outboxRepo contracts.OutboxRepo, committer contracts.Committer, readModel contracts.ReadModel, catalog contracts.Catalog, clk clock.Clock) *Interactor {
	return &Interactor{
		PlanRepo:   planRepo,
		OutboxRepo: outboxRepo,
		Committer:  committer,
		ReadModel:  readModel,
		Catalog:    catalog,
		Clock:      clk,
	}
}

func (it *Interactor) Execute(ctx context.Context, req Request) (Outcome, error) {
	now := it.Clock.Now()

	// 1. Load the active plan, if any.
	planDTO, err := it.ReadModel.GetInstallmentPlan(ctx, req.SubjectID)
	if err != nil {
		return OutcomeNone, err
	}

	if planDTO == nil {
		if req.Desired == nil {
			return OutcomeNone, nil
		}
		return it.createPlan(ctx, req, now)
	}

	plan := reconstructPlan(planDTO)

	committed, err := it.ReadModel.CountPaymentOptions(ctx, plan.ID())
	if err != nil {
		return OutcomeNone, err
	}

	if req.Desired == nil {
		return it.dropPlan(ctx, plan, committed, now)
	}

	desired := req.Desired.Normalize()
	if plan.Terms().Equal(desired) {
		return OutcomeUnchanged, nil
	}

	if err := it.checkEligibility(ctx, req.SubjectID); err != nil {
		return OutcomeNone, err
	}

	if committed == 0 {
		return it.rewritePlan(ctx, plan, desired, now)
	}
	return it.replacePlan(ctx, plan, desired, now)
}

// createPlan attaches a plan to a subject that has none.
func (it *Interactor) createPlan(ctx context.Context, req Request, now time.Time) (Outcome, error) {
	if err := it.checkEligibility(ctx, req.SubjectID); err != nil {
		return OutcomeNone, err
	}

	plan, err := domain.NewInstallmentPlan(uuid.New().String(), req.SubjectID, *req.Desired, now)
	if err != nil {
		return OutcomeNone, err
	}

	cp := commitplan.NewPlan()
	cp.Add(it.PlanRepo.InsertMut(plan))
	if err := it.addOutbox(cp, plan.DomainEvents(), now); err != nil {
		return OutcomeNone, err
	}
	if err := it.Committer.Apply(ctx, cp); err != nil {
		return OutcomeNone, err
	}
	return OutcomeCreated, nil
}

// dropPlan removes the plan: hard-delete when no buyer committed to it,
// soft-delete otherwise so existing payment schedules keep their terms.
func (it *Interactor) dropPlan(ctx context.Context, plan *domain.InstallmentPlan, committed int64, now time.Time) (Outcome, error) {
	cp := commitplan.NewPlan()

	if committed == 0 {
		if err := plan.MarkRemoved(committed, now); err != nil {
			return OutcomeNone, err
		}
		cp.Add(it.PlanRepo.DeleteMut(plan))
		if err := it.addOutbox(cp, plan.DomainEvents(), now); err != nil {
			return OutcomeNone, err
		}
		if err := it.Committer.Apply(ctx, cp); err != nil {
			return OutcomeNone, err
		}
		return OutcomeRemoved, nil
	}

	plan.Retire(now)
	cp.Add(it.PlanRepo.UpdateMut(plan))
	if err := it.addOutbox(cp, plan.DomainEvents(), now); err != nil {
		return OutcomeNone, err
	}
	if err := it.Committer.Apply(ctx, cp); err != nil {
		return OutcomeNone, err
	}
	return OutcomeRetired, nil
}

// rewritePlan mutates an uncommitted plan in place.
func (it *Interactor) rewritePlan(ctx context.Context, plan *domain.InstallmentPlan, desired domain.PlanTerms, now time.Time) (Outcome, error) {
	if err := plan.ChangeTerms(desired, 0, now); err != nil {
		return OutcomeNone, err
	}

	cp := commitplan.NewPlan()
	cp.Add(it.PlanRepo.UpdateMut(plan))
	if err := it.addOutbox(cp, plan.DomainEvents(), now); err != nil {
		return OutcomeNone, err
	}
	if err := it.Committer.Apply(ctx, cp); err != nil {
		return OutcomeNone, err
	}
	return OutcomeUpdated, nil
}

// replacePlan retires a committed plan and attaches a successor with the new
// terms in the same unit of work.
func (it *Interactor) replacePlan(ctx context.Context, plan *domain.InstallmentPlan, desired domain.PlanTerms, now time.Time) (Outcome, error) {
	plan.Retire(now)

	successor, err := domain.NewInstallmentPlan(uuid.New().String(), plan.SubjectID(), desired, now)
	if err != nil {
		return OutcomeNone, err
	}

	cp := commitplan.NewPlan()
	cp.Add(it.PlanRepo.UpdateMut(plan))
	cp.Add(it.PlanRepo.InsertMut(successor))
	if err := it.addOutbox(cp, plan.DomainEvents(), now); err != nil {
		return OutcomeNone, err
	}
	if err := it.addOutbox(cp, successor.DomainEvents(), now); err != nil {
		return OutcomeNone, err
	}
	if err := it.Committer.Apply(ctx, cp); err != nil {
		return OutcomeNone, err
	}
	return OutcomeReplaced, nil
}

// checkEligibility gates every transition that ends with an active plan. The
// subject is either a bundle (every composed item must allow installments) or
// a standalone catalog product.
func (it *Interactor) checkEligibility(ctx context.Context, subjectID string) error {
	bundle, err := it.ReadModel.GetBundle(ctx, subjectID)
	if err == nil {
		if bundle.CustomizablePrice {
			return &domain.IneligiblePlanError{Reason: domain.ReasonCustomizablePrice}
		}

		// Retired items have no say in eligibility.
		ids := make([]string, 0, len(bundle.Items))
		for _, item := range bundle.Items {
			if item.DeletedAt != nil {
				continue
			}
			ids = append(ids, item.ProductID)
		}
		entries, err := it.Catalog.ResolveProducts(ctx, ids)
		if err != nil {
			return err
		}
		for _, id := range ids {
			entry, ok := entries[id]
			if !ok || !entry.InstallmentEligible {
				return &domain.IneligiblePlanError{Reason: domain.ReasonIneligibleItem}
			}
		}
		return nil
	}
	if !errors.Is(err, domain.ErrBundleNotFound) {
		return err
	}

	// Not a bundle: fall back to the catalog entry for the subject itself.
	entries, err := it.Catalog.ResolveProducts(ctx, []string{subjectID})
	if err != nil {
		return err
	}
	entry, ok := entries[subjectID]
	if !ok || !entry.Alive {
		return &domain.IneligiblePlanError{Reason: domain.ReasonUnknownPlanSubject}
	}
	if !entry.InstallmentEligible {
		return &domain.IneligiblePlanError{Reason: domain.ReasonIneligibleItem}
	}
	return nil
}

func (it *Interactor) addOutbox(cp *commitplan.Plan, events []domain.DomainEvent, now time.Time) error {
	for _, ev := range events {
		payload, err := shared.MarshalDomainEventPayload(ev)
		if err != nil {
			return err
		}
		cp.Add(it.OutboxRepo.InsertMut(&contracts.OutboxJob{
			JobID:        uuid.New().String(),
			JobType:      ev.EventType(),
			SubjectID:    ev.AggregateID(),
			PayloadJSON:  payload,
			Status:       contracts.JobStatusPending,
			CreatedAtUTC: now,
		}))
	}
	return nil
}

func reconstructPlan(d *dto.InstallmentPlanDTO) *domain.InstallmentPlan {
	return domain.ReconstructInstallmentPlan(
		d.PlanID,
		d.SubjectID,
		domain.PlanTerms{
			NumberOfInstallments: d.NumberOfInstallments,
			Recurrence:           domain.Recurrence(d.Recurrence),
		},
		utils.TimeOrZero(utils.ParseTimePtr(d.CreatedAt)),
		utils.TimeOrZero(utils.ParseTimePtr(d.UpdatedAt)),
		utils.ParseTimePtr(d.DeletedAt),
	)
}
