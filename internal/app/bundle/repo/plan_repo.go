package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/murkotick/bundle-composition-service/internal/app/bundle/domain"
	"github.com/murkotick/bundle-composition-service/internal/models/m_installment_plan"
)

// PlanRepo is the Spanner implementation of the write-side repository for
// installment plans. It returns *spanner.Mutation objects but never applies
// them.
type PlanRepo struct{}

func NewPlanRepo() *PlanRepo {
	return &PlanRepo{}
}

func buildPlanInsertValues(p *domain.InstallmentPlan) map[string]interface{} {
	terms := p.Terms()
	return m_installment_plan.BuildInsertMap(
		p.ID(),
		p.SubjectID(),
		terms.NumberOfInstallments,
		string(terms.Recurrence),
		p.CreatedAt().UTC(),
		p.UpdatedAt().UTC(),
	)
}

// InsertMut builds an Insert mutation for a new plan.
func (r *PlanRepo) InsertMut(p *domain.InstallmentPlan) *spanner.Mutation {
	if p == nil {
		return nil
	}
	return m_installment_plan.InsertMutation(buildPlanInsertValues(p))
}

// UpdateMut builds an Update mutation using the plan's ChangeTracker. This
// covers both in-place term rewrites (only legal without committed payment
// options) and retirement via deleted_at.
func (r *PlanRepo) UpdateMut(p *domain.InstallmentPlan) *spanner.Mutation {
	if p == nil || p.Changes() == nil || !p.Changes().HasChanges() {
		return nil
	}

	updates := map[string]interface{}{}

	if p.Changes().Dirty(domain.FieldPlanInstallments) {
		updates[m_installment_plan.ColNumberOfInstallments] = p.Terms().NumberOfInstallments
	}
	if p.Changes().Dirty(domain.FieldPlanRecurrence) {
		updates[m_installment_plan.ColRecurrence] = string(p.Terms().Recurrence)
	}
	if p.Changes().Dirty(domain.FieldPlanDeletedAt) {
		if d := p.DeletedAt(); d != nil {
			updates[m_installment_plan.ColDeletedAt] = d.UTC()
		} else {
			updates[m_installment_plan.ColDeletedAt] = nil
		}
	}

	if len(updates) == 0 {
		return nil
	}

	updates[m_installment_plan.ColUpdatedAt] = p.UpdatedAt().UTC()
	return m_installment_plan.UpdateMutation(p.ID(), updates)
}

// DeleteMut builds a Delete mutation removing the plan row outright. The
// lifecycle manager only reaches for this when no payment option references
// the plan.
func (r *PlanRepo) DeleteMut(p *domain.InstallmentPlan) *spanner.Mutation {
	if p == nil {
		return nil
	}
	return m_installment_plan.DeleteMutation(p.ID())
}
