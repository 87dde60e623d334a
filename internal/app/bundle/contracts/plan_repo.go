package contracts

import (
	"cloud.google.com/go/spanner"

	"github.com/murkotick/bundle-composition-service/internal/app/bundle/domain"
)

// PlanRepo is the write-side repository for installment plans.
// Methods return Spanner mutations; they never apply them.
type PlanRepo interface {
	// InsertMut returns a mutation inserting a new plan.
	InsertMut(p *domain.InstallmentPlan) *spanner.Mutation

	// UpdateMut returns a mutation covering the plan's dirty fields (including
	// retirement via deleted_at), or nil when nothing changed.
	UpdateMut(p *domain.InstallmentPlan) *spanner.Mutation

	// DeleteMut returns a mutation hard-deleting the plan row. Callers must
	// only use this for plans with zero committed payment options.
	DeleteMut(p *domain.InstallmentPlan) *spanner.Mutation
}
