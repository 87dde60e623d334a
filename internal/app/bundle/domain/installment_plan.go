package domain

import "time"

// Field constants for installment-plan change tracking.
const (
	FieldPlanInstallments = "number_of_installments"
	FieldPlanRecurrence   = "recurrence"
	FieldPlanDeletedAt    = "deleted_at"
)

// Recurrence is the cadence of installment charges.
type Recurrence string

// RecurrenceMonthly is the only cadence currently offered.
const RecurrenceMonthly Recurrence = "monthly"

// PlanTerms are the buyer-visible terms of an installment plan. Once any
// payment option is committed against a plan, its terms are frozen: editing
// always means retiring the plan and creating a new one.
type PlanTerms struct {
	NumberOfInstallments int64
	Recurrence           Recurrence
}

// Normalize fills in the default cadence.
func (t PlanTerms) Normalize() PlanTerms {
	if t.Recurrence == "" {
		t.Recurrence = RecurrenceMonthly
	}
	return t
}

// Equal compares terms after normalization.
func (t PlanTerms) Equal(other PlanTerms) bool {
	a, b := t.Normalize(), other.Normalize()
	return a.NumberOfInstallments == b.NumberOfInstallments && a.Recurrence == b.Recurrence
}

func (t PlanTerms) validate() error {
	if t.NumberOfInstallments < 2 {
		return ErrInvalidInstallmentCount
	}
	return nil
}

// InstallmentPlan is a payment schedule attached to exactly one bundle or
// product. A retired (soft-deleted) plan keeps serving buyers already
// committed to it; its terms never change on re-read.
type InstallmentPlan struct {
	id        string
	subjectID string
	terms     PlanTerms
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
	changes   *ChangeTracker
	events    []DomainEvent
}

// NewInstallmentPlan creates a plan with the given terms.
func NewInstallmentPlan(id, subjectID string, terms PlanTerms, now time.Time) (*InstallmentPlan, error) {
	terms = terms.Normalize()
	if err := terms.validate(); err != nil {
		return nil, err
	}

	p := &InstallmentPlan{
		id:        id,
		subjectID: subjectID,
		terms:     terms,
		createdAt: now,
		updatedAt: now,
		changes:   NewChangeTracker(),
		events:    make([]DomainEvent, 0),
	}

	p.events = append(p.events, &PlanCreatedEvent{
		PlanID:               p.id,
		SubjectID:            p.subjectID,
		NumberOfInstallments: terms.NumberOfInstallments,
		Recurrence:           string(terms.Recurrence),
		CreatedAt:            now,
	})

	return p, nil
}

// ReconstructInstallmentPlan rebuilds a plan from persisted state.
func ReconstructInstallmentPlan(
	id, subjectID string,
	terms PlanTerms,
	createdAt, updatedAt time.Time,
	deletedAt *time.Time,
) *InstallmentPlan {
	return &InstallmentPlan{
		id:        id,
		subjectID: subjectID,
		terms:     terms.Normalize(),
		createdAt: createdAt,
		updatedAt: updatedAt,
		deletedAt: deletedAt,
		changes:   NewChangeTracker(),
		events:    make([]DomainEvent, 0),
	}
}

func (p *InstallmentPlan) ID() string                  { return p.id }
func (p *InstallmentPlan) SubjectID() string           { return p.subjectID }
func (p *InstallmentPlan) Terms() PlanTerms            { return p.terms }
func (p *InstallmentPlan) CreatedAt() time.Time        { return p.createdAt }
func (p *InstallmentPlan) UpdatedAt() time.Time        { return p.updatedAt }
func (p *InstallmentPlan) DeletedAt() *time.Time       { return p.deletedAt }
func (p *InstallmentPlan) Changes() *ChangeTracker     { return p.changes }
func (p *InstallmentPlan) DomainEvents() []DomainEvent { return p.events }

// IsRetired reports whether the plan has been soft-deleted.
func (p *InstallmentPlan) IsRetired() bool { return p.deletedAt != nil }

// ChangeTerms rewrites the plan's terms in place. Only legal while no buyer
// has committed to the plan; with committed payment options the terms are
// frozen and the caller must retire + create instead.
func (p *InstallmentPlan) ChangeTerms(terms PlanTerms, committedOptions int64, now time.Time) error {
	if committedOptions > 0 {
		return ErrPlanCommitted
	}

	terms = terms.Normalize()
	if err := terms.validate(); err != nil {
		return err
	}
	if p.terms.Equal(terms) {
		return nil
	}

	if p.terms.NumberOfInstallments != terms.NumberOfInstallments {
		p.changes.MarkDirty(FieldPlanInstallments)
	}
	if p.terms.Recurrence != terms.Recurrence {
		p.changes.MarkDirty(FieldPlanRecurrence)
	}
	p.terms = terms
	p.updatedAt = now

	p.events = append(p.events, &PlanTermsChangedEvent{
		PlanID:               p.id,
		SubjectID:            p.subjectID,
		NumberOfInstallments: terms.NumberOfInstallments,
		ChangedAt:            now,
	})
	return nil
}

// Retire soft-deletes the plan, preserving its terms for buyers already
// paying against it.
func (p *InstallmentPlan) Retire(now time.Time) {
	if p.deletedAt != nil {
		return
	}
	p.deletedAt = &now
	p.updatedAt = now
	p.changes.MarkDirty(FieldPlanDeletedAt)

	p.events = append(p.events, &PlanRetiredEvent{
		PlanID:    p.id,
		SubjectID: p.subjectID,
		RetiredAt: now,
	})
}

// MarkRemoved records the hard removal of a plan that no buyer committed to.
// The row deletion itself is a repository concern.
func (p *InstallmentPlan) MarkRemoved(committedOptions int64, now time.Time) error {
	if committedOptions > 0 {
		return ErrPlanCommitted
	}
	p.events = append(p.events, &PlanRemovedEvent{
		PlanID:    p.id,
		SubjectID: p.subjectID,
		RemovedAt: now,
	})
	return nil
}

// ClearEvents drops accumulated domain events after they have been persisted.
func (p *InstallmentPlan) ClearEvents() {
	p.events = make([]DomainEvent, 0)
}
