package domain

import "time"

// DomainEvent is a marker interface for facts recorded by the aggregates.
type DomainEvent interface {
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

// CompositionChangedEvent is raised when a reconcile structurally changes a
// bundle's membership.
type CompositionChangedEvent struct {
	BundleID     string
	CreatedItems int
	UpdatedItems int
	RetiredItems int
	Outdated     bool
	ChangedAt    time.Time
}

func (e *CompositionChangedEvent) EventType() string      { return "bundle.composition_changed" }
func (e *CompositionChangedEvent) AggregateID() string    { return e.BundleID }
func (e *CompositionChangedEvent) OccurredAt() time.Time  { return e.ChangedAt }

// PropagationRequestedEvent is raised when a seller explicitly asks to
// re-synchronize outdated purchases. The outbox row doubles as the job record
// the propagation worker consumes.
type PropagationRequestedEvent struct {
	BundleID    string
	RequestedAt time.Time
}

// EventTypePropagateContent is the job type the propagation worker claims.
const EventTypePropagateContent = "bundle.propagate_content"

func (e *PropagationRequestedEvent) EventType() string     { return EventTypePropagateContent }
func (e *PropagationRequestedEvent) AggregateID() string   { return e.BundleID }
func (e *PropagationRequestedEvent) OccurredAt() time.Time { return e.RequestedAt }

// PlanCreatedEvent is raised when a new installment plan is attached.
type PlanCreatedEvent struct {
	PlanID               string
	SubjectID            string
	NumberOfInstallments int64
	Recurrence           string
	CreatedAt            time.Time
}

func (e *PlanCreatedEvent) EventType() string     { return "plan.created" }
func (e *PlanCreatedEvent) AggregateID() string   { return e.SubjectID }
func (e *PlanCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

// PlanTermsChangedEvent is raised when an uncommitted plan is rewritten in place.
type PlanTermsChangedEvent struct {
	PlanID               string
	SubjectID            string
	NumberOfInstallments int64
	ChangedAt            time.Time
}

func (e *PlanTermsChangedEvent) EventType() string     { return "plan.terms_changed" }
func (e *PlanTermsChangedEvent) AggregateID() string   { return e.SubjectID }
func (e *PlanTermsChangedEvent) OccurredAt() time.Time { return e.ChangedAt }

// PlanRetiredEvent is raised when a committed plan is soft-deleted.
type PlanRetiredEvent struct {
	PlanID    string
	SubjectID string
	RetiredAt time.Time
}

func (e *PlanRetiredEvent) EventType() string     { return "plan.retired" }
func (e *PlanRetiredEvent) AggregateID() string   { return e.SubjectID }
func (e *PlanRetiredEvent) OccurredAt() time.Time { return e.RetiredAt }

// PlanRemovedEvent is raised when an uncommitted plan is hard-deleted.
type PlanRemovedEvent struct {
	PlanID    string
	SubjectID string
	RemovedAt time.Time
}

func (e *PlanRemovedEvent) EventType() string     { return "plan.removed" }
func (e *PlanRemovedEvent) AggregateID() string   { return e.SubjectID }
func (e *PlanRemovedEvent) OccurredAt() time.Time { return e.RemovedAt }
