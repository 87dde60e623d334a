package shared

import (
	"encoding/json"
	"fmt"

	"github.com/murkotick/bundle-composition-service/internal/app/bundle/domain"
)

// MarshalDomainEventPayload converts a domain event into a JSON payload for
// the outbox. The domain layer stays free of serialization concerns; this
// adapter extracts primitives per event type.
func MarshalDomainEventPayload(ev domain.DomainEvent) (string, error) {
	if ev == nil {
		return "{}", nil
	}

	switch e := ev.(type) {
	case *domain.CompositionChangedEvent:
		payload := map[string]interface{}{
			"bundle_id":     e.BundleID,
			"created_items": e.CreatedItems,
			"updated_items": e.UpdatedItems,
			"retired_items": e.RetiredItems,
			"outdated":      e.Outdated,
			"changed_at":    e.ChangedAt,
		}
		b, err := json.Marshal(payload)
		return string(b), err

	case *domain.PropagationRequestedEvent:
		payload := map[string]interface{}{
			"bundle_id":    e.BundleID,
			"requested_at": e.RequestedAt,
		}
		b, err := json.Marshal(payload)
		return string(b), err

	case *domain.PlanCreatedEvent:
		payload := map[string]interface{}{
			"plan_id":                e.PlanID,
			"subject_id":             e.SubjectID,
			"number_of_installments": e.NumberOfInstallments,
			"recurrence":             e.Recurrence,
			"created_at":             e.CreatedAt,
		}
		b, err := json.Marshal(payload)
		return string(b), err

	case *domain.PlanTermsChangedEvent:
		payload := map[string]interface{}{
			"plan_id":                e.PlanID,
			"subject_id":             e.SubjectID,
			"number_of_installments": e.NumberOfInstallments,
			"changed_at":             e.ChangedAt,
		}
		b, err := json.Marshal(payload)
		return string(b), err

	case *domain.PlanRetiredEvent:
		payload := map[string]interface{}{
			"plan_id":    e.PlanID,
			"subject_id": e.SubjectID,
			"retired_at": e.RetiredAt,
		}
		b, err := json.Marshal(payload)
		return string(b), err

	case *domain.PlanRemovedEvent:
		payload := map[string]interface{}{
			"plan_id":    e.PlanID,
			"subject_id": e.SubjectID,
			"removed_at": e.RemovedAt,
		}
		b, err := json.Marshal(payload)
		return string(b), err
	}

	// Fallback: marshal the event directly.
	b, err := json.Marshal(ev)
	if err != nil {
		return "", fmt.Errorf("marshal outbox payload for %T: %w", ev, err)
	}
	return string(b), nil
}
