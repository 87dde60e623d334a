package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the bundle aggregate.
var (
	// ErrBundleNotFound indicates that a bundle with the given ID does not exist.
	ErrBundleNotFound = errors.New("bundle not found")

	// ErrEmptyPublishedBundle indicates an attempt to leave a published bundle
	// with zero active items. Drafts may legally be empty.
	ErrEmptyPublishedBundle = errors.New("a published bundle must contain at least one product")

	// ErrNothingToPropagate indicates a propagation request for a bundle whose
	// purchases are already up to date.
	ErrNothingToPropagate = errors.New("bundle has no purchases with outdated content")
)

// Sentinel errors for the installment-plan aggregate.
var (
	// ErrPlanCommitted indicates an attempt to rewrite or hard-delete a plan
	// that has payment options committed against its terms.
	ErrPlanCommitted = errors.New("installment plan has committed payment options and its terms are frozen")

	// ErrInvalidInstallmentCount indicates a plan with fewer than two installments.
	ErrInvalidInstallmentCount = errors.New("number of installments must be at least 2")
)

// CompositionError rejects a desired composition because of a specific item
// reference. The whole reconcile is rolled back; nothing is written.
type CompositionError struct {
	Reference string
	Reason    string
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("composition rejected for %s: %s", e.Reference, e.Reason)
}

// Reasons used by composition validation.
const (
	ReasonUnknownProduct   = "product does not exist or is not alive"
	ReasonForeignProduct   = "product belongs to another seller"
	ReasonNestedBundle     = "bundles cannot contain other bundles"
	ReasonCallProduct      = "scheduled-call products cannot be bundled"
	ReasonRecurringBilled  = "recurring-billing products cannot be bundled"
	ReasonUnknownVariant   = "variant does not belong to the product"
	ReasonBadQuantity      = "quantity must be a positive number"
	ReasonDuplicateProduct = "product appears more than once in the composition"
)

// IneligiblePlanError rejects an installment-plan request, naming the
// disqualifying condition. Nothing is mutated.
type IneligiblePlanError struct {
	Reason string
}

func (e *IneligiblePlanError) Error() string {
	return fmt.Sprintf("installment plan not allowed: %s", e.Reason)
}

// Reasons used by plan eligibility checks.
const (
	ReasonCustomizablePrice  = "products with customer-chosen pricing cannot offer installments"
	ReasonIneligibleItem     = "bundle contains a product that is not eligible for installments"
	ReasonUnknownPlanSubject = "plan subject does not exist or is not alive"
)
