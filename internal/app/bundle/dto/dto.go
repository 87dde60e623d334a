package dto

// BundleDTO contains the bundle fields returned by read queries, with every
// item row in read order, retired ones included (DeletedAt set). Timestamps
// are RFC3339 strings, the way they come back from Spanner rows; use the
// utils helpers to parse them.
type BundleDTO struct {
	BundleID             string
	SellerID             string
	Name                 string
	PriceCents           int64
	CustomizablePrice    bool
	Published            bool
	HasOutdatedPurchases bool
	SuccessfulSalesCount int64
	Items                []*BundleItemDTO
	CreatedAt            *string
	UpdatedAt            *string
}

// BundleItemDTO is one membership row of a bundle. DeletedAt is set on
// retired rows; they stay readable so a re-added product revives its old row.
type BundleItemDTO struct {
	ItemID    string
	ProductID string
	VariantID *string
	Quantity  int64
	Position  int64
	CreatedAt *string
	UpdatedAt *string
	DeletedAt *string
}

// InstallmentPlanDTO is the active plan attached to a bundle or product.
type InstallmentPlanDTO struct {
	PlanID               string
	SubjectID            string
	NumberOfInstallments int64
	Recurrence           string
	CreatedAt            *string
	UpdatedAt            *string
	DeletedAt            *string
}

// PurchaseDTO is a completed sale as seen by the propagation worker. The
// reconciler never reads or writes purchases.
type PurchaseDTO struct {
	PurchaseID    string
	BundleID      string
	Status        string
	IsGift        bool
	Chargedback   bool
	FullyRefunded bool
	CreatedAt     string
}

// PurchaseCursor is the keyset position after which the next purchase batch
// starts. Ordering is (created_at, purchase_id) ascending.
type PurchaseCursor struct {
	CreatedAt  string
	PurchaseID string
}

// OutboxJobDTO is a pending background job claimed by the dispatcher.
type OutboxJobDTO struct {
	JobID     string
	JobType   string
	SubjectID string
	Payload   string
	Status    string
	Attempts  int64
	CreatedAt *string
}
