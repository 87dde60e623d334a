package domain

// ItemSpec is one entry of a desired composition: a product reference with
// an optional variant, a quantity, and a caller-supplied position. Positions
// are persisted verbatim; the reconciler never renumbers or deduplicates
// them, and reads resolve duplicates by stable insertion order.
type ItemSpec struct {
	ProductID string
	VariantID *string
	Quantity  int64
	Position  int64
}

// ItemMatch pairs an active item with the desired entry that claimed it.
type ItemMatch struct {
	Item *BundleItem
	Spec ItemSpec
}

// CompositionDiff is the result of comparing a bundle's active items against
// a desired composition: three disjoint sets of work.
type CompositionDiff struct {
	// Create holds desired entries with no matching active item.
	Create []ItemSpec
	// Update holds active items matched by product to a desired entry.
	Update []ItemMatch
	// Retire holds active items no desired entry claimed.
	Retire []*BundleItem
}

// DiffComposition matches active items to desired entries by product ID.
// Each desired entry is consumed by at most one item; each item by at most
// one entry. Matching is first-come on both sides, so the result is stable
// with respect to input order.
func DiffComposition(active []*BundleItem, desired []ItemSpec) CompositionDiff {
	diff := CompositionDiff{}
	consumed := make([]bool, len(desired))

	for _, item := range active {
		matched := false
		for i, spec := range desired {
			if consumed[i] || spec.ProductID != item.ProductID() {
				continue
			}
			consumed[i] = true
			diff.Update = append(diff.Update, ItemMatch{Item: item, Spec: spec})
			matched = true
			break
		}
		if !matched {
			diff.Retire = append(diff.Retire, item)
		}
	}

	for i, spec := range desired {
		if !consumed[i] {
			diff.Create = append(diff.Create, spec)
		}
	}

	return diff
}
