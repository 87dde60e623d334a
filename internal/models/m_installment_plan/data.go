package m_installment_plan

import (
	"time"

	"cloud.google.com/go/spanner"
)

// InsertMutation builds a spanner.Insert mutation for an installment plan.
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return spanner.Insert(TableName, cols, vals)
}

// UpdateMutation builds a spanner.Update mutation for a plan. The values map
// must not include the plan_id key; it is supplied separately.
func UpdateMutation(planID string, values map[string]interface{}) *spanner.Mutation {
	cols := []string{ColPlanID}
	vals := []interface{}{planID}

	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}

	return spanner.Update(TableName, cols, vals)
}

// DeleteMutation builds a spanner.Delete mutation removing the plan row.
// Only legal for plans with no committed payment options.
func DeleteMutation(planID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{planID})
}

// BuildInsertMap prepares the canonical fields for a plan insertion.
func BuildInsertMap(planID, subjectID string, numberOfInstallments int64,
	recurrence string, createdAt, updatedAt time.Time) map[string]interface{} {

	return map[string]interface{}{
		ColPlanID:               planID,
		ColSubjectID:            subjectID,
		ColNumberOfInstallments: numberOfInstallments,
		ColRecurrence:           recurrence,
		ColCreatedAt:            createdAt,
		ColUpdatedAt:            updatedAt,
		ColDeletedAt:            nil,
	}
}
