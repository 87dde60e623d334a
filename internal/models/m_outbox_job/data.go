package m_outbox_job

import (
	"time"

	"cloud.google.com/go/spanner"
)

// BuildInsertMap constructs the fields for an outbox job insertion.
func BuildInsertMap(jobID, jobType, subjectID, payload, status string, createdAt time.Time) map[string]interface{} {
	return map[string]interface{}{
		ColJobID:       jobID,
		ColJobType:     jobType,
		ColSubjectID:   subjectID,
		ColPayload:     payload,
		ColStatus:      status,
		ColAttempts:    int64(0),
		ColCreatedAt:   createdAt,
		ColProcessedAt: nil,
	}
}

// InsertMutation constructs a mutation for the outbox_jobs table.
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for c, v := range values {
		cols = append(cols, c)
		vals = append(vals, v)
	}
	return spanner.Insert(TableName, cols, vals)
}

// UpdateMutation constructs an update mutation keyed by job_id.
func UpdateMutation(jobID string, values map[string]interface{}) *spanner.Mutation {
	cols := []string{ColJobID}
	vals := []interface{}{jobID}
	for c, v := range values {
		cols = append(cols, c)
		vals = append(vals, v)
	}
	return spanner.Update(TableName, cols, vals)
}
