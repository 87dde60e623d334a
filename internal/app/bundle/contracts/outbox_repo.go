package contracts

import (
	"time"

	"cloud.google.com/go/spanner"
)

// OutboxRepo is the write-side repository for the transactional outbox.
// It returns Spanner mutations; it does not apply them.
type OutboxRepo interface {
	InsertMut(j *OutboxJob) *spanner.Mutation
}

// OutboxJob is the application-level representation of a row persisted to the
// outbox table. Usecases enrich domain events into this structure; for
// propagation requests the row is also the job record the worker consumes.
type OutboxJob struct {
	JobID        string
	JobType      string
	SubjectID    string
	PayloadJSON  string
	Status       string
	CreatedAtUTC time.Time
}

// Outbox job statuses.
const (
	JobStatusPending = "pending"
	JobStatusDone    = "done"
	JobStatusDead    = "dead"
)
