package outbox_jobs

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/murkotick/bundle-composition-service/internal/app/bundle/contracts"
	"github.com/murkotick/bundle-composition-service/internal/app/bundle/dto"
	"github.com/murkotick/bundle-composition-service/internal/models/m_outbox_job"
)

// SpannerJobStore drives the outbox-backed job queue for the dispatcher.
type SpannerJobStore struct {
	Client *spanner.Client

	// MaxAttempts is the retry budget; a job failing this many times is
	// dead-lettered instead of retried.
	MaxAttempts int64
}

func NewSpannerJobStore(client *spanner.Client, maxAttempts int64) *SpannerJobStore {
	return &SpannerJobStore{Client: client, MaxAttempts: maxAttempts}
}

// ClaimPending lists up to limit pending jobs of the given type, oldest
// first. Claiming is advisory; a single dispatcher per job type is assumed.
func (s *SpannerJobStore) ClaimPending(ctx context.Context, jobType string, limit int) ([]*dto.OutboxJobDTO, error) {
	stmt := spanner.Statement{
		SQL: `SELECT job_id, job_type, subject_id, payload, status, attempts, created_at
		      FROM outbox_jobs
		      WHERE status = @status AND job_type = @type
		      ORDER BY created_at ASC
		      LIMIT @limit`,
		Params: map[string]interface{}{
			"status": contracts.JobStatusPending,
			"type":   jobType,
			"limit":  int64(limit),
		},
	}

	iter := s.Client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var out []*dto.OutboxJobDTO
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}

		var (
			jobID, typ, subjectID string
			payload, status       string
			attempts              int64
			createdAt             time.Time
		)
		if err := row.Columns(&jobID, &typ, &subjectID, &payload, &status, &attempts, &createdAt); err != nil {
			return nil, err
		}

		job := &dto.OutboxJobDTO{
			JobID:     jobID,
			JobType:   typ,
			SubjectID: subjectID,
			Payload:   payload,
			Status:    status,
			Attempts:  attempts,
		}
		c := createdAt.UTC().Format(time.RFC3339)
		job.CreatedAt = &c

		out = append(out, job)
	}
}

// MarkDone finalizes a successfully processed job.
func (s *SpannerJobStore) MarkDone(ctx context.Context, jobID string, now time.Time) error {
	mut := m_outbox_job.UpdateMutation(jobID, map[string]interface{}{
		m_outbox_job.ColStatus:      contracts.JobStatusDone,
		m_outbox_job.ColProcessedAt: now.UTC(),
	})
	_, err := s.Client.Apply(ctx, []*spanner.Mutation{mut})
	return err
}

// MarkFailed charges one attempt against the job's retry budget. When the
// budget is exhausted the job is dead-lettered; it stays in the table for
// inspection but is never picked up again. Returns whether the job died.
func (s *SpannerJobStore) MarkFailed(ctx context.Context, jobID string, now time.Time) (bool, error) {
	var dead bool

	_, err := s.Client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		dead = false

		row, err := txn.ReadRow(ctx, m_outbox_job.TableName, spanner.Key{jobID},
			[]string{m_outbox_job.ColAttempts})
		if err != nil {
			return err
		}

		var attempts int64
		if err := row.Columns(&attempts); err != nil {
			return err
		}
		attempts++

		updates := map[string]interface{}{
			m_outbox_job.ColAttempts: attempts,
		}
		if attempts >= s.MaxAttempts {
			dead = true
			updates[m_outbox_job.ColStatus] = contracts.JobStatusDead
			updates[m_outbox_job.ColProcessedAt] = now.UTC()
		}

		return txn.BufferWrite([]*spanner.Mutation{
			m_outbox_job.UpdateMutation(jobID, updates),
		})
	})
	return dead, err
}
