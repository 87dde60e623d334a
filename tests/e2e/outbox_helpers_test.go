package e2e

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/iterator"
)

type outboxJob struct {
	JobID     string
	JobType   string
	SubjectID string
	Status    string
	Attempts  int64
	CreatedAt time.Time
}

func mustFetchOutboxJobs(ctx context.Context, t *testing.T, client *spanner.Client, subjectID string) []outboxJob {
	t.Helper()
	items, err := fetchOutboxJobs(ctx, client, subjectID)
	require.NoError(t, err)
	return items
}

func fetchOutboxJobs(ctx context.Context, client *spanner.Client, subjectID string) ([]outboxJob, error) {
	stmt := spanner.Statement{
		SQL: `SELECT job_id, job_type, subject_id, status, attempts, created_at
        FROM outbox_jobs
        WHERE subject_id = @id
        ORDER BY created_at ASC, job_id ASC`,
		Params: map[string]any{"id": subjectID},
	}

	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	out := make([]outboxJob, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		var j outboxJob
		if err := row.Columns(&j.JobID, &j.JobType, &j.SubjectID, &j.Status, &j.Attempts, &j.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
}

func jobsOfType(jobs []outboxJob, jobType string) []outboxJob {
	out := make([]outboxJob, 0)
	for _, j := range jobs {
		if j.JobType == jobType {
			out = append(out, j)
		}
	}
	return out
}
