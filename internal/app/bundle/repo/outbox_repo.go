package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/murkotick/bundle-composition-service/internal/app/bundle/contracts"
	"github.com/murkotick/bundle-composition-service/internal/models/m_outbox_job"
)

// OutboxRepo is the Spanner implementation of the transactional outbox
// repository. It returns *spanner.Mutation but never applies it.
type OutboxRepo struct{}

func NewOutboxRepo() *OutboxRepo {
	return &OutboxRepo{}
}

func (r *OutboxRepo) InsertMut(j *contracts.OutboxJob) *spanner.Mutation {
	if j == nil {
		return nil
	}

	values := m_outbox_job.BuildInsertMap(
		j.JobID,
		j.JobType,
		j.SubjectID,
		j.PayloadJSON,
		j.Status,
		j.CreatedAtUTC,
	)
	return m_outbox_job.InsertMutation(values)
}
