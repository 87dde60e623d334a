package m_outbox_job

// Field constants for the outbox_jobs table.
const (
	TableName = "outbox_jobs"

	ColJobID       = "job_id"
	ColJobType     = "job_type"
	ColSubjectID   = "subject_id"
	ColPayload     = "payload"
	ColStatus      = "status"
	ColAttempts    = "attempts"
	ColCreatedAt   = "created_at"
	ColProcessedAt = "processed_at"
)
