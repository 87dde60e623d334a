package m_installment_plan

// Field constants for the installment_plans table.
const (
	TableName = "installment_plans"

	ColPlanID               = "plan_id"
	ColSubjectID            = "subject_id"
	ColNumberOfInstallments = "number_of_installments"
	ColRecurrence           = "recurrence"
	ColCreatedAt            = "created_at"
	ColUpdatedAt            = "updated_at"
	ColDeletedAt            = "deleted_at"
)
