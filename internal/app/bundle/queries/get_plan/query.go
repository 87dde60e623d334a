package get_plan

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/murkotick/bundle-composition-service/internal/app/bundle/dto"
)

// SpannerGetPlanQuery reads installment plans and their committed payment
// options from Spanner.
type SpannerGetPlanQuery struct {
	Client *spanner.Client
}

func NewSpannerGetPlanQuery(client *spanner.Client) *SpannerGetPlanQuery {
	return &SpannerGetPlanQuery{Client: client}
}

// GetInstallmentPlan returns the active plan attached to the subject, or nil
// when the subject has none. Retired plans are invisible here; they only
// matter to buyers already paying against them.
func (q *SpannerGetPlanQuery) GetInstallmentPlan(ctx context.Context, subjectID string) (*dto.InstallmentPlanDTO, error) {
	stmt := spanner.Statement{
		SQL: `SELECT plan_id, subject_id, number_of_installments, recurrence,
		             created_at, updated_at
		      FROM installment_plans
		      WHERE subject_id = @subject AND deleted_at IS NULL
		      ORDER BY created_at DESC
		      LIMIT 1`,
		Params: map[string]interface{}{"subject": subjectID},
	}

	iter := q.Client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var (
		planID, subject      string
		installments         int64
		recurrence           string
		createdAt, updatedAt time.Time
	)
	if err := row.Columns(&planID, &subject, &installments, &recurrence, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	out := &dto.InstallmentPlanDTO{
		PlanID:               planID,
		SubjectID:            subject,
		NumberOfInstallments: installments,
		Recurrence:           recurrence,
	}
	c := createdAt.UTC().Format(time.RFC3339)
	out.CreatedAt = &c
	u := updatedAt.UTC().Format(time.RFC3339)
	out.UpdatedAt = &u

	return out, nil
}

// CountPaymentOptions returns how many payment options were committed against
// the plan. A non-zero count freezes the plan's terms.
func (q *SpannerGetPlanQuery) CountPaymentOptions(ctx context.Context, planID string) (int64, error) {
	stmt := spanner.Statement{
		SQL: `SELECT COUNT(*)
		      FROM payment_options
		      WHERE plan_id = @plan`,
		Params: map[string]interface{}{"plan": planID},
	}

	iter := q.Client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := row.Columns(&count); err != nil {
		return 0, err
	}
	return count, nil
}
