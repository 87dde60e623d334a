package contracts

import (
	"context"

	commitplan "github.com/murkotick/bundle-composition-service/internal/pkg/committer"
)

// Committer applies a collection of mutations atomically. Usecases depend on
// this interface rather than the Spanner client so the whole write side can
// be exercised with an in-memory fake.
type Committer interface {
	// Apply atomically applies the provided mutation plan. An empty plan is a
	// no-op and must not open a transaction.
	Apply(ctx context.Context, plan *commitplan.Plan) error
}
