package committer

import "cloud.google.com/go/spanner"

// Plan collects the mutations of one unit of work. Interactors build a plan
// from repository outputs and hand it to a Committer; either every mutation
// lands or none does.
type Plan struct {
	mutations []*spanner.Mutation
}

func NewPlan() *Plan {
	return &Plan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add appends a mutation. Nil mutations (a repo's way of saying "nothing
// changed") are ignored, which is what makes idempotent writes free.
func (p *Plan) Add(m *spanner.Mutation) {
	if m == nil {
		return
	}
	p.mutations = append(p.mutations, m)
}

func (p *Plan) IsEmpty() bool {
	return len(p.mutations) == 0
}

func (p *Plan) Len() int {
	return len(p.mutations)
}

func (p *Plan) Mutations() []*spanner.Mutation {
	return p.mutations
}
