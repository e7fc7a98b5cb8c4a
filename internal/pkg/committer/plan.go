// Package committer groups Spanner mutations produced by the ledger
// repositories and applies them in one commit.
//
//	plan := committer.NewPlan()
//	plan.Add(model.InsertOrUpdateMut(data))
//	return comm.Apply(ctx, plan)
//
// Read-dependent writes, such as registering a metadata key only once,
// go through ApplyWithReadWriteTransaction.
package committer

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
)

// CommitPlan collects mutations for a single commit.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

func NewPlan() *CommitPlan {
	return &CommitPlan{}
}

// Add queues mut. A nil mutation is dropped.
func (p *CommitPlan) Add(mut ...*spanner.Mutation) {
	for _, m := range mut {
		if m != nil {
			p.mutations = append(p.mutations, m)
		}
	}
}

func (p *CommitPlan) Len() int { return len(p.mutations) }

// Committer applies plans against one database.
type Committer struct {
	client *spanner.Client
}

func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply commits every queued mutation atomically. Empty plans never reach
// the database.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan == nil || plan.Len() == 0 {
		return nil
	}
	if _, err := c.client.Apply(ctx, plan.mutations); err != nil {
		return fmt.Errorf("failed to apply %d mutations: %w", plan.Len(), err)
	}
	return nil
}

// ApplyWithReadWriteTransaction runs fn in a read-write transaction that
// Spanner retries on abort, so fn must be safe to run more than once.
func (c *Committer) ApplyWithReadWriteTransaction(ctx context.Context, fn func(context.Context, *spanner.ReadWriteTransaction) error) error {
	if _, err := c.client.ReadWriteTransaction(ctx, fn); err != nil {
		return fmt.Errorf("read-write transaction failed: %w", err)
	}
	return nil
}
