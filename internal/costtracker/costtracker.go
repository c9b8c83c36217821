package costtracker

import (
	"context"
	"sync"
)

// CostEvent represents a single AI usage event and its cost.
type CostEvent struct {
	Operation string // e.g., "categorization"
	AmountUSD float64
	Details   map[string]interface{}
}

// CostTracker provides methods to record and report costs.
type CostTracker interface {
	RecordCost(ctx context.Context, event CostEvent) error
	TotalCost(ctx context.Context) (float64, error)
}

// New returns an in-memory tracker that accumulates costs for the lifetime
// of the process. Safe for concurrent use.
func New() CostTracker {
	return &memoryCostTracker{}
}

type memoryCostTracker struct {
	mu     sync.Mutex
	total  float64
	events []CostEvent
}

func (t *memoryCostTracker) RecordCost(ctx context.Context, event CostEvent) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.total += event.AmountUSD
	t.events = append(t.events, event)
	return nil
}

func (t *memoryCostTracker) TotalCost(ctx context.Context) (float64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total, nil
}
