package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/xavierca1/coachflow/internal/infra/metrics"
)

// Transaction runs dependent backend writes in order. When a required step
// fails, the compensations of the steps that already succeeded run in
// reverse order. A best-effort step that fails is logged and skipped.
type Transaction struct {
	operations []Operation
	log        zerolog.Logger
}

type Operation struct {
	Name string
	Fn   func(context.Context) error
	// Compensate undoes Fn. Nil when there is nothing to undo.
	Compensate func(context.Context) error
	BestEffort bool
}

func NewTransaction(log zerolog.Logger) *Transaction {
	return &Transaction{log: log}
}

func (t *Transaction) AddOperation(name string, fn func(context.Context) error) {
	t.operations = append(t.operations, Operation{Name: name, Fn: fn})
}

// AddBestEffort adds a step whose failure does not abort the transaction.
func (t *Transaction) AddBestEffort(name string, fn func(context.Context) error) {
	t.operations = append(t.operations, Operation{Name: name, Fn: fn, BestEffort: true})
}

// AddCompensation attaches fn to the most recently added operation.
func (t *Transaction) AddCompensation(fn func(context.Context) error) {
	if len(t.operations) == 0 {
		return
	}
	t.operations[len(t.operations)-1].Compensate = fn
}

func (t *Transaction) Execute(ctx context.Context) error {
	for i, op := range t.operations {
		err := op.Fn(ctx)
		if err == nil {
			continue
		}
		if op.BestEffort {
			metrics.RecordSkippedStep(op.Name)
			t.log.Warn().Err(err).Str("operation", op.Name).Msg("best-effort step failed, continuing")
			continue
		}
		t.rollback(ctx, i)
		return fmt.Errorf("operation '%s' failed: %w (rolled back %d operations)", op.Name, err, i)
	}
	return nil
}

func (t *Transaction) rollback(ctx context.Context, failedAtIndex int) {
	// Compensations must run even if the request context is gone.
	ctx = context.WithoutCancel(ctx)
	for i := failedAtIndex - 1; i >= 0; i-- {
		op := t.operations[i]
		if op.Compensate == nil {
			continue
		}
		if err := op.Compensate(ctx); err != nil {
			t.log.Error().Err(err).Str("operation", op.Name).Msg("compensation failed, data may be inconsistent")
		}
	}
}
