package database

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/xavierca1/coachflow/internal/entity"
	"github.com/xavierca1/coachflow/internal/obs"
)

// Repository decodes one kind's rows into T.
type Repository[T any] struct {
	store Store
	kind  entity.Kind
}

func NewRepository[T any](store Store, kind entity.Kind) *Repository[T] {
	return &Repository[T]{store: store, kind: kind}
}

func (r *Repository[T]) Kind() entity.Kind {
	return r.kind
}

// List never returns a nil slice on success.
func (r *Repository[T]) List(ctx context.Context, q Query) (out []T, err error) {
	ctx, span := obs.Tracer().Start(ctx, "store.list")
	span.SetAttributes(attribute.String("kind", r.kind.String()))
	defer func() { endSpan(span, err) }()

	raw, err := r.store.List(ctx, r.kind.Table(), q)
	if err != nil {
		return nil, err
	}
	out = []T{}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.kind, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (r *Repository[T]) Create(ctx context.Context, row *T, q Query) (_ *T, err error) {
	ctx, span := obs.Tracer().Start(ctx, "store.insert")
	span.SetAttributes(attribute.String("kind", r.kind.String()))
	defer func() { endSpan(span, err) }()

	raw, err := r.store.Insert(ctx, r.kind.Table(), row, q)
	if err != nil {
		return nil, err
	}
	return r.decodeOne(raw)
}

func (r *Repository[T]) Update(ctx context.Context, id string, patch map[string]any, q Query) (_ *T, err error) {
	ctx, span := obs.Tracer().Start(ctx, "store.update")
	span.SetAttributes(attribute.String("kind", r.kind.String()))
	defer func() { endSpan(span, err) }()

	raw, err := r.store.Update(ctx, r.kind.Table(), id, patch, q)
	if err != nil {
		return nil, err
	}
	return r.decodeOne(raw)
}

func (r *Repository[T]) Delete(ctx context.Context, id string, q Query) error {
	return r.store.Delete(ctx, r.kind.Table(), id, q)
}

func (r *Repository[T]) decodeOne(raw []byte) (*T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.kind, err)
	}
	return &v, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
