package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/xavierca1/coachflow/internal/entity"
	"github.com/xavierca1/coachflow/internal/infra/cache"
	"github.com/xavierca1/coachflow/internal/infra/database"
	"github.com/xavierca1/coachflow/internal/infra/metrics"
)

// fetchTimeout bounds a shared list fetch once it no longer follows any
// single request.
const fetchTimeout = 30 * time.Second

// Collection is the cached read/write path for one record kind.
//
// Reads go cache first, then a single backend fetch per owner no matter how
// many callers are waiting. Every write invalidates the owner's entry before
// it returns, and a fetch that started before the invalidation is not
// allowed to repopulate the cache.
type Collection[T any] struct {
	kind   entity.Kind
	repo   *database.Repository[T]
	cache  cache.QueryCache
	events EventPublisher
	log    zerolog.Logger
	limit  int

	group singleflight.Group
}

func NewCollection[T any](store database.Store, kind entity.Kind, qc cache.QueryCache, events EventPublisher, log zerolog.Logger) *Collection[T] {
	return &Collection[T]{
		kind:   kind,
		repo:   database.NewRepository[T](store, kind),
		cache:  qc,
		events: events,
		log:    log.With().Str("kind", kind.String()).Logger(),
	}
}

// WithLimit caps how many rows List fetches, newest first.
func (c *Collection[T]) WithLimit(n int) *Collection[T] {
	c.limit = n
	return c
}

func (c *Collection[T]) Kind() entity.Kind {
	return c.kind
}

func (c *Collection[T]) query(p Principal) database.Query {
	return database.Query{Owner: p.UserID, Token: p.AccessToken, Limit: c.limit}
}

func (c *Collection[T]) List(ctx context.Context, p Principal) ([]T, error) {
	if raw, ok := c.cache.Get(ctx, p.UserID, c.kind); ok {
		var out []T
		if err := json.Unmarshal(raw, &out); err == nil {
			if out == nil {
				out = []T{}
			}
			return out, nil
		}
		c.log.Warn().Msg("discarding undecodable cache entry")
	}

	version, cacheable := c.cache.Version(ctx, p.UserID, c.kind)
	ch := c.group.DoChan(p.UserID, func() (any, error) {
		// The flight is shared, so it must outlive the caller that started it.
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()

		rows, err := c.repo.List(fctx, c.query(p))
		if err != nil {
			return nil, err
		}
		if cacheable {
			if raw, err := json.Marshal(rows); err == nil {
				c.cache.SetIfVersion(fctx, p.UserID, c.kind, version, raw)
			}
		}
		return rows, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, &FetchError{Kind: c.kind, Op: "list", Err: ctx.Err()}
	case res = <-ch:
	}
	if res.Err != nil {
		metrics.RecordFetchError(c.kind.String())
		c.log.Error().Err(res.Err).Str("user_id", p.UserID).Msg("list failed")
		return nil, &FetchError{Kind: c.kind, Op: "list", Err: res.Err}
	}
	return res.Val.([]T), nil
}

// Find returns the record with the given id from the owner's collection.
func (c *Collection[T]) Find(ctx context.Context, p Principal, id string, idOf func(T) string) (*T, error) {
	rows, err := c.List(ctx, p)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if idOf(rows[i]) == id {
			row := rows[i]
			return &row, nil
		}
	}
	return nil, &DomainError{Code: CodeNotFound, Message: c.kind.String() + " record not found"}
}

// Create stores row and returns it as the backend stored it. No retry is
// attempted on failure.
func (c *Collection[T]) Create(ctx context.Context, p Principal, row *T) (*T, error) {
	created, err := c.repo.Create(ctx, row, c.query(p))
	if err != nil {
		return nil, c.writeError("create", err)
	}

	c.Invalidate(ctx, p.UserID)
	metrics.RecordCreated(c.kind.String())

	if c.events != nil {
		if err := c.events.PublishRecordCreated(ctx, c.kind, p.UserID, created); err != nil {
			c.log.Warn().Err(err).Msg("record stored but event not published")
		}
	}
	return created, nil
}

func (c *Collection[T]) Update(ctx context.Context, p Principal, id string, patch map[string]any) (*T, error) {
	updated, err := c.repo.Update(ctx, id, patch, c.query(p))
	if err != nil {
		return nil, c.writeError("update", err)
	}
	c.Invalidate(ctx, p.UserID)
	return updated, nil
}

func (c *Collection[T]) Delete(ctx context.Context, p Principal, id string) error {
	if err := c.repo.Delete(ctx, id, c.query(p)); err != nil {
		return c.writeError("delete", err)
	}
	c.Invalidate(ctx, p.UserID)
	return nil
}

// Invalidate marks the owner's cached collection stale and detaches any
// fetch already in flight. A detached fetch still answers its own callers
// but its rows are refused by the cache.
func (c *Collection[T]) Invalidate(ctx context.Context, owner string) {
	c.group.Forget(owner)
	c.cache.Invalidate(ctx, owner, c.kind)
}

func (c *Collection[T]) writeError(op string, err error) error {
	var rej *database.RejectedError
	if errors.As(err, &rej) {
		return &ValidationError{Message: rej.Message}
	}
	if errors.Is(err, database.ErrNotFound) {
		return &DomainError{Code: CodeNotFound, Message: c.kind.String() + " record not found"}
	}
	metrics.RecordFetchError(c.kind.String())
	c.log.Error().Err(err).Str("op", op).Msg("write failed")
	return &FetchError{Kind: c.kind, Op: op, Err: err}
}
