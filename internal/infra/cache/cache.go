// Package cache keeps the last fetched collection per owner and kind.
package cache

import (
	"context"

	"github.com/xavierca1/coachflow/internal/entity"
)

// QueryCache holds raw collection JSON keyed by (owner, kind). Get only
// returns fresh entries; an invalidated entry behaves as a miss until the
// next successful SetIfVersion.
//
// Every Invalidate moves the entry to a version no reader has seen before.
// A reader takes Version before fetching and hands it back to SetIfVersion,
// which stores the value only if no invalidation happened in between. The
// compare and the store are one atomic step.
type QueryCache interface {
	Get(ctx context.Context, owner string, kind entity.Kind) ([]byte, bool)
	// Version returns false when the backend cannot tell; the caller must
	// not cache in that case.
	Version(ctx context.Context, owner string, kind entity.Kind) (uint64, bool)
	SetIfVersion(ctx context.Context, owner string, kind entity.Kind, version uint64, value []byte) bool
	Invalidate(ctx context.Context, owner string, kind entity.Kind)
}
