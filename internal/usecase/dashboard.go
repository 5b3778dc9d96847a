package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/coachflow/internal/aggregate"
	"github.com/xavierca1/coachflow/internal/entity"
	"github.com/xavierca1/coachflow/internal/obs"
)

// Snapshot is one load of the overview collections. A kind listed in
// Failed has a nil slice in Records.
type Snapshot struct {
	Records aggregate.Records
	Failed  map[entity.Kind]error
	At      time.Time
}

func (s Snapshot) Err(kind entity.Kind) error {
	return s.Failed[kind]
}

type Dashboard struct {
	records *Records
	log     zerolog.Logger
	now     func() time.Time
}

func NewDashboard(records *Records, log zerolog.Logger) *Dashboard {
	return &Dashboard{records: records, log: log, now: time.Now}
}

// Load fetches the five overview kinds concurrently. One kind failing
// never stops the others from loading.
func (d *Dashboard) Load(ctx context.Context, p Principal) Snapshot {
	ctx, span := obs.Tracer().Start(ctx, "dashboard.load")
	defer span.End()

	snap := Snapshot{Failed: map[entity.Kind]error{}, At: d.now()}
	var mu sync.Mutex
	fail := func(kind entity.Kind, err error) {
		mu.Lock()
		snap.Failed[kind] = err
		mu.Unlock()
	}

	var g errgroup.Group
	g.Go(func() error {
		rows, err := d.records.Leads.List(ctx, p)
		if err != nil {
			fail(entity.KindLeads, err)
		}
		snap.Records.Leads = rows
		return nil
	})
	g.Go(func() error {
		rows, err := d.records.Bookings.List(ctx, p)
		if err != nil {
			fail(entity.KindBookings, err)
		}
		snap.Records.Bookings = rows
		return nil
	})
	g.Go(func() error {
		rows, err := d.records.Calls.List(ctx, p)
		if err != nil {
			fail(entity.KindVoiceCalls, err)
		}
		snap.Records.Calls = rows
		return nil
	})
	g.Go(func() error {
		rows, err := d.records.Messages.List(ctx, p)
		if err != nil {
			fail(entity.KindMessages, err)
		}
		snap.Records.Messages = rows
		return nil
	})
	g.Go(func() error {
		rows, err := d.records.Workflows.List(ctx, p)
		if err != nil {
			fail(entity.KindWorkflows, err)
		}
		snap.Records.Workflows = rows
		return nil
	})
	g.Wait()

	span.SetAttributes(attribute.Int("failed_kinds", len(snap.Failed)))
	if len(snap.Failed) > 0 {
		d.log.Warn().Str("user_id", p.UserID).Int("failed", len(snap.Failed)).Msg("dashboard loaded partially")
	}
	return snap
}
