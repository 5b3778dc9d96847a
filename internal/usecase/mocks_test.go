package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/coachflow/internal/entity"
	"github.com/xavierca1/coachflow/internal/infra/cache"
	"github.com/xavierca1/coachflow/internal/infra/database"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishRecordCreated(ctx context.Context, kind entity.Kind, owner string, record any) error {
	args := m.Called(ctx, kind, owner, record)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	args := m.Called(ctx, to, subject, htmlBody)
	return args.Error(0)
}

type MockCRM struct {
	mock.Mock
}

func (m *MockCRM) SyncLead(ctx context.Context, lead entity.Lead) (int, error) {
	args := m.Called(ctx, lead)
	return args.Int(0), args.Error(1)
}

type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) SendWelcome(ctx context.Context, phone, name string) error {
	args := m.Called(ctx, phone, name)
	return args.Error(0)
}

// writeBeforeFill runs write once, between a list fetch and the cache fill
// that follows it.
type writeBeforeFill struct {
	*cache.Memory
	write func()
}

func (c *writeBeforeFill) SetIfVersion(ctx context.Context, owner string, kind entity.Kind, version uint64, value []byte) bool {
	if w := c.write; w != nil {
		c.write = nil
		w()
	}
	return c.Memory.SetIfVersion(ctx, owner, kind, version, value)
}

// gatedStore holds every List until release is closed, then fails it if
// the context it was given is done.
type gatedStore struct {
	*database.MemoryStore
	started chan struct{}
	release chan struct{}
}

func newGatedStore() *gatedStore {
	return &gatedStore{
		MemoryStore: database.NewMemoryStore(),
		started:     make(chan struct{}, 16),
		release:     make(chan struct{}),
	}
}

func (s *gatedStore) List(ctx context.Context, table string, q database.Query) ([]byte, error) {
	s.started <- struct{}{}
	<-s.release
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.MemoryStore.List(ctx, table, q)
}
