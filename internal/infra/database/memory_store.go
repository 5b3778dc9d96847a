package database

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store for tests and local runs. It assigns
// id and created_at the way the backend does.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string][]map[string]any

	// Per-table error injection, keyed by table name.
	ListErr   map[string]error
	InsertErr map[string]error
	UpdateErr map[string]error

	Now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables:    make(map[string][]map[string]any),
		ListErr:   make(map[string]error),
		InsertErr: make(map[string]error),
		UpdateErr: make(map[string]error),
		Now:       time.Now,
	}
}

func (m *MemoryStore) List(ctx context.Context, table string, q Query) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.ListErr[table]; err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0)
	for _, row := range m.tables[table] {
		if matches(row, q) {
			out = append(out, row)
		}
	}

	col := q.orderColumn()
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := out[i][col].(string)
		b, _ := out[j][col].(string)
		if q.Ascending {
			return a < b
		}
		return a > b
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return json.Marshal(out)
}

func (m *MemoryStore) Insert(ctx context.Context, table string, row any, q Query) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.InsertErr[table]; err != nil {
		return nil, err
	}

	values, err := toColumns(row)
	if err != nil {
		return nil, err
	}
	stored := make(map[string]any, len(values)+2)
	for k, v := range values {
		stored[k] = v
	}
	if id, _ := stored["id"].(string); id == "" {
		stored["id"] = uuid.NewString()
	}
	if _, ok := stored["created_at"]; !ok {
		stored["created_at"] = m.Now().UTC().Format(time.RFC3339Nano)
	}

	m.tables[table] = append(m.tables[table], stored)
	return json.Marshal(stored)
}

func (m *MemoryStore) Update(ctx context.Context, table, id string, patch map[string]any, q Query) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.UpdateErr[table]; err != nil {
		return nil, err
	}
	for _, row := range m.tables[table] {
		if row["id"] == id && matches(row, q) {
			for k, v := range patch {
				row[k] = v
			}
			return json.Marshal(row)
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) Delete(ctx context.Context, table, id string, q Query) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.tables[table]
	for i, row := range rows {
		if row["id"] == id && matches(row, q) {
			m.tables[table] = append(rows[:i], rows[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Rows returns the number of rows stored in table.
func (m *MemoryStore) Rows(table string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tables[table])
}

func matches(row map[string]any, q Query) bool {
	if !q.AllOwners && row[q.ownerColumn()] != q.Owner {
		return false
	}
	for col, want := range q.Filters {
		if row[col] != want {
			return false
		}
	}
	return true
}
