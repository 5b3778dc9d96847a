package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// SQLStore talks to the backend's Postgres directly. Postgres renders the
// JSON, so rows never pass through Go structs here.
type SQLStore struct {
	DB *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{DB: db}
}

func (s *SQLStore) List(ctx context.Context, table string, q Query) ([]byte, error) {
	where, args := whereClause(q, 1)

	order := "DESC"
	if q.Ascending {
		order = "ASC"
	}
	inner := fmt.Sprintf("SELECT * FROM %s WHERE %s ORDER BY %s %s",
		pq.QuoteIdentifier(table), where, pq.QuoteIdentifier(q.orderColumn()), order)
	if q.Limit > 0 {
		inner += fmt.Sprintf(" LIMIT %d", q.Limit)
	}
	query := fmt.Sprintf("SELECT COALESCE(json_agg(t), '[]'::json) FROM (%s) t", inner)

	var out []byte
	if err := s.DB.QueryRowContext(ctx, query, args...).Scan(&out); err != nil {
		return nil, classify(fmt.Errorf("list %s: %w", table, err))
	}
	return out, nil
}

func (s *SQLStore) Insert(ctx context.Context, table string, row any, q Query) ([]byte, error) {
	values, err := toColumns(row)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, &RejectedError{Message: "empty row"}
	}

	cols := sortedKeys(values)
	quoted := make([]string, len(cols))
	params := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		quoted[i] = pq.QuoteIdentifier(c)
		params[i] = fmt.Sprintf("$%d", i+1)
		args[i] = values[c]
	}

	query := fmt.Sprintf(
		"WITH ins AS (INSERT INTO %s (%s) VALUES (%s) RETURNING *) SELECT row_to_json(ins) FROM ins",
		pq.QuoteIdentifier(table), strings.Join(quoted, ", "), strings.Join(params, ", "),
	)

	var out []byte
	if err := s.DB.QueryRowContext(ctx, query, args...).Scan(&out); err != nil {
		return nil, classify(fmt.Errorf("insert %s: %w", table, err))
	}
	return out, nil
}

func (s *SQLStore) Update(ctx context.Context, table, id string, patch map[string]any, q Query) ([]byte, error) {
	if len(patch) == 0 {
		return nil, &RejectedError{Message: "empty patch"}
	}

	cols := sortedKeys(patch)
	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+2)
	for i, c := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(c), i+1)
		args = append(args, patch[c])
	}
	args = append(args, id)
	idParam := len(args)
	where, whereArgs := whereClause(q, idParam+1)
	args = append(args, whereArgs...)

	query := fmt.Sprintf(
		"WITH upd AS (UPDATE %s SET %s WHERE \"id\" = $%d AND %s RETURNING *) SELECT row_to_json(upd) FROM upd",
		pq.QuoteIdentifier(table), strings.Join(sets, ", "), idParam, where,
	)

	var out []byte
	err := s.DB.QueryRowContext(ctx, query, args...).Scan(&out)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, classify(fmt.Errorf("update %s: %w", table, err))
	}
	return out, nil
}

func (s *SQLStore) Delete(ctx context.Context, table, id string, q Query) error {
	where, args := whereClause(q, 2)
	query := fmt.Sprintf("DELETE FROM %s WHERE \"id\" = $1 AND %s", pq.QuoteIdentifier(table), where)

	res, err := s.DB.ExecContext(ctx, query, append([]any{id}, args...)...)
	if err != nil {
		return classify(fmt.Errorf("delete %s: %w", table, err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// whereClause scopes by owner plus equality filters, numbering parameters
// from start. Filter columns are sorted so the SQL is stable.
func whereClause(q Query, start int) (string, []any) {
	var conds []string
	var args []any
	if !q.AllOwners {
		conds = append(conds, fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(q.ownerColumn()), start))
		args = append(args, q.Owner)
	}

	for _, col := range sortedKeys(q.Filters) {
		args = append(args, q.Filters[col])
		conds = append(conds, fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(col), start+len(args)-1))
	}
	if len(conds) == 0 {
		return "TRUE", nil
	}
	return strings.Join(conds, " AND "), args
}

func toColumns(row any) (map[string]any, error) {
	if m, ok := row.(map[string]any); ok {
		return m, nil
	}
	b, err := json.Marshal(row)
	if err != nil {
		return nil, fmt.Errorf("encode row: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("row is not an object: %w", err)
	}
	return m, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// classify turns integrity violations (SQLSTATE class 23) into
// RejectedError and leaves everything else as a transport failure.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return &RejectedError{Code: pgErr.Code, Message: pgErr.Message}
	}
	return err
}
