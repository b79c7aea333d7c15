package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"courtlistener.app/cl/core/db/sqlc"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Record is one row of a legal-record table keyed by column name.
type Record map[string]any

type Op string

const (
	OpEq  Op = "="
	OpGt  Op = ">"
	OpGte Op = ">="
	OpLt  Op = "<"
	OpLte Op = "<="
	OpIn  Op = "IN"
)

// Condition is a single column predicate. For OpIn, Value holds a []any.
type Condition struct {
	Column string
	Op     Op
	Value  any
}

type Order struct {
	Column string
	Desc   bool
}

type RecordQuery struct {
	Table   string
	Where   []Condition
	OrderBy []Order
	Limit   int
	Offset  int
}

type recordStore struct {
	db sqlc.DBTX
}

func NewRecordStore(db sqlc.DBTX) RecordStore {
	return &recordStore{db: db}
}

func (s *recordStore) List(ctx context.Context, q RecordQuery) ([]Record, error) {
	sql, args := buildSelect(q)
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", q.Table, err)
	}
	return collectRecords(rows)
}

func (s *recordStore) Count(ctx context.Context, q RecordQuery) (int64, error) {
	where, args := buildWhere(q.Where, nil)
	var n int64
	err := s.db.QueryRow(ctx, "SELECT count(*) FROM "+ident(q.Table)+where, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting %s: %w", q.Table, err)
	}
	return n, nil
}

func (s *recordStore) Get(ctx context.Context, table string, id any) (Record, error) {
	rows, err := s.db.Query(ctx, "SELECT * FROM "+ident(table)+" WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", table, err)
	}
	records, err := collectRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records[0], nil
}

func (s *recordStore) ListIn(ctx context.Context, table, column string, keys []any) ([]Record, error) {
	if len(keys) == 0 {
		return []Record{}, nil
	}
	sql, args := buildSelect(RecordQuery{
		Table:   table,
		Where:   []Condition{{Column: column, Op: OpIn, Value: keys}},
		OrderBy: []Order{{Column: "id"}},
	})
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("listing %s by %s: %w", table, column, err)
	}
	return collectRecords(rows)
}

// Pairs groups valueColumn by keyColumn for the given keys, in value order.
func (s *recordStore) Pairs(ctx context.Context, table, keyColumn, valueColumn string, keys []any) (map[any][]any, error) {
	out := make(map[any][]any, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	where, args := buildWhere([]Condition{{Column: keyColumn, Op: OpIn, Value: keys}}, nil)
	sql := fmt.Sprintf("SELECT %s, %s FROM %s%s ORDER BY %s",
		ident(keyColumn), ident(valueColumn), ident(table), where, ident(valueColumn))
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("loading %s.%s: %w", table, valueColumn, err)
	}
	defer rows.Close()
	for rows.Next() {
		var key, value any
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		if value == nil {
			continue
		}
		out[key] = append(out[key], value)
	}
	return out, rows.Err()
}

func buildSelect(q RecordQuery) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(ident(q.Table))
	where, args := buildWhere(q.Where, nil)
	b.WriteString(where)
	if len(q.OrderBy) > 0 {
		parts := make([]string, len(q.OrderBy))
		for i, o := range q.OrderBy {
			parts[i] = ident(o.Column)
			if o.Desc {
				parts[i] += " DESC"
			}
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(parts, ", "))
	}
	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	if q.Offset > 0 {
		args = append(args, q.Offset)
		fmt.Fprintf(&b, " OFFSET $%d", len(args))
	}
	return b.String(), args
}

func buildWhere(conds []Condition, args []any) (string, []any) {
	if len(conds) == 0 {
		return "", args
	}
	parts := make([]string, 0, len(conds))
	for _, c := range conds {
		if c.Op == OpIn {
			values, _ := c.Value.([]any)
			if len(values) == 0 {
				parts = append(parts, "FALSE")
				continue
			}
			placeholders := make([]string, len(values))
			for i, v := range values {
				args = append(args, v)
				placeholders[i] = fmt.Sprintf("$%d", len(args))
			}
			parts = append(parts, fmt.Sprintf("%s IN (%s)", ident(c.Column), strings.Join(placeholders, ", ")))
			continue
		}
		if c.Value == nil && c.Op == OpEq {
			parts = append(parts, ident(c.Column)+" IS NULL")
			continue
		}
		args = append(args, c.Value)
		parts = append(parts, fmt.Sprintf("%s %s $%d", ident(c.Column), c.Op, len(args)))
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

func collectRecords(rows pgx.Rows) ([]Record, error) {
	defer rows.Close()
	fields := rows.FieldDescriptions()
	records := []Record{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		rec := make(Record, len(fields))
		for i, f := range fields {
			rec[f.Name] = normalizeValue(f.DataTypeOID, values[i])
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func normalizeValue(oid uint32, v any) any {
	switch val := v.(type) {
	case time.Time:
		if oid == pgtype.DateOID {
			return val.Format(time.DateOnly)
		}
		return val
	case pgtype.Numeric:
		f, err := val.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	}
	return v
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}
