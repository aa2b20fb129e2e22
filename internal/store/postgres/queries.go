package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alfredjeanlab/counsel/internal/model"
	"github.com/alfredjeanlab/counsel/internal/store"
)

// recordColumns is the column list used for SELECT statements on the records table.
const recordColumns = `id, kind, fields, created_at, updated_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// nowFunc is the clock used for record timestamps.
var nowFunc = func() time.Time { return time.Now().UTC() }

func queryGetRecord(ctx context.Context, db executor, kind model.Kind, id string) (*model.Record, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM records WHERE kind = $1 AND id = $2`,
		string(kind), id)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return r, nil
}

// queryUpsertRecord inserts rec or replaces the fields of an existing row.
// The row keeps its seq, so list order is unaffected by updates.
func queryUpsertRecord(ctx context.Context, db executor, r *model.Record) error {
	fields, err := fieldsJSON(r.Fields)
	if err != nil {
		return err
	}
	now := nowFunc()
	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	row := db.QueryRowContext(ctx, `
		INSERT INTO records (kind, id, fields, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (kind, id) DO UPDATE
			SET fields = EXCLUDED.fields, updated_at = EXCLUDED.updated_at
		RETURNING created_at, updated_at`,
		string(r.Kind),
		r.ID,
		fields,
		createdAt,
		now,
	)
	if err := row.Scan(&r.CreatedAt, &r.UpdatedAt); err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

func queryRemoveRecord(ctx context.Context, db executor, kind model.Kind, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM records WHERE kind = $1 AND id = $2`, string(kind), id)
	if err != nil {
		return fmt.Errorf("remove record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func queryListRecords(ctx context.Context, db executor, kind model.Kind) ([]*model.Record, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM records WHERE kind = $1 ORDER BY seq ASC`,
		string(kind))
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	records := []*model.Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan records: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}
