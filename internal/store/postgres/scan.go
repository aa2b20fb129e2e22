package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/alfredjeanlab/counsel/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanRecord scans a single row into a model.Record.
// The row must contain columns in the order defined by recordColumns.
func scanRecord(row scannable) (*model.Record, error) {
	var (
		r      model.Record
		kind   string
		fields []byte
	)
	if err := row.Scan(&r.ID, &kind, &fields, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.Kind = model.Kind(kind)
	r.Fields = map[string]any{}
	if len(fields) > 0 {
		if err := json.Unmarshal(fields, &r.Fields); err != nil {
			return nil, fmt.Errorf("decode fields of %s/%s: %w", kind, r.ID, err)
		}
	}
	return &r, nil
}

// fieldsJSON encodes a field map for the JSONB fields column.
func fieldsJSON(fields map[string]any) ([]byte, error) {
	if len(fields) == 0 {
		return []byte(`{}`), nil
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode fields: %w", err)
	}
	return b, nil
}
