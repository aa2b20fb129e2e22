// Package fixtures holds the demo roster shipped with the service: lawyers
// (verified and awaiting review), customers, consultation history, cases,
// appointments and notifications.
package fixtures

import (
	"bufio"
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alfredjeanlab/counsel/internal/model"
	"github.com/alfredjeanlab/counsel/internal/store"
)

//go:embed roster.jsonl
var roster []byte

// Load parses the embedded roster. Every record is validated against the
// schema of its kind.
func Load() ([]*model.Record, error) {
	return Parse(roster)
}

// Parse decodes JSONL data, one record per line. Blank lines are skipped.
func Parse(data []byte) ([]*model.Record, error) {
	var records []*model.Record
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		var r model.Record
		if err := json.Unmarshal(b, &r); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if err := model.ValidateRecord(&r); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, &r)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return records, nil
}

// Seed upserts every fixture record that the store does not already hold and
// returns how many were added. Existing records are left untouched, so
// seeding twice is a no-op.
func Seed(ctx context.Context, s store.Store) (int, error) {
	records, err := Load()
	if err != nil {
		return 0, err
	}
	added := 0
	err = s.RunInTransaction(ctx, func(tx store.Store) error {
		added = 0
		for _, r := range records {
			_, err := tx.GetRecord(ctx, r.Kind, r.ID)
			if err == nil {
				continue
			}
			if !errors.Is(err, store.ErrNotFound) {
				return err
			}
			if err := tx.UpsertRecord(ctx, r); err != nil {
				return fmt.Errorf("seed %s/%s: %w", r.Kind, r.ID, err)
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}
