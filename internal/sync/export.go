package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/alfredjeanlab/counsel/internal/model"
	"github.com/alfredjeanlab/counsel/internal/store"
)

// FormatVersion is the snapshot format written by ExportJSONL.
const FormatVersion = "1"

// header is the first JSONL line written by ExportJSONL.
type header struct {
	Version     string         `json:"version"`
	Type        string         `json:"type"`
	Timestamp   time.Time      `json:"timestamp"`
	RecordCount int            `json:"record_count"`
	Kinds       map[string]int `json:"kinds"`
}

// line wraps a single JSONL line with a type discriminator.
type line struct {
	Type string        `json:"type"`
	Data *model.Record `json:"data"`
}

// now is the clock used for snapshot headers.
var now = func() time.Time { return time.Now().UTC() }

// ExportJSONL writes every record in the store as JSONL to w: a header line,
// then one line per record. Kinds appear in model.Kinds order and records
// in store order within a kind.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	h := header{Version: FormatVersion, Type: "header", Timestamp: now(), Kinds: map[string]int{}}
	var all []*model.Record
	for _, k := range model.Kinds {
		records, err := s.ListRecords(ctx, k)
		if err != nil {
			return fmt.Errorf("list %s records: %w", k, err)
		}
		h.Kinds[string(k)] = len(records)
		all = append(all, records...)
	}
	h.RecordCount = len(all)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(h); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	for _, r := range all {
		if err := enc.Encode(line{Type: "record", Data: r}); err != nil {
			return fmt.Errorf("encode record %s/%s: %w", r.Kind, r.ID, err)
		}
	}
	return nil
}
