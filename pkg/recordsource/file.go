// Package recordsource provides RecordSource implementations: a JSON file on
// disk for demos and tests, and a Postgres table for real history.
package recordsource

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	contractx "github.com/rentalops/booking-agent/agent/contract"
)

// FileSource reads raw booking payloads from a JSON file holding an array of
// objects.
type FileSource struct {
	path string
}

var _ contractx.RecordSource = (*FileSource)(nil)

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) FetchRecords(ctx context.Context, limit int) ([]map[string]any, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read records file: %w", err)
	}

	var payloads []map[string]any
	if err := json.Unmarshal(raw, &payloads); err != nil {
		return nil, fmt.Errorf("decode records file %s: %w", s.path, err)
	}

	if limit > 0 && len(payloads) > limit {
		payloads = payloads[:limit]
	}
	return payloads, nil
}
