package recordsource

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeRecordsFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bookings.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write records file: %v", err)
	}
	return path
}

func TestFileSourceFetchRecords(t *testing.T) {
	t.Parallel()

	path := writeRecordsFile(t, `[
		{"customerName": "Acme Clinic", "equipment": "Drill"},
		{"customerName": "Globex", "equipment": "Saw"}
	]`)

	payloads, err := NewFileSource(path).FetchRecords(context.Background(), 0)
	if err != nil {
		t.Fatalf("FetchRecords() error = %v", err)
	}
	if len(payloads) != 2 {
		t.Fatalf("got %d payloads, want 2", len(payloads))
	}
	if payloads[0]["customerName"] != "Acme Clinic" {
		t.Fatalf("unexpected first payload: %+v", payloads[0])
	}
}

func TestFileSourceLimit(t *testing.T) {
	t.Parallel()

	path := writeRecordsFile(t, `[{"id": "1"}, {"id": "2"}, {"id": "3"}]`)

	payloads, err := NewFileSource(path).FetchRecords(context.Background(), 2)
	if err != nil {
		t.Fatalf("FetchRecords() error = %v", err)
	}
	if len(payloads) != 2 {
		t.Fatalf("got %d payloads, want 2", len(payloads))
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := NewFileSource("/nonexistent/bookings.json").FetchRecords(context.Background(), 0); err == nil {
		t.Fatal("FetchRecords succeeded on a missing file")
	}
}

func TestFileSourceMalformedJSON(t *testing.T) {
	t.Parallel()

	path := writeRecordsFile(t, `{"not": "an array"}`)

	if _, err := NewFileSource(path).FetchRecords(context.Background(), 0); err == nil {
		t.Fatal("FetchRecords succeeded on malformed content")
	}
}
