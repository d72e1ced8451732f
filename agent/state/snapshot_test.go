package state

import (
	"errors"
	"testing"
	"time"

	contractx "github.com/rentalops/booking-agent/agent/contract"
)

func validTemplates() []contractx.BookingTemplate {
	return []contractx.BookingTemplate{
		{Customer: "Acme", CustomerID: "C-1", Equipment: "Drill", Surgeon: "Dr. A", SalesRep: "Rep1", Frequency: 2, TotalBookings: 3},
	}
}

func TestNewSnapshotVersioning(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	first := NewSnapshot(nil, validTemplates(), contractx.AnalyzerDeterministic, 3, now)
	if first.Version != 1 {
		t.Fatalf("Version = %d, want 1", first.Version)
	}
	if first.RecordCount != 3 {
		t.Fatalf("RecordCount = %d, want 3", first.RecordCount)
	}
	if !first.AnalyzedAt.Equal(now) {
		t.Fatalf("AnalyzedAt = %v, want %v", first.AnalyzedAt, now)
	}

	second := NewSnapshot(first, validTemplates(), contractx.AnalyzerDeterministic, 5, now.Add(time.Hour))
	if second.Version != 2 {
		t.Fatalf("Version = %d, want 2", second.Version)
	}
}

func TestNewSnapshotNilTemplates(t *testing.T) {
	t.Parallel()

	snap := NewSnapshot(nil, nil, contractx.AnalyzerDeterministic, 0, time.Now())
	if snap.Templates == nil {
		t.Fatal("Templates is nil, want empty slice")
	}
	if err := snap.Validate(); err != nil {
		t.Fatalf("Validate returned %v, want nil for empty template set", err)
	}
}

func TestSnapshotValidate(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name    string
		snap    *TemplateSnapshot
		wantErr bool
	}{
		{
			name: "valid",
			snap: NewSnapshot(nil, validTemplates(), contractx.AnalyzerDeterministic, 3, now),
		},
		{
			name:    "zero version",
			snap:    &TemplateSnapshot{Version: 0},
			wantErr: true,
		},
		{
			name: "empty customer",
			snap: &TemplateSnapshot{
				Version:   1,
				Templates: []contractx.BookingTemplate{{Frequency: 1, TotalBookings: 1}},
			},
			wantErr: true,
		},
		{
			name: "frequency below one",
			snap: &TemplateSnapshot{
				Version:   1,
				Templates: []contractx.BookingTemplate{{Customer: "Acme", Frequency: 0, TotalBookings: 2}},
			},
			wantErr: true,
		},
		{
			name: "frequency above total",
			snap: &TemplateSnapshot{
				Version:   1,
				Templates: []contractx.BookingTemplate{{Customer: "Acme", Frequency: 4, TotalBookings: 2}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.snap.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSnapshotValidateNil(t *testing.T) {
	t.Parallel()

	var snap *TemplateSnapshot
	if err := snap.Validate(); !errors.Is(err, ErrNilSnapshot) {
		t.Fatalf("Validate() error = %v, want ErrNilSnapshot", err)
	}
}
