// Package state holds the cached template set between analyses. Each
// re-analysis produces a complete replacement snapshot; stores install it by
// swapping a single reference, never by mutating the previous value, so
// concurrent readers always see a whole, consistent template set.
package state

import (
	"errors"
	"fmt"
	"time"

	contractx "github.com/rentalops/booking-agent/agent/contract"
)

var (
	ErrSnapshotNotFound = errors.New("template snapshot not found")
	ErrNilSnapshot      = errors.New("template snapshot is nil")
	ErrInvalidWorkspace = errors.New("workspace id is empty")
)

// TemplateSnapshot is one immutable, versioned result of a full history
// analysis. Treat a stored snapshot as read-only: the next analysis replaces
// it wholesale.
type TemplateSnapshot struct {
	Version     int64                       `json:"version"`
	Analyzer    contractx.AnalyzerKind      `json:"analyzer"`
	RecordCount int                         `json:"record_count"`
	AnalyzedAt  time.Time                   `json:"analyzed_at"`
	Templates   []contractx.BookingTemplate `json:"templates"`
}

// NewSnapshot builds the successor of prev (or the first snapshot when prev
// is nil) carrying a freshly analyzed template set.
func NewSnapshot(
	prev *TemplateSnapshot,
	templates []contractx.BookingTemplate,
	analyzer contractx.AnalyzerKind,
	recordCount int,
	now time.Time,
) *TemplateSnapshot {
	version := int64(1)
	if prev != nil {
		version = prev.Version + 1
	}
	if templates == nil {
		templates = []contractx.BookingTemplate{}
	}
	return &TemplateSnapshot{
		Version:     version,
		Analyzer:    analyzer,
		RecordCount: recordCount,
		AnalyzedAt:  now.UTC(),
		Templates:   templates,
	}
}

// Validate checks the structural invariants of a snapshot, in particular
// 1 <= frequency <= totalBookings for every template.
func (s *TemplateSnapshot) Validate() error {
	if s == nil {
		return ErrNilSnapshot
	}
	if s.Version <= 0 {
		return fmt.Errorf("snapshot version must be positive, got %d", s.Version)
	}
	for _, tpl := range s.Templates {
		if tpl.Customer == "" {
			return fmt.Errorf("template has empty customer")
		}
		if tpl.Frequency < 1 || tpl.Frequency > tpl.TotalBookings {
			return fmt.Errorf("template for %s violates frequency bounds: frequency=%d total=%d",
				tpl.Customer, tpl.Frequency, tpl.TotalBookings)
		}
	}
	return nil
}
