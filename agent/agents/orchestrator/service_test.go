package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	contractx "github.com/rentalops/booking-agent/agent/contract"
	statex "github.com/rentalops/booking-agent/agent/state"
)

type fakeAnalyzer struct {
	templates []contractx.BookingTemplate
	err       error
	calls     int
	lastInput []contractx.BookingRecord
}

func (f *fakeAnalyzer) Kind() contractx.AnalyzerKind { return contractx.AnalyzerDeterministic }

func (f *fakeAnalyzer) Analyze(ctx context.Context, records []contractx.BookingRecord) ([]contractx.BookingTemplate, error) {
	f.calls++
	f.lastInput = records
	if f.err != nil {
		return nil, f.err
	}
	return f.templates, nil
}

type failingStore struct {
	statex.Store
	loadErr error
}

func (f *failingStore) Load(ctx context.Context, workspaceID string) (*statex.TemplateSnapshot, error) {
	return nil, f.loadErr
}

func acmeTemplate() contractx.BookingTemplate {
	return contractx.BookingTemplate{
		Customer:      "Acme Clinic",
		CustomerID:    "C-1",
		Equipment:     "Cranial Kit",
		Surgeon:       "Dr. Adams",
		SalesRep:      "Rep1",
		Frequency:     2,
		TotalBookings: 3,
	}
}

func newTestOrchestrator(t *testing.T, analyzer contractx.Analyzer) (*Orchestrator, *statex.MemoryStore) {
	t.Helper()

	store := statex.NewMemoryStore()
	orch, err := New(store, analyzer, Config{WorkspaceID: "ws-test"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return orch, store
}

func TestNewValidatesDependencies(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, &fakeAnalyzer{}, Config{}); err == nil {
		t.Fatal("New accepted a nil store")
	}
	if _, err := New(statex.NewMemoryStore(), nil, Config{}); err == nil {
		t.Fatal("New accepted a nil analyzer")
	}
}

func TestAnalyzeHistory(t *testing.T) {
	t.Parallel()

	analyzer := &fakeAnalyzer{templates: []contractx.BookingTemplate{acmeTemplate()}}
	orch, store := newTestOrchestrator(t, analyzer)

	payloads := []map[string]any{
		{"customerName": "Acme Clinic", "equipment": "Cranial Kit", "surgeon": "Dr. Adams", "salesRep": "Rep1"},
		{"customerName": "Acme Clinic", "equipment": "Cranial Kit", "surgeon": "Dr. Adams", "salesRep": "Rep1"},
		{"customerName": "Acme Clinic", "equipment": "Saw", "surgeon": "Dr. Brown", "salesRep": "Rep2"},
	}

	snap, err := orch.AnalyzeHistory(context.Background(), payloads)
	if err != nil {
		t.Fatalf("AnalyzeHistory() error = %v", err)
	}

	if snap.Version != 1 {
		t.Fatalf("Version = %d, want 1", snap.Version)
	}
	if snap.RecordCount != 3 {
		t.Fatalf("RecordCount = %d, want 3", snap.RecordCount)
	}
	if analyzer.calls != 1 {
		t.Fatalf("analyzer called %d times, want 1", analyzer.calls)
	}
	if len(analyzer.lastInput) != 3 || analyzer.lastInput[0].Customer != "Acme Clinic" {
		t.Fatalf("analyzer received unexpected records: %+v", analyzer.lastInput)
	}

	stored, err := store.Load(context.Background(), "ws-test")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if stored.Version != 1 {
		t.Fatalf("stored Version = %d, want 1", stored.Version)
	}
}

func TestAnalyzeHistoryIncrementsVersion(t *testing.T) {
	t.Parallel()

	analyzer := &fakeAnalyzer{templates: []contractx.BookingTemplate{acmeTemplate()}}
	orch, _ := newTestOrchestrator(t, analyzer)
	ctx := context.Background()

	if _, err := orch.AnalyzeHistory(ctx, nil); err != nil {
		t.Fatalf("first AnalyzeHistory() error = %v", err)
	}
	snap, err := orch.AnalyzeHistory(ctx, nil)
	if err != nil {
		t.Fatalf("second AnalyzeHistory() error = %v", err)
	}
	if snap.Version != 2 {
		t.Fatalf("Version = %d, want 2", snap.Version)
	}
}

func TestAnalyzeHistoryAnalyzerFailure(t *testing.T) {
	t.Parallel()

	analyzer := &fakeAnalyzer{err: errors.New("model down")}
	orch, store := newTestOrchestrator(t, analyzer)

	if _, err := orch.AnalyzeHistory(context.Background(), []map[string]any{{"customerName": "Acme"}}); err == nil {
		t.Fatal("AnalyzeHistory succeeded despite analyzer failure")
	}
	if _, err := store.Load(context.Background(), "ws-test"); !errors.Is(err, statex.ErrSnapshotNotFound) {
		t.Fatalf("a snapshot was stored despite the failure: %v", err)
	}
}

func TestAnalyzeHistoryRejectsInvalidTemplates(t *testing.T) {
	t.Parallel()

	bad := acmeTemplate()
	bad.Frequency = 9 // above TotalBookings
	analyzer := &fakeAnalyzer{templates: []contractx.BookingTemplate{bad}}
	orch, _ := newTestOrchestrator(t, analyzer)

	if _, err := orch.AnalyzeHistory(context.Background(), nil); err == nil {
		t.Fatal("AnalyzeHistory accepted templates violating frequency bounds")
	}
}

func TestLookupTemplate(t *testing.T) {
	t.Parallel()

	analyzer := &fakeAnalyzer{templates: []contractx.BookingTemplate{acmeTemplate()}}
	orch, _ := newTestOrchestrator(t, analyzer)
	ctx := context.Background()

	if _, err := orch.AnalyzeHistory(ctx, nil); err != nil {
		t.Fatalf("AnalyzeHistory() error = %v", err)
	}

	res, err := orch.LookupTemplate(ctx, "acme", "")
	if err != nil {
		t.Fatalf("LookupTemplate() error = %v", err)
	}
	if res.Template == nil || res.Template.Customer != "Acme Clinic" {
		t.Fatalf("unexpected lookup result: %+v", res)
	}

	res, err = orch.LookupTemplate(ctx, "umbrella", "")
	if err != nil {
		t.Fatalf("LookupTemplate() error = %v", err)
	}
	if res.Template != nil || res.NotFound == nil {
		t.Fatalf("expected a miss, got %+v", res)
	}
	if len(res.NotFound.AvailableCustomers) != 1 || res.NotFound.AvailableCustomers[0] != "Acme Clinic" {
		t.Fatalf("unexpected suggestions: %+v", res.NotFound)
	}
}

func TestLookupTemplateEmptyCache(t *testing.T) {
	t.Parallel()

	orch, _ := newTestOrchestrator(t, &fakeAnalyzer{})

	res, err := orch.LookupTemplate(context.Background(), "acme", "")
	if err != nil {
		t.Fatalf("LookupTemplate() error = %v", err)
	}
	if res.Template != nil || res.NotFound == nil {
		t.Fatalf("expected a miss on empty cache, got %+v", res)
	}
}

func TestLookupTemplateStoreFailure(t *testing.T) {
	t.Parallel()

	broken := &failingStore{loadErr: errors.New("redis unreachable")}
	orch, err := New(broken, &fakeAnalyzer{}, Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := orch.LookupTemplate(context.Background(), "acme", ""); err == nil {
		t.Fatal("LookupTemplate succeeded despite a broken store")
	}
}

func TestCreateRequestBuildsDocument(t *testing.T) {
	t.Parallel()

	analyzer := &fakeAnalyzer{templates: []contractx.BookingTemplate{acmeTemplate()}}
	orch, _ := newTestOrchestrator(t, analyzer)
	ctx := context.Background()

	if _, err := orch.AnalyzeHistory(ctx, nil); err != nil {
		t.Fatalf("AnalyzeHistory() error = %v", err)
	}

	out, err := orch.CreateRequest(ctx, contractx.CreateRequestInput{Customer: "Acme"})
	if err != nil {
		t.Fatalf("CreateRequest() error = %v", err)
	}
	if out.NotFound != nil {
		t.Fatalf("unexpected miss: %+v", out.NotFound)
	}
	if out.Request == nil {
		t.Fatal("CreateRequest returned no request body")
	}

	req := out.Request
	if req.Customer != "Acme Clinic" || req.CustomerID != "C-1" {
		t.Fatalf("unexpected customer fields: %+v", req)
	}
	if len(req.Items) != 1 || req.Items[0].MaterialID != "CRANIAL-KIT" {
		t.Fatalf("unexpected items: %+v", req.Items)
	}
	if !req.IsDraft || !req.IsSimulation {
		t.Fatalf("draft/simulation flags = %v/%v, want true/true", req.IsDraft, req.IsSimulation)
	}
	if !strings.HasSuffix(req.EndOfUse, "T23:59:59.999Z") {
		t.Fatalf("EndOfUse = %s, want end of day", req.EndOfUse)
	}
	if out.Template == nil || out.Template.Customer != "Acme Clinic" {
		t.Fatalf("unexpected template echo: %+v", out.Template)
	}
}

func TestCreateRequestHonorsCustomization(t *testing.T) {
	t.Parallel()

	analyzer := &fakeAnalyzer{templates: []contractx.BookingTemplate{acmeTemplate()}}
	orch, _ := newTestOrchestrator(t, analyzer)
	ctx := context.Background()

	if _, err := orch.AnalyzeHistory(ctx, nil); err != nil {
		t.Fatalf("AnalyzeHistory() error = %v", err)
	}

	isDraft := false
	out, err := orch.CreateRequest(ctx, contractx.CreateRequestInput{
		Customer: "Acme",
		Customization: contractx.Customization{
			Surgeon: "Dr. Brown",
			Date:    "2026-09-10",
			Time:    "2pm",
			Notes:   "call ahead",
			IsDraft: &isDraft,
		},
	})
	if err != nil {
		t.Fatalf("CreateRequest() error = %v", err)
	}

	req := out.Request
	if req.SurgeryDescription != "Dr. Brown" {
		t.Fatalf("SurgeryDescription = %s, want Dr. Brown", req.SurgeryDescription)
	}
	if req.DayOfUse != "2026-09-10T14:00:00.000Z" {
		t.Fatalf("DayOfUse = %s", req.DayOfUse)
	}
	if req.Notes[0].NoteContent != "call ahead" {
		t.Fatalf("NoteContent = %s", req.Notes[0].NoteContent)
	}
	if req.IsDraft {
		t.Fatal("IsDraft = true, want explicit false honored")
	}
}

func TestCreateRequestMiss(t *testing.T) {
	t.Parallel()

	analyzer := &fakeAnalyzer{templates: []contractx.BookingTemplate{acmeTemplate()}}
	orch, _ := newTestOrchestrator(t, analyzer)
	ctx := context.Background()

	if _, err := orch.AnalyzeHistory(ctx, nil); err != nil {
		t.Fatalf("AnalyzeHistory() error = %v", err)
	}

	out, err := orch.CreateRequest(ctx, contractx.CreateRequestInput{Customer: "Umbrella"})
	if err != nil {
		t.Fatalf("CreateRequest() error = %v", err)
	}
	if out.Request != nil {
		t.Fatalf("unexpected request body on miss: %+v", out.Request)
	}
	if out.NotFound == nil || len(out.NotFound.AvailableCustomers) != 1 {
		t.Fatalf("unexpected miss payload: %+v", out.NotFound)
	}
}
