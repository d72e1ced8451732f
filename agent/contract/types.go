package contract

// AnalyzerKind tags the strategy that produced a set of templates.
type AnalyzerKind string

const (
	AnalyzerDeterministic AnalyzerKind = "deterministic"
	AnalyzerRemote        AnalyzerKind = "remote"
)

// BookingRecord is the canonical form of one historical equipment booking.
// Every field is non-empty after normalization; missing source data is
// replaced by the defaults in agent/analysis, never left blank.
type BookingRecord struct {
	ID         string  `json:"id"`
	Customer   string  `json:"customer"`
	CustomerID string  `json:"customerId"`
	Surgeon    string  `json:"surgeon"`
	SalesRep   string  `json:"salesRep"`
	Equipment  string  `json:"equipment"`
	Date       string  `json:"date"`
	Status     string  `json:"status"`
	Value      float64 `json:"value"`
}

// BookingTemplate summarizes the most frequent (equipment, surgeon, sales rep)
// combination of one customer. Frequency is the count of the winning
// combination; TotalBookings is the size of the customer's record group, so
// 1 <= Frequency <= TotalBookings always holds.
//
// Items, Confidence, Insights, ReservationType and SurgeryType are enrichment
// fields populated only by the remote analyst; the deterministic path leaves
// them zero.
type BookingTemplate struct {
	Customer      string `json:"customer"`
	CustomerID    string `json:"customerId"`
	Equipment     string `json:"equipment"`
	Surgeon       string `json:"surgeon"`
	SalesRep      string `json:"salesRep"`
	Frequency     int    `json:"frequency"`
	TotalBookings int    `json:"totalBookings"`

	Items           []RequestItem `json:"items,omitempty"`
	Confidence      float64       `json:"confidence,omitempty"`
	Insights        string        `json:"insights,omitempty"`
	ReservationType string        `json:"reservationType,omitempty"`
	SurgeryType     string        `json:"surgeryType,omitempty"`
}

// RequestItem is one line item of a booking request.
type RequestItem struct {
	MaterialID string `json:"materialId"`
	Quantity   int    `json:"quantity"`
}

// Note is a localized free-text note attached to a booking request.
type Note struct {
	Language    string `json:"language"`
	NoteContent string `json:"noteContent"`
}

// RequestBody is the fully assembled, submission-ready booking document.
// DayOfUse and EndOfUse are ISO-8601 UTC instants on the same calendar day.
type RequestBody struct {
	Items                []RequestItem `json:"items"`
	Notes                []Note        `json:"notes"`
	IsDraft              bool          `json:"isDraft"`
	Currency             string        `json:"currency"`
	Customer             string        `json:"customer"`
	CustomerID           string        `json:"customerId"`
	DayOfUse             string        `json:"dayOfUse"`
	EndOfUse             string        `json:"endOfUse"`
	Description          string        `json:"description"`
	EquipmentDescription string        `json:"equipmentDescription"`
	SurgeryType          string        `json:"surgeryType"`
	IsSimulation         bool          `json:"isSimulation"`
	ReservationType      string        `json:"reservationType"`
	SurgeryDescription   string        `json:"surgeryDescription"`
}

// ScheduleSpec is a transient date/time request. Date is an absolute date,
// a relative keyword ("tomorrow", "next week", "next month", "next year"),
// or empty; Time is a bare time-of-day such as "2pm" or "14:00".
type ScheduleSpec struct {
	Date string `json:"date,omitempty"`
	Time string `json:"time,omitempty"`
}

// Customization carries the caller's optional overrides when synthesizing a
// booking request from a template. Nil/zero fields keep the documented
// defaults; IsDraft is a pointer so an explicit false survives.
type Customization struct {
	Surgeon string        `json:"surgeon,omitempty"`
	Date    string        `json:"date,omitempty"`
	Time    string        `json:"time,omitempty"`
	Notes   string        `json:"notes,omitempty"`
	IsDraft *bool         `json:"is_draft,omitempty"`
	Items   []RequestItem `json:"items,omitempty"`
}

// Schedule returns the date/time part of the customization as a ScheduleSpec.
func (c Customization) Schedule() ScheduleSpec {
	return ScheduleSpec{Date: c.Date, Time: c.Time}
}

// LookupMiss is the structured "not found" outcome of a template lookup.
// It enumerates the cached customers and surgeons so a caller can suggest
// alternatives instead of failing.
type LookupMiss struct {
	AvailableCustomers []string `json:"availableCustomers"`
	AvailableSurgeons  []string `json:"availableSurgeons"`
}

// LookupResult holds either a matched template or a structured miss.
type LookupResult struct {
	Template *BookingTemplate `json:"template,omitempty"`
	NotFound *LookupMiss      `json:"notFound,omitempty"`
}

// CreateRequestInput identifies the template to seed a booking request from
// and carries the caller's customization.
type CreateRequestInput struct {
	Customer      string        `json:"customer,omitempty"`
	Surgeon       string        `json:"surgeon,omitempty"`
	Customization Customization `json:"customization,omitempty"`
}

// CreateRequestOutput is either a ready-to-submit request body (with the
// template that seeded it) or a structured miss.
type CreateRequestOutput struct {
	Request  *RequestBody     `json:"request,omitempty"`
	Template *BookingTemplate `json:"template,omitempty"`
	NotFound *LookupMiss      `json:"notFound,omitempty"`
}
