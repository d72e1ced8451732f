package analysis

import (
	"fmt"
	"strconv"
	"strings"

	contractx "github.com/rentalops/booking-agent/agent/contract"
)

// Defaults used when a raw payload is missing a field. Normalization never
// leaves a field empty.
const (
	DefaultBookingID = "unknown"
	DefaultCustomer  = "Unknown Customer"
	DefaultSurgeon   = "Unknown Surgeon"
	DefaultSalesRep  = "Unknown Sales Rep"
	DefaultEquipment = "Unknown Equipment"
	DefaultDate      = "Unknown Date"
	DefaultStatus    = "Unknown"
)

// Source keys tried per attribute, in priority order: display fields first,
// raw identifiers after.
var (
	idKeys         = []string{"id", "bookingId", "reservationId", "objectId"}
	customerKeys   = []string{"customerName", "customer", "soldToPartyName", "soldToParty"}
	customerIDKeys = []string{"customerId", "soldToPartyId", "soldToParty"}
	surgeonKeys    = []string{"surgeon", "surgeonName", "surgeryDescription", "physician"}
	salesRepKeys   = []string{"salesRep", "salesRepName", "createdByName", "createdBy"}
	equipmentKeys  = []string{"equipment", "equipmentDescription", "description"}
	dateKeys       = []string{"date", "dayOfUse", "createdAt"}
	statusKeys     = []string{"status", "lifeCycleStatus", "lifeCycleStatusDescription"}
	valueKeys      = []string{"value", "netValue", "totalValue"}
)

// NormalizeRecord maps one externally-sourced payload of arbitrary shape into
// a fully-populated BookingRecord. It never fails: absent or empty fields get
// the defaults above, unparseable numerics become 0.
func NormalizeRecord(raw map[string]any) contractx.BookingRecord {
	rec := contractx.BookingRecord{
		ID:        pickString(raw, idKeys, DefaultBookingID),
		Customer:  pickString(raw, customerKeys, DefaultCustomer),
		Surgeon:   pickString(raw, surgeonKeys, DefaultSurgeon),
		SalesRep:  pickString(raw, salesRepKeys, DefaultSalesRep),
		Equipment: pickEquipment(raw),
		Date:      pickString(raw, dateKeys, DefaultDate),
		Status:    pickString(raw, statusKeys, DefaultStatus),
		Value:     pickFloat(raw, valueKeys),
	}

	rec.CustomerID = pickString(raw, customerIDKeys, rec.Customer)
	return rec
}

// NormalizeAll normalizes a batch, preserving input order.
func NormalizeAll(raws []map[string]any) []contractx.BookingRecord {
	records := make([]contractx.BookingRecord, 0, len(raws))
	for _, raw := range raws {
		records = append(records, NormalizeRecord(raw))
	}
	return records
}

// pickEquipment tries the top-level equipment keys, then falls back to the
// first line item's material id or description.
func pickEquipment(raw map[string]any) string {
	if v := pickString(raw, equipmentKeys, ""); v != "" {
		return v
	}

	items, ok := raw["items"].([]any)
	if !ok || len(items) == 0 {
		return DefaultEquipment
	}
	first, ok := items[0].(map[string]any)
	if !ok {
		return DefaultEquipment
	}
	return pickString(first, []string{"materialId", "materialDescription"}, DefaultEquipment)
}

func pickString(raw map[string]any, keys []string, fallback string) string {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		s := strings.TrimSpace(stringify(v))
		if s != "" {
			return s
		}
	}
	return fallback
}

func pickFloat(raw map[string]any, keys []string) float64 {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n
		case float32:
			return float64(n)
		case int:
			return float64(n)
		case int64:
			return float64(n)
		case string:
			parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
			if err != nil {
				return 0
			}
			return parsed
		}
	}
	return 0
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return ""
	}
}
