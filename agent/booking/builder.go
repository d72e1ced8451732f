package booking

import (
	"fmt"

	contractx "github.com/rentalops/booking-agent/agent/contract"
	schedulex "github.com/rentalops/booking-agent/agent/schedule"
)

// Request document defaults.
const (
	DefaultCurrency        = "EUR"
	DefaultReservationType = "01"
	DefaultSurgeryType     = "01"
	DefaultNoteLanguage    = "EN"

	descriptionMaxLen = 15
)

// BuildRequest assembles the final booking document from a template, a
// resolved schedule, a derived material code and the caller's overrides.
//
// Items default to a single {materialCode, qty 1} line unless the caller or
// the template supplies an explicit list (per-item material id falls back to
// the derived code). The note defaults to "<equipment> - <surgeon> - <sales
// rep>" in English. IsDraft and IsSimulation default to true; an explicit
// IsDraft=false from the caller is honored.
func BuildRequest(
	tpl contractx.BookingTemplate,
	sched schedulex.Resolved,
	materialCode string,
	custom contractx.Customization,
) contractx.RequestBody {
	surgeon := tpl.Surgeon
	if custom.Surgeon != "" {
		surgeon = custom.Surgeon
	}

	noteContent := custom.Notes
	if noteContent == "" {
		noteContent = fmt.Sprintf("%s - %s - %s", tpl.Equipment, surgeon, tpl.SalesRep)
	}

	isDraft := true
	if custom.IsDraft != nil {
		isDraft = *custom.IsDraft
	}

	return contractx.RequestBody{
		Items:                resolveItems(tpl, custom, materialCode),
		Notes:                []contractx.Note{{Language: DefaultNoteLanguage, NoteContent: noteContent}},
		IsDraft:              isDraft,
		Currency:             DefaultCurrency,
		Customer:             tpl.Customer,
		CustomerID:           tpl.CustomerID,
		DayOfUse:             sched.DayOfUseISO(),
		EndOfUse:             sched.EndOfUseISO(),
		Description:          truncate(tpl.Equipment, descriptionMaxLen),
		EquipmentDescription: tpl.Equipment,
		SurgeryType:          orDefault(tpl.SurgeryType, DefaultSurgeryType),
		IsSimulation:         true,
		ReservationType:      orDefault(tpl.ReservationType, DefaultReservationType),
		SurgeryDescription:   surgeon,
	}
}

func resolveItems(tpl contractx.BookingTemplate, custom contractx.Customization, materialCode string) []contractx.RequestItem {
	source := custom.Items
	if len(source) == 0 {
		source = tpl.Items
	}
	if len(source) == 0 {
		return []contractx.RequestItem{{MaterialID: materialCode, Quantity: 1}}
	}

	items := make([]contractx.RequestItem, 0, len(source))
	for _, item := range source {
		if item.MaterialID == "" {
			item.MaterialID = materialCode
		}
		if item.Quantity <= 0 {
			item.Quantity = 1
		}
		items = append(items, item)
	}
	return items
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
