package analysis

import (
	"sort"

	contractx "github.com/rentalops/booking-agent/agent/contract"
)

// SynthesizeTemplate builds a BookingTemplate from one customer group and its
// winning combination. CustomerID comes from the group's first record, falling
// back to the customer display name when absent.
func SynthesizeTemplate(group CustomerGroup, winner Combination) contractx.BookingTemplate {
	customerID := group.Customer
	if len(group.Records) > 0 && group.Records[0].CustomerID != "" {
		customerID = group.Records[0].CustomerID
	}

	return contractx.BookingTemplate{
		Customer:      group.Customer,
		CustomerID:    customerID,
		Equipment:     winner.Equipment,
		Surgeon:       winner.Surgeon,
		SalesRep:      winner.SalesRep,
		Frequency:     winner.Count,
		TotalBookings: len(group.Records),
	}
}

// RankTemplates orders templates by frequency descending. The sort is stable,
// so customers tied on frequency keep their first-appearance order.
func RankTemplates(templates []contractx.BookingTemplate) []contractx.BookingTemplate {
	ranked := make([]contractx.BookingTemplate, len(templates))
	copy(ranked, templates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Frequency > ranked[j].Frequency
	})
	return ranked
}
