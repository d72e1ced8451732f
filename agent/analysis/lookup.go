package analysis

import (
	"strings"

	contractx "github.com/rentalops/booking-agent/agent/contract"
)

// FindTemplate locates a cached template by case-insensitive substring match.
// A customer match has priority; when a customer match is found and a surgeon
// filter is also supplied, the filter narrows: if the matched template's
// surgeon does not satisfy it, the lookup misses rather than falling through
// to another customer. With no customer filter, the first surgeon match wins.
//
// On a miss the returned LookupMiss enumerates all distinct cached customer
// and surgeon names, in cache order. Never fails.
func FindTemplate(templates []contractx.BookingTemplate, customerFilter, surgeonFilter string) (*contractx.BookingTemplate, *contractx.LookupMiss) {
	customerFilter = strings.TrimSpace(customerFilter)
	surgeonFilter = strings.TrimSpace(surgeonFilter)

	if customerFilter != "" {
		for i := range templates {
			if !containsFold(templates[i].Customer, customerFilter) {
				continue
			}
			if surgeonFilter != "" && !containsFold(templates[i].Surgeon, surgeonFilter) {
				return nil, missFrom(templates)
			}
			return &templates[i], nil
		}
		return nil, missFrom(templates)
	}

	for i := range templates {
		if containsFold(templates[i].Surgeon, surgeonFilter) {
			return &templates[i], nil
		}
	}
	return nil, missFrom(templates)
}

func missFrom(templates []contractx.BookingTemplate) *contractx.LookupMiss {
	miss := &contractx.LookupMiss{
		AvailableCustomers: []string{},
		AvailableSurgeons:  []string{},
	}
	seenCustomer := make(map[string]struct{}, len(templates))
	seenSurgeon := make(map[string]struct{}, len(templates))
	for _, tpl := range templates {
		if _, ok := seenCustomer[tpl.Customer]; !ok {
			seenCustomer[tpl.Customer] = struct{}{}
			miss.AvailableCustomers = append(miss.AvailableCustomers, tpl.Customer)
		}
		if _, ok := seenSurgeon[tpl.Surgeon]; !ok {
			seenSurgeon[tpl.Surgeon] = struct{}{}
			miss.AvailableSurgeons = append(miss.AvailableSurgeons, tpl.Surgeon)
		}
	}
	return miss
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
