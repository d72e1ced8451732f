package analysis

import contractx "github.com/rentalops/booking-agent/agent/contract"

// CustomerGroup is one customer's records in their original order.
type CustomerGroup struct {
	Customer string
	Records  []contractx.BookingRecord
}

// GroupByCustomer partitions records by customer display name. Groups appear
// in first-appearance order of the customer in the input, and each group's
// records keep their original relative order. The input is not mutated.
func GroupByCustomer(records []contractx.BookingRecord) []CustomerGroup {
	index := make(map[string]int, len(records))
	groups := make([]CustomerGroup, 0, len(records))

	for _, rec := range records {
		i, ok := index[rec.Customer]
		if !ok {
			i = len(groups)
			index[rec.Customer] = i
			groups = append(groups, CustomerGroup{Customer: rec.Customer})
		}
		groups[i].Records = append(groups[i].Records, rec)
	}
	return groups
}
