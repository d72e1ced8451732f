package analysis

import (
	"strings"

	contractx "github.com/rentalops/booking-agent/agent/contract"
)

// combinationSeparator joins the triple into a counting key. The unit
// separator cannot occur in display strings coming out of the normalizer.
const combinationSeparator = "\x1f"

// Combination is the (equipment, surgeon, sales rep) triple whose recurrence
// is measured per customer, plus its occurrence count.
type Combination struct {
	Equipment string
	Surgeon   string
	SalesRep  string
	Count     int
}

func combinationKey(rec contractx.BookingRecord) string {
	return strings.Join([]string{rec.Equipment, rec.Surgeon, rec.SalesRep}, combinationSeparator)
}

// MostFrequentCombination selects the combination with the highest occurrence
// count in the given records. Ties go to the combination whose first
// occurrence appears earliest: records are walked in original order and the
// leader is only displaced by a strictly greater count. Returns false only
// for an empty input.
func MostFrequentCombination(records []contractx.BookingRecord) (Combination, bool) {
	if len(records) == 0 {
		return Combination{}, false
	}

	counts := make(map[string]int, len(records))
	for _, rec := range records {
		counts[combinationKey(rec)]++
	}

	var winner Combination
	seen := make(map[string]struct{}, len(counts))
	for _, rec := range records {
		key := combinationKey(rec)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if counts[key] > winner.Count {
			winner = Combination{
				Equipment: rec.Equipment,
				Surgeon:   rec.Surgeon,
				SalesRep:  rec.SalesRep,
				Count:     counts[key],
			}
		}
	}
	return winner, true
}
