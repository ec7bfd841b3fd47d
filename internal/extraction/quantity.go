package extraction

import (
	"regexp"
	"strconv"
)

var (
	multiplierClause = regexp.MustCompile(`(\d+)\s*[xX×]\s*`)
	leadingQuantity  = regexp.MustCompile(`^(\d+)\s+`)
)

// extractQuantity detects an explicit or implicit quantity in the text
// left of the price. It returns the quantity and the remaining text that
// names the item.
//
// A multiplier clause ("2 x 34000") may sit mid-line between the name and
// the line total; everything from the clause onward is quantity and
// per-unit price, so the name is the text before it. The bare-number form
// ("2 Roti") must open the line. A parsed quantity outside [1,100) is
// discarded entirely: nothing is consumed and the quantity defaults to 1.
func extractQuantity(prefix string) (int, string) {
	if m := multiplierClause.FindStringSubmatchIndex(prefix); m != nil {
		if q, ok := boundedQuantity(prefix[m[2]:m[3]]); ok {
			return q, prefix[:m[0]]
		}
		return 1, prefix
	}
	if m := leadingQuantity.FindStringSubmatch(prefix); m != nil {
		if q, ok := boundedQuantity(m[1]); ok {
			return q, prefix[len(m[0]):]
		}
	}
	return 1, prefix
}

func boundedQuantity(digits string) (int, bool) {
	q, err := strconv.Atoi(digits)
	if err != nil || q < 1 || q >= maxQuantity {
		return 0, false
	}
	return q, true
}
