package extraction

import (
	"regexp"
	"strconv"
	"strings"
)

// Two ordered pattern families find the authoritative price token on a
// line. Grouped amounts ("15.000", "Rp 15,000.00") win over a bare
// trailing integer; the bare form is only consulted when no grouped
// amount appears anywhere on the line.
var (
	groupedPrice  = regexp.MustCompile(`(?i)(?:rp\.?|idr)?\s*(\d{1,3}(?:[.,]\d{3})+)(?:[.,]\d{2})?`)
	trailingPrice = regexp.MustCompile(`(\d{4,7})\s*$`)
)

var groupSeparators = strings.NewReplacer(".", "", ",", "")

// priceMatch is the authoritative price token found on a line.
type priceMatch struct {
	value int // whole currency units, grouping separators stripped
	start int // byte offset of the token within the line
}

// extractPrice finds the price token on a candidate line. When several
// grouped amounts appear, the last one is authoritative: the trailing
// number on a printed line is the line total, earlier ones are codes or
// quantities. An amount outside the accepted window makes the whole line
// a non-item; the other pattern family is not retried.
func extractPrice(text string) (priceMatch, bool) {
	if ms := groupedPrice.FindAllStringSubmatchIndex(text, -1); ms != nil {
		m := ms[len(ms)-1]
		digits := groupSeparators.Replace(text[m[2]:m[3]])
		return boundedPrice(digits, m[0])
	}
	if m := trailingPrice.FindStringSubmatchIndex(text); m != nil {
		return boundedPrice(text[m[2]:m[3]], m[2])
	}
	return priceMatch{}, false
}

// boundedPrice parses a digit run and applies the per-item price window.
func boundedPrice(digits string, start int) (priceMatch, bool) {
	value, err := strconv.Atoi(digits)
	if err != nil || value < minItemPrice || value > maxItemPrice {
		return priceMatch{}, false
	}
	return priceMatch{value: value, start: start}, true
}
