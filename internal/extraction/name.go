package extraction

import (
	"regexp"
	"strings"
)

var (
	trailingCurrency = regexp.MustCompile(`(?i)\s(?:rp\.?|idr)\s*$`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
	notAName         = regexp.MustCompile(`^[\d\s\p{P}\p{S}]*$`)
)

// normalizeName derives a clean item label from the text left of the
// price, after any quantity clause has been removed. Labels shorter than
// two characters or made of nothing but digits and punctuation are not
// item names; the line carrying them is not an item.
func normalizeName(text string) (string, bool) {
	name := trailingCurrency.ReplaceAllString(text, "")
	name = whitespaceRun.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	if len(name) < 2 || notAName.MatchString(name) {
		return "", false
	}
	return name, true
}
