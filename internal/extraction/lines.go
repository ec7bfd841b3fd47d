package extraction

import (
	"regexp"
	"strings"
)

// Patterns for classifying receipt lines. The noise keywords and the
// date/time shapes are tuned for Indonesian and English receipts; other
// locales need this set extended.
var (
	noiseKeywords = regexp.MustCompile(`(?i)\b(total|subtotal|sub\s*total|tax|ppn|pajak|tunai|cash|kembali(?:an)?|change|disc(?:ount)?|diskon|kasir|cashier|terima\s*kasih|thank\s*you|npwp|struk|faktur)\b`)
	separatorLine = regexp.MustCompile(`^[\s\-=*]+$`)
	datePrefix    = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}`)
	timePrefix    = regexp.MustCompile(`^\d{1,2}:\d{2}`)
)

// line is one trimmed, non-empty line of recognized text.
type line struct {
	text  string
	index int
}

// splitLines breaks raw recognized text into candidate lines, trimming
// each and dropping empty ones. The index is the position within the kept
// lines, matching Receipt.RawLines.
func splitLines(raw string) []line {
	var lines []line
	for _, l := range strings.Split(raw, "\n") {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, line{text: l, index: len(lines)})
	}
	return lines
}

// isNoise reports whether a line is header/footer/total/date/time or
// separator text and must be excluded from item detection. The printed
// TOTAL line in particular is filtered here so the grand total is always
// derived from the accepted items, never read from the receipt.
func isNoise(text string) bool {
	if len(text) < 3 {
		return true
	}
	if separatorLine.MatchString(text) {
		return true
	}
	if noiseKeywords.MatchString(text) {
		return true
	}
	if datePrefix.MatchString(text) || timePrefix.MatchString(text) {
		return true
	}
	return false
}

// guessStoreName scans at most the first five lines for the store name:
// the first line longer than five characters that carries no price token
// and no noise keyword.
func guessStoreName(lines []line) string {
	for i, l := range lines {
		if i >= 5 {
			break
		}
		if len(l.text) <= 5 {
			continue
		}
		if noiseKeywords.MatchString(l.text) {
			continue
		}
		if groupedPrice.MatchString(l.text) || trailingPrice.MatchString(l.text) {
			continue
		}
		return l.text
	}
	return unknownStore
}
