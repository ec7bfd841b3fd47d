package extraction

import (
	"fmt"
	"math"
)

// HeuristicBackend parses raw OCR text with cascading line heuristics:
// classify lines, extract a price, a quantity and a name from each
// surviving line, drop echoed prices, and sum what is left. Every
// rejection is scoped to its line; a scan only fails when no line at all
// yields a valid item.
type HeuristicBackend struct{}

// NewHeuristicBackend returns a backend that parses plain OCR text.
func NewHeuristicBackend() *HeuristicBackend {
	return &HeuristicBackend{}
}

// Extract implements Backend. It is pure and idempotent: identical input
// text always produces an identical Receipt.
func (b *HeuristicBackend) Extract(raw string) (*Receipt, error) {
	lines := splitLines(raw)

	receipt := &Receipt{
		StoreName:  guessStoreName(lines),
		Items:      []Item{},
		Confidence: HeuristicConfidence,
	}
	for _, l := range lines {
		receipt.RawLines = append(receipt.RawLines, l.text)
	}

	// Totals already accepted in this scan. OCR frequently echoes a price
	// on an adjacent misaligned line, so a repeated total is dropped and
	// the first occurrence wins. A genuinely distinct item at the same
	// price is knowingly lost too.
	seen := make(map[int]bool)

	for _, l := range lines {
		if isNoise(l.text) {
			continue
		}
		item, ok := parseItem(l)
		if !ok {
			continue
		}
		if seen[item.TotalPrice] {
			continue
		}
		seen[item.TotalPrice] = true
		receipt.Items = append(receipt.Items, item)
		receipt.TotalAmount += item.TotalPrice
	}

	if len(receipt.Items) == 0 {
		return nil, ErrNoItems
	}
	return receipt, nil
}

// parseItem runs the price, quantity and name stages over one line. The
// first stage that fails makes the line a non-item.
func parseItem(l line) (Item, bool) {
	price, ok := extractPrice(l.text)
	if !ok {
		return Item{}, false
	}

	quantity, rest := extractQuantity(l.text[:price.start])

	name, ok := normalizeName(rest)
	if !ok {
		return Item{}, false
	}

	item := Item{
		ID:         fmt.Sprintf("item-%d", l.index),
		Name:       name,
		Quantity:   quantity,
		UnitPrice:  price.value,
		TotalPrice: price.value,
		LineIndex:  l.index,
	}
	if quantity > 1 {
		// The printed line total is trusted verbatim; the unit price is
		// derived from it, so unitPrice*quantity may be off by up to
		// quantity-1 units.
		item.UnitPrice = int(math.Round(float64(price.value) / float64(quantity)))
	}
	return item, true
}
