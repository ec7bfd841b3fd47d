package extraction

import (
	"errors"
	"fmt"
)

// Confidence assigned per backend. These are deliberate constants, not
// values derived from the OCR engine's per-character confidence signals.
const (
	// HeuristicConfidence applies to receipts parsed from raw OCR text.
	HeuristicConfidence = 0.75
	// StructuredConfidence applies to receipts returned as JSON by a
	// vision model that read the image directly.
	StructuredConfidence = 0.9
)

// Acceptance bounds for a single line item. Values are whole currency
// units (e.g. Rupiah), with no sub-unit scaling.
const (
	minItemPrice = 100
	maxItemPrice = 10_000_000
	maxQuantity  = 100
)

// unknownStore is used when no line in the receipt header qualifies as a
// store name.
const unknownStore = "Unknown Store"

// ErrNoItems is returned when a backend produced zero valid line items.
// Callers should treat it as a request for a clearer photo or manual
// entry, never as an empty-but-successful receipt.
var ErrNoItems = errors.New("no items found")

// Item is one purchasable line item extracted from a receipt.
type Item struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitPrice  int    `json:"unit_price"`
	TotalPrice int    `json:"total_price"`
	LineIndex  int    `json:"line_index"`
}

// Receipt is the structured result of extracting one scan.
type Receipt struct {
	StoreName   string   `json:"store_name"`
	Items       []Item   `json:"items"`
	TotalAmount int      `json:"total_amount"`
	Confidence  float64  `json:"confidence"`
	RawLines    []string `json:"raw_lines,omitempty"` // diagnostic only
}

// Backend converts one raw scan input into a structured Receipt. What the
// raw input is depends on the implementation: OCR text for the heuristic
// backend, a model's JSON response for the structured backend. The choice
// is a static configuration decision made by the caller.
type Backend interface {
	Extract(raw string) (*Receipt, error)
}

// MalformedResponseError reports a model response that failed schema
// validation. It keeps the raw response for diagnostics and matches
// ErrNoItems via errors.Is, so callers handle it like any empty scan.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed backend response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() []error {
	return []error{ErrNoItems, e.Err}
}
