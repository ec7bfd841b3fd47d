package extraction

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StructuredBackend trusts a vision model that already returns receipt
// JSON. Its only job is schema validation and numeric coercion; it runs
// none of the line heuristics.
type StructuredBackend struct{}

// NewStructuredBackend returns a backend that validates model-returned
// receipt JSON.
func NewStructuredBackend() *StructuredBackend {
	return &StructuredBackend{}
}

// structuredReceipt is the JSON shape the vision model is asked for.
// Numeric fields are left untyped because models return them as numbers,
// quoted numbers or null interchangeably.
type structuredReceipt struct {
	StoreName string           `json:"store_name"`
	Items     []structuredItem `json:"items"`
}

type structuredItem struct {
	Name       string `json:"name"`
	Quantity   any    `json:"quantity"`
	UnitPrice  any    `json:"unit_price"`
	TotalPrice any    `json:"total_price"`
}

// Extract implements Backend. A response that fails validation or yields
// no usable items comes back as a *MalformedResponseError carrying the
// raw response for diagnostics.
func (b *StructuredBackend) Extract(raw string) (*Receipt, error) {
	payload, err := sliceJSONObject(raw)
	if err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}

	var parsed structuredReceipt
	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()
	if err := dec.Decode(&parsed); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: fmt.Errorf("unmarshaling json: %w", err)}
	}

	receipt := &Receipt{
		StoreName:  strings.TrimSpace(parsed.StoreName),
		Items:      []Item{},
		Confidence: StructuredConfidence,
	}
	if receipt.StoreName == "" {
		receipt.StoreName = unknownStore
	}

	for i, it := range parsed.Items {
		item, ok := coerceItem(it, i)
		if !ok {
			continue
		}
		receipt.Items = append(receipt.Items, item)
		receipt.TotalAmount += item.TotalPrice
	}

	if len(receipt.Items) == 0 {
		return nil, &MalformedResponseError{Raw: raw, Err: errors.New("response contains no usable items")}
	}
	return receipt, nil
}

// coerceItem fills missing fields from the ones present: quantity
// defaults to 1, the total from quantity*unit and the unit from
// total/quantity. An item without a name or any positive amount is
// skipped.
func coerceItem(it structuredItem, index int) (Item, bool) {
	name := strings.TrimSpace(it.Name)
	if name == "" {
		return Item{}, false
	}

	quantity := coerceInt(it.Quantity)
	if quantity < 1 {
		quantity = 1
	}
	unit := coerceInt(it.UnitPrice)
	total := coerceInt(it.TotalPrice)
	if total <= 0 {
		total = unit * quantity
	}
	if unit <= 0 {
		unit = total / quantity
	}
	if total <= 0 {
		return Item{}, false
	}

	return Item{
		ID:         fmt.Sprintf("item-%d", index),
		Name:       name,
		Quantity:   quantity,
		UnitPrice:  unit,
		TotalPrice: total,
		LineIndex:  index,
	}, true
}

// coerceInt reads whatever numeric form the model produced as a whole
// amount, truncating fractions. Anything unusable counts as absent.
func coerceInt(v any) int {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		if f, err := n.Float64(); err == nil {
			return int(f)
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return int(f)
		}
	case float64:
		return int(n)
	}
	return 0
}

// sliceJSONObject cuts the first JSON object out of a model response,
// tolerating markdown code fences and stray prose around it.
func sliceJSONObject(text string) (string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	if start == -1 {
		return "", errors.New("no JSON object found in response")
	}
	end := strings.LastIndex(text, "}")
	if end == -1 || end < start {
		return "", errors.New("invalid JSON object in response")
	}
	return text[start : end+1], nil
}
