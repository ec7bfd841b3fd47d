package receipt

import (
	"time"

	"github.com/Michael2026-development/financial-tracker-reactjs-sub000/internal/extraction"
)

// Scan is one processed receipt photo together with its extraction
// result. The extracted items may still be edited or discarded by the
// consumer before they become transactions; the scan record keeps what
// the pipeline actually produced.
type Scan struct {
	ID          string            `json:"id"`
	StoreName   string            `json:"store_name"`
	Items       []extraction.Item `json:"items"`
	TotalAmount int               `json:"total_amount"` // whole currency units
	Confidence  float64           `json:"confidence"`
	Filename    string            `json:"filename"`
	ContentType string            `json:"content_type"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
