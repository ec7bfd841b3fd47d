package vision

import "context"

// Engine is the external OCR/vision service that reads receipt images.
// Acquisition is the one I/O-bound operation per scan; the context lets
// the caller bound or cancel it. On error the caller gets the failure
// verbatim and must not feed partial output to a parser.
type Engine interface {
	// RecognizeText runs plain OCR over the image and returns the raw,
	// unstructured text it reads.
	RecognizeText(ctx context.Context, imageData []byte, contentType string) (string, error)

	// ExtractReceipt asks the model to read the receipt and answer with
	// ready-made receipt JSON.
	ExtractReceipt(ctx context.Context, imageData []byte, contentType string) (string, error)

	// Close releases the engine's resources.
	Close() error
}

// ocrPrompt is shared by all providers when plain text is wanted.
const ocrPrompt = `You are transcribing a photographed paper receipt. Read every piece of text in the image and write it out line by line, top to bottom, exactly as printed.

Important:
- One receipt line per output line, preserving the printed order
- Keep numbers, prices and currency symbols exactly as they appear
- Do not summarize, translate, interpret or reformat anything
- Do not add any commentary before or after the transcription`

// receiptJSONPrompt is shared by all providers when structured output is
// wanted.
const receiptJSONPrompt = `You are analyzing a photographed paper receipt. Carefully read all text in the image and extract the store name and every purchased line item.

Return ONLY valid JSON in this exact format:
{
  "store_name": "Store Name",
  "items": [
    {"name": "Item name", "quantity": 1, "unit_price": 15000, "total_price": 15000}
  ]
}

Important:
- Amounts are whole currency units (e.g. Rupiah) as integers, never decimals
- quantity is a whole number, at least 1
- total_price is the amount actually printed on the item's line
- Skip tax, subtotal, total, cash and change lines; they are not items
- If you cannot read a field, use null for that field
- Do not include any text before or after the JSON
- Do not use markdown code blocks`
