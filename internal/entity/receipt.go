package entity

import (
	"time"

	"github.com/google/uuid"
)

// ScanAmount is one numeric value detected by the receipt-scanning API.
type ScanAmount struct {
	Data            float64 `json:"data"`
	Text            string  `json:"text"`
	ConfidenceLevel float64 `json:"confidenceLevel"`
}

// ScanEntry is a single scanned line: the OCR'd description plus the
// detected amount for that line.
type ScanEntry struct {
	Text   string     `json:"text"`
	Amount ScanAmount `json:"amount"`
}

// ScanResult is the raw extraction result produced by the scanning API.
type ScanResult struct {
	Amounts     []ScanEntry `json:"amounts"`
	TotalAmount ScanAmount  `json:"totalAmount"`
}

// ReceiptItem is one structured line item recovered from a receipt.
// Optional fields stay nil when the model omitted them; no defaulting.
type ReceiptItem struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Unit     *string  `json:"unit,omitempty"`
}

// ProcessedReceipt is the categorized result of one receipt-processing call.
type ProcessedReceipt struct {
	FoodItems   []ReceiptItem `json:"food_items"`
	Beverages   []ReceiptItem `json:"beverages"`
	TotalAmount float64       `json:"total_amount"`
}

// StoredReceipt is a persisted ProcessedReceipt with ownership metadata.
type StoredReceipt struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"user_id"`
	Receipt     ProcessedReceipt `json:"receipt"`
	ProcessedAt time.Time        `json:"processed_at"`
}
