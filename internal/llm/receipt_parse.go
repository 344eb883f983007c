package llm

import (
	"encoding/json"
	"strings"

	"github.com/gotvi/gotvi-backend/internal/common"
	"github.com/gotvi/gotvi-backend/internal/entity"
)

// receiptDoc mirrors the localized JSON the receipt prompt asks for.
type receiptDoc struct {
	Foods     []receiptDocItem `json:"храни"`
	Beverages []receiptDocItem `json:"напитки"`
	Total     float64          `json:"обща_сума"`
}

type receiptDocItem struct {
	Name     string   `json:"име"`
	Quantity *float64 `json:"количество"`
	Price    *float64 `json:"цена"`
	Unit     *string  `json:"мерна_единица"`
}

// ParseReceiptResponse parses the model's answer to a receipt prompt.
// The receipt path is strict JSON only: the document is validated against
// the receipt schema and unmarshalled, and any failure is terminal. There
// is deliberately no markdown or repair fallback here, unlike the recipe
// path (the asymmetry is observed behavior and pinned by tests).
//
// Localized fields are renamed field-for-field with no defaulting; a field
// the model omitted stays nil on the result.
func ParseReceiptResponse(modelText string) (entity.ProcessedReceipt, error) {
	raw := []byte(strings.TrimSpace(modelText))

	if err := ValidateJSONAgainstSchema(BuildReceiptJSONSchema(), raw); err != nil {
		return entity.ProcessedReceipt{}, common.NewAppError("RECEIPT_PARSE_ERROR", "receipt response rejected", common.WrapError(common.ErrRecipeParse, err.Error()))
	}

	var doc receiptDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return entity.ProcessedReceipt{}, common.NewAppError("RECEIPT_PARSE_ERROR", "receipt response not valid JSON", common.WrapError(common.ErrRecipeParse, err.Error()))
	}

	return entity.ProcessedReceipt{
		FoodItems:   mapItems(doc.Foods),
		Beverages:   mapItems(doc.Beverages),
		TotalAmount: doc.Total,
	}, nil
}

func mapItems(in []receiptDocItem) []entity.ReceiptItem {
	out := make([]entity.ReceiptItem, 0, len(in))
	for _, it := range in {
		out = append(out, entity.ReceiptItem{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
			Unit:     it.Unit,
		})
	}
	return out
}
