package server

import (
	"github.com/gotvi/gotvi-backend/internal/entity"
)

type ProcessReceiptRequest struct {
	UserID string            `json:"user_id" validate:"required,uuid"`
	Scan   entity.ScanResult `json:"scan" validate:"required"`
}

type InventoryItemRequest struct {
	Name     string  `json:"name" validate:"required"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
	Unit     string  `json:"unit"`
}

type GenerateRecipesRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	// Items overrides the stored inventory when present.
	Items []InventoryItemRequest `json:"items,omitempty" validate:"omitempty,dive"`
}

type AddInventoryRequest struct {
	UserID   string  `json:"user_id" validate:"required,uuid"`
	Name     string  `json:"name" validate:"required"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
	Unit     string  `json:"unit"`
}

type successEnvelope struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

type errorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
