package entity

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem is one item in a user's pantry. The pipeline reads a copy
// and never mutates it.
type InventoryItem struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	Quantity float64   `json:"quantity"`
	Unit     string    `json:"unit"`
	AddedAt  time.Time `json:"added_at"`
}
