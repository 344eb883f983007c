// Package classify decides which grocery items are usable for cooking and
// selects a bounded ingredient subset for recipe generation. All decisions
// are driven by the static taxonomy in the constants package, evaluated as a
// first-match-wins rule chain: forbidden > drinks > snacks > positive match.
package classify

import (
	"log/slog"
	"strings"

	"github.com/gotvi/gotvi-backend/constants"
	"github.com/gotvi/gotvi-backend/internal/entity"
)

// Bucket caps for recipe selection, applied in this order.
const (
	maxProteins   = 2
	maxCarbs      = 1
	maxVegetables = 3
	maxOther      = 2

	// MaxSelected is the upper bound SelectForRecipe can ever return.
	MaxSelected = maxProteins + maxCarbs + maxVegetables + maxOther
)

// Classifier evaluates item names against the grocery taxonomy.
type Classifier struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{logger: logger}
}

// IsCookable reports whether an item can go into a recipe. Exclusion
// categories take precedence over any positive match: a name that contains
// both a protein keyword and a drink keyword is not cookable.
func (c *Classifier) IsCookable(name string) bool {
	lower := strings.ToLower(name)
	for _, cat := range constants.ExclusionOrder {
		if matchesAny(lower, constants.Keywords[cat]) {
			return false
		}
	}
	for _, cat := range constants.CookableOrder {
		if matchesAny(lower, constants.Keywords[cat]) {
			return true
		}
	}
	return false
}

// Match returns the winning category for a name, following the same
// precedence chain as IsCookable. ok is false when nothing matches.
func (c *Classifier) Match(name string) (constants.Category, bool) {
	lower := strings.ToLower(name)
	for _, cat := range constants.ExclusionOrder {
		if matchesAny(lower, constants.Keywords[cat]) {
			return cat, true
		}
	}
	for _, cat := range constants.CookableOrder {
		if matchesAny(lower, constants.Keywords[cat]) {
			return cat, true
		}
	}
	return "", false
}

// SelectForRecipe picks at most MaxSelected cookable items: up to 2 proteins,
// 1 carb, 3 vegetables and 2 others, in the insertion order of the input.
// Under-populated buckets are not backfilled from other buckets. An empty
// input yields an empty selection without error.
func (c *Classifier) SelectForRecipe(items []entity.InventoryItem) []entity.InventoryItem {
	var proteins, carbs, vegetables, other []entity.InventoryItem

	for _, item := range items {
		if !c.IsCookable(item.Name) {
			continue
		}
		lower := strings.ToLower(item.Name)
		switch {
		case matchesAny(lower, constants.Keywords[constants.Proteins]):
			proteins = append(proteins, item)
		case matchesAny(lower, constants.Keywords[constants.Carbs]):
			carbs = append(carbs, item)
		case matchesAny(lower, constants.Keywords[constants.Vegetables]):
			vegetables = append(vegetables, item)
		default:
			other = append(other, item)
		}
	}

	selected := make([]entity.InventoryItem, 0, MaxSelected)
	selected = append(selected, take(proteins, maxProteins)...)
	selected = append(selected, take(carbs, maxCarbs)...)
	selected = append(selected, take(vegetables, maxVegetables)...)
	selected = append(selected, take(other, maxOther)...)

	// Safety filter: re-check the selection. A correct first pass already
	// approved every item, so this is idempotent and never drops anything.
	final := selected[:0]
	for _, item := range selected {
		if c.IsCookable(item.Name) {
			final = append(final, item)
		}
	}

	c.logger.Debug("classify.select",
		"input", len(items),
		"proteins", len(proteins),
		"carbs", len(carbs),
		"vegetables", len(vegetables),
		"other", len(other),
		"selected", len(final),
	)
	return final
}

func take(items []entity.InventoryItem, n int) []entity.InventoryItem {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func matchesAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
