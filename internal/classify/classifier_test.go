package classify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotvi/gotvi-backend/constants"
	"github.com/gotvi/gotvi-backend/internal/entity"
)

func items(names ...string) []entity.InventoryItem {
	out := make([]entity.InventoryItem, 0, len(names))
	for _, n := range names {
		out = append(out, entity.InventoryItem{Name: n, Quantity: 1, Unit: "бр"})
	}
	return out
}

func names(items []entity.InventoryItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func TestIsCookablePositiveCategories(t *testing.T) {
	c := New(nil)
	for _, name := range []string{
		"Пилешко филе",
		"ориз басмати",
		"Домати Розови",
		"Ябълки Грени Смит",
		"Кашкавал от краве мляко",
		"Червен пипер млян",
	} {
		assert.True(t, c.IsCookable(name), name)
	}
}

func TestIsCookableRejectsExclusions(t *testing.T) {
	c := New(nil)
	for _, name := range []string{
		"Ред Бул 250мл",
		"Бира Загорка",
		"Чипс пикантен",
		"Цигари",
		"Прах за пране",
		"Торбичка",
	} {
		assert.False(t, c.IsCookable(name), name)
	}
}

func TestIsCookableForbiddenBeatsFoodKeyword(t *testing.T) {
	c := New(nil)
	// Contains a protein keyword and a drink keyword: the drink check wins.
	assert.False(t, c.IsCookable("пилешко с ред бул марината"))
	// Toothpaste contains the carb keyword "паста": forbidden wins.
	assert.False(t, c.IsCookable("Паста за зъби"))
	// Breadsticks contain the spice keyword "сол": the snack check wins.
	assert.False(t, c.IsCookable("Солети"))
}

func TestIsCookableUnknownName(t *testing.T) {
	c := New(nil)
	assert.False(t, c.IsCookable("крушка LED 9W"))
}

func TestMatchPrecedence(t *testing.T) {
	c := New(nil)

	cat, ok := c.Match("пилешко с ред бул марината")
	require.True(t, ok)
	assert.Equal(t, constants.Drinks, cat)

	cat, ok = c.Match("Кайма смес")
	require.True(t, ok)
	assert.Equal(t, constants.Proteins, cat)

	_, ok = c.Match("крушка LED 9W")
	assert.False(t, ok)
}

func TestSelectForRecipeBucketCaps(t *testing.T) {
	c := New(nil)
	in := items(
		"Пилешко филе", "Кайма", "Телешко",
		"Ориз", "Картофи",
		"Домати", "Краставици", "Лук", "Моркови",
		"Кашкавал", "Яйца",
		"Кисело мляко",
	)

	selected := c.SelectForRecipe(in)
	assert.LessOrEqual(t, len(selected), MaxSelected)
	for _, item := range selected {
		assert.True(t, c.IsCookable(item.Name), item.Name)
	}

	got := names(selected)
	// 2 proteins, 1 carb, 3 vegetables, 2 other, insertion order per bucket.
	assert.Equal(t, []string{
		"Пилешко филе", "Кайма",
		"Ориз",
		"Домати", "Краставици", "Лук",
		"Кашкавал", "Кисело мляко",
	}, got)
}

func TestSelectForRecipeNoBackfilling(t *testing.T) {
	c := New(nil)
	// Plenty of vegetables, nothing else: only 3 come back.
	selected := c.SelectForRecipe(items("Домати", "Краставици", "Лук", "Моркови", "Чушки"))
	assert.Equal(t, []string{"Домати", "Краставици", "Лук"}, names(selected))
}

func TestSelectForRecipeDropsNonCookable(t *testing.T) {
	c := New(nil)
	selected := c.SelectForRecipe(items("Бира Загорка", "Чипс", "Пилешко филе", "Цигари"))
	assert.Equal(t, []string{"Пилешко филе"}, names(selected))
}

func TestSelectForRecipeEmptyInput(t *testing.T) {
	c := New(nil)
	assert.Empty(t, c.SelectForRecipe(nil))
	assert.Empty(t, c.SelectForRecipe(items()))
}

func TestSelectForRecipeBounded(t *testing.T) {
	c := New(nil)
	var in []entity.InventoryItem
	for i := 0; i < 20; i++ {
		in = append(in,
			entity.InventoryItem{Name: fmt.Sprintf("Пилешко %d", i)},
			entity.InventoryItem{Name: fmt.Sprintf("Ориз %d", i)},
			entity.InventoryItem{Name: fmt.Sprintf("Домати %d", i)},
			entity.InventoryItem{Name: fmt.Sprintf("Сирене %d", i)},
		)
	}
	selected := c.SelectForRecipe(in)
	assert.Len(t, selected, MaxSelected)
}
