package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotvi/gotvi-backend/internal/common"
)

const markdownRecipe = `**Мусака**

**Необходими продукти:**
- картофи (1 кг)
- кайма (500 г)

**Начин на приготвяне:**
1. Обелете и нарежете картофите на кубчета.
2. Запържете каймата с лука и подправките.
`

func TestParseRecipeResponseMarkdown(t *testing.T) {
	got, err := ParseRecipeResponse(markdownRecipe)
	require.NoError(t, err)

	assert.Equal(t, "Мусака", got.Title)
	require.Len(t, got.Ingredients, 2)
	assert.Equal(t, "картофи", got.Ingredients[0].Name)
	assert.Equal(t, "1 кг", got.Ingredients[0].Amount)
	assert.Equal(t, "кайма", got.Ingredients[1].Name)
	assert.Equal(t, "500 г", got.Ingredients[1].Amount)

	require.Len(t, got.FullRecipe, 2)
	assert.Equal(t, "Обелете и нарежете картофите на кубчета.", got.FullRecipe[0])
	assert.Equal(t, "Запържете каймата с лука и подправките.", got.FullRecipe[1])

	// Fixed placeholders, not derived from the ingredients.
	assert.Equal(t, 5, got.Rating)
	require.NotNil(t, got.NutritionalInfo)
	assert.Equal(t, placeholderNutrition, *got.NutritionalInfo)
}

func TestParseRecipeResponseJSONDirect(t *testing.T) {
	raw := `{
		"title": "Таратор",
		"description": "Студена супа",
		"ingredients": [{"name": "краставици", "amount": "2 бр"}, {"name": "кисело мляко", "amount": "400 г"}],
		"steps": ["Настържете краставиците.", "Разбийте млякото и смесете."]
	}`

	got, err := ParseRecipeResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, "Таратор", got.Title)
	assert.Equal(t, "Студена супа", got.Description)
	assert.Len(t, got.Ingredients, 2)
	assert.Len(t, got.FullRecipe, 2)
	assert.Equal(t, 5, got.Rating)
}

func TestParseRecipeResponseModelReportedError(t *testing.T) {
	_, err := ParseRecipeResponse("Грешка: няма съставки")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrModelReported))

	var appErr *common.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "няма съставки", appErr.Message)
}

func TestParseRecipeResponseErrorPrefixSkipsParsing(t *testing.T) {
	// Even a parseable body after the sentinel must not be parsed.
	_, err := ParseRecipeResponse("Грешка: " + markdownRecipe)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrModelReported))
}

func TestParseRecipeResponseMissingTitle(t *testing.T) {
	_, err := ParseRecipeResponse("Нещо без формат и без заглавие")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrRecipeFormat))
}

func TestParseRecipeResponseHeaderOnlyIsNotATitle(t *testing.T) {
	_, err := ParseRecipeResponse("**Необходими продукти:**\n- нещо (1 бр)")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrRecipeFormat))
}

func TestParseRecipeResponsePartialExtractionAccepted(t *testing.T) {
	got, err := ParseRecipeResponse("**Шопска салата**\n\n**Необходими продукти:**\n- домати (3 бр)\n- сирене (200 г)\n")
	require.NoError(t, err)
	assert.Equal(t, "Шопска салата", got.Title)
	assert.Len(t, got.Ingredients, 2)
	assert.Empty(t, got.FullRecipe)
}

func TestParseRecipeResponseIngredientWithoutAmount(t *testing.T) {
	got, err := ParseRecipeResponse("**Печени картофи**\n\n**Необходими продукти:**\n- картофи\n\n**Начин на приготвяне:**\n1. Печете 40 минути.\n")
	require.NoError(t, err)
	require.Len(t, got.Ingredients, 1)
	assert.Equal(t, "картофи", got.Ingredients[0].Name)
	assert.Empty(t, got.Ingredients[0].Amount)
}

func TestParseRecipeResponseStepNumberingVariants(t *testing.T) {
	got, err := ParseRecipeResponse("**Боб яхния**\n\n**Начин на приготвяне:**\n1. Накиснете боба.\n2) Сварете го.\nДоовкусете.\n")
	require.NoError(t, err)
	require.Len(t, got.FullRecipe, 3)
	assert.Equal(t, "Накиснете боба.", got.FullRecipe[0])
	assert.Equal(t, "Сварете го.", got.FullRecipe[1])
	assert.Equal(t, "Доовкусете.", got.FullRecipe[2])
}
