package llm

import (
	"fmt"
	"strings"

	"github.com/gotvi/gotvi-backend/internal/entity"
)

// Markdown section headers the recipe prompt asks for and the fallback
// parser looks for.
const (
	IngredientsHeader = "Необходими продукти"
	StepsHeader       = "Начин на приготвяне"
)

// BuildReceiptPrompt embeds the normalized receipt text into an instruction
// asking for a categorized JSON object. Item names and amounts are
// interpolated verbatim; upstream owns their hygiene.
func BuildReceiptPrompt(normalizedText string) string {
	parts := []string{
		"Ти си асистент за обработка на касови бележки от хранителни магазини.",
		"Получаваш текста на касова бележка ред по ред. Върни САМО валиден JSON обект без допълнителен текст, коментари или markdown.",
		"JSON обектът трябва да има следната структура:",
		`{"храни": [{"име": "...", "количество": 1, "цена": 2.50, "мерна_единица": "бр"}], "напитки": [...], "обща_сума": 12.34}`,
		"Правила за категоризиране:",
		"- месо, млечни продукти, плодове, зеленчуци, хляб и готови храни отиват в \"храни\";",
		"- бира, вода, безалкохолни, сок и вино отиват в \"напитки\";",
		"- опаковки, торбички и нехранителни артикули НЕ се включват;",
		"- един артикул не може да бъде едновременно в двете категории;",
		"- ако има количество и единична цена, \"цена\" е количество × единична цена.",
		"Текст на касовата бележка:",
		normalizedText,
	}
	return strings.Join(parts, "\n")
}

// BuildRecipePrompt embeds the selected ingredients, one per line, into an
// instruction asking for exactly one traditional recipe in a fixed
// markdown-like shape (bold title, bold section headers, dashed ingredient
// lines, numbered steps).
func BuildRecipePrompt(ingredients []entity.InventoryItem) string {
	var b strings.Builder
	b.WriteString("Ти си опитен български готвач. Предложи ЕДНА традиционна рецепта, която използва САМО изброените продукти (сол, черен пипер и олио се подразбират).\n")
	b.WriteString("Налични продукти:\n")
	for _, item := range ingredients {
		fmt.Fprintf(&b, "- %s - %.4g %s\n", item.Name, item.Quantity, item.Unit)
	}
	b.WriteString("\nОтговори точно в следния формат:\n")
	b.WriteString("**Име на ястието**\n\n")
	b.WriteString("**" + IngredientsHeader + ":**\n")
	b.WriteString("- продукт (количество)\n\n")
	b.WriteString("**" + StepsHeader + ":**\n")
	b.WriteString("1. Първа стъпка\n")
	b.WriteString("2. Втора стъпка\n")
	return b.String()
}
