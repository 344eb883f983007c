package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/gotvi/gotvi-backend/internal/common"
	"github.com/gotvi/gotvi-backend/internal/entity"
)

// Fixed placeholder values stamped onto every successfully parsed recipe.
// These are current product behavior, not derived from the ingredients.
const placeholderRating = 5

var placeholderNutrition = entity.NutritionalInfo{
	Calories: 350,
	Protein:  20,
	Carbs:    40,
	Fat:      12,
}

var (
	reBold       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reStepPrefix = regexp.MustCompile(`^\d+[.)]\s*`)
)

// recipeDoc covers the case where the model ignores the markdown
// instruction and returns JSON directly.
type recipeDoc struct {
	Title       string                    `json:"title"`
	Description string                    `json:"description"`
	Ingredients []entity.RecipeIngredient `json:"ingredients"`
	Steps       []string                  `json:"steps"`
}

// ParseRecipeResponse parses the model's answer to a recipe prompt.
// Strategy order:
//  1. a "Грешка:" prefix short-circuits both parse attempts;
//  2. strict JSON;
//  3. structural extraction from the markdown template.
//
// An empty title is fatal; missing ingredients or steps are accepted as-is.
func ParseRecipeResponse(modelText string) (entity.GeneratedRecipe, error) {
	text := strings.TrimSpace(modelText)

	if strings.HasPrefix(text, ModelErrorPrefix) {
		msg := strings.TrimSpace(strings.TrimPrefix(text, ModelErrorPrefix))
		return entity.GeneratedRecipe{}, common.NewAppError("MODEL_REPORTED_ERROR", msg, common.ErrModelReported)
	}

	var doc recipeDoc
	if err := json.Unmarshal([]byte(text), &doc); err == nil {
		return buildRecipe(doc.Title, doc.Description, doc.Ingredients, doc.Steps)
	}

	title, ingredients, steps := extractMarkdownRecipe(text)
	return buildRecipe(title, "", ingredients, steps)
}

func buildRecipe(title, description string, ingredients []entity.RecipeIngredient, steps []string) (entity.GeneratedRecipe, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return entity.GeneratedRecipe{}, common.NewAppError("RECIPE_FORMAT_ERROR", "recipe has no title", common.ErrRecipeFormat)
	}
	if description == "" {
		description = "Традиционна рецепта с наличните продукти."
	}
	if ingredients == nil {
		ingredients = []entity.RecipeIngredient{}
	}
	if steps == nil {
		steps = []string{}
	}
	nutrition := placeholderNutrition
	return entity.GeneratedRecipe{
		Title:           title,
		Description:     description,
		FullRecipe:      steps,
		Rating:          placeholderRating,
		Ingredients:     ingredients,
		NutritionalInfo: &nutrition,
	}, nil
}

// extractMarkdownRecipe pulls title, ingredients and steps out of the fixed
// markdown shape the recipe prompt asks for. Partial extraction is fine:
// a missing section yields an empty slice, not an error.
func extractMarkdownRecipe(text string) (string, []entity.RecipeIngredient, []string) {
	var title string
	if m := reBold.FindStringSubmatch(text); m != nil {
		title = strings.TrimSpace(m[1])
	}
	// Header text can end up as the first bold span when the model skips
	// the dish name; that counts as no title.
	if strings.Contains(title, IngredientsHeader) || strings.Contains(title, StepsHeader) {
		title = ""
	}

	var ingredients []entity.RecipeIngredient
	if section, ok := sectionBetween(text, IngredientsHeader, "Начин"); ok {
		for _, line := range strings.Split(section, "\n") {
			line = strings.TrimSpace(line)
			if !strings.HasPrefix(line, "-") {
				continue
			}
			ingredients = append(ingredients, splitIngredientLine(strings.TrimSpace(strings.TrimPrefix(line, "-"))))
		}
	}

	var steps []string
	if idx := strings.Index(text, StepsHeader); idx >= 0 {
		rest := text[idx+len(StepsHeader):]
		if nl := strings.Index(rest, "\n"); nl >= 0 {
			rest = rest[nl+1:]
		} else {
			rest = ""
		}
		for _, line := range strings.Split(rest, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			steps = append(steps, reStepPrefix.ReplaceAllString(line, ""))
		}
	}

	return title, ingredients, steps
}

// sectionBetween returns the text between the line containing "from" and the
// next occurrence of "to" after it.
func sectionBetween(text, from, to string) (string, bool) {
	start := strings.Index(text, from)
	if start < 0 {
		return "", false
	}
	rest := text[start+len(from):]
	if end := strings.Index(rest, to); end >= 0 {
		rest = rest[:end]
	}
	return rest, true
}

// splitIngredientLine splits "- item (amount)" into name and amount.
// The amount is empty when no parentheses are present.
func splitIngredientLine(line string) entity.RecipeIngredient {
	open := strings.Index(line, "(")
	if open < 0 {
		return entity.RecipeIngredient{Name: strings.TrimSpace(line)}
	}
	name := strings.TrimSpace(line[:open])
	amount := line[open+1:]
	if end := strings.Index(amount, ")"); end >= 0 {
		amount = amount[:end]
	}
	return entity.RecipeIngredient{Name: name, Amount: strings.TrimSpace(amount)}
}
