package entity

// RecipeIngredient is one ingredient line of a generated recipe.
type RecipeIngredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// NutritionalInfo carries per-serving estimates for a recipe.
type NutritionalInfo struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// GeneratedRecipe is a recipe recovered from model output.
type GeneratedRecipe struct {
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	FullRecipe      []string           `json:"full_recipe"` // ordered steps
	Rating          int                `json:"rating"`
	Ingredients     []RecipeIngredient `json:"ingredients"`
	NutritionalInfo *NutritionalInfo   `json:"nutritional_info,omitempty"`
}
