package constants

// Category is a bucket in the grocery taxonomy.
type Category string

const (
	Proteins          Category = "proteins"
	Carbs             Category = "carbs"
	Vegetables        Category = "vegetables"
	Fruits            Category = "fruits"
	Dairy             Category = "dairy"
	Spices            Category = "spices"
	Drinks            Category = "drinks"
	Snacks            Category = "snacks"
	StrictlyForbidden Category = "strictly_forbidden"
)

// ExclusionOrder is the precedence chain for non-cookable checks.
// A match here wins over any positive food-category match.
var ExclusionOrder = []Category{StrictlyForbidden, Drinks, Snacks}

// CookableOrder lists the positive food categories. Cookability is an OR across
// all of them; the first three double as selection buckets for recipe generation.
var CookableOrder = []Category{Proteins, Carbs, Vegetables, Fruits, Dairy, Spices}

// Keywords maps each category to its lowercase substring keywords.
// Matching is naive substring containment over the lowercased item name;
// the lists are tuned for Bulgarian store receipts and inventory entries.
var Keywords = map[Category][]string{
	Proteins: {
		"месо", "пилешко", "пиле", "свинско", "телешко", "агнешко", "пуешко",
		"кайма", "кюфте", "кебапче", "наденица", "луканка", "суджук", "шунка",
		"бекон", "филе", "риба", "сьомга", "скумрия", "риба тон", "яйца", "яйце",
		"леща", "боб", "нахут",
	},
	Carbs: {
		"ориз", "картоф", "макарон", "спагети", "паста", "хляб", "питка",
		"брашно", "булгур", "киноа", "овес", "овесени", "юфка", "кус-кус",
	},
	Vegetables: {
		"домат", "краставиц", "лук", "чесън", "морков", "пипер", "чушк",
		"тиквичк", "патладжан", "зеле", "спанак", "брокол", "карфиол",
		"гъби", "целина", "праз", "грах", "маруля", "салата", "тиква",
	},
	Fruits: {
		"ябълк", "банан", "портокал", "лимон", "ягод", "малин", "грозде",
		"праскова", "круша", "диня", "пъпеш", "киви", "череш", "боровинк",
	},
	Dairy: {
		"мляко", "сирене", "кашкавал", "йогурт", "кисело мляко", "извара",
		"масло", "сметана", "моцарела", "пармезан",
	},
	Spices: {
		"сол", "черен пипер", "червен пипер", "подправк", "канела", "куркума",
		"босилек", "риган", "мащерка", "кимион", "дафинов", "магданоз",
		"копър", "ванилия", "оцет", "олио", "зехтин", "захар",
	},
	Drinks: {
		"вода", "сок", "бира", "вино", "кола", "фанта", "спрайт", "айрян",
		"кафе", "чай", "ракия", "уиски", "водка", "ред бул", "енергийна напитка",
		"лимонада", "нектар", "газирана",
	},
	Snacks: {
		"чипс", "бисквит", "вафла", "шоколад", "бонбон", "снакс", "крекер",
		"солети", "попкорн", "сладолед", "торта", "десерт", "кроасан",
	},
	StrictlyForbidden: {
		"цигари", "тютюн", "препарат", "белина", "шампоан", "сапун",
		"паста за зъби", "прах за пране", "омекотител", "торбичк", "плик",
		"салфетк", "тоалетна", "батери", "лекарств", "аспирин", "фолио",
	},
}
