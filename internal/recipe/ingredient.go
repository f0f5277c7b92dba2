package recipe

import "strings"

// unitVocabulary is the closed set of unit tokens the ingredient grammar
// recognizes. Matching is exact-token and case-insensitive, so ordinary
// words are never absorbed as units; "large" and friends are included
// because they act as measures in practice ("2 large eggs").
var unitVocabulary = map[string]bool{
	"cups": true, "cup": true,
	"tablespoons": true, "tablespoon": true, "tbsp": true,
	"teaspoons": true, "teaspoon": true, "tsp": true,
	"ounces": true, "ounce": true, "oz": true,
	"pounds": true, "pound": true, "lb": true, "lbs": true,
	"grams": true, "gram": true, "g": true,
	"kilograms": true, "kilogram": true, "kg": true,
	"milliliters": true, "milliliter": true, "ml": true,
	"liters": true, "liter": true, "l": true,
	"pinch": true, "dash": true,
	"cloves": true, "clove": true,
	"heads": true, "head": true,
	"slices": true, "slice": true,
	"pieces": true, "piece": true,
	"cans": true, "can": true,
	"packages": true, "package": true, "pkg": true,
	"bunches": true, "bunch": true,
	"sprigs": true, "sprig": true,
	"stalks": true, "stalk": true,
	"large": true, "medium": true, "small": true,
}

const optionalMarker = "(optional)"

// ParseIngredient parses one free-text ingredient line.
//
//	"2 cups flour"        -> {Quantity: 2, Unit: "cups", Name: "flour"}
//	"1/2 tsp salt"        -> {Quantity: 0.5, Unit: "tsp", Name: "salt"}
//	"butter, melted"      -> {Name: "butter", Preparation: "melted"}
//	"salt to taste"       -> {Name: "salt to taste"}
//
// It never fails: when the grammar does not match, the entire trimmed input
// becomes the name.
func ParseIngredient(text string) Ingredient {
	var ing Ingredient

	text = strings.TrimSpace(text)

	// "(optional)" anywhere in the line, case-insensitive. The marker and
	// its surrounding whitespace are stripped before the grammar runs.
	for {
		idx := strings.Index(strings.ToLower(text), optionalMarker)
		if idx < 0 {
			break
		}
		ing.IsOptional = true
		before := strings.TrimRight(text[:idx], " \t\n\r")
		after := strings.TrimLeft(text[idx+len(optionalMarker):], " \t\n\r")
		text = before + after
	}

	// Everything after the first comma is the preparation clause.
	if left, right, found := strings.Cut(text, ","); found {
		text = strings.TrimSpace(left)
		ing.Preparation = strings.TrimSpace(right)
	}

	quantity, unit, name, ok := splitQuantityUnitName(text)
	if !ok {
		ing.Name = text
		return ing
	}

	if quantity != "" {
		ing.Quantity = ParseQuantity(quantity)
	}
	ing.Unit = strings.ToLower(unit)
	ing.Name = strings.TrimSpace(name)
	return ing
}

// splitQuantityUnitName tokenizes an ingredient line into an optional
// leading quantity run, an optional unit from the fixed vocabulary, and a
// mandatory name.
//
// The grammar requires at least one space between the consumed prefix and
// the name, and the name must be non-empty. "2 cups" therefore parses as
// quantity 2 with name "cups" (nothing follows the would-be unit), and a
// bare word like "butter" does not match at all.
func splitQuantityUnitName(text string) (quantity, unit, name string, ok bool) {
	// Leading quantity run: digits, spaces, slashes, dots.
	end := 0
	for end < len(text) {
		c := text[end]
		if c >= '0' && c <= '9' || c == ' ' || c == '/' || c == '.' {
			end++
			continue
		}
		break
	}
	run := text[:end]
	rest := text[end:]

	// Try the next word as a unit token. The unit only counts when a
	// non-empty name follows it.
	word := rest
	if i := strings.IndexByte(rest, ' '); i >= 0 {
		word = rest[:i]
	}
	if word != "" && unitVocabulary[strings.ToLower(word)] {
		remainder := strings.TrimLeft(rest[len(word):], " ")
		if remainder != "" {
			return strings.TrimSpace(run), word, remainder, true
		}
	}

	// No unit. The name is whatever follows the quantity run, which must be
	// separated from it by whitespace.
	if strings.HasSuffix(run, " ") && rest != "" {
		return strings.TrimSpace(run), "", rest, true
	}
	return "", "", "", false
}

// ParseIngredientList parses a pipe-delimited ingredient list
// ("2 cups flour|1 tsp salt"), skipping blank items.
func ParseIngredientList(s string) []Ingredient {
	if s == "" {
		return nil
	}
	var out []Ingredient
	for _, item := range strings.Split(s, "|") {
		if strings.TrimSpace(item) == "" {
			continue
		}
		out = append(out, ParseIngredient(item))
	}
	return out
}

// FormatIngredient renders an ingredient back into its line form for CSV
// export: quantity, unit, name, ", preparation", " (optional)", each
// present-only.
func FormatIngredient(ing Ingredient) string {
	var parts []string
	if ing.Quantity != nil {
		parts = append(parts, formatFloat(*ing.Quantity))
	}
	if ing.Unit != "" {
		parts = append(parts, ing.Unit)
	}
	parts = append(parts, ing.Name)
	if ing.Preparation != "" {
		parts = append(parts, ", "+ing.Preparation)
	}
	if ing.IsOptional {
		parts = append(parts, " "+optionalMarker)
	}
	return strings.Join(parts, " ")
}
