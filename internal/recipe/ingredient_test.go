package recipe

import (
	"reflect"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestParseIngredient(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Ingredient
	}{
		{
			name:  "quantity unit name",
			input: "2 cups flour",
			want:  Ingredient{Quantity: floatPtr(2), Unit: "cups", Name: "flour"},
		},
		{
			name:  "fraction quantity",
			input: "1/2 tsp salt",
			want:  Ingredient{Quantity: floatPtr(0.5), Unit: "tsp", Name: "salt"},
		},
		{
			name:  "mixed number quantity",
			input: "1 1/2 cups sugar",
			want:  Ingredient{Quantity: floatPtr(1.5), Unit: "cups", Name: "sugar"},
		},
		{
			name:  "preparation after comma",
			input: "butter, melted",
			want:  Ingredient{Name: "butter", Preparation: "melted"},
		},
		{
			name:  "no grammar match keeps whole line",
			input: "salt to taste",
			want:  Ingredient{Name: "salt to taste"},
		},
		{
			name:  "optional marker",
			input: "2 cups chocolate chips (optional)",
			want:  Ingredient{Quantity: floatPtr(2), Unit: "cups", Name: "chocolate chips", IsOptional: true},
		},
		{
			name:  "optional marker mixed case",
			input: "1 tsp cinnamon (Optional)",
			want:  Ingredient{Quantity: floatPtr(1), Unit: "tsp", Name: "cinnamon", IsOptional: true},
		},
		{
			name:  "size word acts as unit",
			input: "2 large eggs",
			want:  Ingredient{Quantity: floatPtr(2), Unit: "large", Name: "eggs"},
		},
		{
			name:  "unit without quantity",
			input: "pinch nutmeg",
			want:  Ingredient{Unit: "pinch", Name: "nutmeg"},
		},
		{
			name:  "uppercase unit lowered",
			input: "2 Cups flour",
			want:  Ingredient{Quantity: floatPtr(2), Unit: "cups", Name: "flour"},
		},
		{
			name:  "quantity without unit",
			input: "2 eggs",
			want:  Ingredient{Quantity: floatPtr(2), Name: "eggs"},
		},
		{
			name:  "quantity and preparation",
			input: "1/4 red onion, thinly sliced",
			want:  Ingredient{Quantity: floatPtr(0.25), Name: "red onion", Preparation: "thinly sliced"},
		},
		{
			name:  "trailing unit word becomes the name",
			input: "2 cups",
			want:  Ingredient{Quantity: floatPtr(2), Name: "cups"},
		},
		{
			name:  "unit prefix inside a longer word is not a unit",
			input: "2 cupcake liners",
			want:  Ingredient{Quantity: floatPtr(2), Name: "cupcake liners"},
		},
		{
			name:  "bare word",
			input: "butter",
			want:  Ingredient{Name: "butter"},
		},
		{
			name:  "unparseable quantity run degrades to name only",
			input: "2cupsful sugar",
			want:  Ingredient{Name: "2cupsful sugar"},
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  1 lb ground beef  ",
			want:  Ingredient{Quantity: floatPtr(1), Unit: "lb", Name: "ground beef"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseIngredient(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseIngredient(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseIngredientList(t *testing.T) {
	got := ParseIngredientList("2 cups flour|1 tsp salt||  |1/2 cup butter, melted")
	if len(got) != 3 {
		t.Fatalf("got %d ingredients, want 3 (blank items skipped)", len(got))
	}
	if got[0].Name != "flour" || got[1].Name != "salt" || got[2].Name != "butter" {
		t.Errorf("unexpected names: %q %q %q", got[0].Name, got[1].Name, got[2].Name)
	}
	if got[2].Preparation != "melted" {
		t.Errorf("got preparation %q, want %q", got[2].Preparation, "melted")
	}

	if got := ParseIngredientList(""); got != nil {
		t.Errorf("empty list = %v, want nil", got)
	}
}

func TestFormatIngredient(t *testing.T) {
	tests := []struct {
		name string
		ing  Ingredient
		want string
	}{
		{
			name: "full line",
			ing:  Ingredient{Quantity: floatPtr(2), Unit: "cups", Name: "flour"},
			want: "2 cups flour",
		},
		{
			name: "fraction quantity",
			ing:  Ingredient{Quantity: floatPtr(0.5), Unit: "tsp", Name: "salt"},
			want: "0.5 tsp salt",
		},
		{
			name: "preparation and optional",
			ing:  Ingredient{Quantity: floatPtr(1), Unit: "cup", Name: "butter", Preparation: "softened", IsOptional: true},
			want: "1 cup butter , softened  (optional)",
		},
		{
			name: "name only",
			ing:  Ingredient{Name: "salt to taste"},
			want: "salt to taste",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatIngredient(tt.ing); got != tt.want {
				t.Errorf("FormatIngredient(%+v) = %q, want %q", tt.ing, got, tt.want)
			}
		})
	}
}

// Formatting then reparsing an ingredient must yield the same structure.
func TestFormatIngredientRoundTrip(t *testing.T) {
	inputs := []string{
		"2 cups flour",
		"1/2 tsp salt",
		"1 1/2 cups sugar",
		"butter, melted",
		"salt to taste",
		"2 cups chocolate chips (optional)",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first := ParseIngredient(input)
			second := ParseIngredient(FormatIngredient(first))
			if !reflect.DeepEqual(first, second) {
				t.Errorf("round trip changed %q: %+v -> %+v", input, first, second)
			}
		})
	}
}
