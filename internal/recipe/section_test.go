package recipe

import "testing"

func TestHasSectionMarkers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "marker present", input: "[Shell]2 cups flour", want: true},
		{name: "marker mid text", input: "flour [Filling] ricotta", want: true},
		{name: "no marker", input: "2 cups flour|1 tsp salt", want: false},
		{name: "empty brackets are literal", input: "add [] cups", want: false},
		{name: "unclosed bracket", input: "[Shell flour", want: false},
		{name: "marker split across lines", input: "[Shell\n]flour", want: false},
		{name: "empty string", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasSectionMarkers(tt.input); got != tt.want {
				t.Errorf("HasSectionMarkers(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitSections(t *testing.T) {
	ingredients := "[Shell]2 cups flour|1/2 cup butter[Filling]2 cups ricotta|1 cup sugar"
	instructions := "[Shell]Mix and press into pan.[Filling]Blend until smooth."

	sections := SplitSections(ingredients, instructions)
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}

	if sections[0].Name != "Shell" || sections[1].Name != "Filling" {
		t.Errorf("section order = %q, %q; want Shell, Filling", sections[0].Name, sections[1].Name)
	}
	if len(sections[0].Ingredients) != 2 {
		t.Errorf("Shell has %d ingredients, want 2", len(sections[0].Ingredients))
	}
	if sections[0].Instructions != "Mix and press into pan." {
		t.Errorf("Shell instructions = %q", sections[0].Instructions)
	}
	if got := sections[1].Ingredients[0].Name; got != "ricotta" {
		t.Errorf("Filling first ingredient = %q, want ricotta", got)
	}
}

// A section that appears only in the ingredients blob has no instructions
// and is silently dropped from the result.
func TestSplitSectionsDropsInstructionlessSection(t *testing.T) {
	ingredients := "[Shell]2 cups flour[Garnish]1 sprig mint"
	instructions := "[Shell]Mix and press into pan."

	sections := SplitSections(ingredients, instructions)
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}
	if sections[0].Name != "Shell" {
		t.Errorf("surviving section = %q, want Shell", sections[0].Name)
	}
}

// A section named only in the instructions blob survives with an empty
// ingredient list.
func TestSplitSectionsInstructionsOnly(t *testing.T) {
	sections := SplitSections("", "[Assembly]Layer and chill overnight.")
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}
	if sections[0].Name != "Assembly" || len(sections[0].Ingredients) != 0 {
		t.Errorf("got %+v, want ingredientless Assembly section", sections[0])
	}
}

func TestSplitSectionsOrderAcrossPasses(t *testing.T) {
	// Sauce is first seen in the ingredients pass, Assembly only in the
	// instructions pass; first-seen order must hold across both.
	ingredients := "[Sauce]1 can tomatoes"
	instructions := "[Assembly]Layer it all.[Sauce]Simmer gently."

	sections := SplitSections(ingredients, instructions)
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}
	if sections[0].Name != "Sauce" || sections[1].Name != "Assembly" {
		t.Errorf("section order = %q, %q; want Sauce, Assembly", sections[0].Name, sections[1].Name)
	}
}

func TestSplitSectionsTrimsNamesAndInstructions(t *testing.T) {
	sections := SplitSections("[ Shell ]2 cups flour", "[ Shell ]  Mix well.\n")
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}
	if sections[0].Name != "Shell" {
		t.Errorf("name = %q, want trimmed Shell", sections[0].Name)
	}
	if sections[0].Instructions != "Mix well." {
		t.Errorf("instructions = %q, want trimmed", sections[0].Instructions)
	}
}
