package recipe

import (
	"reflect"
	"strings"
	"testing"
)

const csvHeader = "title,category,description,prep_time_minutes,cook_time_minutes,rest_time_minutes,servings,servings_unit,ingredients,instructions,notes,source\n"

func TestDecodeCSVFlatRecipe(t *testing.T) {
	input := csvHeader +
		`Pancakes,Breakfast,Fluffy pancakes,10,15,,4,servings,"2 cups flour|1 tsp salt|2 large eggs","Mix and fry.",Serve warm.,Grandma` + "\n"

	recipes, errs := DecodeCSV(strings.NewReader(input))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(recipes) != 1 {
		t.Fatalf("got %d recipes, want 1", len(recipes))
	}

	rec := recipes[0]
	if rec.Title != "Pancakes" || rec.Category != "Breakfast" {
		t.Errorf("title/category = %q/%q", rec.Title, rec.Category)
	}
	if rec.HasSections {
		t.Error("flat recipe flagged as sectioned")
	}
	if rec.PrepTimeMinutes == nil || *rec.PrepTimeMinutes != 10 {
		t.Errorf("prep time = %v, want 10", rec.PrepTimeMinutes)
	}
	if rec.RestTimeMinutes != nil {
		t.Errorf("rest time = %v, want absent", rec.RestTimeMinutes)
	}
	if len(rec.Ingredients) != 3 {
		t.Fatalf("got %d ingredients, want 3", len(rec.Ingredients))
	}
	if rec.Ingredients[2].Unit != "large" || rec.Ingredients[2].Name != "eggs" {
		t.Errorf("third ingredient = %+v", rec.Ingredients[2])
	}
	if rec.Instructions != "Mix and fry." {
		t.Errorf("instructions = %q", rec.Instructions)
	}
}

func TestDecodeCSVSectionedRecipe(t *testing.T) {
	input := csvHeader +
		`Cannoli,Desserts,,30,20,,12,shells,"[Shell]2 cups flour|1/2 cup butter[Filling]2 cups ricotta","[Shell]Roll and fry.[Filling]Whip with sugar.",,` + "\n"

	recipes, errs := DecodeCSV(strings.NewReader(input))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(recipes) != 1 {
		t.Fatalf("got %d recipes, want 1", len(recipes))
	}

	rec := recipes[0]
	if !rec.HasSections {
		t.Fatal("sectioned recipe not flagged")
	}
	if len(rec.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(rec.Sections))
	}
	if rec.Sections[0].Name != "Shell" || rec.Sections[1].Name != "Filling" {
		t.Errorf("section order = %q, %q", rec.Sections[0].Name, rec.Sections[1].Name)
	}
	if len(rec.Sections[0].Ingredients) != 2 || len(rec.Sections[1].Ingredients) != 1 {
		t.Errorf("ingredient counts = %d, %d; want 2, 1",
			len(rec.Sections[0].Ingredients), len(rec.Sections[1].Ingredients))
	}
}

func TestDecodeCSVRowErrors(t *testing.T) {
	input := csvHeader +
		`,Breakfast,,,,,,,,"Mix.",,` + "\n" + // row 2: no title
		`Toast,,,,,,,,bread,"Toast it.",,` + "\n" + // row 3: valid
		`Mystery,,,,,,,,flour,,,` + "\n" + // row 4: no instructions
		`Shells,,,,,,,,"[Shell]2 cups flour","plain text",,` + "\n" // row 5: sectioned, none survive

	recipes, errs := DecodeCSV(strings.NewReader(input))

	if len(recipes) != 1 || recipes[0].Title != "Toast" {
		t.Fatalf("recipes = %+v, want only Toast", recipes)
	}
	if len(errs) != 3 {
		t.Fatalf("got %d errors, want 3: %v", len(errs), errs)
	}

	wantRows := []int{2, 4, 5}
	wantMsgs := []string{
		"Title is required",
		"Instructions are required",
		"Sectioned recipe must have at least one section with instructions",
	}
	for i, e := range errs {
		if e.Row != wantRows[i] {
			t.Errorf("error %d row = %d, want %d", i, e.Row, wantRows[i])
		}
		if e.Message != wantMsgs[i] {
			t.Errorf("error %d message = %q, want %q", i, e.Message, wantMsgs[i])
		}
	}
}

func TestDecodeCSVLenientNumericFields(t *testing.T) {
	input := csvHeader +
		`Stew,,,"soon",NaN,,many,bowls,beef,"Simmer.",,` + "\n"

	recipes, errs := DecodeCSV(strings.NewReader(input))
	if len(errs) != 0 {
		t.Fatalf("numeric garbage must not error: %v", errs)
	}
	rec := recipes[0]
	if rec.PrepTimeMinutes != nil || rec.CookTimeMinutes != nil || rec.Servings != nil {
		t.Errorf("numeric fields = %v/%v/%v, want all absent",
			rec.PrepTimeMinutes, rec.CookTimeMinutes, rec.Servings)
	}
	if rec.ServingsUnit != "bowls" {
		t.Errorf("servings unit = %q, want bowls", rec.ServingsUnit)
	}
}

func TestDecodeCSVDefaultServingsUnit(t *testing.T) {
	input := csvHeader + `Toast,,,,,,,,bread,"Toast it.",,` + "\n"
	recipes, _ := DecodeCSV(strings.NewReader(input))
	if len(recipes) != 1 || recipes[0].ServingsUnit != "servings" {
		t.Fatalf("servings unit defaulting failed: %+v", recipes)
	}
}

func TestDecodeCSVEmptyInput(t *testing.T) {
	recipes, errs := DecodeCSV(strings.NewReader(""))
	if recipes != nil || errs != nil {
		t.Errorf("empty input = %v, %v; want nil, nil", recipes, errs)
	}
}

func TestEncodeDecodeRoundTripFlat(t *testing.T) {
	input := csvHeader +
		`Pancakes,Breakfast,Fluffy,10,15,5,4,servings,"2 cups flour|1/2 tsp salt|butter, melted|salt to taste","Mix well.` + "\n" + `Fry until golden.",Serve warm.,Grandma` + "\n"

	first, errs := DecodeCSV(strings.NewReader(input))
	if len(errs) != 0 {
		t.Fatalf("decode errors: %v", errs)
	}

	var out strings.Builder
	if err := EncodeCSV(&out, first); err != nil {
		t.Fatalf("encode: %v", err)
	}

	second, errs := DecodeCSV(strings.NewReader(out.String()))
	if len(errs) != 0 {
		t.Fatalf("re-decode errors: %v", errs)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("round trip changed recipe:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestEncodeDecodeRoundTripSectioned(t *testing.T) {
	input := csvHeader +
		`Cannoli,Desserts,,30,20,,12,shells,"[Shell]2 cups flour|1/2 cup butter[Filling]2 cups ricotta","[Shell]Roll and fry.[Filling]Whip with sugar.",,` + "\n"

	first, errs := DecodeCSV(strings.NewReader(input))
	if len(errs) != 0 {
		t.Fatalf("decode errors: %v", errs)
	}

	var out strings.Builder
	if err := EncodeCSV(&out, first); err != nil {
		t.Fatalf("encode: %v", err)
	}

	second, errs := DecodeCSV(strings.NewReader(out.String()))
	if len(errs) != 0 {
		t.Fatalf("re-decode errors: %v", errs)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("round trip changed recipe:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestEncodeCSVAlwaysEmitsRestTimeColumn(t *testing.T) {
	var out strings.Builder
	err := EncodeCSV(&out, []Recipe{{
		Title:        "Toast",
		ServingsUnit: "servings",
		Ingredients:  ParseIngredientList("bread"),
		Instructions: "Toast it.",
	}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	header := strings.SplitN(out.String(), "\n", 2)[0]
	if !strings.Contains(header, "rest_time_minutes") {
		t.Errorf("header %q missing rest_time_minutes", header)
	}
}

func TestTemplateCSVDecodes(t *testing.T) {
	recipes, errs := DecodeCSV(strings.NewReader(TemplateCSV()))
	if len(errs) != 0 {
		t.Fatalf("template has errors: %v", errs)
	}
	if len(recipes) != 2 {
		t.Fatalf("template has %d recipes, want 2", len(recipes))
	}
	if recipes[0].Title != "Chocolate Chip Cookies" {
		t.Errorf("first template recipe = %q", recipes[0].Title)
	}
}
