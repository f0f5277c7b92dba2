package recipe

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Columns is the CSV schema shared by import, export, and the template.
// The order is fixed; export always emits every column even when all values
// in it are blank.
var Columns = []string{
	"title",
	"category",
	"description",
	"prep_time_minutes",
	"cook_time_minutes",
	"rest_time_minutes",
	"servings",
	"servings_unit",
	"ingredients",
	"instructions",
	"notes",
	"source",
}

// headerIndex maps lowercased column names to their position in the CSV
// header row.
type headerIndex map[string]int

func makeHeaderIndex(header []string) headerIndex {
	idx := make(headerIndex, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

// field returns the named column of a record, or "" when the column is
// missing from the header or the record is short.
func (idx headerIndex) field(record []string, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

// DecodeCSV parses recipe rows from CSV content.
//
// The header is physical row 1; data rows are numbered from 2 and every
// returned RowError carries the number of the row it belongs to. A bad row
// is reported and skipped, never retried, and never aborts the batch: the
// caller always receives all successfully parsed recipes together with all
// row errors.
func DecodeCSV(r io.Reader) ([]Recipe, []RowError) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		// Empty or unreadable input decodes to nothing.
		return nil, nil
	}
	idx := makeHeaderIndex(header)

	var recipes []Recipe
	var rowErrs []RowError

	for rowNum := 2; ; rowNum++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Message: err.Error()})
			continue
		}

		rec, err := decodeRow(idx, record)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Message: err.Error()})
			continue
		}
		recipes = append(recipes, rec)
	}

	return recipes, rowErrs
}

// decodeRow converts one CSV record into a Recipe. It returns an error for
// row-level validation failures; field-level problems (bad numbers, odd
// quantities) degrade to absent values instead.
func decodeRow(idx headerIndex, record []string) (Recipe, error) {
	title := strings.TrimSpace(idx.field(record, "title"))
	if title == "" {
		return Recipe{}, errors.New("Title is required")
	}

	ingredientsStr := idx.field(record, "ingredients")
	instructionsStr := strings.TrimSpace(idx.field(record, "instructions"))

	rec := Recipe{
		Title:           title,
		Category:        strings.TrimSpace(idx.field(record, "category")),
		Description:     strings.TrimSpace(idx.field(record, "description")),
		PrepTimeMinutes: ParseInt(idx.field(record, "prep_time_minutes")),
		CookTimeMinutes: ParseInt(idx.field(record, "cook_time_minutes")),
		RestTimeMinutes: ParseInt(idx.field(record, "rest_time_minutes")),
		Servings:        ParseInt(idx.field(record, "servings")),
		ServingsUnit:    strings.TrimSpace(idx.field(record, "servings_unit")),
		Notes:           strings.TrimSpace(idx.field(record, "notes")),
		Source:          strings.TrimSpace(idx.field(record, "source")),
	}
	if rec.ServingsUnit == "" {
		rec.ServingsUnit = "servings"
	}

	// A bracket marker in either column selects sectioned mode.
	if HasSectionMarkers(ingredientsStr) || HasSectionMarkers(instructionsStr) {
		sections := SplitSections(ingredientsStr, instructionsStr)
		if len(sections) == 0 {
			return Recipe{}, errors.New("Sectioned recipe must have at least one section with instructions")
		}
		rec.HasSections = true
		rec.Sections = sections
		return rec, nil
	}

	if instructionsStr == "" {
		return Recipe{}, errors.New("Instructions are required")
	}
	rec.Ingredients = ParseIngredientList(ingredientsStr)
	rec.Instructions = instructionsStr
	return rec, nil
}

// EncodeCSV writes recipes as CSV, one row per recipe, inverting DecodeCSV.
//
// Flat recipes emit pipe-joined formatted ingredient lines and their
// instructions verbatim. Sectioned recipes emit "[Name]" prefixed segments
// concatenated with no separator between sections.
func EncodeCSV(w io.Writer, recipes []Recipe) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, rec := range recipes {
		var ingredientsStr, instructionsStr string
		if rec.HasSections {
			ingredientsStr, instructionsStr = encodeSections(rec.Sections)
		} else {
			lines := make([]string, 0, len(rec.Ingredients))
			for _, ing := range rec.Ingredients {
				lines = append(lines, FormatIngredient(ing))
			}
			ingredientsStr = strings.Join(lines, "|")
			instructionsStr = rec.Instructions
		}

		row := []string{
			rec.Title,
			rec.Category,
			rec.Description,
			formatOptionalInt(rec.PrepTimeMinutes),
			formatOptionalInt(rec.CookTimeMinutes),
			formatOptionalInt(rec.RestTimeMinutes),
			formatOptionalInt(rec.Servings),
			servingsUnitOrDefault(rec.ServingsUnit),
			ingredientsStr,
			instructionsStr,
			rec.Notes,
			rec.Source,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// encodeSections renders the ingredients and instructions columns for a
// sectioned recipe. A section contributes to a column only when it has
// content for it.
func encodeSections(sections []Section) (ingredients, instructions string) {
	var ingB, insB strings.Builder
	for _, s := range sections {
		if len(s.Ingredients) > 0 {
			lines := make([]string, 0, len(s.Ingredients))
			for _, ing := range s.Ingredients {
				lines = append(lines, FormatIngredient(ing))
			}
			ingB.WriteString("[" + s.Name + "]")
			ingB.WriteString(strings.Join(lines, "|"))
		}
		if s.Instructions != "" {
			insB.WriteString("[" + s.Name + "]")
			insB.WriteString(s.Instructions)
		}
	}
	return ingB.String(), insB.String()
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func servingsUnitOrDefault(u string) string {
	if u == "" {
		return "servings"
	}
	return u
}

// TemplateCSV returns a starter CSV with the full column set and two
// example rows, for users building their first import file.
func TemplateCSV() string {
	var b strings.Builder
	_ = EncodeCSV(&b, templateRecipes())
	return b.String()
}

func templateRecipes() []Recipe {
	cookieIngredients := "2 cups all-purpose flour|1 cup butter, softened|3/4 cup granulated sugar|3/4 cup brown sugar, packed|2 large eggs|1 tsp vanilla extract|1 tsp baking soda|1/2 tsp salt|2 cups chocolate chips"
	cookieInstructions := strings.Join([]string{
		"1. Preheat oven to 375°F (190°C).",
		"2. In a large bowl, cream together butter and sugars until fluffy.",
		"3. Beat in eggs one at a time, then add vanilla.",
		"4. In a separate bowl, whisk flour, baking soda, and salt.",
		"5. Gradually blend dry ingredients into the butter mixture.",
		"6. Fold in chocolate chips.",
		"7. Drop rounded tablespoons onto ungreased baking sheets.",
		"8. Bake 9-11 minutes or until golden brown.",
		"9. Cool on baking sheet for 2 minutes before transferring to wire rack.",
	}, "\n")

	saladIngredients := "1 head romaine lettuce, chopped|1 cup cherry tomatoes, halved|1 cucumber, sliced|1/4 red onion, thinly sliced|1/4 cup olive oil|2 tbsp red wine vinegar|salt and pepper to taste"
	saladInstructions := strings.Join([]string{
		"1. Wash and dry all vegetables.",
		"2. Combine lettuce, tomatoes, cucumber, and onion in a large bowl.",
		"3. Whisk together olive oil and vinegar.",
		"4. Drizzle dressing over salad just before serving.",
		"5. Season with salt and pepper to taste.",
	}, "\n")

	cookies := Recipe{
		Title:           "Chocolate Chip Cookies",
		Category:        "Desserts",
		Description:     "Classic homemade chocolate chip cookies",
		PrepTimeMinutes: intPtr(15),
		CookTimeMinutes: intPtr(12),
		RestTimeMinutes: intPtr(30),
		Servings:        intPtr(24),
		ServingsUnit:    "cookies",
		Ingredients:     ParseIngredientList(cookieIngredients),
		Instructions:    cookieInstructions,
		Notes:           "Let dough chill for 30 minutes for thicker cookies.",
		Source:          "Family recipe",
	}
	salad := Recipe{
		Title:           "Simple Garden Salad",
		Category:        "Soups & Salads",
		Description:     "Fresh and simple side salad",
		PrepTimeMinutes: intPtr(10),
		CookTimeMinutes: intPtr(0),
		Servings:        intPtr(4),
		ServingsUnit:    "servings",
		Ingredients:     ParseIngredientList(saladIngredients),
		Instructions:    saladInstructions,
		Notes:           "Add croutons or cheese for extra flavor.",
	}
	return []Recipe{cookies, salad}
}

func intPtr(v int) *int { return &v }
