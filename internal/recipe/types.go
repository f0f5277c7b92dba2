// Package recipe provides the parsing engine that turns free-text recipe
// data into a structured model.
//
// This package is the heart of the cookbook service, containing all parsing
// logic independent of any storage or transport layer. It can be used by web
// handlers, CLI tools, or tests without modification.
//
// # Parsing Pipeline
//
// Raw CSV text flows through [DecodeCSV], which delegates per column:
//
//   - ingredients: split on "|" and parsed line-by-line via [ParseIngredient]
//   - [Name] markers in ingredients or instructions select sectioned mode,
//     handled by [SplitSections]
//   - numeric columns are parsed leniently; garbage degrades to absent
//
// Every failure is scoped to a single row. A malformed row produces one
// [RowError] and decoding continues with the next row, so callers always
// receive the full set of successes alongside the full set of errors.
package recipe

import "fmt"

// Ingredient is one parsed ingredient line.
//
// Quantity is nil when no quantity was stated ("salt to taste"), never zero.
// Name is never empty after parsing: when a line cannot be decomposed, the
// entire trimmed line becomes the name and all other fields stay unset.
type Ingredient struct {
	Quantity    *float64 `json:"quantity"`
	Unit        string   `json:"unit,omitempty"`
	Name        string   `json:"name"`
	Preparation string   `json:"preparation,omitempty"`
	IsOptional  bool     `json:"is_optional"`
}

// Section is a named sub-part of a sectioned recipe ("Shell", "Filling"),
// carrying its own ingredient list and instructions.
type Section struct {
	Name         string       `json:"name"`
	Instructions string       `json:"instructions"`
	Ingredients  []Ingredient `json:"ingredients"`
}

// Recipe is the structured result of parsing one CSV row.
//
// A recipe is either flat (Ingredients + Instructions) or sectioned
// (Sections); HasSections discriminates the two variants and consumers
// switch on it exhaustively. Optional integer fields are nil when the
// source column was blank or unparseable.
type Recipe struct {
	Title           string       `json:"title"`
	Category        string       `json:"category,omitempty"`
	Description     string       `json:"description,omitempty"`
	PrepTimeMinutes *int         `json:"prep_time_minutes"`
	CookTimeMinutes *int         `json:"cook_time_minutes"`
	RestTimeMinutes *int         `json:"rest_time_minutes"`
	Servings        *int         `json:"servings"`
	ServingsUnit    string       `json:"servings_unit"`
	HasSections     bool         `json:"has_sections"`
	Ingredients     []Ingredient `json:"ingredients,omitempty"`
	Instructions    string       `json:"instructions,omitempty"`
	Sections        []Section    `json:"sections,omitempty"`
	Notes           string       `json:"notes,omitempty"`
	Source          string       `json:"source,omitempty"`
}

// TotalTimeMinutes returns prep + cook + rest time, treating absent values
// as zero.
func (r *Recipe) TotalTimeMinutes() int {
	total := 0
	for _, t := range []*int{r.PrepTimeMinutes, r.CookTimeMinutes, r.RestTimeMinutes} {
		if t != nil {
			total += *t
		}
	}
	return total
}

// FormattedTotalTime renders the total time as "1h 30m", "45m", or "" when
// no time is recorded.
func (r *Recipe) FormattedTotalTime() string {
	total := r.TotalTimeMinutes()
	if total == 0 {
		return ""
	}
	hours, minutes := total/60, total%60
	if hours > 0 {
		if minutes > 0 {
			return fmt.Sprintf("%dh %dm", hours, minutes)
		}
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dm", minutes)
}

// RowError is a parse failure attributable to exactly one CSV row.
//
// Row is the 1-based physical row number in the source file. The header is
// row 1, so the first data row is row 2.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}
