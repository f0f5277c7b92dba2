package recipe

import "strings"

// HasSectionMarkers reports whether the text contains a [Name] section
// marker. A marker needs at least one character between the brackets and
// does not span line breaks.
func HasSectionMarkers(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '[' {
			continue
		}
		for k := i + 1; k < len(s); k++ {
			if s[k] == '\n' {
				break
			}
			if s[k] == ']' && k > i+1 {
				return true
			}
		}
	}
	return false
}

// SplitSections splits bracket-delimited ingredient and instruction blobs
// into merged per-section records.
//
// Input format:
//
//	ingredients:  "[Shell]2 cups flour|1/2 cup butter[Filling]2 cups ricotta"
//	instructions: "[Shell]Step 1\nStep 2[Filling]Step 1"
//
// Each blob is split independently on [Name] markers; text before the first
// marker is discarded. Sections are merged by name, preserving first-seen
// order across both passes. Sections whose instructions are empty after
// trimming are dropped from the result, so a section that appears only in
// the ingredients blob silently disappears.
func SplitSections(ingredientsBlob, instructionsBlob string) []Section {
	byName := make(map[string]*Section)
	var order []string

	lookup := func(name string) *Section {
		if s, ok := byName[name]; ok {
			return s
		}
		s := &Section{Name: name}
		byName[name] = s
		order = append(order, name)
		return s
	}

	for _, part := range splitOnMarkers(ingredientsBlob) {
		lookup(part.name).Ingredients = ParseIngredientList(part.body)
	}
	for _, part := range splitOnMarkers(instructionsBlob) {
		lookup(part.name).Instructions = strings.TrimSpace(part.body)
	}

	var out []Section
	for _, name := range order {
		if s := byName[name]; s.Instructions != "" {
			out = append(out, *s)
		}
	}
	return out
}

// markerPart is one (section name, body) pair produced by splitOnMarkers.
type markerPart struct {
	name string
	body string
}

// splitOnMarkers walks the text splitting on [Name] markers. A marker is a
// '[' followed by one or more non-']' characters and a closing ']'; "[]" is
// literal text. The body of each section runs to the next marker or the end
// of the text.
func splitOnMarkers(s string) []markerPart {
	var parts []markerPart

	pos := 0
	for {
		start, end, name, ok := findMarker(s, pos)
		if !ok {
			break
		}
		if n := len(parts); n > 0 {
			parts[n-1].body = s[pos:start]
		}
		parts = append(parts, markerPart{name: strings.TrimSpace(name)})
		pos = end
	}
	if n := len(parts); n > 0 {
		parts[n-1].body = s[pos:]
	}
	return parts
}

// findMarker locates the next [Name] marker at or after from. It returns
// the marker bounds and the raw name between the brackets.
func findMarker(s string, from int) (start, end int, name string, ok bool) {
	for i := from; i < len(s); i++ {
		if s[i] != '[' {
			continue
		}
		j := strings.IndexByte(s[i+1:], ']')
		if j < 0 {
			return 0, 0, "", false
		}
		if j == 0 {
			continue
		}
		closing := i + 1 + j
		return i, closing + 1, s[i+1 : closing], true
	}
	return 0, 0, "", false
}
