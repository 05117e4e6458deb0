package domain

import "strings"

// colorBox is one hand-tuned bounding box in normalized RGB space.
type colorBox struct {
	rMin, rMax float64
	gMin, gMax float64
	bMin, bMax float64
	category   Category
}

// Boxes are checked in this order; the first match wins. Bounds are
// exclusive on both ends, matching the markup tool's palette centers.
var colorBoxes = []colorBox{
	{0.85, 1.01, 0.85, 1.01, -0.01, 0.6, CategoryAmount},      // yellow
	{-0.01, 0.6, 0.75, 1.01, -0.01, 0.6, CategoryPercent},     // green
	{0.65, 0.85, 0.65, 0.85, 0.65, 0.85, CategoryDate},        // light gray
	{0.7, 0.9, 0.85, 1.01, 0.7, 0.9, CategoryDuration},        // light green
	{0.85, 1.01, 0.65, 0.9, 0.75, 1.01, CategoryDefinedTerm},  // pink
	{0.45, 0.7, -0.01, 0.5, -0.01, 0.4, CategoryCrossRef},     // brown
	{-0.01, 0.6, -0.01, 0.6, 0.75, 1.01, CategoryParty},       // blue
	{0.55, 0.9, 0.3, 0.65, 0.55, 0.9, CategoryQualifier},      // purple
}

var amountKeywords = []string{"dollar", "payment", "price"}
var partyKeywords = []string{"buyer", "seller", "purchaser"}

// ClassifyColor maps a normalized RGB triple plus the marked text to a
// semantic category. Total: every input yields exactly one category,
// defaulting to CategoryUnknown. Near-boundary colors with no lexical
// cue are legitimately UNKNOWN and excluded from fusion entirely.
func ClassifyColor(rgb [3]float64, text string) Category {
	r, g, b := rgb[0], rgb[1], rgb[2]
	for _, box := range colorBoxes {
		if r > box.rMin && r < box.rMax &&
			g > box.gMin && g < box.gMax &&
			b > box.bMin && b < box.bMax {
			return box.category
		}
	}

	lower := strings.ToLower(text)
	if strings.Contains(text, "$") || containsAny(lower, amountKeywords) {
		return CategoryAmount
	}
	if strings.Contains(text, "%") {
		return CategoryPercent
	}
	if containsAny(lower, partyKeywords) {
		return CategoryParty
	}
	return CategoryUnknown
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
