package domain

import "testing"

var allCategories = map[Category]bool{
	CategoryAmount:      true,
	CategoryPercent:     true,
	CategoryDate:        true,
	CategoryDuration:    true,
	CategoryDefinedTerm: true,
	CategoryCrossRef:    true,
	CategoryParty:       true,
	CategoryQualifier:   true,
	CategoryUnknown:     true,
}

// axisValues is a 0.05-step sweep of one channel plus every box bound,
// so box-edge behavior is exercised exactly.
func axisValues() []float64 {
	vals := make([]float64, 0, 70)
	for i := 0; i <= 20; i++ {
		vals = append(vals, float64(i)*0.05)
	}
	for _, box := range colorBoxes {
		vals = append(vals, box.rMin, box.rMax, box.gMin, box.gMax, box.bMin, box.bMax)
	}
	return vals
}

func firstMatchingBox(r, g, b float64) (Category, bool) {
	for _, box := range colorBoxes {
		if r > box.rMin && r < box.rMax &&
			g > box.gMin && g < box.gMax &&
			b > box.bMin && b < box.bMax {
			return box.category, true
		}
	}
	return CategoryUnknown, false
}

// Every RGB triple with empty text must map to exactly one known
// category: the first matching box, or UNKNOWN outside all boxes.
// Overlapping box regions are settled by the fixed check order, so the
// classifier stays single-valued across the whole cube.
func TestClassifyColorIsTotalOverRGBCube(t *testing.T) {
	for _, r := range axisValues() {
		for _, g := range axisValues() {
			for _, b := range axisValues() {
				cat := ClassifyColor([3]float64{r, g, b}, "")
				if !allCategories[cat] {
					t.Fatalf("ClassifyColor(%v,%v,%v) = %q, not a known category", r, g, b, cat)
				}
				want, matched := firstMatchingBox(r, g, b)
				if cat != want {
					t.Fatalf("ClassifyColor(%v,%v,%v) = %q, want %q (box match=%v)", r, g, b, cat, want, matched)
				}
			}
		}
	}
}

func TestClassifyColorPaletteCenters(t *testing.T) {
	cases := []struct {
		rgb  [3]float64
		want Category
	}{
		{[3]float64{0.95, 0.90, 0.10}, CategoryAmount},      // yellow
		{[3]float64{0.20, 0.90, 0.20}, CategoryPercent},     // green
		{[3]float64{0.75, 0.75, 0.75}, CategoryDate},        // light gray
		{[3]float64{0.80, 0.95, 0.80}, CategoryDuration},    // light green
		{[3]float64{0.95, 0.75, 0.85}, CategoryDefinedTerm}, // pink
		{[3]float64{0.60, 0.35, 0.20}, CategoryCrossRef},    // brown
		{[3]float64{0.20, 0.40, 0.95}, CategoryParty},       // blue
		{[3]float64{0.70, 0.45, 0.70}, CategoryQualifier},   // purple
	}
	for _, tc := range cases {
		if got := ClassifyColor(tc.rgb, ""); got != tc.want {
			t.Fatalf("ClassifyColor(%v) = %q, want %q", tc.rgb, got, tc.want)
		}
	}
}

func TestClassifyColorLexicalFallback(t *testing.T) {
	// Pure black sits outside every box; only the text decides.
	black := [3]float64{0, 0, 0}
	cases := []struct {
		text string
		want Category
	}{
		{"$1,500,000.00", CategoryAmount},
		{"payment due at closing", CategoryAmount},
		{"12.5%", CategoryPercent},
		{"the Buyer", CategoryParty},
		{"miscellaneous", CategoryUnknown},
	}
	for _, tc := range cases {
		if got := ClassifyColor(black, tc.text); got != tc.want {
			t.Fatalf("ClassifyColor(black, %q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}
