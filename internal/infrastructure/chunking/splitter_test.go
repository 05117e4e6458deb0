package chunking

import (
	"strings"
	"testing"
)

func TestSplitEmptyText(t *testing.T) {
	s := NewSplitter(4000, 800)
	if got := s.Split("   "); got != nil {
		t.Fatalf("Split(blank) = %v, want nil", got)
	}
}

func TestSplitShortTextSingleChunk(t *testing.T) {
	s := NewSplitter(4000, 800)
	chunks := s.Split("The purchase price is $1,500,000.00.")
	if len(chunks) != 1 {
		t.Fatalf("chunks = %d, want 1", len(chunks))
	}
}

func TestSplitPrefersSectionBoundaries(t *testing.T) {
	s := NewSplitter(200, 0)
	text := "SECTION 1. Purchase. " + strings.Repeat("a", 150) +
		"\n\nSECTION 2. Price. " + strings.Repeat("b", 150)

	chunks := s.Split(text)
	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, want 2", len(chunks))
	}
	if !strings.HasPrefix(chunks[1], "SECTION 2.") {
		t.Fatalf("second chunk must start at the section heading, got %q", chunks[1][:20])
	}
}

func TestSplitRespectsSizeLimit(t *testing.T) {
	s := NewSplitter(300, 50)
	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("This sentence pads the agreement body with text. ")
	}

	for i, chunk := range s.Split(sb.String()) {
		if n := len([]rune(chunk)); n > 300 {
			t.Fatalf("chunk %d has %d runes, limit 300", i, n)
		}
	}
}

func TestSplitCarriesOverlap(t *testing.T) {
	s := NewSplitter(100, 30)
	text := strings.Repeat("x", 60) + " " + strings.Repeat("y", 60)

	chunks := s.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("chunks = %d, want at least 2", len(chunks))
	}
	if !strings.Contains(chunks[1], "x") {
		t.Fatalf("second chunk should carry overlap from the first: %q", chunks[1])
	}
}

func TestSplitSeparatorFreeTextFallsBackToWindow(t *testing.T) {
	s := NewSplitter(100, 10)
	text := strings.Repeat("z", 250)

	chunks := s.Split(text)
	if len(chunks) < 3 {
		t.Fatalf("chunks = %d, want at least 3", len(chunks))
	}
	for i, chunk := range chunks {
		if len([]rune(chunk)) > 100 {
			t.Fatalf("chunk %d exceeds window", i)
		}
	}
}

func TestNewSplitterNormalizesArguments(t *testing.T) {
	s := NewSplitter(0, -5)
	if s.ChunkSize != 4000 || s.Overlap != 0 {
		t.Fatalf("defaults not applied: %+v", s)
	}
	s = NewSplitter(100, 200)
	if s.Overlap != 25 {
		t.Fatalf("oversized overlap should clamp to size/4, got %d", s.Overlap)
	}
}
