package chunking

import "strings"

// defaultSeparators are tried in order, most structural first. Legal
// agreements break on article and section headings long before plain
// paragraph or sentence boundaries are needed.
var defaultSeparators = []string{
	"\n\nARTICLE ",
	"\n\nSECTION ",
	"\n\nSection ",
	"\n\n",
	"\n",
	". ",
	" ",
}

type Splitter struct {
	ChunkSize  int
	Overlap    int
	separators []string
}

func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 4000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 4
	}
	return &Splitter{
		ChunkSize:  chunkSize,
		Overlap:    overlap,
		separators: defaultSeparators,
	}
}

// Split breaks text into chunks of at most ChunkSize runes, preferring
// structural boundaries and carrying Overlap runes of context between
// consecutive chunks.
func (s *Splitter) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	pieces := s.splitRecursive(text, s.separators)
	return s.merge(pieces)
}

func (s *Splitter) splitRecursive(text string, separators []string) []string {
	if len([]rune(text)) <= s.ChunkSize {
		return []string{text}
	}
	if len(separators) == 0 {
		return s.hardSplit(text)
	}

	sep := separators[0]
	rest := separators[1:]
	if !strings.Contains(text, sep) {
		return s.splitRecursive(text, rest)
	}

	var out []string
	for _, part := range splitKeepSeparator(text, sep) {
		out = append(out, s.splitRecursive(part, rest)...)
	}
	return out
}

// splitKeepSeparator splits on sep, re-attaching the separator to the
// start of each following part so headings stay with their body.
func splitKeepSeparator(text, sep string) []string {
	parts := strings.Split(text, sep)
	out := make([]string, 0, len(parts))
	for i, part := range parts {
		if i > 0 {
			part = sep + part
		}
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// merge greedily packs pieces into chunks, seeding each new chunk with
// the tail of its predecessor.
func (s *Splitter) merge(pieces []string) []string {
	var out []string
	var current []rune
	for _, piece := range pieces {
		runes := []rune(piece)
		if len(current) > 0 && len(current)+len(runes) > s.ChunkSize {
			chunk := strings.TrimSpace(string(current))
			if chunk != "" {
				out = append(out, chunk)
			}
			current = s.tail(current)
			// Overlap is dropped when it would push the next chunk
			// over the size limit.
			if len(current)+len(runes) > s.ChunkSize {
				current = nil
			}
		}
		current = append(current, runes...)
	}
	if chunk := strings.TrimSpace(string(current)); chunk != "" {
		out = append(out, chunk)
	}
	return out
}

func (s *Splitter) tail(runes []rune) []rune {
	if s.Overlap <= 0 || len(runes) <= s.Overlap {
		return nil
	}
	overlap := make([]rune, s.Overlap)
	copy(overlap, runes[len(runes)-s.Overlap:])
	return overlap
}

// hardSplit is the last resort for separator-free text: a fixed rune
// window with overlap.
func (s *Splitter) hardSplit(text string) []string {
	runes := []rune(text)
	step := s.ChunkSize - s.Overlap
	if step <= 0 {
		step = s.ChunkSize
	}

	out := make([]string, 0, len(runes)/step+1)
	for start := 0; start < len(runes); start += step {
		end := start + s.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			out = append(out, chunk)
		}
		if end == len(runes) {
			break
		}
	}
	return out
}
