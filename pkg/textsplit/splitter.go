package textsplit

import (
	"strings"

	"notebookrag/pkg/apperror"
)

const (
	DefaultChunkSize = 1000
	DefaultOverlap   = 200
)

// Splitter cuts long text into bounded, overlapping chunks. It prefers the
// largest semantic boundary available inside the size budget: paragraph
// break, then line break, then word break, then a hard character cut.
type Splitter struct {
	chunkSize  int
	overlap    int
	separators []string
}

// New validates the size/overlap pair. Overlap must be strictly smaller
// than the chunk size or merging would never advance.
func New(chunkSize, overlap int) (*Splitter, error) {
	if chunkSize <= 0 {
		return nil, apperror.Validation("chunk size must be positive, got %d", chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, apperror.Validation("overlap %d must be in [0, chunk size %d)", overlap, chunkSize)
	}
	return &Splitter{
		chunkSize:  chunkSize,
		overlap:    overlap,
		separators: []string{"\n\n", "\n", " ", ""},
	}, nil
}

// Default returns a splitter with the 1000/200 defaults.
func Default() *Splitter {
	s, _ := New(DefaultChunkSize, DefaultOverlap)
	return s
}

// Split returns the ordered chunk sequence for text. Empty or whitespace-only
// input yields no chunks. A chunk only exceeds the size budget when a single
// unsplittable atom does.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return s.split(text, s.separators)
}

func (s *Splitter) split(text string, separators []string) []string {
	// Pick the first separator that actually occurs; "" always matches.
	separator := separators[len(separators)-1]
	var deeper []string
	for i, sep := range separators {
		if sep == "" {
			separator = sep
			break
		}
		if strings.Contains(text, sep) {
			separator = sep
			deeper = separators[i+1:]
			break
		}
	}

	var final []string
	var good []string
	for _, piece := range splitOn(text, separator) {
		if runeLen(piece) < s.chunkSize {
			good = append(good, piece)
			continue
		}
		// Oversized piece: flush what we have, then descend to a finer
		// boundary (or keep it whole when no finer boundary exists).
		if len(good) > 0 {
			final = append(final, s.merge(good, separator)...)
			good = nil
		}
		if len(deeper) == 0 {
			final = append(final, piece)
		} else {
			final = append(final, s.split(piece, deeper)...)
		}
	}
	if len(good) > 0 {
		final = append(final, s.merge(good, separator)...)
	}
	return final
}

// merge greedily packs pieces into chunks up to chunkSize, then slides the
// window keeping at most overlap characters so adjacent chunks share a span.
func (s *Splitter) merge(pieces []string, separator string) []string {
	sepLen := runeLen(separator)

	var chunks []string
	var window []string
	total := 0

	flush := func() {
		if len(window) == 0 {
			return
		}
		chunk := strings.TrimSpace(strings.Join(window, separator))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}

	for _, piece := range pieces {
		pieceLen := runeLen(piece)
		if total+pieceLen+spacerLen(sepLen, len(window) > 0) > s.chunkSize && len(window) > 0 {
			flush()
			// Slide: drop from the front until the retained tail fits both
			// the overlap budget and the incoming piece.
			for total > s.overlap || (total+pieceLen+spacerLen(sepLen, len(window) > 0) > s.chunkSize && total > 0) {
				total -= runeLen(window[0]) + spacerLen(sepLen, len(window) > 1)
				window = window[1:]
			}
		}
		window = append(window, piece)
		total += pieceLen + spacerLen(sepLen, len(window) > 1)
	}
	flush()

	return chunks
}

func spacerLen(sepLen int, present bool) int {
	if present {
		return sepLen
	}
	return 0
}

// splitOn splits by separator; the empty separator splits into characters.
func splitOn(text, separator string) []string {
	var raw []string
	if separator == "" {
		raw = strings.Split(text, "")
	} else {
		raw = strings.Split(text, separator)
	}
	pieces := raw[:0]
	for _, p := range raw {
		if p != "" {
			pieces = append(pieces, p)
		}
	}
	return pieces
}

func runeLen(s string) int {
	return len([]rune(s))
}
