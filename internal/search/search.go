package search

import (
	"bufio"
	"io"
	"iter"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Line is a single line of input with its 1-based position in the source.
type Line struct {
	N    int
	Text string
}

// LineScanner streams lines from a reader without loading the whole file.
type LineScanner struct {
	s *bufio.Scanner
	n int
}

func Lines(r io.Reader) *LineScanner {
	return &LineScanner{s: bufio.NewScanner(r)}
}

// All yields the remaining lines in order. The sequence is single-use;
// check Err after draining it.
func (ls *LineScanner) All() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for ls.s.Scan() {
			ls.n++
			if !yield(Line{N: ls.n, Text: ls.s.Text()}) {
				return
			}
		}
	}
}

func (ls *LineScanner) Err() error { return ls.s.Err() }

// Matcher decides whether a line contains the query and where.
type Matcher struct {
	needle string // folded form used for comparison
	fold   bool
}

func NewMatcher(query string, ignoreCase bool) Matcher {
	m := Matcher{needle: query, fold: ignoreCase}
	if ignoreCase {
		m.needle = strings.ToLower(query)
	}
	return m
}

// Match reports whether s contains the query. An empty query matches
// every line.
func (m Matcher) Match(s string) bool {
	if m.fold {
		s = strings.ToLower(s)
	}
	return strings.Contains(s, m.needle)
}

// Spans returns the byte offsets of each non-overlapping occurrence of the
// query in s. The offsets always refer to the original string: under case
// folding they are mapped back through the fold, since lowercasing can
// change a rune's byte length. An empty query yields no spans.
func (m Matcher) Spans(s string) [][2]int {
	if m.needle == "" {
		return nil
	}
	h := s
	var offs []int
	if m.fold {
		h, offs = foldWithOffsets(s)
	}
	var spans [][2]int
	for off := 0; off < len(h); {
		i := strings.Index(h[off:], m.needle)
		if i < 0 {
			break
		}
		start := off + i
		end := start + len(m.needle)
		if offs != nil {
			spans = append(spans, [2]int{offs[start], offs[end]})
		} else {
			spans = append(spans, [2]int{start, end})
		}
		off = end
	}
	return spans
}

// foldWithOffsets lowercases s rune by rune and maps every byte of the
// folded text, plus one past the end, back to the byte offset in s of the
// rune it came from. Matches in the folded text start and end on rune
// boundaries, so the mapped spans slice s cleanly.
func foldWithOffsets(s string) (string, []int) {
	var b strings.Builder
	b.Grow(len(s))
	offs := make([]int, 0, len(s)+1)
	for i, r := range s {
		lr := unicode.ToLower(r)
		for n := utf8.RuneLen(lr); n > 0; n-- {
			offs = append(offs, i)
		}
		b.WriteRune(lr)
	}
	offs = append(offs, len(s))
	return b.String(), offs
}

// Filter yields the lines of seq for which keep returns true. Evaluation
// is lazy; each input line is visited exactly once.
func Filter(seq iter.Seq[Line], keep func(Line) bool) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for ln := range seq {
			if keep(ln) && !yield(ln) {
				return
			}
		}
	}
}

// Search narrows seq to the lines the matcher accepts.
func Search(m Matcher, seq iter.Seq[Line]) iter.Seq[Line] {
	return Filter(seq, func(ln Line) bool { return m.Match(ln.Text) })
}

// Collect drains seq into a slice.
func Collect(seq iter.Seq[Line]) []Line {
	return slices.Collect(seq)
}
