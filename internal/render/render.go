package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/DaanHessen/linegrep/internal/search"
	"github.com/DaanHessen/linegrep/internal/store"
)

// Options control one-shot output.
type Options struct {
	// Plain disables all styling, for pipes and tests.
	Plain bool
}

var (
	numStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	matchStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
)

// Result writes the matched lines to w, one per line, prefixed with the
// line number and with every occurrence of the query highlighted.
func Result(w io.Writer, m search.Matcher, lines []search.Line, opts Options) error {
	for _, ln := range lines {
		var err error
		if opts.Plain {
			_, err = fmt.Fprintf(w, "%d:%s\n", ln.N, ln.Text)
		} else {
			_, err = fmt.Fprintf(w, "%s:%s\n", numStyle.Render(strconv.Itoa(ln.N)), Highlight(m, ln.Text))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Highlight wraps every occurrence of the matcher's query in the default
// match style. Lines without an occurrence come back unchanged.
func Highlight(m search.Matcher, s string) string {
	return HighlightWith(m, s, matchStyle)
}

// HighlightWith is Highlight with a caller-supplied style, for themed UIs.
func HighlightWith(m search.Matcher, s string, style lipgloss.Style) string {
	spans := m.Spans(s)
	if len(spans) == 0 {
		return s
	}
	var b strings.Builder
	prev := 0
	for _, sp := range spans {
		b.WriteString(s[prev:sp[0]])
		b.WriteString(style.Render(s[sp[0]:sp[1]]))
		prev = sp[1]
	}
	b.WriteString(s[prev:])
	return b.String()
}

// HistoryMarkdown renders recent searches as a markdown document for a
// terminal markdown renderer.
func HistoryMarkdown(entries []store.Search) string {
	var b strings.Builder
	b.WriteString("# Recent searches\n\n")
	if len(entries) == 0 {
		b.WriteString("_no searches recorded yet_\n")
		return b.String()
	}
	b.WriteString("| When | Query | File | Fold | Matches |\n")
	b.WriteString("|------|-------|------|------|---------|\n")
	for _, e := range entries {
		fold := "no"
		if e.IgnoreCase {
			fold = "yes"
		}
		b.WriteString(fmt.Sprintf("| %s | `%s` | %s | %s | %d |\n",
			e.CreatedAt.Format("2006-01-02 15:04"), e.Query, e.Path, fold, e.Matches))
	}
	return b.String()
}
