package render

import (
	"strings"
	"testing"
	"time"

	"github.com/DaanHessen/linegrep/internal/search"
	"github.com/DaanHessen/linegrep/internal/store"
)

func TestResultPlain(t *testing.T) {
	m := search.NewMatcher("fast", false)
	lines := []search.Line{{N: 2, Text: "safe, fast, productive."}}
	var b strings.Builder
	if err := Result(&b, m, lines, Options{Plain: true}); err != nil {
		t.Fatal(err)
	}
	if b.String() != "2:safe, fast, productive.\n" {
		t.Fatalf("unexpected output: %q", b.String())
	}
}

func TestHighlightKeepsSurroundingText(t *testing.T) {
	m := search.NewMatcher("fast", false)
	got := Highlight(m, "safe, fast, productive.")
	if !strings.HasPrefix(got, "safe, ") || !strings.HasSuffix(got, ", productive.") {
		t.Fatalf("surrounding text mangled: %q", got)
	}
	if !strings.Contains(got, "fast") {
		t.Fatalf("match text missing: %q", got)
	}
}

func TestHighlightFoldedMultiByteCasePair(t *testing.T) {
	// Folded matching must not slice past the line when lowercasing
	// changes rune byte lengths.
	m := search.NewMatcher("ⱥ", true)
	got := Highlight(m, "Ⱥ tape")
	if !strings.HasSuffix(got, " tape") || !strings.Contains(got, "Ⱥ") {
		t.Fatalf("folded highlight mangled line: %q", got)
	}
}

func TestHighlightNoMatchUnchanged(t *testing.T) {
	m := search.NewMatcher("zzz", false)
	if got := Highlight(m, "Pick three."); got != "Pick three." {
		t.Fatalf("line without match should pass through: %q", got)
	}
}

func TestHistoryMarkdown(t *testing.T) {
	when := time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC)
	md := HistoryMarkdown([]store.Search{
		{Query: "duct", Path: "poem.txt", Matches: 1, CreatedAt: when},
		{Query: "rUsT", Path: "poem.txt", IgnoreCase: true, Matches: 2, CreatedAt: when},
	})
	for _, want := range []string{"# Recent searches", "`duct`", "2026-03-14 09:26", "| yes |", "| 2 |"} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestHistoryMarkdownEmpty(t *testing.T) {
	md := HistoryMarkdown(nil)
	if !strings.Contains(md, "no searches recorded") {
		t.Fatalf("unexpected empty report: %q", md)
	}
}
