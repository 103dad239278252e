package ui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/DaanHessen/linegrep/internal/search"
	"github.com/DaanHessen/linegrep/internal/util"
)

func testModel(lines ...string) model {
	m := model{view: viewSearch, themeName: "catppuccin", theme: paletteFor("catppuccin")}
	m.input = textinput.New()
	for i, text := range lines {
		m.lines = append(m.lines, search.Line{N: i + 1, Text: text})
	}
	return m
}

func TestApplyQueryFiltersLines(t *testing.T) {
	m := testModel("Rust:", "safe, fast, productive.", "Pick three.", "Duct tape.")
	m.input.SetValue("duct")
	m.applyQuery()
	if len(m.matches) != 1 || m.matches[0].Text != "safe, fast, productive." {
		t.Fatalf("unexpected matches: %v", m.matches)
	}
}

func TestFoldToggleWidensMatches(t *testing.T) {
	m := testModel("Rust:", "safe, fast, productive.", "Trust me.")
	m.input.SetValue("rUsT")
	m.applyQuery()
	if len(m.matches) != 0 {
		t.Fatalf("case-sensitive search should find nothing: %v", m.matches)
	}
	m.fold = true
	m.applyQuery()
	if len(m.matches) != 2 {
		t.Fatalf("folded search should find 2 lines, got %v", m.matches)
	}
}

func TestInitialModelLoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "poem.txt")
	if err := os.WriteFile(path, []byte("Rust:\nsafe, fast, productive.\nPick three.\nDuct tape."), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := initialModel(context.Background(), nil, util.Config{Query: "duct", Path: path}, "test")
	if err != nil {
		t.Fatal(err)
	}
	if len(m.lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(m.lines))
	}
	if len(m.matches) != 1 {
		t.Fatalf("initial query should already be applied, got %v", m.matches)
	}
}

func TestInitialModelMissingFile(t *testing.T) {
	_, err := initialModel(context.Background(), nil, util.Config{Path: "does-not-exist.txt"}, "test")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestNextThemeNameCycles(t *testing.T) {
	seen := map[string]bool{}
	name := "catppuccin"
	for range themeNames() {
		seen[name] = true
		name = nextThemeName(name)
	}
	if len(seen) != len(themeNames()) {
		t.Fatalf("theme cycle did not visit every palette: %v", seen)
	}
	if name != "catppuccin" {
		t.Fatalf("cycle should wrap around, ended at %s", name)
	}
}
