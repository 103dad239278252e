package ui

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/DaanHessen/linegrep/internal/render"
	"github.com/DaanHessen/linegrep/internal/search"
	"github.com/DaanHessen/linegrep/internal/store"
	"github.com/DaanHessen/linegrep/internal/util"
)

const (
	viewSearch  = "search"
	viewHistory = "history"
	viewHelp    = "help"
)

const helpMarkdown = `# linegrep

Type to search; matches update as you type.

| Key | Action |
|-----|--------|
| tab | toggle case folding |
| enter | record the current search to history |
| ctrl+r | show search history |
| ctrl+t | cycle theme |
| up/down, pgup/pgdn | scroll results |
| f1 | toggle this help |
| esc | back (or quit from the search view) |
| ctrl+c | quit |
`

type model struct {
	ctx     context.Context
	cfg     util.Config
	db      *store.DB // nil when history is unavailable
	version string

	input   textinput.Model
	results viewport.Model
	lines   []search.Line
	matches []search.Line
	fold    bool

	view      string
	history   []store.Search
	helpText  string
	status    string
	theme     palette
	themeName string

	width  int
	height int
	ready  bool
}

// initialModel loads the target file up front; live filtering then works
// against the in-memory lines.
func initialModel(ctx context.Context, db *store.DB, cfg util.Config, version string) (model, error) {
	f, err := os.Open(cfg.Path)
	if err != nil {
		return model{}, err
	}
	defer f.Close()

	ls := search.Lines(f)
	lines := search.Collect(ls.All())
	if err := ls.Err(); err != nil {
		return model{}, err
	}

	input := textinput.New()
	input.Placeholder = "query"
	input.Prompt = "/ "
	input.Focus()
	if cfg.Query != "" {
		input.SetValue(cfg.Query)
	}

	m := model{
		ctx:       ctx,
		cfg:       cfg,
		db:        db,
		version:   version,
		input:     input,
		lines:     lines,
		fold:      cfg.IgnoreCase,
		view:      viewSearch,
		themeName: cfg.Theme,
	}
	if _, ok := palettes[m.themeName]; !ok {
		m.themeName = "catppuccin"
	}
	m.theme = paletteFor(m.themeName)
	m.applyQuery()
	return m, nil
}

func (m model) matcher() search.Matcher {
	return search.NewMatcher(m.input.Value(), m.fold)
}

// applyQuery recomputes matches through the filter pipeline.
func (m *model) applyQuery() {
	m.matches = search.Collect(search.Search(m.matcher(), slices.Values(m.lines)))
	if m.ready {
		m.results.SetContent(m.resultsContent())
		m.results.GotoTop()
	}
}

func (m *model) recordSearch() {
	if m.db == nil {
		m.status = "history disabled (no database)"
		return
	}
	repo := store.NewHistoryRepo(m.db)
	if _, err := repo.Record(m.ctx, m.input.Value(), m.cfg.Path, m.fold, len(m.matches)); err != nil {
		m.status = "history: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("recorded %q (%d matches)", m.input.Value(), len(m.matches))
}

func (m *model) loadHistory() {
	if m.db == nil {
		m.history = nil
		m.status = "history disabled (no database)"
		return
	}
	repo := store.NewHistoryRepo(m.db)
	entries, err := repo.Recent(m.ctx, 50)
	if err != nil {
		m.status = "history: " + err.Error()
		return
	}
	m.history = entries
}

func (m *model) renderHelp() {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		m.helpText = helpMarkdown
		return
	}
	out, err := renderer.Render(helpMarkdown)
	if err != nil {
		m.helpText = helpMarkdown
		return
	}
	m.helpText = out
}

// tea.Model implementation ---------------------------------------------------

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		vh := msg.Height - 4 // title, input, status
		if vh < 1 {
			vh = 1
		}
		if !m.ready {
			m.results = viewport.New(msg.Width, vh)
			m.ready = true
		} else {
			m.results.Width = msg.Width
			m.results.Height = vh
		}
		m.input.Width = msg.Width - 4
		m.results.SetContent(m.resultsContent())
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.view != viewSearch {
				m.view = viewSearch
				return m, nil
			}
			return m, tea.Quit
		case "tab":
			if m.view == viewSearch {
				m.fold = !m.fold
				m.applyQuery()
			}
			return m, nil
		case "enter":
			if m.view == viewSearch {
				m.recordSearch()
			}
			return m, nil
		case "ctrl+r":
			m.loadHistory()
			m.view = viewHistory
			return m, nil
		case "ctrl+t":
			m.themeName = nextThemeName(m.themeName)
			m.theme = paletteFor(m.themeName)
			if m.ready {
				m.results.SetContent(m.resultsContent())
			}
			return m, nil
		case "f1":
			if m.view == viewHelp {
				m.view = viewSearch
			} else {
				m.renderHelp()
				m.view = viewHelp
			}
			return m, nil
		case "up", "down", "pgup", "pgdown", "home", "end":
			var cmd tea.Cmd
			m.results, cmd = m.results.Update(msg)
			return m, cmd
		}

		if m.view != viewSearch {
			return m, nil
		}
		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			m.status = ""
			m.applyQuery()
		}
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	switch m.view {
	case viewHistory:
		return m.renderHistory()
	case viewHelp:
		return m.helpText
	}
	return m.renderSearch()
}

// rendering -------------------------------------------------------------------

func (m model) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(m.theme.Accent)
}

func (m model) mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(m.theme.Muted)
}

func (m model) resultsContent() string {
	if len(m.matches) == 0 {
		return m.mutedStyle().Render("(no matches)")
	}
	matcher := m.matcher()
	hl := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Match)
	num := m.mutedStyle()
	var b strings.Builder
	for _, ln := range m.matches {
		b.WriteString(num.Render(fmt.Sprintf("%4d", ln.N)))
		b.WriteString(" ")
		b.WriteString(render.HighlightWith(matcher, ln.Text, hl))
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) renderSearch() string {
	var b strings.Builder
	b.WriteString(m.titleStyle().Render("linegrep " + m.version))
	b.WriteString(" ")
	b.WriteString(m.mutedStyle().Render(m.cfg.Path))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.ready {
		b.WriteString(m.results.View())
	} else {
		b.WriteString(m.mutedStyle().Render("loading..."))
	}
	b.WriteString("\n")
	b.WriteString(m.statusBar())
	return b.String()
}

func (m model) statusBar() string {
	fold := "off"
	if m.fold {
		fold = "on"
	}
	left := fmt.Sprintf("%d matches · fold:%s", len(m.matches), fold)
	if m.status != "" {
		left += " · " + m.status
	}
	hints := "tab fold · enter record · ctrl+r history · f1 help"
	return m.mutedStyle().Render(left + "  " + hints)
}

func (m model) renderHistory() string {
	var b strings.Builder
	b.WriteString(m.titleStyle().Render("linegrep (history)"))
	b.WriteString("\n\n")
	if len(m.history) == 0 {
		b.WriteString(m.mutedStyle().Render("(no searches recorded)"))
		b.WriteString("\n")
	}
	for _, e := range m.history {
		fold := ""
		if e.IgnoreCase {
			fold = " [fold]"
		}
		b.WriteString(fmt.Sprintf("%s  %q%s  %d matches\n",
			m.mutedStyle().Render(e.CreatedAt.Format("2006-01-02 15:04")), e.Query, fold, e.Matches))
	}
	b.WriteString("\n")
	b.WriteString(m.mutedStyle().Render("esc back"))
	return b.String()
}
