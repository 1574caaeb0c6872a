package ui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/colkit/internal/render"
	"github.com/oakwood-commons/colkit/internal/ui/table"
)

const maxPreviewColWidth = 40

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// PreviewRow is one rendered record in the interactive preview.
type PreviewRow struct {
	// Index is the row position passed to the column hooks.
	Index int
	Text  []string
	Tips  []string
}

// Preview is the Bubble Tea model behind `colkit preview -i`.
type Preview struct {
	title   string
	headers []string
	table   *table.Model[PreviewRow]
	input   textinput.Model
	keys    *keyResolver

	filtering bool
	noColor   bool
	quitting  bool
	width     int
	height    int
}

// PreviewOption customizes a Preview.
type PreviewOption func(*Preview)

// WithKeyMode selects the keybinding set.
func WithKeyMode(mode KeyMode) PreviewOption {
	return func(p *Preview) { p.keys = newKeyResolver(mode) }
}

// NewPreview builds the model for a rendered table.
func NewPreview(title string, t *render.Table, noColor bool, opts ...PreviewOption) *Preview {
	headers := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = render.PlainText(h)
	}

	rows := make([]PreviewRow, len(t.Rows))
	for r, cells := range t.Rows {
		row := PreviewRow{Index: r, Text: make([]string, len(cells)), Tips: make([]string, len(cells))}
		for i, c := range cells {
			row.Text[i] = render.PlainText(c.Text)
			row.Tips[i] = c.Tooltip
		}
		rows[r] = row
	}

	columns := make([]table.Column, len(headers))
	for i, h := range headers {
		w := runewidth.StringWidth(h)
		for _, row := range rows {
			w = max(w, runewidth.StringWidth(row.Text[i]))
		}
		if t.MaxWidths[i] > 0 {
			w = min(w, t.MaxWidths[i])
		}
		columns[i] = table.Column{Title: h, Width: min(max(w, 1), maxPreviewColWidth)}
	}

	toRow := func(r PreviewRow) table.Row { return table.Row(r.Text) }
	keyFunc := func(r PreviewRow) string { return strings.Join(r.Text, " ") }
	tbl := table.NewModel(columns, toRow, keyFunc)
	tbl.SetRows(rows)
	tbl.SetNoColor(noColor)

	input := textinput.New()
	input.Prompt = "/"
	input.Placeholder = "filter rows"

	p := &Preview{
		title:   title,
		headers: headers,
		table:   tbl,
		input:   input,
		keys:    newKeyResolver(DefaultKeyMode),
		noColor: noColor,
		width:   80,
		height:  24,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Init implements tea.Model.
func (m *Preview) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Preview) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetSize(msg.Width, max(msg.Height-4, 3))
		return m, nil

	case tea.KeyPressMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.runAction(m.keys.resolve(msg.String()))
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Preview) runAction(action KeyAction) (tea.Model, tea.Cmd) {
	page := max(m.height-6, 1)
	switch action {
	case ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case ActionFilter:
		m.filtering = true
		m.input.SetValue(m.table.Filter())
		return m, m.input.Focus()
	case ActionClear:
		m.table.ClearFilter()
	case ActionDown:
		m.table.MoveDown(1)
	case ActionUp:
		m.table.MoveUp(1)
	case ActionPageDown:
		m.table.MoveDown(page)
	case ActionPageUp:
		m.table.MoveUp(page)
	case ActionTop:
		m.table.GotoTop()
	case ActionBottom:
		m.table.GotoBottom()
	}
	return m, nil
}

func (m *Preview) updateFilter(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.input.Blur()
		return m, nil
	case "esc":
		m.filtering = false
		m.input.Blur()
		m.input.SetValue("")
		m.table.ClearFilter()
		return m, nil
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.table.SetFilter(m.input.Value())
	return m, cmd
}

// Selected returns the row under the cursor, or nil.
func (m *Preview) Selected() *PreviewRow {
	return m.table.SelectedRow()
}

// Summary is the title line: the document name and row counts.
func (m *Preview) Summary() string {
	all := int64(len(m.table.AllRows()))
	s := humanize.Comma(all) + " rows"
	if m.table.Filter() != "" {
		s = humanize.Comma(int64(len(m.table.Rows()))) + " of " + s
	}
	if m.title != "" {
		s = m.title + " · " + s
	}
	return s
}

// Footer lists the tooltips of the selected row, or the key help.
func (m *Preview) Footer() string {
	if m.filtering {
		return m.input.View()
	}
	var tips []string
	if row := m.Selected(); row != nil {
		for i, tip := range row.Tips {
			if tip != "" {
				tips = append(tips, m.headers[i]+": "+tip)
			}
		}
	}
	if len(tips) > 0 {
		return strings.Join(tips, "  ")
	}
	return m.keys.help()
}

// View implements tea.Model.
func (m *Preview) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	title, footer := m.Summary(), runewidth.Truncate(m.Footer(), m.width, "...")
	if !m.noColor {
		title = titleStyle.Render(title)
		footer = footerStyle.Render(footer)
	}
	v := tea.NewView(lipgloss.JoinVertical(lipgloss.Left, title, "", m.table.View(), footer))
	v.AltScreen = true
	return v
}

// RunPreview shows t in a full-screen table until the user quits.
func RunPreview(title string, t *render.Table, noColor bool, mode KeyMode, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(NewPreview(title, t, noColor, WithKeyMode(mode)), opts...).Run()
	return err
}
