// Package table wraps the bubbles table with typed rows and a text filter.
package table

import (
	"fmt"
	"strings"

	bubtable "charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// Column and Row are the bubbles table types, re-exported so callers do
// not import bubbles directly.
type (
	Column = bubtable.Column
	Row    = bubtable.Row
)

// Model is a table over rows of type V. toRow turns a value into cells and
// keyFunc gives the text the filter matches against.
type Model[V any] struct {
	table    bubtable.Model
	styles   bubtable.Styles
	rows     []V
	filter   string
	filtered []V
	columns  []Column

	toRow   func(V) Row
	keyFunc func(V) string

	width   int
	height  int
	noColor bool
}

// NewModel creates a focused table with the given columns.
func NewModel[V any](columns []Column, toRow func(V) Row, keyFunc func(V) string) *Model[V] {
	t := bubtable.New(
		bubtable.WithColumns(columns),
		bubtable.WithFocused(true),
		bubtable.WithHeight(10),
	)

	s := bubtable.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Bold(true).
		PaddingLeft(0).
		PaddingRight(1)
	s.Selected = s.Selected.PaddingLeft(0).PaddingRight(0)
	s.Cell = lipgloss.NewStyle().PaddingLeft(0).PaddingRight(1)
	t.SetStyles(s)

	return &Model[V]{
		table:   t,
		styles:  s,
		columns: columns,
		toRow:   toRow,
		keyFunc: keyFunc,
		width:   80,
		height:  10,
	}
}

// SetRows replaces the rows and reapplies the filter.
func (m *Model[V]) SetRows(rows []V) {
	m.rows = rows
	m.applyFilter()
}

// Rows returns the rows passing the filter.
func (m *Model[V]) Rows() []V {
	return m.filtered
}

// AllRows returns every row.
func (m *Model[V]) AllRows() []V {
	return m.rows
}

// Columns returns the column definitions.
func (m *Model[V]) Columns() []Column {
	return m.columns
}

// SetFilter keeps only rows whose key contains filter, ignoring case.
func (m *Model[V]) SetFilter(filter string) {
	m.filter = filter
	m.applyFilter()
}

// Filter returns the current filter text.
func (m *Model[V]) Filter() string {
	return m.filter
}

// ClearFilter shows all rows again.
func (m *Model[V]) ClearFilter() {
	m.SetFilter("")
}

func (m *Model[V]) applyFilter() {
	if m.filter == "" {
		m.filtered = m.rows
	} else {
		needle := strings.ToLower(m.filter)
		m.filtered = nil
		for _, row := range m.rows {
			if strings.Contains(strings.ToLower(m.keyFunc(row)), needle) {
				m.filtered = append(m.filtered, row)
			}
		}
	}

	tableRows := make([]Row, len(m.filtered))
	for i, row := range m.filtered {
		tableRows[i] = m.toRow(row)
	}
	m.table.SetRows(tableRows)

	if m.Cursor() >= len(m.filtered) && len(m.filtered) > 0 {
		m.SetCursor(0)
	}
}

// Cursor returns the cursor position within the filtered rows.
func (m *Model[V]) Cursor() int {
	return m.table.Cursor()
}

// SetCursor moves the cursor.
func (m *Model[V]) SetCursor(pos int) {
	m.table.SetCursor(pos)
}

// MoveUp moves the cursor up n rows.
func (m *Model[V]) MoveUp(n int) {
	m.table.MoveUp(n)
}

// MoveDown moves the cursor down n rows.
func (m *Model[V]) MoveDown(n int) {
	m.table.MoveDown(n)
}

// GotoTop moves the cursor to the first row.
func (m *Model[V]) GotoTop() {
	m.table.GotoTop()
}

// GotoBottom moves the cursor to the last row.
func (m *Model[V]) GotoBottom() {
	m.table.GotoBottom()
}

// SelectedRow returns the row under the cursor, or nil when there is none.
func (m *Model[V]) SelectedRow() *V {
	cursor := m.Cursor()
	if cursor < 0 || cursor >= len(m.filtered) {
		return nil
	}
	return &m.filtered[cursor]
}

// SetSize sets the table dimensions.
func (m *Model[V]) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetWidth(width)
	m.table.SetHeight(height)
}

// SetNoColor drops colors and marks the selected row with reverse video.
func (m *Model[V]) SetNoColor(noColor bool) {
	m.noColor = noColor
	s := m.styles
	if noColor {
		s.Header = s.Header.UnsetForeground().UnsetBackground()
		s.Selected = s.Selected.UnsetForeground().UnsetBackground().Reverse(true)
		s.Cell = s.Cell.UnsetForeground().UnsetBackground()
	}
	m.table.SetStyles(s)
}

// Update forwards navigation messages to the table.
func (m *Model[V]) Update(msg tea.Msg) (*Model[V], tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table.
func (m *Model[V]) View() string {
	return m.table.View()
}

func (m *Model[V]) String() string {
	return fmt.Sprintf("Table[rows=%d, filtered=%d, cursor=%d, filter=%q]",
		len(m.rows), len(m.filtered), m.Cursor(), m.filter)
}
