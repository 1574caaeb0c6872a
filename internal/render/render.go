// Package render draws records through column descriptors the way a host
// table component would: it calls the descriptor hooks for every cell and
// lays the results out as text, markdown or html.
package render

import (
	"fmt"
	"strings"

	"github.com/oakwood-commons/colkit/pkg/column"
	"github.com/oakwood-commons/colkit/pkg/textfilter"
)

// SlotValue is the placeholder replaced with the raw field value in slot
// templates.
const SlotValue = "{value}"

// Cell is one rendered table cell.
type Cell struct {
	// Text is the cell content, possibly markup.
	Text string

	// Tooltip is the hover text, empty when the column sets none.
	Tooltip string

	// Style holds inline style declarations from the cell hook.
	Style map[string]string
}

// Table is the rendered form of a record list.
type Table struct {
	Headers []string
	Aligns  []column.Align
	// MaxWidths holds each column's "width" field, 0 when unset.
	MaxWidths []int
	Rows      [][]Cell
}

// HookError reports a hook failure with the column and row it happened at.
type HookError struct {
	Column string
	Row    int
	Hook   string
	Err    error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("column %q row %d: %s: %v", e.Column, e.Row, e.Hook, e.Err)
}

func (e *HookError) Unwrap() error { return e.Err }

// Build invokes the hooks of cols for every record. Row indexes passed to
// hooks are positions in records. slots maps scoped slot names to
// templates; a slot missing from the map renders as "[slot:<name>]".
func Build(cols []*column.Descriptor, records []column.Record, slots map[string]string) (*Table, error) {
	t := &Table{
		Headers:   make([]string, len(cols)),
		Aligns:    make([]column.Align, len(cols)),
		MaxWidths: make([]int, len(cols)),
		Rows:      make([][]Cell, 0, len(records)),
	}
	for i, col := range cols {
		t.Headers[i] = header(col)
		t.Aligns[i] = col.Align
		if w, ok := col.Width(); ok {
			t.MaxWidths[i] = w
		}
	}

	for row, record := range records {
		cells := make([]Cell, len(cols))
		for i, col := range cols {
			c, err := cell(col, record, row, slots)
			if err != nil {
				return nil, err
			}
			cells[i] = c
		}
		t.Rows = append(t.Rows, cells)
	}
	return t, nil
}

func header(col *column.Descriptor) string {
	if col.CustomHeaderCell != nil {
		if markup, ok := col.CustomHeaderCell(col).InnerHTML(); ok {
			return markup
		}
	}
	return col.Title
}

func cell(col *column.Descriptor, record column.Record, row int, slots map[string]string) (Cell, error) {
	name := col.Key
	if name == "" {
		name = col.DataIndex
	}
	raw := record[col.DataIndex]

	var c Cell
	switch {
	case col.CustomRender != nil:
		v, err := col.CustomRender(raw, record, row)
		if err != nil {
			return c, &HookError{Column: name, Row: row, Hook: "customRender", Err: err}
		}
		c.Text = display(v)
	case col.ScopedSlots != nil:
		c.Text = slot(col.ScopedSlots.CustomRender, raw, slots)
	default:
		c.Text = display(raw)
	}

	if col.CustomCell != nil {
		props, err := col.CustomCell(record, row)
		if err != nil {
			return c, &HookError{Column: name, Row: row, Hook: "customCell", Err: err}
		}
		if markup, ok := props.InnerHTML(); ok {
			c.Text = markup
		}
		if tip, ok := props.Tooltip(); ok {
			c.Tooltip = display(tip)
		}
		c.Style = props.Style
	}
	return c, nil
}

func slot(name string, raw any, slots map[string]string) string {
	tmpl, ok := slots[name]
	if !ok {
		return "[slot:" + name + "]"
	}
	return strings.ReplaceAll(tmpl, SlotValue, display(raw))
}

// display stringifies a value for a cell; absent values render empty.
func display(v any) string {
	if v == nil {
		return ""
	}
	return textfilter.Stringify(v)
}
