package ui

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/colkit/internal/render"
	"github.com/oakwood-commons/colkit/pkg/column"
)

func previewTable(t *testing.T) *render.Table {
	t.Helper()
	cols := []*column.Descriptor{
		column.T("#", column.IndexKey, column.ScopeUnset, nil),
		column.T("Name", "name", column.ScopeUnset, column.P("requiredHeader", true)),
		column.Edit("Notes", "notes", column.P("ellipses", 3)),
	}
	records := []column.Record{
		{"name": "Ann", "notes": "first note"},
		{"name": "Bob", "notes": "second"},
	}
	tbl, err := render.Build(cols, records, nil)
	require.NoError(t, err)
	return tbl
}

func press(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		var msg tea.KeyPressMsg
		switch k {
		case "enter":
			msg = tea.KeyPressMsg{Code: tea.KeyEnter}
		case "esc":
			msg = tea.KeyPressMsg{Code: tea.KeyEscape}
		case "down":
			msg = tea.KeyPressMsg{Code: tea.KeyDown}
		default:
			r := []rune(k)[0]
			msg = tea.KeyPressMsg{Code: r, Text: k}
		}
		m, _ = m.Update(msg)
	}
	return m
}

func TestPreviewSummaryAndHeaders(t *testing.T) {
	m := NewPreview("people", previewTable(t), true)
	assert.Equal(t, "people · 2 rows", m.Summary())
	assert.Equal(t, []string{"#", "Name", "Notes"}, m.headers)

	row := m.Selected()
	require.NotNil(t, row)
	assert.Equal(t, []string{"1", "Ann", "fir..."}, row.Text)
	assert.Equal(t, "Notes: first note", m.Footer())
}

func TestPreviewNavigation(t *testing.T) {
	m := NewPreview("", previewTable(t), true)
	press(m, "down")
	row := m.Selected()
	require.NotNil(t, row)
	assert.Equal(t, 1, row.Index)
	assert.Equal(t, "Bob", row.Text[1])
}

func TestPreviewFilter(t *testing.T) {
	m := NewPreview("", previewTable(t), true)
	press(m, "/", "b", "o", "b", "enter")

	assert.False(t, m.filtering)
	assert.Equal(t, "1 of 2 rows", m.Summary())
	assert.Equal(t, "Bob", m.Selected().Text[1])

	press(m, "esc")
	assert.Equal(t, "2 rows", m.Summary())
}

func TestPreviewQuit(t *testing.T) {
	m := NewPreview("", previewTable(t), true)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
	assert.Empty(t, fmt.Sprint(m.View().Content))
}

func TestPreviewView(t *testing.T) {
	m := NewPreview("people", previewTable(t), true)
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 12})
	content := fmt.Sprint(m.View().Content)
	assert.True(t, strings.HasPrefix(content, "people · 2 rows"))
	assert.Contains(t, content, "Ann")
}

func TestPreviewVimTopBottom(t *testing.T) {
	m := NewPreview("", previewTable(t), true)
	press(m, "G")
	assert.Equal(t, "Bob", m.Selected().Text[1])
	press(m, "g", "g")
	assert.Equal(t, "Ann", m.Selected().Text[1])
	press(m, "j")
	assert.Equal(t, "Bob", m.Selected().Text[1])
}

func TestPreviewEmacsKeys(t *testing.T) {
	m := NewPreview("", previewTable(t), true, WithKeyMode(KeyModeEmacs))
	m.Update(tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl})
	assert.Equal(t, "Bob", m.Selected().Text[1])

	// vim keys do nothing in emacs mode
	press(m, "k")
	assert.Equal(t, "Bob", m.Selected().Text[1])

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	assert.Nil(t, cmd)
}

func TestKeyResolver(t *testing.T) {
	tests := []struct {
		mode KeyMode
		keys []string
		want KeyAction
	}{
		{mode: KeyModeVim, keys: []string{"j"}, want: ActionDown},
		{mode: KeyModeVim, keys: []string{"g", "g"}, want: ActionTop},
		{mode: KeyModeVim, keys: []string{"g", "j"}, want: ActionDown},
		{mode: KeyModeVim, keys: []string{"esc"}, want: ActionClear},
		{mode: KeyModeEmacs, keys: []string{"ctrl+s"}, want: ActionFilter},
		{mode: KeyModeEmacs, keys: []string{"/"}, want: ActionNone},
		{mode: KeyModeFunction, keys: []string{"q"}, want: ActionNone},
		{mode: KeyModeFunction, keys: []string{"f10"}, want: ActionQuit},
		{mode: KeyModeFunction, keys: []string{"pgdown"}, want: ActionPageDown},
		{mode: "bogus", keys: []string{"G"}, want: ActionBottom},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode)+"/"+strings.Join(tt.keys, ""), func(t *testing.T) {
			r := newKeyResolver(tt.mode)
			var got KeyAction
			for _, k := range tt.keys {
				got = r.resolve(k)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsValidKeyMode(t *testing.T) {
	assert.True(t, IsValidKeyMode(""))
	assert.True(t, IsValidKeyMode("emacs"))
	assert.False(t, IsValidKeyMode("nano"))
}
