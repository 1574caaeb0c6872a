package render

import (
	"fmt"
	"html"
	"os"
	"sort"
	"strings"
	"unicode"

	"charm.land/lipgloss/v2"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	runewidth "github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/oakwood-commons/colkit/pkg/column"
	"github.com/oakwood-commons/colkit/pkg/settings"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("248"))
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Options configures table output.
type Options struct {
	// Format is one of settings.OutputText (default),
	// settings.OutputMarkdown or settings.OutputHTML.
	Format string

	// NoColor disables styling in text output.
	NoColor bool

	// Width is the total width for text output. 0 uses the terminal width.
	Width int
}

// Render lays t out in the requested format.
func Render(t *Table, opts Options) (string, error) {
	switch opts.Format {
	case "", settings.OutputText:
		return Text(t, opts), nil
	case settings.OutputMarkdown:
		return Markdown(t), nil
	case settings.OutputHTML:
		return HTML(t), nil
	default:
		return "", fmt.Errorf("unsupported output format %q", opts.Format)
	}
}

// Text renders t as an aligned terminal table.
func Text(t *Table, opts Options) string {
	if len(t.Headers) == 0 {
		return ""
	}

	headers := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		headers[i] = PlainText(h)
	}
	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		rows[r] = make([]string, len(row))
		for i, c := range row {
			rows[r][i] = singleLine(PlainText(c.Text))
		}
	}

	total := opts.Width
	if total <= 0 {
		total = terminalWidth()
	}
	widths := columnWidths(headers, rows, t.MaxWidths, total)

	const sep = "  "
	var b strings.Builder
	parts := make([]string, len(headers))
	for i, h := range headers {
		parts[i] = fit(h, widths[i], t.Aligns[i])
		if !opts.NoColor {
			parts[i] = headerStyle.Render(parts[i])
		}
	}
	b.WriteString(strings.Join(parts, sep) + "\n")

	line := strings.Repeat("─", sum(widths)+len(sep)*(len(widths)-1))
	if !opts.NoColor {
		line = separatorStyle.Render(line)
	}
	b.WriteString(line + "\n")

	for _, row := range rows {
		for i, v := range row {
			parts[i] = fit(v, widths[i], t.Aligns[i])
			if !opts.NoColor {
				parts[i] = valueStyle.Render(parts[i])
			}
		}
		b.WriteString(strings.Join(parts, sep) + "\n")
	}
	return b.String()
}

// Markdown renders t as a pipe table. Cell markup is kept when it is safe.
func Markdown(t *Table) string {
	if len(t.Headers) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("|")
	for _, h := range t.Headers {
		b.WriteString(" " + markdownCell(h) + " |")
	}
	b.WriteString("\n|")
	for _, a := range t.Aligns {
		switch a {
		case column.AlignLeft:
			b.WriteString(" :--- |")
		case column.AlignRight:
			b.WriteString(" ---: |")
		default:
			b.WriteString(" :---: |")
		}
	}
	b.WriteString("\n")
	for _, row := range t.Rows {
		b.WriteString("|")
		for _, c := range row {
			text := c.Text
			if attrs := spanAttrs(c); attrs != "" {
				text = `<span` + attrs + `>` + text + `</span>`
			}
			b.WriteString(" " + markdownCell(text) + " |")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// HTML renders t as an html table converted from its markdown form.
func HTML(t *Table) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(Markdown(t)))
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return string(markdown.Render(doc, renderer))
}

func markdownCell(s string) string {
	s = singleLine(SafeMarkup(s))
	return strings.ReplaceAll(s, "|", `\|`)
}

// spanAttrs renders the tooltip and inline style of c as span attributes.
func spanAttrs(c Cell) string {
	var b strings.Builder
	if c.Tooltip != "" {
		b.WriteString(` title="` + html.EscapeString(c.Tooltip) + `"`)
	}
	if len(c.Style) > 0 {
		names := make([]string, 0, len(c.Style))
		for name := range c.Style {
			names = append(names, name)
		}
		sort.Strings(names)
		decls := make([]string, len(names))
		for i, name := range names {
			decls[i] = cssProperty(name) + ": " + c.Style[name]
		}
		b.WriteString(` style="` + html.EscapeString(strings.Join(decls, "; ")) + `"`)
	}
	return b.String()
}

// cssProperty turns a camelCase style key such as "textOverflow" into
// its CSS name.
func cssProperty(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func singleLine(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\t", " ").Replace(s)
}

// fit truncates s to width and pads it according to align.
func fit(s string, width int, align column.Align) string {
	if runewidth.StringWidth(s) > width {
		tail := "..."
		if width < 3 {
			tail = ""
		}
		s = runewidth.Truncate(s, width, tail)
	}
	pos := lipgloss.Center
	switch align {
	case column.AlignLeft:
		pos = lipgloss.Left
	case column.AlignRight:
		pos = lipgloss.Right
	}
	return lipgloss.NewStyle().Width(width).Align(pos).Render(s)
}

// columnWidths sizes each column to its widest value, caps it at the
// column's width field, then shrinks the widest columns until the table
// fits in total.
func columnWidths(headers []string, rows [][]string, caps []int, total int) []int {
	const sepWidth = 2
	const minColWidth = 3

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, v := range row {
			if w := runewidth.StringWidth(v); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if i < len(caps) && caps[i] > 0 && widths[i] > caps[i] {
			widths[i] = caps[i]
		}
		if widths[i] < 1 {
			widths[i] = 1
		}
	}

	usable := total - sepWidth*(len(widths)-1)
	for usable > 0 && sum(widths) > usable {
		order := make([]int, len(widths))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool { return widths[order[a]] > widths[order[b]] })
		if widths[order[0]] <= minColWidth {
			break
		}
		widths[order[0]]--
	}
	return widths
}

func sum(ns []int) int {
	total := 0
	for _, n := range ns {
		total += n
	}
	return total
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 120
	}
	return width
}
