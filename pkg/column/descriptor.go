package column

import (
	"github.com/oakwood-commons/colkit/pkg/textfilter"
)

// Align is the horizontal alignment of a column's cells.
type Align string

// Supported alignments.
const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Scope tells T whether the caller wants custom rendering for a field.
// ScopeUnset lets T apply the built-in behavior for reserved field keys.
type Scope int8

const (
	ScopeUnset Scope = iota
	ScopeCustom
	ScopeNative
)

// ScopeOf maps an optional boolean onto a Scope.
func ScopeOf(b *bool) Scope {
	switch {
	case b == nil:
		return ScopeUnset
	case *b:
		return ScopeCustom
	default:
		return ScopeNative
	}
}

// IsSet reports whether the caller gave an explicit scope.
func (s Scope) IsSet() bool { return s != ScopeUnset }

// Custom reports whether custom rendering was requested.
func (s Scope) Custom() bool { return s == ScopeCustom }

func (s Scope) String() string {
	switch s {
	case ScopeCustom:
		return "custom"
	case ScopeNative:
		return "native"
	default:
		return "unset"
	}
}

// Record is one table row keyed by field.
type Record map[string]any

// RenderFunc renders a body cell's content. text is record[DataIndex].
type RenderFunc func(text any, record Record, rowIndex int) (any, error)

// CellFunc returns per-cell attributes (style, tooltip, markup).
type CellFunc func(record Record, rowIndex int) (CellProps, error)

// HeaderCellFunc returns header cell attributes.
type HeaderCellFunc func(col *Descriptor) HeaderProps

// CellProps is the result of a CellFunc. Attrs["title"] carries the hover
// tooltip and DomProps["innerHTML"] replaces the cell content with markup.
type CellProps struct {
	Style    map[string]string
	Attrs    map[string]any
	DomProps map[string]any
}

// InnerHTML returns DomProps["innerHTML"] when it is set.
func (c CellProps) InnerHTML() (string, bool) {
	return innerHTML(c.DomProps)
}

// Tooltip returns Attrs["title"] when it is set.
func (c CellProps) Tooltip() (any, bool) {
	v, ok := c.Attrs["title"]
	return v, ok
}

// HeaderProps is the result of a HeaderCellFunc.
type HeaderProps struct {
	DomProps map[string]any
}

// InnerHTML returns DomProps["innerHTML"] when it is set.
func (h HeaderProps) InnerHTML() (string, bool) {
	return innerHTML(h.DomProps)
}

func innerHTML(dom map[string]any) (string, bool) {
	v, ok := dom["innerHTML"]
	if !ok {
		return "", false
	}
	return textfilter.Stringify(v), true
}

// ScopedSlots binds the column to a named slot supplied by the host renderer.
type ScopedSlots struct {
	CustomRender string
}

// Descriptor is the configuration of one table column.
type Descriptor struct {
	Title     string
	DataIndex string
	Key       string
	Align     Align

	ScopedSlots      *ScopedSlots
	CustomRender     RenderFunc
	CustomCell       CellFunc
	CustomHeaderCell HeaderCellFunc

	// Fields holds passthrough properties such as width or fixed.
	Fields Props

	// which strategy or property installed each hook; reported by Props
	renderBy, cellBy, headerBy string
}

// Width returns the numeric "width" passthrough field, if any.
func (d *Descriptor) Width() (int, bool) {
	f, ok := textfilter.AsFloat(d.Fields.Value("width"))
	if !ok || f <= 0 {
		return 0, false
	}
	return int(f), true
}

// HookSource names what installed the given hook ("customRender",
// "customCell" or "customHeaderCell"), or "" when the hook is unset.
func (d *Descriptor) HookSource(hook string) string {
	switch hook {
	case "customRender":
		if d.CustomRender != nil {
			return d.renderBy
		}
	case "customCell":
		if d.CustomCell != nil {
			return d.cellBy
		}
	case "customHeaderCell":
		if d.CustomHeaderCell != nil {
			return d.headerBy
		}
	}
	return ""
}

// Props returns the literal view of the descriptor in the order a host
// renderer would see its keys. Hooks are reported as "<func:source>".
func (d *Descriptor) Props() Props {
	var p Props
	p.Set("title", d.Title)
	p.Set("align", string(d.Align))
	p.Set("dataIndex", d.DataIndex)
	if d.Key != "" {
		p.Set("key", d.Key)
	}
	if d.ScopedSlots != nil {
		p.Set("scopedSlots", Props{{Name: "customRender", Value: d.ScopedSlots.CustomRender}})
	}
	for _, prop := range d.Fields {
		p.Set(prop.Name, prop.Value)
	}
	for _, hook := range []string{"customRender", "customCell", "customHeaderCell"} {
		if src := d.HookSource(hook); src != "" {
			p.Set(hook, "<func:"+src+">")
		}
	}
	return p
}

// merge copies caller properties onto d the way an object spread would:
// descriptor keys overwrite the matching field, hooks of the right type
// replace the hook, anything else lands in Fields.
func (d *Descriptor) merge(extra Props) {
	for _, prop := range extra {
		switch prop.Name {
		case "title":
			d.Title = textfilter.Stringify(prop.Value)
		case "dataIndex":
			d.DataIndex = textfilter.Stringify(prop.Value)
		case "key":
			d.Key = textfilter.Stringify(prop.Value)
		case "align":
			d.Align = Align(textfilter.Stringify(prop.Value))
		case "scope":
			// routing flag only; never part of the output
		case "scopedSlots":
			if slots, ok := toScopedSlots(prop.Value); ok {
				d.ScopedSlots = slots
			} else {
				d.Fields.Set(prop.Name, prop.Value)
			}
		case "customRender":
			if fn, ok := toRenderFunc(prop.Value); ok {
				d.CustomRender, d.renderBy = fn, "caller"
			} else {
				d.Fields.Set(prop.Name, prop.Value)
			}
		case "customCell":
			if fn, ok := toCellFunc(prop.Value); ok {
				d.CustomCell, d.cellBy = fn, "caller"
			} else {
				d.Fields.Set(prop.Name, prop.Value)
			}
		case "customHeaderCell":
			if fn, ok := toHeaderCellFunc(prop.Value); ok {
				d.CustomHeaderCell, d.headerBy = fn, "caller"
			} else {
				d.Fields.Set(prop.Name, prop.Value)
			}
		default:
			d.Fields.Set(prop.Name, prop.Value)
		}
	}
}

func toScopedSlots(v any) (*ScopedSlots, bool) {
	switch s := v.(type) {
	case *ScopedSlots:
		return s, s != nil
	case ScopedSlots:
		return &s, true
	case map[string]any:
		if name, ok := s["customRender"].(string); ok {
			return &ScopedSlots{CustomRender: name}, true
		}
	case Props:
		if name, ok := s.Value("customRender").(string); ok {
			return &ScopedSlots{CustomRender: name}, true
		}
	}
	return nil, false
}

func toRenderFunc(v any) (RenderFunc, bool) {
	switch fn := v.(type) {
	case RenderFunc:
		return fn, fn != nil
	case func(any, Record, int) (any, error):
		return fn, fn != nil
	}
	return nil, false
}

func toCellFunc(v any) (CellFunc, bool) {
	switch fn := v.(type) {
	case CellFunc:
		return fn, fn != nil
	case func(Record, int) (CellProps, error):
		return fn, fn != nil
	}
	return nil, false
}

func toHeaderCellFunc(v any) (HeaderCellFunc, bool) {
	switch fn := v.(type) {
	case HeaderCellFunc:
		return fn, fn != nil
	case func(*Descriptor) HeaderProps:
		return fn, fn != nil
	}
	return nil, false
}
