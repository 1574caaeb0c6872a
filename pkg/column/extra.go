package column

import (
	"math"

	"github.com/oakwood-commons/colkit/pkg/textfilter"
)

// Recognised extra property names.
const (
	PropDefault        = "default"
	PropRequiredHeader = "requiredHeader"
	PropEllipses       = "ellipses"
	PropFormat         = "format"
)

// RequiredHeaderClass marks the title of a required column.
const RequiredHeaderClass = "requiredHeader"

// DecoratorKind is one cross-cutting behavior driven by an extra property.
type DecoratorKind int

const (
	DecoratorDefault DecoratorKind = iota
	DecoratorRequiredHeader
	DecoratorEllipses
	DecoratorDateFormat
)

// Property returns the extra property name that enables the decorator.
func (k DecoratorKind) Property() string {
	switch k {
	case DecoratorDefault:
		return PropDefault
	case DecoratorRequiredHeader:
		return PropRequiredHeader
	case DecoratorEllipses:
		return PropEllipses
	default:
		return PropFormat
	}
}

func (k DecoratorKind) String() string { return k.Property() }

// DecoratorFor maps an extra property name to its decorator.
func DecoratorFor(name string) (DecoratorKind, bool) {
	switch name {
	case PropDefault:
		return DecoratorDefault, true
	case PropRequiredHeader:
		return DecoratorRequiredHeader, true
	case PropEllipses:
		return DecoratorEllipses, true
	case PropFormat:
		return DecoratorDateFormat, true
	}
	return 0, false
}

// Chain lists the decorators declared in props, in declaration order.
func Chain(props Props) []DecoratorKind {
	var chain []DecoratorKind
	for _, prop := range props {
		if k, ok := DecoratorFor(prop.Name); ok {
			chain = append(chain, k)
		}
	}
	return chain
}

// decorate runs every decorator declared in d.Fields once, earliest first,
// then strips the consumed properties. A later decorator may replace a hook
// installed by an earlier one.
func decorate(d *Descriptor) *Descriptor {
	chain := Chain(d.Fields)
	if len(chain) == 0 {
		return d
	}
	props := d.Fields.Clone()
	for _, k := range chain {
		k.apply(d, props)
	}
	for _, k := range chain {
		d.Fields.Delete(k.Property())
	}
	return d
}

func (k DecoratorKind) apply(d *Descriptor, props Props) {
	switch k {
	case DecoratorDefault:
		applyDefault(d, props)
	case DecoratorRequiredHeader:
		applyRequiredHeader(d, props)
	case DecoratorEllipses:
		applyEllipses(d, props)
	case DecoratorDateFormat:
		applyDateFormat(d, props)
	}
}

func applyDefault(d *Descriptor, props Props) {
	if d.CustomRender != nil {
		return
	}
	fallback := props.Value(PropDefault)
	d.CustomRender = func(text any, _ Record, _ int) (any, error) {
		if textfilter.Truthy(text) {
			return text, nil
		}
		return fallback, nil
	}
	d.renderBy = PropDefault
}

func applyRequiredHeader(d *Descriptor, props Props) {
	required := textfilter.Truthy(props.Value(PropRequiredHeader))
	title := d.Title
	class := ""
	if required {
		class = RequiredHeaderClass
	}
	markup := `<span class="` + class + `">` + title + `</span>`
	d.CustomHeaderCell = func(*Descriptor) HeaderProps {
		return HeaderProps{DomProps: map[string]any{"innerHTML": markup}}
	}
	d.headerBy = PropRequiredHeader
}

func applyEllipses(d *Descriptor, props Props) {
	value := props.Value(PropEllipses)
	fallback := props.Value(PropDefault)
	field := d.DataIndex
	d.CustomCell = func(record Record, _ int) (CellProps, error) {
		var cell CellProps
		if on, ok := value.(bool); ok {
			if on {
				cell.Style = map[string]string{
					"overflow":     "hidden",
					"whiteSpace":   "nowrap",
					"textOverflow": "ellipsis",
				}
				cell.Attrs = map[string]any{"title": record[field]}
			}
			return cell, nil
		}
		n, ok := toNumber(value)
		if !ok || math.IsInf(n, 0) {
			return cell, &PropertyError{
				Property: PropEllipses,
				Value:    value,
				Reason:   "value must be a boolean or a finite number or numeric string",
			}
		}
		text := record[field]
		if !textfilter.Truthy(text) {
			text = fallback
			if record != nil {
				record[field] = text
			}
		}
		cell.Attrs = map[string]any{"title": text}
		cell.DomProps = map[string]any{
			"innerHTML": textfilter.Truncate(text, truncateLength(n), textfilter.DefaultSuffix),
		}
		return cell, nil
	}
	d.cellBy = PropEllipses
}

// truncateLength converts a finite length to an int without overflowing;
// anything past MaxInt32 keeps the whole text.
func truncateLength(n float64) int {
	switch {
	case n >= math.MaxInt32:
		return math.MaxInt32
	case n <= 0:
		return 0
	}
	return int(n)
}

func applyDateFormat(d *Descriptor, props Props) {
	var pattern string
	if v := props.Value(PropFormat); v != nil {
		pattern = textfilter.Stringify(v)
	}
	d.CustomRender = func(text any, _ Record, _ int) (any, error) {
		t, ok := parseDate(text)
		if !ok {
			return nil, &PropertyError{Property: PropFormat, Value: text, Reason: "invalid date"}
		}
		out, err := formatDate(t, pattern)
		if err != nil {
			return nil, &PropertyError{Property: PropFormat, Value: text, Reason: err.Error()}
		}
		return out, nil
	}
	d.renderBy = PropFormat
}
