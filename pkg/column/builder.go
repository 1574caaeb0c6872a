package column

// T builds a data column. Reserved keys ("index", "action") get their
// built-in behavior when scope is ScopeUnset and ignore extra; any other
// column is decorated with the extra properties in declaration order.
// Unrecognised extra properties pass through into Fields.
func T(title, col string, scope Scope, extra Props) *Descriptor {
	d := &Descriptor{
		Title:     title,
		Align:     AlignCenter,
		DataIndex: col,
		Key:       col,
	}
	kind := SelectStrategy(col, scope)
	kind.apply(d, scope)
	if kind.Terminal() {
		return d
	}
	d.merge(extra)
	return decorate(d)
}

// Edit builds an editable column: always bound to the slot named after col
// and decorated with extra. No reserved-key handling applies.
func Edit(title, col string, extra Props) *Descriptor {
	d := &Descriptor{
		Title:       title,
		DataIndex:   col,
		Align:       AlignCenter,
		ScopedSlots: &ScopedSlots{CustomRender: col},
	}
	d.merge(extra)
	return decorate(d)
}
