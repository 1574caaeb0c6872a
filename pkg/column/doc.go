// Package column builds declarative column descriptors for table renderers.
//
// A descriptor is produced in two stages. [T] first classifies the column by
// its field key (row index, action buttons, or plain data) and then, for
// plain data columns, applies the extra properties the caller declared:
//
//	column.T("Name", "name", column.ScopeUnset, column.P(
//		"requiredHeader", true,
//		"default", "N/A",
//		"width", 120,
//	))
//
// [Edit] skips classification and always binds a custom-render slot.
//
// Extra properties are applied in declaration order and later ones may
// replace a hook installed by earlier ones; only "default" refuses to
// replace an existing render hook. Hooks run lazily in the host renderer,
// so malformed "ellipses" or "format" values surface as [ErrInvalidArgument]
// at render time rather than from T or Edit. A "format" column whose field
// is absent or nil also fails with [ErrInvalidArgument] instead of showing
// the current time.
package column
