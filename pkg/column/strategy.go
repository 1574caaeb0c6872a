package column

// Reserved field keys with built-in behavior.
const (
	IndexKey  = "index"
	ActionKey = "action"
)

// StrategyKind classifies how a field key is rendered.
type StrategyKind int

const (
	// StrategyNull leaves rendering to the extra-property chain.
	StrategyNull StrategyKind = iota
	// StrategyIndex renders a 1-based row number.
	StrategyIndex
	// StrategyAction renders a left-aligned action slot.
	StrategyAction
)

func (k StrategyKind) String() string {
	switch k {
	case StrategyIndex:
		return "index"
	case StrategyAction:
		return "action"
	default:
		return "null"
	}
}

// Terminal reports whether the strategy finishes the descriptor, skipping
// extra-property decoration.
func (k StrategyKind) Terminal() bool {
	return k != StrategyNull
}

// SelectStrategy picks the strategy for a field. Reserved keys only get
// their built-in behavior when the caller left scope unset; naming a data
// field "index" or "action" without a scope is a known collision.
func SelectStrategy(dataIndex string, scope Scope) StrategyKind {
	if scope.IsSet() {
		return StrategyNull
	}
	switch dataIndex {
	case IndexKey:
		return StrategyIndex
	case ActionKey:
		return StrategyAction
	default:
		return StrategyNull
	}
}

func (k StrategyKind) apply(d *Descriptor, scope Scope) {
	switch k {
	case StrategyIndex:
		d.CustomRender = renderRowNumber
		d.renderBy = k.String()
	case StrategyAction:
		d.Align = AlignLeft
		d.ScopedSlots = &ScopedSlots{CustomRender: d.DataIndex}
	default:
		if scope.Custom() {
			d.ScopedSlots = &ScopedSlots{CustomRender: d.DataIndex}
		}
	}
}

func renderRowNumber(_ any, _ Record, rowIndex int) (any, error) {
	return rowIndex + 1, nil
}
