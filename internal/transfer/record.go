package transfer

// Item is a candidate record the control can hold. Identity is by ItemID;
// Field exposes named display values used for rendering and filtering.
type Item interface {
	ItemID() string
	Field(name string) string
}

// Record is an untyped Item produced by loaders that have no richer shape.
type Record struct {
	ID     string
	Fields map[string]string
}

// ItemID returns the record id.
func (r Record) ItemID() string { return r.ID }

// Field returns the named display field, or "" when absent.
func (r Record) Field(name string) string {
	if r.Fields == nil {
		return ""
	}
	return r.Fields[name]
}

// Pane identifies one side of the control.
type Pane int

const (
	PanePool   Pane = iota // left: filtered candidates
	PaneChosen             // right: ordered chosen set
)

// String returns the display name for a pane.
func (p Pane) String() string {
	switch p {
	case PanePool:
		return "pool"
	case PaneChosen:
		return "chosen"
	default:
		return "unknown"
	}
}

// ids extracts item ids in order.
func ids[T Item](items []T) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ItemID())
	}
	return out
}
