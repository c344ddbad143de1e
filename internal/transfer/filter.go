package transfer

import "strings"

// Query is the search state entered by the user: free text plus an
// optional category token.
type Query struct {
	Text     string
	Category string
}

// IsEmpty reports whether the query represents "no active filter".
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Text) == "" && strings.TrimSpace(q.Category) == ""
}

// Predicate decides whether an item is visible under a query.
type Predicate[T Item] func(item T, q Query) bool

// Filter returns the items of pool accepted by pred under q. An empty query
// yields the whole pool so that a blank search browses everything. The
// result is always a fresh, non-nil slice.
func Filter[T Item](pool []T, q Query, pred Predicate[T]) []T {
	out := make([]T, 0, len(pool))
	if q.IsEmpty() || pred == nil {
		return append(out, pool...)
	}
	for _, it := range pool {
		if pred(it, q) {
			out = append(out, it)
		}
	}
	return out
}

// FieldPredicate builds a Predicate that matches the query category against
// categoryField and the query text against any of textFields. When both are
// set, both must match. A nil Matcher means Contains.
func FieldPredicate[T Item](m Matcher, categoryField string, textFields ...string) Predicate[T] {
	if m == nil {
		m = Contains
	}
	return func(item T, q Query) bool {
		if category := strings.TrimSpace(q.Category); category != "" {
			if !m(item.Field(categoryField), category) {
				return false
			}
		}
		text := strings.TrimSpace(q.Text)
		if text == "" {
			return true
		}
		for _, f := range textFields {
			if m(item.Field(f), text) {
				return true
			}
		}
		return false
	}
}
