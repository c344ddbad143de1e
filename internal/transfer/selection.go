package transfer

import "sort"

// Selection owns the checked-id sets of both panes. Eligibility is decided
// by the owner through the function passed to NewSelection, so that an
// ineligible id can never enter a set.
type Selection struct {
	sets     [2]map[string]struct{}
	eligible func(p Pane, id string) bool
}

// NewSelection creates empty checked sets. A nil eligible func accepts
// every id.
func NewSelection(eligible func(p Pane, id string) bool) *Selection {
	if eligible == nil {
		eligible = func(Pane, string) bool { return true }
	}
	return &Selection{
		sets:     [2]map[string]struct{}{{}, {}},
		eligible: eligible,
	}
}

func (s *Selection) set(p Pane) map[string]struct{} {
	return s.sets[p.index()]
}

// Toggle flips membership of id in the pane's checked set. Ineligible ids
// are rejected with ErrNotEligible and leave the set untouched. Unchecking
// is always allowed.
func (s *Selection) Toggle(p Pane, id string) error {
	set := s.set(p)
	if _, ok := set[id]; ok {
		delete(set, id)
		return nil
	}
	if !s.eligible(p, id) {
		return ErrNotEligible
	}
	set[id] = struct{}{}
	return nil
}

// SetAll replaces the pane's checked set with the eligible members of ids.
func (s *Selection) SetAll(p Pane, ids []string) {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if s.eligible(p, id) {
			set[id] = struct{}{}
		}
	}
	s.sets[p.index()] = set
}

// Clear empties the pane's checked set.
func (s *Selection) Clear(p Pane) {
	s.sets[p.index()] = map[string]struct{}{}
}

// Retain drops every checked id for which keep returns false.
func (s *Selection) Retain(p Pane, keep func(id string) bool) {
	set := s.set(p)
	for id := range set {
		if !keep(id) {
			delete(set, id)
		}
	}
}

// Remove unchecks the given ids in the pane.
func (s *Selection) Remove(p Pane, ids ...string) {
	set := s.set(p)
	for _, id := range ids {
		delete(set, id)
	}
}

// Has reports whether id is checked in the pane.
func (s *Selection) Has(p Pane, id string) bool {
	_, ok := s.set(p)[id]
	return ok
}

// Len returns the number of checked ids in the pane.
func (s *Selection) Len(p Pane) int {
	return len(s.set(p))
}

// IDs returns the pane's checked ids, sorted.
func (s *Selection) IDs(p Pane) []string {
	set := s.set(p)
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// HeaderState derives the "select all" checkbox value. For the pool pane
// it is true iff the checked set equals the non-empty eligible set; for the
// chosen pane it is true iff anything is checked.
func (s *Selection) HeaderState(p Pane, eligible []string) bool {
	set := s.set(p)
	if p == PaneChosen {
		return len(set) > 0
	}
	if len(eligible) == 0 || len(set) != len(eligible) {
		return false
	}
	for _, id := range eligible {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}

func (p Pane) index() int {
	if p == PaneChosen {
		return 1
	}
	return 0
}
