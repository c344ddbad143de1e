package transfer

// Chosen is the ordered, duplicate-free collection of chosen items.
type Chosen[T Item] struct {
	items []T
	index map[string]int
}

// NewChosen creates an empty collection.
func NewChosen[T Item]() *Chosen[T] {
	return &Chosen[T]{index: make(map[string]int)}
}

// AppendBatch appends every item whose id is not yet present, keeping the
// batch order. Already-present ids (including duplicates inside the batch)
// are skipped. It returns the ids actually appended.
func (c *Chosen[T]) AppendBatch(items []T) []string {
	added := make([]string, 0, len(items))
	for _, it := range items {
		id := it.ItemID()
		if _, ok := c.index[id]; ok {
			continue
		}
		c.index[id] = len(c.items)
		c.items = append(c.items, it)
		added = append(added, id)
	}
	return added
}

// RemoveOne deletes id if present and returns the removed ids.
func (c *Chosen[T]) RemoveOne(id string) []string {
	return c.RemoveBatch([]string{id})
}

// RemoveBatch deletes every listed id that is present and returns the ids
// actually removed, in collection order.
func (c *Chosen[T]) RemoveBatch(ids []string) []string {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := c.index[id]; ok {
			drop[id] = true
		}
	}
	if len(drop) == 0 {
		return []string{}
	}
	removed := make([]string, 0, len(drop))
	kept := c.items[:0]
	for _, it := range c.items {
		if drop[it.ItemID()] {
			removed = append(removed, it.ItemID())
			continue
		}
		kept = append(kept, it)
	}
	// Zero the tail so dropped items are not retained by the backing array.
	var zero T
	for i := len(kept); i < len(c.items); i++ {
		c.items[i] = zero
	}
	c.items = kept
	c.reindex()
	return removed
}

// Contains reports whether id is in the collection.
func (c *Chosen[T]) Contains(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Len returns the number of chosen items.
func (c *Chosen[T]) Len() int { return len(c.items) }

// List returns a snapshot of the chosen items in order.
func (c *Chosen[T]) List() []T {
	return append([]T{}, c.items...)
}

// IDs returns the chosen ids in order.
func (c *Chosen[T]) IDs() []string { return ids(c.items) }

// Reset empties the collection.
func (c *Chosen[T]) Reset() {
	c.items = nil
	c.index = make(map[string]int)
}

func (c *Chosen[T]) reindex() {
	c.index = make(map[string]int, len(c.items))
	for i, it := range c.items {
		c.index[it.ItemID()] = i
	}
}
