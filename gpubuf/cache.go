package gpubuf

// releaser is implemented by buffers that know when they were released.
type releaser interface {
	Released() bool
}

// Cache holds derived state per buffer, keyed by buffer identity. Two
// draws sharing a name but not a buffer never share an entry.
type Cache[V any] struct {
	entries map[Buffer]*V
}

// NewCache creates an empty cache.
func NewCache[V any]() *Cache[V] {
	return &Cache[V]{entries: make(map[Buffer]*V)}
}

// Get returns the entry for b. A missing entry is created by init, or
// zeroed when init is nil.
func (c *Cache[V]) Get(b Buffer, init func() *V) *V {
	if v, ok := c.entries[b]; ok {
		return v
	}
	var v *V
	if init != nil {
		v = init()
	} else {
		v = new(V)
	}
	c.entries[b] = v
	return v
}

// Prune drops entries whose buffer has been released and returns how many
// were removed.
func (c *Cache[V]) Prune() int {
	n := 0
	for b := range c.entries {
		if r, ok := b.(releaser); ok && r.Released() {
			delete(c.entries, b)
			n++
		}
	}
	return n
}

// Len returns the number of entries.
func (c *Cache[V]) Len() int { return len(c.entries) }

// Reset drops every entry.
func (c *Cache[V]) Reset() {
	clear(c.entries)
}
