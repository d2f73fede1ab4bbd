package news

// TitleCache remembers the N most recently recorded article titles. Eviction
// is strictly FIFO: Record is only called for titles already confirmed new,
// so re-seeing a title never refreshes its position. Not safe for concurrent
// use; the polling loop is the only caller.
type TitleCache struct {
	capacity int
	order    []string
	members  map[string]struct{}
}

// NewTitleCache creates a cache holding at most capacity titles.
func NewTitleCache(capacity int) *TitleCache {
	if capacity <= 0 {
		capacity = 10
	}
	return &TitleCache{
		capacity: capacity,
		order:    make([]string, 0, capacity),
		members:  make(map[string]struct{}, capacity),
	}
}

// Seen reports whether the title is currently cached. An empty title is
// always "seen" so that it can never pollute the cache.
func (c *TitleCache) Seen(title string) bool {
	if title == "" {
		return true
	}
	_, ok := c.members[title]
	return ok
}

// Record inserts a title, evicting the oldest entry when at capacity.
func (c *TitleCache) Record(title string) {
	if title == "" {
		return
	}
	if _, ok := c.members[title]; ok {
		return
	}
	if len(c.order) == c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.members, oldest)
	}
	c.order = append(c.order, title)
	c.members[title] = struct{}{}
}

// Len returns the number of cached titles.
func (c *TitleCache) Len() int { return len(c.order) }
