package classify

import (
	"container/list"

	"github.com/kordes/clipsense/internal/entry"
)

// lruCache is a bounded key → Category store with least-recently-used
// eviction. Not safe for concurrent use; the Classifier serializes
// access behind its own mutex.
type lruCache struct {
	capacity int
	order    *list.List // front = most recently used
	items    map[string]*list.Element
}

type lruItem struct {
	key      string
	category entry.Category
}

func newLRUCache(capacity int) *lruCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &lruCache{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// get returns the cached category and marks the key as most recently used.
func (c *lruCache) get(key string) (entry.Category, bool) {
	elem, ok := c.items[key]
	if !ok {
		return "", false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*lruItem).category, true
}

// put stores a category, evicting the least-recently-used key when the
// capacity is exceeded.
func (c *lruCache) put(key string, category entry.Category) {
	if elem, ok := c.items[key]; ok {
		elem.Value.(*lruItem).category = category
		c.order.MoveToFront(elem)
		return
	}

	elem := c.order.PushFront(&lruItem{key: key, category: category})
	c.items[key] = elem

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*lruItem).key)
		}
	}
}

// len returns the number of cached keys.
func (c *lruCache) len() int {
	return c.order.Len()
}
