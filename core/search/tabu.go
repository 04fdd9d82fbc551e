package search

import "github.com/kilianp07/vrptw/core/model"

// TabuList is a bounded FIFO of solution keys with constant time membership.
type TabuList struct {
	capacity int
	order    []model.Key
	members  map[model.Key]int
}

// NewTabuList returns an empty list holding at most capacity keys.
func NewTabuList(capacity int) *TabuList {
	return &TabuList{capacity: capacity, members: make(map[model.Key]int, capacity)}
}

// Push appends key and evicts the oldest entry once the list is full.
func (t *TabuList) Push(key model.Key) {
	t.order = append(t.order, key)
	t.members[key]++
	for len(t.order) > t.capacity {
		old := t.order[0]
		t.order = t.order[1:]
		if t.members[old] <= 1 {
			delete(t.members, old)
		} else {
			t.members[old]--
		}
	}
}

// Contains reports whether key is currently forbidden.
func (t *TabuList) Contains(key model.Key) bool {
	_, ok := t.members[key]
	return ok
}

// Len returns the number of entries.
func (t *TabuList) Len() int { return len(t.order) }

// Keys returns the entries from oldest to newest.
func (t *TabuList) Keys() []model.Key {
	return append([]model.Key(nil), t.order...)
}
