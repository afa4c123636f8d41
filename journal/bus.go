package journal

import (
	"sort"
	"sync"
)

// Topic names a kind of change that lists may want to react to.
type Topic string

const (
	TopicEntries  Topic = "entries"
	TopicTimeline Topic = "timeline"
)

// Bus fans out refresh notifications to subscribers. The zero value is ready
// to use.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[Topic]map[int]func()
}

// Subscribe registers fn for topic. The returned function removes the
// subscription and may be called more than once.
func (b *Bus) Subscribe(topic Topic, fn func()) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs == nil {
		b.subs = make(map[Topic]map[int]func())
	}
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]func())
	}

	id := b.nextID
	b.nextID++
	b.subs[topic][id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[topic], id)
	}
}

// Publish runs every handler subscribed to topic on the calling goroutine,
// in subscription order. Handlers may subscribe or unsubscribe.
func (b *Bus) Publish(topic Topic) {
	b.mu.Lock()
	ids := make([]int, 0, len(b.subs[topic]))
	for id := range b.subs[topic] {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	handlers := make([]func(), len(ids))
	for i, id := range ids {
		handlers[i] = b.subs[topic][id]
	}
	b.mu.Unlock()

	for _, fn := range handlers {
		fn()
	}
}
