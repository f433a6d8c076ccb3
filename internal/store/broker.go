package store

import (
	"sync"
	"time"
)

const subscriberBuffer = 8

// Change announces that the stats record was rewritten.
type Change struct {
	At time.Time
	// Remote is set for changes relayed from another process.
	Remote bool
}

// Broker fans out change notifications to subscribers. Publish never blocks;
// a subscriber that falls behind misses events, which is fine because every
// event means the same thing: re-read the record.
type Broker struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Change
}

// NewBroker returns an empty broker.
func NewBroker() *Broker {
	return &Broker{subs: map[int]chan Change{}}
}

// Subscribe registers a subscriber. The cancel func unregisters it and closes
// the channel; calling it more than once is safe.
func (b *Broker) Subscribe() (<-chan Change, func()) {
	ch := make(chan Change, subscriberBuffer)
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers c to every subscriber with room in its buffer.
func (b *Broker) Publish(c Change) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- c:
		default:
		}
	}
}
