package service

import (
	"sync"
	"time"

	"floral-studio/internal/domain"
)

// Snapshot is the read model republished after every mutation
type Snapshot struct {
	Version     uint64              `json:"version"`
	PublishedAt time.Time           `json:"publishedAt"`
	CurrentUser *domain.User        `json:"currentUser,omitempty"`
	Clients     []*domain.Client    `json:"clients"`
	Designs     []*domain.Design    `json:"designs"`
	MoodBoards  []*domain.MoodBoard `json:"moodBoards"`
}

// snapshotBroker fans snapshots out to subscribers.
// Each subscriber holds at most one pending snapshot; a newer one replaces it.
type snapshotBroker struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Snapshot
	closed bool
}

func newSnapshotBroker() *snapshotBroker {
	return &snapshotBroker{subs: make(map[int]chan Snapshot)}
}

// subscribe registers a subscriber and primes it with current
func (b *snapshotBroker) subscribe(current Snapshot) (<-chan Snapshot, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Snapshot, 1)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	ch <- current

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
	return ch, cancel
}

// publish delivers snap to every subscriber without blocking
func (b *snapshotBroker) publish(snap Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

func (b *snapshotBroker) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// close ends every subscription
func (b *snapshotBroker) close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
