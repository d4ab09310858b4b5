package route

import "sync"

// idQueues serializes operations per point id. acquire blocks until no other
// operation holds the same id; the returned func releases it. Entries are
// reference counted so the map does not grow with every id ever touched.
type idQueues struct {
	mu sync.Mutex
	m  map[string]*idQueue
}

type idQueue struct {
	mu   sync.Mutex
	refs int
}

func newIDQueues() *idQueues {
	return &idQueues{m: make(map[string]*idQueue)}
}

func (q *idQueues) acquire(id string) (release func()) {
	q.mu.Lock()
	entry, ok := q.m[id]
	if !ok {
		entry = &idQueue{}
		q.m[id] = entry
	}
	entry.refs++
	q.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()
		q.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(q.m, id)
		}
		q.mu.Unlock()
	}
}
