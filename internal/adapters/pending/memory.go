package pending

import (
	"sync"

	"github.com/akshata29/corporateactions-sub000/internal/domain"
	"github.com/akshata29/corporateactions-sub000/internal/infra/metrics"
)

// Memory holds per-user FIFO queues of notifications awaiting retrieval.
// User FIFOs are independent, so locking is striped per user key; a small
// index lock only guards queue creation and cross-user listing.
type Memory struct {
	mu      sync.RWMutex
	queues  map[string]*userQueue
	perUser int
}

type userQueue struct {
	mu    sync.Mutex
	items []domain.PendingNotification
}

var _ domain.PendingQueue = (*Memory)(nil)

// NewMemory builds a queue with the given per-user capacity. When the bound
// is exceeded the oldest entry is evicted so a stale backlog never blocks
// fresh alerts; zero or negative means unbounded.
func NewMemory(perUser int) *Memory {
	return &Memory{queues: make(map[string]*userQueue), perUser: perUser}
}

// Enqueue appends to the end of the user's FIFO.
func (m *Memory) Enqueue(userID string, n domain.PendingNotification) error {
	q := m.queue(userID)
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, n)
	if m.perUser > 0 && len(q.items) > m.perUser {
		q.items = q.items[1:]
		metrics.PendingEvictions.Inc()
	} else {
		metrics.PendingDepth.Inc()
	}
	return nil
}

// PopNext removes and returns the oldest entry for the user.
func (m *Memory) PopNext(userID string) (domain.PendingNotification, bool) {
	q := m.queue(userID)
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return domain.PendingNotification{}, false
	}
	n := q.items[0]
	q.items = q.items[1:]
	metrics.PendingDepth.Dec()
	return n, true
}

// ListAll returns a non-destructive snapshot, optionally scoped to one user.
func (m *Memory) ListAll(userID string) []domain.PendingNotification {
	if userID != "" {
		q := m.queue(userID)
		q.mu.Lock()
		defer q.mu.Unlock()
		return append([]domain.PendingNotification(nil), q.items...)
	}

	m.mu.RLock()
	ids := make([]string, 0, len(m.queues))
	for id := range m.queues {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	var out []domain.PendingNotification
	for _, id := range ids {
		out = append(out, m.ListAll(id)...)
	}
	return out
}

// Clear drops pending entries, optionally scoped to one user.
func (m *Memory) Clear(userID string) {
	if userID != "" {
		q := m.queue(userID)
		q.mu.Lock()
		defer q.mu.Unlock()
		metrics.PendingDepth.Sub(float64(len(q.items)))
		q.items = nil
		return
	}

	m.mu.RLock()
	ids := make([]string, 0, len(m.queues))
	for id := range m.queues {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	for _, id := range ids {
		m.Clear(id)
	}
}

func (m *Memory) queue(userID string) *userQueue {
	m.mu.RLock()
	q, ok := m.queues[userID]
	m.mu.RUnlock()
	if ok {
		return q
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if q, ok = m.queues[userID]; ok {
		return q
	}
	q = &userQueue{}
	m.queues[userID] = q
	return q
}
