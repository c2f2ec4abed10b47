package ledger

import (
	"sync"

	"github.com/akshata29/corporateactions-sub000/internal/domain"
	"github.com/akshata29/corporateactions-sub000/internal/infra/metrics"
)

// DefaultCap bounds the ledger when no capacity is configured.
const DefaultCap = 1000

// Memory is the append-only bounded dispatch history. When the cap is
// exceeded the oldest half is dropped in a single compaction step, keeping
// the amortized cost of Record constant.
type Memory struct {
	mu      sync.Mutex
	entries []domain.HistoryEntry
	cap     int
}

var _ domain.HistoryLedger = (*Memory)(nil)

// NewMemory builds a ledger with the given capacity.
func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = DefaultCap
	}
	return &Memory{cap: capacity}
}

// Record appends one entry, compacting when the cap is exceeded.
func (m *Memory) Record(entry domain.HistoryEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, entry)
	if len(m.entries) > m.cap {
		keep := len(m.entries) / 2
		kept := make([]domain.HistoryEntry, keep)
		copy(kept, m.entries[len(m.entries)-keep:])
		m.entries = kept
		metrics.LedgerCompactions.Inc()
	}
	metrics.LedgerSize.Set(float64(len(m.entries)))
}

// Query returns entries newest-first, optionally filtered by user, capped
// at limit (non-positive means no cap).
func (m *Memory) Query(userID string, limit int) []domain.HistoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.HistoryEntry
	for i := len(m.entries) - 1; i >= 0; i-- {
		if userID != "" && m.entries[i].UserID != userID {
			continue
		}
		out = append(out, m.entries[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// Totals returns the retained entry count and how many succeeded.
func (m *Memory) Totals() (total, succeeded int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.entries {
		if e.Success {
			succeeded++
		}
	}
	return len(m.entries), succeeded
}
