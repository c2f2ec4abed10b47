package registry

import (
	"sort"
	"sync"
	"time"

	"github.com/akshata29/corporateactions-sub000/internal/domain"
)

// Memory is the process-lifetime subscription registry. A single RWMutex
// guards the map; every read hands out deep copies, never live views.
type Memory struct {
	mu   sync.RWMutex
	subs map[string]*domain.Subscription
	now  func() time.Time
}

var _ domain.SubscriptionRegistry = (*Memory)(nil)

// NewMemory builds an empty registry.
func NewMemory() *Memory {
	return &Memory{subs: make(map[string]*domain.Subscription), now: time.Now}
}

// Subscribe merges symbols into the user's record, creating it with
// default-true preferences when absent. Idempotent under repeated calls.
func (m *Memory) Subscribe(userID, displayName string, symbols []string, target domain.DeliveryTarget) (domain.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	sub, ok := m.subs[userID]
	if !ok {
		sub = &domain.Subscription{
			UserID:      userID,
			Preferences: domain.DefaultPreferences(),
			CreatedAt:   now,
		}
		m.subs[userID] = sub
	}
	if displayName != "" {
		sub.DisplayName = displayName
	}
	if target != (domain.DeliveryTarget{}) {
		sub.Target = target
	}
	sub.Symbols = union(sub.Symbols, symbols)
	sub.LastActivityAt = now
	return copySub(sub), nil
}

// Unsubscribe removes symbols from the user's set and deletes the record
// when the set becomes empty.
func (m *Memory) Unsubscribe(userID string, symbols []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub, ok := m.subs[userID]
	if !ok {
		return domain.ErrSubscriptionNotFound
	}
	drop := make(map[string]struct{}, len(symbols))
	for _, sym := range symbols {
		drop[sym] = struct{}{}
	}
	kept := sub.Symbols[:0]
	for _, sym := range sub.Symbols {
		if _, ok := drop[sym]; !ok {
			kept = append(kept, sym)
		}
	}
	if len(kept) == 0 {
		delete(m.subs, userID)
		return nil
	}
	sub.Symbols = kept
	sub.LastActivityAt = m.now()
	return nil
}

// SetPreference flips one toggle for the user.
func (m *Memory) SetPreference(userID, key string, enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub, ok := m.subs[userID]
	if !ok {
		return domain.ErrSubscriptionNotFound
	}
	if err := sub.Preferences.Set(key, enabled); err != nil {
		return err
	}
	sub.LastActivityAt = m.now()
	return nil
}

// GetPreferences returns the user's toggles.
func (m *Memory) GetPreferences(userID string) (domain.Preferences, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sub, ok := m.subs[userID]
	if !ok {
		return domain.Preferences{}, domain.ErrSubscriptionNotFound
	}
	return sub.Preferences, nil
}

// Get returns a copy of the user's subscription.
func (m *Memory) Get(userID string) (domain.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sub, ok := m.subs[userID]
	if !ok {
		return domain.Subscription{}, domain.ErrSubscriptionNotFound
	}
	return copySub(sub), nil
}

// List returns a snapshot of all subscriptions ordered by user id.
func (m *Memory) List() []domain.Subscription {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Subscription, 0, len(m.subs))
	for _, sub := range m.subs {
		out = append(out, copySub(sub))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

func copySub(sub *domain.Subscription) domain.Subscription {
	out := *sub
	out.Symbols = append([]string(nil), sub.Symbols...)
	return out
}

func union(existing, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	merged := make([]string, 0, len(existing)+len(incoming))
	for _, set := range [][]string{existing, incoming} {
		for _, sym := range set {
			if _, ok := seen[sym]; ok {
				continue
			}
			seen[sym] = struct{}{}
			merged = append(merged, sym)
		}
	}
	sort.Strings(merged)
	return merged
}
