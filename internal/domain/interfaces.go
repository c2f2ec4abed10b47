package domain

import "context"

// SubscriptionRegistry owns the user -> subscription mapping. Symbol input
// is expected normalized (uppercase, deduplicated). Implementations must be
// safe for concurrent use and must never return live views of internal
// state.
type SubscriptionRegistry interface {
	Subscribe(userID, displayName string, symbols []string, target DeliveryTarget) (Subscription, error)
	Unsubscribe(userID string, symbols []string) error
	SetPreference(userID, key string, enabled bool) error
	GetPreferences(userID string) (Preferences, error)
	Get(userID string) (Subscription, error)
	List() []Subscription
}

// PendingQueue is the per-user FIFO of rendered notifications awaiting
// pull-based retrieval. An empty userID on ListAll/Clear means all users.
type PendingQueue interface {
	Enqueue(userID string, n PendingNotification) error
	PopNext(userID string) (PendingNotification, bool)
	ListAll(userID string) []PendingNotification
	Clear(userID string)
}

// HistoryLedger is the bounded audit trail of dispatch attempts. Query
// returns newest-first; an empty userID means all users.
type HistoryLedger interface {
	Record(entry HistoryEntry)
	Query(userID string, limit int) []HistoryEntry
	Totals() (total, succeeded int)
}

// Transport delivers a rendered payload to one subscriber. The engine's
// default transport enqueues into the PendingQueue; real push channels can
// be substituted without touching the dispatcher.
type Transport interface {
	Deliver(ctx context.Context, sub Subscription, payload NotificationPayload) error
}

// Dispatcher runs one campaign round: select eligible subscribers, render,
// deliver and record. A per-recipient failure never aborts the batch.
type Dispatcher interface {
	Dispatch(ctx context.Context, campaign Campaign, symbolFilter []string) DispatchResult
}
