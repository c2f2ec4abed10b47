package domain

import "time"

// DeliveryTarget is the opaque address a real push transport needs to reach
// the user. The engine carries it but never interprets it.
type DeliveryTarget struct {
	ConversationID string `json:"conversation_id"`
	ServiceURL     string `json:"service_url"`
}

// Subscription binds one user to a set of ticker symbols plus notification
// preferences. Symbols are kept sorted, uppercase and deduplicated. A
// subscription with an empty symbol set is never stored.
type Subscription struct {
	UserID         string
	DisplayName    string
	Symbols        []string
	Preferences    Preferences
	Target         DeliveryTarget
	CreatedAt      time.Time
	LastActivityAt time.Time
}

// HasSymbol reports whether the subscription covers the given symbol.
func (s Subscription) HasSymbol(symbol string) bool {
	for _, sym := range s.Symbols {
		if sym == symbol {
			return true
		}
	}
	return false
}

// Intersect returns the subscription's symbols that also appear in the
// filter, preserving the subscription's order.
func (s Subscription) Intersect(filter []string) []string {
	if len(filter) == 0 {
		return nil
	}
	want := make(map[string]struct{}, len(filter))
	for _, sym := range filter {
		want[sym] = struct{}{}
	}
	var out []string
	for _, sym := range s.Symbols {
		if _, ok := want[sym]; ok {
			out = append(out, sym)
		}
	}
	return out
}

// NotificationPayload is a rendered message ready for presentation.
type NotificationPayload struct {
	Campaign Campaign `json:"campaign"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Symbols  []string `json:"symbols,omitempty"`
}

// PlainSummary renders a truncated plain-text preview of the payload, used
// for history entries and queued summaries.
func (p NotificationPayload) PlainSummary(max int) string {
	text := p.Title
	if p.Body != "" {
		text += ": " + p.Body
	}
	if runes := []rune(text); max > 0 && len(runes) > max {
		text = string(runes[:max-1]) + "…"
	}
	return text
}

// PendingNotification is one queued, not yet retrieved message.
type PendingNotification struct {
	ID         string              `json:"id"`
	UserID     string              `json:"user_id"`
	Payload    NotificationPayload `json:"payload"`
	Summary    string              `json:"summary"`
	EnqueuedAt time.Time           `json:"enqueued_at"`
}

// HistoryEntry records one dispatch attempt for one recipient. Entries are
// immutable once recorded; they outlive the subscription they refer to.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Campaign  Campaign  `json:"campaign"`
	UserID    string    `json:"user_id"`
	Summary   string    `json:"summary"`
	Success   bool      `json:"success"`
	Symbols   []string  `json:"symbols,omitempty"`
}

// DispatchResult aggregates one campaign execution.
type DispatchResult struct {
	Campaign  Campaign      `json:"campaign"`
	Attempted int           `json:"attempted"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// Stats summarizes the registry and ledger for the status command.
type Stats struct {
	TotalSubscriptions int     `json:"total_subscriptions"`
	TotalSent          int     `json:"total_sent"`
	SuccessRate        float64 `json:"success_rate"`
	UniqueSymbols      int     `json:"unique_symbols"`
}
