package subscriptions

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/akshata29/corporateactions-sub000/internal/domain"
)

// Service wraps the registry with input normalization and status reporting.
type Service struct {
	registry domain.SubscriptionRegistry
	ledger   domain.HistoryLedger
	log      zerolog.Logger
}

// NewService builds the subscription service.
func NewService(registry domain.SubscriptionRegistry, ledger domain.HistoryLedger, log zerolog.Logger) *Service {
	return &Service{registry: registry, ledger: ledger, log: log}
}

// Subscribe merges the symbols into the user's watchlist, creating the
// subscription with default-true preferences when absent.
func (s *Service) Subscribe(ctx context.Context, userID, displayName string, symbols []string, target domain.DeliveryTarget) (domain.Subscription, error) {
	if userID == "" {
		return domain.Subscription{}, fmt.Errorf("user id is empty")
	}
	normalized := domain.NormalizeSymbols(symbols)
	if len(normalized) == 0 {
		return domain.Subscription{}, domain.ErrNoSymbols
	}
	sub, err := s.registry.Subscribe(userID, displayName, normalized, target)
	if err != nil {
		return domain.Subscription{}, fmt.Errorf("subscribe: %w", err)
	}
	s.log.Info().Str("user", userID).Strs("symbols", normalized).Msg("subscriptions: subscribed")
	return sub, nil
}

// Unsubscribe removes symbols from the user's watchlist; the subscription
// is deleted when its last symbol goes.
func (s *Service) Unsubscribe(ctx context.Context, userID string, symbols []string) error {
	normalized := domain.NormalizeSymbols(symbols)
	if len(normalized) == 0 {
		return domain.ErrNoSymbols
	}
	if err := s.registry.Unsubscribe(userID, normalized); err != nil {
		return err
	}
	s.log.Info().Str("user", userID).Strs("symbols", normalized).Msg("subscriptions: unsubscribed")
	return nil
}

// SetPreference flips one notification toggle.
func (s *Service) SetPreference(ctx context.Context, userID, key string, enabled bool) error {
	return s.registry.SetPreference(userID, key, enabled)
}

// GetPreferences returns the user's toggles.
func (s *Service) GetPreferences(ctx context.Context, userID string) (domain.Preferences, error) {
	return s.registry.GetPreferences(userID)
}

// Get returns the user's subscription.
func (s *Service) Get(ctx context.Context, userID string) (domain.Subscription, error) {
	return s.registry.Get(userID)
}

// List returns a snapshot of all subscriptions.
func (s *Service) List(ctx context.Context) []domain.Subscription {
	return s.registry.List()
}

// Stats summarizes the registry and ledger. The success rate is 0, not NaN,
// on an empty ledger.
func (s *Service) Stats(ctx context.Context) domain.Stats {
	subs := s.registry.List()
	unique := make(map[string]struct{})
	for _, sub := range subs {
		for _, sym := range sub.Symbols {
			unique[sym] = struct{}{}
		}
	}
	total, succeeded := s.ledger.Totals()
	rate := 0.0
	if total > 0 {
		rate = float64(succeeded) / float64(total)
	}
	return domain.Stats{
		TotalSubscriptions: len(subs),
		TotalSent:          total,
		SuccessRate:        rate,
		UniqueSymbols:      len(unique),
	}
}
