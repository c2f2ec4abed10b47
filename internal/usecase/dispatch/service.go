package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/akshata29/corporateactions-sub000/internal/domain"
	"github.com/akshata29/corporateactions-sub000/internal/infra/metrics"
)

const historySummaryMax = 140

// Service runs campaign rounds against the subscription registry.
type Service struct {
	registry  domain.SubscriptionRegistry
	transport domain.Transport
	ledger    domain.HistoryLedger
	log       zerolog.Logger
}

var _ domain.Dispatcher = (*Service)(nil)

// NewService builds the dispatcher.
func NewService(registry domain.SubscriptionRegistry, transport domain.Transport, ledger domain.HistoryLedger, log zerolog.Logger) *Service {
	return &Service{registry: registry, transport: transport, ledger: ledger, log: log}
}

// Dispatch selects eligible subscribers for the campaign, renders and
// delivers per recipient, and records every attempt in the ledger. One
// recipient's failure never aborts the batch; errors stay local to the
// recipient's iteration and surface only as success=false entries.
func (s *Service) Dispatch(ctx context.Context, campaign domain.Campaign, symbolFilter []string) domain.DispatchResult {
	start := time.Now()
	result := domain.DispatchResult{Campaign: campaign, StartedAt: start.UTC()}

	for _, sub := range s.registry.List() {
		affected, ok := eligible(sub, campaign, symbolFilter)
		if !ok {
			continue
		}
		result.Attempted++

		summary, err := s.deliverOne(ctx, campaign, sub, affected)
		entry := domain.HistoryEntry{
			ID:        uuid.NewString(),
			Timestamp: time.Now().UTC(),
			Campaign:  campaign,
			UserID:    sub.UserID,
			Summary:   summary,
			Success:   err == nil,
			Symbols:   affected,
		}
		if err != nil {
			result.Failed++
			s.log.Error().Err(err).
				Str("user", sub.UserID).
				Str("campaign", string(campaign)).
				Msg("dispatch: recipient failed")
		} else {
			result.Succeeded++
		}
		s.ledger.Record(entry)
	}

	result.Duration = time.Since(start)
	metrics.ObserveDispatch(string(campaign), result.Succeeded, result.Failed, start)
	s.log.Info().
		Str("campaign", string(campaign)).
		Int("attempted", result.Attempted).
		Int("succeeded", result.Succeeded).
		Int("failed", result.Failed).
		Dur("duration", result.Duration).
		Msg("dispatch: round complete")
	return result
}

func (s *Service) deliverOne(ctx context.Context, campaign domain.Campaign, sub domain.Subscription, affected []string) (string, error) {
	payload, err := render(campaign, sub, affected)
	if err != nil {
		return err.Error(), err
	}
	if err := s.transport.Deliver(ctx, sub, payload); err != nil {
		return payload.PlainSummary(historySummaryMax), fmt.Errorf("deliver: %w", err)
	}
	return payload.PlainSummary(historySummaryMax), nil
}

// eligible decides whether the subscription receives this campaign and, for
// symbol-scoped campaigns, which of its symbols are affected.
func eligible(sub domain.Subscription, campaign domain.Campaign, symbolFilter []string) ([]string, bool) {
	enabled, err := sub.Preferences.Enabled(campaign.PreferenceKey())
	if err != nil || !enabled {
		return nil, false
	}
	if campaign.SymbolScoped() && !sub.Preferences.ImmediateAlerts {
		return nil, false
	}

	if len(symbolFilter) == 0 {
		if campaign.SymbolScoped() {
			// no filter given: the whole watchlist is in scope
			return sub.Symbols, true
		}
		return nil, true
	}
	affected := sub.Intersect(symbolFilter)
	if len(affected) == 0 {
		return nil, false
	}
	if !campaign.SymbolScoped() {
		return nil, true
	}
	return affected, true
}
