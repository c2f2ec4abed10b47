package dispatch

import (
	"fmt"
	"strings"

	"github.com/akshata29/corporateactions-sub000/internal/domain"
)

// render builds the campaign-specific message for one subscriber. Content
// is deterministic: the same subscription and filter always render the same
// payload.
func render(campaign domain.Campaign, sub domain.Subscription, affected []string) (domain.NotificationPayload, error) {
	name := sub.DisplayName
	if name == "" {
		name = sub.UserID
	}

	switch campaign {
	case domain.CampaignMarketOpen:
		return domain.NotificationPayload{
			Campaign: campaign,
			Title:    "Markets are open",
			Body: fmt.Sprintf("Good morning, %s! US markets are open for the trading day. You are watching %s.",
				name, joinSymbols(sub.Symbols)),
		}, nil
	case domain.CampaignMarketClose:
		return domain.NotificationPayload{
			Campaign: campaign,
			Title:    "Markets have closed",
			Body: fmt.Sprintf("Trading is done for the day, %s. Check today's closing activity for %s.",
				name, joinSymbols(sub.Symbols)),
		}, nil
	case domain.CampaignWeeklyDigest:
		return domain.NotificationPayload{
			Campaign: campaign,
			Title:    "Your weekly watchlist digest",
			Body: fmt.Sprintf("Hello %s, here is your weekly summary for %s. Review announcements and upcoming corporate actions for the week ahead.",
				name, joinSymbols(sub.Symbols)),
			Symbols: sub.Symbols,
		}, nil
	case domain.CampaignBreakingNews:
		if len(affected) == 0 {
			return domain.NotificationPayload{}, fmt.Errorf("render %s: no affected symbols", campaign)
		}
		return domain.NotificationPayload{
			Campaign: campaign,
			Title:    "Breaking news: " + joinSymbols(affected),
			Body: fmt.Sprintf("Breaking news is affecting %s on your watchlist. Open the feed for details.",
				joinSymbols(affected)),
			Symbols: affected,
		}, nil
	case domain.CampaignCorporateAction:
		if len(affected) == 0 {
			return domain.NotificationPayload{}, fmt.Errorf("render %s: no affected symbols", campaign)
		}
		return domain.NotificationPayload{
			Campaign: campaign,
			Title:    "Corporate action alert: " + joinSymbols(affected),
			Body: fmt.Sprintf("A corporate action was announced for %s. Review the terms and key dates.",
				joinSymbols(affected)),
			Symbols: affected,
		}, nil
	default:
		return domain.NotificationPayload{}, fmt.Errorf("render: %w: %s", domain.ErrUnknownCampaign, campaign)
	}
}

func joinSymbols(symbols []string) string {
	return strings.Join(symbols, ", ")
}
