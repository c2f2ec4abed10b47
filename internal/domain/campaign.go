package domain

import "fmt"

// Campaign tags one notification round.
type Campaign string

const (
	CampaignMarketOpen      Campaign = "market-open"
	CampaignMarketClose     Campaign = "market-close"
	CampaignWeeklyDigest    Campaign = "weekly-digest"
	CampaignBreakingNews    Campaign = "breaking-news"
	CampaignCorporateAction Campaign = "corporate-action"
)

// Preference toggle names as exposed to the command layer.
const (
	PrefMarketOpen      = "marketOpen"
	PrefMarketClose     = "marketClose"
	PrefBreakingNews    = "breakingNews"
	PrefWeeklyDigest    = "weeklyDigest"
	PrefImmediateAlerts = "immediateAlerts"
)

// Preferences holds the five per-user notification toggles. All toggles
// default to true when a subscription is first created.
type Preferences struct {
	MarketOpen      bool `json:"marketOpen"`
	MarketClose     bool `json:"marketClose"`
	BreakingNews    bool `json:"breakingNews"`
	WeeklyDigest    bool `json:"weeklyDigest"`
	ImmediateAlerts bool `json:"immediateAlerts"`
}

// DefaultPreferences returns the all-enabled preference set.
func DefaultPreferences() Preferences {
	return Preferences{
		MarketOpen:      true,
		MarketClose:     true,
		BreakingNews:    true,
		WeeklyDigest:    true,
		ImmediateAlerts: true,
	}
}

// Enabled reports the toggle named by key.
func (p Preferences) Enabled(key string) (bool, error) {
	switch key {
	case PrefMarketOpen:
		return p.MarketOpen, nil
	case PrefMarketClose:
		return p.MarketClose, nil
	case PrefBreakingNews:
		return p.BreakingNews, nil
	case PrefWeeklyDigest:
		return p.WeeklyDigest, nil
	case PrefImmediateAlerts:
		return p.ImmediateAlerts, nil
	default:
		return false, fmt.Errorf("%w: %s", ErrUnknownPreference, key)
	}
}

// Set flips the toggle named by key.
func (p *Preferences) Set(key string, enabled bool) error {
	switch key {
	case PrefMarketOpen:
		p.MarketOpen = enabled
	case PrefMarketClose:
		p.MarketClose = enabled
	case PrefBreakingNews:
		p.BreakingNews = enabled
	case PrefWeeklyDigest:
		p.WeeklyDigest = enabled
	case PrefImmediateAlerts:
		p.ImmediateAlerts = enabled
	default:
		return fmt.Errorf("%w: %s", ErrUnknownPreference, key)
	}
	return nil
}

// ParseCampaign resolves the wire name of a campaign.
func ParseCampaign(name string) (Campaign, error) {
	switch Campaign(name) {
	case CampaignMarketOpen, CampaignMarketClose, CampaignWeeklyDigest,
		CampaignBreakingNews, CampaignCorporateAction:
		return Campaign(name), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownCampaign, name)
	}
}

// PreferenceKey maps the campaign to the toggle that gates it.
func (c Campaign) PreferenceKey() string {
	switch c {
	case CampaignMarketOpen:
		return PrefMarketOpen
	case CampaignMarketClose:
		return PrefMarketClose
	case CampaignWeeklyDigest:
		return PrefWeeklyDigest
	case CampaignBreakingNews, CampaignCorporateAction:
		return PrefBreakingNews
	default:
		return ""
	}
}

// SymbolScoped reports whether the campaign targets specific symbols. Such
// campaigns additionally require the subscriber's immediateAlerts toggle.
func (c Campaign) SymbolScoped() bool {
	return c == CampaignBreakingNews || c == CampaignCorporateAction
}
