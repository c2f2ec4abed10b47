package dispatch

import (
	"context"

	"github.com/akshata29/corporateactions-sub000/internal/domain"
)

// TriggerNow runs one campaign synchronously, bypassing the wall-clock
// scheduler. Side effects are identical to a scheduled fire, so diagnostic
// commands and tests exercise the real pipeline. The campaign name is
// validated before any side effect occurs.
func (s *Service) TriggerNow(ctx context.Context, name string, symbols []string) (domain.DispatchResult, error) {
	campaign, err := domain.ParseCampaign(name)
	if err != nil {
		return domain.DispatchResult{}, err
	}
	return s.Dispatch(ctx, campaign, domain.NormalizeSymbols(symbols)), nil
}
