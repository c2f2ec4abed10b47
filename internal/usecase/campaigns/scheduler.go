package campaigns

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/akshata29/corporateactions-sub000/internal/domain"
)

// Config holds the wall-clock triggers, all evaluated in the exchange
// trading timezone.
type Config struct {
	Timezone         string
	MarketOpenSpec   string
	MarketCloseSpec  string
	WeeklyDigestSpec string
}

// Scheduler fires the time-driven campaigns. Ticks missed while the process
// was down are not backfilled: semantics are at-most-once per scheduled
// time. A production scheduler would persist last-fired timestamps to catch
// up after restarts; that is a known limitation here, not an oversight.
type Scheduler struct {
	cron       *cron.Cron
	dispatcher domain.Dispatcher
	log        zerolog.Logger
}

// triggers pairs each scheduled campaign with its cron spec.
func triggers(cfg Config) map[domain.Campaign]string {
	return map[domain.Campaign]string{
		domain.CampaignMarketOpen:   cfg.MarketOpenSpec,
		domain.CampaignMarketClose:  cfg.MarketCloseSpec,
		domain.CampaignWeeklyDigest: cfg.WeeklyDigestSpec,
	}
}

// NewScheduler parses the timezone and registers the campaign triggers.
func NewScheduler(cfg Config, dispatcher domain.Dispatcher, log zerolog.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	s := &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		dispatcher: dispatcher,
		log:        log,
	}
	for campaign, spec := range triggers(cfg) {
		if _, err := s.cron.AddFunc(spec, func() { s.fire(campaign) }); err != nil {
			return nil, fmt.Errorf("register %s (%q): %w", campaign, spec, err)
		}
	}
	return s, nil
}

func (s *Scheduler) fire(campaign domain.Campaign) {
	s.log.Info().Str("campaign", string(campaign)).Msg("scheduler: trigger fired")
	s.dispatcher.Dispatch(context.Background(), campaign, nil)
}

// Start begins evaluating triggers.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("scheduler: started")
}

// Stop halts trigger evaluation; a dispatch in progress runs to completion.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("scheduler: stopped")
}
