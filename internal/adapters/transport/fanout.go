package transport

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/akshata29/corporateactions-sub000/internal/domain"
	"github.com/akshata29/corporateactions-sub000/internal/infra/metrics"
)

// Fanout delivers to the primary transport first, then mirrors to bridges.
// A bridge failure is logged and counted but never fails the recipient:
// the engine's contract is satisfied once the primary delivery succeeds.
type Fanout struct {
	primary domain.Transport
	bridges []namedBridge
	log     zerolog.Logger
}

type namedBridge struct {
	name string
	t    domain.Transport
}

var _ domain.Transport = (*Fanout)(nil)

// NewFanout builds a fanout around the primary transport.
func NewFanout(primary domain.Transport, log zerolog.Logger) *Fanout {
	return &Fanout{primary: primary, log: log}
}

// AddBridge registers a best-effort mirror.
func (f *Fanout) AddBridge(name string, t domain.Transport) {
	f.bridges = append(f.bridges, namedBridge{name: name, t: t})
}

// Deliver delivers via the primary, then mirrors best-effort.
func (f *Fanout) Deliver(ctx context.Context, sub domain.Subscription, payload domain.NotificationPayload) error {
	if err := f.primary.Deliver(ctx, sub, payload); err != nil {
		return err
	}
	for _, b := range f.bridges {
		err := b.t.Deliver(ctx, sub, payload)
		metrics.ObserveBridgeDelivery(b.name, err)
		if err != nil {
			f.log.Warn().Err(err).
				Str("bridge", b.name).
				Str("user", sub.UserID).
				Str("campaign", string(payload.Campaign)).
				Msg("transport: bridge delivery failed")
		}
	}
	return nil
}
