package transport

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/akshata29/corporateactions-sub000/internal/adapters/pending"
	"github.com/akshata29/corporateactions-sub000/internal/domain"
)

type stubTransport struct {
	err   error
	calls int
}

func (s *stubTransport) Deliver(context.Context, domain.Subscription, domain.NotificationPayload) error {
	s.calls++
	return s.err
}

func TestQueueTransportEnqueues(t *testing.T) {
	q := pending.NewMemory(0)
	tr := NewQueue(q)
	sub := domain.Subscription{UserID: "u1"}
	payload := domain.NotificationPayload{Campaign: domain.CampaignMarketOpen, Title: "Markets are open", Body: "hello"}

	if err := tr.Deliver(context.Background(), sub, payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, ok := q.PopNext("u1")
	if !ok {
		t.Fatalf("expected a pending notification")
	}
	if n.ID == "" || n.Summary == "" {
		t.Fatalf("expected id and summary to be filled, got %+v", n)
	}
	if n.Payload.Title != payload.Title {
		t.Fatalf("payload not preserved: %+v", n.Payload)
	}
}

func TestFanoutBridgeFailureDoesNotFailDelivery(t *testing.T) {
	primary := &stubTransport{}
	broken := &stubTransport{err: errors.New("broker down")}
	healthy := &stubTransport{}

	f := NewFanout(primary, zerolog.Nop())
	f.AddBridge("broken", broken)
	f.AddBridge("healthy", healthy)

	err := f.Deliver(context.Background(), domain.Subscription{UserID: "u1"}, domain.NotificationPayload{})
	if err != nil {
		t.Fatalf("bridge failure leaked out: %v", err)
	}
	if broken.calls != 1 || healthy.calls != 1 {
		t.Fatalf("expected all bridges attempted, got %d/%d", broken.calls, healthy.calls)
	}
}

func TestFanoutPrimaryFailureFailsDelivery(t *testing.T) {
	primary := &stubTransport{err: errors.New("queue fault")}
	bridge := &stubTransport{}

	f := NewFanout(primary, zerolog.Nop())
	f.AddBridge("bridge", bridge)

	if err := f.Deliver(context.Background(), domain.Subscription{UserID: "u1"}, domain.NotificationPayload{}); err == nil {
		t.Fatalf("expected primary failure to propagate")
	}
	if bridge.calls != 0 {
		t.Fatalf("expected bridges skipped after primary failure, got %d calls", bridge.calls)
	}
}
