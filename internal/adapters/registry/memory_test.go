package registry

import (
	"errors"
	"testing"

	"github.com/akshata29/corporateactions-sub000/internal/domain"
)

func TestSubscribeMergesSymbols(t *testing.T) {
	reg := NewMemory()
	if _, err := reg.Subscribe("u1", "Avery", []string{"AAPL"}, domain.DeliveryTarget{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sub, err := reg.Subscribe("u1", "Avery", []string{"AAPL", "MSFT"}, domain.DeliveryTarget{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sub.Symbols) != 2 || sub.Symbols[0] != "AAPL" || sub.Symbols[1] != "MSFT" {
		t.Fatalf("expected union {AAPL MSFT}, got %v", sub.Symbols)
	}
}

func TestSubscribeKeepsPreferencesOnMerge(t *testing.T) {
	reg := NewMemory()
	if _, err := reg.Subscribe("u1", "Avery", []string{"AAPL"}, domain.DeliveryTarget{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := reg.SetPreference("u1", domain.PrefMarketOpen, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sub, err := reg.Subscribe("u1", "Avery", []string{"MSFT"}, domain.DeliveryTarget{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Preferences.MarketOpen {
		t.Fatalf("expected marketOpen to stay disabled after merge")
	}
}

func TestUnsubscribeAllDeletesRecord(t *testing.T) {
	reg := NewMemory()
	if _, err := reg.Subscribe("u1", "Avery", []string{"X"}, domain.DeliveryTarget{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := reg.Unsubscribe("u1", []string{"X"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := reg.GetPreferences("u1"); !errors.Is(err, domain.ErrSubscriptionNotFound) {
		t.Fatalf("expected ErrSubscriptionNotFound, got %v", err)
	}
}

func TestUnsubscribeUnknownUser(t *testing.T) {
	reg := NewMemory()
	if err := reg.Unsubscribe("ghost", []string{"AAPL"}); !errors.Is(err, domain.ErrSubscriptionNotFound) {
		t.Fatalf("expected ErrSubscriptionNotFound, got %v", err)
	}
}

func TestSetPreferenceUnknownKey(t *testing.T) {
	reg := NewMemory()
	if _, err := reg.Subscribe("u1", "Avery", []string{"AAPL"}, domain.DeliveryTarget{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := reg.SetPreference("u1", "smokeSignals", true); !errors.Is(err, domain.ErrUnknownPreference) {
		t.Fatalf("expected ErrUnknownPreference, got %v", err)
	}
}

func TestListReturnsSnapshot(t *testing.T) {
	reg := NewMemory()
	if _, err := reg.Subscribe("u1", "Avery", []string{"AAPL"}, domain.DeliveryTarget{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snapshot := reg.List()
	snapshot[0].Symbols[0] = "HACK"
	sub, err := reg.Get("u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Symbols[0] != "AAPL" {
		t.Fatalf("snapshot mutation leaked into registry: %v", sub.Symbols)
	}
}
