package ledger

import (
	"strconv"
	"testing"

	"github.com/akshata29/corporateactions-sub000/internal/domain"
)

func entry(i int, userID string, success bool) domain.HistoryEntry {
	return domain.HistoryEntry{ID: strconv.Itoa(i), UserID: userID, Success: success}
}

func TestCompactionKeepsNewestHalf(t *testing.T) {
	l := NewMemory(10)
	for i := 0; i < 11; i++ {
		l.Record(entry(i, "u1", true))
	}
	total, _ := l.Totals()
	if total != 5 {
		t.Fatalf("expected 5 entries after compaction, got %d", total)
	}
	newest := l.Query("", 1)
	if newest[0].ID != "10" {
		t.Fatalf("expected newest entry retained, got %s", newest[0].ID)
	}
	all := l.Query("", 0)
	if oldest := all[len(all)-1]; oldest.ID != "6" {
		t.Fatalf("expected oldest half dropped, oldest is %s", oldest.ID)
	}
}

func TestQueryNewestFirstFiltered(t *testing.T) {
	l := NewMemory(100)
	l.Record(entry(1, "u1", true))
	l.Record(entry(2, "u2", true))
	l.Record(entry(3, "u1", false))

	got := l.Query("u1", 10)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries for u1, got %d", len(got))
	}
	if got[0].ID != "3" || got[1].ID != "1" {
		t.Fatalf("expected newest-first order, got %s then %s", got[0].ID, got[1].ID)
	}

	capped := l.Query("", 2)
	if len(capped) != 2 {
		t.Fatalf("expected limit respected, got %d", len(capped))
	}
}

func TestTotals(t *testing.T) {
	l := NewMemory(100)
	l.Record(entry(1, "u1", true))
	l.Record(entry(2, "u1", false))
	l.Record(entry(3, "u1", true))

	total, succeeded := l.Totals()
	if total != 3 || succeeded != 2 {
		t.Fatalf("expected 3/2, got %d/%d", total, succeeded)
	}
}
