package ledger

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newMemoryLedger(t *testing.T) *SQLiteService {
	t.Helper()
	svc, err := NewSQLiteService(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestBalanceUpsert(t *testing.T) {
	svc := newMemoryLedger(t)
	ctx := context.Background()

	if _, err := svc.GetBalance(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	svc.UpsertBalance(42, 2000)
	svc.UpsertBalance(42, 1750)

	got, err := svc.GetBalance(ctx, 42)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if got != 1750 {
		t.Fatalf("balance: got %d, want 1750", got)
	}
}

func TestRoundResultsListNewestFirst(t *testing.T) {
	svc := newMemoryLedger(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 30, 20, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		svc.AppendRoundResult(7, RoundResult{
			SessionID: "s1",
			Variant:   "Blackjack",
			Bet:       50,
			Delta:     int64(i * 10),
			WinnerID:  "p1",
			Message:   "Pookie Wins!",
			EndedAt:   base.Add(time.Duration(i) * time.Minute),
		})
	}

	records, err := svc.ListRecentRounds(ctx, 7, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records", len(records))
	}
	if records[0].Delta != 20 || records[2].Delta != 0 {
		t.Fatalf("rounds must list newest first: %+v", records)
	}
	if records[0].Variant != "Blackjack" || records[0].UserID != 7 {
		t.Fatalf("record fields: %+v", records[0])
	}
}

func TestZeroUserIsIgnored(t *testing.T) {
	svc := newMemoryLedger(t)
	ctx := context.Background()

	svc.AppendRoundResult(0, RoundResult{SessionID: "s1"})
	svc.UpsertBalance(0, 100)

	records, err := svc.ListRecentRounds(ctx, 0, 10)
	if err != nil || len(records) != 0 {
		t.Fatalf("anonymous rounds must not persist: %v %v", records, err)
	}
}
