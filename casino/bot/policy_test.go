package bot

import (
	"testing"

	"github.com/Jimmyu2foru18/pookies-grand-casino/casino"
)

func TestBlackjackHitsToSeventeen(t *testing.T) {
	b := NewRuleBrain("test", 1)
	for score := 4; score <= 21; score++ {
		got := b.Decide(View{Variant: casino.VariantBlackjack, Score: score, Chips: 1000})
		want := casino.ActionStand
		if score < 17 {
			want = casino.ActionHit
		}
		if got != want {
			t.Errorf("score %d: got %s, want %s", score, got, want)
		}
	}
}

func decisionRates(b *RuleBrain, view View, n int) map[casino.ActionType]float64 {
	counts := make(map[casino.ActionType]int)
	for i := 0; i < n; i++ {
		counts[b.Decide(view)]++
	}
	rates := make(map[casino.ActionType]float64, len(counts))
	for a, c := range counts {
		rates[a] = float64(c) / float64(n)
	}
	return rates
}

func near(got, want, tol float64) bool { return got > want-tol && got < want+tol }

func TestPokerFacingBetMix(t *testing.T) {
	b := NewRuleBrain("test", 42)
	view := View{Variant: casino.VariantPoker, ToCall: 50, Chips: 5000}
	rates := decisionRates(b, view, 20000)

	if !near(rates[casino.ActionRaise], raiseFacingBetOdds, 0.03) {
		t.Errorf("raise rate %.3f, want ~%.2f", rates[casino.ActionRaise], raiseFacingBetOdds)
	}
	if !near(rates[casino.ActionFold], pokerFoldOdds, 0.03) {
		t.Errorf("fold rate %.3f, want ~%.2f", rates[casino.ActionFold], pokerFoldOdds)
	}
	if !near(rates[casino.ActionCall], 0.6, 0.03) {
		t.Errorf("call rate %.3f, want ~0.6", rates[casino.ActionCall])
	}
}

func TestHoldemNeverFoldsWhenCallable(t *testing.T) {
	b := NewRuleBrain("test", 7)
	view := View{Variant: casino.VariantHoldem, ToCall: 50, Chips: 5000}
	rates := decisionRates(b, view, 20000)

	if rates[casino.ActionFold] != 0 {
		t.Errorf("hold'em bot folded %.3f of callable spots", rates[casino.ActionFold])
	}
	if !near(rates[casino.ActionRaise], raiseFacingBetOdds, 0.03) {
		t.Errorf("raise rate %.3f, want ~%.2f", rates[casino.ActionRaise], raiseFacingBetOdds)
	}
}

func TestShortStackFoldsRatherThanCalls(t *testing.T) {
	b := NewRuleBrain("test", 3)
	view := View{Variant: casino.VariantPoker, ToCall: 500, Chips: 100}
	rates := decisionRates(b, view, 2000)

	if rates[casino.ActionFold] != 1 {
		t.Errorf("broke bot must always fold, rates=%v", rates)
	}
}

func TestOpenActionChecksMostly(t *testing.T) {
	b := NewRuleBrain("test", 9)
	view := View{Variant: casino.VariantPoker, ToCall: 0, Chips: 5000}
	rates := decisionRates(b, view, 20000)

	if !near(rates[casino.ActionRaise], openRaiseOdds, 0.02) {
		t.Errorf("open raise rate %.3f, want ~%.2f", rates[casino.ActionRaise], openRaiseOdds)
	}
	if !near(rates[casino.ActionCheck], 1-openRaiseOdds, 0.02) {
		t.Errorf("check rate %.3f, want ~%.2f", rates[casino.ActionCheck], 1-openRaiseOdds)
	}
}

func TestBuildView(t *testing.T) {
	snap := casino.Snapshot{
		Variant:    casino.VariantPoker,
		HighestBet: 70,
		Players: []casino.SeatSnapshot{
			{ID: casino.HumanID, Bet: 70, Chips: 500},
			{ID: "b1", Bet: 20, Chips: 1234},
		},
	}
	view, ok := BuildView(snap, "b1")
	if !ok {
		t.Fatal("b1 is seated")
	}
	if view.ToCall != 50 || view.Chips != 1234 {
		t.Fatalf("view: %+v", view)
	}
	if _, ok := BuildView(snap, "b9"); ok {
		t.Fatal("unknown seat must not resolve")
	}
}
