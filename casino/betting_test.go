package casino

import (
	"errors"
	"testing"
)

func onePokerBot() []Seat { return []Seat{{Name: "Calamari", Chips: 2500}} }

func dealPoker(t *testing.T, g *Game, bet int64) {
	t.Helper()
	mustBet(t, g, bet)
	mustDeal(t, g)
}

func TestPokerDealEntersSwapping(t *testing.T) {
	g := newTestGame(t, VariantPoker, onePokerBot()...)
	dealPoker(t, g, 20)

	if g.phase != PhaseSwapping {
		t.Fatalf("phase: got %s", g.phase)
	}
	for _, p := range g.players {
		if len(p.hand) != drawPokerHandSize {
			t.Fatalf("%s dealt %d cards", p.id, len(p.hand))
		}
	}
}

func TestExchangeSwapsUpToThree(t *testing.T) {
	g := newTestGame(t, VariantPoker, onePokerBot()...)
	dealPoker(t, g, 20)

	human := g.human()
	ids := []string{human.hand[0].ID, human.hand[1].ID, human.hand[2].ID}
	kept := []string{human.hand[3].ID, human.hand[4].ID}

	if err := g.Exchange(ids); err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if len(human.hand) != drawPokerHandSize {
		t.Fatalf("hand size after swap: %d", len(human.hand))
	}
	for _, old := range ids {
		for _, c := range human.hand {
			if c.ID == old {
				t.Fatalf("swapped card %s still in hand", old)
			}
		}
	}
	if !human.holdsAll(kept) {
		t.Fatal("kept cards must survive the swap")
	}
	if human.lastAction != "SWAPPED" {
		t.Fatalf("lastAction: got %q", human.lastAction)
	}
	if g.phase != PhasePlaying || g.activeID != HumanID {
		t.Fatalf("betting must open with the human, got %s during %s", g.activeID, g.phase)
	}
}

func TestExchangeValidation(t *testing.T) {
	g := newTestGame(t, VariantPoker, onePokerBot()...)
	dealPoker(t, g, 20)

	human := g.human()
	four := []string{human.hand[0].ID, human.hand[1].ID, human.hand[2].ID, human.hand[3].ID}
	if err := g.Exchange(four); err == nil {
		t.Fatal("swapping four cards must be rejected")
	}
	if err := g.Exchange([]string{"not-a-card"}); err == nil {
		t.Fatal("swapping a card not in hand must be rejected")
	}
	if len(human.hand) != drawPokerHandSize {
		t.Fatal("rejected swaps must leave the hand untouched")
	}

	if err := g.Exchange(nil); err != nil {
		t.Fatalf("keeping the hand: %v", err)
	}
	if human.lastAction != "KEPT HAND" {
		t.Fatalf("lastAction: got %q", human.lastAction)
	}
}

func TestPokerCheckAroundReachesDealer(t *testing.T) {
	g := newTestGame(t, VariantPoker, onePokerBot()...)
	dealPoker(t, g, 20)
	if err := g.Exchange(nil); err != nil {
		t.Fatalf("exchange: %v", err)
	}

	if err := g.Act(HumanID, ActionCheck); err != nil {
		t.Fatalf("human check: %v", err)
	}
	if g.activeID != "b1" {
		t.Fatalf("expected b1 to act, got %s", g.activeID)
	}
	if err := g.Act("b1", ActionCheck); err != nil {
		t.Fatalf("bot check: %v", err)
	}
	if g.activeID != DealerID {
		t.Fatalf("betting round complete, dealer must act; got %s", g.activeID)
	}
}

func TestPokerRaiseAndCall(t *testing.T) {
	g := newTestGame(t, VariantPoker, onePokerBot()...)
	dealPoker(t, g, 20)
	if err := g.Exchange(nil); err != nil {
		t.Fatalf("exchange: %v", err)
	}
	before := totalChips(g)

	if err := g.Act(HumanID, ActionRaise); err != nil {
		t.Fatalf("raise: %v", err)
	}
	if g.highestBet != 20+RaiseStep {
		t.Fatalf("highest bet after raise: got %d", g.highestBet)
	}
	if g.human().bet != g.highestBet {
		t.Fatalf("raiser's bet: got %d", g.human().bet)
	}

	if err := g.Act("b1", ActionCall); err != nil {
		t.Fatalf("call: %v", err)
	}
	if g.playerByID("b1").bet != g.highestBet {
		t.Fatal("caller must match the highest bet")
	}
	if g.activeID != DealerID {
		t.Fatalf("matched bets close the round; got actor %s", g.activeID)
	}
	if totalChips(g) != before {
		t.Fatalf("chips leaked: %d -> %d", before, totalChips(g))
	}
}

func TestCheckRejectedFacingABet(t *testing.T) {
	g := newTestGame(t, VariantPoker, onePokerBot()...)
	dealPoker(t, g, 20)
	if err := g.Exchange(nil); err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if err := g.Act(HumanID, ActionRaise); err != nil {
		t.Fatalf("raise: %v", err)
	}

	turns := g.turnCount
	if err := g.Act("b1", ActionCheck); err == nil {
		t.Fatal("checking into a raise must be rejected")
	}
	if g.turnCount != turns || g.activeID != "b1" {
		t.Fatal("a rejected check must not consume the turn")
	}
}

func TestCallRejectedWithoutChips(t *testing.T) {
	g := newTestGame(t, VariantPoker, onePokerBot()...)
	dealPoker(t, g, 20)
	if err := g.Exchange(nil); err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if err := g.Act(HumanID, ActionRaise); err != nil {
		t.Fatalf("raise: %v", err)
	}

	bot := g.playerByID("b1")
	bot.chips = 0
	pot := g.pot
	err := g.Act("b1", ActionCall)
	var short *InsufficientChipsError
	if !errors.As(err, &short) {
		t.Fatalf("expected InsufficientChipsError, got %v", err)
	}
	if g.pot != pot || bot.bet != 20 || g.activeID != "b1" {
		t.Fatal("a rejected call must leave the round untouched")
	}
}

func TestPokerShowdownPaysThePot(t *testing.T) {
	g := newTestGame(t, VariantPoker, onePokerBot()...)
	dealPoker(t, g, 20)
	if err := g.Exchange(nil); err != nil {
		t.Fatalf("exchange: %v", err)
	}
	pot := g.pot
	seatsBefore := totalChips(g) - g.pot

	if err := g.Act(HumanID, ActionCheck); err != nil {
		t.Fatal(err)
	}
	if err := g.Act("b1", ActionCheck); err != nil {
		t.Fatal(err)
	}
	done, err := g.DealerStep()
	if err != nil || !done {
		t.Fatalf("dealer settle: done=%v err=%v", done, err)
	}

	if g.phase != PhaseResolving {
		t.Fatalf("phase: got %s", g.phase)
	}
	winner := g.playerByID(g.winnerID)
	if winner == nil || winner.status != StatusWon {
		t.Fatalf("no winner recorded, winnerID=%q", g.winnerID)
	}
	if seatsAfter := totalChips(g) - g.pot; seatsAfter != seatsBefore+pot {
		t.Fatalf("pot not paid out: seats hold %d, want %d", seatsAfter, seatsBefore+pot)
	}
}

func TestFoldedWinnerTakesUncontestedPot(t *testing.T) {
	g := newTestGame(t, VariantPoker, onePokerBot()...)
	dealPoker(t, g, 20)
	if err := g.Exchange(nil); err != nil {
		t.Fatalf("exchange: %v", err)
	}

	if err := g.Act(HumanID, ActionFold); err != nil {
		t.Fatalf("fold: %v", err)
	}
	if g.activeID != DealerID {
		t.Fatalf("lone live seat sends action to the dealer; got %s", g.activeID)
	}
	if _, err := g.DealerStep(); err != nil {
		t.Fatalf("dealer: %v", err)
	}
	if g.winnerID != "b1" {
		t.Fatalf("uncontested pot must go to b1, got %q", g.winnerID)
	}
	if g.playerByID("b1").chips != 2500-20+40 {
		t.Fatalf("b1 chips: got %d", g.playerByID("b1").chips)
	}
}

func TestHoldemStreets(t *testing.T) {
	g := newTestGame(t, VariantHoldem, onePokerBot()...)
	mustBet(t, g, 20)
	mustDeal(t, g)

	if g.phase != PhasePlaying || g.street != StreetPreflop {
		t.Fatalf("hold'em opens betting preflop, got %s/%s", g.phase, g.street)
	}
	for _, p := range g.players {
		if len(p.hand) != holdemHoleCards {
			t.Fatalf("%s dealt %d hole cards", p.id, len(p.hand))
		}
	}

	checkAround := func() {
		t.Helper()
		for _, id := range []string{HumanID, "b1"} {
			if err := g.Act(id, ActionCheck); err != nil {
				t.Fatalf("%s check on %s: %v", id, g.street, err)
			}
		}
	}

	wantCommunity := []int{3, 4, 5}
	wantStreet := []Street{StreetFlop, StreetTurn, StreetRiver}
	for i := range wantCommunity {
		checkAround()
		if g.phase != PhaseDealingCommunity {
			t.Fatalf("street %d: phase %s", i, g.phase)
		}
		if err := g.DealCommunity(); err != nil {
			t.Fatalf("deal community: %v", err)
		}
		if len(g.community) != wantCommunity[i] {
			t.Fatalf("community after street %d: %d cards", i, len(g.community))
		}
		if g.street != wantStreet[i] {
			t.Fatalf("street: got %s, want %s", g.street, wantStreet[i])
		}
		if g.highestBet != 0 || g.human().bet != 0 {
			t.Fatal("street change must reset the betting round")
		}
		if g.activeID != HumanID {
			t.Fatalf("first live seat opens the street, got %s", g.activeID)
		}
	}

	checkAround()
	if g.street != StreetShowdown || g.activeID != DealerID {
		t.Fatalf("river checks end at showdown, got %s actor %s", g.street, g.activeID)
	}
	done, err := g.DealerStep()
	if err != nil || !done {
		t.Fatalf("showdown settle: done=%v err=%v", done, err)
	}
	if g.winnerID == "" {
		t.Fatal("showdown must pick a winner")
	}
}

func TestDealCommunityOnlyWhenScheduled(t *testing.T) {
	g := newTestGame(t, VariantHoldem, onePokerBot()...)
	mustBet(t, g, 20)
	mustDeal(t, g)

	if err := g.DealCommunity(); err == nil {
		t.Fatal("community cards outside DEALING_COMMUNITY must be rejected")
	}
}
