package casino

import (
	"errors"
	"testing"

	"github.com/Jimmyu2foru18/pookies-grand-casino/card"
)

func newTestGame(t *testing.T, v Variant, bots ...Seat) *Game {
	t.Helper()
	g, err := NewGame(Config{
		Variant:         v,
		StartingBalance: InitialChips,
		Bots:            bots,
		Seed:            1,
	})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func twoBots() []Seat {
	return []Seat{{Name: "Pondy", Chips: 1500}, {Name: "Mythic", Chips: 3000}}
}

func totalChips(g *Game) int64 {
	total := g.pot
	for _, p := range g.players {
		total += p.chips
	}
	return total
}

func TestNewGameSeatsHumanFirst(t *testing.T) {
	g := newTestGame(t, VariantHoldem, twoBots()...)
	if g.players[0].id != HumanID || g.players[0].name != HumanName {
		t.Fatalf("seat 0 must be the human, got %s/%s", g.players[0].id, g.players[0].name)
	}
	if len(g.players) != 3 {
		t.Fatalf("expected 3 seats, got %d", len(g.players))
	}
	if g.players[1].id != "b1" || g.players[2].id != "b2" {
		t.Fatalf("bot ids: got %s, %s", g.players[1].id, g.players[2].id)
	}
}

func TestNewGameRejectsBadConfig(t *testing.T) {
	if _, err := NewGame(Config{Variant: VariantPoker, StartingBalance: 100}); err == nil {
		t.Fatal("poker with no bots must be rejected")
	}
	if _, err := NewGame(Config{Variant: VariantSolitaire, StartingBalance: 0}); err == nil {
		t.Fatal("zero balance must be rejected")
	}
}

func TestPlaceBetCollectsFromEverySeat(t *testing.T) {
	g := newTestGame(t, VariantBlackjack, twoBots()...)

	if err := g.PlaceBet(100); err != nil {
		t.Fatalf("PlaceBet: %v", err)
	}
	if g.phase != PhaseDealing {
		t.Fatalf("phase after bet: %s", g.phase)
	}
	if g.pot != 300 {
		t.Fatalf("pot: got %d, want 300", g.pot)
	}
	if g.human().chips != InitialChips-100 {
		t.Fatalf("human chips: got %d", g.human().chips)
	}
	for _, p := range g.players[1:] {
		if p.bet != 100 {
			t.Fatalf("bot %s bet: got %d", p.id, p.bet)
		}
	}
}

func TestPlaceBetValidatesRange(t *testing.T) {
	g := newTestGame(t, VariantBlackjack, twoBots()...)

	for _, amount := range []int64{MinBet - 1, MaxBet + 1, 0, -50} {
		if err := g.PlaceBet(amount); err == nil {
			t.Fatalf("bet of %d must be rejected", amount)
		}
	}
	if g.phase != PhaseBetting || g.pot != 0 || g.human().chips != InitialChips {
		t.Fatal("rejected bets must leave the table untouched")
	}
}

func TestPlaceBetRejectsShortStack(t *testing.T) {
	g := newTestGame(t, VariantBlackjack, twoBots()...)
	g.human().chips = 40

	err := g.PlaceBet(100)
	var short *InsufficientChipsError
	if !errors.As(err, &short) {
		t.Fatalf("expected InsufficientChipsError, got %v", err)
	}
	if g.phase != PhaseBetting || g.human().chips != 40 {
		t.Fatal("state must be unchanged after a rejected bet")
	}
}

func TestBlackjackDeal(t *testing.T) {
	g := newTestGame(t, VariantBlackjack, twoBots()...)
	mustBet(t, g, 50)
	mustDeal(t, g)

	for _, p := range g.players {
		if len(p.hand) != blackjackHandSize {
			t.Fatalf("%s dealt %d cards", p.id, len(p.hand))
		}
		for _, c := range p.hand {
			if !c.FaceUp {
				t.Fatalf("blackjack is played open; %s holds a face-down %s", p.id, c)
			}
		}
	}
	if len(g.dealerHand) != 2 {
		t.Fatalf("dealer dealt %d cards", len(g.dealerHand))
	}
	if !g.dealerHand[0].FaceUp || g.dealerHand[1].FaceUp {
		t.Fatal("dealer must show the first card and hide the second")
	}
	if g.phase != PhasePlaying || g.activeID != HumanID {
		t.Fatalf("expected human to open, got %s during %s", g.activeID, g.phase)
	}
	if len(g.deck) != 52-3*blackjackHandSize-2 {
		t.Fatalf("deck count: got %d", len(g.deck))
	}
}

func TestHoldemDealHidesBotHoleCards(t *testing.T) {
	g := newTestGame(t, VariantHoldem, twoBots()...)
	mustBet(t, g, 50)
	mustDeal(t, g)

	for _, p := range g.players[1:] {
		for _, c := range p.hand {
			if c.FaceUp {
				t.Fatalf("bot %s shows a hole card", p.id)
			}
		}
	}
	for _, c := range g.human().hand {
		if !c.FaceUp {
			t.Fatal("the human's own cards are dealt face up")
		}
	}
}

func TestDealRoundRequiresDealingPhase(t *testing.T) {
	g := newTestGame(t, VariantBlackjack, twoBots()...)
	if err := g.DealRound(); err == nil {
		t.Fatal("deal before betting must be rejected")
	}
	mustBet(t, g, 50)
	mustDeal(t, g)
	if err := g.DealRound(); err == nil {
		t.Fatal("second deal in one round must be rejected")
	}
}

func TestActOutOfTurn(t *testing.T) {
	g := newTestGame(t, VariantBlackjack, twoBots()...)
	mustBet(t, g, 50)
	mustDeal(t, g)

	if err := g.Act("b1", ActionStand); !errors.Is(err, ErrOutOfTurn) {
		t.Fatalf("expected ErrOutOfTurn, got %v", err)
	}
	if err := g.Act(HumanID, ActionCall); err == nil {
		t.Fatal("poker action at a blackjack table must be rejected")
	}
}

func TestBlackjackStandWalksTheTable(t *testing.T) {
	g := newTestGame(t, VariantBlackjack, twoBots()...)
	mustBet(t, g, 50)
	mustDeal(t, g)

	for _, id := range []string{HumanID, "b1", "b2"} {
		if g.activeID != id {
			t.Fatalf("expected %s to act, got %s", id, g.activeID)
		}
		if err := g.Act(id, ActionStand); err != nil {
			t.Fatalf("stand %s: %v", id, err)
		}
	}
	if g.activeID != DealerID {
		t.Fatalf("after last seat the dealer acts, got %s", g.activeID)
	}
}

func TestBlackjackHitKeepsTurnUnlessBust(t *testing.T) {
	g := newTestGame(t, VariantBlackjack, twoBots()...)
	mustBet(t, g, 50)
	mustDeal(t, g)

	human := g.human()
	if err := g.Act(HumanID, ActionHit); err != nil {
		t.Fatalf("hit: %v", err)
	}
	if len(human.hand) != 3 {
		t.Fatalf("hand after hit: %d cards", len(human.hand))
	}
	if human.score() > 21 {
		if human.status != StatusBust || g.activeID == HumanID {
			t.Fatal("bust must end the seat's turn")
		}
	} else if g.activeID != HumanID {
		t.Fatal("a live hit must keep the turn")
	}
}

func TestBlackjackDealerStepsAndSettles(t *testing.T) {
	g := newTestGame(t, VariantBlackjack, twoBots()...)
	mustBet(t, g, 50)
	mustDeal(t, g)

	before := g.human().chips
	for g.activeID != DealerID {
		p := g.playerByID(g.activeID)
		action := ActionStand
		if p.score() < standThreshold {
			action = ActionHit
		}
		if err := g.Act(p.id, action); err != nil {
			t.Fatalf("bot %s %s: %v", p.id, action, err)
		}
	}

	done, err := g.DealerStep()
	if err != nil {
		t.Fatalf("dealer reveal: %v", err)
	}
	if done {
		t.Fatal("first dealer step only reveals the hole card")
	}
	if !g.dealerHand[1].FaceUp {
		t.Fatal("hole card must be face up after the reveal step")
	}

	for i := 0; !done; i++ {
		if i > 20 {
			t.Fatal("dealer never finished")
		}
		if done, err = g.DealerStep(); err != nil {
			t.Fatalf("dealer step: %v", err)
		}
	}
	if card.Score(g.dealerHand) < standThreshold && card.Score(g.dealerHand) <= 21 {
		t.Fatalf("dealer stood below %d: %d", standThreshold, card.Score(g.dealerHand))
	}
	if g.phase != PhaseResolving {
		t.Fatalf("phase after dealer: %s", g.phase)
	}

	after := g.human().chips
	diff := after - before
	if diff != 0 && diff != 50 && diff != 100 {
		t.Fatalf("blackjack payout must be 0, bet, or 2x bet; chips moved by %d", diff)
	}
}

func TestFinalizeAndNextRound(t *testing.T) {
	g := newTestGame(t, VariantBlackjack, twoBots()...)
	mustBet(t, g, 50)
	mustDeal(t, g)
	gen := g.generation

	g.mu.Lock()
	g.resolveLocked()
	g.mu.Unlock()
	if err := g.FinalizeRound(); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if !g.phase.Terminal() {
		t.Fatalf("phase after finalize: %s", g.phase)
	}

	if err := g.NextRound(); err != nil {
		t.Fatalf("next round: %v", err)
	}
	if g.phase != PhaseBetting {
		t.Fatalf("phase after next round: %s", g.phase)
	}
	if g.generation != gen+1 {
		t.Fatalf("generation: got %d, want %d", g.generation, gen+1)
	}
	for _, p := range g.players {
		if len(p.hand) != 0 || p.bet != 0 || p.status != StatusActive {
			t.Fatalf("seat %s not reset", p.id)
		}
	}
	if g.pot != 0 || len(g.dealerHand) != 0 || len(g.community) != 0 {
		t.Fatal("table not reset")
	}
}

func TestNextRoundEndsSessionWhenFelted(t *testing.T) {
	g := newTestGame(t, VariantBlackjack, twoBots()...)
	g.phase = PhaseRoundOver
	g.human().chips = 0

	if err := g.NextRound(); err != nil {
		t.Fatalf("next round: %v", err)
	}
	if !g.sessionOver {
		t.Fatal("felted human must end the session")
	}
	if err := g.PlaceBet(50); !errors.Is(err, ErrSessionOver) {
		t.Fatalf("expected ErrSessionOver, got %v", err)
	}
}

func TestCloseSessionInvalidatesGeneration(t *testing.T) {
	g := newTestGame(t, VariantBlackjack, twoBots()...)
	gen := g.Generation()
	balance := g.CloseSession()
	if balance != InitialChips {
		t.Fatalf("final balance: got %d", balance)
	}
	if g.Generation() == gen {
		t.Fatal("closing must bump the generation")
	}
	if !g.SessionOver() {
		t.Fatal("session must be over")
	}
}

func TestNextActorCyclesLiveSeats(t *testing.T) {
	g := newTestGame(t, VariantHoldem,
		Seat{Name: "Pondy", Chips: 1000},
		Seat{Name: "Mythic", Chips: 1000},
		Seat{Name: "Falky", Chips: 1000},
	)

	order := []string{HumanID}
	id := HumanID
	for i := 0; i < 3; i++ {
		id = g.nextActorID(id)
		order = append(order, id)
	}
	want := []string{HumanID, "b1", "b2", "b3"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("turn order: got %v, want %v", order, want)
		}
	}
	if g.nextActorID("b3") != HumanID {
		t.Fatal("turn order must wrap back to the human")
	}

	g.players[1].status = StatusFolded
	g.players[2].status = StatusFolded
	if got := g.nextActorID(HumanID); got != "b3" {
		t.Fatalf("folded seats must be skipped, got %s", got)
	}

	g.players[0].status = StatusFolded
	g.players[3].status = StatusFolded
	if got := g.nextActorID(HumanID); got != DealerID {
		t.Fatalf("with every seat folded the dealer acts, got %s", got)
	}
}

func TestBlackjackTurnOrderNeverWraps(t *testing.T) {
	g := newTestGame(t, VariantBlackjack, twoBots()...)
	if got := g.nextActorID("b2"); got != DealerID {
		t.Fatalf("blackjack passes to the dealer after the last seat, got %s", got)
	}
}

func mustBet(t *testing.T, g *Game, amount int64) {
	t.Helper()
	if err := g.PlaceBet(amount); err != nil {
		t.Fatalf("PlaceBet(%d): %v", amount, err)
	}
}

func mustDeal(t *testing.T, g *Game) {
	t.Helper()
	if err := g.DealRound(); err != nil {
		t.Fatalf("DealRound: %v", err)
	}
}
