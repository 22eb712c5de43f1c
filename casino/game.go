package casino

import (
	"math/rand"
	"sync"
	"time"

	"github.com/Jimmyu2foru18/pookies-grand-casino/card"
)

// Game is the single-writer round engine for one table session. All public
// methods lock; callers interleave freely from any goroutine.
type Game struct {
	cfg Config
	rng *rand.Rand

	mu sync.Mutex

	// monotonic round counter; scheduled steps captured against an older
	// generation must be discarded by the caller.
	generation uint64

	phase   Phase
	players []*Player

	deck       card.Pile
	discard    card.Pile
	dealerHand card.Pile
	community  card.Pile
	street     Street

	pot        int64
	highestBet int64

	activeID  string
	turnCount uint32
	message   string

	winnerID    string
	sessionOver bool

	sol *solitaireLayout
}

func NewGame(cfg Config) (*Game, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Game{
		cfg:        cfg,
		rng:        rand.New(rand.NewSource(seed)),
		generation: 1,
		phase:      PhaseBetting,
		message:    "Place your bet.",
	}
	g.players = append(g.players, newPlayer(HumanID, HumanName, cfg.StartingBalance, false))
	if cfg.Variant != VariantSolitaire {
		for i, b := range cfg.Bots {
			id := "b" + string(rune('1'+i))
			g.players = append(g.players, newPlayer(id, b.Name, b.Chips, true))
		}
	}
	return g, nil
}

func (g *Game) Variant() Variant { return g.cfg.Variant }

// Generation returns the current round generation. Deferred steps carry
// the generation they were scheduled under and are dropped when it no
// longer matches.
func (g *Game) Generation() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generation
}

func (g *Game) human() *Player { return g.players[0] }

func (g *Game) playerByID(id string) *Player {
	for _, p := range g.players {
		if p.id == id {
			return p
		}
	}
	return nil
}

// HumanBalance is the human seat's current stack.
func (g *Game) HumanBalance() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.human().chips
}

// PlaceBet collects the round's wager from every seat and moves the table
// to DEALING. Solitaire charges the fixed buy-in; Rummy plays for the
// bonus and antes nothing.
func (g *Game) PlaceBet(amount int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sessionOver {
		return ErrSessionOver
	}
	if g.phase != PhaseBetting {
		return ErrIllegalAction("cannot bet during %s", g.phase)
	}

	switch g.cfg.Variant {
	case VariantSolitaire:
		amount = SolitaireCost
	case VariantRummy:
		amount = 0
	default:
		if amount < MinBet || amount > MaxBet {
			return ErrIllegalAction("bet must be between $%d and $%d", MinBet, MaxBet)
		}
	}

	human := g.human()
	if human.chips < amount {
		return &InsufficientChipsError{PlayerID: human.id, Need: amount, Have: human.chips}
	}

	g.pot = 0
	switch g.cfg.Variant {
	case VariantSolitaire:
		human.chips -= amount
	case VariantRummy:
		// no ante; the table plays for the fixed bonus
	default:
		g.pot += human.contribute(amount)
		for _, p := range g.players[1:] {
			g.pot += p.contribute(amount)
		}
		g.highestBet = amount
	}

	g.phase = PhaseDealing
	g.activeID = ""
	g.message = "Dealing cards..."
	return nil
}

// DealRound shuffles a fresh deck and deals the opening layout for the
// session's variant. Only legal from DEALING, so a deal scheduled for a
// finished round is rejected.
func (g *Game) DealRound() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sessionOver {
		return ErrSessionOver
	}
	if g.phase != PhaseDealing {
		return ErrIllegalAction("cannot deal during %s", g.phase)
	}

	g.deck = card.Shuffle(g.rng, card.NewDeck())
	g.turnCount = 0

	switch g.cfg.Variant {
	case VariantSolitaire:
		g.sol = dealSolitaire(&g.deck)
		g.phase = PhasePlaying
		g.activeID = ""
		g.message = "Good Luck Pookie!"

	case VariantRummy:
		g.dealToEach(rummyHandSize, false)
		up := g.deck.Pop()
		up.FaceUp = true
		g.discard.Push(up)
		g.phase = PhaseRummyDraw
		g.activeID = HumanID
		g.message = "Draw a card from the Stock or Discard pile."

	case VariantBlackjack:
		g.dealToEach(blackjackHandSize, true)
		g.dealerHand.Push(g.draw(true), g.draw(false))
		g.phase = PhasePlaying
		g.activeID = HumanID
		g.message = "Pookie's Turn."

	case VariantHoldem:
		g.dealToEach(holdemHoleCards, false)
		g.street = StreetPreflop
		g.phase = PhasePlaying
		g.activeID = HumanID
		g.message = "Pookie's Turn."

	case VariantPoker:
		g.dealToEach(drawPokerHandSize, false)
		g.phase = PhaseSwapping
		g.activeID = ""
		g.message = "Select up to 3 cards to exchange."
	}
	return nil
}

// draw pops the top of the deck, optionally face up.
func (g *Game) draw(faceUp bool) *card.Card {
	c := g.deck.Pop()
	if c != nil {
		c.FaceUp = faceUp
	}
	return c
}

// dealToEach gives n cards to every seat. Blackjack is played open, so
// bot cards land face up there; the hidden-hand variants keep them down
// until resolution.
func (g *Game) dealToEach(n int, botsFaceUp bool) {
	for _, p := range g.players {
		for i := 0; i < n; i++ {
			p.hand.Push(g.draw(!p.bot || botsFaceUp))
		}
	}
}

// nextActorID walks the table clockwise from currentID. Poker variants
// and Rummy wrap around skipping folded seats; when nobody else can act
// the dealer takes over. Blackjack never wraps: once the last seat has
// acted, the turn passes to the dealer.
func (g *Game) nextActorID(currentID string) string {
	idx := 0
	for i, p := range g.players {
		if p.id == currentID {
			idx = i
			break
		}
	}

	if g.cfg.Variant == VariantBlackjack {
		for i := idx + 1; i < len(g.players); i++ {
			if g.players[i].status != StatusFolded {
				return g.players[i].id
			}
		}
		return DealerID
	}

	next := (idx + 1) % len(g.players)
	for loops := 0; g.players[next].status == StatusFolded; loops++ {
		if loops >= len(g.players) {
			return DealerID
		}
		next = (next + 1) % len(g.players)
	}
	return g.players[next].id
}

// NextRound clears the table back to BETTING, or ends the session when
// the human is felted.
func (g *Game) NextRound() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sessionOver {
		return ErrSessionOver
	}
	if !g.phase.Terminal() {
		return ErrIllegalAction("round still in progress (%s)", g.phase)
	}

	g.generation++
	if g.human().chips <= 0 {
		g.sessionOver = true
		g.message = "Out of chips. Thanks for playing, Pookie."
		return nil
	}

	for _, p := range g.players {
		p.resetForRound()
	}
	g.deck = nil
	g.discard = nil
	g.dealerHand = nil
	g.community = nil
	g.street = StreetPreflop
	g.pot = 0
	g.highestBet = 0
	g.activeID = ""
	g.turnCount = 0
	g.winnerID = ""
	g.sol = nil
	g.phase = PhaseBetting
	g.message = "Place your bet."
	return nil
}

// CloseSession ends the session immediately and invalidates any pending
// scheduled steps. Returns the human's final balance.
func (g *Game) CloseSession() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sessionOver = true
	g.generation++
	return g.human().chips
}

// SessionOver reports whether the table has shut down.
func (g *Game) SessionOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sessionOver
}
