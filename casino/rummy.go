package casino

import (
	"sort"

	"github.com/Jimmyu2foru18/pookies-grand-casino/card"
)

// DrawRummy starts the human's rummy turn by drawing from the chosen
// pile. Drawing from an empty pile is rejected and the turn does not
// start.
func (g *Game) DrawRummy(src DrawSource) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sessionOver {
		return ErrSessionOver
	}
	if g.phase != PhaseRummyDraw {
		return ErrIllegalAction("cannot draw during %s", g.phase)
	}
	if g.activeID != HumanID {
		return ErrOutOfTurn
	}

	var c *card.Card
	switch src {
	case DrawFromStock:
		c = g.deck.Pop()
	case DrawFromDiscard:
		c = g.discard.Pop()
	}
	if c == nil {
		return ErrIllegalAction("nothing to draw there")
	}
	c.FaceUp = true
	g.human().hand.Push(c)
	g.phase = PhaseRummyTurn
	g.message = "Meld sets or runs, then discard to end your turn."
	return nil
}

// MeldCards lays down the selected cards as one meld: three or more of a
// kind, or a same-suit run of consecutive ranks (Ace low). The move is
// atomic; an invalid selection leaves the hand untouched.
func (g *Game) MeldCards(ids []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sessionOver {
		return ErrSessionOver
	}
	if g.phase != PhaseRummyTurn {
		return ErrIllegalAction("cannot meld during %s", g.phase)
	}
	human := g.human()
	if len(ids) < minMeldSize {
		return InvalidMeldError("need 3+ cards")
	}
	if !human.holdsAll(ids) {
		return InvalidMeldError("card not in hand")
	}

	picked := make(card.Pile, 0, len(ids))
	for _, id := range ids {
		for _, c := range human.hand {
			if c.ID == id {
				picked = append(picked, c)
				break
			}
		}
	}
	if !validMeld(picked) {
		return InvalidMeldError("not a set or a run")
	}

	for _, id := range ids {
		human.takeCard(id)
	}
	human.melds = append(human.melds, picked)
	g.message = "Meld placed! Discard to end your turn."
	return nil
}

// DiscardCard ends the human's rummy turn. Going out wins the round on
// the spot; otherwise play passes around the table.
func (g *Game) DiscardCard(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sessionOver {
		return ErrSessionOver
	}
	if g.phase != PhaseRummyTurn {
		return ErrIllegalAction("cannot discard during %s", g.phase)
	}
	human := g.human()
	c := human.takeCard(id)
	if c == nil {
		return ErrIllegalAction("card not in hand")
	}
	c.FaceUp = true
	g.discard.Push(c)

	if len(human.hand) == 0 {
		human.status = StatusWon
		g.resolveLocked()
		return nil
	}
	g.phase = PhaseRummyDraw
	g.activeID = g.nextActorID(HumanID)
	g.message = "Opponents are thinking..."
	return nil
}

// PlayRummyBotTurn runs one bot's full rummy turn: draw, auto-meld
// triplets, discard. An emptied hand settles the round immediately.
func (g *Game) PlayRummyBotTurn(botID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sessionOver {
		return ErrSessionOver
	}
	if g.phase != PhaseRummyDraw {
		return ErrIllegalAction("cannot take a rummy turn during %s", g.phase)
	}
	if g.activeID != botID {
		return ErrOutOfTurn
	}
	p := g.playerByID(botID)
	if p == nil || !p.bot {
		return ErrIllegalAction("unknown bot %s", botID)
	}

	// draw, falling back to the bottom of the discard pile
	c := g.deck.Pop()
	if c == nil {
		c = g.discard.PopBottom()
	}
	if c != nil {
		c.FaceUp = false
		p.hand.Push(c)
	}

	// lay down any three-of-a-kind already held
	byRank := make(map[card.Rank][]string)
	for _, hc := range p.hand {
		byRank[hc.Rank] = append(byRank[hc.Rank], hc.ID)
	}
	for _, ids := range byRank {
		if len(ids) < minMeldSize {
			continue
		}
		meld := make(card.Pile, 0, len(ids))
		for _, id := range ids {
			mc := p.takeCard(id)
			mc.FaceUp = true
			meld = append(meld, mc)
		}
		p.melds = append(p.melds, meld)
	}

	if len(p.hand) == 0 {
		p.status = StatusWon
		g.resolveLocked()
		return nil
	}

	out := p.hand[g.rng.Intn(len(p.hand))]
	p.takeCard(out.ID)
	out.FaceUp = true
	g.discard.Push(out)

	g.activeID = g.nextActorID(botID)
	if g.activeID == HumanID {
		g.message = "Draw a card from the Stock or Discard pile."
	}
	return nil
}

// validMeld accepts a set (all one rank) or a same-suit run of
// consecutive ranks, Ace low. Sets win ties like {7,7,7}.
func validMeld(cards card.Pile) bool {
	if len(cards) < minMeldSize {
		return false
	}
	set := true
	for _, c := range cards[1:] {
		if c.Rank != cards[0].Rank {
			set = false
			break
		}
	}
	if set {
		return true
	}

	sorted := make(card.Pile, len(cards))
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Rank < sorted[j].Rank })
	for i, c := range sorted {
		if c.Suit != sorted[0].Suit {
			return false
		}
		if i > 0 && c.Rank != sorted[i-1].Rank+1 {
			return false
		}
	}
	return true
}
