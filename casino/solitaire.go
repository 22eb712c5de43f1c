package casino

import (
	"github.com/Jimmyu2foru18/pookies-grand-casino/card"
)

// PileKind names the solitaire pile families a card can move between.
type PileKind byte

const (
	PileTableau PileKind = iota
	PileFoundation
	PileWaste
	PileStock
)

// MoveTarget addresses a destination pile. Index selects the tableau
// column (0-6) or foundation slot (0-3).
type MoveTarget struct {
	Kind  PileKind
	Index int
}

type solitaireLayout struct {
	tableau     [7]card.Pile
	foundations [4]card.Pile
	stock       card.Pile
	waste       card.Pile
}

// dealSolitaire lays out the klondike tableau from the front of the
// shuffled deck; the remainder becomes the stock.
func dealSolitaire(deck *card.Pile) *solitaireLayout {
	s := &solitaireLayout{}
	for col := 0; col < 7; col++ {
		for n := 0; n <= col; n++ {
			c := deck.PopBottom()
			c.FaceUp = n == col
			s.tableau[col].Push(c)
		}
	}
	s.stock = *deck
	*deck = nil
	return s
}

func (s *solitaireLayout) foundationCount() int {
	total := 0
	for _, f := range s.foundations {
		total += len(f)
	}
	return total
}

// solSource locates a face-up card. depth is the card's position within a
// tableau column; waste and foundation sources are always the top card.
type solSource struct {
	kind  PileKind
	index int
	depth int
}

func (s *solitaireLayout) find(cardID string) (solSource, bool) {
	if top := s.waste.Top(); top != nil && top.ID == cardID {
		return solSource{kind: PileWaste}, true
	}
	for i := range s.foundations {
		if top := s.foundations[i].Top(); top != nil && top.ID == cardID {
			return solSource{kind: PileFoundation, index: i}, true
		}
	}
	for i := range s.tableau {
		for d, c := range s.tableau[i] {
			if c.ID == cardID && c.FaceUp {
				return solSource{kind: PileTableau, index: i, depth: d}, true
			}
		}
	}
	return solSource{}, false
}

// DrawStock flips the next stock card onto the waste. An empty stock
// recycles the waste face down in order; with both piles empty the call
// is a no-op.
func (g *Game) DrawStock() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkSolitaireTurnLocked(); err != nil {
		return err
	}
	s := g.sol

	if len(s.stock) == 0 {
		for i := len(s.waste) - 1; i >= 0; i-- {
			c := s.waste[i]
			c.FaceUp = false
			s.stock.Push(c)
		}
		s.waste = nil
		return nil
	}
	c := s.stock.PopBottom()
	c.FaceUp = true
	s.waste.Push(c)
	return nil
}

// MoveCard moves the identified card (and, from the tableau, the face-up
// run on top of it) onto the target pile. Foundations accept one suit
// ascending from the Ace and pay the per-card reward; tableau columns
// build down in alternating colors, Kings only on empty columns.
func (g *Game) MoveCard(cardID string, to MoveTarget) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkSolitaireTurnLocked(); err != nil {
		return err
	}
	s := g.sol

	src, ok := s.find(cardID)
	if !ok {
		return InvalidMoveError("card is not available")
	}

	switch to.Kind {
	case PileFoundation:
		if to.Index < 0 || to.Index >= len(s.foundations) {
			return InvalidMoveError("no such foundation")
		}
		return g.moveToFoundationLocked(src, to.Index)

	case PileTableau:
		if to.Index < 0 || to.Index >= len(s.tableau) {
			return InvalidMoveError("no such column")
		}
		return g.moveToTableauLocked(src, to.Index)

	default:
		return InvalidMoveError("cards only move to the tableau or a foundation")
	}
}

// AutoMove sends a waste-top or column-top card to the first foundation
// that accepts it.
func (g *Game) AutoMove(cardID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.checkSolitaireTurnLocked(); err != nil {
		return err
	}
	s := g.sol

	src, ok := s.find(cardID)
	if !ok {
		return InvalidMoveError("card is not available")
	}
	if src.kind == PileTableau && src.depth != len(s.tableau[src.index])-1 {
		return InvalidMoveError("only the top card can auto-move")
	}
	if src.kind == PileFoundation {
		return InvalidMoveError("card is already home")
	}

	c := s.sourceCard(src)
	for i := range s.foundations {
		if foundationAccepts(s.foundations[i], c) {
			return g.moveToFoundationLocked(src, i)
		}
	}
	return InvalidMoveError("no foundation accepts " + c.String())
}

func (g *Game) checkSolitaireTurnLocked() error {
	if g.sessionOver {
		return ErrSessionOver
	}
	if g.cfg.Variant != VariantSolitaire {
		return ErrIllegalAction("not a solitaire table")
	}
	if g.phase != PhasePlaying {
		return ErrIllegalAction("cannot move cards during %s", g.phase)
	}
	return nil
}

func (s *solitaireLayout) sourceCard(src solSource) *card.Card {
	switch src.kind {
	case PileWaste:
		return s.waste.Top()
	case PileFoundation:
		return s.foundations[src.index].Top()
	default:
		return s.tableau[src.index][src.depth]
	}
}

func foundationAccepts(pile card.Pile, c *card.Card) bool {
	top := pile.Top()
	if top == nil {
		return c.Rank == card.RankAce
	}
	return top.Suit == c.Suit && c.Rank == top.Rank+1
}

func tableauAccepts(col card.Pile, c *card.Card) bool {
	top := col.Top()
	if top == nil {
		return c.Rank == card.RankKing
	}
	return top.FaceUp && c.Rank == top.Rank-1 && c.Suit.Red() != top.Suit.Red()
}

func (g *Game) moveToFoundationLocked(src solSource, fi int) error {
	s := g.sol

	if src.kind == PileTableau && src.depth != len(s.tableau[src.index])-1 {
		return InvalidMoveError("foundations take one card at a time")
	}
	c := s.sourceCard(src)
	if !foundationAccepts(s.foundations[fi], c) {
		return InvalidMoveError(c.String() + " does not play there")
	}

	s.removeTop(src)
	s.foundations[fi].Push(c)
	g.human().chips += SolitaireReward

	if s.foundationCount() == 52 {
		g.human().status = StatusWon
		g.winnerID = HumanID
		g.phase = PhaseVictory
		g.message = "SOLITAIRE COMPLETE!"
	}
	return nil
}

func (g *Game) moveToTableauLocked(src solSource, ti int) error {
	s := g.sol

	var moving card.Pile
	if src.kind == PileTableau {
		moving = s.tableau[src.index][src.depth:]
	} else {
		moving = card.Pile{s.sourceCard(src)}
	}
	if src.kind == PileTableau && src.index == ti {
		return InvalidMoveError("card is already there")
	}
	if !tableauAccepts(s.tableau[ti], moving[0]) {
		return InvalidMoveError(moving[0].String() + " does not play there")
	}

	if src.kind == PileTableau {
		s.tableau[src.index] = s.tableau[src.index][:src.depth]
		s.flipExposed(src.index)
	} else {
		s.removeTop(src)
	}
	s.tableau[ti] = append(s.tableau[ti], moving...)
	return nil
}

func (s *solitaireLayout) removeTop(src solSource) {
	switch src.kind {
	case PileWaste:
		s.waste.Pop()
	case PileFoundation:
		s.foundations[src.index].Pop()
	default:
		s.tableau[src.index].Pop()
		s.flipExposed(src.index)
	}
}

func (s *solitaireLayout) flipExposed(col int) {
	if top := s.tableau[col].Top(); top != nil {
		top.FaceUp = true
	}
}
