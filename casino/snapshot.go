package casino

import "github.com/Jimmyu2foru18/pookies-grand-casino/card"

// Snapshot is an immutable projection of the table for renderers and
// bots. Cards are copied by value; mutating a snapshot never touches the
// live game.
type Snapshot struct {
	Variant     Variant        `json:"variant"`
	Phase       Phase          `json:"phase"`
	Generation  uint64         `json:"generation"`
	Players     []SeatSnapshot `json:"players"`
	DealerHand  []card.Card    `json:"dealerHand,omitempty"`
	Community   []card.Card    `json:"community,omitempty"`
	Street      Street         `json:"street"`
	DeckCount   int            `json:"deckCount"`
	Discard     []card.Card    `json:"discard,omitempty"`
	Pot         int64          `json:"pot"`
	HighestBet  int64          `json:"highestBet"`
	ActiveID    string         `json:"activeId"`
	TurnCount   uint32         `json:"turnCount"`
	Message     string         `json:"message"`
	WinnerID    string         `json:"winnerId,omitempty"`
	SessionOver bool           `json:"sessionOver"`

	Solitaire *SolitaireSnapshot `json:"solitaire,omitempty"`
}

type SeatSnapshot struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Bot        bool          `json:"bot"`
	Hand       []card.Card   `json:"hand"`
	Melds      [][]card.Card `json:"melds,omitempty"`
	Chips      int64         `json:"chips"`
	Bet        int64         `json:"bet"`
	Status     Status        `json:"status"`
	LastAction string        `json:"lastAction,omitempty"`
}

type SolitaireSnapshot struct {
	Tableau     [7][]card.Card `json:"tableau"`
	Foundations [4][]card.Card `json:"foundations"`
	StockCount  int            `json:"stockCount"`
	Waste       []card.Card    `json:"waste"`
}

func copyPile(p card.Pile) []card.Card {
	if len(p) == 0 {
		return nil
	}
	out := make([]card.Card, len(p))
	for i, c := range p {
		out[i] = *c
	}
	return out
}

// Snapshot captures the current table state under the lock.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	snap := Snapshot{
		Variant:     g.cfg.Variant,
		Phase:       g.phase,
		Generation:  g.generation,
		DealerHand:  copyPile(g.dealerHand),
		Community:   copyPile(g.community),
		Street:      g.street,
		DeckCount:   len(g.deck),
		Discard:     copyPile(g.discard),
		Pot:         g.pot,
		HighestBet:  g.highestBet,
		ActiveID:    g.activeID,
		TurnCount:   g.turnCount,
		Message:     g.message,
		WinnerID:    g.winnerID,
		SessionOver: g.sessionOver,
	}

	snap.Players = make([]SeatSnapshot, len(g.players))
	for i, p := range g.players {
		ps := SeatSnapshot{
			ID:         p.id,
			Name:       p.name,
			Bot:        p.bot,
			Hand:       copyPile(p.hand),
			Chips:      p.chips,
			Bet:        p.bet,
			Status:     p.status,
			LastAction: p.lastAction,
		}
		for _, m := range p.melds {
			ps.Melds = append(ps.Melds, copyPile(m))
		}
		snap.Players[i] = ps
	}

	if g.sol != nil {
		ss := &SolitaireSnapshot{StockCount: len(g.sol.stock), Waste: copyPile(g.sol.waste)}
		for i := range g.sol.tableau {
			ss.Tableau[i] = copyPile(g.sol.tableau[i])
		}
		for i := range g.sol.foundations {
			ss.Foundations[i] = copyPile(g.sol.foundations[i])
		}
		snap.Solitaire = ss
	}
	return snap
}
