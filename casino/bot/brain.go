// Package bot holds the table opponents: who sits down, how long they
// pretend to think, and what they do with the turn.
package bot

import (
	"github.com/Jimmyu2foru18/pookies-grand-casino/card"
	"github.com/Jimmyu2foru18/pookies-grand-casino/casino"
)

// View is the read-only projection of the table a bot decides from.
type View struct {
	Variant casino.Variant
	BotID   string
	Chips   int64
	ToCall  int64
	Score   int // blackjack hand total
}

// Decider is the core interface every bot type implements.
type Decider interface {
	// Decide is called when it's the bot's turn.
	Decide(view View) casino.ActionType
	// Name returns a human-readable identifier for debugging.
	Name() string
}

// BuildView projects a snapshot into the seat's view. Returns false when
// the seat is not at the table.
func BuildView(snap casino.Snapshot, botID string) (View, bool) {
	for _, p := range snap.Players {
		if p.ID != botID {
			continue
		}
		hand := make(card.Pile, len(p.Hand))
		for i := range p.Hand {
			hand[i] = &p.Hand[i]
		}
		return View{
			Variant: snap.Variant,
			BotID:   botID,
			Chips:   p.Chips,
			ToCall:  snap.HighestBet - p.Bet,
			Score:   card.Score(hand),
		}, true
	}
	return View{}, false
}
