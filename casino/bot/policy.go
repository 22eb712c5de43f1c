package bot

import (
	"math/rand"

	"github.com/Jimmyu2foru18/pookies-grand-casino/casino"
)

// Raise and check-raise odds for the poker variants. Hold'em bots never
// fold when they can afford the call; draw poker bots dodge a fifth of
// the bets they face.
const (
	raiseFacingBetOdds = 0.2
	openRaiseOdds      = 0.1
	pokerFoldOdds      = 0.2
)

// RuleBrain plays the house style: hit to 17 at blackjack, mostly call
// at the poker tables with the occasional fixed-step raise.
type RuleBrain struct {
	name string
	rng  *rand.Rand
}

func NewRuleBrain(name string, seed int64) *RuleBrain {
	return &RuleBrain{name: name, rng: rand.New(rand.NewSource(seed))}
}

func (b *RuleBrain) Name() string { return b.name }

// Decide implements Decider.
func (b *RuleBrain) Decide(view View) casino.ActionType {
	if view.Variant == casino.VariantBlackjack {
		if view.Score < 17 {
			return casino.ActionHit
		}
		return casino.ActionStand
	}

	roll := b.rng.Float64()
	if view.ToCall > 0 {
		if roll > 1-raiseFacingBetOdds && view.Chips >= view.ToCall+casino.RaiseStep {
			return casino.ActionRaise
		}
		callable := view.Chips >= view.ToCall
		if callable && (roll > pokerFoldOdds || view.Variant == casino.VariantHoldem) {
			return casino.ActionCall
		}
		return casino.ActionFold
	}

	if roll > 1-openRaiseOdds && view.Chips >= casino.RaiseStep {
		return casino.ActionRaise
	}
	return casino.ActionCheck
}
