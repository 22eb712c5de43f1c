package card

import "math/rand"

// Pile is an ordered stack of cards; the top of the pile is the end of the
// slice.
type Pile []*Card

func (p Pile) Len() int { return len(p) }

// Top returns the top card without removing it, or nil when empty.
func (p Pile) Top() *Card {
	if len(p) == 0 {
		return nil
	}
	return p[len(p)-1]
}

func (p *Pile) Push(cards ...*Card) {
	*p = append(*p, cards...)
}

// Pop removes and returns the top card, or nil when empty.
func (p *Pile) Pop() *Card {
	n := len(*p)
	if n == 0 {
		return nil
	}
	c := (*p)[n-1]
	*p = (*p)[:n-1]
	return c
}

// PopBottom removes and returns the bottom card, or nil when empty.
func (p *Pile) PopBottom() *Card {
	if len(*p) == 0 {
		return nil
	}
	c := (*p)[0]
	*p = (*p)[1:]
	return c
}

// NewDeck builds the canonical 52-card deck, one card per (suit, rank)
// pair, all face down, each with a fresh unique id.
func NewDeck() Pile {
	deck := make(Pile, 0, 52)
	for _, s := range Suits {
		for _, r := range Ranks {
			deck = append(deck, New(s, r))
		}
	}
	return deck
}

// Shuffle returns a new uniformly random permutation of deck using the
// Fisher-Yates walk; the input ordering is left untouched.
func Shuffle(rng *rand.Rand, deck Pile) Pile {
	out := make(Pile, len(deck))
	copy(out, deck)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
