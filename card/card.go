package card

import (
	"fmt"

	"github.com/google/uuid"
)

type Suit byte

const (
	Spade Suit = iota // ♠
	Heart             // ♥
	Club              // ♣
	Diamond           // ♦
)

var Suits = []Suit{Heart, Diamond, Club, Spade}

func (s Suit) String() string {
	switch s {
	case Spade:
		return "♠"
	case Heart:
		return "♥"
	case Club:
		return "♣"
	case Diamond:
		return "♦"
	}
	return "?"
}

// Red reports whether the suit is a red suit (hearts or diamonds).
func (s Suit) Red() bool {
	return s == Heart || s == Diamond
}

// Rank 1-13 (A=1, K=13). Runs and solitaire ordering use this value
// directly; blackjack uses Value instead.
type Rank byte

const (
	RankAce Rank = iota + 1
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJack
	RankQueen
	RankKing
)

var Ranks = []Rank{
	Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8, Rank9, Rank10,
	RankJack, RankQueen, RankKing, RankAce,
}

func (r Rank) String() string {
	switch r {
	case RankAce:
		return "A"
	case RankJack:
		return "J"
	case RankQueen:
		return "Q"
	case RankKing:
		return "K"
	default:
		return fmt.Sprintf("%d", byte(r))
	}
}

// Value 返回牌面点数: face cards = 10, Ace = 11 (blackjack default,
// softened by Score), numerals as printed.
func (r Rank) Value() int {
	switch {
	case r == RankAce:
		return 11
	case r >= RankJack:
		return 10
	default:
		return int(r)
	}
}

// Card is a single physical card. Each card carries a unique id so it can
// be addressed while moving between owning piles; identity is fixed at deck
// construction and only FaceUp mutates afterwards.
type Card struct {
	ID     string
	Suit   Suit
	Rank   Rank
	Value  int
	FaceUp bool
}

func (c *Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// New mints a card with a fresh id, face down.
func New(s Suit, r Rank) *Card {
	return &Card{
		ID:    uuid.NewString(),
		Suit:  s,
		Rank:  r,
		Value: r.Value(),
	}
}
