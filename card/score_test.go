package card

import "testing"

func mk(r Rank) *Card { return New(Spade, r) }

func TestScoreSoftensAces(t *testing.T) {
	cases := []struct {
		name string
		hand []*Card
		want int
	}{
		{"two aces and a nine", []*Card{mk(RankAce), mk(RankAce), mk(Rank9)}, 21},
		{"king queen", []*Card{mk(RankKing), mk(RankQueen)}, 20},
		{"ace king five", []*Card{mk(RankAce), mk(RankKing), mk(Rank5)}, 16},
		{"soft seventeen", []*Card{mk(RankAce), mk(Rank6)}, 17},
		{"hard bust stays bust", []*Card{mk(RankKing), mk(RankQueen), mk(Rank5)}, 25},
		{"empty hand", nil, 0},
	}
	for _, tc := range cases {
		if got := Score(tc.hand); got != tc.want {
			t.Errorf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}
