package card

// Score sums blackjack card values, softening aces from 11 down to 1 while
// the total is over 21. The result may still exceed 21; bust is the
// caller's judgment.
func Score(hand []*Card) int {
	score := 0
	aces := 0
	for _, c := range hand {
		if c.Rank == RankAce {
			aces++
		}
		score += c.Value
	}
	for score > 21 && aces > 0 {
		score -= 10
		aces--
	}
	return score
}
