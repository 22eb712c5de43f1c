package casino

import "github.com/Jimmyu2foru18/pookies-grand-casino/card"

// resolveLocked settles the round: reveal hands, pick the winner, pay the
// pot. The table sits in RESOLVING until FinalizeRound moves it on.
func (g *Game) resolveLocked() {
	g.phase = PhaseResolving
	g.activeID = ""

	for _, c := range g.dealerHand {
		c.FaceUp = true
	}
	for _, p := range g.players {
		for _, c := range p.hand {
			c.FaceUp = true
		}
	}

	switch g.cfg.Variant {
	case VariantBlackjack:
		g.resolveBlackjackLocked()
	case VariantRummy:
		g.resolveRummyLocked()
	default:
		g.resolveShowdownLocked()
	}
}

func (g *Game) resolveBlackjackLocked() {
	dealerScore := card.Score(g.dealerHand)
	human := g.human()

	settle := func(p *Player) {
		score := p.score()
		switch {
		case score > 21:
			p.status = StatusLost
		case dealerScore > 21 || score > dealerScore:
			p.status = StatusWon
			p.chips += 2 * p.bet
		case score == dealerScore:
			p.status = StatusActive
			p.chips += p.bet // push
		default:
			p.status = StatusLost
		}
	}
	for _, p := range g.players {
		settle(p)
	}

	switch {
	case human.score() > 21:
		g.message = "Bust! " + DealerName + " Wins."
	case human.status == StatusWon:
		g.winnerID = HumanID
		g.message = HumanName + " Wins!"
	case human.status == StatusActive:
		g.message = "Push. Bet returned."
	default:
		g.message = DealerName + " Wins."
	}
}

func (g *Game) resolveRummyLocked() {
	for _, p := range g.players {
		if p.status != StatusWon {
			continue
		}
		g.winnerID = p.id
		if p.id == HumanID {
			p.chips += g.pot + RummyBonus
		}
		g.message = p.name + " Wins!"
		return
	}
	g.message = "Draw. No winner this round."
}

// resolveShowdownLocked settles the poker variants. With one live seat
// left the pot is uncontested; otherwise the winner is drawn uniformly
// from the live seats, hands are never ranked.
func (g *Game) resolveShowdownLocked() {
	var live []*Player
	for _, p := range g.players {
		if p.status != StatusFolded {
			live = append(live, p)
		}
	}
	if len(live) == 0 {
		g.message = "Everyone folded. House takes the pot."
		return
	}

	var winner *Player
	if len(live) == 1 {
		winner = live[0]
		g.message = winner.name + " Wins (Others Folded)!"
	} else {
		winner = live[g.rng.Intn(len(live))]
		g.message = winner.name + " Wins the Pot!"
	}
	winner.status = StatusWon
	winner.chips += g.pot
	g.winnerID = winner.id
}

// FinalizeRound leaves RESOLVING for ROUND_OVER, or VICTORY when the
// human took the round.
func (g *Game) FinalizeRound() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sessionOver {
		return ErrSessionOver
	}
	if g.phase != PhaseResolving {
		return ErrIllegalAction("cannot finalize during %s", g.phase)
	}
	if g.winnerID == HumanID {
		g.phase = PhaseVictory
	} else {
		g.phase = PhaseRoundOver
	}
	return nil
}
