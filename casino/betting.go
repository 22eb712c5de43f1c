package casino

import "github.com/Jimmyu2foru18/pookies-grand-casino/card"

// Act applies one turn action for the seat holding the turn. Blackjack
// seats hit or stand; poker seats fold, check, call or raise. Rejected
// actions leave the game untouched.
func (g *Game) Act(playerID string, action ActionType) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sessionOver {
		return ErrSessionOver
	}
	if g.phase.Terminal() || g.phase == PhaseResolving {
		return ErrRoundEnded
	}
	if g.phase != PhasePlaying {
		return ErrIllegalAction("cannot act during %s", g.phase)
	}
	if g.activeID != playerID {
		return ErrOutOfTurn
	}
	p := g.playerByID(playerID)
	if p == nil {
		return ErrIllegalAction("unknown player %s", playerID)
	}

	switch action {
	case ActionFold, ActionCheck, ActionCall, ActionRaise:
		if g.cfg.Variant != VariantPoker && g.cfg.Variant != VariantHoldem {
			return ErrIllegalAction("%s is not a %s action", action, g.cfg.Variant)
		}
		return g.applyBetActionLocked(p, action)
	case ActionHit, ActionStand:
		if g.cfg.Variant != VariantBlackjack {
			return ErrIllegalAction("%s is not a %s action", action, g.cfg.Variant)
		}
		return g.applyBlackjackActionLocked(p, action)
	default:
		return ErrIllegalAction("unsupported action %s", action)
	}
}

func (g *Game) applyBetActionLocked(p *Player, action ActionType) error {
	toCall := g.highestBet - p.bet

	switch action {
	case ActionFold:
		p.status = StatusFolded
		p.lastAction = "FOLD"

	case ActionCheck:
		if toCall > 0 {
			return ErrIllegalAction("cannot check, $%d to call", toCall)
		}
		p.lastAction = "CHECK"

	case ActionCall:
		if p.chips < toCall {
			return &InsufficientChipsError{PlayerID: p.id, Need: toCall, Have: p.chips}
		}
		g.pot += p.contribute(toCall)
		p.lastAction = "CALL"

	case ActionRaise:
		cost := toCall + RaiseStep
		if p.chips < cost {
			return &InsufficientChipsError{PlayerID: p.id, Need: cost, Have: p.chips}
		}
		g.pot += p.contribute(cost)
		g.highestBet = p.bet
		p.lastAction = "RAISE"
	}

	g.turnCount++
	g.advanceTurnLocked(p)
	return nil
}

func (g *Game) applyBlackjackActionLocked(p *Player, action ActionType) error {
	switch action {
	case ActionHit:
		p.hand.Push(g.draw(true))
		p.lastAction = "HIT"
		g.turnCount++
		if p.score() > 21 {
			p.status = StatusBust
			p.lastAction = "BUST"
			g.message = p.name + " Busts!"
			g.advanceTurnLocked(p)
		}
		// a live hit keeps the turn

	case ActionStand:
		p.status = StatusStanding
		p.lastAction = "STAND"
		g.turnCount++
		g.advanceTurnLocked(p)
	}
	return nil
}

// advanceTurnLocked hands the turn to the next seat and, for the poker
// variants, closes the betting round once action returns to the first
// live seat with all bets matched.
func (g *Game) advanceTurnLocked(p *Player) {
	g.activeID = g.nextActorID(p.id)

	if g.cfg.Variant == VariantPoker || g.cfg.Variant == VariantHoldem {
		if g.activeID != DealerID && g.bettingRoundCompleteLocked() {
			g.closeBettingRoundLocked()
			return
		}
	}
	g.setTurnMessageLocked()
}

// bettingRoundCompleteLocked: every live seat has matched the highest bet
// and the turn has come back around to the first live seat.
func (g *Game) bettingRoundCompleteLocked() bool {
	first := ""
	for _, p := range g.players {
		if p.status == StatusFolded {
			continue
		}
		if first == "" {
			first = p.id
		}
		if p.bet != g.highestBet {
			return false
		}
	}
	return first != "" && g.activeID == first
}

func (g *Game) closeBettingRoundLocked() {
	if g.cfg.Variant == VariantHoldem && g.street != StreetRiver {
		g.phase = PhaseDealingCommunity
		g.activeID = ""
		g.message = DealerName + " is dealing..."
		return
	}
	if g.cfg.Variant == VariantHoldem {
		g.street = StreetShowdown
		g.message = "Showdown!"
	}
	g.activeID = DealerID
}

func (g *Game) setTurnMessageLocked() {
	switch g.activeID {
	case DealerID:
		g.message = DealerName + "'s Turn."
	case HumanID:
		g.message = HumanName + "'s Turn."
	default:
		if p := g.playerByID(g.activeID); p != nil {
			g.message = p.name + " is thinking..."
		}
	}
}

// DealCommunity reveals the next street and opens a fresh betting round.
func (g *Game) DealCommunity() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sessionOver {
		return ErrSessionOver
	}
	if g.phase != PhaseDealingCommunity {
		return ErrIllegalAction("cannot deal community cards during %s", g.phase)
	}

	switch g.street {
	case StreetPreflop:
		g.community.Push(g.draw(true), g.draw(true), g.draw(true))
		g.street = StreetFlop
		g.message = "THE FLOP"
	case StreetFlop:
		g.community.Push(g.draw(true))
		g.street = StreetTurn
		g.message = "THE TURN"
	case StreetTurn:
		g.community.Push(g.draw(true))
		g.street = StreetRiver
		g.message = "THE RIVER"
	default:
		return ErrIllegalAction("no more community cards after %s", g.street)
	}

	g.highestBet = 0
	for _, p := range g.players {
		p.bet = 0
		if p.status != StatusFolded {
			p.lastAction = ""
		}
	}
	for _, p := range g.players {
		if p.status != StatusFolded {
			g.activeID = p.id
			break
		}
	}
	g.phase = PhasePlaying
	return nil
}

// DealerStep runs one step of the dealer's turn and reports whether the
// dealer is finished. In Blackjack the dealer reveals, then hits to 17,
// one card per step so the shell can pace the reveal. In the poker
// variants and Rummy the dealer's only job is to settle the round.
func (g *Game) DealerStep() (done bool, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sessionOver {
		return false, ErrSessionOver
	}
	if g.phase != PhasePlaying || g.activeID != DealerID {
		return false, ErrOutOfTurn
	}

	if g.cfg.Variant != VariantBlackjack {
		g.resolveLocked()
		return true, nil
	}

	if hole := g.dealerHand.Top(); hole != nil && !hole.FaceUp {
		hole.FaceUp = true
		g.turnCount++
		g.message = DealerName + " Thinking..."
		return false, nil
	}
	if card.Score(g.dealerHand) < standThreshold {
		g.dealerHand.Push(g.draw(true))
		g.turnCount++
		return false, nil
	}
	g.message = DealerName + " Finished."
	g.resolveLocked()
	return true, nil
}

// Exchange swaps up to three of the human's cards in five-card draw and
// starts the betting round.
func (g *Game) Exchange(ids []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.sessionOver {
		return ErrSessionOver
	}
	if g.phase != PhaseSwapping {
		return ErrIllegalAction("cannot exchange cards during %s", g.phase)
	}
	if len(ids) > swapLimit {
		return ErrIllegalAction("can exchange at most %d cards", swapLimit)
	}
	human := g.human()
	if !human.holdsAll(ids) {
		return ErrIllegalAction("card not in hand")
	}

	for _, id := range ids {
		c := human.takeCard(id)
		c.FaceUp = false
		g.discard.Push(c)
	}
	for range ids {
		human.hand.Push(g.draw(true))
	}
	if len(ids) > 0 {
		human.lastAction = "SWAPPED"
	} else {
		human.lastAction = "KEPT HAND"
	}

	g.phase = PhasePlaying
	g.activeID = HumanID
	g.message = HumanName + "'s Turn."
	return nil
}
