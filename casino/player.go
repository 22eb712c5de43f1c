package casino

import (
	"github.com/Jimmyu2foru18/pookies-grand-casino/card"
)

// Player 座位
type Player struct {
	id   string
	name string
	bot  bool

	hand  card.Pile
	melds []card.Pile

	chips      int64
	bet        int64
	status     Status
	lastAction string
}

func newPlayer(id, name string, chips int64, bot bool) *Player {
	return &Player{
		id:     id,
		name:   name,
		bot:    bot,
		chips:  chips,
		status: StatusActive,
	}
}

func (p *Player) ID() string      { return p.id }
func (p *Player) Name() string    { return p.name }
func (p *Player) Bot() bool       { return p.bot }
func (p *Player) Chips() int64    { return p.chips }
func (p *Player) Bet() int64      { return p.bet }
func (p *Player) Status() Status  { return p.status }
func (p *Player) Hand() card.Pile { return p.hand }

func (p *Player) score() int { return card.Score(p.hand) }

// contribute moves up to amount from the stack into the seat's bet and
// returns what was actually paid.
func (p *Player) contribute(amount int64) int64 {
	if amount > p.chips {
		amount = p.chips
	}
	p.chips -= amount
	p.bet += amount
	return amount
}

// takeCard removes the card with the given id from the hand, or nil when
// it is not held.
func (p *Player) takeCard(id string) *card.Card {
	for i, c := range p.hand {
		if c.ID == id {
			p.hand = append(p.hand[:i], p.hand[i+1:]...)
			return c
		}
	}
	return nil
}

func (p *Player) holdsAll(ids []string) bool {
	for _, id := range ids {
		found := false
		for _, c := range p.hand {
			if c.ID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (p *Player) resetForRound() {
	p.hand = nil
	p.melds = nil
	p.bet = 0
	p.status = StatusActive
	p.lastAction = ""
}
