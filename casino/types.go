package casino

import (
	"fmt"
	"strconv"
)

// Variant 游戏类型
type Variant byte

const (
	VariantBlackjack Variant = iota
	VariantPoker
	VariantHoldem
	VariantRummy
	VariantSolitaire
)

var VariantDictionary = map[Variant]string{
	VariantBlackjack: "Blackjack",
	VariantPoker:     "Poker",
	VariantHoldem:    "Texas Hold 'em",
	VariantRummy:     "Rummy",
	VariantSolitaire: "Solitaire",
}

func (v Variant) String() string { return VariantDictionary[v] }

// ParseVariant maps a display name back to its Variant.
func ParseVariant(s string) (Variant, error) {
	for v, name := range VariantDictionary {
		if name == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown variant %q", s)
}

// Phase 回合阶段; exactly one is active and it constrains which intents are
// accepted.
type Phase byte

const (
	PhaseBetting Phase = iota
	PhaseDealing
	PhaseSwapping
	PhasePlaying
	PhaseRummyDraw
	PhaseRummyTurn
	PhaseDealingCommunity
	PhaseResolving
	PhaseRoundOver
	PhaseVictory
)

var PhaseDictionary = map[Phase]string{
	PhaseBetting:          "BETTING",
	PhaseDealing:          "DEALING",
	PhaseSwapping:         "SWAPPING",
	PhasePlaying:          "PLAYING",
	PhaseRummyDraw:        "RUMMY_DRAW",
	PhaseRummyTurn:        "RUMMY_TURN",
	PhaseDealingCommunity: "DEALING_COMMUNITY",
	PhaseResolving:        "RESOLVING",
	PhaseRoundOver:        "ROUND_OVER",
	PhaseVictory:          "VICTORY",
}

func (p Phase) String() string { return PhaseDictionary[p] }

// Terminal reports whether the phase ends the round.
func (p Phase) Terminal() bool { return p == PhaseRoundOver || p == PhaseVictory }

// Street Hold'em 公共牌阶段
type Street byte

const (
	StreetPreflop Street = iota
	StreetFlop
	StreetTurn
	StreetRiver
	StreetShowdown
)

var StreetDictionary = map[Street]string{
	StreetPreflop:  "PREFLOP",
	StreetFlop:     "FLOP",
	StreetTurn:     "TURN",
	StreetRiver:    "RIVER",
	StreetShowdown: "SHOWDOWN",
}

func (s Street) String() string { return StreetDictionary[s] }

// Status 玩家状态
type Status byte

const (
	StatusActive Status = iota
	StatusFolded
	StatusBust
	StatusStanding
	StatusWon
	StatusLost
	StatusWaiting
)

var StatusDictionary = map[Status]string{
	StatusActive:   "active",
	StatusFolded:   "folded",
	StatusBust:     "bust",
	StatusStanding: "standing",
	StatusWon:      "won",
	StatusLost:     "lost",
	StatusWaiting:  "waiting",
}

func (s Status) String() string { return StatusDictionary[s] }

// ActionType 座位动作
type ActionType byte

const (
	ActionNone ActionType = iota
	ActionFold
	ActionCheck
	ActionCall
	ActionRaise
	ActionHit
	ActionStand
)

var ActionTypeDictionary = map[ActionType]string{
	ActionNone:  "NONE",
	ActionFold:  "FOLD",
	ActionCheck: "CHECK",
	ActionCall:  "CALL",
	ActionRaise: "RAISE",
	ActionHit:   "HIT",
	ActionStand: "STAND",
}

func (a ActionType) String() string { return ActionTypeDictionary[a] }

// The dictionary types travel over the wire as their display strings.

func (v Variant) MarshalJSON() ([]byte, error) { return strconv.AppendQuote(nil, v.String()), nil }
func (p Phase) MarshalJSON() ([]byte, error)   { return strconv.AppendQuote(nil, p.String()), nil }
func (s Street) MarshalJSON() ([]byte, error)  { return strconv.AppendQuote(nil, s.String()), nil }
func (s Status) MarshalJSON() ([]byte, error)  { return strconv.AppendQuote(nil, s.String()), nil }

func (a ActionType) MarshalJSON() ([]byte, error) { return strconv.AppendQuote(nil, a.String()), nil }

func unmarshalDict[T ~byte](b []byte, dict map[T]string, out *T, kind string) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return err
	}
	for k, name := range dict {
		if name == s {
			*out = k
			return nil
		}
	}
	return fmt.Errorf("unknown %s %q", kind, s)
}

func (v *Variant) UnmarshalJSON(b []byte) error {
	return unmarshalDict(b, VariantDictionary, v, "variant")
}

func (p *Phase) UnmarshalJSON(b []byte) error {
	return unmarshalDict(b, PhaseDictionary, p, "phase")
}

func (s *Street) UnmarshalJSON(b []byte) error {
	return unmarshalDict(b, StreetDictionary, s, "street")
}

func (s *Status) UnmarshalJSON(b []byte) error {
	return unmarshalDict(b, StatusDictionary, s, "status")
}

func (a *ActionType) UnmarshalJSON(b []byte) error {
	return unmarshalDict(b, ActionTypeDictionary, a, "action")
}

// DrawSource Rummy 摸牌来源
type DrawSource byte

const (
	DrawFromStock DrawSource = iota
	DrawFromDiscard
)

// Seat identities. Index 0 is always the human seat; the dealer is a
// sentinel actor with no seat of its own.
const (
	HumanID    = "p1"
	DealerID   = "dealer"
	HumanName  = "Pookie"
	DealerName = "Sachi"
)

// Table stakes and rewards.
const (
	InitialChips int64 = 2000
	MinBet       int64 = 10
	MaxBet       int64 = 500
	RaiseStep    int64 = 50

	SolitaireCost   int64 = 52 // Vegas buy-in
	SolitaireReward int64 = 5  // per card moved to a foundation
	RummyBonus      int64 = 500

	standThreshold = 17 // dealer and blackjack bots stand at 17+
)

// Hand sizes per variant.
const (
	blackjackHandSize = 2
	holdemHoleCards   = 2
	drawPokerHandSize = 5
	rummyHandSize     = 7
	swapLimit         = 3
	minMeldSize       = 3
)
