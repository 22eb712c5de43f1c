// Package table runs one player's casino session as an actor: a single
// goroutine owns the game, client intents arrive on a channel, and bot,
// dealer, and reveal steps are scheduled ticks instead of sleeps.
package table

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Jimmyu2foru18/pookies-grand-casino/casino"
	"github.com/Jimmyu2foru18/pookies-grand-casino/casino/bot"
	"github.com/Jimmyu2foru18/pookies-grand-casino/internal/codec"
	"github.com/Jimmyu2foru18/pookies-grand-casino/internal/ledger"
)

var ErrSessionClosed = errors.New("session closed")

// Pacing between automatic steps. The client sees the dealer "think"
// rather than the whole round resolving in one frame.
type Delays struct {
	Deal       time.Duration
	DealerStep time.Duration
	Community  time.Duration
	Resolve    time.Duration
	BotThink   func(rng *rand.Rand) time.Duration
}

func DefaultDelays() Delays {
	return Delays{
		Deal:       800 * time.Millisecond,
		DealerStep: 900 * time.Millisecond,
		Community:  1200 * time.Millisecond,
		Resolve:    2 * time.Second,
		BotThink:   bot.ThinkDelay,
	}
}

// Event is one queued client intent. Response, when set, receives the
// rejection (or nil) once the intent has been applied.
type Event struct {
	Intent   codec.Intent
	Response chan error
}

// step is deferred work pinned to the round generation it was scheduled
// under; a stale step is dropped, never applied.
type step struct {
	at  time.Time
	gen uint64
	fn  func()
}

type Session struct {
	ID     string
	UserID uint64

	game     *casino.Game
	deciders map[string]bot.Decider
	rng      *rand.Rand
	delays   Delays

	events chan Event
	done   chan struct{}

	mu     sync.Mutex
	closed bool

	pending     []step
	seq         uint64
	recordedGen uint64

	roundOpenBalance int64
	roundBet         int64

	broadcast func(codec.ServerEnvelope)
	ledger    ledger.Service
}

// New builds a session for one variant: the human plus a random slice of
// the bot roster. broadcast receives every envelope the session emits.
func New(userID uint64, variant casino.Variant, seed int64, led ledger.Service, broadcast func(codec.ServerEnvelope)) (*Session, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var seats []casino.Seat
	if variant != casino.VariantSolitaire {
		seats = bot.TableSeats(rng)
	}
	game, err := casino.NewGame(casino.Config{
		Variant:         variant,
		StartingBalance: casino.InitialChips,
		Bots:            seats,
		Seed:            rng.Int63(),
	})
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		game:      game,
		deciders:  make(map[string]bot.Decider, len(seats)),
		rng:       rng,
		delays:    DefaultDelays(),
		events:    make(chan Event, 256),
		done:      make(chan struct{}),
		broadcast: broadcast,
		ledger:    led,
	}
	for i, seat := range seats {
		id := fmt.Sprintf("b%d", i+1)
		s.deciders[id] = bot.NewRuleBrain(seat.Name, seed+int64(i)+1)
	}
	return s, nil
}

func (s *Session) Start() {
	go s.run()
}

func (s *Session) run() {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case e := <-s.events:
			err := s.handleIntent(e.Intent)
			if e.Response != nil {
				e.Response <- err
			}
		case <-ticker.C:
			s.runDue(time.Now())
		case <-s.done:
			log.Printf("[Session %s] Actor stopped", s.ID)
			return
		}
	}
}

// Submit queues an intent. The returned channel yields the rejection (or
// nil) once the actor has applied it.
func (s *Session) Submit(in codec.Intent) (chan error, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, ErrSessionClosed
	}

	resp := make(chan error, 1)
	select {
	case s.events <- Event{Intent: in, Response: resp}:
		return resp, nil
	case <-s.done:
		return nil, ErrSessionClosed
	}
}

// Stop ends the session from outside the actor, typically when the
// client disconnects. The table settles exactly as an explicit close
// intent would: the final balance is banked before the actor stops.
func (s *Session) Stop() {
	s.closeTable()
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) Snapshot() casino.Snapshot { return s.game.Snapshot() }

func (s *Session) nextSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// handleIntent applies one client intent and, on success, broadcasts the
// new snapshot and schedules the follow-up step.
func (s *Session) handleIntent(in codec.Intent) error {
	var err error
	switch in.Type {
	case codec.IntentPlaceBet:
		s.roundOpenBalance = s.game.HumanBalance()
		s.roundBet = in.Amount
		err = s.game.PlaceBet(in.Amount)

	case codec.IntentAct:
		err = s.game.Act(casino.HumanID, in.Action)

	case codec.IntentExchange:
		err = s.game.Exchange(in.CardIDs)

	case codec.IntentDraw:
		var src casino.DrawSource
		if src, err = codec.ParseDrawSource(in.Source); err == nil {
			err = s.game.DrawRummy(src)
		}

	case codec.IntentMeld:
		err = s.game.MeldCards(in.CardIDs)

	case codec.IntentDiscard:
		err = s.game.DiscardCard(in.CardID)

	case codec.IntentMoveCard:
		var target casino.MoveTarget
		if target, err = codec.ParseTarget(in.Target); err == nil {
			err = s.game.MoveCard(in.CardID, target)
		}

	case codec.IntentAutoMove:
		err = s.game.AutoMove(in.CardID)

	case codec.IntentDrawStock:
		err = s.game.DrawStock()

	case codec.IntentNextRound:
		err = s.game.NextRound()

	case codec.IntentCloseSession:
		s.closeTable()
		return nil

	default:
		err = fmt.Errorf("unknown intent %q", in.Type)
	}

	if err != nil {
		return err
	}
	s.afterMutation()
	return nil
}

// closeTable settles and stops the session exactly once; close intents
// and disconnects share it.
func (s *Session) closeTable() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.done)
	s.mu.Unlock()

	balance := s.game.CloseSession()
	if s.ledger != nil {
		s.ledger.UpsertBalance(s.UserID, balance)
	}
	if s.broadcast != nil {
		s.broadcast(codec.WrapSessionEnd(s.nextSeq(), balance))
	}
}

// afterMutation runs on every applied state change, scheduled or
// client-driven.
func (s *Session) afterMutation() {
	snap := s.game.Snapshot()
	if s.broadcast != nil {
		s.broadcast(codec.WrapSnapshot(s.nextSeq(), snap))
	}
	s.recordRound(snap)
	s.scheduleNext(snap)
}

// recordRound writes the settled round to the ledger exactly once per
// generation.
func (s *Session) recordRound(snap casino.Snapshot) {
	if s.ledger == nil || !snap.Phase.Terminal() || s.recordedGen == snap.Generation {
		return
	}
	s.recordedGen = snap.Generation

	balance := s.game.HumanBalance()
	s.ledger.AppendRoundResult(s.UserID, ledger.RoundResult{
		SessionID: s.ID,
		Variant:   snap.Variant.String(),
		Bet:       s.roundBet,
		Delta:     balance - s.roundOpenBalance,
		WinnerID:  snap.WinnerID,
		Message:   snap.Message,
		EndedAt:   time.Now().UTC(),
	})
	s.ledger.UpsertBalance(s.UserID, balance)
}

// scheduleNext queues the step the current state calls for. Each applied
// mutation schedules at most one follow-up, so the chains stay one deep:
// bet schedules the deal, the deal schedules the first bot, and so on.
func (s *Session) scheduleNext(snap casino.Snapshot) {
	switch snap.Phase {
	case casino.PhaseDealing:
		s.schedule(s.delays.Deal, snap.Generation, s.stepDeal)

	case casino.PhaseDealingCommunity:
		s.schedule(s.delays.Community, snap.Generation, s.stepCommunity)

	case casino.PhaseResolving:
		s.schedule(s.delays.Resolve, snap.Generation, s.stepFinalize)

	case casino.PhasePlaying, casino.PhaseRummyDraw:
		switch {
		case snap.ActiveID == casino.DealerID:
			s.schedule(s.delays.DealerStep, snap.Generation, s.stepDealer)
		case s.deciders[snap.ActiveID] != nil:
			botID := snap.ActiveID
			s.schedule(s.delays.BotThink(s.rng), snap.Generation, func() { s.stepBot(botID) })
		}
	}
}

func (s *Session) schedule(after time.Duration, gen uint64, fn func()) {
	s.pending = append(s.pending, step{at: time.Now().Add(after), gen: gen, fn: fn})
}

// runDue fires every pending step whose time has come, dropping steps
// scheduled under an older generation.
func (s *Session) runDue(now time.Time) {
	// fired steps may schedule followups; detach the batch first
	batch := s.pending
	s.pending = nil
	for _, st := range batch {
		if now.Before(st.at) {
			s.pending = append(s.pending, st)
			continue
		}
		if st.gen != s.game.Generation() {
			continue
		}
		st.fn()
	}
}

func (s *Session) stepDeal() {
	if err := s.game.DealRound(); err != nil {
		log.Printf("[Session %s] deal skipped: %v", s.ID, err)
		return
	}
	s.afterMutation()
}

func (s *Session) stepCommunity() {
	if err := s.game.DealCommunity(); err != nil {
		log.Printf("[Session %s] community deal skipped: %v", s.ID, err)
		return
	}
	s.afterMutation()
}

func (s *Session) stepFinalize() {
	if err := s.game.FinalizeRound(); err != nil {
		log.Printf("[Session %s] finalize skipped: %v", s.ID, err)
		return
	}
	s.afterMutation()
}

func (s *Session) stepDealer() {
	if _, err := s.game.DealerStep(); err != nil {
		log.Printf("[Session %s] dealer step skipped: %v", s.ID, err)
		return
	}
	s.afterMutation()
}

// stepBot plays one bot decision. The turn is re-checked against a
// fresh snapshot: a human action while the bot was "thinking" may have
// moved the round on.
func (s *Session) stepBot(botID string) {
	snap := s.game.Snapshot()
	if snap.ActiveID != botID {
		return
	}

	var err error
	if snap.Variant == casino.VariantRummy {
		err = s.game.PlayRummyBotTurn(botID)
	} else {
		view, ok := bot.BuildView(snap, botID)
		if !ok {
			return
		}
		action := s.deciders[botID].Decide(view)
		err = s.game.Act(botID, action)
		if err != nil {
			// the safe fallback is never rejected
			fallback := casino.ActionFold
			if snap.Variant == casino.VariantBlackjack {
				fallback = casino.ActionStand
			}
			err = s.game.Act(botID, fallback)
		}
	}
	if err != nil {
		log.Printf("[Session %s] bot %s turn skipped: %v", s.ID, botID, err)
		return
	}
	s.afterMutation()
}
