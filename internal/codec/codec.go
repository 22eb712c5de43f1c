// Package codec defines the JSON wire envelopes spoken between the
// gateway and its clients.
package codec

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Jimmyu2foru18/pookies-grand-casino/casino"
)

// Intent types accepted from clients.
const (
	IntentStartSession = "startSession"
	IntentPlaceBet     = "placeBet"
	IntentAct          = "act"
	IntentExchange     = "exchange"
	IntentDraw         = "draw"
	IntentMeld         = "meld"
	IntentDiscard      = "discard"
	IntentMoveCard     = "moveCard"
	IntentAutoMove     = "autoMove"
	IntentDrawStock    = "drawStock"
	IntentNextRound    = "nextRound"
	IntentCloseSession = "closeSession"
)

// Server envelope types.
const (
	EnvelopeSnapshot   = "snapshot"
	EnvelopeError      = "error"
	EnvelopeSessionEnd = "sessionEnd"
)

// Intent is one client request. Fields beyond Type are read per intent
// type; unused ones stay empty on the wire.
type Intent struct {
	Type      string            `json:"type"`
	ClientSeq uint64            `json:"clientSeq,omitempty"`
	Variant   string            `json:"variant,omitempty"`
	Amount    int64             `json:"amount,omitempty"`
	Action    casino.ActionType `json:"action,omitempty"`
	CardIDs   []string          `json:"cardIds,omitempty"`
	CardID    string            `json:"cardId,omitempty"`
	Source    string            `json:"source,omitempty"` // "stock" | "discard"
	Target    *Target           `json:"target,omitempty"`
}

// Target addresses a solitaire destination pile.
type Target struct {
	Kind  string `json:"kind"` // "tableau" | "foundation"
	Index int    `json:"index"`
}

// ServerEnvelope is one server push or reply.
type ServerEnvelope struct {
	Type         string           `json:"type"`
	ServerSeq    uint64           `json:"serverSeq"`
	ServerTsMs   int64            `json:"serverTsMs"`
	ClientSeq    uint64           `json:"clientSeq,omitempty"`
	Snapshot     *casino.Snapshot `json:"snapshot,omitempty"`
	Error        string           `json:"error,omitempty"`
	FinalBalance int64            `json:"finalBalance,omitempty"`
}

func DecodeIntent(data []byte) (Intent, error) {
	var in Intent
	if err := json.Unmarshal(data, &in); err != nil {
		return Intent{}, fmt.Errorf("malformed intent: %w", err)
	}
	if in.Type == "" {
		return Intent{}, fmt.Errorf("intent missing type")
	}
	return in, nil
}

// WrapSnapshot builds a snapshot push.
func WrapSnapshot(serverSeq uint64, snap casino.Snapshot) ServerEnvelope {
	return ServerEnvelope{
		Type:       EnvelopeSnapshot,
		ServerSeq:  serverSeq,
		ServerTsMs: time.Now().UnixMilli(),
		Snapshot:   &snap,
	}
}

// WrapError builds a rejection reply for one client intent.
func WrapError(serverSeq, clientSeq uint64, err error) ServerEnvelope {
	return ServerEnvelope{
		Type:       EnvelopeError,
		ServerSeq:  serverSeq,
		ServerTsMs: time.Now().UnixMilli(),
		ClientSeq:  clientSeq,
		Error:      err.Error(),
	}
}

// WrapSessionEnd reports the final balance when the table shuts down.
func WrapSessionEnd(serverSeq uint64, balance int64) ServerEnvelope {
	return ServerEnvelope{
		Type:         EnvelopeSessionEnd,
		ServerSeq:    serverSeq,
		ServerTsMs:   time.Now().UnixMilli(),
		FinalBalance: balance,
	}
}

// ParseTarget maps a wire target onto the engine's move target.
func ParseTarget(t *Target) (casino.MoveTarget, error) {
	if t == nil {
		return casino.MoveTarget{}, fmt.Errorf("move needs a target")
	}
	switch t.Kind {
	case "tableau":
		return casino.MoveTarget{Kind: casino.PileTableau, Index: t.Index}, nil
	case "foundation":
		return casino.MoveTarget{Kind: casino.PileFoundation, Index: t.Index}, nil
	default:
		return casino.MoveTarget{}, fmt.Errorf("unknown pile kind %q", t.Kind)
	}
}

// ParseDrawSource maps a wire source onto the engine's draw source.
func ParseDrawSource(s string) (casino.DrawSource, error) {
	switch s {
	case "stock":
		return casino.DrawFromStock, nil
	case "discard":
		return casino.DrawFromDiscard, nil
	default:
		return 0, fmt.Errorf("unknown draw source %q", s)
	}
}
