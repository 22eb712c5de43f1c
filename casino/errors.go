package casino

import (
	"errors"
	"fmt"
)

var (
	ErrRoundEnded  = errors.New("round already ended")
	ErrSessionOver = errors.New("session already over")
	ErrOutOfTurn   = errors.New("action out of turn")
)

// IllegalActionError rejects an intent that the current phase or variant
// does not accept. The game state is left untouched.
type IllegalActionError string

func (e IllegalActionError) Error() string { return "illegal action: " + string(e) }

func ErrIllegalAction(format string, args ...any) error {
	return IllegalActionError(fmt.Sprintf(format, args...))
}

// InsufficientChipsError rejects a wager the seat cannot cover.
type InsufficientChipsError struct {
	PlayerID string
	Need     int64
	Have     int64
}

func (e *InsufficientChipsError) Error() string {
	return fmt.Sprintf("insufficient chips: %s needs %d, has %d", e.PlayerID, e.Need, e.Have)
}

// InvalidMeldError rejects a rummy meld selection.
type InvalidMeldError string

func (e InvalidMeldError) Error() string { return "invalid meld: " + string(e) }

// InvalidMoveError rejects a solitaire card placement.
type InvalidMoveError string

func (e InvalidMoveError) Error() string { return "invalid move: " + string(e) }
