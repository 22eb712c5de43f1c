// Package ledger persists player balances and per-round results.
package ledger

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"
)

const defaultRecentLimit = 50

var ErrNotFound = errors.New("not found")

// RoundResult is one settled round as the table reports it.
type RoundResult struct {
	SessionID string    `json:"session_id"`
	Variant   string    `json:"variant"`
	Bet       int64     `json:"bet"`
	Delta     int64     `json:"delta"` // balance change for the player
	WinnerID  string    `json:"winner_id"`
	Message   string    `json:"message"`
	EndedAt   time.Time `json:"ended_at"`
}

// RoundRecord is a stored result with its row metadata.
type RoundRecord struct {
	RoundResult
	UserID     uint64    `json:"user_id"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Service is the persistence contract consumed by the table and the HTTP
// handlers. AppendRoundResult and UpsertBalance are fire-and-forget: the
// round loop never blocks on storage, failures are logged.
type Service interface {
	Close() error
	AppendRoundResult(userID uint64, r RoundResult)
	UpsertBalance(userID uint64, balance int64)
	GetBalance(ctx context.Context, userID uint64) (int64, error)
	ListRecentRounds(ctx context.Context, userID uint64, limit int) ([]RoundRecord, error)
}

type noopService struct{}

func (noopService) Close() error                          { return nil }
func (noopService) AppendRoundResult(uint64, RoundResult) {}
func (noopService) UpsertBalance(uint64, int64)           {}
func (noopService) GetBalance(context.Context, uint64) (int64, error) {
	return 0, ErrNotFound
}
func (noopService) ListRecentRounds(context.Context, uint64, int) ([]RoundRecord, error) {
	return []RoundRecord{}, nil
}

// NewNoop returns a ledger that remembers nothing.
func NewNoop() Service { return noopService{} }

// NewServiceFromEnv picks the backend from LEDGER_MODE: "memory" (noop),
// "postgres", or "sqlite"/"local" (the default).
func NewServiceFromEnv() (Service, string, error) {
	mode := strings.ToLower(strings.TrimSpace(os.Getenv("LEDGER_MODE")))
	switch mode {
	case "memory", "noop":
		return noopService{}, "memory-noop", nil
	case "postgres", "pg":
		svc, err := NewPostgresServiceFromEnv()
		if err != nil {
			return nil, "", err
		}
		return svc, "postgres", nil
	default:
		svc, err := NewSQLiteServiceFromEnv()
		if err != nil {
			return nil, "", err
		}
		return svc, "sqlite", nil
	}
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return defaultRecentLimit
	}
	return limit
}
