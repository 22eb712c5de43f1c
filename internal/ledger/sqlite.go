package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const defaultLocalDBName = "casino_local.db"

type SQLiteService struct {
	db *sql.DB
}

func NewSQLiteServiceFromEnv() (*SQLiteService, error) {
	dbPath := strings.TrimSpace(os.Getenv("LEDGER_SQLITE_PATH"))
	if dbPath == "" {
		dbPath = defaultLocalDBName
	}
	return NewSQLiteService(dbPath)
}

func NewSQLiteService(dbPath string) (*SQLiteService, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if dbPath != ":memory:" {
		parent := filepath.Dir(dbPath)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// modernc sqlite wants a single writer connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, pragma := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
		`PRAGMA foreign_keys = ON;`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSQLiteLedgerSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteService{db: db}, nil
}

func ensureSQLiteLedgerSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{`
CREATE TABLE IF NOT EXISTS ledger_balances (
    user_id     INTEGER PRIMARY KEY,
    balance     INTEGER NOT NULL,
    updated_at_ms INTEGER NOT NULL
)`, `
CREATE TABLE IF NOT EXISTS ledger_round_results (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id     INTEGER NOT NULL,
    session_id  TEXT NOT NULL,
    variant     TEXT NOT NULL,
    bet         INTEGER NOT NULL,
    delta       INTEGER NOT NULL,
    winner_id   TEXT NOT NULL,
    message     TEXT NOT NULL,
    ended_at_ms INTEGER NOT NULL,
    recorded_at_ms INTEGER NOT NULL
)`, `
CREATE INDEX IF NOT EXISTS idx_round_results_user
    ON ledger_round_results (user_id, ended_at_ms DESC)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteService) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteService) AppendRoundResult(userID uint64, r RoundResult) {
	if userID == 0 || strings.TrimSpace(r.SessionID) == "" {
		return
	}
	endedAt := r.EndedAt
	if endedAt.IsZero() {
		endedAt = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err := s.db.ExecContext(ctx, `
INSERT INTO ledger_round_results (
    user_id, session_id, variant, bet, delta, winner_id, message, ended_at_ms, recorded_at_ms
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, userID, r.SessionID, r.Variant, r.Bet, r.Delta, r.WinnerID, r.Message,
		endedAt.UnixMilli(), time.Now().UTC().UnixMilli())
	if err != nil {
		log.Printf("[Ledger] append round result failed: user=%d session=%s err=%v", userID, r.SessionID, err)
	}
}

func (s *SQLiteService) UpsertBalance(userID uint64, balance int64) {
	if userID == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err := s.db.ExecContext(ctx, `
INSERT INTO ledger_balances (user_id, balance, updated_at_ms)
VALUES (?, ?, ?)
ON CONFLICT (user_id) DO UPDATE
SET balance = excluded.balance,
    updated_at_ms = excluded.updated_at_ms
`, userID, balance, time.Now().UTC().UnixMilli())
	if err != nil {
		log.Printf("[Ledger] upsert balance failed: user=%d err=%v", userID, err)
	}
}

func (s *SQLiteService) GetBalance(ctx context.Context, userID uint64) (int64, error) {
	if userID == 0 {
		return 0, ErrNotFound
	}
	var balance int64
	err := s.db.QueryRowContext(ctx, `
SELECT balance FROM ledger_balances WHERE user_id = ?
`, userID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (s *SQLiteService) ListRecentRounds(ctx context.Context, userID uint64, limit int) ([]RoundRecord, error) {
	if userID == 0 {
		return []RoundRecord{}, nil
	}
	limit = clampLimit(limit)

	rows, err := s.db.QueryContext(ctx, `
SELECT user_id, session_id, variant, bet, delta, winner_id, message, ended_at_ms, recorded_at_ms
FROM ledger_round_results
WHERE user_id = ?
ORDER BY ended_at_ms DESC, id DESC
LIMIT ?
`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]RoundRecord, 0, limit)
	for rows.Next() {
		var rec RoundRecord
		var endedMs, recordedMs int64
		if err := rows.Scan(&rec.UserID, &rec.SessionID, &rec.Variant, &rec.Bet, &rec.Delta,
			&rec.WinnerID, &rec.Message, &endedMs, &recordedMs); err != nil {
			return nil, err
		}
		rec.EndedAt = time.UnixMilli(endedMs).UTC()
		rec.RecordedAt = time.UnixMilli(recordedMs).UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}
