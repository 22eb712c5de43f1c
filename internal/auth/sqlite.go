package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"golang.org/x/crypto/bcrypt"
)

const defaultLocalDBName = "casino_auth.db"

type SQLiteManager struct {
	db         *sql.DB
	sessionTTL time.Duration
}

func NewSQLiteManagerFromEnv() (*SQLiteManager, error) {
	dbPath := strings.TrimSpace(os.Getenv("AUTH_SQLITE_PATH"))
	if dbPath == "" {
		dbPath = defaultLocalDBName
	}
	return NewSQLiteManager(dbPath, defaultSessionTTL)
}

func NewSQLiteManager(dbPath string, sessionTTL time.Duration) (*SQLiteManager, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
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
	if err := ensureSQLiteAuthSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteManager{db: db, sessionTTL: sessionTTL}, nil
}

func ensureSQLiteAuthSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{`
CREATE TABLE IF NOT EXISTS accounts (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    username      TEXT NOT NULL UNIQUE,
    password_hash BLOB,
    is_guest      INTEGER NOT NULL DEFAULT 0,
    created_at_ms INTEGER NOT NULL,
    last_login_at_ms INTEGER NOT NULL
)`, `
CREATE TABLE IF NOT EXISTS sessions (
    token         TEXT PRIMARY KEY,
    account_id    INTEGER NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
    expires_at_ms INTEGER NOT NULL
)`, `
CREATE INDEX IF NOT EXISTS idx_sessions_account ON sessions (account_id)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (m *SQLiteManager) Close() error {
	if m == nil || m.db == nil {
		return nil
	}
	return m.db.Close()
}

func (m *SQLiteManager) issueSession(ctx context.Context, accountID uint64) (string, error) {
	token := mustToken()
	expires := time.Now().Add(m.sessionTTL).UnixMilli()
	if _, err := m.db.ExecContext(ctx, `
INSERT INTO sessions (token, account_id, expires_at_ms) VALUES (?, ?, ?)
`, token, accountID, expires); err != nil {
		return "", err
	}
	return token, nil
}

func (m *SQLiteManager) Register(username, password string) (uint64, string, error) {
	if err := validateUsername(username); err != nil {
		return 0, "", err
	}
	if err := validatePassword(password); err != nil {
		return 0, "", err
	}
	normalized := normalizeUsername(username)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	nowMs := time.Now().UTC().UnixMilli()
	res, err := m.db.ExecContext(ctx, `
INSERT INTO accounts (username, password_hash, is_guest, created_at_ms, last_login_at_ms)
VALUES (?, ?, 0, ?, ?)
`, normalized, hash, nowMs, nowMs)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return 0, "", ErrUsernameTaken
		}
		return 0, "", err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, "", err
	}
	token, err := m.issueSession(ctx, uint64(id))
	if err != nil {
		return 0, "", err
	}
	return uint64(id), token, nil
}

func (m *SQLiteManager) Login(username, password string) (uint64, string, error) {
	normalized := normalizeUsername(username)
	if normalized == "" || password == "" {
		return 0, "", ErrInvalidCredentials
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var id uint64
	var hash []byte
	err := m.db.QueryRowContext(ctx, `
SELECT id, password_hash FROM accounts WHERE username = ? AND is_guest = 0
`, normalized).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", ErrInvalidCredentials
	}
	if err != nil {
		return 0, "", err
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
		return 0, "", ErrInvalidCredentials
	}

	if _, err := m.db.ExecContext(ctx, `
UPDATE accounts SET last_login_at_ms = ? WHERE id = ?
`, time.Now().UTC().UnixMilli(), id); err != nil {
		return 0, "", err
	}
	token, err := m.issueSession(ctx, id)
	if err != nil {
		return 0, "", err
	}
	return id, token, nil
}

func (m *SQLiteManager) Guest() (uint64, string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	nowMs := time.Now().UTC().UnixMilli()

	// two-step insert: the guest name embeds the row id
	res, err := m.db.ExecContext(ctx, `
INSERT INTO accounts (username, password_hash, is_guest, created_at_ms, last_login_at_ms)
VALUES (?, NULL, 1, ?, ?)
`, fmt.Sprintf("guest-pending-%d", nowMs), nowMs, nowMs)
	if err != nil {
		return 0, "", err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, "", err
	}
	if _, err := m.db.ExecContext(ctx, `
UPDATE accounts SET username = ? WHERE id = ?
`, fmt.Sprintf("guest-%d", id), id); err != nil {
		return 0, "", err
	}
	token, err := m.issueSession(ctx, uint64(id))
	if err != nil {
		return 0, "", err
	}
	return uint64(id), token, nil
}

func (m *SQLiteManager) ResolveSession(token string) (uint64, string, bool) {
	if token == "" {
		return 0, "", false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var accountID uint64
	var username string
	var expiresMs int64
	err := m.db.QueryRowContext(ctx, `
SELECT s.account_id, a.username, s.expires_at_ms
FROM sessions s JOIN accounts a ON a.id = s.account_id
WHERE s.token = ?
`, token).Scan(&accountID, &username, &expiresMs)
	if err != nil {
		return 0, "", false
	}
	now := time.Now()
	if now.UnixMilli() >= expiresMs {
		_, _ = m.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
		return 0, "", false
	}
	_, _ = m.db.ExecContext(ctx, `
UPDATE sessions SET expires_at_ms = ? WHERE token = ?
`, now.Add(m.sessionTTL).UnixMilli(), token)
	return accountID, username, true
}

func (m *SQLiteManager) Logout(token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, _ = m.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
}
