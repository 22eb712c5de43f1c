package auth

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Manager provides in-memory account/session management for
// single-binary deployment. It can be swapped for persistent storage
// without changing gateway contracts.
type Manager struct {
	mu sync.Mutex

	nextAccountID uint64
	sessionTTL    time.Duration
	sessions      map[string]sessionRecord
	accountsByID  map[uint64]accountRecord
	accountsByKey map[string]uint64
}

type sessionRecord struct {
	AccountID uint64
	ExpiresAt time.Time
}

type accountRecord struct {
	AccountID     uint64
	Username      string
	PasswordHash  []byte
	Guest         bool
	LastLoginTime time.Time
}

func NewManager() *Manager {
	return &Manager{
		nextAccountID: 100000, // start from a readable non-trivial range
		sessionTTL:    defaultSessionTTL,
		sessions:      make(map[string]sessionRecord),
		accountsByID:  make(map[uint64]accountRecord),
		accountsByKey: make(map[string]uint64),
	}
}

func (m *Manager) issueSessionLocked(accountID uint64, now time.Time) string {
	token := mustToken()
	m.sessions[token] = sessionRecord{
		AccountID: accountID,
		ExpiresAt: now.Add(m.sessionTTL),
	}
	return token
}

func (m *Manager) Register(username, password string) (uint64, string, error) {
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

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.accountsByKey[normalized]; exists {
		return 0, "", ErrUsernameTaken
	}

	m.nextAccountID++
	accountID := m.nextAccountID
	now := time.Now()
	m.accountsByID[accountID] = accountRecord{
		AccountID:     accountID,
		Username:      normalized,
		PasswordHash:  hash,
		LastLoginTime: now,
	}
	m.accountsByKey[normalized] = accountID
	return accountID, m.issueSessionLocked(accountID, now), nil
}

func (m *Manager) Login(username, password string) (uint64, string, error) {
	normalized := normalizeUsername(username)
	if normalized == "" || password == "" {
		return 0, "", ErrInvalidCredentials
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	accountID, exists := m.accountsByKey[normalized]
	if !exists {
		return 0, "", ErrInvalidCredentials
	}
	account := m.accountsByID[accountID]
	if bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)) != nil {
		return 0, "", ErrInvalidCredentials
	}

	now := time.Now()
	account.LastLoginTime = now
	m.accountsByID[accountID] = account
	return accountID, m.issueSessionLocked(accountID, now), nil
}

func (m *Manager) Guest() (uint64, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextAccountID++
	accountID := m.nextAccountID
	now := time.Now()
	m.accountsByID[accountID] = accountRecord{
		AccountID:     accountID,
		Username:      fmt.Sprintf("guest-%d", accountID),
		Guest:         true,
		LastLoginTime: now,
	}
	return accountID, m.issueSessionLocked(accountID, now), nil
}

func (m *Manager) ResolveSession(token string) (uint64, string, bool) {
	if token == "" {
		return 0, "", false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, exists := m.sessions[token]
	if !exists {
		return 0, "", false
	}
	now := time.Now()
	if !now.Before(rec.ExpiresAt) {
		delete(m.sessions, token)
		return 0, "", false
	}
	// sliding expiry
	rec.ExpiresAt = now.Add(m.sessionTTL)
	m.sessions[token] = rec

	return rec.AccountID, m.accountsByID[rec.AccountID].Username, true
}

func (m *Manager) Logout(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

func (m *Manager) Close() error { return nil }
