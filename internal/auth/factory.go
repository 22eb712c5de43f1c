package auth

import (
	"fmt"
	"os"
	"strings"
)

const (
	AuthModeMemory = "memory"
	AuthModeLocal  = "local"
)

func authModeFromEnv() string {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv("AUTH_MODE")))
	switch raw {
	case "", AuthModeMemory, "mem":
		return AuthModeMemory
	case AuthModeLocal, "sqlite":
		return AuthModeLocal
	default:
		return raw
	}
}

func NewServiceFromEnv() (Service, string, error) {
	mode := authModeFromEnv()
	switch mode {
	case AuthModeMemory:
		return NewManager(), mode, nil
	case AuthModeLocal:
		manager, err := NewSQLiteManagerFromEnv()
		if err != nil {
			return nil, mode, err
		}
		return manager, mode, nil
	default:
		return nil, mode, fmt.Errorf("invalid AUTH_MODE %q (supported: %s, %s)", mode, AuthModeMemory, AuthModeLocal)
	}
}
