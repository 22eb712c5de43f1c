package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Jimmyu2foru18/pookies-grand-casino/internal/auth"
)

// HTTPHandler exposes the ledger read side: a player's banked balance
// and their recent round history.
type HTTPHandler struct {
	auth   auth.Service
	ledger Service
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewHTTPHandler(authService auth.Service, ledgerService Service) *HTTPHandler {
	return &HTTPHandler{auth: authService, ledger: ledgerService}
}

func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/ledger/balance", h.handleBalance)
	r.Get("/api/ledger/rounds", h.handleRounds)
}

func (h *HTTPHandler) handleBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.resolveUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid session token")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	balance, err := h.ledger.GetBalance(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "no banked balance")
			return
		}
		writeError(w, http.StatusInternalServerError, "query balance failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user_id": userID,
		"balance": balance,
	})
}

func (h *HTTPHandler) handleRounds(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.resolveUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid session token")
		return
	}

	limit := parseLimit(r.URL.Query().Get("limit"))
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	items, err := h.ledger.ListRecentRounds(ctx, userID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "query round history failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
	})
}

func (h *HTTPHandler) resolveUserID(r *http.Request) (uint64, bool) {
	if h.auth == nil {
		return 0, false
	}
	userID, _, ok := h.auth.ResolveSession(auth.BearerToken(r))
	return userID, ok
}

func parseLimit(raw string) int {
	if raw == "" {
		return defaultRecentLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultRecentLimit
	}
	return clampLimit(n)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
