package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/Jimmyu2foru18/pookies-grand-casino/internal/auth"
	"github.com/Jimmyu2foru18/pookies-grand-casino/internal/gateway"
	"github.com/Jimmyu2foru18/pookies-grand-casino/internal/ledger"
)

func main() {
	_ = godotenv.Load()

	authService, authMode, err := auth.NewServiceFromEnv()
	if err != nil {
		log.Fatalf("[Server] Failed to init auth manager: %v", err)
	}
	defer authService.Close()

	ledgerService, ledgerMode, err := ledger.NewServiceFromEnv()
	if err != nil {
		log.Fatalf("[Server] Failed to init ledger service: %v", err)
	}
	defer ledgerService.Close()

	gw := gateway.New(authService, ledgerService)
	authHTTP := auth.NewHTTPHandler(authService)
	ledgerHTTP := ledger.NewHTTPHandler(authService, ledgerService)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/ws", gw.HandleWebSocket)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	authHTTP.RegisterRoutes(r)
	ledgerHTTP.RegisterRoutes(r)

	addr := ":" + getenv("PORT", "8080")
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		log.Printf("[Server] Auth mode: %s", authMode)
		log.Printf("[Server] Ledger mode: %s", ledgerMode)
		log.Printf("[Server] Starting WebSocket server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[Server] Failed to start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Printf("[Server] Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[Server] Shutdown error: %v", err)
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
