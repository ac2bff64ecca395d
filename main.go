package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"changepilot/logger"
)

// getListenAddr returns the HTTP listen address.
// Priority: environment variable CHANGEPILOT_ADDR > default fallback.
func getListenAddr() string {
	if addr := os.Getenv("CHANGEPILOT_ADDR"); addr != "" {
		return addr
	}
	return ":8090"
}

// getDatabasePath returns the sqlite path for the project store.
// Empty CHANGEPILOT_DB keeps the store in memory.
func getDatabasePath() string {
	if path := os.Getenv("CHANGEPILOT_DB"); path != "" {
		return path
	}
	log.Println("[WARN] CHANGEPILOT_DB not set, using in-memory store. Projects will not survive restarts.")
	return ""
}

// openActivityLog enables file logging when CHANGEPILOT_LOG_DIR is set. A
// nil activity log is fine; the console log keeps working either way.
func openActivityLog() *logger.Logger {
	dir := os.Getenv("CHANGEPILOT_LOG_DIR")
	if dir == "" {
		return nil
	}
	activity, err := logger.Open(dir)
	if err != nil {
		log.Printf("[WARN] file logging disabled: %v", err)
		return nil
	}
	return activity
}

func main() {
	activity := openActivityLog()
	defer activity.Close()

	store, err := OpenProjectStore(getDatabasePath())
	if err != nil {
		log.Fatalf("[FATAL] open project store: %v", err)
	}
	defer store.Close()

	server := NewServer(store, activity)
	httpServer := &http.Server{
		Addr:         getListenAddr(),
		Handler:      server.Routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	go func() {
		log.Printf("[INFO] changepilot export service listening on %s", httpServer.Addr)
		activity.Logf("listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("[INFO] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("[ERROR] shutdown: %v", err)
	}
}
