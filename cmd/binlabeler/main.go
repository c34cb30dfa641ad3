package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"binlabeler/infrastructure/audit"
	"binlabeler/infrastructure/floorstock"
	httpserver "binlabeler/infrastructure/http"
	"binlabeler/infrastructure/sqlite"
)

func main() {
	addr := getenv("APP_ADDR", ":8080")
	dbPath := getenv("SQLITE_PATH", "binlabeler.db")
	lookupURL := getenv("FLOORSTOCK_URL", "")
	lookupTimeout := getdur("FLOORSTOCK_TIMEOUT", 5*time.Second)

	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := sqlite.ApplyMigrations(context.Background(), db, getenv("MIGRATIONS_DIR", "")); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	resolver := floorstock.NewClient(lookupURL, lookupTimeout)
	auditSvc := audit.NewService()

	server := httpserver.NewServer(addr, db, resolver, auditSvc)
	if err := server.Start(); err != nil {
		log.Fatalf("start server: %v", err)
	}
	log.Printf("binlabeler listening on %s", addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	if err := server.Stop(); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getdur(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid %s duration %q, using %s", key, v, fallback)
	}
	return fallback
}
