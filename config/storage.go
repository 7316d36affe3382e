package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"GameHub/services/kvstore"
)

// NewStorage selects the key-value backend from STORAGE_BACKEND:
// "memory" (default), "redis" or "postgres".
func NewStorage() (kvstore.Store, error) {
	backend := os.Getenv("STORAGE_BACKEND")
	switch backend {
	case "", "memory":
		log.Println("Using in-memory storage; nothing will survive a restart")
		return kvstore.NewMemoryStore(), nil

	case "redis":
		addr := os.Getenv("REDIS_URL")
		if addr == "" {
			addr = "localhost:6379"
		}
		db := 0
		if raw := os.Getenv("REDIS_DB"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid REDIS_DB %q: %w", raw, err)
			}
			db = parsed
		}
		return kvstore.NewRedisStore(addr, db)

	case "postgres":
		gormDB, err := ConnectGORM()
		if err != nil {
			return nil, err
		}
		return kvstore.NewGormStore(gormDB)

	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", backend)
	}
}
