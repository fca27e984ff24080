// Package memory implements an in-memory key-value store for development and testing.
package memory

import (
	"context"
	"sync"

	"weightlog/internal/domain"
)

// DB implements an in-memory key-value store. Nothing survives a restart.
type DB struct {
	mu   sync.Mutex
	data map[string]string
}

// New creates a new in-memory store.
func New() *DB {
	return &DB{data: make(map[string]string)}
}

// Ensure interfaces are met.
var _ domain.KVStore = (*DB)(nil)

// Get returns the value stored under key.
func (db *DB) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	v, ok := db.data[key]
	return v, ok, nil
}

// Set stores value under key, replacing any previous value.
func (db *DB) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	db.data[key] = value
	return nil
}

// Close is a no-op so the in-memory store can stand in for the SQL stores.
func (db *DB) Close() error {
	return nil
}
