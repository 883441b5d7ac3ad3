// Package prefs is a small key-value preference store that survives restarts.
//
// Values are stored JSON-encoded. Reads never fail: a missing, unreadable or
// corrupted value yields the caller-supplied default.
package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Well-known preference keys.
const (
	KeyAppState    = "appState"
	KeyAppLang     = "appLang"
	KeySelectedEra = "selectedEra"
	KeyHolderName  = "holderName"
)

// Store is the raw persistence contract. Implementations store opaque strings.
type Store interface {
	// Get returns the raw value for key. ok is false when the key is unset.
	Get(ctx context.Context, key string) (raw string, ok bool, err error)

	// Set stores the raw value for key, replacing any previous value.
	Set(ctx context.Context, key, raw string) error
}

// Get decodes the value stored under key into T, returning def when the key
// is missing, the store fails, or the stored value does not decode as T.
func Get[T any](ctx context.Context, s Store, key string, def T) T {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return def
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return def
	}
	return v
}

// Set encodes v and stores it under key.
func Set[T any](ctx context.Context, s Store, key string, v T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

// Memory is an in-process Store. Safe for concurrent use.
type Memory struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

func (s *Memory) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *Memory) Set(_ context.Context, key, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = raw
	return nil
}
