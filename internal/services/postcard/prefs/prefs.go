// Package prefs stores small per-visitor flags such as "tutorial shown".
package prefs

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrNotFound is returned when a visitor has no value for a key.
var ErrNotFound = errors.New("preference not found")

// TutorialShownKey records whether a visitor has finished or dismissed the tutorial.
const TutorialShownKey = "tutorial_shown"

// Flag values stored under boolean keys.
const (
	ValueTrue  = "true"
	ValueFalse = "false"
)

// Store is a durable key/value store scoped by visitor.
type Store interface {
	Get(ctx context.Context, visitorID, key string) (string, error)
	Put(ctx context.Context, visitorID, key, value string) error
	Close() error
}

// Bool reads a boolean flag; a missing key reads as false.
func Bool(ctx context.Context, store Store, visitorID, key string) (bool, error) {
	if store == nil {
		return false, errors.New("preference store is not configured")
	}
	value, err := store.Get(ctx, visitorID, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(value), ValueTrue), nil
}

// SetBool writes a boolean flag.
func SetBool(ctx context.Context, store Store, visitorID, key string, value bool) error {
	if store == nil {
		return errors.New("preference store is not configured")
	}
	raw := ValueFalse
	if value {
		raw = ValueTrue
	}
	return store.Put(ctx, visitorID, key, raw)
}

// ValidateKey checks the identifiers every store requires.
func ValidateKey(visitorID, key string) error {
	if strings.TrimSpace(visitorID) == "" {
		return errors.New("visitor id is required")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("key is required")
	}
	return nil
}

// Memory is an in-process Store used by tests and the memory driver.
type Memory struct {
	mu     sync.RWMutex
	values map[string]map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: map[string]map[string]string{}}
}

// Get implements Store.
func (m *Memory) Get(ctx context.Context, visitorID, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := ValidateKey(visitorID, key); err != nil {
		return "", err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[visitorID][key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Put implements Store.
func (m *Memory) Put(ctx context.Context, visitorID, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ValidateKey(visitorID, key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values[visitorID] == nil {
		m.values[visitorID] = map[string]string{}
	}
	m.values[visitorID][key] = value
	return nil
}

// Close implements Store.
func (m *Memory) Close() error {
	return nil
}
