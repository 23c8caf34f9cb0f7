// Package syncutil provides keyed locking primitives.
package syncutil

import (
	"context"
	"sync"
)

// KeyedMutex holds one channel-based mutex per active key. Entries are
// refcounted and removed when the last holder or waiter releases, so
// the table only grows with concurrent activity, and distinct keys
// never contend with each other. Channel mutexes allow select{} against
// context cancellation and a non-blocking TryLock, which plain
// sync.Mutex cannot offer.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*keyLock
}

// keyLock is one key's mutex. A token in sem means unlocked.
type keyLock struct {
	sem  chan struct{}
	refs int
}

// NewKeyedMutex creates an empty keyed mutex table.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*keyLock)}
}

// acquire pins the key's entry, creating it unlocked if absent.
func (m *KeyedMutex) acquire(key string) *keyLock {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		e = &keyLock{sem: make(chan struct{}, 1)}
		e.sem <- struct{}{}
		m.entries[key] = e
	}
	e.refs++
	return e
}

// release unpins the key's entry and drops it when unused.
func (m *KeyedMutex) release(key string, e *keyLock) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(m.entries, key)
	}
}

// Lock acquires the mutex for key, respecting context cancellation.
// On success it returns an unlock function the caller MUST invoke.
func (m *KeyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	e := m.acquire(key)
	select {
	case <-e.sem:
		return func() {
			e.sem <- struct{}{}
			m.release(key, e)
		}, nil
	case <-ctx.Done():
		m.release(key, e)
		return nil, ctx.Err()
	}
}

// TryLock acquires the mutex for key only if it is free right now.
// Returns the unlock function and true on success, nil and false when
// another operation holds the same key.
func (m *KeyedMutex) TryLock(key string) (func(), bool) {
	e := m.acquire(key)
	select {
	case <-e.sem:
		return func() {
			e.sem <- struct{}{}
			m.release(key, e)
		}, true
	default:
		m.release(key, e)
		return nil, false
	}
}

// Len reports the number of keys with a holder or waiter, for tests.
func (m *KeyedMutex) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
