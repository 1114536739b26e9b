package limiter

import (
	"context"
	"sync"
	"time"
)

// memoryLimiter is an in-process AttemptLimiter suitable for single-node
// deployments (the SQLite profile).
type memoryLimiter struct {
	mu          sync.Mutex
	entries     map[string]*attemptEntry
	maxAttempts int
	window      time.Duration
	stop        chan struct{}
	stopOnce    sync.Once
}

type attemptEntry struct {
	count     int
	windowEnd time.Time
}

// NewMemory creates an in-memory attempt limiter.
func NewMemory(maxAttempts int, window time.Duration) AttemptLimiter {
	l := &memoryLimiter{
		entries:     make(map[string]*attemptEntry),
		maxAttempts: maxAttempts,
		window:      window,
		stop:        make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Allowed reports whether another attempt is permitted for the key.
func (l *memoryLimiter) Allowed(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok || time.Now().After(entry.windowEnd) {
		return true, nil
	}
	return entry.count < l.maxAttempts, nil
}

// RecordFailure registers a failed attempt for the key.
func (l *memoryLimiter) RecordFailure(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	entry, ok := l.entries[key]
	if !ok || now.After(entry.windowEnd) {
		l.entries[key] = &attemptEntry{count: 1, windowEnd: now.Add(l.window)}
		return nil
	}
	entry.count++
	return nil
}

// Reset clears the attempt counter for the key.
func (l *memoryLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, key)
	return nil
}

// Close stops the background cleanup goroutine.
func (l *memoryLimiter) Close() error {
	l.stopOnce.Do(func() { close(l.stop) })
	return nil
}

// cleanupLoop periodically drops expired windows until Close is called.
func (l *memoryLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			now := time.Now()
			l.mu.Lock()
			for key, entry := range l.entries {
				if now.After(entry.windowEnd) {
					delete(l.entries, key)
				}
			}
			l.mu.Unlock()
		}
	}
}

var _ AttemptLimiter = (*memoryLimiter)(nil)
