// Package limiter provides login attempt throttling to slow brute-force
// credential guessing. Attempts are counted per email over a sliding
// window; implementations back the counter with process memory or Redis.
package limiter

import "context"

// AttemptLimiter counts failed login attempts per key.
type AttemptLimiter interface {
	// Allowed reports whether another attempt is permitted for the key.
	Allowed(ctx context.Context, key string) (bool, error)

	// RecordFailure registers a failed attempt for the key.
	RecordFailure(ctx context.Context, key string) error

	// Reset clears the attempt counter for the key, typically after a
	// successful login.
	Reset(ctx context.Context, key string) error

	// Close releases the limiter's resources. The limiter must not be
	// used after Close.
	Close() error
}
