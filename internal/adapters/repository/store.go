// Package repository owns the persistent per-player rating state.
package repository

// Store provides read/write access to player ratings. Players are created
// lazily at the configured initial rating on first sight and never
// deleted.
type Store interface {
	// Rating returns the player's current rating.
	Rating(name string) int64

	// Apply adds a signed delta to the player's rating and returns the
	// value before and after the write.
	Apply(name string, delta int64) (before, after int64)

	// Snapshot returns a copy of every tracked rating.
	Snapshot() map[string]int64

	// Count returns the number of players tracked.
	Count() int
}
