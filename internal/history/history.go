// Package history tracks how often each position has occurred in a game,
// for threefold repetition detection.
package history

import (
	"golang.org/x/exp/maps"
)

// PositionHistory counts occurrences of positions keyed by their simplified
// FEN (placement, side to move, castling rights, en-passant target).
type PositionHistory struct {
	// counts stores occurrences per key
	counts map[string]int
	// order keeps keys in first-seen order
	order []string
}

// NewPositionHistory creates an empty history.
func NewPositionHistory() *PositionHistory {
	return &PositionHistory{counts: make(map[string]int)}
}

// Record increments the count of key and returns the new count.
func (h *PositionHistory) Record(key string) int {
	if _, ok := h.counts[key]; !ok {
		h.order = append(h.order, key)
	}
	h.counts[key]++
	return h.counts[key]
}

// Count returns how often key has been recorded.
func (h *PositionHistory) Count(key string) int {
	return h.counts[key]
}

// Reached returns true if key has occurred at least limit times.
func (h *PositionHistory) Reached(key string, limit int) bool {
	return h.counts[key] >= limit
}

// Snapshot returns a copy of the counts that later records do not affect.
func (h *PositionHistory) Snapshot() map[string]int {
	return maps.Clone(h.counts)
}

// MostRepeated returns the key with the highest count, earliest first on ties.
func (h *PositionHistory) MostRepeated() (string, int) {
	best, bestCount := "", 0
	for _, key := range h.order {
		if c := h.counts[key]; c > bestCount {
			best, bestCount = key, c
		}
	}
	return best, bestCount
}

// Reset clears the history.
func (h *PositionHistory) Reset() {
	h.counts = make(map[string]int)
	h.order = nil
}
