package solver

import (
	"github.com/fairdeck/gtoadvisor/internal/game"
	"github.com/fairdeck/gtoadvisor/poker"
)

// BucketMapper collapses a raw hand state into the info set key the
// acting player sees. Hole cards map to the coarse preflop strength
// tiers; the betting history is kept verbatim up to an optional suffix
// cap.
type BucketMapper struct {
	maxHistory int
}

// NewBucketMapper builds a mapper. maxHistory of zero keeps the full
// betting history in the key.
func NewBucketMapper(maxHistory int) *BucketMapper {
	return &BucketMapper{maxHistory: maxHistory}
}

// Key returns the info set key for the player at the current decision
// point of h.
func (m *BucketMapper) Key(h *game.HandState, player int) InfoSetKey {
	hole := h.HoleCards(player)
	return InfoSetKey{
		Street:  h.Street(),
		Bucket:  poker.CategorizeHoleCards(hole[0], hole[1]),
		History: m.trim(h.History()),
	}
}

// trim keeps the most recent tokens; older action is the least
// informative part of a history once it grows past the cap.
func (m *BucketMapper) trim(history string) string {
	if m.maxHistory <= 0 || len(history) <= m.maxHistory {
		return history
	}
	return history[len(history)-m.maxHistory:]
}
