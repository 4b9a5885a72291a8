package registrations

import (
	"fmt"
	"math/rand"
	"time"
)

// NewID produces a human-readable registration identifier of the form
// REEL-<MMDD>-<4 digits>. The random space is small; collisions are
// caught by the store's unique index and the intake workflow
// regenerates.
func NewID(now time.Time) string {
	return fmt.Sprintf("REEL-%s-%04d", now.Format("0102"), 1000+rand.Intn(9000))
}
