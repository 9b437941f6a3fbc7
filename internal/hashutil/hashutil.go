package hashutil

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// RunID creates a 7-character hex ID for an allocation run of the given
// period, seeded with the run time.
func RunID(period string, at time.Time) string {
	return IDFromSeed(period + "\x00" + fmt.Sprintf("%d", at.UnixNano()))
}

// IDFromSeed creates a deterministic 7-character hex ID from a seed string.
func IDFromSeed(seed string) string {
	hash := sha256.Sum256([]byte(seed))
	return fmt.Sprintf("%x", hash[:4])[:7]
}
