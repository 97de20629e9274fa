package store

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewSweepID returns an identifier for one recorded sweep: a UTC timestamp
// for at-a-glance ordering plus a short random tail keeping concurrent
// sweeps distinct.
func NewSweepID() string {
	now := time.Now().UTC()
	stamp := now.Format("20060102T150405")

	var tail [3]byte
	if _, err := rand.Read(tail[:]); err != nil {
		// No entropy available; the sub-second clock still separates sweeps.
		return fmt.Sprintf("sweep-%s-%06d", stamp, now.Nanosecond()/1000%1000000)
	}
	return fmt.Sprintf("sweep-%s-%s", stamp, hex.EncodeToString(tail[:]))
}
