package todos

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IDGenerator hands out record identifiers.
type IDGenerator interface {
	NewID() string
}

// MillisIDs issues creation times in Unix milliseconds. Two ids in the
// same millisecond would collide, so the next id is always at least
// one past the last.
type MillisIDs struct {
	Now func() time.Time

	mu   sync.Mutex
	last int64
}

func (g *MillisIDs) NewID() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	id := now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return strconv.FormatInt(id, 10)
}

// UUIDs issues version 7 UUIDs, which sort by creation time.
type UUIDs struct{}

func (UUIDs) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Generator schemes selectable from config.
const (
	SchemeMillis = "millis"
	SchemeUUID   = "uuid"
)

// NewIDGenerator returns the generator for scheme, defaulting to millis.
func NewIDGenerator(scheme string) IDGenerator {
	if scheme == SchemeUUID {
		return UUIDs{}
	}
	return &MillisIDs{}
}

// lessID orders numeric ids numerically and everything else
// lexicographically; numeric ids come first.
func lessID(a, b string) bool {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}
