package meter

import "time"

// Clock supplies the current time. The engine uses it only to record
// the trip start timestamp; elapsed time is always recomputed against
// an explicit now passed to Tick.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }
