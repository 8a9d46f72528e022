package clock

import "time"

// Clock supplies the current instant. Services read it exactly once per
// operation so time-window checks stay self-consistent; tests inject a fixed
// implementation.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns a Clock backed by time.Now.
func System() Clock { return systemClock{} }

// Midnight truncates an instant to the start of its calendar day in the
// instant's own location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
