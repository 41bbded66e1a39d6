package pipeline

import "github.com/jonboulle/clockwork"

// clock stamps runs and drives the interval ticker. Tests freeze it via
// SetClock so filenames and window bounds are deterministic.
var clock = clockwork.NewRealClock()

// SetClock swaps the pipeline's time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
