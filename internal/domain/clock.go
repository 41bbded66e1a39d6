package domain

import "github.com/jonboulle/clockwork"

// clock is a package-level time source so tests can freeze time via SetClock.
// Window seeding and placeholder rows stamp "now" from it; production code
// uses the real clock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source for parsing and windowing. Pass nil to reset
// to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
