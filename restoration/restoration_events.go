package restoration

import "github.com/iost-studio/contractkit/events"

// RestorerEvents defines event emitters for a Restorer.
type RestorerEvents struct {
	// FallbackEngaged emits events when the narrow binary operator patterns failed to converge and the greedy
	// fallback patterns start being applied.
	FallbackEngaged events.EventEmitter[FallbackEngagedEvent]
}

// FallbackEngagedEvent describes an event where a restoration switched to the greedy fallback patterns.
type FallbackEngagedEvent struct {
	// Restorer represents the instance of the restorer for which the event occurred.
	Restorer *Restorer

	// Iteration is the pass at which the fallback engaged.
	Iteration int

	// Remaining is the number of wrapper calls left in the text when the fallback engaged.
	Remaining int
}
