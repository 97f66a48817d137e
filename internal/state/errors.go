package state

import "errors"

// Error taxonomy for the engine. Item-not-found is deliberately absent from
// the surfaced set: a change referencing a missing item is skipped with a
// warning, never failed (robustness over aborting the whole simulation).
var (
	// ErrValidation marks a malformed or contradictory change payload,
	// e.g. a payload variant that does not match the change type.
	ErrValidation = errors.New("invalid scenario change")

	// ErrNotFound signals a referenced item id that is absent from the
	// state. Callers treat it as a recorded no-op, not a failure.
	ErrNotFound = errors.New("item not found")

	// ErrComparisonPrecondition is returned when fewer than two simulated
	// scenarios are handed to the comparison engine.
	ErrComparisonPrecondition = errors.New("comparison requires at least two simulated scenarios")

	// ErrSerialization marks a state that cannot be encoded for persistence.
	ErrSerialization = errors.New("state not serializable")

	// ErrProviderTimeout marks a suggestion provider that exceeded its
	// budget. Deep simulations degrade to standard results instead of failing.
	ErrProviderTimeout = errors.New("suggestion provider timed out")
)
