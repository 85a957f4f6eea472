package inventory

import "context"

// StatusTransitionPort applies and verifies the delegated status
// mutation that follows an audit transaction write. The scan pipeline
// never mutates drum status itself: depending on deployment the
// mutation happens in a database trigger or in an explicit conditional
// update, and this port keeps the transition engine independent of
// which mechanism is in play.
type StatusTransitionPort interface {
	// ApplyAndVerify ensures the drum has moved from expectedFrom to
	// expectedTo after the transaction write. Implementations backed by
	// triggers only verify; explicit implementations perform a
	// conditional update keyed on expectedFrom, then verify. A mismatch
	// returns *TransitionVerificationError.
	ApplyAndVerify(ctx context.Context, drumID int64, expectedFrom, expectedTo DrumStatus) error
}

// ScanLocker serializes concurrent scans of the same drum. The lock
// closes the race window between the deduplication guard's read and the
// audit writer's append: without it two concurrent scans could both
// pass the guard and both write conflicting transactions.
type ScanLocker interface {
	// Acquire takes the per-drum lock, returning a release function.
	// When the lock is already held it returns *ScanInProgressError.
	Acquire(ctx context.Context, drumID int64) (release func(), err error)
}
