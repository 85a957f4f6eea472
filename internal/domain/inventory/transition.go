package inventory

// ScanTransition describes what a scan event does to a drum in a given
// status: the audit transaction to record, the note it carries, and the
// status the delegated mutation mechanism is expected to produce.
type ScanTransition struct {
	TxType       TransactionType
	Note         string
	NextStatus   DrumStatus
	RecordOrder  bool // stamp the order reference on the transaction
	EmitProgress bool // publish an order-progress event on success
}

// scanTransitions is the transition table for the scan event. Statuses
// absent from the table (processed, scheduled, wasted, lost) have no
// defined scan transition and are rejected without writing anything.
// Adding a transition is a data change here, not a new code path.
var scanTransitions = map[DrumStatus]ScanTransition{
	DrumStatusPending: {
		TxType:       TransactionTypeIntake,
		Note:         "Scanned into inventory",
		NextStatus:   DrumStatusAvailable,
		RecordOrder:  true,
		EmitProgress: true,
	},
	DrumStatusAvailable: {
		TxType:     TransactionTypeProcessing,
		Note:       "Scanned out of inventory - staged for production",
		NextStatus: DrumStatusProcessed,
	},
}

// TransitionFor returns the scan transition defined for the given drum
// status, or false when the status is scan-terminal.
func TransitionFor(status DrumStatus) (ScanTransition, bool) {
	t, ok := scanTransitions[status]
	return t, ok
}

// ScannableStatuses returns the statuses that have a defined scan
// transition, for diagnostics and documentation endpoints.
func ScannableStatuses() []DrumStatus {
	statuses := make([]DrumStatus, 0, len(scanTransitions))
	for s := range scanTransitions {
		statuses = append(statuses, s)
	}
	return statuses
}
