package inventory

import "fmt"

// InvalidBarcodeError indicates a scanned string that does not match the
// drum label format. No state is mutated.
type InvalidBarcodeError struct {
	Raw string
}

func (e *InvalidBarcodeError) Error() string {
	return "Invalid barcode format"
}

// DrumNotFoundError indicates the scanned drum identifier has no row.
// No transaction is written.
type DrumNotFoundError struct {
	DrumID int64
}

func (e *DrumNotFoundError) Error() string {
	return fmt.Sprintf("Drum ID %d not found in database", e.DrumID)
}

// DuplicateScanError indicates a scan arrived within the cooldown window
// of the drum's previous scan. A cancelled transaction has already been
// recorded by the time this error is returned.
type DuplicateScanError struct {
	DrumID         int64
	ElapsedMinutes int
}

func (e *DuplicateScanError) Error() string {
	return "Drum has been scanned recently. Transaction cancelled."
}

// UnhandledStatusError indicates the drum is in a state with no defined
// scan transition. Nothing is written.
type UnhandledStatusError struct {
	DrumID int64
	Status DrumStatus
}

func (e *UnhandledStatusError) Error() string {
	return fmt.Sprintf("Invalid or unhandled drum status for scanning: %s", e.Status)
}

// TransitionVerificationError indicates the audit transaction was written
// but the delegated status mutation did not materialize. The transaction
// row is NOT rolled back; operators reconcile manually.
type TransitionVerificationError struct {
	DrumID    int64
	OldStatus DrumStatus
	Expected  DrumStatus
}

func (e *TransitionVerificationError) Error() string {
	return "Failed to update drum status via database trigger"
}

// ScanInProgressError indicates another scan of the same drum currently
// holds the per-drum advisory lock.
type ScanInProgressError struct {
	DrumID int64
}

func (e *ScanInProgressError) Error() string {
	return fmt.Sprintf("Another scan of drum %d is already in progress", e.DrumID)
}
