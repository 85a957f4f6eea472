package scanning

import (
	"time"

	"github.com/drumflow/backend/internal/domain/inventory"
)

// ScanRequest carries one raw barcode submission from a handheld scanner.
// Timestamp is the scanner's clock reading; the server uses its own clock
// for cooldown arithmetic but requires the field so half-formed firmware
// payloads are rejected up front.
type ScanRequest struct {
	Barcode   string `json:"barcode" binding:"required,barcode"`
	Timestamp string `json:"timestamp" binding:"required"`
}

// ScanResult is returned for an accepted scan
type ScanResult struct {
	Message       string                    `json:"message"`
	DrumID        int64                     `json:"drum_id"`
	OrderID       int64                     `json:"order_id"`
	TxID          int64                     `json:"tx_id"`
	TxType        inventory.TransactionType `json:"tx_type"`
	OldStatus     inventory.DrumStatus      `json:"old_status"`
	NewStatus     inventory.DrumStatus      `json:"new_status"`
	Material      string                    `json:"material"`
	ScannedAt     time.Time                 `json:"scanned_at"`
	OrderComplete bool                      `json:"order_complete"`
}

// ScanFeedItem is the wire shape pushed to scan-feed subscribers
type ScanFeedItem struct {
	DrumID    int64                `json:"drum_id"`
	OldStatus inventory.DrumStatus `json:"old_status"`
	NewStatus inventory.DrumStatus `json:"new_status"`
	At        time.Time            `json:"at"`
}
