package inventory

import (
	"fmt"
	"time"

	"github.com/drumflow/backend/internal/domain/shared"
)

// TransactionType represents the type of inventory audit transaction
type TransactionType string

const (
	// TransactionTypeIntake records a drum scanned into inventory
	TransactionTypeIntake TransactionType = "intake"
	// TransactionTypeProcessing records a drum scanned out for production
	TransactionTypeProcessing TransactionType = "processing"
	// TransactionTypeCancelled records a rejected scan (duplicate within the cooldown window)
	TransactionTypeCancelled TransactionType = "cancelled"
	// TransactionTypeImport records a bulk import outside the scan path
	TransactionTypeImport TransactionType = "import"
	// TransactionTypeLoss records a drum written off as wasted or lost
	TransactionTypeLoss TransactionType = "loss"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeIntake,
		TransactionTypeProcessing,
		TransactionTypeCancelled,
		TransactionTypeImport,
		TransactionTypeLoss:
		return true
	}
	return false
}

// Transaction is an immutable audit record of one inventory event.
// Once created, transactions are never updated or deleted; corrections
// are made with new transactions. Ordering by write time per drum
// defines the scan history consulted by the deduplication guard.
type Transaction struct {
	TxID     int64           `gorm:"primaryKey;autoIncrement;column:tx_id" json:"tx_id"`
	TxType   TransactionType `gorm:"type:varchar(20);not null;column:tx_type;index" json:"tx_type"`
	Material string          `gorm:"type:varchar(100)" json:"material"`
	DrumID   int64           `gorm:"not null;index" json:"drum_id"`
	OrderID  *int64          `json:"order_id,omitempty"`
	TxNotes  string          `gorm:"type:varchar(255);column:tx_notes" json:"tx_notes"`
	TxDate   time.Time       `gorm:"not null;column:tx_date" json:"tx_date"`
	shared.Timestamps
}

// TableName returns the table name for GORM
func (Transaction) TableName() string {
	return "transactions"
}

// NewTransaction creates a new audit transaction
func NewTransaction(txType TransactionType, material string, drumID int64, note string) (*Transaction, error) {
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Invalid transaction type")
	}
	if drumID <= 0 {
		return nil, shared.NewDomainError("INVALID_DRUM_ID", "Drum ID must be positive")
	}
	now := time.Now()
	return &Transaction{
		TxType:   txType,
		Material: material,
		DrumID:   drumID,
		TxNotes:  note,
		TxDate:   now,
		Timestamps: shared.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}, nil
}

// WithOrderID sets the order reference for the transaction
func (t *Transaction) WithOrderID(orderID int64) *Transaction {
	t.OrderID = &orderID
	return t
}

// NewCancelledTransaction records a scan rejected by the deduplication
// guard. Rejections are deliberately audited rather than dropped.
func NewCancelledTransaction(material string, drumID, orderID int64, elapsedMinutes int) (*Transaction, error) {
	note := fmt.Sprintf("Scanned %d minutes after most recent scan", elapsedMinutes)
	tx, err := NewTransaction(TransactionTypeCancelled, material, drumID, note)
	if err != nil {
		return nil, err
	}
	return tx.WithOrderID(orderID), nil
}
