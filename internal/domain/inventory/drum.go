package inventory

import (
	"time"

	"github.com/drumflow/backend/internal/domain/shared"
)

// DrumStatus represents the lifecycle state of a physical drum
type DrumStatus string

const (
	// DrumStatusPending means the drum row exists but the drum has not arrived on site
	DrumStatusPending DrumStatus = "pending"
	// DrumStatusAvailable means the drum has been scanned into inventory
	DrumStatusAvailable DrumStatus = "available"
	// DrumStatusProcessed means the drum has been scanned out and staged for production
	DrumStatusProcessed DrumStatus = "processed"
	// DrumStatusScheduled means the drum is reserved for a production schedule
	DrumStatusScheduled DrumStatus = "scheduled"
	// DrumStatusWasted means the drum contents were written off
	DrumStatusWasted DrumStatus = "wasted"
	// DrumStatusLost means the drum could not be located during an audit
	DrumStatusLost DrumStatus = "lost"
)

// String returns the string representation of DrumStatus
func (s DrumStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is one of the defined lifecycle states
func (s DrumStatus) IsValid() bool {
	switch s {
	case DrumStatusPending,
		DrumStatusAvailable,
		DrumStatusProcessed,
		DrumStatusScheduled,
		DrumStatusWasted,
		DrumStatusLost:
		return true
	}
	return false
}

// Drum represents one physical chemical container tracked as inventory.
// Drums are generated in pending status when an order is created and are
// only mutated through accepted scan transitions; they are never deleted.
type Drum struct {
	DrumID        int64      `gorm:"primaryKey;autoIncrement;column:drum_id" json:"drum_id"`
	Material      string     `gorm:"type:varchar(100);not null" json:"material"`
	Status        DrumStatus `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`
	Location      *string    `gorm:"type:varchar(50)" json:"location,omitempty"`
	OrderID       *int64     `gorm:"index" json:"order_id,omitempty"`
	DateProcessed *time.Time `json:"date_processed,omitempty"`
	shared.Timestamps
}

// TableName returns the table name for GORM
func (Drum) TableName() string {
	return "drums"
}

// NewDrum creates a pending drum for an order line
func NewDrum(material string, orderID int64) (*Drum, error) {
	if material == "" {
		return nil, shared.NewDomainError("INVALID_MATERIAL", "Material cannot be empty")
	}
	now := time.Now()
	return &Drum{
		Material: material,
		Status:   DrumStatusPending,
		OrderID:  &orderID,
		Timestamps: shared.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}, nil
}
