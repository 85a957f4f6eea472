package shared

import "time"

// Timestamps provides created/updated bookkeeping for all persisted entities.
// Primary keys are assigned by the database (serial columns), so unlike a
// UUID-keyed model there is no generated identity here.
type Timestamps struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Touch updates the UpdatedAt timestamp
func (t *Timestamps) Touch() {
	t.UpdatedAt = time.Now()
}
