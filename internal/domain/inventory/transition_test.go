package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionFor_Pending(t *testing.T) {
	transition, ok := TransitionFor(DrumStatusPending)
	require.True(t, ok)

	assert.Equal(t, TransactionTypeIntake, transition.TxType)
	assert.Equal(t, "Scanned into inventory", transition.Note)
	assert.Equal(t, DrumStatusAvailable, transition.NextStatus)
	assert.True(t, transition.RecordOrder)
	assert.True(t, transition.EmitProgress)
}

func TestTransitionFor_Available(t *testing.T) {
	transition, ok := TransitionFor(DrumStatusAvailable)
	require.True(t, ok)

	assert.Equal(t, TransactionTypeProcessing, transition.TxType)
	assert.Equal(t, "Scanned out of inventory - staged for production", transition.Note)
	assert.Equal(t, DrumStatusProcessed, transition.NextStatus)
	assert.False(t, transition.RecordOrder)
	assert.False(t, transition.EmitProgress)
}

func TestTransitionFor_TerminalStatuses(t *testing.T) {
	terminal := []DrumStatus{
		DrumStatusProcessed,
		DrumStatusScheduled,
		DrumStatusWasted,
		DrumStatusLost,
	}

	for _, status := range terminal {
		t.Run(status.String(), func(t *testing.T) {
			_, ok := TransitionFor(status)
			assert.False(t, ok, "status %s should have no scan transition", status)
		})
	}
}

func TestScannableStatuses(t *testing.T) {
	statuses := ScannableStatuses()
	assert.Len(t, statuses, 2)
	assert.Contains(t, statuses, DrumStatusPending)
	assert.Contains(t, statuses, DrumStatusAvailable)
}

func TestDrumStatus_IsValid(t *testing.T) {
	for _, status := range []DrumStatus{
		DrumStatusPending, DrumStatusAvailable, DrumStatusProcessed,
		DrumStatusScheduled, DrumStatusWasted, DrumStatusLost,
	} {
		assert.True(t, status.IsValid())
	}
	assert.False(t, DrumStatus("unknown").IsValid())
	assert.False(t, DrumStatus("").IsValid())
}
