package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusWashing, true},
		{StatusWashing, StatusReady, true},
		{StatusReady, StatusPickedUp, true},
		{StatusPending, StatusReady, false},
		{StatusPending, StatusPickedUp, false},
		{StatusReady, StatusWashing, false},
		{StatusPickedUp, StatusPending, false},
		{StatusPickedUp, StatusPickedUp, false},
		{StatusWashing, StatusWashing, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"To"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("picked_up")
	assert.NoError(t, err)
	assert.Equal(t, StatusPickedUp, st)

	_, err = ParseStatus("done")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}
