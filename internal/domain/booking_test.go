package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBooking_StateHelpers(t *testing.T) {
	active := &Booking{Status: StatusActive}
	assert.True(t, active.IsActive())
	assert.False(t, active.IsTerminal())
	assert.True(t, active.CanBeCompleted())
	assert.True(t, active.CanBeCancelled())

	completed := &Booking{Status: StatusCompleted}
	assert.False(t, completed.IsActive())
	assert.True(t, completed.IsTerminal())
	assert.False(t, completed.CanBeCompleted())
	assert.False(t, completed.CanBeCancelled())

	cancelled := &Booking{Status: StatusCancelled}
	assert.False(t, cancelled.IsActive())
	assert.True(t, cancelled.IsTerminal())
	assert.False(t, cancelled.CanBeCompleted())
	assert.False(t, cancelled.CanBeCancelled())
}

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{2.5, 2.5},
		{1.234, 1.23},
		{1.236, 1.24},
		{99.999, 100},
		{108.0, 108.0},
		{7.777, 7.78},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, RoundMoney(tt.in), 1e-9, "RoundMoney(%v)", tt.in)
	}
}
