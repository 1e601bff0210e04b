package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeEntry_Open(t *testing.T) {
	e := &TimeEntry{ClockIn: time.Now()}
	assert.True(t, e.Open())

	out := e.ClockIn.Add(time.Hour)
	e.ClockOut = &out
	assert.False(t, e.Open())
}

func TestTimeEntry_Duration(t *testing.T) {
	in := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	e := &TimeEntry{ClockIn: in}
	assert.Equal(t, time.Duration(0), e.Duration(), "open session has no duration")

	out := in.Add(8 * time.Hour)
	e.ClockOut = &out
	assert.Equal(t, 8*time.Hour, e.Duration())
}

func TestTimeEntry_ActivityPct(t *testing.T) {
	tests := []struct {
		name       string
		productive time.Duration
		idle       time.Duration
		want       float64
	}{
		{name: "eighty twenty", productive: 48 * time.Minute, idle: 12 * time.Minute, want: 80},
		{name: "all productive", productive: time.Hour, idle: 0, want: 100},
		{name: "all idle", productive: 0, idle: time.Hour, want: 0},
		{name: "zero length counts as active", productive: 0, idle: 0, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &TimeEntry{Productive: tt.productive, Idle: tt.idle}
			assert.InDelta(t, tt.want, e.ActivityPct(), 1e-9)
		})
	}
}
