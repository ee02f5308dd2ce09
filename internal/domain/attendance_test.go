package domain

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"full work day", 8 * time.Hour, "08:00:00"},
		{"mixed components", 7*time.Hour + 23*time.Minute + 9*time.Second, "07:23:09"},
		{"zero", 0, "00:00:00"},
		{"sub-second rounds", 1500 * time.Millisecond, "00:00:02"},
		{"negative clamps to zero", -time.Minute, "00:00:00"},
		{"over a day keeps hours", 25*time.Hour + 5*time.Second, "25:00:05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.d); got != tt.want {
				t.Errorf("FormatDuration(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestSession_Open(t *testing.T) {
	now := time.Now()

	open := &Session{TimeIn: now}
	if !open.Open() {
		t.Error("session without time_out should be open")
	}

	closed := &Session{TimeIn: now, TimeOut: &now}
	if closed.Open() {
		t.Error("session with time_out should be closed")
	}
}
