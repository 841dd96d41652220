package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_IsExpiredAt(t *testing.T) {
	created := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := Session{CreatedAt: created}

	tests := []struct {
		name   string
		now    time.Time
		maxAge time.Duration
		want   bool
	}{
		{name: "fresh session", now: created.Add(time.Minute), maxAge: time.Hour, want: false},
		{name: "exactly at max age", now: created.Add(time.Hour), maxAge: time.Hour, want: true},
		{name: "past max age", now: created.Add(2 * time.Hour), maxAge: time.Hour, want: true},
		{name: "zero max age disables check", now: created.Add(1000 * time.Hour), maxAge: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.IsExpiredAt(tt.now, tt.maxAge))
		})
	}
}
