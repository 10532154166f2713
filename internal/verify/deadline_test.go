package verify_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mviana/trip-prep/backend/internal/domain"
	"github.com/mviana/trip-prep/backend/internal/verify"
)

func TestDeadline(t *testing.T) {
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	start := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name                            string
		daysBefore, processing, buffer  int
		want                            time.Time
	}{
		{
			// processing+buffer (17) beats daysBefore (14).
			name:       "processing plus buffer wins",
			daysBefore: 14, processing: 10, buffer: 7,
			want: time.Date(2026, 2, 26, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "days before wins",
			daysBefore: 30, processing: 5, buffer: 2,
			want: time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "zero inputs give trip start",
			daysBefore: 0, processing: 0, buffer: 0,
			want: start,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := verify.Deadline(now, start, tt.daysBefore, tt.processing, tt.buffer)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeadline_ClampsToNow(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	start := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	// 60 days of lead time on a trip five days out: the computed deadline
	// would be in the past, so it clamps to now.
	got := verify.Deadline(now, start, 60, 30, 15)
	assert.Equal(t, now, got)
}

func TestEffectivePriority(t *testing.T) {
	deadline := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		stored domain.TaskPriority
		now    time.Time
		buffer int
		want   domain.TaskPriority
	}{
		{
			name:   "outside buffer window keeps stored priority",
			stored: domain.PriorityMedium,
			now:    time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			buffer: 7,
			want:   domain.PriorityMedium,
		},
		{
			name:   "inside buffer window escalates one step",
			stored: domain.PriorityMedium,
			now:    time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC),
			buffer: 7,
			want:   domain.PriorityHigh,
		},
		{
			name:   "past deadline escalates",
			stored: domain.PriorityHigh,
			now:    time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
			buffer: 7,
			want:   domain.PriorityCritical,
		},
		{
			name:   "critical never escalates further",
			stored: domain.PriorityCritical,
			now:    time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
			buffer: 7,
			want:   domain.PriorityCritical,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := verify.EffectivePriority(tt.stored, deadline, tt.buffer, tt.now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEffectivePriority_ZeroDeadline(t *testing.T) {
	got := verify.EffectivePriority(domain.PriorityLow, time.Time{}, 7, time.Now())
	assert.Equal(t, domain.PriorityLow, got)
}
