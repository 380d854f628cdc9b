package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  Priority
		valid bool
	}{
		{"Low", "Low", PriorityLow, true},
		{"Medium", "Medium", PriorityMedium, true},
		{"High", "High", PriorityHigh, true},
		{"Lowercase rejected", "low", "", false},
		{"Unknown rejected", "Urgent", "", false},
		{"Empty rejected", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePriority(tt.raw)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeStats(t *testing.T) {
	tasks := []Task{
		{Priority: PriorityLow, IsCompleted: true},
		{Priority: PriorityLow},
		{Priority: PriorityMedium},
		{Priority: PriorityHigh, IsCompleted: true},
		{Priority: PriorityHigh},
	}

	s := ComputeStats(tasks)

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 2, s.Completed)
	assert.Equal(t, 3, s.Incomplete)
	assert.Equal(t, 2, s.Low)
	assert.Equal(t, 1, s.Medium)
	assert.Equal(t, 2, s.High)
}

func TestComputeStats_Empty(t *testing.T) {
	s := ComputeStats(nil)
	assert.Equal(t, Stats{}, s)
}
