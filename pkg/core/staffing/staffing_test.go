package staffing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShiftStatus(t *testing.T) {
	tests := []struct {
		name                                                           string
		currentScouts, requiredScouts, currentParents, requiredParents int
		want                                                           Status
	}{
		{"both buckets met", 3, 3, 2, 2, StatusFull},
		{"over requirement still full", 4, 3, 2, 2, StatusFull},
		{"nobody signed up", 0, 3, 0, 2, StatusEmpty},
		{"one scout only", 1, 3, 0, 2, StatusPartial},
		{"one parent only", 0, 3, 1, 2, StatusPartial},
		{"scouts full parents short", 3, 3, 1, 2, StatusPartial},
		{"zero requirements", 0, 0, 0, 0, StatusFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShiftStatus(tt.currentScouts, tt.requiredScouts, tt.currentParents, tt.requiredParents)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBucketLevel(t *testing.T) {
	tests := []struct {
		name              string
		current, required int
		want              Level
	}{
		{"met exactly", 5, 5, LevelFull},
		{"over requirement", 6, 5, LevelFull},
		{"80 percent is ok", 4, 5, LevelOK},
		{"60 percent is low", 3, 5, LevelLow},
		{"50 percent boundary is low", 1, 2, LevelLow},
		{"40 percent is critical", 2, 5, LevelCritical},
		{"empty bucket", 0, 5, LevelCritical},
		{"nothing required", 0, 0, LevelFull},
		{"nothing required ignores current", 3, 0, LevelFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BucketLevel(tt.current, tt.required))
		})
	}
}

func TestLevelPriorityOrdering(t *testing.T) {
	// Critical shifts must sort first when prioritizing alerts
	assert.Less(t, LevelCritical.Priority(), LevelLow.Priority())
	assert.Less(t, LevelLow.Priority(), LevelOK.Priority())
	assert.Less(t, LevelOK.Priority(), LevelFull.Priority())
}
