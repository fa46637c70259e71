// Package staffing derives staffing adequacy classifications from shift
// capacity counters. All functions are pure; the results feed reporting
// and alert prioritization only.
package staffing

// Status is the combined staffing classification of a shift.
type Status string

const (
	StatusEmpty   Status = "empty"
	StatusPartial Status = "partial"
	StatusFull    Status = "full"
)

// Level is a per-bucket classification used to prioritize understaffing alerts.
type Level string

const (
	LevelCritical Level = "critical"
	LevelLow      Level = "low"
	LevelOK       Level = "ok"
	LevelFull     Level = "full"
)

// ShiftStatus classifies a shift across both volunteer buckets: full when both
// buckets meet their requirement, empty when nobody has signed up at all,
// partial otherwise.
func ShiftStatus(currentScouts, requiredScouts, currentParents, requiredParents int) Status {
	if currentScouts >= requiredScouts && currentParents >= requiredParents {
		return StatusFull
	}
	if currentScouts > 0 || currentParents > 0 {
		return StatusPartial
	}
	return StatusEmpty
}

// BucketLevel classifies a single volunteer bucket by fill percentage.
// Thresholds: >=100% full, >=80% ok, >=50% low, below that critical.
// A bucket requiring nobody is always full.
func BucketLevel(current, required int) Level {
	if required <= 0 {
		return LevelFull
	}

	percentage := float64(current) / float64(required)
	switch {
	case percentage >= 1.0:
		return LevelFull
	case percentage >= 0.8:
		return LevelOK
	case percentage >= 0.5:
		return LevelLow
	default:
		return LevelCritical
	}
}

// Priority orders levels by urgency: critical sorts before low, low before ok,
// ok before full.
func (l Level) Priority() int {
	switch l {
	case LevelCritical:
		return 0
	case LevelLow:
		return 1
	case LevelOK:
		return 2
	default:
		return 3
	}
}
