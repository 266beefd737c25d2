package risk

import (
	"context"

	"github.com/edukeep/edukeep/core"
)

// Level is the public risk classification of a retention record.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

var severities = map[Level]int{LevelLow: 0, LevelMedium: 1, LevelHigh: 2}

func (l Level) Severity() int { return severities[l] }

// Worst returns the more severe of two levels.
func Worst(a, b Level) Level {
	if b.Severity() > a.Severity() {
		return b
	}
	return a
}

// Thresholds configure the three classification dimensions independently.
// Each dimension carries a "high" and a "medium" boundary; the medium
// boundary must be less severe (numerically greater) than the high one,
// which is enforced when an administrator saves new values. Changing
// thresholds never reclassifies already-imported records.
type Thresholds struct {
	GradeHigh        float64 `json:"grade_high" db:"grade_high" validate:"gte=0,lte=10"`
	GradeMedium      float64 `json:"grade_medium" db:"grade_medium" validate:"gte=0,lte=10,gtfield=GradeHigh"`
	AttendanceHigh   float64 `json:"attendance_high" db:"attendance_high" validate:"gte=0,lte=100"`
	AttendanceMedium float64 `json:"attendance_medium" db:"attendance_medium" validate:"gte=0,lte=100,gtfield=AttendanceHigh"`
	BehaviorHigh     float64 `json:"behavior_high" db:"behavior_high" validate:"gte=0,lte=5"`
	BehaviorMedium   float64 `json:"behavior_medium" db:"behavior_medium" validate:"gte=0,lte=5,gtfield=BehaviorHigh"`
}

// DefaultThresholds returns the documented defaults: grades on a 0-10
// scale, attendance in percent, behavior on a discrete 0-5 scale.
func DefaultThresholds() Thresholds {
	return Thresholds{
		GradeHigh:        5.0,
		GradeMedium:      6.5,
		AttendanceHigh:   70,
		AttendanceMedium: 85,
		BehaviorHigh:     2,
		BehaviorMedium:   3,
	}
}

// Validate rejects malformed thresholds at save time, so classification
// itself never has to deal with them.
func (t *Thresholds) Validate() error {
	return core.Validate.Struct(t)
}

// ThresholdRepository stores the institution's threshold overrides.
// Implementations return DefaultThresholds when nothing was saved yet.
type ThresholdRepository interface {
	GetThresholds(ctx context.Context) (Thresholds, error)
	SaveThresholds(ctx context.Context, t Thresholds) error
}
