package risk

import "github.com/volatiletech/null/v8"

// Signals are the three independent dimensions a retention record is
// classified on. A null dimension was not supplied on import and counts as
// adequate: classification degrades gracefully instead of failing.
type Signals struct {
	Grade      null.Float64
	Attendance null.Float64
	Behavior   null.Float64
}

// Classify computes the overall risk level of a record. Each dimension
// resolves independently against its two thresholds and the worst one wins;
// a single failing indicator is enough to flag the record, with no
// weighting or averaging.
//
// Grade and attendance compare strictly (value < high => high, else
// value < medium => medium). Behavior compares inclusively (<=): it is
// scored on a small discrete 0-5 scale, so "at or below 2" is the boundary
// that matters there.
//
// Classify is pure: it never consults the store or prior periods.
func Classify(s Signals, t Thresholds) Level {
	lvl := scoreBelow(s.Grade, t.GradeHigh, t.GradeMedium)
	lvl = Worst(lvl, scoreBelow(s.Attendance, t.AttendanceHigh, t.AttendanceMedium))
	lvl = Worst(lvl, scoreAtOrBelow(s.Behavior, t.BehaviorHigh, t.BehaviorMedium))
	return lvl
}

func scoreBelow(v null.Float64, high, medium float64) Level {
	if !v.Valid {
		return LevelLow
	}
	switch {
	case v.Float64 < high:
		return LevelHigh
	case v.Float64 < medium:
		return LevelMedium
	}
	return LevelLow
}

func scoreAtOrBelow(v null.Float64, high, medium float64) Level {
	if !v.Valid {
		return LevelLow
	}
	switch {
	case v.Float64 <= high:
		return LevelHigh
	case v.Float64 <= medium:
		return LevelMedium
	}
	return LevelLow
}
