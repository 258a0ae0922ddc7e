package stats

import (
	"time"

	"github.com/2beens/eridanus/internal/format"
)

// Run is the slice of a running activity the aggregator needs.
type Run struct {
	Date     time.Time
	Duration *int
	Distance *float64
	Calories *int
	// Speed is the stored speed, nil for records created before speed was tracked.
	Speed *float64
}

// ResolvedSpeed returns the stored speed when present, otherwise the one derived from
// distance and duration. False when neither is possible.
func (r Run) ResolvedSpeed() (float64, bool) {
	if r.Speed != nil {
		return *r.Speed, true
	}
	if r.Distance == nil {
		return 0, false
	}
	return DeriveSpeed(*r.Distance, r.Duration)
}

// DeriveSpeed computes km/h from km and minutes. A nil or non-positive
// duration leaves the speed undefined.
func DeriveSpeed(distance float64, durationMin *int) (float64, bool) {
	if durationMin == nil || *durationMin <= 0 {
		return 0, false
	}
	return distance / (float64(*durationMin) / 60.0), true
}

type RunningSummary struct {
	Count           int        `json:"count"`
	DateLastRun     *time.Time `json:"date_last_run"`
	DaysFromLastRun *int       `json:"days_from_last_run"`

	TotalCalories int     `json:"total_calories"`
	TotalDistance float64 `json:"total_distance"`
	TotalTime     int     `json:"total_time"`

	AvgCalories float64 `json:"avg_calories"`
	AvgDistance float64 `json:"avg_distance"`
	AvgTime     float64 `json:"avg_time"`
	AvgSpeed    float64 `json:"avg_speed"`

	MaxCalories int     `json:"max_calories"`
	MaxDistance float64 `json:"max_distance"`
	MaxSpeed    float64 `json:"max_speed"`
	MaxTime     int     `json:"max_time"`
}

// RunningStats reduces the runs of one user, ordered newest first, into a summary.
//
// avg_calories, avg_distance and avg_time divide by the total number of runs,
// including those missing the field, while avg_speed divides only by the runs
// with a defined speed. The asymmetry is long standing and kept as is.
func RunningStats(runs []Run, now time.Time) RunningSummary {
	summary := RunningSummary{Count: len(runs)}
	if len(runs) == 0 {
		return summary
	}

	lastRun := format.DateOf(runs[0].Date)
	daysFromLastRun := format.DaysBetween(now, lastRun)
	summary.DateLastRun = &lastRun
	summary.DaysFromLastRun = &daysFromLastRun

	var totalSpeed float64
	speeds := 0
	for _, r := range runs {
		if r.Calories != nil {
			summary.TotalCalories += *r.Calories
			summary.MaxCalories = max(summary.MaxCalories, *r.Calories)
		}
		if r.Distance != nil {
			summary.TotalDistance += *r.Distance
			summary.MaxDistance = max(summary.MaxDistance, *r.Distance)
		}
		if r.Duration != nil {
			summary.TotalTime += *r.Duration
			summary.MaxTime = max(summary.MaxTime, *r.Duration)
		}
		if speed, ok := r.ResolvedSpeed(); ok {
			totalSpeed += speed
			speeds++
			summary.MaxSpeed = max(summary.MaxSpeed, speed)
		}
	}

	summary.AvgCalories = avg(float64(summary.TotalCalories), summary.Count)
	summary.AvgDistance = avg(summary.TotalDistance, summary.Count)
	summary.AvgTime = avg(float64(summary.TotalTime), summary.Count)
	summary.AvgSpeed = avg(totalSpeed, speeds)

	return summary
}

func avg(total float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return total / float64(count)
}
