package activities

import (
	"fmt"
	"time"

	"github.com/2beens/eridanus/internal/stats"
)

type Kind string

const (
	KindCrunches Kind = "crunches"
	KindPushups  Kind = "pushups"
	KindJumpRope Kind = "jump_rope"
	KindRunning  Kind = "running"
)

var Kinds = []Kind{KindCrunches, KindPushups, KindJumpRope, KindRunning}

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown activity kind: %s", s)
}

// Counted kinds carry a repetitions count, running carries distance and speed.
func (k Kind) Counted() bool {
	return k != KindRunning
}

func (k Kind) Title() string {
	switch k {
	case KindCrunches:
		return "Crunches"
	case KindPushups:
		return "Push-ups"
	case KindJumpRope:
		return "Jump rope"
	case KindRunning:
		return "Running"
	default:
		return string(k)
	}
}

// Activity is the record shared by all kinds. Exactly one of Count (counted
// kinds) and Run (running) is meaningful, depending on Kind.
type Activity struct {
	ID           int64     `json:"id"`
	Kind         Kind      `json:"kind"`
	UserNickname string    `json:"usernickname"`
	Date         time.Time `json:"activity_date"`
	// Time holds only the time of day, anchored on 1970-01-01 UTC.
	Time      time.Time   `json:"activity_time"`
	Duration  *int        `json:"duration,omitempty"`
	Calories  *int        `json:"calories,omitempty"`
	Notes     string      `json:"notes"`
	CreatedAt time.Time   `json:"creation_datetime"`
	Count     *int        `json:"count,omitempty"`
	Run       *RunDetails `json:"run,omitempty"`
}

type RunDetails struct {
	Distance float64  `json:"distance"`
	Speed    *float64 `json:"speed,omitempty"`
	// DistanceMissing marks old records stored without a distance; Distance is then 0
	// and means nothing.
	DistanceMissing bool `json:"-"`
}

// Speed is the stored speed, or the one derived from distance and duration.
func (a Activity) Speed() (float64, bool) {
	if a.Run == nil {
		return 0, false
	}
	return a.StatsRun().ResolvedSpeed()
}

func (a Activity) StatsRun() stats.Run {
	r := stats.Run{
		Date:     a.Date,
		Duration: a.Duration,
		Calories: a.Calories,
	}
	if a.Run != nil {
		if !a.Run.DistanceMissing {
			distance := a.Run.Distance
			r.Distance = &distance
		}
		r.Speed = a.Run.Speed
	}
	return r
}

// Patch carries an update: nil fields are left untouched. A zero ID is a caller bug.
type Patch struct {
	ID       int64
	Date     *time.Time
	Time     *time.Time
	Duration *int
	Calories *int
	Notes    *string
	Count    *int
	Distance *float64
	Speed    *float64
}

// Apply merges the supplied fields into a, ignoring the ones a's kind does not carry.
func (p Patch) Apply(a *Activity) {
	if p.Date != nil {
		a.Date = *p.Date
	}
	if p.Time != nil {
		a.Time = *p.Time
	}
	if p.Duration != nil {
		a.Duration = p.Duration
	}
	if p.Calories != nil {
		a.Calories = p.Calories
	}
	if p.Notes != nil {
		a.Notes = *p.Notes
	}

	if a.Kind.Counted() {
		if p.Count != nil {
			a.Count = p.Count
		}
		return
	}

	if a.Run == nil {
		a.Run = &RunDetails{}
	}
	if p.Distance != nil {
		a.Run.Distance = *p.Distance
		a.Run.DistanceMissing = false
	}
	if p.Speed != nil {
		a.Run.Speed = p.Speed
	}
}
