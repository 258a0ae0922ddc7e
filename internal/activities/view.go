package activities

import (
	"time"

	"github.com/2beens/eridanus/internal/stats"
)

type ListItem struct {
	Activity
	Speed    float64
	HasSpeed bool
}

// Records are the personal bests over all runs of the user.
type Records struct {
	MaxDistance float64
	MaxTime     int
	MaxSpeed    float64
	MaxCalories int
}

type ListView struct {
	Kind    Kind
	Items   []ListItem
	Records *Records
}

type FormView struct {
	Kind         Kind
	ID           int64
	Action       string
	Form         Form
	ErrorMessage string
}

func NewListView(kind Kind, list []Activity, now time.Time) ListView {
	view := ListView{
		Kind:  kind,
		Items: make([]ListItem, 0, len(list)),
	}

	runs := make([]stats.Run, 0, len(list))
	for _, a := range list {
		item := ListItem{Activity: a}
		item.Speed, item.HasSpeed = a.Speed()
		view.Items = append(view.Items, item)
		runs = append(runs, a.StatsRun())
	}

	if kind == KindRunning && len(list) > 0 {
		summary := stats.RunningStats(runs, now)
		view.Records = &Records{
			MaxDistance: summary.MaxDistance,
			MaxTime:     summary.MaxTime,
			MaxSpeed:    summary.MaxSpeed,
			MaxCalories: summary.MaxCalories,
		}
	}

	return view
}
