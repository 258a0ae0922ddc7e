package activities

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/eridanus/internal/format"
	"github.com/2beens/eridanus/internal/stats"
)

// Form holds the raw submitted values, so an invalid form can be shown again as typed.
type Form struct {
	ActivityDate string
	ActivityTime string
	Duration     string
	Calories     string
	Notes        string
	Count        string
	Distance     string

	Errors map[string]string
}

type formValues struct {
	date     time.Time
	time     time.Time
	duration *int
	calories *int
	notes    string
	count    *int
	distance *float64
}

func NewForm(now time.Time) Form {
	return Form{
		ActivityDate: format.FormatDate(now),
		ActivityTime: format.FormatTime(now),
	}
}

func FormFromRequest(r *http.Request) Form {
	return Form{
		ActivityDate: strings.TrimSpace(r.PostFormValue("activity_date")),
		ActivityTime: strings.TrimSpace(r.PostFormValue("activity_time")),
		Duration:     strings.TrimSpace(r.PostFormValue("duration")),
		Calories:     strings.TrimSpace(r.PostFormValue("calories")),
		Notes:        strings.TrimSpace(r.PostFormValue("notes")),
		Count:        strings.TrimSpace(r.PostFormValue("count")),
		Distance:     strings.TrimSpace(r.PostFormValue("distance")),
	}
}

func FormFromActivity(a Activity) Form {
	f := Form{
		ActivityDate: format.FormatDate(a.Date),
		ActivityTime: format.FormatTime(a.Time),
		Duration:     optionalInt(a.Duration),
		Calories:     optionalInt(a.Calories),
		Notes:        a.Notes,
		Count:        optionalInt(a.Count),
	}
	if a.Run != nil && !a.Run.DistanceMissing {
		f.Distance = strconv.FormatFloat(a.Run.Distance, 'f', -1, 64)
	}
	return f
}

func (f *Form) Valid() bool {
	return len(f.Errors) == 0
}

func (f *Form) addError(field, msg string) {
	if f.Errors == nil {
		f.Errors = make(map[string]string)
	}
	if _, exists := f.Errors[field]; !exists {
		f.Errors[field] = msg
	}
}

// validate parses the form for the given kind, collecting one error per invalid field.
func (f *Form) validate(kind Kind) (formValues, bool) {
	f.Errors = nil
	var v formValues

	if f.ActivityDate == "" {
		f.addError("activity_date", "Date is required.")
	} else if d, err := format.ToDate(f.ActivityDate, format.DateLayout); err != nil {
		f.addError("activity_date", "Date must look like 2024-03-17.")
	} else {
		v.date = d
	}

	if f.ActivityTime == "" {
		f.addError("activity_time", "Time is required.")
	} else if t, err := parseFormTime(f.ActivityTime); err != nil {
		f.addError("activity_time", "Time must look like 18:30.")
	} else {
		v.time = t
	}

	v.duration = f.parseNonNegativeInt("duration", f.Duration)
	v.calories = f.parseNonNegativeInt("calories", f.Calories)
	v.notes = f.Notes

	if kind.Counted() {
		v.count = f.parseNonNegativeInt("count", f.Count)
		return v, f.Valid()
	}

	if f.Distance == "" {
		f.addError("distance", "Distance is required.")
	} else if d, err := format.ToFloat(f.Distance); err != nil || d < 0 {
		f.addError("distance", "Distance must be a non-negative number.")
	} else {
		v.distance = &d
	}
	if f.Duration == "" || (v.duration != nil && *v.duration == 0) {
		f.addError("duration", "Duration is required.")
	}

	return v, f.Valid()
}

// Activity validates the form and builds a new record for the user.
func (f *Form) Activity(kind Kind, nickname string) (Activity, bool) {
	v, ok := f.validate(kind)
	if !ok {
		return Activity{}, false
	}

	a := Activity{
		Kind:         kind,
		UserNickname: nickname,
		Date:         v.date,
		Time:         v.time,
		Duration:     v.duration,
		Calories:     v.calories,
		Notes:        v.notes,
	}
	if kind.Counted() {
		a.Count = v.count
		return a, true
	}

	a.Run = &RunDetails{Distance: *v.distance}
	if speed, ok := stats.DeriveSpeed(*v.distance, v.duration); ok {
		a.Run.Speed = &speed
	}
	return a, true
}

// Patch validates the form and builds an update for the record id.
// Optional fields left empty are not supplied, so they keep their stored value.
func (f *Form) Patch(kind Kind, id int64) (Patch, bool) {
	v, ok := f.validate(kind)
	if !ok {
		return Patch{}, false
	}

	p := Patch{
		ID:       id,
		Date:     &v.date,
		Time:     &v.time,
		Duration: v.duration,
		Calories: v.calories,
		Notes:    &v.notes,
	}
	if kind.Counted() {
		p.Count = v.count
		return p, true
	}

	p.Distance = v.distance
	if speed, ok := stats.DeriveSpeed(*v.distance, v.duration); ok {
		p.Speed = &speed
	}
	return p, true
}

func (f *Form) parseNonNegativeInt(field, value string) *int {
	if value == "" {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil || i < 0 {
		f.addError(field, "Must be a whole non-negative number.")
		return nil
	}
	return &i
}

// accepts the browser time input with or without seconds
func parseFormTime(value string) (time.Time, error) {
	t, err := format.ToTime(value, format.FormTimeLayout)
	if err == nil {
		return t, nil
	}
	return format.ToTime(value, format.TimeLayout)
}

func optionalInt(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}
